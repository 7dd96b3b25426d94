package bootstrap

import (
	"time"

	"github.com/jpsember/dev/pkg/config"
	"github.com/jpsember/dev/pkg/kafka"
	log "github.com/jpsember/dev/pkg/logger"
)

// InitKafka initializes the Kafka manager used for failure reports.
func InitKafka(cfg config.KafkaConfig) (*kafka.Manager, error) {
	m, err := kafka.NewManager(KafkaConfig(cfg))
	if err != nil {
		return nil, err
	}
	m.OnPublish(logPublish)
	return m, nil
}

func logPublish(topic string, took time.Duration, err error) {
	e := log.WithFields(log.Fields{"topic": topic, "took": took})
	if err != nil {
		e.WithError(err).Warn("kafka publish failed")
		return
	}
	e.Debug("kafka publish")
}

// KafkaConfig converts the configuration section into kafka.Config.
func KafkaConfig(cfg config.KafkaConfig) kafka.Config {
	return kafka.Config{
		Brokers:       cfg.Brokers,
		Topic:         cfg.Topic,
		ClientID:      cfg.ClientID,
		Username:      cfg.Username,
		Password:      cfg.Password,
		SASLMechanism: cfg.SASLMechanism,
		TLSEnabled:    cfg.TLSEnabled,
		RequiredAcks:  cfg.RequiredAcks,
		MaxAttempts:   cfg.MaxAttempts,
	}
}
