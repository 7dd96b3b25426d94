package fail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jpsember/dev/pkg/kafka"
)

// KafkaPublisher sends reports as JSON, keyed by symbol.
type KafkaPublisher struct {
	manager *kafka.Manager
	topic   string
}

// NewKafkaPublisher publishes to topic, or the manager's default topic when empty.
func NewKafkaPublisher(m *kafka.Manager, topic string) *KafkaPublisher {
	return &KafkaPublisher{manager: m, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, r Report) error {
	if p == nil || p.manager == nil {
		return errors.New("kafka publisher not configured")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := p.manager.Publish(ctx, p.topic, []byte(r.Symbol), data); err != nil {
		return fmt.Errorf("publish report %s to %q: %w", r.ID, p.Topic(), err)
	}
	return nil
}

// Topic is the topic reports go to.
func (p *KafkaPublisher) Topic() string {
	if p.topic != "" {
		return p.topic
	}
	return p.manager.Topic()
}
