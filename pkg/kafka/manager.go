package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/xdg-go/scram"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

var (
	ErrNoBrokers = errors.New("kafka brokers empty")
	ErrNoTopic   = errors.New("kafka topic empty")
	ErrNilClient = errors.New("kafka manager nil")
)

// Config defines Kafka connection and producer defaults.
type Config struct {
	Brokers       []string `yaml:"brokers" mapstructure:"brokers"`
	Topic         string   `yaml:"topic" mapstructure:"topic"`
	ClientID      string   `yaml:"client_id" mapstructure:"client_id"`
	Username      string   `yaml:"username" mapstructure:"username"`
	Password      string   `yaml:"password" mapstructure:"password"`
	SASLMechanism string   `yaml:"sasl_mechanism" mapstructure:"sasl_mechanism"`
	TLSEnabled    bool     `yaml:"tls_enabled" mapstructure:"tls_enabled"`

	// RequiredAcks is one of "none", "one" or "all" (default).
	RequiredAcks string `yaml:"required_acks" mapstructure:"required_acks"`
	// MaxAttempts is the producer retry budget, never below 3.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// PublishHook is called after every Publish with its outcome.
type PublishHook func(topic string, took time.Duration, err error)

// Manager owns the sync producer that ships failure reports.
type Manager struct {
	cfg      Config
	producer sarama.SyncProducer

	mu    sync.RWMutex
	hooks []PublishHook

	closeOnce sync.Once
	closeErr  error
}

// NewManager dials the brokers and builds a manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	producer, err := sarama.NewSyncProducer(cfg.Brokers, SaramaConfig(cfg))
	if err != nil {
		return nil, err
	}
	return NewManagerWithProducer(cfg, producer), nil
}

// NewManagerWithProducer wraps an existing producer, e.g. sarama/mocks.
func NewManagerWithProducer(cfg Config, producer sarama.SyncProducer) *Manager {
	return &Manager{cfg: cfg, producer: producer}
}

// OnPublish registers a hook.
func (m *Manager) OnPublish(h PublishHook) {
	if m == nil || h == nil {
		return
	}
	m.mu.Lock()
	m.hooks = append(m.hooks, h)
	m.mu.Unlock()
}

// Topic is the default topic used when Publish is given none.
func (m *Manager) Topic() string {
	if m == nil {
		return ""
	}
	return m.cfg.Topic
}

// Publish sends key/value to topic, or to the configured topic when topic
// is empty. The trace context of ctx travels in the record headers.
func (m *Manager) Publish(ctx context.Context, topic string, key, value []byte) (err error) {
	if m == nil {
		return ErrNilClient
	}
	if topic == "" {
		topic = m.cfg.Topic
	}
	start := time.Now()
	defer func() { m.notify(topic, time.Since(start), err) }()

	if topic == "" {
		return ErrNoTopic
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{Topic: topic, Headers: traceHeaders(ctx)}
	if len(key) > 0 {
		msg.Key = sarama.ByteEncoder(key)
	}
	if len(value) > 0 {
		msg.Value = sarama.ByteEncoder(value)
	}
	_, _, err = m.producer.SendMessage(msg)
	return err
}

func (m *Manager) notify(topic string, took time.Duration, err error) {
	m.mu.RLock()
	hooks := m.hooks
	m.mu.RUnlock()
	for _, h := range hooks {
		h(topic, took, err)
	}
}

// Close shuts down the producer. Repeated calls return the first result.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	m.closeOnce.Do(func() {
		if m.producer != nil {
			m.closeErr = m.producer.Close()
		}
	})
	return m.closeErr
}

func traceHeaders(ctx context.Context) []sarama.RecordHeader {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	if len(carrier) == 0 {
		return nil
	}
	keys := carrier.Keys()
	sort.Strings(keys)
	headers := make([]sarama.RecordHeader, 0, len(keys))
	for _, k := range keys {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(carrier[k])})
	}
	return headers
}

// SaramaConfig translates cfg into a producer configuration.
func SaramaConfig(cfg Config) *sarama.Config {
	sc := sarama.NewConfig()
	sc.Version = sarama.V2_1_0_0
	if cfg.ClientID != "" {
		sc.ClientID = cfg.ClientID
	}

	sc.Producer.Return.Successes = true
	sc.Producer.Retry.Max = max(cfg.MaxAttempts, 3)
	sc.Producer.RequiredAcks = requiredAcks(cfg.RequiredAcks)

	if cfg.TLSEnabled {
		sc.Net.TLS.Enable = true
		sc.Net.TLS.Config = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if cfg.Username != "" {
		configureSASL(sc, cfg)
	}
	return sc
}

func requiredAcks(v string) sarama.RequiredAcks {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "none":
		return sarama.NoResponse
	case "one":
		return sarama.WaitForLocal
	default:
		return sarama.WaitForAll
	}
}

var scramHashes = map[sarama.SASLMechanism]scram.HashGeneratorFcn{
	sarama.SASLTypeSCRAMSHA256: scram.SHA256,
	sarama.SASLTypeSCRAMSHA512: scram.SHA512,
}

func configureSASL(sc *sarama.Config, cfg Config) {
	sc.Net.SASL.Enable = true
	sc.Net.SASL.User = cfg.Username
	sc.Net.SASL.Password = cfg.Password

	mech := sarama.SASLMechanism(strings.ToUpper(strings.TrimSpace(cfg.SASLMechanism)))
	hash, ok := scramHashes[mech]
	if !ok {
		sc.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		return
	}
	sc.Net.SASL.Mechanism = mech
	sc.Net.SASL.SCRAMClientGeneratorFunc = func() sarama.SCRAMClient {
		return &scramConversation{hash: hash}
	}
}

// scramConversation adapts xdg-go/scram to sarama.SCRAMClient.
type scramConversation struct {
	hash scram.HashGeneratorFcn
	conv *scram.ClientConversation
}

func (s *scramConversation) Begin(user, password, authzID string) error {
	client, err := s.hash.NewClient(user, password, authzID)
	if err != nil {
		return err
	}
	s.conv = client.NewConversation()
	return nil
}

func (s *scramConversation) Step(challenge string) (string, error) {
	return s.conv.Step(challenge)
}

func (s *scramConversation) Done() bool {
	return s.conv.Done()
}
