package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/jpsember/dev/pkg/config"
	"github.com/jpsember/dev/pkg/fail"
	"github.com/jpsember/dev/pkg/kafka"
)

// Runtime holds the services opened by Init.
type Runtime struct {
	Config   *config.Config
	Redis    *redis.Client
	Kafka    *kafka.Manager
	Reporter fail.Reporter

	shutdownTracing ShutdownFunc
}

// Init sets up logging and tracing, connects Redis and Kafka when enabled
// or named as report sinks, and builds the failure Reporter.
func Init(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	if err := InitLogger(cfg.Log, cfg.LogFile); err != nil {
		return nil, err
	}

	shutdown, err := InitTracing(ctx, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	rt := &Runtime{Config: cfg, shutdownTracing: shutdown}

	if cfg.Redis.Enabled || hasSink(cfg.Report, "redis") {
		if rt.Redis, err = InitRedis(ctx, cfg.Redis); err != nil {
			_ = rt.Close(ctx)
			return nil, fmt.Errorf("init redis: %w", err)
		}
	}
	if cfg.Kafka.Enabled || hasSink(cfg.Report, "kafka") {
		if rt.Kafka, err = InitKafka(cfg.Kafka); err != nil {
			_ = rt.Close(ctx)
			return nil, fmt.Errorf("init kafka: %w", err)
		}
	}

	var rc redis.Cmdable
	if rt.Redis != nil {
		rc = rt.Redis
	}
	if rt.Reporter, err = NewReporter(cfg.Report, rc, rt.Kafka); err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}
	return rt, nil
}

// RedisPublisher returns the publisher for the configured report list, or
// nil when Redis is not connected.
func (rt *Runtime) RedisPublisher() *fail.RedisPublisher {
	if rt == nil || rt.Redis == nil {
		return nil
	}
	return fail.NewRedisPublisher(rt.Redis, rt.Config.Report.RedisKey, rt.Config.Report.TTL.Duration())
}

// Close releases everything Init opened.
func (rt *Runtime) Close(ctx context.Context) error {
	if rt == nil {
		return nil
	}
	var errs []error
	if rt.Kafka != nil {
		errs = append(errs, rt.Kafka.Close())
	}
	if rt.Redis != nil {
		errs = append(errs, rt.Redis.Close())
	}
	if rt.shutdownTracing != nil {
		errs = append(errs, rt.shutdownTracing(ctx))
	}
	return errors.Join(errs...)
}

// NewReporter builds a Reporter fanning out to every configured sink:
// "log", "redis", "kafka" or "panic".
func NewReporter(cfg config.ReportConfig, rc redis.Cmdable, km *kafka.Manager) (fail.Reporter, error) {
	sinks := cfg.Sinks
	if len(sinks) == 0 {
		sinks = []string{"log"}
	}
	opts := fail.SinkOptions{Timeout: config.Duration(cfg.TimeoutSeconds).Duration()}

	reporters := make([]fail.Reporter, 0, len(sinks))
	for _, s := range sinks {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "log":
			reporters = append(reporters, fail.Log(nil))
		case "panic":
			reporters = append(reporters, fail.Panic())
		case "redis":
			if rc == nil {
				return nil, errors.New("report sink redis: redis not connected")
			}
			p := fail.NewRedisPublisher(rc, cfg.RedisKey, cfg.TTL.Duration())
			reporters = append(reporters, fail.Sink(p, opts))
		case "kafka":
			if km == nil {
				return nil, errors.New("report sink kafka: kafka not connected")
			}
			reporters = append(reporters, fail.Sink(fail.NewKafkaPublisher(km, cfg.Topic), opts))
		default:
			return nil, fmt.Errorf("unknown report sink %q", s)
		}
	}
	if len(reporters) == 1 {
		return reporters[0], nil
	}
	return fail.Multi(reporters...), nil
}

func hasSink(cfg config.ReportConfig, name string) bool {
	return slices.ContainsFunc(cfg.Sinks, func(s string) bool {
		return strings.EqualFold(strings.TrimSpace(s), name)
	})
}
