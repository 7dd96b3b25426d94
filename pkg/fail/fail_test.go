package fail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpsember/dev/pkg/codes"
	"github.com/jpsember/dev/pkg/kafka"
)

// failVia mimics a helper that reports on behalf of its caller.
func failVia(r Reporter, skip int) {
	r.Fail("helper failed", codes.FailedImport, skip)
}

func TestRecorder_LocationHonoursSkip(t *testing.T) {
	rec := NewRecorder()
	failVia(rec, 1)
	failVia(rec, 2)

	reports := rec.Reports()
	require.Len(t, reports, 2)
	assert.True(t, strings.HasSuffix(reports[0].Location.Function, ".failVia"), reports[0].Location.Function)
	assert.True(t, strings.HasSuffix(reports[1].Location.Function, ".TestRecorder_LocationHonoursSkip"), reports[1].Location.Function)
	assert.True(t, strings.HasSuffix(reports[1].Location.File, "fail_test.go"))

	assert.Equal(t, codes.FailedImport, reports[0].Code)
	assert.Equal(t, "FAILED_IMPORT", reports[0].Symbol)
	assert.NotEmpty(t, reports[0].ID)
	assert.NotEqual(t, reports[0].ID, reports[1].ID)

	rec.Reset()
	assert.Equal(t, 0, rec.Len())
}

func TestMulti_KeepsLocation(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	failVia(Multi(a, nil, b), 2)

	require.Equal(t, 1, a.Len())
	require.Equal(t, 1, b.Len())
	fn := a.Reports()[0].Location.Function
	assert.True(t, strings.HasSuffix(fn, ".TestMulti_KeepsLocation"), fn)
	assert.Equal(t, fn, b.Reports()[0].Location.Function)
}

func TestLog(t *testing.T) {
	l, hook := test.NewNullLogger()
	failVia(Log(l.WithField("component", "test")), 2)

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, "helper failed", entry.Message)
	assert.Equal(t, 8001, entry.Data["code"])
	assert.Equal(t, "FAILED_IMPORT", entry.Data["symbol"])
	assert.Equal(t, "test", entry.Data["component"])
	assert.Contains(t, entry.Data["caller"], "fail_test.go:")
}

func TestPanic(t *testing.T) {
	defer func() {
		v := recover()
		f, ok := v.(*Failure)
		require.True(t, ok, "panic value %T", v)
		assert.Equal(t, codes.FailedImport, codes.CodeOf(f))
		assert.Contains(t, f.Error(), "[8001 FAILED_IMPORT] helper failed (at ")
	}()
	failVia(Panic(), 2)
	t.Fatal("expected panic")
}

type fakeTB struct {
	testing.TB
	helpers int
	failed  bool
	errors  []string
	out     bytes.Buffer
}

func (f *fakeTB) Helper()           { f.helpers++ }
func (f *fakeTB) Fail()             { f.failed = true }
func (f *fakeTB) Output() io.Writer { return &f.out }
func (f *fakeTB) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
	f.failed = true
}

func TestTestReporter(t *testing.T) {
	tb := &fakeTB{}
	failVia(Test(tb), 2)

	assert.True(t, tb.failed)
	assert.Empty(t, tb.errors, "Errorf would prefix the line with a pkg/fail location")
	assert.Positive(t, tb.helpers)
	out := tb.out.String()
	assert.True(t, strings.HasPrefix(out, "[8001 FAILED_IMPORT] helper failed (at "), out)
	assert.Contains(t, out, "fail_test.go:")
	assert.Equal(t, 1, strings.Count(out, "(at "))
}

type publisherFunc func(ctx context.Context, r Report) error

func (f publisherFunc) Publish(ctx context.Context, r Report) error { return f(ctx, r) }

func TestSink(t *testing.T) {
	var got []Report
	var failed []error
	boom := errors.New("boom")

	r := Sink(publisherFunc(func(ctx context.Context, rep Report) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		got = append(got, rep)
		if len(got) == 2 {
			return boom
		}
		return nil
	}), SinkOptions{OnError: func(_ Report, err error) { failed = append(failed, err) }})

	failVia(r, 2)
	failVia(r, 2)

	require.Len(t, got, 2)
	assert.True(t, strings.HasSuffix(got[0].Location.Function, ".TestSink"), got[0].Location.Function)
	assert.Equal(t, []error{boom}, failed)
}

type fakeList struct {
	key    string
	values []string
	ttl    time.Duration
}

func (f *fakeList) RPush(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	f.key = key
	for _, v := range values {
		f.values = append(f.values, string(v.([]byte)))
	}
	return redis.NewIntResult(int64(len(f.values)), nil)
}

func (f *fakeList) Expire(_ context.Context, _ string, ttl time.Duration) *redis.BoolCmd {
	f.ttl = ttl
	return redis.NewBoolResult(true, nil)
}

func (f *fakeList) LRange(_ context.Context, _ string, start, stop int64) *redis.StringSliceCmd {
	n := int64(len(f.values))
	if start < 0 {
		start = max(n+start, 0)
	}
	if stop < 0 {
		stop = n + stop
	}
	return redis.NewStringSliceResult(f.values[start:stop+1], nil)
}

func TestRedisPublisher(t *testing.T) {
	list := &fakeList{}
	p := newRedisPublisher(list, "", time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, p.Publish(ctx, NewReport(fmt.Sprintf("m%d", i), codes.FailedImport, 0)))
	}
	assert.Equal(t, DefaultRedisKey, list.key)
	assert.Equal(t, time.Hour, list.ttl)

	var first Report
	require.NoError(t, json.Unmarshal([]byte(list.values[0]), &first))
	assert.Equal(t, codes.FailedImport, first.Code)
	assert.Equal(t, "m0", first.Message)

	recent, err := p.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "m1", recent[0].Message)
	assert.Equal(t, "m2", recent[1].Message)

	var nilPub *RedisPublisher
	assert.Error(t, nilPub.Publish(ctx, Report{}))
}

func TestKafkaPublisher(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, _ := msg.Key.Encode()
		if string(key) != "FAILED_IMPORT" {
			return fmt.Errorf("unexpected key %q", key)
		}
		value, _ := msg.Value.Encode()
		var r Report
		if err := json.Unmarshal(value, &r); err != nil {
			return err
		}
		if r.Code != codes.FailedImport {
			return fmt.Errorf("unexpected code %d", r.Code)
		}
		return nil
	})
	m := kafka.NewManagerWithProducer(kafka.Config{Topic: "dev.failures"}, producer)
	defer m.Close()

	p := NewKafkaPublisher(m, "")
	assert.Equal(t, "dev.failures", p.Topic())
	require.NoError(t, p.Publish(context.Background(), NewReport("x", codes.FailedImport, 0)))
}

func TestKafkaPublisher_ErrorNamesTopic(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	m := kafka.NewManagerWithProducer(kafka.Config{Topic: "dev.failures"}, producer)
	defer m.Close()

	p := NewKafkaPublisher(m, "")
	err := p.Publish(context.Background(), NewReport("x", codes.FailedImport, 0))
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	assert.Contains(t, err.Error(), `"dev.failures"`)

	assert.Equal(t, "audit", NewKafkaPublisher(m, "audit").Topic())
}

func shiftedFailVia(r Reporter) {
	failVia(Shift(r, 1), 2)
}

func TestShift(t *testing.T) {
	rec := NewRecorder()
	shiftedFailVia(rec)

	require.Equal(t, 1, rec.Len())
	fn := rec.Reports()[0].Location.Function
	assert.True(t, strings.HasSuffix(fn, ".TestShift"), fn)
}
