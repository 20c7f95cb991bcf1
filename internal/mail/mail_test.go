package mail

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/models"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []models.MailMessage
	err  error
	done chan struct{}
}

func newRecordingSender(err error) *recordingSender {
	return &recordingSender{err: err, done: make(chan struct{}, 16)}
}

func (s *recordingSender) Send(_ context.Context, msg models.MailMessage) error {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	s.done <- struct{}{}
	return s.err
}

func (s *recordingSender) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for message %d", i+1)
		}
	}
}

type recordingDispatcher struct {
	msgs []models.MailMessage
}

func (d *recordingDispatcher) Dispatch(_ context.Context, msg models.MailMessage) error {
	d.msgs = append(d.msgs, msg)
	return nil
}

func TestPasswordResetMailer(t *testing.T) {
	d := &recordingDispatcher{}
	mailer := NewPasswordResetMailer(d, "admin@example.com", "http://localhost:8080/")

	user := &models.UserDB{ID: 1, Username: "john", Email: "john@example.com"}
	require.NoError(t, mailer.SendPasswordReset(context.Background(), user, "abc.def.ghi"))
	require.Len(t, d.msgs, 1)

	msg := d.msgs[0]
	assert.Equal(t, "[Microblog] Reset Your Password", msg.Subject)
	assert.Equal(t, "admin@example.com", msg.Sender)
	assert.Equal(t, []string{"john@example.com"}, msg.Recipients)
	assert.Contains(t, msg.TextBody, "Dear john,")
	assert.Contains(t, msg.TextBody, "http://localhost:8080/reset_password/abc.def.ghi")
	assert.Contains(t, msg.HTMLBody, `href="http://localhost:8080/reset_password/abc.def.ghi"`)
}

func TestPasswordResetMailer_EscapesHTML(t *testing.T) {
	mailer := NewPasswordResetMailer(&recordingDispatcher{}, "admin@example.com", "http://localhost")

	msg, err := mailer.Render(&models.UserDB{Username: "<b>eve</b>", Email: "eve@example.com"}, "t")
	require.NoError(t, err)
	assert.Contains(t, msg.HTMLBody, "&lt;b&gt;eve&lt;/b&gt;")
	assert.Contains(t, msg.TextBody, "<b>eve</b>")
}

func TestQueueDispatcher(t *testing.T) {
	t.Run("delivers in the background", func(t *testing.T) {
		sender := newRecordingSender(nil)
		d := NewQueueDispatcher(sender, 4)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go d.Run(ctx)

		require.NoError(t, d.Dispatch(ctx, models.MailMessage{Subject: "one"}))
		require.NoError(t, d.Dispatch(ctx, models.MailMessage{Subject: "two"}))
		sender.wait(t, 2)

		sender.mu.Lock()
		defer sender.mu.Unlock()
		assert.Equal(t, "one", sender.sent[0].Subject)
		assert.Equal(t, "two", sender.sent[1].Subject)
	})

	t.Run("send failures are swallowed", func(t *testing.T) {
		sender := newRecordingSender(errors.New("smtp down"))
		d := NewQueueDispatcher(sender, 4)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go d.Run(ctx)

		require.NoError(t, d.Dispatch(ctx, models.MailMessage{Subject: "one"}))
		require.NoError(t, d.Dispatch(ctx, models.MailMessage{Subject: "two"}))
		sender.wait(t, 2)
	})

	t.Run("full queue rejects without blocking", func(t *testing.T) {
		d := NewQueueDispatcher(newRecordingSender(nil), 1)

		require.NoError(t, d.Dispatch(context.Background(), models.MailMessage{}))
		assert.ErrorIs(t, d.Dispatch(context.Background(), models.MailMessage{}), ErrQueueFull)
	})

	t.Run("run stops with its context", func(t *testing.T) {
		d := NewQueueDispatcher(newRecordingSender(nil), 1)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- d.Run(ctx) }()
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("Run did not return")
		}
	})
}

type fakeKafkaWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeKafkaWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeKafkaWriter) Close() error { return nil }

// fakeKafkaReader serves queued messages, then blocks until ctx is done.
type fakeKafkaReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []kafka.Message
}

func (r *fakeKafkaReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		m := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeKafkaReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeKafkaReader) Close() error { return nil }

func TestKafkaDispatcher(t *testing.T) {
	w := &fakeKafkaWriter{}
	d := NewKafkaDispatcher(w)

	msg := models.MailMessage{Subject: "hi", Recipients: []string{"john@example.com"}, TextBody: "body"}
	require.NoError(t, d.Dispatch(context.Background(), msg))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "john@example.com", string(w.msgs[0].Key))

	var decoded models.MailMessage
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, msg, decoded)

	w.err = errors.New("broker down")
	assert.EqualError(t, d.Dispatch(context.Background(), msg), "broker down")
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092"}, "microblog.mail")
	t.Cleanup(func() { _ = w.Close() })

	assert.True(t, w.Async)
	assert.Equal(t, "microblog.mail", w.Topic)
	require.NotNil(t, w.Completion)

	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Log = prev })

	w.Completion([]kafka.Message{{}}, nil)
	assert.Zero(t, logs.Len())

	w.Completion([]kafka.Message{{}, {}}, errors.New("broker down"))
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Equal(t, int64(2), logs.All()[0].ContextMap()["messages"])
}

func TestConsumer(t *testing.T) {
	good, err := json.Marshal(models.MailMessage{Subject: "hi", Recipients: []string{"john@example.com"}})
	require.NoError(t, err)

	reader := &fakeKafkaReader{queue: []kafka.Message{
		{Offset: 1, Value: []byte("not json")},
		{Offset: 2, Value: good},
	}}
	sender := newRecordingSender(errors.New("smtp down"))
	c := NewConsumer(reader, sender)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	sender.wait(t, 1)
	require.Eventually(t, func() bool {
		reader.mu.Lock()
		defer reader.mu.Unlock()
		return len(reader.committed) == 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "hi", sender.sent[0].Subject)
}

func TestSMTPSender_InvalidAddresses(t *testing.T) {
	s := NewSMTPSender("localhost", 25, false, "", "")

	err := s.Send(context.Background(), models.MailMessage{Sender: "not an address", Recipients: []string{"a@b.co"}})
	assert.ErrorContains(t, err, "invalid sender")

	err = s.Send(context.Background(), models.MailMessage{Sender: "a@b.co", Recipients: []string{"not an address"}})
	assert.ErrorContains(t, err, "invalid recipients")
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, LogSender{}.Send(context.Background(), models.MailMessage{Subject: "hi"}))
}
