package mail

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/metrics"
	"github.com/sbilibin2017/gw-microblog/internal/models"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaReader defines a Kafka consumer abstraction.
type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter returns an asynchronous writer for topic. WriteMessages only
// enqueues; delivery failures are logged by the completion callback.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion:             logCompletion,
	}
}

func logCompletion(messages []kafka.Message, err error) {
	if err != nil {
		logger.Log.Errorw("failed to deliver mail to Kafka", "messages", len(messages), "error", err)
	}
}

// KafkaDispatcher publishes messages to a topic for a Consumer to deliver.
type KafkaDispatcher struct {
	writer KafkaWriter
}

func NewKafkaDispatcher(writer KafkaWriter) *KafkaDispatcher {
	return &KafkaDispatcher{writer: writer}
}

// Dispatch publishes msg keyed by its first recipient.
func (d *KafkaDispatcher) Dispatch(ctx context.Context, msg models.MailMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	err = d.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strings.Join(msg.Recipients, ",")),
		Value: data,
	})
	if err != nil {
		logger.Log.Errorw("failed to publish mail to Kafka", "subject", msg.Subject, "error", err)
		return err
	}

	metrics.MailDispatched.WithLabelValues("kafka").Inc()
	logger.Log.Infow("mail published to Kafka", "subject", msg.Subject)
	return nil
}

// Consumer reads mail messages from Kafka and delivers them through a Sender.
type Consumer struct {
	reader KafkaReader
	sender Sender
}

func NewConsumer(reader KafkaReader, sender Sender) *Consumer {
	return &Consumer{reader: reader, sender: sender}
}

// Run consumes until ctx is done. Every fetched message is committed whether
// or not delivery succeeded; undecodable payloads are skipped.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var msg models.MailMessage
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			logger.Log.Errorw("failed to decode mail message", "offset", m.Offset, "error", err)
		} else {
			deliver(ctx, c.sender, msg)
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			logger.Log.Errorw("failed to commit mail message", "offset", m.Offset, "error", err)
		}
	}
}
