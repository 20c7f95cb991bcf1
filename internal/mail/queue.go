package mail

import (
	"context"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/metrics"
	"github.com/sbilibin2017/gw-microblog/internal/models"
)

// QueueDispatcher buffers messages in memory and delivers them from a single worker.
type QueueDispatcher struct {
	queue  chan models.MailMessage
	sender Sender
}

func NewQueueDispatcher(sender Sender, size int) *QueueDispatcher {
	return &QueueDispatcher{
		queue:  make(chan models.MailMessage, size),
		sender: sender,
	}
}

// Dispatch enqueues msg without blocking.
func (d *QueueDispatcher) Dispatch(ctx context.Context, msg models.MailMessage) error {
	select {
	case d.queue <- msg:
		metrics.MailDispatched.WithLabelValues("queue").Inc()
		return nil
	default:
		return ErrQueueFull
	}
}

// Run delivers queued messages until ctx is done. Failures are logged and dropped.
func (d *QueueDispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-d.queue:
			deliver(ctx, d.sender, msg)
		}
	}
}

func deliver(ctx context.Context, sender Sender, msg models.MailMessage) {
	if err := sender.Send(ctx, msg); err != nil {
		metrics.MailSent.WithLabelValues("error").Inc()
		logger.Log.Errorw("failed to send mail", "subject", msg.Subject, "recipients", msg.Recipients, "error", err)
		return
	}
	metrics.MailSent.WithLabelValues("ok").Inc()
	logger.Log.Infow("mail sent", "subject", msg.Subject, "recipients", msg.Recipients)
}

func logMessage(text string, msg models.MailMessage) {
	logger.Log.Infow(text, "subject", msg.Subject, "recipients", msg.Recipients, "body", msg.TextBody)
}
