// Package mail renders and delivers outgoing email. Delivery is fire-and-forget:
// a Dispatcher accepts a message and a worker sends it later through a Sender.
package mail

import (
	"context"
	"errors"

	"github.com/sbilibin2017/gw-microblog/internal/models"
)

// ErrQueueFull is returned when the in-process queue cannot take more messages.
var ErrQueueFull = errors.New("mail queue is full")

// Sender delivers one message synchronously.
type Sender interface {
	Send(ctx context.Context, msg models.MailMessage) error
}

// Dispatcher accepts a message for asynchronous delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg models.MailMessage) error
}
