package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Message - исходящее сообщение пользователю
type Message struct {
	ChatID int64
	Text   string
}

// Sender доставляет сообщение, в проде это telegram.Client
type Sender interface {
	Send(chatID int64, text string) error
}

// Outbox - очередь исходящих уведомлений. Фоновые задачи кладут сообщения
// в канал, отправкой занимается одна горутина Run.
type Outbox struct {
	queue  chan Message
	sender Sender
	logger *logrus.Logger
}

func NewOutbox(sender Sender, size int, logger *logrus.Logger) *Outbox {
	if size <= 0 {
		size = 64
	}
	return &Outbox{
		queue:  make(chan Message, size),
		sender: sender,
		logger: logger,
	}
}

// Enqueue ставит сообщение в очередь и не блокируется.
// При переполненной очереди сообщение отбрасывается.
func (o *Outbox) Enqueue(m Message) bool {
	select {
	case o.queue <- m:
		return true
	default:
		o.logger.WithField("chat_id", m.ChatID).Warn("Outbox is full, message dropped")
		return false
	}
}

// Run отправляет сообщения до отмены ctx
func (o *Outbox) Run(ctx context.Context) {
	o.logger.Debug("Outbox started")
	for {
		select {
		case <-ctx.Done():
			o.logger.WithField("pending", len(o.queue)).Info("Outbox stopped")
			return
		case m := <-o.queue:
			if err := o.sender.Send(m.ChatID, m.Text); err != nil {
				o.logger.WithError(err).WithField("chat_id", m.ChatID).Error("Failed to send notification")
			}
		}
	}
}
