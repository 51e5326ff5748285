package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-log-bot/internal/service"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
	fail bool
}

func (s *recordingSender) Send(chatID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("telegram is down")
	}
	s.sent = append(s.sent, Message{ChatID: chatID, Text: text})
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type staticTargets struct {
	targets []service.ReminderTarget
	calls   int
}

func (s *staticTargets) ReminderTargets(time.Time) ([]service.ReminderTarget, error) {
	s.calls++
	return s.targets, nil
}

func TestOutbox_DeliversQueuedMessages(t *testing.T) {
	log, _ := test.NewNullLogger()
	sender := &recordingSender{}
	outbox := NewOutbox(sender, 4, log)

	require.True(t, outbox.Enqueue(Message{ChatID: 1, Text: "a"}))
	require.True(t, outbox.Enqueue(Message{ChatID: 2, Text: "b"}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		outbox.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return sender.count() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("outbox did not stop")
	}
}

func TestOutbox_DropsWhenFull(t *testing.T) {
	log, hook := test.NewNullLogger()
	outbox := NewOutbox(&recordingSender{}, 1, log)

	assert.True(t, outbox.Enqueue(Message{ChatID: 1}))
	assert.False(t, outbox.Enqueue(Message{ChatID: 2}))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Outbox is full, message dropped", hook.LastEntry().Message)
}

func TestOutbox_SendErrorIsLogged(t *testing.T) {
	log, hook := test.NewNullLogger()
	outbox := NewOutbox(&recordingSender{fail: true}, 1, log)
	outbox.Enqueue(Message{ChatID: 1, Text: "x"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go outbox.Run(ctx)

	assert.Eventually(t, func() bool {
		for _, e := range hook.AllEntries() {
			if e.Message == "Failed to send notification" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func TestReminder_CheckOncePerDayAfterHour(t *testing.T) {
	// GIVEN: напоминание в 20:00
	// WHEN: проверки в 19:59, 20:01 и 21:00 того же дня
	// THEN: рассылка ровно одна, после 20:00
	log, _ := test.NewNullLogger()
	outbox := NewOutbox(&recordingSender{}, 10, log)
	targets := &staticTargets{targets: []service.ReminderTarget{
		{UserID: 1, ChatID: 100, Name: "Иван"},
		{UserID: 2, ChatID: 200, Name: "Петр"},
	}}

	now := time.Date(2024, 3, 15, 19, 59, 0, 0, time.UTC)
	r := NewReminder(targets, outbox, 20, time.Minute, func() time.Time { return now }, log)

	assert.Equal(t, 0, r.check())
	assert.Equal(t, 0, targets.calls)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 2, r.check())

	now = now.Add(time.Hour)
	assert.Equal(t, 0, r.check())
	assert.Equal(t, 1, targets.calls)

	now = time.Date(2024, 3, 16, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, r.check())
	assert.Equal(t, 2, targets.calls)
}

func TestReminder_DisabledDoesNotStart(t *testing.T) {
	log, _ := test.NewNullLogger()
	r := NewReminder(&staticTargets{}, NewOutbox(&recordingSender{}, 1, log), -1, time.Millisecond, nil, log)

	r.Start()
	assert.Nil(t, r.ticker)
	r.Stop()
}

func TestReminder_StartStop(t *testing.T) {
	log, _ := test.NewNullLogger()
	targets := &staticTargets{}
	r := NewReminder(targets, NewOutbox(&recordingSender{}, 1, log), 0, 5*time.Millisecond, nil, log)

	r.Start()
	time.Sleep(20 * time.Millisecond)
	r.Stop()

	assert.Nil(t, r.ticker)
}
