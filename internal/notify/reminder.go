package notify

import (
	"fmt"
	"sync"
	"time"

	"shift-log-bot/internal/service"

	"github.com/sirupsen/logrus"
)

// TargetSource возвращает пользователей, которым нужно напомнить о смене за day
type TargetSource interface {
	ReminderTargets(day time.Time) ([]service.ReminderTarget, error)
}

// Reminder раз в день в заданный час напоминает заполнить смену тем,
// у кого по графику рабочий день и записи еще нет
type Reminder struct {
	targets  TargetSource
	outbox   *Outbox
	hour     int
	interval time.Duration
	now      func() time.Time
	logger   *logrus.Logger

	lastRun string // дата последней рассылки, 2006-01-02

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewReminder(targets TargetSource, outbox *Outbox, hour int, interval time.Duration, now func() time.Time, logger *logrus.Logger) *Reminder {
	if now == nil {
		now = time.Now
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reminder{
		targets:  targets,
		outbox:   outbox,
		hour:     hour,
		interval: interval,
		now:      now,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Start запускает проверку по таймеру. При hour < 0 ничего не делает.
func (r *Reminder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hour < 0 {
		r.logger.Info("Reminders disabled")
		return
	}
	if r.ticker != nil {
		return
	}

	r.ticker = time.NewTicker(r.interval)
	r.wg.Add(1)
	go r.run()

	r.logger.WithFields(logrus.Fields{
		"hour":     r.hour,
		"interval": r.interval.String(),
	}).Info("Reminder started")
}

// Stop останавливает таймер и ждет завершения горутины
func (r *Reminder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ticker == nil {
		return
	}
	r.ticker.Stop()
	close(r.stop)
	r.wg.Wait()
	r.ticker = nil
	r.logger.Info("Reminder stopped")
}

func (r *Reminder) run() {
	defer r.wg.Done()

	for {
		select {
		case <-r.ticker.C:
			r.check()
		case <-r.stop:
			return
		}
	}
}

// check рассылает напоминания, если наступил нужный час и сегодня еще не рассылали.
// Возвращает число поставленных в очередь сообщений.
func (r *Reminder) check() int {
	now := r.now()
	today := now.Format("2006-01-02")

	if now.Hour() < r.hour || r.lastRun == today {
		return 0
	}
	r.lastRun = today

	targets, err := r.targets.ReminderTargets(now)
	if err != nil {
		r.logger.WithError(err).Error("Failed to get reminder targets")
		return 0
	}

	sent := 0
	for _, t := range targets {
		text := fmt.Sprintf("⏰ %s, сегодня по графику рабочий день, а смена не записана.\nЗапишите: /shift ЧЧ:ММ ЧЧ:ММ", t.Name)
		if r.outbox.Enqueue(Message{ChatID: t.ChatID, Text: text}) {
			sent++
		}
	}

	r.logger.WithFields(logrus.Fields{
		"date":    today,
		"targets": len(targets),
		"queued":  sent,
	}).Info("Reminders queued")

	return sent
}
