package scheduler

import (
	"context"
	"log/slog"
	"time"

	"BudgetBot/internal/bot"
	"BudgetBot/internal/database"

	"gorm.io/gorm"
)

// Scheduler рассылает подписанным пользователям ежедневные сводки бюджета.
type Scheduler struct {
	bot    *bot.MessageHandler
	db     *gorm.DB
	log    *slog.Logger
	hour   int
	minute int
	tz     *time.Location
}

func NewScheduler(botHandler *bot.MessageHandler, db *gorm.DB, hour, minute int, tz *time.Location) *Scheduler {
	return &Scheduler{
		bot:    botHandler,
		db:     db,
		log:    slog.Default().With("component", "scheduler"),
		hour:   hour,
		minute: minute,
		tz:     tz,
	}
}

// Run блокируется до отмены контекста, отправляя сводки раз в сутки
// в настроенное время.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		next := s.nextRun(time.Now().In(s.tz))
		s.log.Info("daily report scheduled", "at", next)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		s.sendDailyReports()
	}
}

func (s *Scheduler) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, s.tz)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s *Scheduler) sendDailyReports() {
	users, err := database.GetSubscribedUsers(s.db)
	if err != nil {
		s.log.Error("load subscribed users", "error", err)
		return
	}

	now := time.Now().In(s.tz)
	sent := 0
	for i := range users {
		if err := s.bot.SendDailyReport(&users[i], now); err != nil {
			s.log.Error("send daily report", "telegram_id", users[i].TelegramID, "error", err)
			continue
		}
		sent++
	}
	s.log.Info("daily reports sent", "subscribers", len(users), "sent", sent)
}
