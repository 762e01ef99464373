package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"BudgetBot/internal/bot"
	"BudgetBot/internal/config"
	"BudgetBot/internal/database"
	"BudgetBot/internal/scheduler"
	"BudgetBot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"
)

func monitorStorage(ctx context.Context, botStorage *storage.MemoryStorage) {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			slog.Info("storage stats", "caches", botStorage.Stats())
		}
	}
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DB)
	if err != nil {
		slog.Error("connect database", "error", err)
		os.Exit(1)
	}
	if err := database.AutoMigrate(db); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	botStorage, err := storage.NewMemoryStorage()
	if err != nil {
		slog.Error("create storage", "error", err)
		os.Exit(1)
	}
	defer botStorage.Close()

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		slog.Error("create bot api", "error", err)
		os.Exit(1)
	}
	slog.Info("authorized", "account", api.Self.UserName)

	// работаем через long polling, поэтому снимаем возможный webhook
	// вместе с накопившимися за простой обновлениями
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		slog.Error("delete webhook", "error", err)
		os.Exit(1)
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = cfg.PollTimeout
	updates := api.GetUpdatesChan(updateConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	updateHandler := bot.NewUpdateHandler(api, botStorage, db, cfg.ManagerID, cfg.TimeZone)
	dailyReports := scheduler.NewScheduler(updateHandler.MessageHandler(), db, cfg.ReportHour, cfg.ReportMinute, cfg.TimeZone)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		updateHandler.HandleUpdates(updates)
		return nil
	})
	group.Go(func() error {
		return dailyReports.Run(ctx)
	})
	group.Go(func() error {
		monitorStorage(ctx, botStorage)
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		api.StopReceivingUpdates()
		return nil
	})

	slog.Info("bot started")
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("bot stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("bot gracefully stopped")
}
