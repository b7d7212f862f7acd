package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/linemk/tuuze-market/internal/app"
	"github.com/linemk/tuuze-market/internal/config"
	"github.com/linemk/tuuze-market/internal/lib/logger"
	"github.com/linemk/tuuze-market/internal/mail"
	"github.com/linemk/tuuze-market/internal/storage"
	"github.com/pkg/errors"
)

// Фоновый сервис приветственных писем: раз в интервал выбирает продавцов без
// письма, отправляет и помечает строку в merchants
func main() {
	// .env удобен для локального запуска воркера; в проде переменные приходят из окружения
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := logger.SetupLogger(cfg.Env)
	log.Info("starting mailer", slog.String("env", cfg.Env))

	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	merchantRepo := storage.NewMerchantRepository(application.DB)
	dialer := mail.NewSMTPDialer(cfg.Mailer)
	mailer := mail.NewMailer(log, merchantRepo, dialer, cfg.Mailer.From)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		sign := <-stop
		log.Info("received shutdown signal", slog.String("signal", sign.String()))
		cancel()
	}()

	ticker := time.NewTicker(cfg.Mailer.Interval)
	defer ticker.Stop()

	for {
		sent, err := mailer.SendWelcomeEmails(ctx)
		if err != nil {
			log.Error("welcome email pass failed", slog.Any("error", err))
		} else if sent > 0 {
			log.Info("welcome email pass finished", slog.Int("sent", sent))
		}

		select {
		case <-ctx.Done():
			log.Info("mailer stopped")
			return
		case <-ticker.C:
		}
	}
}
