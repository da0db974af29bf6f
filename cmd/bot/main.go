package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/okravets/barberflow/internal/app/bootstrap"
	"github.com/okravets/barberflow/internal/booking"
	"github.com/okravets/barberflow/internal/catalog"
	"github.com/okravets/barberflow/internal/clients"
	appconfig "github.com/okravets/barberflow/internal/config"
	"github.com/okravets/barberflow/internal/conversation"
	"github.com/okravets/barberflow/internal/http/handlers"
	"github.com/okravets/barberflow/internal/http/router"
	"github.com/okravets/barberflow/internal/observability/metrics"
	"github.com/okravets/barberflow/internal/reminder"
	"github.com/okravets/barberflow/internal/settings"
	"github.com/okravets/barberflow/internal/telegram"
	"github.com/okravets/barberflow/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting barberflow bot",
		"env", cfg.Env,
		"http_port", cfg.HTTPPort,
	)

	if cfg.TelegramToken == "" {
		logger.Error("TELEGRAM_BOT_TOKEN is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := bootstrap.BuildPgxPool(ctx, cfg)
	if err != nil {
		logger.Error("postgres unavailable", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	sessions := bootstrap.BuildSessionStore(redisClient, cfg, logger)

	bookingMetrics := metrics.NewBookingMetrics(prometheus.DefaultRegisterer)

	// Stores.
	profileStore := clients.NewStore(pool)
	settingsStore := settings.NewStore(pool)
	catalogStore := catalog.NewStore(pool)
	appointmentStore := booking.NewStore(pool)
	jobStore := reminder.NewStore(pool)

	// Services.
	availability := booking.NewAvailability(appointmentStore,
		cfg.OpenHour, cfg.CloseHour, cfg.SlotInterval, cfg.LeadTime, cfg.BookingDays, time.Now)
	bookingService := booking.NewService(appointmentStore, profileStore, settingsStore, cfg, bookingMetrics, logger)
	scheduler := reminder.NewScheduler(jobStore, logger, time.Now)

	// Telegram transport.
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logger.Error("telegram auth failed", "error", err)
		os.Exit(1)
	}
	bot := telegram.New(api, logger, cfg.WorkerCount)

	engine := conversation.NewEngine(conversation.EngineConfig{
		Sessions:     sessions,
		Profiles:     profileStore,
		Booker:       bookingService,
		Slots:        availability,
		Appointments: appointmentStore,
		Reminders:    scheduler,
		Catalog:      catalogStore,
		Settings:     settingsStore,
		Outbound:     bot,
		Metrics:      bookingMetrics,
		Logger:       logger,
		AdminChatID:  cfg.AdminChatID,
	})
	bot.SetHandler(engine)

	// Reminder delivery loop.
	worker := reminder.NewWorker(jobStore, appointmentStore, bot, bookingMetrics, logger, time.Now)
	go worker.Run(ctx, cfg.ReminderPollInterval)

	// Daily sweep of appointments whose slot has passed.
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.CleanupSchedule, func() {
		n, err := appointmentStore.DeletePast(ctx, time.Now())
		if err != nil {
			logger.Error("cleanup: delete past appointments failed", "error", err)
			return
		}
		logger.Info("cleanup: removed past appointments", "count", n)
	}); err != nil {
		logger.Error("cleanup: invalid schedule", "schedule", cfg.CleanupSchedule, "error", err)
		os.Exit(1)
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Ops HTTP server: health, metrics, admin API.
	adminHandler := handlers.NewAdminHandler(appointmentStore, profileStore, settingsStore, catalogStore, logger)
	srv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: router.New(router.Config{
			Admin:          adminHandler,
			AdminJWTSecret: cfg.AdminJWTSecret,
			Logger:         logger,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("ops server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("ops server error", "error", err)
			os.Exit(1)
		}
	}()

	go bot.Run(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("ops server forced to shutdown", "error", err)
	}

	logger.Info("stopped")
}
