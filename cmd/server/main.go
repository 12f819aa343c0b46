package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/api"
	"github.com/JawwadIrshad/Resturant-App/internal/audit"
	"github.com/JawwadIrshad/Resturant-App/internal/chatbot"
	"github.com/JawwadIrshad/Resturant-App/internal/config"
	"github.com/JawwadIrshad/Resturant-App/internal/database"
	"github.com/JawwadIrshad/Resturant-App/internal/events"
	"github.com/JawwadIrshad/Resturant-App/internal/logging"
	"github.com/JawwadIrshad/Resturant-App/internal/menu"
	"github.com/JawwadIrshad/Resturant-App/internal/session"
	"github.com/JawwadIrshad/Resturant-App/internal/stock"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New("info", os.Stderr)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logging.New(cfg.LogLevel, os.Stdout)
	for _, w := range cfg.Warnings() {
		log.Warn().Msg(w)
	}

	menuItems, err := menu.LoadFile(cfg.MenuFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.MenuFile).Msg("menu seed could not be loaded")
	}
	stockItems, err := stock.LoadFile(cfg.StockFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.StockFile).Msg("stock seed could not be loaded")
	}
	log.Info().Int("menu_items", len(menuItems)).Int("stock_items", len(stockItems)).Msg("seed data loaded")

	recorder := newRecorder(cfg, log)
	publisher := newPublisher(cfg, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("event publisher close failed")
		}
	}()

	var onExpire func(string)
	if mem, ok := recorder.(*audit.MemoryRecorder); ok {
		onExpire = func(id string) { mem.Forget(id) }
	}

	registry := session.NewRegistry(session.Seed{Menu: menuItems, Stock: stockItems}, session.Options{
		TTL:      cfg.SessionTTL,
		OnExpire: onExpire,
		Chat: chatbot.Options{
			MinDelay:      cfg.ChatMinDelay,
			MaxDelay:      cfg.ChatMaxDelay,
			RatePerMinute: cfg.ChatRateLimit,
		},
		Log: log.With().Str("component", "session").Logger(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go registry.Run(ctx, time.Minute)

	app := api.NewApp(&api.Deps{
		Registry:           registry,
		Recorder:           recorder,
		Publisher:          publisher,
		Log:                log.With().Str("component", "api").Logger(),
		SessionSecret:      cfg.SessionSecret,
		SessionTTL:         cfg.SessionTTL,
		CORSOrigins:        cfg.CORSOrigins,
		DecrementMenuStock: cfg.DecrementMenuStock,
		AccessLog:          true,
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.HTTPPort).Msg("server starting")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newRecorder(cfg *config.Config, log zerolog.Logger) audit.Recorder {
	if cfg.DatabaseDSN == "" {
		return audit.NewMemoryRecorder(audit.DefaultMemoryLimit)
	}
	db, err := database.Open(cfg.DatabaseDSN, log.With().Str("component", "database").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	return audit.NewGormRecorder(db)
}

func newPublisher(cfg *config.Config, log zerolog.Logger) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NewLogPublisher(log.With().Str("component", "events").Logger())
	}
	log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing order events to kafka")
	return events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
}
