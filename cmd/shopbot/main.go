package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	tele "gopkg.in/telebot.v4"

	"shopbot/core/config"
	"shopbot/core/database"
	"shopbot/core/logger"
	"shopbot/core/telegram"
	"shopbot/internal/app"
	"shopbot/internal/archive"
	"shopbot/internal/engine"
	"shopbot/internal/health"
	"shopbot/internal/janitor"

	"log/slog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("shopbot: %v", err)
	}
}

func run() error {
	// Local development convenience; missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	logger.Init(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	var arch engine.Archiver
	if cfg.Database.Enabled() {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := database.RunMigrations(cfg.Database); err != nil {
			return err
		}
		arch = archive.NewStore(db)
	} else {
		logger.L.Info("archive disabled, no database configured",
			slog.String("event", "archive.disabled"),
		)
	}

	a, err := app.New(cfg, arch)
	if err != nil {
		return err
	}

	hs := health.NewServer(cfg.Shop.Name, a.Sessions, a.Orders)
	hs.Start(cfg.Health.Listen)
	defer hs.Shutdown()

	jan := janitor.New(a.Engine)
	if err := jan.Start(cfg.Lifecycle.SweepSchedule); err != nil {
		return err
	}
	defer jan.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	startedAt := time.Now()
	return telegram.Run(ctx, a.Dispatcher, telegram.Options{
		Config: cfg,
		Routes: a.Routes(),
		OnStart: func(ctx context.Context, bot *tele.Bot) error {
			a.Bind(bot)
			logger.L.Info("bot ready",
				slog.String("event", "ready"),
				slog.String("username", bot.Me.Username),
				slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
			)
			return nil
		},
		OnStop: func(ctx context.Context, bot *tele.Bot) error {
			logger.L.Info("shutting down...",
				slog.String("event", "shutdown"),
			)
			return nil
		},
	})
}
