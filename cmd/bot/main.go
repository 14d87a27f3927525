package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/app"
	"github.com/mentorhub/mentorhub-bot/internal/cache"
	"github.com/mentorhub/mentorhub-bot/internal/config"
	"github.com/mentorhub/mentorhub-bot/internal/controller"
	"github.com/mentorhub/mentorhub-bot/internal/platform"
	"github.com/mentorhub/mentorhub-bot/internal/repository"
	"github.com/mentorhub/mentorhub-bot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting mentorhub bot",
		zap.String("environment", cfg.Environment),
		zap.String("api_base_url", cfg.APIBaseURL))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to init migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	client := platform.NewClient(platform.Config{BaseURL: cfg.APIBaseURL}, logger)
	store := cache.NewStore()
	accountRepo := repository.NewAccountRepository(pool)

	accounts := service.NewAccountService(accountRepo, client, logger)
	sessions := service.NewSessionRequestService(client, store, logger)
	moderation := service.NewModerationService(client, store, logger)
	communities := service.NewCommunityService(client, logger)
	search := service.NewSearchService(client, service.DefaultSearchDebounce, logger)

	refetcher := app.NewRefetcher(accountRepo, moderation, cfg.RefetchInterval, logger)
	refetcher.Start(ctx)
	defer refetcher.Stop()

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		b,
		accounts,
		sessions,
		moderation,
		communities,
		search,
		logger,
	)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}
