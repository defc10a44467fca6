package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/chatwarden/chatwarden/internal/biz"
	"github.com/chatwarden/chatwarden/internal/biz/usecase"
	"github.com/chatwarden/chatwarden/internal/conf"
	"github.com/chatwarden/chatwarden/internal/data"
	"github.com/chatwarden/chatwarden/internal/logger"
	"github.com/chatwarden/chatwarden/internal/server"

	"github.com/joho/godotenv"
	tb "gopkg.in/telebot.v3"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := conf.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	slogger := logger.New(cfg.LogLevel)

	// Initialize Telegram client
	bot, err := tb.NewBot(tb.Settings{
		Token:  cfg.BotToken,
		Poller: &tb.LongPoller{Timeout: cfg.PollTimeout()},
	})
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	// Initialize repository layer
	repos, err := data.NewRepositories(bot, cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to create repositories: %v", err)
	}
	slogger.Info("database opened", "path", cfg.DBPath)

	// Initialize usecase layer
	policy := usecase.NewPolicyState()
	ucs := &biz.Usecases{
		Moderation: usecase.NewModerationUsecase(
			repos.Chat, repos.Blacklist, repos.Violation, repos.Gateway, policy, slogger),
		Admin: usecase.NewAdminUsecase(
			repos.Chat, repos.Blacklist, repos.Violation, repos.Gateway, policy, cfg.AdminPassword, slogger),
	}

	// Initialize server
	srv := server.NewTelegramServer(bot, ucs, slogger)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slogger.Info("shutting down")
		srv.Stop()
		repos.Close()
		os.Exit(0)
	}()

	srv.Start()
}
