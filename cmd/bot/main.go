package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"calendarbot/internal/bot"
	"calendarbot/internal/client"
	"calendarbot/internal/config"
	"calendarbot/internal/database"
	"calendarbot/internal/notifier"
	"calendarbot/internal/repositories"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	godotenv.Load()

	cfg, err := config.LoadBotConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to create redis client: %v", err)
	}
	defer redisClient.Close()

	drafts := repositories.NewRedisDraftRepository(redisClient, cfg.DraftTTL)
	events := client.New(cfg.APIURL, cfg.APIUser, cfg.APIPass)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("Failed to create telegram client: %v", err)
	}

	b, err := bot.New(api, events, drafts, cfg.WindowDays)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	// Daily notification batch shares the bot's transport.
	scheduler := cron.New()
	daily := notifier.New(api, events)
	if err := daily.Schedule(scheduler, cfg.NotifyHour); err != nil {
		log.Fatalf("Failed to schedule notifier: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Printf("Notifier scheduled daily at %02d:00", cfg.NotifyHour)
	if err := b.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Bot error: %v", err)
	}

	log.Println("Bot stopped gracefully")
}
