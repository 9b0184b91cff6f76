package bot

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"calendarbot/internal/client"
	"calendarbot/internal/repositories"
)

// telegramClient is the slice of *tgbotapi.BotAPI the bot uses.
type telegramClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot wires the Telegram update loop to the event API client and the
// per-conversation draft store.
type Bot struct {
	api    telegramClient
	events *client.Client
	drafts repositories.DraftRepository
	window int
}

func New(api *tgbotapi.BotAPI, events *client.Client, drafts repositories.DraftRepository, windowDays int) (*Bot, error) {
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Show the welcome menu"},
		{Command: "help", Description: "Show the welcome menu"},
		{Command: "create", Description: "Schedule a new event"},
		{Command: "events", Description: "List your upcoming events"},
	}
	if _, err := api.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		return nil, err
	}

	log.Printf("Bot %s authorized", api.Self.UserName)
	return &Bot{api: api, events: events, drafts: drafts, window: windowDays}, nil
}

// Run consumes updates until the context is canceled. Each update is
// dispatched on its own goroutine, so a slow network call in one
// conversation never delays the others; all per-conversation state
// lives in the draft store, keyed by sender.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.dispatch(ctx, update)
		}
	}
}

// dispatch routes one update. Handler failures are logged per update
// and never stop the loop.
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) answer(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Printf("failed to answer callback: %v", err)
	}
}
