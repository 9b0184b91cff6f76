package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"calendarbot/internal/models"
	"calendarbot/internal/repositories"
)

const welcomeText = "Hey! Welcome to the Event Reminder Bot!\n\n" +
	"Use the menu below to get started:\n" +
	"/create – Schedule a new event\n" +
	"/events – List your upcoming events\n" +
	"/help – Show this menu again"

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleDraftInput(ctx, msg)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		b.send(tgbotapi.NewMessage(msg.Chat.ID, welcomeText))
	case "create":
		b.cmdCreate(msg)
	case "events":
		b.cmdEvents(ctx, msg)
	default:
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "Unknown command. Use /help"))
	}
}

func (b *Bot) cmdCreate(msg *tgbotapi.Message) {
	now := time.Now()
	out := tgbotapi.NewMessage(msg.Chat.ID, "Select a date:")
	out.ReplyMarkup = MonthKeyboard(now.Year(), now.Month())
	b.send(out)
}

// cmdEvents lists the sender's events. Events belong to the sender,
// not the chat, so in a group every member sees their own list.
func (b *Bot) cmdEvents(ctx context.Context, msg *tgbotapi.Message) {
	listing, err := b.events.EventsByUser(ctx, msg.From.ID, b.window)
	if err != nil {
		log.Printf("failed to fetch events for user %d: %v", msg.From.ID, err)
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "Could not fetch your events, please try again later."))
		return
	}
	if len(listing) == 0 {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "You have no events planned. Try adding one with /create!"))
		return
	}

	// The toggle buttons replay this snapshot instead of re-fetching.
	if err := b.drafts.PutListing(ctx, msg.From.ID, listing); err != nil {
		log.Printf("failed to cache listing for user %d: %v", msg.From.ID, err)
	}

	text, keyboard := buildListingView(listing)
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyMarkup = keyboard
	b.send(out)
}

// handleDraftInput advances the create dialog with free-text input.
// Senders without an active draft are idle and the text is ignored.
func (b *Bot) handleDraftInput(ctx context.Context, msg *tgbotapi.Message) {
	draft, err := b.drafts.GetDraft(ctx, msg.From.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("failed to load draft for user %d: %v", msg.From.ID, err)
		return
	}

	reply, err := b.advanceDraft(ctx, draft, strings.TrimSpace(msg.Text))
	if err != nil {
		log.Printf("failed to advance draft for user %d: %v", msg.From.ID, err)
		reply = "Something went wrong while saving your event. Start over with /create."
	}
	if reply != "" {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, reply))
	}
}

// advanceDraft runs one transition of the creation state machine and
// returns the reply to show. An unparseable time leaves the draft
// untouched so the user can retry.
func (b *Bot) advanceDraft(ctx context.Context, draft *models.EventDraft, text string) (string, error) {
	switch draft.Step {
	case models.StepAwaitingName:
		draft.Name = text
		draft.Step = models.StepAwaitingTime
		if err := b.drafts.PutDraft(ctx, draft); err != nil {
			return "", err
		}
		return "Please enter the event time (e.g., HH:MM):", nil

	case models.StepAwaitingTime:
		timeOfDay, err := models.ParseTimeOfDay(text)
		if err != nil {
			return "Please enter a valid time in HH:MM format, e.g., 14:30.", nil
		}

		if err := b.events.CreateEvent(ctx, draft.UserID, draft.Date, timeOfDay, draft.Name); err != nil {
			if delErr := b.drafts.DeleteDraft(ctx, draft.UserID); delErr != nil {
				log.Printf("failed to delete draft for user %d: %v", draft.UserID, delErr)
			}
			return "", err
		}
		if err := b.drafts.DeleteDraft(ctx, draft.UserID); err != nil {
			log.Printf("failed to delete draft for user %d: %v", draft.UserID, err)
		}

		return fmt.Sprintf("Your event details:\nDate: %s\nName: %s\nTime: %s",
			draft.Date, draft.Name, timeOfDay), nil

	default:
		// Unknown step, reset the conversation.
		if err := b.drafts.DeleteDraft(ctx, draft.UserID); err != nil {
			log.Printf("failed to delete draft for user %d: %v", draft.UserID, err)
		}
		return "", nil
	}
}

func buildListingView(listing map[models.Date][]models.Event) (string, tgbotapi.InlineKeyboardMarkup) {
	dates := sortedDates(listing)

	lines := []string{"Your upcoming events:", ""}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, date := range dates {
		lines = append(lines, fmt.Sprintf("%s – %d %s", date, len(listing[date]), plural(len(listing[date]))))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("Show details for %s", date),
				fmt.Sprintf("toggle_%s", date),
			),
		))
	}

	return strings.Join(lines, "\n"), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildDetailsView(date models.Date, events []models.Event) (string, tgbotapi.InlineKeyboardMarkup) {
	lines := []string{fmt.Sprintf("%s – %d %s", date, len(events), plural(len(events)))}
	for _, event := range events {
		lines = append(lines, fmt.Sprintf("  • %s at %s", event.Description, event.Time))
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("Selected date: %s", date), "ignore"),
	))
	return strings.Join(lines, "\n"), keyboard
}

func sortedDates(listing map[models.Date][]models.Event) []models.Date {
	dates := make([]models.Date, 0, len(listing))
	for date := range listing {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j].Time) })
	return dates
}

func plural(n int) string {
	if n == 1 {
		return "event"
	}
	return "events"
}
