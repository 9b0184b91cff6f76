package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"calendarbot/internal/models"
	"calendarbot/internal/repositories"
)

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.From == nil {
		b.answer(cq.ID, "")
		return
	}

	data := cq.Data
	switch {
	case data == "ignore":
		b.answer(cq.ID, "")
	case data == "cancel":
		b.handleCancel(cq)
	case strings.HasPrefix(data, "create_"):
		b.handleDateSelected(ctx, cq)
	case strings.HasPrefix(data, "prev_"), strings.HasPrefix(data, "next_"):
		b.handleMonthNav(cq)
	case strings.HasPrefix(data, "toggle_"):
		b.handleToggle(ctx, cq)
	default:
		b.answer(cq.ID, "Unknown action")
	}
}

// handleDateSelected starts a draft for the chosen date, collapses the
// calendar into a confirmation line and asks for the event name. The
// draft is keyed by the pressing user, the replies go to the chat.
func (b *Bot) handleDateSelected(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID

	date, err := parseDayCallback(cq.Data)
	if err != nil {
		log.Printf("bad calendar callback %q: %v", cq.Data, err)
		b.answer(cq.ID, "Unknown action")
		return
	}

	draft := &models.EventDraft{
		UserID: cq.From.ID,
		Step:   models.StepAwaitingName,
		Date:   date,
	}
	if err := b.drafts.PutDraft(ctx, draft); err != nil {
		log.Printf("failed to store draft for user %d: %v", cq.From.ID, err)
		b.answer(cq.ID, "Something went wrong, try again.")
		return
	}

	b.answer(cq.ID, fmt.Sprintf("Date selected: %s", date))
	b.send(tgbotapi.NewEditMessageText(chatID, cq.Message.MessageID, fmt.Sprintf("Selected date: %s", date)))
	b.send(tgbotapi.NewMessage(chatID, "Please enter the event name:"))
}

func (b *Bot) handleMonthNav(cq *tgbotapi.CallbackQuery) {
	year, month, err := parseMonthCallback(cq.Data)
	if err != nil {
		log.Printf("bad navigation callback %q: %v", cq.Data, err)
		b.answer(cq.ID, "Unknown action")
		return
	}

	markup := MonthKeyboard(year, month)
	b.send(tgbotapi.NewEditMessageReplyMarkup(cq.Message.Chat.ID, cq.Message.MessageID, markup))
	b.answer(cq.ID, "")
}

func (b *Bot) handleCancel(cq *tgbotapi.CallbackQuery) {
	b.answer(cq.ID, "Selection canceled.")
	edit := tgbotapi.NewEditMessageReplyMarkup(cq.Message.Chat.ID, cq.Message.MessageID,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}})
	b.send(edit)
}

// handleToggle expands one date group of the cached listing in place.
func (b *Bot) handleToggle(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	date, err := models.ParseDate(strings.TrimPrefix(cq.Data, "toggle_"))
	if err != nil {
		log.Printf("bad toggle callback %q: %v", cq.Data, err)
		b.answer(cq.ID, "Unknown action")
		return
	}

	listing, err := b.drafts.GetListing(ctx, cq.From.ID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		log.Printf("failed to load listing for user %d: %v", cq.From.ID, err)
		b.answer(cq.ID, "Could not load your events, run /events again.")
		return
	}

	events := listing[date]
	if len(events) == 0 {
		b.answer(cq.ID, "No events for this date")
		return
	}

	text, keyboard := buildDetailsView(date, events)
	b.send(tgbotapi.NewEditMessageTextAndMarkup(cq.Message.Chat.ID, cq.Message.MessageID, text, keyboard))
	b.answer(cq.ID, "")
}

// parseDayCallback decodes "create_{year}_{month}_{day}". The day must
// exist in the given month; forged data like day 31 of April is
// rejected rather than normalized into the next month.
func parseDayCallback(data string) (models.Date, error) {
	var year, month, day int
	if _, err := fmt.Sscanf(data, "create_%d_%d_%d", &year, &month, &day); err != nil {
		return models.Date{}, err
	}
	if month < 1 || month > 12 {
		return models.Date{}, fmt.Errorf("month out of range: %s", data)
	}
	if day < 1 || day > daysInMonth(year, time.Month(month)) {
		return models.Date{}, fmt.Errorf("day out of range: %s", data)
	}
	return models.NewDate(year, time.Month(month), day), nil
}

// parseMonthCallback decodes "prev_{year}_{month}" or "next_{year}_{month}".
func parseMonthCallback(data string) (int, time.Month, error) {
	parts := strings.Split(data, "_")
	if len(parts) != 3 {
		return 0, 0, fmt.Errorf("bad callback data: %s", data)
	}

	var year, month int
	if _, err := fmt.Sscanf(parts[1]+" "+parts[2], "%d %d", &year, &month); err != nil {
		return 0, 0, err
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month out of range: %s", data)
	}
	return year, time.Month(month), nil
}
