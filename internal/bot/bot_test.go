package bot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calendarbot/internal/client"
	"calendarbot/internal/models"
	"calendarbot/internal/repositories"
)

// fakeTelegram implements telegramClient and records outgoing traffic.
type fakeTelegram struct {
	mu      sync.Mutex
	sent    []tgbotapi.Chattable
	answers []string
	sentCh  chan tgbotapi.Chattable
	updates chan tgbotapi.Update
}

func newFakeTelegram() *fakeTelegram {
	return &fakeTelegram{
		sentCh:  make(chan tgbotapi.Chattable, 16),
		updates: make(chan tgbotapi.Update, 16),
	}
}

func (f *fakeTelegram) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	f.sent = append(f.sent, c)
	f.mu.Unlock()
	f.sentCh <- c
	return tgbotapi.Message{}, nil
}

func (f *fakeTelegram) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		f.mu.Lock()
		f.answers = append(f.answers, cb.Text)
		f.mu.Unlock()
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeTelegram) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeTelegram) StopReceivingUpdates() {}

func textMessage(userID, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
}

func commandMessage(userID, chatID int64, text string) *tgbotapi.Message {
	msg := textMessage(userID, chatID, text)
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}}
	return msg
}

func callbackQuery(userID, chatID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb1",
		From:    &tgbotapi.User{ID: userID},
		Message: &tgbotapi.Message{MessageID: 5, Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}
}

func TestRun_SlowConversationDoesNotBlockOthers(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	drafts := newMemoryDraftRepo()
	fake := newFakeTelegram()
	b := &Bot{api: fake, events: client.New(server.URL, "bot", "secret"), drafts: drafts, window: 7}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	require.NoError(t, drafts.PutDraft(ctx, &models.EventDraft{
		UserID: 1, Step: models.StepAwaitingTime, Date: models.NewDate(2025, time.April, 14), Name: "Dinner",
	}))

	go b.Run(ctx)

	// The first user submits a time and stalls inside the API call; the
	// second user's command must still get its reply.
	fake.updates <- tgbotapi.Update{Message: textMessage(1, 1, "20:43")}
	fake.updates <- tgbotapi.Update{Message: commandMessage(2, 2, "/help")}

	select {
	case c := <-fake.sentCh:
		msg, ok := c.(tgbotapi.MessageConfig)
		require.True(t, ok)
		assert.Equal(t, int64(2), msg.ChatID)
		assert.Contains(t, msg.Text, "Welcome")
	case <-time.After(2 * time.Second):
		t.Fatal("reply to the second conversation never arrived")
	}
}

func TestCmdEvents_QueriesBySenderNotChat(t *testing.T) {
	var gotUserIDs []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserIDs = r.URL.Query()["userIds"]
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "event not found"}`))
	}))
	t.Cleanup(server.Close)

	fake := newFakeTelegram()
	b := &Bot{api: fake, events: client.New(server.URL, "bot", "secret"), drafts: newMemoryDraftRepo(), window: 7}

	// /events issued inside a group chat lists the sender's own events.
	b.cmdEvents(context.Background(), commandMessage(7, -100200, "/events"))

	assert.Equal(t, []string{"7"}, gotUserIDs)
	require.Len(t, fake.sent, 1)
	msg, ok := fake.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(-100200), msg.ChatID)
	assert.Contains(t, msg.Text, "no events")
}

func TestHandleDateSelected_DraftKeyedBySender(t *testing.T) {
	drafts := newMemoryDraftRepo()
	fake := newFakeTelegram()
	b := &Bot{api: fake, drafts: drafts, window: 7}

	b.handleDateSelected(context.Background(), callbackQuery(7, -100200, "create_2025_4_14"))

	draft, err := drafts.GetDraft(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, models.StepAwaitingName, draft.Step)
	assert.Equal(t, "2025-04-14", draft.Date.String())
}

func TestHandleToggle_UsesPressingUsersListing(t *testing.T) {
	date := models.NewDate(2025, time.April, 14)
	drafts := newMemoryDraftRepo()
	require.NoError(t, drafts.PutListing(context.Background(), 7, map[models.Date][]models.Event{
		date: {{Description: "Dinner", Time: models.TimeOfDay{Hour: 20, Minute: 43}}},
	}))

	fake := newFakeTelegram()
	b := &Bot{api: fake, drafts: drafts, window: 7}

	b.handleToggle(context.Background(), callbackQuery(7, -100200, "toggle_2025-04-14"))

	require.Len(t, fake.sent, 1)
	edit, ok := fake.sent[0].(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, int64(-100200), edit.ChatID)
	assert.Contains(t, edit.Text, "Dinner")
}

// brokenListingRepo simulates a Redis outage on listing reads.
type brokenListingRepo struct {
	repositories.DraftRepository
}

func (brokenListingRepo) GetListing(ctx context.Context, userID int64) (map[models.Date][]models.Event, error) {
	return nil, errors.New("connection refused")
}

func TestHandleToggle_StoreFailureAsksForRetry(t *testing.T) {
	fake := newFakeTelegram()
	b := &Bot{api: fake, drafts: brokenListingRepo{newMemoryDraftRepo()}, window: 7}

	b.handleToggle(context.Background(), callbackQuery(7, 7, "toggle_2025-04-14"))

	require.Len(t, fake.answers, 1)
	assert.Contains(t, fake.answers[0], "/events")
	assert.Empty(t, fake.sent)
}

func TestHandleToggle_MissingListingAnswersEmpty(t *testing.T) {
	fake := newFakeTelegram()
	b := &Bot{api: fake, drafts: newMemoryDraftRepo(), window: 7}

	b.handleToggle(context.Background(), callbackQuery(7, 7, "toggle_2025-04-14"))

	require.Len(t, fake.answers, 1)
	assert.Equal(t, "No events for this date", fake.answers[0])
}
