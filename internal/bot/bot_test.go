package bot

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/julianstephens/habitbot/internal/constants"
	"github.com/julianstephens/habitbot/internal/models"
	"github.com/julianstephens/habitbot/internal/session"
	"github.com/julianstephens/habitbot/internal/storage/sqlite"
)

const adminID = int64(999)

// fakeAPI records every outbound call. The mutex matters because the
// broadcast path sends from its own goroutine.
type fakeAPI struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	copies   []int64
	failCopy map[int64]bool
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	msg := tgbotapi.Message{MessageID: len(f.sent), Chat: &tgbotapi.Chat{}}
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		msg.Chat.ID = m.ChatID
	}
	return msg, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) CopyMessage(c tgbotapi.CopyMessageConfig) (tgbotapi.MessageID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.copies = append(f.copies, c.ChatID)
	if f.failCopy[c.ChatID] {
		return tgbotapi.MessageID{}, errors.New("forbidden: bot was blocked by the user")
	}
	return tgbotapi.MessageID{MessageID: 1}, nil
}

// sentTexts returns the text of every new message and edit, in order.
func (f *fakeAPI) sentTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, m.Text)
		case tgbotapi.EditMessageTextConfig:
			out = append(out, m.Text)
		}
	}
	return out
}

// answers returns every callback answer as (text, alert) pairs.
func (f *fakeAPI) answers() []tgbotapi.CallbackConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tgbotapi.CallbackConfig
	for _, c := range f.requests {
		if cb, ok := c.(tgbotapi.CallbackConfig); ok {
			out = append(out, cb)
		}
	}
	return out
}

func newTestBot(t *testing.T) (*Bot, *fakeAPI, *sqlite.Store) {
	t.Helper()
	store := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("store Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	api := &fakeAPI{failCopy: map[int64]bool{}}
	return New(api, store, session.NewManager(), adminID), api, store
}

func textMessage(userID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 10,
		From:      &tgbotapi.User{ID: userID, FirstName: "Alice", UserName: "alice"},
		Chat:      &tgbotapi.Chat{ID: userID},
		Text:      text,
	}
}

func commandMessage(userID int64, text string) *tgbotapi.Message {
	msg := textMessage(userID, text)
	cmd := text
	if i := strings.IndexByte(text, ' '); i > 0 {
		cmd = text[:i]
	}
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}}
	return msg
}

func callbackQuery(userID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		From:    &tgbotapi.User{ID: userID},
		Data:    data,
		Message: &tgbotapi.Message{MessageID: 5, Chat: &tgbotapi.Chat{ID: userID}},
	}
}

func lastContaining(texts []string, substr string) bool {
	for _, s := range texts {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func TestCmdStart(t *testing.T) {
	b, api, store := newTestBot(t)

	b.HandleUpdate(tgbotapi.Update{Message: commandMessage(7, "/start")})

	u, err := store.GetUser(7)
	if err != nil {
		t.Fatalf("user was not registered: %v", err)
	}
	if u.Username != "alice" || u.IsAdmin {
		t.Errorf("registered user = %+v", u)
	}
	if !lastContaining(api.sentTexts(), "Hi, Alice") {
		t.Errorf("greeting not sent; texts = %q", api.sentTexts())
	}
}

func TestCmdStartRecomputesAdmin(t *testing.T) {
	b, _, store := newTestBot(t)

	b.HandleUpdate(tgbotapi.Update{Message: commandMessage(adminID, "/start")})

	u, err := store.GetUser(adminID)
	if err != nil {
		t.Fatalf("admin was not registered: %v", err)
	}
	if !u.IsAdmin {
		t.Error("IsAdmin = false for the configured admin")
	}
}

func TestIdleFreeText(t *testing.T) {
	b, api, _ := newTestBot(t)

	b.HandleUpdate(tgbotapi.Update{Message: textMessage(7, "hello?")})

	if !lastContaining(api.sentTexts(), "I don't understand") {
		t.Errorf("unknown-input hint not sent; texts = %q", api.sentTexts())
	}
}

func TestHabitCreationDialog(t *testing.T) {
	b, api, store := newTestBot(t)

	// Button press opens the name step.
	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callbackQuery(7, "new_habit")})
	if got := b.sessions.Get(7).Stage; got != session.AwaitingHabitName {
		t.Fatalf("stage = %v, want AwaitingHabitName", got)
	}

	// Invalid name re-prompts without advancing.
	b.HandleUpdate(tgbotapi.Update{Message: textMessage(7, "ab")})
	if got := b.sessions.Get(7).Stage; got != session.AwaitingHabitName {
		t.Fatalf("stage after invalid name = %v, want AwaitingHabitName", got)
	}
	if !lastContaining(api.sentTexts(), "won't work") {
		t.Errorf("re-prompt not sent; texts = %q", api.sentTexts())
	}

	// Valid name advances to the description step.
	b.HandleUpdate(tgbotapi.Update{Message: textMessage(7, "Read")})
	state := b.sessions.Get(7)
	if state.Stage != session.AwaitingHabitDescription || state.HabitName != "Read" {
		t.Fatalf("state after name = %+v", state)
	}

	// /skip commits the habit with the no-description sentinel.
	b.HandleUpdate(tgbotapi.Update{Message: commandMessage(7, "/skip")})
	if got := b.sessions.Get(7).Stage; got != session.Idle {
		t.Errorf("stage after commit = %v, want Idle", got)
	}

	habits, err := store.GetUserHabits(7)
	if err != nil {
		t.Fatalf("GetUserHabits() failed: %v", err)
	}
	if len(habits) != 1 {
		t.Fatalf("got %d habits, want 1", len(habits))
	}
	if habits[0].Name != "Read" || habits[0].Description != constants.NoDescription {
		t.Errorf("created habit = %+v", habits[0])
	}
}

func TestGlobalCommandWinsOverDialog(t *testing.T) {
	b, api, _ := newTestBot(t)

	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callbackQuery(7, "new_habit")})
	b.HandleUpdate(tgbotapi.Update{Message: commandMessage(7, "/cancel")})

	if got := b.sessions.Get(7).Stage; got != session.Idle {
		t.Errorf("stage after /cancel = %v, want Idle", got)
	}
	if !lastContaining(api.sentTexts(), "Cancelled") {
		t.Errorf("cancellation notice not sent; texts = %q", api.sentTexts())
	}
}

func TestCancelWhenIdle(t *testing.T) {
	b, api, _ := newTestBot(t)

	b.HandleUpdate(tgbotapi.Update{Message: commandMessage(7, "/cancel")})

	if !lastContaining(api.sentTexts(), "Nothing to cancel") {
		t.Errorf("idle cancel notice not sent; texts = %q", api.sentTexts())
	}
}

func TestCallbackRouting(t *testing.T) {
	b, api, store := newTestBot(t)
	id, err := store.AddHabit(7, "Read", "20 pages")
	if err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}
	if _, err := store.TrackHabit(id, models.StatusCompleted); err != nil {
		t.Fatalf("TrackHabit() failed: %v", err)
	}

	t.Run("habit_stats goes to the stats view", func(t *testing.T) {
		b.HandleUpdate(tgbotapi.Update{CallbackQuery: callbackQuery(7, "habit_stats_"+itoa(id))})
		texts := api.sentTexts()
		if !lastContaining(texts, "Statistics: Read") {
			t.Errorf("stats view not rendered; texts = %q", texts)
		}
	})

	t.Run("habit goes to the detail view", func(t *testing.T) {
		b.HandleUpdate(tgbotapi.Update{CallbackQuery: callbackQuery(7, "habit_"+itoa(id))})
		if !lastContaining(api.sentTexts(), "Choose an action") {
			t.Errorf("detail view not rendered; texts = %q", api.sentTexts())
		}
	})
}

func TestStaleHabitButton(t *testing.T) {
	b, api, _ := newTestBot(t)

	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callbackQuery(7, "habit_404")})

	answers := api.answers()
	if len(answers) != 1 {
		t.Fatalf("got %d callback answers, want 1", len(answers))
	}
	if !answers[0].ShowAlert || answers[0].Text != notFoundText {
		t.Errorf("answer = %+v, want not-found alert", answers[0])
	}
}

func TestMalformedCallbackDropped(t *testing.T) {
	b, api, _ := newTestBot(t)

	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callbackQuery(7, "habit_abc")})

	if len(api.sentTexts()) != 0 {
		t.Errorf("malformed payload produced output: %q", api.sentTexts())
	}
	answers := api.answers()
	if len(answers) != 1 || answers[0].Text != "" || answers[0].ShowAlert {
		t.Errorf("answers = %+v, want a single silent acknowledgment", answers)
	}
}

func TestMarkHabit(t *testing.T) {
	b, api, store := newTestBot(t)
	id, err := store.AddHabit(7, "Read", "")
	if err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}

	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callbackQuery(7, "complete_"+itoa(id))})
	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callbackQuery(7, "complete_"+itoa(id))})

	answers := api.answers()
	if len(answers) != 2 {
		t.Fatalf("got %d callback answers, want 2", len(answers))
	}
	if !strings.Contains(answers[0].Text, "Marked as done") {
		t.Errorf("first toast = %q, want fresh-mark wording", answers[0].Text)
	}
	if !strings.Contains(answers[1].Text, "updated") {
		t.Errorf("second toast = %q, want overwrite wording", answers[1].Text)
	}

	status, err := store.GetTodayStatus(id)
	if err != nil {
		t.Fatalf("GetTodayStatus() failed: %v", err)
	}
	if status != models.StatusCompleted {
		t.Errorf("today's status = %q, want completed", status)
	}
}

func TestAdminDenied(t *testing.T) {
	b, api, _ := newTestBot(t)

	for _, data := range []string{"admin_panel", "admin_users", "admin_stats", "admin_broadcast"} {
		b.HandleUpdate(tgbotapi.Update{CallbackQuery: callbackQuery(7, data)})
	}

	answers := api.answers()
	if len(answers) != 4 {
		t.Fatalf("got %d callback answers, want 4", len(answers))
	}
	for i, a := range answers {
		if !a.ShowAlert || a.Text != accessDeniedText {
			t.Errorf("answer %d = %+v, want access-denied alert", i, a)
		}
	}
	if b.sessions.Get(7).Stage != session.Idle {
		t.Error("denied broadcast request still opened a session")
	}
}

func TestBroadcastFlow(t *testing.T) {
	b, api, store := newTestBot(t)
	for _, u := range []models.User{
		{ID: 1, RegisteredDate: "2025-01-01"},
		{ID: 2, RegisteredDate: "2025-01-02"},
		{ID: 3, RegisteredDate: "2025-01-03"},
	} {
		if err := store.UpsertUser(u); err != nil {
			t.Fatalf("UpsertUser() failed: %v", err)
		}
	}
	api.failCopy[2] = true

	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callbackQuery(adminID, "admin_broadcast")})
	if got := b.sessions.Get(adminID).Stage; got != session.AwaitingBroadcastMessage {
		t.Fatalf("stage = %v, want AwaitingBroadcastMessage", got)
	}

	b.HandleUpdate(tgbotapi.Update{Message: textMessage(adminID, "Big news, everyone!")})
	if got := b.sessions.Get(adminID).Stage; got != session.Idle {
		t.Errorf("stage after authoring = %v, want Idle", got)
	}

	// Delivery runs in the background; wait for the summary edit.
	deadline := time.Now().Add(2 * time.Second)
	for !lastContaining(api.sentTexts(), "Broadcast finished") {
		if time.Now().After(deadline) {
			t.Fatalf("broadcast never finished; texts = %q", api.sentTexts())
		}
		time.Sleep(10 * time.Millisecond)
	}

	api.mu.Lock()
	copies := append([]int64(nil), api.copies...)
	api.mu.Unlock()
	if len(copies) != 3 {
		t.Errorf("copied to %d recipients, want 3", len(copies))
	}

	texts := api.sentTexts()
	if !lastContaining(texts, "Delivered: 2") || !lastContaining(texts, "Failed: 1") {
		t.Errorf("summary missing per-outcome counts; texts = %q", texts)
	}
}

func TestNonAdminBroadcastInputDenied(t *testing.T) {
	b, api, _ := newTestBot(t)

	// A session forced into the broadcast stage must still fail the
	// admin re-check at authoring time.
	b.sessions.Begin(7, session.AwaitingBroadcastMessage)
	b.HandleUpdate(tgbotapi.Update{Message: textMessage(7, "sneaky broadcast")})

	if b.sessions.Get(7).Stage != session.Idle {
		t.Error("session not cleared after denial")
	}
	if !lastContaining(api.sentTexts(), accessDeniedText) {
		t.Errorf("denial not sent; texts = %q", api.sentTexts())
	}
	if len(api.copies) != 0 {
		t.Errorf("copied to %d recipients, want 0", len(api.copies))
	}
}

func TestHandlerErrorBoundary(t *testing.T) {
	b, api, store := newTestBot(t)

	// Closing the store makes UpsertUser fail; the boundary must answer
	// with the generic notice instead of propagating.
	store.Close()
	b.HandleUpdate(tgbotapi.Update{Message: commandMessage(7, "/start")})

	if !lastContaining(api.sentTexts(), "Something went wrong") {
		t.Errorf("generic error notice not sent; texts = %q", api.sentTexts())
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
