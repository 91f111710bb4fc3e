// Package bot routes inbound Telegram updates to handlers, holding the
// conversation state machine and the persistence layer together.
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/julianstephens/habitbot/internal/logger"
	"github.com/julianstephens/habitbot/internal/session"
	"github.com/julianstephens/habitbot/internal/storage"
)

type Bot struct {
	api      API
	store    storage.Provider
	sessions *session.Manager
	adminID  int64
}

func New(api API, store storage.Provider, sessions *session.Manager, adminID int64) *Bot {
	return &Bot{
		api:      api,
		store:    store,
		sessions: sessions,
		adminID:  adminID,
	}
}

// Run processes updates one at a time, in order, until the channel closes.
// Broadcast delivery is the only work that leaves this loop (it runs in
// its own goroutine), so one user's long operation never blocks another's
// button press for long.
func (b *Bot) Run(updates <-chan tgbotapi.Update) {
	logger.Info("Bot started", "admin", b.adminID)
	for update := range updates {
		b.HandleUpdate(update)
	}
	logger.Info("Bot stopped")
}

// HandleUpdate is the per-event error boundary: a failing handler is
// logged and answered with a generic notice, and the loop moves on. No
// handler error ever terminates event processing.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		if err := b.handleCallback(update.CallbackQuery); err != nil {
			logger.Error("Callback handler failed", "data", update.CallbackQuery.Data, "error", err)
			b.alert(update.CallbackQuery.ID, genericErrorText)
		}
	case update.Message != nil:
		if err := b.handleMessage(update.Message); err != nil {
			logger.Error("Message handler failed", "user", update.Message.From.ID, "error", err)
			b.reply(update.Message.Chat.ID, genericErrorText)
		}
	}
}

func (b *Bot) isAdmin(userID int64) bool {
	return userID == b.adminID
}

// reply sends a plain new message; send errors are logged, not propagated,
// since there is nothing further to do with an unreachable chat.
func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		logger.Error("Failed to send message", "chat", chatID, "error", err)
	}
}

func (b *Bot) replyHTML(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	if _, err := b.api.Send(msg); err != nil {
		logger.Error("Failed to send message", "chat", chatID, "error", err)
	}
}

// edit rewrites the triggering message in place, the way every menu
// transition works.
func (b *Bot) edit(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	var msg tgbotapi.Chattable
	if keyboard != nil {
		m := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *keyboard)
		m.ParseMode = tgbotapi.ModeHTML
		msg = m
	} else {
		m := tgbotapi.NewEditMessageText(chatID, messageID, text)
		m.ParseMode = tgbotapi.ModeHTML
		msg = m
	}
	if _, err := b.api.Send(msg); err != nil {
		logger.Error("Failed to edit message", "chat", chatID, "message", messageID, "error", err)
	}
}

// ack answers a callback query with no visible notice.
func (b *Bot) ack(callbackID string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		logger.Error("Failed to answer callback", "error", err)
	}
}

// alert answers a callback query with a transient pop-up notice.
func (b *Bot) alert(callbackID, text string) {
	cb := tgbotapi.NewCallbackWithAlert(callbackID, text)
	if _, err := b.api.Request(cb); err != nil {
		logger.Error("Failed to answer callback", "error", err)
	}
}

// toast answers a callback query with a small non-modal notification.
func (b *Bot) toast(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		logger.Error("Failed to answer callback", "error", err)
	}
}
