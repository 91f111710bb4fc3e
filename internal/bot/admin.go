package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/julianstephens/habitbot/internal/logger"
	"github.com/julianstephens/habitbot/internal/session"
)

// requireAdmin re-checks the administrator predicate at handling time, not
// menu-render time, and answers with a transient denial on failure.
func (b *Bot) requireAdmin(cb *tgbotapi.CallbackQuery) bool {
	if b.isAdmin(cb.From.ID) {
		return true
	}
	logger.Warn("Denied admin action", "user", cb.From.ID, "data", cb.Data)
	b.alert(cb.ID, accessDeniedText)
	return false
}

func (b *Bot) cbAdminPanel(cb *tgbotapi.CallbackQuery) error {
	if !b.requireAdmin(cb) {
		return nil
	}
	kb := adminKeyboard()
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, "👑 <b>Admin panel</b>\n\nChoose an action:", &kb)
	b.ack(cb.ID)
	return nil
}

func (b *Bot) cbAdminUsers(cb *tgbotapi.CallbackQuery) error {
	if !b.requireAdmin(cb) {
		return nil
	}

	users, err := b.store.GetAllUsers()
	if err != nil {
		return err
	}

	kb := adminBackKeyboard()
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, adminUsersText(users), &kb)
	b.ack(cb.ID)
	return nil
}

func (b *Bot) cbAdminStats(cb *tgbotapi.CallbackQuery) error {
	if !b.requireAdmin(cb) {
		return nil
	}

	st, err := b.store.GetGlobalStats()
	if err != nil {
		return err
	}

	kb := adminBackKeyboard()
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, adminStatsText(st), &kb)
	b.ack(cb.ID)
	return nil
}

func (b *Bot) cbAdminBroadcast(cb *tgbotapi.CallbackQuery) error {
	if !b.requireAdmin(cb) {
		return nil
	}

	b.sessions.Begin(cb.From.ID, session.AwaitingBroadcastMessage)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, broadcastPromptText(), nil)
	b.ack(cb.ID)
	return nil
}
