package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/julianstephens/habitbot/internal/logger"
	"github.com/julianstephens/habitbot/internal/models"
	"github.com/julianstephens/habitbot/internal/session"
)

// handleMessage routes an inbound text message. Global commands win over
// any dialog in progress; /skip is only a command inside the description
// step; everything else is dialog input or, when idle, an unknown-input
// hint.
func (b *Bot) handleMessage(msg *tgbotapi.Message) error {
	userID := msg.From.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			return b.cmdStart(msg)
		case "help":
			return b.cmdHelp(msg)
		case "stop":
			return b.cmdStop(msg)
		case "menu":
			return b.cmdMenu(msg)
		case "cancel":
			return b.cmdCancel(msg)
		}
	}

	state := b.sessions.Get(userID)
	switch state.Stage {
	case session.AwaitingHabitName:
		return b.dialogHabitName(msg)
	case session.AwaitingHabitDescription:
		return b.dialogHabitDescription(msg, state)
	case session.AwaitingBroadcastMessage:
		return b.dialogBroadcastMessage(msg)
	}

	// Idle free text, including unrecognized commands.
	kb := mainKeyboard(b.isAdmin(userID))
	b.replyHTML(msg.Chat.ID, unknownInputText, &kb)
	return nil
}

// cmdStart registers or refreshes the user and shows the main menu. The
// admin flag is recomputed on every contact so a configuration change is
// honored the next time the user talks to the bot.
func (b *Bot) cmdStart(msg *tgbotapi.Message) error {
	from := msg.From
	user := models.User{
		ID:             from.ID,
		Username:       from.UserName,
		FirstName:      from.FirstName,
		LastName:       from.LastName,
		RegisteredDate: models.Today(),
		IsAdmin:        b.isAdmin(from.ID),
	}
	if err := b.store.UpsertUser(user); err != nil {
		return err
	}
	logger.Info("User contact", "user", from.ID, "name", from.FirstName)

	kb := mainKeyboard(user.IsAdmin)
	b.replyHTML(msg.Chat.ID, greetingText(from.FirstName), &kb)
	return nil
}

func (b *Bot) cmdHelp(msg *tgbotapi.Message) error {
	b.replyHTML(msg.Chat.ID, helpCommandText(), nil)
	return nil
}

func (b *Bot) cmdStop(msg *tgbotapi.Message) error {
	b.sessions.Clear(msg.From.ID)
	reply := tgbotapi.NewMessage(msg.Chat.ID, "👋 Session ended. Send /start to begin again.")
	reply.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	if _, err := b.api.Send(reply); err != nil {
		logger.Error("Failed to send message", "chat", msg.Chat.ID, "error", err)
	}
	return nil
}

func (b *Bot) cmdMenu(msg *tgbotapi.Message) error {
	kb := mainKeyboard(b.isAdmin(msg.From.ID))
	b.replyHTML(msg.Chat.ID, mainMenuText, &kb)
	return nil
}

func (b *Bot) cmdCancel(msg *tgbotapi.Message) error {
	userID := msg.From.ID
	kb := mainKeyboard(b.isAdmin(userID))
	if b.sessions.Get(userID).Stage == session.Idle {
		b.replyHTML(msg.Chat.ID, "Nothing to cancel.", &kb)
		return nil
	}
	b.sessions.Clear(userID)
	b.replyHTML(msg.Chat.ID, "❌ Cancelled.", &kb)
	return nil
}
