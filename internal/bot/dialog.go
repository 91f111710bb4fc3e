package bot

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/julianstephens/habitbot/internal/broadcast"
	"github.com/julianstephens/habitbot/internal/constants"
	"github.com/julianstephens/habitbot/internal/logger"
	"github.com/julianstephens/habitbot/internal/session"
	"github.com/julianstephens/habitbot/internal/validation"
)

// dialogHabitName handles the name step of habit creation. A validation
// failure re-prompts and keeps the dialog in place; it never advances or
// abandons it.
func (b *Bot) dialogHabitName(msg *tgbotapi.Message) error {
	name, err := validation.HabitName(msg.Text)
	var verr *validation.Error
	if errors.As(err, &verr) {
		b.reply(msg.Chat.ID, fmt.Sprintf("❌ That name won't work: %s. Try again:", verr.Reason))
		return nil
	}
	if err != nil {
		return err
	}

	b.sessions.Advance(msg.From.ID, name)
	b.reply(msg.Chat.ID, "Great name! Now send a description for the habit (or /skip to leave it out):")
	return nil
}

// dialogHabitDescription handles the description step and commits the
// habit. On a storage failure the session stays in this step so the user
// can simply resend the description.
func (b *Bot) dialogHabitDescription(msg *tgbotapi.Message, state session.State) error {
	var description string
	if msg.IsCommand() && msg.Command() == "skip" {
		description = constants.NoDescription
	} else {
		var verr *validation.Error
		desc, err := validation.HabitDescription(msg.Text)
		if errors.As(err, &verr) {
			b.reply(msg.Chat.ID, fmt.Sprintf("❌ That description won't work: %s. Try again (or /skip):", verr.Reason))
			return nil
		}
		if err != nil {
			return err
		}
		description = desc
	}

	habitID, err := b.store.AddHabit(msg.From.ID, state.HabitName, description)
	if err != nil {
		return err
	}
	logger.Info("Habit created", "habit", habitID, "user", msg.From.ID, "name", state.HabitName)

	b.sessions.Clear(msg.From.ID)
	kb := mainKeyboard(b.isAdmin(msg.From.ID))
	b.replyHTML(msg.Chat.ID,
		fmt.Sprintf("✅ Habit <b>«%s»</b> created!\n\nMark it done or missed every day to build your streak.", state.HabitName),
		&kb)
	return nil
}

// dialogBroadcastMessage captures the admin's authored message and starts
// the delivery run in the background so the event loop stays responsive.
// The admin predicate is re-checked here: menu state alone never grants
// the action.
func (b *Bot) dialogBroadcastMessage(msg *tgbotapi.Message) error {
	userID := msg.From.ID
	if !b.isAdmin(userID) {
		b.sessions.Clear(userID)
		b.reply(msg.Chat.ID, accessDeniedText)
		return nil
	}

	b.sessions.Clear(userID)

	recipients, err := b.store.GetAllUsers()
	if err != nil {
		return err
	}

	status, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, broadcastStartText(len(recipients))))
	if err != nil {
		return err
	}

	copier := messageCopier{api: b.api, fromChatID: msg.Chat.ID, messageID: msg.MessageID}
	adminKB := mainKeyboard(true)

	go func() {
		sum := broadcast.Run(copier, recipients, func(p broadcast.Progress) {
			b.edit(status.Chat.ID, status.MessageID, broadcastProgressText(p), nil)
		})
		b.edit(status.Chat.ID, status.MessageID, broadcastSummaryText(sum), &adminKB)
	}()

	return nil
}
