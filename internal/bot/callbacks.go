package bot

import (
	"errors"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/julianstephens/habitbot/internal/logger"
	"github.com/julianstephens/habitbot/internal/models"
	"github.com/julianstephens/habitbot/internal/session"
	"github.com/julianstephens/habitbot/internal/storage"
	"github.com/julianstephens/habitbot/internal/streak"
)

// handleCallback classifies the payload once and dispatches on the tagged
// result. Unknown and malformed payloads are acknowledged and dropped
// without a user-visible notice: stale buttons from old menu renders are
// expected, not errors.
func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) error {
	ev := ClassifyCallback(cb.Data)

	switch ev.Kind {
	case CallbackMyHabits:
		return b.cbMyHabits(cb)
	case CallbackNewHabit:
		return b.cbNewHabit(cb)
	case CallbackStats:
		return b.cbStats(cb)
	case CallbackHelp:
		return b.cbHelp(cb)
	case CallbackBackToMain:
		return b.cbBackToMain(cb)
	case CallbackHabitDetail:
		return b.cbHabitDetail(cb, ev.HabitID)
	case CallbackHabitStats:
		return b.cbHabitStats(cb, ev.HabitID)
	case CallbackComplete:
		return b.cbMarkHabit(cb, ev.HabitID, models.StatusCompleted)
	case CallbackMiss:
		return b.cbMarkHabit(cb, ev.HabitID, models.StatusMissed)
	case CallbackAdminPanel:
		return b.cbAdminPanel(cb)
	case CallbackAdminUsers:
		return b.cbAdminUsers(cb)
	case CallbackAdminStats:
		return b.cbAdminStats(cb)
	case CallbackAdminBroadcast:
		return b.cbAdminBroadcast(cb)
	default:
		logger.Debug("Ignoring unrecognized callback", "data", cb.Data)
		b.ack(cb.ID)
		return nil
	}
}

func (b *Bot) habitStreak(habitID int64) (int, error) {
	records, err := b.store.GetTracking(habitID)
	if err != nil {
		return 0, err
	}
	return streak.Current(records, time.Now()), nil
}

func (b *Bot) cbMyHabits(cb *tgbotapi.CallbackQuery) error {
	userID := cb.From.ID
	habits, err := b.store.GetUserHabits(userID)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		kb := mainKeyboard(b.isAdmin(userID))
		b.edit(cb.Message.Chat.ID, cb.Message.MessageID,
			"📭 You have no habits yet.\n\nCreate your first one with '➕ New habit'", &kb)
		b.ack(cb.ID)
		return nil
	}

	statuses := make(map[int64]models.TrackStatus, len(habits))
	for _, h := range habits {
		status, err := b.store.GetTodayStatus(h.ID)
		if err != nil {
			return err
		}
		statuses[h.ID] = status
	}

	kb := habitListKeyboard(habits, statuses)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, habitListText(habits, statuses), &kb)
	b.ack(cb.ID)
	return nil
}

func (b *Bot) cbNewHabit(cb *tgbotapi.CallbackQuery) error {
	b.sessions.Begin(cb.From.ID, session.AwaitingHabitName)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, "📝 Send the name for your new habit:", nil)
	b.ack(cb.ID)
	return nil
}

func (b *Bot) cbStats(cb *tgbotapi.CallbackQuery) error {
	userID := cb.From.ID
	kb := mainKeyboard(b.isAdmin(userID))

	habits, err := b.store.GetUserHabits(userID)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		b.edit(cb.Message.Chat.ID, cb.Message.MessageID, "📭 You have no habits to show statistics for.", &kb)
		b.ack(cb.ID)
		return nil
	}

	streaks := make(map[int64]int, len(habits))
	completed := make(map[int64]int, len(habits))
	for _, h := range habits {
		days, err := b.habitStreak(h.ID)
		if err != nil {
			return err
		}
		streaks[h.ID] = days

		stats, err := b.store.GetHabitStats(h.ID)
		if err != nil {
			return err
		}
		completed[h.ID] = stats.Completed
	}

	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, userStatsText(habits, streaks, completed), &kb)
	b.ack(cb.ID)
	return nil
}

func (b *Bot) cbHelp(cb *tgbotapi.CallbackQuery) error {
	kb := mainKeyboard(b.isAdmin(cb.From.ID))
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, helpMenuText(), &kb)
	b.ack(cb.ID)
	return nil
}

func (b *Bot) cbBackToMain(cb *tgbotapi.CallbackQuery) error {
	kb := mainKeyboard(b.isAdmin(cb.From.ID))
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, mainMenuText, &kb)
	b.ack(cb.ID)
	return nil
}

func (b *Bot) cbHabitDetail(cb *tgbotapi.CallbackQuery, habitID int64) error {
	h, err := b.store.GetHabit(habitID)
	if errors.Is(err, storage.ErrNotFound) {
		b.alert(cb.ID, notFoundText)
		return nil
	}
	if err != nil {
		return err
	}

	today, err := b.store.GetTodayStatus(habitID)
	if err != nil {
		return err
	}
	days, err := b.habitStreak(habitID)
	if err != nil {
		return err
	}

	kb := habitActionsKeyboard(habitID, today)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, habitDetailText(h, days, today), &kb)
	b.ack(cb.ID)
	return nil
}

// cbMarkHabit records today's status for a habit. A repeat mark on the
// same day overwrites the earlier one; the toast wording tells the user
// which of the two happened.
func (b *Bot) cbMarkHabit(cb *tgbotapi.CallbackQuery, habitID int64, status models.TrackStatus) error {
	h, err := b.store.GetHabit(habitID)
	if errors.Is(err, storage.ErrNotFound) {
		b.alert(cb.ID, notFoundText)
		return nil
	}
	if err != nil {
		return err
	}

	fresh, err := b.store.TrackHabit(habitID, status)
	if err != nil {
		return err
	}

	var notice string
	switch {
	case status == models.StatusCompleted && fresh:
		notice = "✅ Nice! Marked as done."
	case status == models.StatusCompleted:
		notice = "✅ Status updated to done."
	case fresh:
		notice = "❌ Marked as missed. Tomorrow is another chance!"
	default:
		notice = "❌ Status updated to missed."
	}
	b.toast(cb.ID, notice)

	days, err := b.habitStreak(habitID)
	if err != nil {
		return err
	}

	kb := habitActionsKeyboard(habitID, status)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, habitMarkedText(h, status, days), &kb)
	return nil
}

func (b *Bot) cbHabitStats(cb *tgbotapi.CallbackQuery, habitID int64) error {
	h, err := b.store.GetHabit(habitID)
	if errors.Is(err, storage.ErrNotFound) {
		b.alert(cb.ID, notFoundText)
		return nil
	}
	if err != nil {
		return err
	}

	stats, err := b.store.GetHabitStats(habitID)
	if err != nil {
		return err
	}
	days, err := b.habitStreak(habitID)
	if err != nil {
		return err
	}

	kb := habitStatsKeyboard(habitID)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, habitStatsText(h, stats, days), &kb)
	b.ack(cb.ID)
	return nil
}
