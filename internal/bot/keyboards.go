package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/julianstephens/habitbot/internal/models"
)

func mainKeyboard(isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 My habits", cbMyHabits),
			tgbotapi.NewInlineKeyboardButtonData("➕ New habit", cbNewHabit),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Statistics", cbStats),
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", cbHelp),
		),
	}
	if isAdmin {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👑 Admin panel", cbAdminPanel),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func habitListKeyboard(habits []models.Habit, statuses map[int64]models.TrackStatus) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, h := range habits {
		label := fmt.Sprintf("%s %s", statusEmoji(statuses[h.ID]), h.Name)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", cbHabitPrefix, h.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ New habit", cbNewHabit),
		tgbotapi.NewInlineKeyboardButtonData("◀️ Back", cbBackToMain),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// habitActionsKeyboard hides the mark button matching today's recorded
// status so the remaining action is always a state change.
func habitActionsKeyboard(habitID int64, today models.TrackStatus) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if today != models.StatusCompleted {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Done", fmt.Sprintf("%s%d", cbCompletePrefix, habitID)),
		))
	}
	if today != models.StatusMissed {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Missed", fmt.Sprintf("%s%d", cbMissPrefix, habitID)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Habit statistics", fmt.Sprintf("%s%d", cbHabitStatsPrefix, habitID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Back to list", cbMyHabits),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func habitStatsKeyboard(habitID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Back to habit", fmt.Sprintf("%s%d", cbHabitPrefix, habitID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ To habit list", cbMyHabits),
		),
	)
}

func adminKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 Users", cbAdminUsers),
			tgbotapi.NewInlineKeyboardButtonData("📊 Global stats", cbAdminStats),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📢 Broadcast", cbAdminBroadcast),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Back", cbBackToMain),
		),
	)
}

func adminBackKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Back to admin panel", cbAdminPanel),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", cbBackToMain),
		),
	)
}

func statusEmoji(status models.TrackStatus) string {
	switch status {
	case models.StatusCompleted:
		return "✅"
	case models.StatusMissed:
		return "❌"
	default:
		return "⚪️"
	}
}
