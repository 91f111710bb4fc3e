package bot

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitbot/internal/broadcast"
	"github.com/julianstephens/habitbot/internal/models"
	"github.com/julianstephens/habitbot/internal/streak"
)

const (
	genericErrorText = "❌ Something went wrong. Please try again later."
	accessDeniedText = "Access denied"
	notFoundText     = "Habit not found"
	mainMenuText     = "Main menu:"
	unknownInputText = "I don't understand that. Please use the menu buttons or /help."
)

func greetingText(firstName string) string {
	return fmt.Sprintf(
		"👋 Hi, %s!\n\n"+
			"I'm a habit-tracking bot. I'll help you follow through on daily practices and build lasting habits.\n\n"+
			"Pick an action below:", firstName)
}

func helpCommandText() string {
	return "📚 <b>How to use this bot</b>\n\n" +
		"Commands:\n" +
		"/start - Start the bot\n" +
		"/help - Show this message\n" +
		"/stop - End the current session\n" +
		"/menu - Main menu\n" +
		"/cancel - Abort the current dialog\n\n" +
		"How it works:\n" +
		"• Create a habit with the '➕ New habit' button\n" +
		"• Mark it done or missed every day\n" +
		"• Watch your streak grow in the statistics\n"
}

func helpMenuText() string {
	return "📚 <b>How to use the bot:</b>\n\n" +
		"1️⃣ Create a habit with '➕ New habit'\n" +
		"2️⃣ Mark it done or missed every day\n" +
		"3️⃣ Follow your streak in the statistics\n" +
		"4️⃣ The longer the streak, the stronger the habit!\n\n" +
		"<b>Tip:</b> start with one habit and add more gradually"
}

func habitListText(habits []models.Habit, statuses map[int64]models.TrackStatus) string {
	var b strings.Builder
	b.WriteString("📋 <b>Your habits:</b>\n\n")
	for _, h := range habits {
		desc := h.Description
		if len(desc) > 50 {
			desc = desc[:50] + "…"
		}
		fmt.Fprintf(&b, "%s <b>%s</b>\n", statusEmoji(statuses[h.ID]), h.Name)
		fmt.Fprintf(&b, "   📝 %s\n", desc)
		fmt.Fprintf(&b, "   📅 Created: %s\n\n", h.CreatedDate)
	}
	return b.String()
}

func habitDetailText(h models.Habit, streakDays int, today models.TrackStatus) string {
	var todayLine string
	switch today {
	case models.StatusCompleted:
		todayLine = "✅ Done today"
	case models.StatusMissed:
		todayLine = "❌ Missed today"
	default:
		todayLine = "⚪️ Not marked yet today"
	}

	return fmt.Sprintf(
		"<b>%s</b>\n\n"+
			"📝 %s\n"+
			"📅 Created: %s\n"+
			"🔥 Current streak: %d days\n"+
			"📊 %s\n\n"+
			"Choose an action:",
		h.Name, h.Description, h.CreatedDate, streakDays, todayLine)
}

func habitMarkedText(h models.Habit, status models.TrackStatus, streakDays int) string {
	line := "✅ Marked as done!"
	if status == models.StatusMissed {
		line = "❌ Marked as missed"
	}
	return fmt.Sprintf("<b>%s</b>\n\n%s\n🔥 Current streak: %d days", h.Name, line, streakDays)
}

func habitStatsText(h models.Habit, stats models.HabitStats, streakDays int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>📊 Statistics: %s</b>\n\n", h.Name)

	if !stats.HasData() {
		b.WriteString("No data yet")
		return b.String()
	}

	fmt.Fprintf(&b, "✅ Done: %d times\n", stats.Completed)
	fmt.Fprintf(&b, "❌ Missed: %d times\n", stats.Missed)
	fmt.Fprintf(&b, "🔥 Current streak: %d days\n", streakDays)
	fmt.Fprintf(&b, "📅 First record: %s\n", stats.FirstDate)
	fmt.Fprintf(&b, "📅 Last record: %s\n", stats.LastDate)

	if percent, ok := streak.CompletionPercent(stats); ok {
		fmt.Fprintf(&b, "\n📈 Completion rate: %.1f%%", percent)
	}
	return b.String()
}

func userStatsText(habits []models.Habit, streaks map[int64]int, completed map[int64]int) string {
	var b strings.Builder
	b.WriteString("📊 <b>Your statistics:</b>\n\n")

	activeToday := 0
	totalStreak := 0
	for _, h := range habits {
		if streaks[h.ID] > 0 {
			activeToday++
			totalStreak += streaks[h.ID]
		}
	}
	fmt.Fprintf(&b, "Habits: %d\n", len(habits))
	fmt.Fprintf(&b, "On a streak: %d\n", activeToday)
	fmt.Fprintf(&b, "Combined streak: %d days\n\n", totalStreak)

	b.WriteString("📈 <b>Per habit:</b>\n")
	for _, h := range habits {
		if completed[h.ID] > 0 {
			fmt.Fprintf(&b, "• %s: %d days running (%d done in total)\n", h.Name, streaks[h.ID], completed[h.ID])
		} else {
			fmt.Fprintf(&b, "• %s: no data yet\n", h.Name)
		}
	}
	return b.String()
}

func adminUsersText(users []models.User) string {
	var b strings.Builder
	b.WriteString("👥 <b>Users:</b>\n\n")
	for i, u := range users {
		handle := ""
		if u.Username != "" {
			handle = fmt.Sprintf(" (@%s)", u.Username)
		}
		star := ""
		if u.IsAdmin {
			star = " 👑"
		}
		fmt.Fprintf(&b, "%d. %s%s (ID: %d)%s\n", i+1, u.FirstName, handle, u.ID, star)
		fmt.Fprintf(&b, "   📅 Registered: %s\n\n", u.RegisteredDate)
	}
	fmt.Fprintf(&b, "\nTotal users: %d", len(users))
	return b.String()
}

func adminStatsText(st models.GlobalStats) string {
	return fmt.Sprintf(
		"📊 <b>Bot-wide statistics:</b>\n\n"+
			"👥 Total users: %d\n"+
			"📋 Active habits: %d\n"+
			"✅ Completed today: %d\n"+
			"👤 Users active today: %d\n",
		st.TotalUsers, st.ActiveHabits, st.CompletedToday, st.ActiveUsersToday)
}

func broadcastPromptText() string {
	return "📢 <b>New broadcast</b>\n\n" +
		"Send the message you want delivered to every user of the bot. " +
		"Formatting (bold, italic, etc.) is preserved.\n\n" +
		"Send /cancel to abort."
}

func broadcastStartText(total int) string {
	return fmt.Sprintf("📤 Starting broadcast...\nRecipients: %d\nProgress: 0/%d", total, total)
}

func broadcastProgressText(p broadcast.Progress) string {
	return fmt.Sprintf(
		"📤 Broadcast in progress...\n"+
			"Recipients: %d\n"+
			"Progress: %d/%d\n"+
			"✅ Delivered: %d\n"+
			"❌ Failed: %d",
		p.Total, p.Attempted, p.Total, p.Succeeded, p.Failed)
}

func broadcastSummaryText(sum broadcast.Summary) string {
	if sum.Attempted == 0 {
		return "✅ <b>Broadcast finished</b>\n\nNo recipients."
	}
	return fmt.Sprintf(
		"✅ <b>Broadcast finished!</b>\n\n"+
			"📊 Results:\n"+
			"• Recipients: %d\n"+
			"• ✅ Delivered: %d\n"+
			"• ❌ Failed: %d\n"+
			"• 📈 Delivery rate: %.1f%%",
		sum.Attempted, sum.Succeeded, sum.Failed, sum.SuccessPercent())
}
