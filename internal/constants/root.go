package constants

const (
	AppName            = "habitbot"
	DefaultKeyringUser = "bot-token"
	DefaultConfigPath  = "~/.config/habitbot/habitbot.db"
	Version            = "v0.2.0"

	// DateFormat is the standard calendar-date format used throughout the
	// application (YYYY-MM-DD). Lexicographic order on these strings equals
	// chronological order.
	DateFormat = "2006-01-02"

	// Habit name/description bounds enforced during the creation dialog.
	HabitNameMinLen = 3
	HabitNameMaxLen = 100
	HabitDescMaxLen = 500

	// NoDescription is stored when the user skips the description step.
	NoDescription = "No description"

	// BroadcastProgressEvery controls how often the broadcast orchestrator
	// reports cumulative progress back to the admin.
	BroadcastProgressEvery = 10
)
