package bot

import (
	"strconv"
	"strings"
)

// Callback payload identifiers. The habit_stats_ family shares the habit_
// stem with the detail family, so classification must test it first.
const (
	cbMyHabits       = "my_habits"
	cbNewHabit       = "new_habit"
	cbStats          = "stats"
	cbHelp           = "help"
	cbBackToMain     = "back_to_main"
	cbAdminPanel     = "admin_panel"
	cbAdminUsers     = "admin_users"
	cbAdminStats     = "admin_stats"
	cbAdminBroadcast = "admin_broadcast"

	cbHabitStatsPrefix = "habit_stats_"
	cbCompletePrefix   = "complete_"
	cbMissPrefix       = "miss_"
	cbHabitPrefix      = "habit_"
)

// CallbackKind is the closed set of button-press event variants.
type CallbackKind int

const (
	// CallbackUnknown covers unrecognized identifiers and malformed
	// parameters; those are dropped silently to tolerate stale buttons
	// from old menu renders.
	CallbackUnknown CallbackKind = iota
	CallbackMyHabits
	CallbackNewHabit
	CallbackStats
	CallbackHelp
	CallbackBackToMain
	CallbackAdminPanel
	CallbackAdminUsers
	CallbackAdminStats
	CallbackAdminBroadcast
	CallbackHabitDetail
	CallbackHabitStats
	CallbackComplete
	CallbackMiss
)

// CallbackEvent is a classified button press. HabitID is set only for the
// parameterized kinds.
type CallbackEvent struct {
	Kind    CallbackKind
	HabitID int64
}

// ClassifyCallback parses a raw callback payload into a tagged event,
// exactly once and up front, so no handler re-tests string prefixes.
// More specific prefixes are tested before the general habit_ stem:
// habit_stats_42 classifies as CallbackHabitStats, never CallbackHabitDetail.
func ClassifyCallback(data string) CallbackEvent {
	switch data {
	case cbMyHabits:
		return CallbackEvent{Kind: CallbackMyHabits}
	case cbNewHabit:
		return CallbackEvent{Kind: CallbackNewHabit}
	case cbStats:
		return CallbackEvent{Kind: CallbackStats}
	case cbHelp:
		return CallbackEvent{Kind: CallbackHelp}
	case cbBackToMain:
		return CallbackEvent{Kind: CallbackBackToMain}
	case cbAdminPanel:
		return CallbackEvent{Kind: CallbackAdminPanel}
	case cbAdminUsers:
		return CallbackEvent{Kind: CallbackAdminUsers}
	case cbAdminStats:
		return CallbackEvent{Kind: CallbackAdminStats}
	case cbAdminBroadcast:
		return CallbackEvent{Kind: CallbackAdminBroadcast}
	}

	// Longest stem first.
	for _, family := range []struct {
		prefix string
		kind   CallbackKind
	}{
		{cbHabitStatsPrefix, CallbackHabitStats},
		{cbCompletePrefix, CallbackComplete},
		{cbMissPrefix, CallbackMiss},
		{cbHabitPrefix, CallbackHabitDetail},
	} {
		if strings.HasPrefix(data, family.prefix) {
			id, err := strconv.ParseInt(data[len(family.prefix):], 10, 64)
			if err != nil {
				return CallbackEvent{Kind: CallbackUnknown}
			}
			return CallbackEvent{Kind: family.kind, HabitID: id}
		}
	}

	return CallbackEvent{Kind: CallbackUnknown}
}
