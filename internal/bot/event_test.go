package bot

import "testing"

func TestClassifyCallback(t *testing.T) {
	cases := []struct {
		name string
		data string
		want CallbackEvent
	}{
		{"my habits", "my_habits", CallbackEvent{Kind: CallbackMyHabits}},
		{"new habit", "new_habit", CallbackEvent{Kind: CallbackNewHabit}},
		{"stats", "stats", CallbackEvent{Kind: CallbackStats}},
		{"help", "help", CallbackEvent{Kind: CallbackHelp}},
		{"back to main", "back_to_main", CallbackEvent{Kind: CallbackBackToMain}},
		{"admin panel", "admin_panel", CallbackEvent{Kind: CallbackAdminPanel}},
		{"admin users", "admin_users", CallbackEvent{Kind: CallbackAdminUsers}},
		{"admin stats", "admin_stats", CallbackEvent{Kind: CallbackAdminStats}},
		{"admin broadcast", "admin_broadcast", CallbackEvent{Kind: CallbackAdminBroadcast}},
		{"habit detail", "habit_42", CallbackEvent{Kind: CallbackHabitDetail, HabitID: 42}},
		{"complete", "complete_7", CallbackEvent{Kind: CallbackComplete, HabitID: 7}},
		{"miss", "miss_9", CallbackEvent{Kind: CallbackMiss, HabitID: 9}},

		// habit_stats_ shares the habit_ stem; it must win over detail.
		{"habit stats beats detail", "habit_stats_42", CallbackEvent{Kind: CallbackHabitStats, HabitID: 42}},

		{"empty payload", "", CallbackEvent{Kind: CallbackUnknown}},
		{"unrecognized identifier", "frobnicate", CallbackEvent{Kind: CallbackUnknown}},
		{"non-numeric habit id", "habit_abc", CallbackEvent{Kind: CallbackUnknown}},
		{"missing habit id", "habit_", CallbackEvent{Kind: CallbackUnknown}},
		{"non-numeric stats id", "habit_stats_x", CallbackEvent{Kind: CallbackUnknown}},
		{"non-numeric complete id", "complete_", CallbackEvent{Kind: CallbackUnknown}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyCallback(tc.data); got != tc.want {
				t.Errorf("ClassifyCallback(%q) = %+v, want %+v", tc.data, got, tc.want)
			}
		})
	}
}
