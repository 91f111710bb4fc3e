package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/habitbot/internal/constants"
)

func TestHabitName(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single char rejected", "a", true},
		{"two chars rejected", "ab", true},
		{"three chars accepted", "abc", false},
		{"typical name accepted", "Read", false},
		{"max length accepted", strings.Repeat("x", 100), false},
		{"over max rejected", strings.Repeat("x", 101), true},
		{"whitespace only rejected", "   ", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := HabitName(tc.input)
			if tc.wantErr && err == nil {
				t.Errorf("HabitName(%q) = nil error, want validation error", tc.input)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("HabitName(%q) returned unexpected error: %v", tc.input, err)
			}
		})
	}

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		got, err := HabitName("  Read  ")
		if err != nil {
			t.Fatalf("HabitName() returned unexpected error: %v", err)
		}
		if got != "Read" {
			t.Errorf("HabitName() = %q, want %q", got, "Read")
		}
	})

	t.Run("length counts runes not bytes", func(t *testing.T) {
		// Three multi-byte runes must pass the minimum-length check.
		if _, err := HabitName("читай"); err != nil {
			t.Errorf("HabitName() returned unexpected error: %v", err)
		}
	})
}

func TestHabitDescription(t *testing.T) {
	t.Run("max length accepted", func(t *testing.T) {
		if _, err := HabitDescription(strings.Repeat("d", 500)); err != nil {
			t.Errorf("HabitDescription() returned unexpected error: %v", err)
		}
	})

	t.Run("over max rejected", func(t *testing.T) {
		if _, err := HabitDescription(strings.Repeat("d", 501)); err == nil {
			t.Error("HabitDescription() = nil error, want validation error")
		}
	})

	t.Run("empty maps to sentinel", func(t *testing.T) {
		got, err := HabitDescription("")
		if err != nil {
			t.Fatalf("HabitDescription() returned unexpected error: %v", err)
		}
		if got != constants.NoDescription {
			t.Errorf("HabitDescription(\"\") = %q, want %q", got, constants.NoDescription)
		}
	})
}
