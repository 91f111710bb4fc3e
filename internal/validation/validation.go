package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/julianstephens/habitbot/internal/constants"
)

// Error is a user-correctable input failure. Handlers re-prompt in place on
// an Error instead of advancing or abandoning the dialog.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// HabitName validates and normalizes a habit name supplied during the
// creation dialog. Bounds are inclusive: 3 and 100 characters are both
// accepted.
func HabitName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(name)
	if n < constants.HabitNameMinLen {
		return "", &Error{
			Field:  "habit name",
			Reason: fmt.Sprintf("must be at least %d characters", constants.HabitNameMinLen),
		}
	}
	if n > constants.HabitNameMaxLen {
		return "", &Error{
			Field:  "habit name",
			Reason: fmt.Sprintf("must be at most %d characters", constants.HabitNameMaxLen),
		}
	}
	return name, nil
}

// HabitDescription validates and normalizes a habit description. An empty
// string is allowed and maps to the no-description sentinel; the skip
// command is handled by the caller before validation.
func HabitDescription(raw string) (string, error) {
	desc := strings.TrimSpace(raw)
	if utf8.RuneCountInString(desc) > constants.HabitDescMaxLen {
		return "", &Error{
			Field:  "habit description",
			Reason: fmt.Sprintf("must be at most %d characters", constants.HabitDescMaxLen),
		}
	}
	if desc == "" {
		return constants.NoDescription, nil
	}
	return desc, nil
}
