// Package broadcast delivers an admin-authored message to every known
// user, one recipient at a time, recording each outcome independently.
package broadcast

import (
	"github.com/google/uuid"

	"github.com/julianstephens/habitbot/internal/constants"
	"github.com/julianstephens/habitbot/internal/logger"
	"github.com/julianstephens/habitbot/internal/models"
)

// Copier sends the authored message verbatim to one recipient. The bot
// backs it with the platform's copy-message operation so rich formatting
// survives.
type Copier interface {
	CopyTo(recipientID int64) error
}

// Progress is a cumulative snapshot reported after every
// constants.BroadcastProgressEvery-th recipient.
type Progress struct {
	Attempted int
	Succeeded int
	Failed    int
	Total     int
}

// Summary is the final outcome of one broadcast run.
type Summary struct {
	RunID     string
	Attempted int
	Succeeded int
	Failed    int
}

// SuccessPercent guards the empty-recipient case: no recipients reports 0
// rather than dividing by zero.
func (s Summary) SuccessPercent() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Attempted) * 100
}

// Run delivers to every recipient in the snapshot, in order. A single
// failed delivery (blocked bot, deleted account) is recorded and does not
// abort or skip the rest; there are no retries within a run. The progress
// callback may be nil.
func Run(copier Copier, recipients []models.User, progress func(Progress)) Summary {
	sum := Summary{RunID: uuid.NewString()}
	total := len(recipients)

	logger.Info("Broadcast started", "run", sum.RunID, "recipients", total)

	for i, u := range recipients {
		sum.Attempted++
		if err := copier.CopyTo(u.ID); err != nil {
			sum.Failed++
			logger.Error("Broadcast delivery failed", "run", sum.RunID, "recipient", u.ID, "error", err)
		} else {
			sum.Succeeded++
		}

		if progress != nil && (i+1)%constants.BroadcastProgressEvery == 0 {
			progress(Progress{
				Attempted: sum.Attempted,
				Succeeded: sum.Succeeded,
				Failed:    sum.Failed,
				Total:     total,
			})
		}
	}

	logger.Info("Broadcast finished",
		"run", sum.RunID,
		"attempted", sum.Attempted,
		"succeeded", sum.Succeeded,
		"failed", sum.Failed)

	return sum
}
