// Package session holds the per-user conversation state for multi-step
// dialogs. State lives only in process memory: a restart resets every
// session to idle.
package session

import "sync"

// Stage identifies which multi-step dialog, if any, a user is in.
type Stage int

const (
	// Idle is the initial and terminal stage: no dialog in progress,
	// inbound events are treated as fresh commands or button presses.
	Idle Stage = iota
	// AwaitingHabitName waits for the name of a new habit.
	AwaitingHabitName
	// AwaitingHabitDescription waits for the new habit's description.
	AwaitingHabitDescription
	// AwaitingBroadcastMessage waits for the admin's broadcast content.
	AwaitingBroadcastMessage
)

// State is the pending dialog for one user, including data collected so
// far.
type State struct {
	Stage Stage
	// HabitName is populated after the name step of habit creation.
	HabitName string
}

// Manager maps user IDs to their pending dialog state. A user holds at
// most one pending dialog; Begin on an active session overwrites it (last
// write wins, an accepted weak-consistency point rather than a defect).
// The mutex covers access from the broadcast goroutine as well as the main
// event loop.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]State
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]State)}
}

// Get returns the user's current state; users never seen before are Idle.
func (m *Manager) Get(userID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

// Begin starts a dialog at the given stage, discarding any dialog already
// in progress for the user.
func (m *Manager) Begin(userID int64, stage Stage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = State{Stage: stage}
}

// Advance moves an in-progress habit-creation dialog to the description
// step, retaining the accepted name.
func (m *Manager) Advance(userID int64, habitName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = State{Stage: AwaitingHabitDescription, HabitName: habitName}
}

// Clear returns the user's session to Idle.
func (m *Manager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
