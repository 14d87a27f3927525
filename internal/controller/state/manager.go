package state

import "sync"

type userData struct {
	state UserState
	draft Draft
}

// Manager tracks per-user dialog state. Purely in-memory: an interrupted
// dialog simply restarts, nothing business-critical lives here.
type Manager struct {
	mu    sync.RWMutex
	users map[int64]*userData
}

func NewManager() *Manager {
	return &Manager{users: make(map[int64]*userData)}
}

// State returns the user's current dialog step.
func (m *Manager) State(telegramID int64) UserState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if data, ok := m.users[telegramID]; ok {
		return data.state
	}
	return StateNone
}

// SetState moves the user to a dialog step, keeping the accumulated draft.
// Setting StateNone clears everything.
func (m *Manager) SetState(telegramID int64, state UserState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if state == StateNone {
		delete(m.users, telegramID)
		return
	}

	if data, ok := m.users[telegramID]; ok {
		data.state = state
		return
	}
	m.users[telegramID] = &userData{state: state}
}

// Draft returns a copy of the user's accumulated dialog payload.
func (m *Manager) Draft(telegramID int64) Draft {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if data, ok := m.users[telegramID]; ok {
		return data.draft
	}
	return Draft{}
}

// SetDraft replaces the user's dialog payload.
func (m *Manager) SetDraft(telegramID int64, draft Draft) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if data, ok := m.users[telegramID]; ok {
		data.draft = draft
		return
	}
	m.users[telegramID] = &userData{draft: draft}
}

// Clear drops the user's state and draft.
func (m *Manager) Clear(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, telegramID)
}
