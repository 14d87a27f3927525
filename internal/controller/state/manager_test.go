package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateDefaultsToNone(t *testing.T) {
	m := NewManager()
	assert.Equal(t, StateNone, m.State(42))
}

func TestSetStateKeepsDraft(t *testing.T) {
	m := NewManager()
	m.SetDraft(42, Draft{ServiceID: "svc-1", RequestID: "req-1"})
	m.SetState(42, StateEnteringRejectReason)

	assert.Equal(t, StateEnteringRejectReason, m.State(42))
	assert.Equal(t, "req-1", m.Draft(42).RequestID)
}

func TestSettingNoneClearsEverything(t *testing.T) {
	m := NewManager()
	m.SetDraft(42, Draft{ReportID: "rep-1"})
	m.SetState(42, StateEnteringBanReason)

	m.SetState(42, StateNone)

	assert.Equal(t, StateNone, m.State(42))
	assert.Equal(t, Draft{}, m.Draft(42))
}

func TestClear(t *testing.T) {
	m := NewManager()
	m.SetState(42, StateSearching)
	m.Clear(42)

	assert.Equal(t, StateNone, m.State(42))
}

func TestUsersAreIndependent(t *testing.T) {
	m := NewManager()
	m.SetState(1, StateSearching)
	m.SetState(2, StateEnteringBanReason)

	assert.Equal(t, StateSearching, m.State(1))
	assert.Equal(t, StateEnteringBanReason, m.State(2))
}
