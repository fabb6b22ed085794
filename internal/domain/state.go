package domain

import "fmt"

const (
	// StatusCheckTick is the world-spawn timer value at which a status check
	// is requested.
	StatusCheckTick = 200
	// InventoryScanTick is the screen-open timer value at which the open
	// screen is scanned.
	InventoryScanTick = 100
	// CooldownTicks delays the next status check after an action was taken.
	CooldownTicks = -300
)

// Timer is an optional tick counter. The zero value is inactive.
type Timer struct {
	value  int
	active bool
}

func ActiveTimer(value int) Timer {
	return Timer{value: value, active: true}
}

func (t Timer) Value() (int, bool) {
	return t.value, t.active
}

func (t Timer) Active() bool {
	return t.active
}

func (t *Timer) Set(value int) {
	t.value = value
	t.active = true
}

func (t *Timer) Clear() {
	*t = Timer{}
}

// Advance increments an active timer and returns the value it held before
// the increment. Inactive timers are left untouched and report false.
func (t *Timer) Advance() (int, bool) {
	if !t.active {
		return 0, false
	}
	previous := t.value
	t.value++
	return previous, true
}

func (t Timer) String() string {
	if !t.active {
		return "none"
	}
	return fmt.Sprintf("%d", t.value)
}

// AccountState is the mutable record of one account. It is owned by that
// account's agent and never shared.
type AccountState struct {
	Identity   AccountIdentity
	WorldSpawn Timer
	ScreenOpen Timer
	// Target is the account to visit. Empty means this account is the
	// destination and anchors on its own island.
	Target string
}

func NewAccountState(identity AccountIdentity, target string) *AccountState {
	return &AccountState{Identity: identity, Target: target}
}

func (s *AccountState) HasTarget() bool {
	return s.Target != ""
}

// ResetOnSpawn restarts the status-check countdown and forgets any open screen.
func (s *AccountState) ResetOnSpawn() {
	s.WorldSpawn.Set(0)
	s.ScreenOpen.Clear()
}

func (s *AccountState) StartCooldown() {
	s.WorldSpawn.Set(CooldownTicks)
}
