package application

import "github.com/bnema/introvert/internal/domain"

// TickOutcome reports which thresholds a tick crossed.
type TickOutcome struct {
	StatusCheck   bool
	InventoryScan bool
}

// AdvanceTimers moves both account timers forward by one tick. A threshold
// fires only when the value held before the increment equals it exactly, so
// a timer seeded past the threshold never fires in that cycle.
func AdvanceTimers(state *domain.AccountState) TickOutcome {
	var outcome TickOutcome

	if previous, ok := state.WorldSpawn.Advance(); ok && previous == domain.StatusCheckTick {
		outcome.StatusCheck = true
	}
	if previous, ok := state.ScreenOpen.Advance(); ok && previous == domain.InventoryScanTick {
		outcome.InventoryScan = true
	}

	return outcome
}
