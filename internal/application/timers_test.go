package application

import (
	"testing"

	"github.com/bnema/introvert/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newState(target string) *domain.AccountState {
	return domain.NewAccountState(domain.NewAccountIdentity("Alice", uuid.Nil), target)
}

func TestAdvanceTimersInactiveTimersStayInactive(t *testing.T) {
	state := newState("")

	for i := 0; i < 500; i++ {
		assert.Equal(t, TickOutcome{}, AdvanceTimers(state))
	}
	assert.False(t, state.WorldSpawn.Active())
	assert.False(t, state.ScreenOpen.Active())
}

func TestAdvanceTimersStatusCheckFiresOncePerCycle(t *testing.T) {
	state := newState("Bob")
	state.WorldSpawn.Set(0)

	fired := []int{}
	for tick := 1; tick <= 1000; tick++ {
		if AdvanceTimers(state).StatusCheck {
			fired = append(fired, tick)
		}
	}

	// the 201st tick sees a pre-increment value of 200
	assert.Equal(t, []int{201}, fired)
	value, ok := state.WorldSpawn.Value()
	assert.True(t, ok)
	assert.Equal(t, 1000, value)
}

func TestAdvanceTimersCooldownDelaysStatusCheck(t *testing.T) {
	state := newState("Bob")
	state.StartCooldown()

	fired := 0
	firedAt := 0
	for tick := 1; tick <= 600; tick++ {
		if AdvanceTimers(state).StatusCheck {
			fired++
			firedAt = tick
		}
	}

	assert.Equal(t, 1, fired)
	assert.Equal(t, 501, firedAt)
}

func TestAdvanceTimersInventoryScanFiresOncePerCycle(t *testing.T) {
	state := newState("Bob")
	state.ScreenOpen.Set(0)

	fired := []int{}
	for tick := 1; tick <= 400; tick++ {
		if AdvanceTimers(state).InventoryScan {
			fired = append(fired, tick)
		}
	}

	assert.Equal(t, []int{101}, fired)
	assert.False(t, state.WorldSpawn.Active())
}

func TestAdvanceTimersBothThresholdsInOneTick(t *testing.T) {
	state := newState("Bob")
	state.WorldSpawn.Set(domain.StatusCheckTick)
	state.ScreenOpen.Set(domain.InventoryScanTick)

	assert.Equal(t, TickOutcome{StatusCheck: true, InventoryScan: true}, AdvanceTimers(state))
	assert.Equal(t, TickOutcome{}, AdvanceTimers(state))
}

// Thresholds compare for equality. A timer that starts beyond its threshold
// never fires during that cycle; this pins the current behaviour.
func TestAdvanceTimersSeededPastThresholdNeverFires(t *testing.T) {
	state := newState("Bob")
	state.WorldSpawn.Set(domain.StatusCheckTick + 1)
	state.ScreenOpen.Set(domain.InventoryScanTick + 1)

	for i := 0; i < 10_000; i++ {
		assert.Equal(t, TickOutcome{}, AdvanceTimers(state))
	}
}
