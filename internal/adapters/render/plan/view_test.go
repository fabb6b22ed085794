package plan

import (
	"testing"
	"time"

	"github.com/bnema/introvert/internal/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPlan(t *testing.T) {
	output, err := Render(application.Plan{
		Destination:      "Bob",
		Host:             "mc.hypixel.net",
		JoinDelay:        5 * time.Second,
		DestinationKnown: true,
		Accounts: []application.PlannedAccount{
			{Name: "Alice", ID: "id-a", Target: "Bob"},
			{Name: "Bob", ID: "id-b", JoinAfter: 5 * time.Second},
		},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Swarm Plan")
	assert.Contains(t, output, "accounts: 2")
	assert.Contains(t, output, "join delay: 5s")
	assert.Contains(t, output, "Alice (id-a)")
	assert.Contains(t, output, "action: visit Bob")
	assert.Contains(t, output, "Bob (id-b) [destination]")
	assert.Contains(t, output, "action: warp island")
	assert.Contains(t, output, "joins after: 5s")
	assert.NotContains(t, output, "is not one of the configured accounts")
}

func TestRenderPlanWarnsAboutUnknownDestination(t *testing.T) {
	output, err := Render(application.Plan{
		Destination: "Dave",
		Accounts:    []application.PlannedAccount{{Name: "Alice", ID: "id-a", Target: "Dave"}},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "destination Dave is not one of the configured accounts")
}

func TestRenderPlanWithoutAccounts(t *testing.T) {
	output, err := Render(application.Plan{Destination: "Bob", DestinationKnown: true})

	require.NoError(t, err)
	assert.Contains(t, output, "No accounts configured.")
}
