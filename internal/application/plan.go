package application

import (
	"time"

	"github.com/bnema/introvert/internal/domain"
)

type PlannedAccount struct {
	Name string
	ID   string
	// Target is empty for the destination account itself.
	Target string
	// JoinAfter is the earliest offset from swarm start at which the
	// account joins.
	JoinAfter time.Duration
}

// Plan describes what a swarm started with a given config would do, without
// connecting anything.
type Plan struct {
	Destination      string
	Host             string
	JoinDelay        time.Duration
	DestinationKnown bool
	Accounts         []PlannedAccount
}

func BuildPlan(cfg domain.SwarmConfig) Plan {
	states := AssignTargets(cfg)
	accounts := make([]PlannedAccount, 0, len(states))
	for i, state := range states {
		accounts = append(accounts, PlannedAccount{
			Name:      state.Identity.Name,
			ID:        state.Identity.ID.String(),
			Target:    state.Target,
			JoinAfter: time.Duration(i) * cfg.JoinDelay,
		})
	}

	return Plan{
		Destination:      cfg.DestinationName,
		Host:             cfg.Host,
		JoinDelay:        cfg.JoinDelay,
		DestinationKnown: cfg.HasDestinationAccount(),
		Accounts:         accounts,
	}
}
