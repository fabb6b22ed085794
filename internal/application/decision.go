package application

import "github.com/bnema/introvert/internal/domain"

const (
	serverLimbo      = "limbo"
	gametypeSkyblock = "SKYBLOCK"
)

type Outcome string

const (
	OutcomeEscapeLimbo Outcome = "escape_limbo"
	OutcomeJoinGame    Outcome = "join_game"
	OutcomeVisit       Outcome = "visit"
	OutcomeAnchorHome  Outcome = "anchor_home"
)

// Decision is the single action chosen for a status report.
type Decision struct {
	Outcome       Outcome
	Command       domain.Command
	StartCooldown bool
}

// Decide picks the next command for a parsed status report. Rules are
// evaluated in order and the first match wins: leaving limbo beats joining
// the game, which beats visiting the target or going home.
func Decide(status domain.LocationStatus, target string) Decision {
	switch {
	case status.ServerIs(serverLimbo):
		return Decision{Outcome: OutcomeEscapeLimbo, Command: domain.CommandLobby, StartCooldown: true}
	case !status.GametypeIs(gametypeSkyblock):
		return Decision{Outcome: OutcomeJoinGame, Command: domain.CommandSkyblock, StartCooldown: true}
	case target != "":
		return Decision{Outcome: OutcomeVisit, Command: domain.VisitCommand(target)}
	default:
		return Decision{Outcome: OutcomeAnchorHome, Command: domain.CommandWarpIsland, StartCooldown: true}
	}
}
