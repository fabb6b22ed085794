package plan

import (
	"fmt"

	"github.com/bnema/introvert/internal/application"
	"github.com/charmbracelet/lipgloss"
)

func renderView(plan application.Plan, s styles) string {
	lines := []string{
		s.title.Render("Swarm Plan"),
		s.header.Render(fmt.Sprintf("destination: %s", plan.Destination)),
		s.header.Render(fmt.Sprintf("host: %s  join delay: %s", plan.Host, plan.JoinDelay)),
		s.header.Render(fmt.Sprintf("accounts: %d", len(plan.Accounts))),
	}

	if !plan.DestinationKnown {
		lines = append(lines, s.warning.Render(fmt.Sprintf("destination %s is not one of the configured accounts", plan.Destination)))
	}

	if len(plan.Accounts) == 0 {
		lines = append(lines, s.empty.Render("No accounts configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, account := range plan.Accounts {
		lines = append(lines, s.section.Render(renderAccount(account, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(account application.PlannedAccount, s styles) string {
	title := s.account.Render(fmt.Sprintf("%s (%s)", account.Name, account.ID))
	action := s.detail.Render(fmt.Sprintf("action: visit %s", account.Target))
	if account.Target == "" {
		title = s.destination.Render(fmt.Sprintf("%s (%s) [destination]", account.Name, account.ID))
		action = s.detail.Render("action: warp island")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		action,
		s.detail.Render(fmt.Sprintf("joins after: %s", account.JoinAfter)),
	)
}
