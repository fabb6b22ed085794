package cmd

import (
	"fmt"

	"github.com/bnema/introvert/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the account roster",
	}

	cmd.AddCommand(
		newAccountListCmd(app),
		newAccountAddCmd(app),
	)

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List roster accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.roster.List(cmd.Context())
			if err != nil {
				return err
			}

			for _, account := range accounts {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", account.Name, account.ID)
			}

			return nil
		},
	}
}

func newAccountAddCmd(app *app) *cobra.Command {
	var rawID string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add or replace a roster account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := uuid.Nil
			if rawID != "" {
				parsed, err := uuid.Parse(rawID)
				if err != nil {
					return fmt.Errorf("parse --uuid: %w", err)
				}
				id = parsed
			}

			account := domain.NewAccountIdentity(args[0], id)
			if err := app.roster.Save(cmd.Context(), account); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s)\n", account.Name, account.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&rawID, "uuid", "", "Account UUID (derived from the name when omitted)")

	return cmd
}
