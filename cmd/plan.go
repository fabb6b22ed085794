package cmd

import (
	"fmt"

	"github.com/bnema/introvert/internal/application"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show who visits whom and when each account joins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			swarmCfg, err := app.swarmConfig(cmd.Context())
			if err != nil {
				return err
			}

			plan := application.BuildPlan(swarmCfg)

			if jsonOutput {
				encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(plan)
			}

			rendered, err := app.planRenderer(plan)
			if err != nil {
				return fmt.Errorf("render plan: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the plan as JSON")

	return cmd
}
