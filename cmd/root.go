package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "introvert",
		Short:         "Keep a swarm of game accounts parked on one island",
		Long:          "introvert joins every configured account, watches location reports and screen events, and keeps each account on the destination player's island.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newPlanCmd(app),
		newRunCmd(app),
	)

	return rootCmd
}
