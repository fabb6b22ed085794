package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/introvert/internal/adapters/transport/script"
	"github.com/bnema/introvert/internal/application"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(app *app) *cobra.Command {
	var scriptDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Join every account and keep it on the destination island",
		Long: "Join every account and keep it on the destination island.\n\n" +
			"Each account replays <script-dir>/<name>.jsonl. Commands and slot clicks " +
			"are printed to stdout as <account>\\t<action> lines.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if scriptDir == "" {
				return errors.New("--script-dir is required")
			}

			swarmCfg, err := app.swarmConfig(cmd.Context())
			if err != nil {
				return err
			}

			errOut := &syncWriter{w: cmd.ErrOrStderr()}
			logger, err := app.newLogger(errOut)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			progress := make(chan int, len(swarmCfg.Accounts))
			swarm, err := application.NewSwarm(
				swarmCfg,
				script.NewConnector(scriptDir, cmd.OutOrStdout()),
				logger,
				application.WithJoinProgress(func(joined int, _ int) {
					progress <- joined
				}),
			)
			if err != nil {
				return err
			}

			err = runJoinSpinner(cmd.Context(), errOut, len(swarmCfg.Accounts), progress, func() error {
				defer close(progress)
				return swarm.Start(cmd.Context())
			})
			if err != nil {
				_ = swarm.Wait()
				return fmt.Errorf("join accounts: %w", err)
			}

			if err := swarm.Wait(); err != nil {
				return err
			}

			logger.Info("swarm finished", zap.Int("accounts", len(swarm.Agents())))
			return nil
		},
	}

	cmd.Flags().StringVar(&scriptDir, "script-dir", "", "Directory holding one <account>.jsonl session script per account")

	return cmd
}
