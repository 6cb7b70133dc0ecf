package main

import (
	"errors"

	"github.com/sandevgo/edagent/internal/config"
	"github.com/sandevgo/edagent/internal/service/installer"
	"github.com/sandevgo/edagent/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Configure EdAgent interactively",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		state, err := installer.RunWizard()
		if errors.Is(err, installer.ErrCancelled) {
			logger.Warn().Msg("installation cancelled, nothing was written")
			return nil
		}
		if err != nil {
			return err
		}

		logger.Info().
			Str("env", state.EnvPath).
			Str("provider", state.LLM.Provider).
			Str("model", state.LLM.Model).
			Msgf("initialized runtime directory at: %s", config.GetRuntimePath())
		logger.Info().Msg("Installation complete! You can now run 'edagent start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
