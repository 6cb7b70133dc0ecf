package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/edagent/internal/transport/cli"
	"github.com/sandevgo/edagent/pkg/srv"
	"github.com/spf13/cobra"
)

var (
	askUser string
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one message to the coach and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		app := newCoachApp(ctx)
		defer srv.ShutdownNow(ctx, app.cleanups)

		text := strings.Join(args, " ")
		out, ok := app.router.Execute(ctx, askUser, text)
		if ok {
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}

		resp := app.coach.HandleMessage(ctx, askUser, text)
		if askJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.RenderResponse(resp))
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askUser, "user", "u", "cli-local", "user id the message is sent as")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the structured response as JSON")
	rootCmd.AddCommand(askCmd)
}
