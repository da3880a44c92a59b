package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewShellCommand creates the interactive shell command.
func NewShellCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session with live table refresh",
		Long: `Starts an interactive session. The client keeps watching the server
connection, replays queued changes as soon as it is back and redraws the
table after every refresh.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				s.live(ctx)
				return s.cli.Shell(ctx)
			})
		},
	}
}
