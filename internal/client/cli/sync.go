package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewSyncCommand creates the sync command.
func NewSyncCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay queued changes and refresh from the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				s.follow(ctx)
				if !s.connect(ctx) {
					return fmt.Errorf("%w: %s", ErrServerUnreachable, s.cfg.ServerURL)
				}
				return s.cli.Sync(ctx)
			})
		},
	}
}
