package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"del"},
		Short:   "Delete user",
		Long: `Deletes a user by id. Negative ids belong to users that never reached
the server: they are removed locally together with their queued insert.`,
		Example: `  usersync-client delete 42
  usersync-client delete -- -2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				s.follow(ctx)
				s.goOnline(ctx)
				return s.cli.Delete(ctx, args[0])
			})
		},
	}
}
