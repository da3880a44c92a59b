package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// NewAddCommand creates the add command.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <age>",
		Short: "Add user",
		Long: `Adds a user. When the server is reachable the user is created there
right away, otherwise it is stored locally under a negative id and sent later.`,
		Example: `  usersync-client add Alice 30
  usersync-client add "Mary Ann" 41`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args[:len(args)-1], " ")
			age := args[len(args)-1]

			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				s.follow(ctx)
				s.goOnline(ctx)
				return s.cli.Add(ctx, name, age)
			})
		},
	}
}
