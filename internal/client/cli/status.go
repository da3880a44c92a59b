package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// SetServerProbe sets the function the shell uses to describe server connectivity
func (c *Cli) SetServerProbe(probe func() string) {
	c.probe = probe
}

func (c *Cli) serverState() string {
	if c.probe == nil {
		return "unknown"
	}
	return c.probe()
}

// NewStatusCommand creates the status command.
func NewStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connection and queue status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				s.follow(ctx)
				s.connect(ctx)
				return s.cli.Status(ctx, s.cli.serverState())
			})
		},
	}
}
