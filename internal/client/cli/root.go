// Package cli реализует команды клиента usersync поверх движка синхронизации.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/usersync/internal/client/iocli"
	"github.com/iudanet/usersync/internal/config"
)

// BuildInfo заполняется через ldflags в cmd/client
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	DBPath     string
	ServerURL  string
	Verbose    bool

	cfg    config.Config
	logger *slog.Logger
	io     iocli.IO
}

// NewRootCommand creates the root command of the client.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "usersync-client",
		Short: "Offline-first client for the users service",
		Long: `Keeps a local mirror of the server's user records.

Changes made while the server is unreachable are applied locally right away
and replayed in order once the connection comes back.`,
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to YAML config")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to local database (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.ServerURL, "server", "", "server URL (overrides config)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewShellCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewPendingCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewVersionCommand(info))

	return cmd
}

func (o *RootOptions) init(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}

	// Флаги имеют приоритет над файлом
	if o.DBPath != "" {
		cfg.Client.DBPath = o.DBPath
	}
	if o.ServerURL != "" {
		cfg.Client.ServerURL = o.ServerURL
	}
	if o.Verbose {
		cfg.Logger.Level = "DEBUG"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	o.cfg = cfg
	o.logger = config.NewLogger(cfg.Logger, cmd.ErrOrStderr())
	o.io = newIO(cmd)
	return nil
}

// newIO использует терминал процесса, если вывод команды не перенаправлен
func newIO(cmd *cobra.Command) iocli.IO {
	if cmd.OutOrStdout() == os.Stdout && cmd.InOrStdin() == os.Stdin {
		return iocli.NewStdio()
	}
	return iocli.New(cmd.InOrStdin(), cmd.OutOrStdout())
}

func (o *RootOptions) withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()

	s, err := openSession(ctx, o.cfg.Client, o.logger, o.io)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			o.logger.Error("Failed to close session", "error", err)
		}
	}()

	return fn(ctx, s)
}

// NewVersionCommand prints build information.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// конфиг для вывода версии не нужен
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "usersync-client %s\n", info.Version)
			_, _ = fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
			_, _ = fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
		},
	}
}
