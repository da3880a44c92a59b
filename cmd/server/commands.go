package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/usersync/internal/config"
	"github.com/iudanet/usersync/internal/server"
	"github.com/iudanet/usersync/internal/server/storage/sqlite"
)

type serveOptions struct {
	ConfigPath string
	HTTPAddr   string
	DBPath     string
	Verbose    bool
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "usersync-server",
		Short:         "Users service with a signaling WebSocket",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newServeCommand() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to YAML config")
	cmd.Flags().StringVar(&opts.HTTPAddr, "http-addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "path to SQLite database (overrides config)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	ctx := cmd.Context()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.HTTPAddr != "" {
		cfg.Server.HTTPAddr = opts.HTTPAddr
	}
	if opts.DBPath != "" {
		cfg.Server.DBPath = opts.DBPath
	}
	if opts.Verbose {
		cfg.Logger.Level = "DEBUG"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := config.NewLogger(cfg.Logger, cmd.ErrOrStderr())

	st, err := sqlite.New(ctx, cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	logger.InfoContext(ctx, "storage opened", "path", cfg.Server.DBPath, "version", Version)

	return server.New(cfg.Server, logger, st, Version).Run(ctx)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "usersync-server %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}
