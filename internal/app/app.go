package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vidsummary/backend/internal/config"
	"github.com/vidsummary/backend/internal/db"
	"github.com/vidsummary/backend/internal/handlers"
	"github.com/vidsummary/backend/internal/httpserver"
	"github.com/vidsummary/backend/internal/logging"
)

var (
	version = "dev" // overridden at build time via -ldflags
	commit  = ""
)

// Run bootstraps the vidsummary backend application.
func Run(ctx context.Context, args []string) error {
	root := newRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "vidsummary",
		Short:         "YouTube video summary backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(), newMigrateCommand(), newVersionCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or inspect database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) > 0 {
				command = args[0]
			}
			return runMigrations(cmd.Context(), command)
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vidsummary %s (commit: %s)\n", version, commit)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)
	logModes(logger, cfg)

	st, err := openStores(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.close()

	if err := db.Migrate(ctx, st.sqlDB, st.dialect, "up"); err != nil {
		return err
	}

	deps, err := buildDependencies(ctx, st, cfg)
	if err != nil {
		return err
	}

	srv := httpserver.New(cfg.AppPort, handlers.NewRouter(deps, logger, cfg.AllowedOrigins), cfg.HTTPWriteTimeout)

	l, err := net.Listen("tcp", srv.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Addr(), err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting http server", "port", cfg.AppPort, "dialect", string(st.dialect))
	if err := srv.Run(ctx, l); err != nil {
		return err
	}
	logger.Info("http server stopped")
	return nil
}

func runMigrations(ctx context.Context, command string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(logging.New(os.Stdout, cfg.LogLevel))

	st, err := openStores(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.close()

	return db.Migrate(ctx, st.sqlDB, st.dialect, command)
}
