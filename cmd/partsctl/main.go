package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"parts-matching-client/internal/adapters/backend"
	"parts-matching-client/internal/adapters/sessionstore"
	"parts-matching-client/internal/adapters/transport"
	"parts-matching-client/internal/config"
	"parts-matching-client/internal/platform/obs"
	"parts-matching-client/internal/session"
)

var (
	// Global flags
	verbose    bool
	configPath string
	outputJSON bool

	// Set up by PersistentPreRunE.
	cfg        config.Config
	sessions   *session.Manager
	api        *backend.Client
	closeStore func() error
	flushLog   func()
)

var rootCmd = &cobra.Command{
	Use:   "partsctl",
	Short: "Command-line client for the emergency parts matching marketplace",
	Long: `partsctl talks to the parts matching backend on behalf of buyers,
suppliers and admins: place and track orders, manage inventory, follow
deliveries and read notifications.

The session (token and profile) is kept in the configured session store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, flush, err := obs.NewLogger(verbose)
		if err != nil {
			return err
		}
		flushLog = flush

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		store, closeFn, err := sessionstore.Open(cmd.Context(), cfg.Session)
		if err != nil {
			return err
		}
		closeStore = closeFn
		sessions = session.NewManager(store)

		tc, err := transport.NewClient(transport.Config{
			BaseURL:     cfg.APIURL,
			Timeout:     cfg.HTTPTimeout,
			MaxAttempts: cfg.MaxAttempts,
		}, sessions)
		if err != nil {
			return err
		}
		api = backend.New(tc)

		logger.Debug("client ready",
			zap.String("api_url", cfg.APIURL),
			zap.String("session_backend", cfg.Session.Backend),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeStore != nil {
			if err := closeStore(); err != nil {
				zap.L().Warn("close session store", zap.Error(err))
			}
		}
		if flushLog != nil {
			flushLog()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default $PARTSCTL_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Print JSON instead of tables")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
