// Package cli provides the command-line interface for the pricing
// application. It is a thin presentation layer over the pricing engine: it
// parses flags into MarketInputs, calls the calculation boundary, and
// renders the structured results.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lattice-pricer/internal/config"
	"lattice-pricer/internal/logging"
	"lattice-pricer/internal/performance"
	"lattice-pricer/internal/pricing"
	"lattice-pricer/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Pricer *pricing.Pricer
	Pool   *performance.WorkerPool
	Store  store.RunStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Pool = performance.NewWorkerPool(cfg.Engine.Workers)
	app.Pool.Start()
	app.Pricer = pricing.NewPricer(logger, app.Pool)

	if cfg.Store.Enabled {
		runStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize run store, history will be unavailable")
		} else {
			app.Store = runStore
			logger.Debug().Str("path", cfg.Store.Path).Msg("Run store initialized")
		}
	}

	rootCmd := &cobra.Command{
		Use:   "pricer",
		Short: "Lattice Pricer - binomial and trinomial option valuation",
		Long: `Lattice Pricer values options on discrete-time lattices.

It prices European and American contracts on Cox-Ross-Rubinstein binomial
and Boyle trinomial trees, estimates Greeks by finite-difference repricing,
and analyzes price convergence toward the Black-Scholes-Merton limit.

Use 'pricer help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Pool.Stop()
			if app.Store != nil {
				app.Store.Close()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/lattice-pricer)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newGreeksCmd(app))
	rootCmd.AddCommand(newTreeCmd(app))
	rootCmd.AddCommand(newConvergenceCmd(app))
	rootCmd.AddCommand(newParityCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("Lattice Pricer v%s\n", Version)
			}
		},
	}
}
