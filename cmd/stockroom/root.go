package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mariopl2020/goods-order-autoreminder-by-email/internal/config"
	"github.com/mariopl2020/goods-order-autoreminder-by-email/internal/menu"
	"github.com/mariopl2020/goods-order-autoreminder-by-email/internal/paths"
	"github.com/mariopl2020/goods-order-autoreminder-by-email/internal/sqlite"
)

// Global flag values.
var (
	flagConfigFile string
	flagDBPath     string
	flagResetDB    bool
	flagAdd        bool
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "stockroom",
	Short: "Stockroom tracks raw-material stock and emails review reminders",
	Long: `Stockroom keeps one table of raw-material stock records and walks you
through it with a numbered menu: list what is due for a stock review, email
the responsible people, add records, change quantities, seed sample data,
or reset the table.`,
	SilenceUsage: true,
	RunE:         runStockroom,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (default: ./.env)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "database file (default: "+paths.DefaultDBPath+")")
	rootCmd.Flags().BoolVar(&flagResetDB, "reset-db", false, "drop and recreate the stock table before the menu starts")
	rootCmd.Flags().BoolVar(&flagAdd, "add", false, "add one material before the menu starts")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
}

// runStockroom opens the store, applies the startup flags, and hands control
// to the menu loop. A store that cannot be opened is the one fatal error;
// everything after that is reported and recovered inside the loop.
func runStockroom(cmd *cobra.Command, args []string) error {
	setupLogging()

	cfg, err := config.Load(flagConfigFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath, err := paths.ResolveDBPath(flagDBPath, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}

	store, err := sqlite.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store at %s: %w", dbPath, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("closing store")
		}
	}()

	controller := menu.New(menu.Params{
		Store:  store,
		Config: cfg,
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
	})

	if err := controller.Startup(flagResetDB, flagAdd); err != nil {
		return err
	}
	return controller.Run()
}

// setupLogging routes diagnostics to stderr so they never interleave with the
// menu on stdout.
func setupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if flagVerbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
