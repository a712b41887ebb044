// Package cmd implements the tally CLI commands.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/ledger"
	"github.com/theirongolddev/tally/internal/store"
	"github.com/theirongolddev/tally/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flagDB    string
	flagDebug bool
	flagQuiet bool

	debugLog io.Closer

	// warnings destination; replaced in tests
	stderr io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:          "tally",
	Short:        "Terminal expense tracker",
	Long:         "Set a budget, record expenses, and watch what remains.",
	RunE:         runTUI,
	SilenceUsage: true,

	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if !flagDebug {
			log.SetOutput(io.Discard)
			return nil
		}
		if err := os.MkdirAll(config.DataDir(), 0o750); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		f, err := tea.LogToFile(filepath.Join(config.DataDir(), "debug.log"), "tally")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		debugLog = f
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if debugLog != nil {
			_ = debugLog.Close()
		}
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default: $TALLY_DB or the data directory)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write a debug log to the data directory")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings")
}

// session is the shared state-loading path used by all commands.
type session struct {
	cfg     config.Config
	store   *store.Store
	tracker *tracker.Tracker
	report  *store.LoadReport
}

func (s *session) Close() error {
	return s.store.Close()
}

// openSession loads config, opens the store and replays persisted state.
// Repaired stored data is reported on stderr for every command.
func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	policy, err := ledger.ParsePolicy(cfg.Budget.Overshoot)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", config.Path(), err)
	}

	dbPath := flagDB
	if dbPath == "" {
		dbPath = config.DBPath(cfg)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	tr, lr, err := tracker.Open(st, policy, cfg.General.DefaultBudget)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	if lr.Report != nil {
		warnf("%s", lr.Report)
	}

	return &session{cfg: cfg, store: st, tracker: tr, report: lr.Report}, nil
}

// warnf prints a warning to stderr unless --quiet is set.
func warnf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(stderr, "  "+format+"\n", args...)
}
