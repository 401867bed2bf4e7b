// Package cli implements the finlearn command line client. Every command
// opens the progress snapshot file, applies one operation through the
// progression engine and prints the result.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"finlearn/internal/config"
	"finlearn/internal/currency"
	apperrors "finlearn/internal/errors"
	"finlearn/internal/logger"
	"finlearn/internal/models"
	"finlearn/internal/progression"
	"finlearn/internal/store"
)

// app carries the state shared by every command of one invocation.
type app struct {
	statePath string
	currency  string
	loc       *time.Location
	now       func() time.Time

	engine *progression.Engine
	money  currency.Formatter
}

// Execute is the main entry point called from cmd/finlearn.
func Execute() {
	env := os.Getenv("ENV")
	if env == "" {
		env = "cli"
	}
	logger.Init(env)
	defer logger.Sync()

	if err := NewRootCmd(config.Get()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		logger.Sync()
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree with flag defaults taken from cfg.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	return newRootCmd(&app{loc: cfg.Location, now: time.Now}, cfg)
}

func newRootCmd(a *app, cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "finlearn",
		Short:         "Gamified personal finance tracker",
		Long:          "Track budgets, savings goals and SIP plans while earning XP, levels and achievements.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.statePath, "state", "s", cfg.StateFile, "Progress snapshot file")
	rootCmd.PersistentFlags().StringVarP(&a.currency, "currency", "c", cfg.Currency, "ISO 4217 currency used to display amounts")

	rootCmd.AddCommand(
		a.statusCmd(),
		a.achievementsCmd(),
		a.challengesCmd(),
		a.challengeCmd(),
		a.entryCmd(models.EntryKindExpense),
		a.entryCmd(models.EntryKindIncome),
		a.goalCmd(),
		a.investCmd(),
		a.sipCmd(),
		a.xpCmd(),
		a.resetCmd(),
	)
	return rootCmd
}

// open builds the engine over the snapshot file.
func (a *app) open() error {
	if a.statePath == "" {
		return errors.New("no state file configured, pass --state or set STATE_FILE")
	}
	if !currency.Valid(a.currency) {
		return fmt.Errorf("unknown currency %q", a.currency)
	}
	a.money = currency.NewFormatter(a.currency)

	opts := []progression.Option{progression.WithLocation(a.loc)}
	if a.now != nil {
		opts = append(opts, progression.WithClock(a.now))
	}
	a.engine = progression.New(store.NewFileStore(a.statePath), opts...)
	return nil
}

// settle turns a save failure into a printed warning. The change still
// applies to this invocation's output; every other error is returned.
func (a *app) settle(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrStateNotPersisted) {
		fmt.Fprintln(cmd.ErrOrStderr(), RenderWarning("progress was updated but could not be saved to "+a.statePath))
		return nil
	}
	return err
}

// touch records today's activity for the streak.
func (a *app) touch(cmd *cobra.Command) error {
	return a.settle(cmd, a.engine.RecordActivity(a.engine.Today()))
}
