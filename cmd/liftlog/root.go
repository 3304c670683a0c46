// ABOUTME: Root Cobra command for liftlog CLI.
// ABOUTME: Handles store lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/mwestbrook/liftlog/internal/config"
	"github.com/mwestbrook/liftlog/internal/store"
	"github.com/spf13/cobra"
)

var (
	st *store.Store
)

var rootCmd = &cobra.Command{
	Use:   "liftlog",
	Short: "Personal workout tracker",
	Long: `Liftlog is a CLI tool for tracking weight training sessions.

WHAT IT TRACKS:

  Exercises   your movement catalog (name, weight unit, plate increments)
  Trainings   workout sessions bounded by start and end times
  Sets        exercise slots within a training, in performance order
  Rounds      individual weight-by-reps entries within a set

QUICK START:

  $ liftlog exercise add "Bench Press"       # Register an exercise
  $ liftlog start                            # Begin a training session
  $ liftlog set add "Bench Press"            # Add a set to the session
  $ liftlog round add <set-id> 60 8          # Log 60 x 8
  $ liftlog finish                           # End the session
  $ liftlog history "Bench Press"            # Review past performance

EXPORT / IMPORT:

  $ liftlog export json -o backup.json    # Full backup as JSON
  $ liftlog export yaml                   # Human-readable YAML
  $ liftlog import backup.json            # Restore (replaces all data)

DATA STORAGE:

  Records live in a local Badger database at ~/.local/share/liftlog.
  Everything stays on this device; there is no network account.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store open for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		st, err = cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if st != nil {
			return st.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
