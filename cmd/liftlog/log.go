// ABOUTME: CLI commands for logging work during the active session.
// ABOUTME: set add appends an exercise slot; round add records weight x reps.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/mwestbrook/liftlog/internal/models"
	"github.com/mwestbrook/liftlog/internal/store"
	"github.com/spf13/cobra"
)

var (
	setRest    int
	setNotes   string
	roundNotes string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Manage sets in the active session",
}

var setAddCmd = &cobra.Command{
	Use:   "add <exercise>",
	Short: "Add a set to the active training",
	Long: `Add a set for an exercise to the active training session.

The set is appended after existing sets. The last weights used for the
exercise are shown as a starting hint.

Examples:
  liftlog set add "Bench Press"
  liftlog set add "Squat" --rest 180 --notes "pause at bottom"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		active, err := st.ActiveTraining()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no active training session; run 'liftlog start' first")
			}
			return err
		}

		ex, err := resolveExercise(args[0])
		if err != nil {
			return err
		}

		existing, err := st.SetsByTrainingID(active.ID)
		if err != nil {
			return fmt.Errorf("failed to load session sets: %w", err)
		}

		in := models.SetInput{
			TrainingID:      active.ID,
			ExerciseID:      ex.ID,
			OrderInTraining: len(existing),
		}
		if setRest > 0 {
			in.RestPeriod = &setRest
		}
		if setNotes != "" {
			in.Notes = &setNotes
		}

		set, err := st.CreateSet(in)
		if err != nil {
			return fmt.Errorf("failed to create set: %w", err)
		}

		color.Green("✓ Added set %d: %s", set.OrderInTraining+1, ex.Name)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(set.ID[:8]))

		// Hint with the rounds from the last time this exercise was done
		if last, err := st.LastSetRounds(ex.ID, active.ID); err == nil {
			fmt.Printf("  Last time (%s):", formatMillis(last.Date))
			for _, round := range last.Rounds {
				fmt.Printf(" %gx%d", round.Weight, round.Reps)
			}
			fmt.Println()
		}
		return nil
	},
}

var roundCmd = &cobra.Command{
	Use:   "round",
	Short: "Manage rounds within a set",
}

var roundAddCmd = &cobra.Command{
	Use:   "add <set-id> <weight> <reps>",
	Short: "Record a round",
	Long: `Record one weight-by-reps round for a set.

Examples:
  liftlog round add abc12345 60 8
  liftlog round add abc12345 62.5 6 --notes "last rep slow"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := resolveSet(args[0])
		if err != nil {
			return err
		}

		weight, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[1])
		}
		reps, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid reps: %s", args[2])
		}

		existing, err := st.RoundsBySetID(set.ID)
		if err != nil {
			return fmt.Errorf("failed to load rounds: %w", err)
		}

		in := models.RoundInput{
			SetID:      set.ID,
			OrderInSet: len(existing),
			Weight:     weight,
			Reps:       reps,
		}
		if roundNotes != "" {
			in.Notes = &roundNotes
		}

		round, err := st.CreateRound(in)
		if err != nil {
			return fmt.Errorf("failed to create round: %w", err)
		}

		color.Green("✓ Round %d: %g x %d", round.OrderInSet+1, round.Weight, round.Reps)
		return nil
	},
}

// resolveSet looks a set up by id, falling back to an id-prefix scan.
func resolveSet(idOrPrefix string) (*models.Set, error) {
	set, err := st.GetSet(idOrPrefix)
	if err == nil {
		return set, nil
	}

	sets, err := st.AllSets()
	if err != nil {
		return nil, err
	}
	var match *models.Set
	for _, set := range sets {
		if len(idOrPrefix) >= 4 && len(set.ID) >= len(idOrPrefix) && set.ID[:len(idOrPrefix)] == idOrPrefix {
			if match != nil {
				return nil, fmt.Errorf("prefix %s matches multiple sets", idOrPrefix)
			}
			match = set
		}
	}
	if match == nil {
		return nil, fmt.Errorf("set not found: %s", idOrPrefix)
	}
	return match, nil
}

func init() {
	setAddCmd.Flags().IntVar(&setRest, "rest", 0, "rest period in seconds")
	setAddCmd.Flags().StringVar(&setNotes, "notes", "", "notes for the set")
	roundAddCmd.Flags().StringVar(&roundNotes, "notes", "", "notes for the round")

	setCmd.AddCommand(setAddCmd)
	roundCmd.AddCommand(roundAddCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(roundCmd)
}
