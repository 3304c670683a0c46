// ABOUTME: CLI commands for reviewing exercise history and overall stats.
// ABOUTME: Shared output helpers for time formatting and column layout.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	statsSince string
	statsUntil string
)

var historyCmd = &cobra.Command{
	Use:   "history <exercise>",
	Short: "Show past performance for an exercise",
	Long: `Show every recorded set for an exercise, grouped per training
session with the most recent session first.

Examples:
  liftlog history "Bench Press"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := resolveExercise(args[0])
		if err != nil {
			return err
		}

		history, err := st.History(ex.ID)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if len(history.History) == 0 {
			fmt.Printf("No history for %s.\n", ex.Name)
			return nil
		}

		fmt.Printf("%s\n", color.New(color.Bold).Sprint(ex.Name))
		for _, entry := range history.History {
			fmt.Printf("  %s\n", formatMillis(entry.Training.StartTime))
			for _, set := range entry.Sets {
				fmt.Print("   ")
				for _, round := range set.Rounds {
					fmt.Printf(" %gx%d", round.Weight, round.Reps)
				}
				fmt.Println()
			}
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show training statistics",
	Long: `Show counts of recorded sessions, optionally limited to a date range.

Examples:
  liftlog stats
  liftlog stats --since 2024-01-01 --until 2024-06-30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		total, err := st.TrainingCount()
		if err != nil {
			return fmt.Errorf("failed to count trainings: %w", err)
		}
		fmt.Printf("Trainings recorded: %d\n", total)

		if statsSince != "" || statsUntil != "" {
			start, end, err := parseDateRange(statsSince, statsUntil)
			if err != nil {
				return err
			}
			inRange, err := st.TrainingsByDateRange(start, end)
			if err != nil {
				return fmt.Errorf("failed to load range: %w", err)
			}
			fmt.Printf("In range:           %d\n", len(inRange))
		}

		exercises, err := st.AllExercises()
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}
		fmt.Printf("Exercises:          %d\n", len(exercises))
		return nil
	},
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	for len(s) < length {
		s += " "
	}
	return s
}

func init() {
	statsCmd.Flags().StringVar(&statsSince, "since", "", "only trainings since date (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsUntil, "until", "", "only trainings until date (YYYY-MM-DD)")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
}
