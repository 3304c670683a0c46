// ABOUTME: CLI commands for managing the exercise catalog.
// ABOUTME: Supports add, list, show, and rm subcommands.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/mwestbrook/liftlog/internal/models"
	"github.com/mwestbrook/liftlog/internal/store"
	"github.com/spf13/cobra"
)

var (
	exerciseDescription string
	exerciseType        string
	exerciseBodyPart    string
	exerciseUnit        string
	exerciseSteps       float64
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage exercises",
	Long: `Manage the exercise catalog.

Every set refers to an exercise, so register movements here first. Names
are unique; lookups by name work everywhere an exercise argument is taken.

COMMANDS:

  add      Register a new exercise
  list     List all exercises
  show     View an exercise with its history summary
  rm       Remove an exercise (refused while sets reference it)

EXAMPLES:

  liftlog exercise add "Bench Press" --unit kg --steps 2.5
  liftlog exercise add "Pull Up" --body-part back
  liftlog exercise list
  liftlog exercise rm "Pull Up"`,
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new exercise",
	Long: `Register a new exercise.

Examples:
  liftlog exercise add "Bench Press" --unit kg --steps 2.5
  liftlog exercise add "Squat" --type barbell --body-part legs`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := models.ExerciseInput{
			Name:       args[0],
			WeightUnit: models.WeightUnit(exerciseUnit),
			Steps:      exerciseSteps,
		}
		if exerciseDescription != "" {
			in.Description = &exerciseDescription
		}
		if exerciseType != "" {
			in.Type = &exerciseType
		}
		if exerciseBodyPart != "" {
			in.BodyPart = &exerciseBodyPart
		}

		ex, err := st.CreateExercise(in)
		if err != nil {
			if errors.Is(err, store.ErrDuplicateName) {
				return fmt.Errorf("exercise %q already exists", args[0])
			}
			return fmt.Errorf("failed to create exercise: %w", err)
		}

		color.Green("✓ Added %s", ex.Name)
		fmt.Printf("  %s %s, steps of %g\n",
			color.New(color.Faint).Sprint(ex.ID[:8]),
			ex.WeightUnit, ex.Steps)
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := st.AllExercises()
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		if len(exercises) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, ex := range exercises {
			bodyPart := ""
			if ex.BodyPart != nil {
				bodyPart = *ex.BodyPart
			}
			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(ex.ID[:8]),
				padRight(ex.Name, 24),
				padRight(string(ex.WeightUnit), 4),
				bodyPart)
		}
		return nil
	},
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show <name-or-id>",
	Short: "View an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := resolveExercise(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", color.New(color.Bold).Sprint(ex.Name))
		fmt.Printf("  ID:     %s\n", ex.ID)
		fmt.Printf("  Unit:   %s\n", ex.WeightUnit)
		fmt.Printf("  Steps:  %g\n", ex.Steps)
		if ex.Type != nil {
			fmt.Printf("  Type:   %s\n", *ex.Type)
		}
		if ex.BodyPart != nil {
			fmt.Printf("  Body:   %s\n", *ex.BodyPart)
		}
		if ex.Description != nil {
			fmt.Printf("  Notes:  %s\n", *ex.Description)
		}

		if last, err := st.LastUsedWeight(ex.ID, ""); err == nil {
			fmt.Printf("  Last:   %g %s x %d on %s\n",
				last.Weight, ex.WeightUnit, last.Reps, formatMillis(last.Date))
		}
		return nil
	},
}

var exerciseRmCmd = &cobra.Command{
	Use:     "rm <name-or-id>",
	Aliases: []string{"delete", "del"},
	Short:   "Remove an exercise",
	Long: `Remove an exercise from the catalog.

An exercise that is still referenced by any set cannot be removed;
delete the referencing trainings first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := resolveExercise(args[0])
		if err != nil {
			return err
		}

		if err := st.DeleteExercise(ex.ID); err != nil {
			if errors.Is(err, store.ErrExerciseInUse) {
				return fmt.Errorf("exercise %q is referenced by existing sets", ex.Name)
			}
			return fmt.Errorf("failed to delete exercise: %w", err)
		}

		color.Yellow("✗ Deleted %s", ex.Name)
		return nil
	},
}

// resolveExercise looks an exercise up by exact name, then by id.
func resolveExercise(nameOrID string) (*models.Exercise, error) {
	ex, err := st.GetExerciseByName(nameOrID)
	if err == nil {
		return ex, nil
	}
	ex, err = st.GetExercise(nameOrID)
	if err != nil {
		return nil, fmt.Errorf("exercise not found: %s", nameOrID)
	}
	return ex, nil
}

func init() {
	exerciseAddCmd.Flags().StringVar(&exerciseDescription, "description", "", "free-form description")
	exerciseAddCmd.Flags().StringVar(&exerciseType, "type", "", "exercise type (barbell, dumbbell, machine, ...)")
	exerciseAddCmd.Flags().StringVar(&exerciseBodyPart, "body-part", "", "primary body part")
	exerciseAddCmd.Flags().StringVar(&exerciseUnit, "unit", "", "weight unit: kg or lb (default kg)")
	exerciseAddCmd.Flags().Float64Var(&exerciseSteps, "steps", 0, "smallest weight increment (default 1)")

	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseShowCmd)
	exerciseCmd.AddCommand(exerciseRmCmd)
	rootCmd.AddCommand(exerciseCmd)
}
