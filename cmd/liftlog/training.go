// ABOUTME: CLI commands for training sessions: start, finish, active, and
// ABOUTME: the training list/show/rm subcommands.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/mwestbrook/liftlog/internal/models"
	"github.com/mwestbrook/liftlog/internal/notify"
	"github.com/mwestbrook/liftlog/internal/store"
	"github.com/spf13/cobra"
)

var (
	startName     string
	startWarmUp   string
	startAt       string
	trainingLimit int
	trainingSince string
	trainingUntil string
	activeWatch   bool
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Begin a training session",
	Long: `Begin a new training session.

Only one session can be active at a time; finish the current one first.

Examples:
  liftlog start
  liftlog start --name "Push day" --warm-up "10 min row"
  liftlog start --at "2024-12-14 07:00"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if active, err := st.ActiveTraining(); err == nil {
			return fmt.Errorf("a session is already active (started %s); run 'liftlog finish' first",
				formatMillis(active.StartTime))
		}

		in := models.TrainingInput{}
		if startName != "" {
			in.Name = &startName
		}
		if startWarmUp != "" {
			in.WarmUp = &startWarmUp
		}
		if startAt != "" {
			t, err := parseTime(startAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", startAt)
			}
			in.StartTime = t.UnixMilli()
		}

		tr, err := st.CreateTraining(in)
		if err != nil {
			return fmt.Errorf("failed to start training: %w", err)
		}

		color.Green("✓ Training started")
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(tr.ID[:8]),
			formatMillis(tr.StartTime))
		return nil
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "End the active training session",
	RunE: func(cmd *cobra.Command, args []string) error {
		active, err := st.ActiveTraining()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no active training session")
			}
			return err
		}

		end := time.Now().UnixMilli()
		if _, err := st.FinishTraining(active.ID, end); err != nil {
			return fmt.Errorf("failed to finish training: %w", err)
		}

		elapsed := time.Duration(end-active.StartTime) * time.Millisecond
		color.Green("✓ Training finished after %s", elapsed.Truncate(time.Minute))
		return nil
	},
}

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the active training session",
	Long: `Show the active training session.

With --watch, keeps running and prints the elapsed time every minute
until interrupted or the session ends.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		active, err := st.ActiveTraining()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				fmt.Println("No active training session.")
				return nil
			}
			return err
		}

		printTrainingLine(active)
		if !activeWatch {
			return nil
		}

		tracker := notify.NewTracker(
			func(trainingID string, startTime int64, elapsed time.Duration) {
				fmt.Printf("  %s elapsed\n", elapsed)
			},
			func(trainingID string) {
				fmt.Println("Session ended.")
			},
		)
		tracker.TrainingStarted(active.ID, active.StartTime)
		defer tracker.TrainingEnded()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		<-stop
		return nil
	},
}

var trainingCmd = &cobra.Command{
	Use:     "training",
	Aliases: []string{"tr"},
	Short:   "Manage training sessions",
	Long: `Review and manage recorded training sessions.

COMMANDS:

  list     List recent trainings (most recent first)
  show     View a training with all sets and rounds
  rm       Delete a training and everything in it

EXAMPLES:

  liftlog training list --limit 10
  liftlog training list --since 2024-01-01 --until 2024-06-30
  liftlog training show abc12345
  liftlog training rm abc12345`,
}

var trainingListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List trainings",
	RunE: func(cmd *cobra.Command, args []string) error {
		var trainings []*models.Training
		var err error

		if trainingSince != "" || trainingUntil != "" {
			start, end, rerr := parseDateRange(trainingSince, trainingUntil)
			if rerr != nil {
				return rerr
			}
			trainings, err = st.TrainingsByDateRange(start, end)
		} else {
			trainings, err = st.TrainingsByStartTime(trainingLimit)
		}
		if err != nil {
			return fmt.Errorf("failed to list trainings: %w", err)
		}

		if len(trainings) == 0 {
			fmt.Println("No trainings found.")
			return nil
		}
		for _, tr := range trainings {
			printTrainingLine(tr)
		}
		return nil
	},
}

var trainingShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "View a training with its sets and rounds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := resolveTraining(args[0])
		if err != nil {
			return err
		}

		details, err := st.TrainingDetails(tr.ID)
		if err != nil {
			return fmt.Errorf("failed to load training: %w", err)
		}

		printTrainingLine(&details.Training)
		if details.Training.WarmUp != nil {
			fmt.Printf("  Warm up:   %s\n", *details.Training.WarmUp)
		}
		if details.Training.CalmDown != nil {
			fmt.Printf("  Calm down: %s\n", *details.Training.CalmDown)
		}

		faint := color.New(color.Faint)
		for _, set := range details.Sets {
			fmt.Printf("  %s %s\n", faint.Sprint(set.ID[:8]), set.Exercise.Name)
			for _, round := range set.Rounds {
				fmt.Printf("      %g %s x %d\n", round.Weight, set.Exercise.WeightUnit, round.Reps)
			}
		}
		return nil
	},
}

var trainingRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete", "del"},
	Short:   "Delete a training",
	Long: `Delete a training together with all its sets and rounds.

CAUTION:

  This permanently deletes the session. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := resolveTraining(args[0])
		if err != nil {
			return err
		}

		if err := st.DeleteTrainingCascade(tr.ID); err != nil {
			return fmt.Errorf("failed to delete training: %w", err)
		}

		color.Yellow("✗ Deleted training from %s", formatMillis(tr.StartTime))
		return nil
	},
}

func printTrainingLine(tr *models.Training) {
	faint := color.New(color.Faint)
	name := ""
	if tr.Name != nil {
		name = *tr.Name
	}
	state := ""
	if tr.Active() {
		state = color.GreenString("active")
	} else {
		elapsed := time.Duration(tr.EndTime-tr.StartTime) * time.Millisecond
		state = elapsed.Truncate(time.Minute).String()
	}
	fmt.Printf("%s %s %s %s\n",
		faint.Sprint(tr.ID[:8]),
		formatMillis(tr.StartTime),
		padRight(truncate(name, 20), 20),
		state)
}

// resolveTraining looks a training up by id, falling back to an id-prefix
// scan like the list output suggests.
func resolveTraining(idOrPrefix string) (*models.Training, error) {
	tr, err := st.GetTraining(idOrPrefix)
	if err == nil {
		return tr, nil
	}

	trainings, err := st.AllTrainings()
	if err != nil {
		return nil, err
	}
	var match *models.Training
	for _, tr := range trainings {
		if len(idOrPrefix) >= 4 && len(tr.ID) >= len(idOrPrefix) && tr.ID[:len(idOrPrefix)] == idOrPrefix {
			if match != nil {
				return nil, fmt.Errorf("prefix %s matches multiple trainings", idOrPrefix)
			}
			match = tr
		}
	}
	if match == nil {
		return nil, fmt.Errorf("training not found: %s", idOrPrefix)
	}
	return match, nil
}

func parseDateRange(since, until string) (int64, int64, error) {
	start := int64(0)
	end := time.Now().UnixMilli()
	if since != "" {
		t, err := time.Parse("2006-01-02", since)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", since)
		}
		start = t.UnixMilli()
	}
	if until != "" {
		t, err := time.Parse("2006-01-02", until)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", until)
		}
		end = t.Add(24*time.Hour - time.Millisecond).UnixMilli()
	}
	return start, end, nil
}

func init() {
	startCmd.Flags().StringVar(&startName, "name", "", "session name")
	startCmd.Flags().StringVar(&startWarmUp, "warm-up", "", "warm-up notes")
	startCmd.Flags().StringVar(&startAt, "at", "", "start timestamp (YYYY-MM-DD HH:MM)")
	activeCmd.Flags().BoolVarP(&activeWatch, "watch", "w", false, "keep printing elapsed time")
	trainingListCmd.Flags().IntVarP(&trainingLimit, "limit", "n", 20, "max trainings to show")
	trainingListCmd.Flags().StringVar(&trainingSince, "since", "", "only trainings since date (YYYY-MM-DD)")
	trainingListCmd.Flags().StringVar(&trainingUntil, "until", "", "only trainings until date (YYYY-MM-DD)")

	trainingCmd.AddCommand(trainingListCmd)
	trainingCmd.AddCommand(trainingShowCmd)
	trainingCmd.AddCommand(trainingRmCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(activeCmd)
	rootCmd.AddCommand(trainingCmd)
}
