// ABOUTME: CLI command for the singleton user profile.
// ABOUTME: Shows the profile without arguments, sets the name with one.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/mwestbrook/liftlog/internal/models"
	"github.com/mwestbrook/liftlog/internal/store"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user [name]",
	Short: "Show or set the user profile",
	Long: `Show or set the local user profile.

Examples:
  liftlog user          # Show the profile
  liftlog user "Alex"   # Set the name`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			user, err := st.GetUser()
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					fmt.Println("No profile set. Run 'liftlog user <name>' to create one.")
					return nil
				}
				return err
			}
			fmt.Printf("%s\n", color.New(color.Bold).Sprint(user.Name))
			fmt.Printf("  Since: %s\n", formatMillis(user.CreatedAt))
			return nil
		}

		user, err := st.SaveUser(models.UserInput{Name: args[0]})
		if err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		color.Green("✓ Profile saved: %s", user.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
}
