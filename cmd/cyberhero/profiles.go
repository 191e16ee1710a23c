package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cyberhero-game/cyberhero/internal/profile"
)

var flagDeleteProfile string

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List saved profiles",
	Long: `Show all saved player profiles, most recently played first.

Examples:
  cyberhero profiles
  cyberhero profiles --delete neo`,
	Args: cobra.NoArgs,
	Run:  runProfiles,
}

func init() {
	profilesCmd.Flags().StringVar(&flagDeleteProfile, "delete", "", "Delete the profile with this nickname")
}

func runProfiles(cmd *cobra.Command, args []string) {
	manager, err := profile.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening profile store: %v\n", err)
		os.Exit(1)
	}

	if flagDeleteProfile != "" {
		if err := manager.Delete(flagDeleteProfile); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting profile %q: %v\n", flagDeleteProfile, err)
			os.Exit(1)
		}
		fmt.Printf("Profile %q deleted.\n", flagDeleteProfile)
		return
	}

	profiles, err := manager.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing profiles: %v\n", err)
		os.Exit(1)
	}

	if len(profiles) == 0 {
		fmt.Println("No saved profiles.")
		fmt.Println()
		fmt.Println("Run 'cyberhero play' to create one.")
		return
	}

	fmt.Printf("  %-16s  %-20s  %-6s  %-8s  %s\n", "Nickname", "Reputation", "XP", "Missions", "Last played")
	fmt.Printf("  %-16s  %-20s  %-6s  %-8s  %s\n", "--------", "----------", "--", "--------", "-----------")

	for _, p := range profiles {
		fmt.Printf("  %-16s  %-20s  %-6d  %-8d  %s\n",
			p.Nickname,
			p.Progress.Level,
			p.Progress.XP,
			len(p.Progress.MissionsCompleted),
			p.SavedAt.Format("2006-01-02 15:04"),
		)
	}
}
