package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cyberhero-game/cyberhero/internal/mission"
	"github.com/cyberhero-game/cyberhero/internal/profile"
)

var missionsCmd = &cobra.Command{
	Use:   "missions [nickname]",
	Short: "List missions",
	Long: `Show all missions. With a nickname, shows that profile's progress.

Examples:
  cyberhero missions
  cyberhero missions neo`,
	Args: cobra.MaximumNArgs(1),
	Run:  runMissions,
}

func runMissions(cmd *cobra.Command, args []string) {
	missions := mission.List()

	var p *profile.Profile
	if len(args) == 1 {
		manager, err := profile.NewManager()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening profile store: %v\n", err)
			os.Exit(1)
		}
		p, err = manager.Load(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading profile %q: %v\n", args[0], err)
			os.Exit(1)
		}
	}

	fmt.Println("Missions:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, m := range missions {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, m := range missions {
		status := ""
		if p != nil {
			switch {
			case p.HasCompleted(m.ID):
				status = "  [done]"
			case p.HasUnlocked(m.ID):
				status = "  [in progress]"
			default:
				status = "  [locked]"
			}
		}
		fmt.Printf("  %-*s  %s%s\n", maxIDLen, m.ID, m.Title, status)
	}

	fmt.Println()
	fmt.Println("Run 'cyberhero play' to start.")
}
