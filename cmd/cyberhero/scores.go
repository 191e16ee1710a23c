package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cyberhero-game/cyberhero/internal/mission"
	"github.com/cyberhero-game/cyberhero/internal/storage"
)

var flagBestMission string

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the completion leaderboard",
	Long: `Display the top 10 players ranked by total XP earned.

Examples:
  cyberhero scores
  cyberhero scores --best mission1`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagBestMission, "best", "", "Show the best completion time for this mission")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening records database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagBestMission != "" {
		if !mission.Exists(flagBestMission) {
			fmt.Fprintf(os.Stderr, "Error: unknown mission %q\n", flagBestMission)
			fmt.Fprintln(os.Stderr, "Run 'cyberhero missions' to see available missions.")
			os.Exit(1)
		}
		best, err := store.BestTime(flagBestMission)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving best time: %v\n", err)
			os.Exit(1)
		}
		if best == 0 {
			fmt.Printf("No completions recorded yet for %s.\n", flagBestMission)
			return
		}
		fmt.Printf("Best time for %s: %dm%02ds\n", flagBestMission, best/60, best%60)
		return
	}

	entries, err := store.Leaderboard(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving leaderboard: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Leaderboard")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No completions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'cyberhero play' to set the first record!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "Rank", "Nickname", "XP", "Missions")
	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "----", "--------", "--", "--------")

	for i, entry := range entries {
		fmt.Printf("  %-4d  %-16s  %-8d  %d\n", i+1, entry.Nickname, entry.TotalXP, entry.Completions)
	}
}
