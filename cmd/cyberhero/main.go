// cyberhero is a narrative cybersecurity game played in the terminal.
//
// Usage:
//
//	cyberhero play                     - Play in the local terminal
//	cyberhero serve                    - Start SSH server for remote play
//	cyberhero missions [nickname]      - List missions (with progress for a profile)
//	cyberhero profiles                 - List saved profiles
//	cyberhero scores                   - Show the completion leaderboard
//	cyberhero report <nickname>        - Export a Markdown progress report
//	cyberhero certificate <nickname>   - Export the PDF completion certificate
//
// Global flags:
//
//	--db <path>     - Set records database path (default: ~/.cyberhero/records.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cyberhero",
	Short: "CyberHero - Learn network security by playing",
	Long: `CyberHero is a narrative game that teaches network security basics
through a simulated hacker desktop: a terminal, a packet sniffer,
a hex viewer, a forum and an inbox.

Available commands:
  play         - Play in the local terminal
  serve        - Start SSH server for remote play
  missions     - List missions and per-profile progress
  profiles     - Manage saved profiles
  scores       - View the completion leaderboard
  report       - Export a Markdown progress report
  certificate  - Export the PDF completion certificate

Examples:
  cyberhero play
  cyberhero serve --ssh :2222
  cyberhero missions neo
  cyberhero report neo > neo.md`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cyberhero/records.db", "Path to records database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(missionsCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(certificateCmd)
}
