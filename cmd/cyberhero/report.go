package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cyberhero-game/cyberhero/internal/profile"
	"github.com/cyberhero-game/cyberhero/internal/report"
	"github.com/cyberhero-game/cyberhero/internal/storage"
)

var flagReportOut string

var reportCmd = &cobra.Command{
	Use:   "report <nickname>",
	Short: "Export a Markdown progress report",
	Long: `Export a player's progress as a Markdown document.

The report includes reputation, missions, badges and the completion
history from the records database when available.

Examples:
  cyberhero report neo
  cyberhero report neo --out neo.md`,
	Args: cobra.ExactArgs(1),
	Run:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagReportOut, "out", "", "Write to this file instead of stdout")
}

func runReport(cmd *cobra.Command, args []string) {
	manager, err := profile.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening profile store: %v\n", err)
		os.Exit(1)
	}
	p, err := manager.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile %q: %v\n", args[0], err)
		os.Exit(1)
	}

	var completions []storage.CompletionEntry
	if store, storeErr := storage.Open(flagDBPath); storeErr == nil {
		completions, err = store.Completions(p.Nickname)
		store.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not read completion history: %v\n", err)
		}
	}

	out := os.Stdout
	if flagReportOut != "" {
		f, createErr := os.Create(flagReportOut)
		if createErr != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", flagReportOut, createErr)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := report.WriteProgress(out, p, completions); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	if flagReportOut != "" {
		fmt.Printf("Report written to %s\n", flagReportOut)
	}
}
