package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cyberhero-game/cyberhero/internal/platform/tui"
	"github.com/cyberhero-game/cyberhero/internal/profile"
	"github.com/cyberhero-game/cyberhero/internal/settings"
	"github.com/cyberhero-game/cyberhero/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the local terminal",
	Long: `Start the game in the local terminal.

The title screen lets you create a profile or resume a saved one.
Profiles and settings are stored under your user data directory
(override with the CYBERHERO_DATA_DIR environment variable).

Controls:
  Arrows/hjkl  - Navigate
  Enter        - Select
  Esc          - Back / close app
  O            - Toggle objectives on the desktop
  Q/Ctrl+C     - Quit

Examples:
  cyberhero play
  cyberhero play --db ./records.db`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	// Get terminal size early; SSH sessions get theirs from the PTY
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	profiles, err := profile.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening profile store: %v\n", err)
		os.Exit(1)
	}

	cfg := settings.Load(settings.DefaultPath())

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	game, err := tui.NewGame(profiles, cfg, store)
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.RunLocal(game, settings.DefaultPath(), width, height)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
