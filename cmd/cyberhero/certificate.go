package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cyberhero-game/cyberhero/internal/profile"
	"github.com/cyberhero-game/cyberhero/internal/report"
)

var flagCertOut string

var certificateCmd = &cobra.Command{
	Use:   "certificate <nickname>",
	Short: "Export the PDF completion certificate",
	Long: `Export the completion certificate as a PDF.

The certificate is only available once every mission is accomplished.

Examples:
  cyberhero certificate neo
  cyberhero certificate neo --out diploma.pdf`,
	Args: cobra.ExactArgs(1),
	Run:  runCertificate,
}

func init() {
	certificateCmd.Flags().StringVar(&flagCertOut, "out", "", "Output file (default: <nickname>_certificate.pdf)")
}

func runCertificate(cmd *cobra.Command, args []string) {
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

	data, err := report.Certificate(p, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'cyberhero missions' to see what is left.")
		os.Exit(1)
	}

	out := flagCertOut
	if out == "" {
		out = p.Nickname + "_certificate.pdf"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", out, err)
		os.Exit(1)
	}
	fmt.Printf("Certificate written to %s\n", out)
}
