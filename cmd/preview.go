package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/theirongolddev/ccline/internal/config"
	"github.com/theirongolddev/ccline/internal/preview"
	"github.com/theirongolddev/ccline/internal/snapshot"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagSnapshotFile string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Live-render the status line as the session progresses",
	Long: "Re-render the status line whenever the transcript changes,\n" +
		"reading the session snapshot from a file instead of stdin.",
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&flagSnapshotFile, "input", "i", "", "Path to a saved snapshot JSON file (required)")
	_ = previewCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(flagSnapshotFile)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	snap := snapshot.Read(bytes.NewReader(data))

	cfg, _ := config.Load()

	// Force TrueColor profile so the preview shows the same ANSI output
	// the host terminal would receive.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := preview.NewApp(snap, cfg, flagShort, flagNoPR)
	p := tea.NewProgram(app)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview error: %w", err)
	}
	return nil
}
