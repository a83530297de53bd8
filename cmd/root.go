// Package cmd implements the ccline command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/ccline/internal/config"
	"github.com/theirongolddev/ccline/internal/snapshot"
	"github.com/theirongolddev/ccline/internal/statusline"

	"github.com/spf13/cobra"
)

var (
	flagShort bool
	flagNoPR  bool
)

var rootCmd = &cobra.Command{
	Use:   "ccline",
	Short: "Claude Code status line",
	Long: "Render a one-line session status from the snapshot Claude Code\n" +
		"pipes on stdin: path, git state, PR checks, model, context usage,\n" +
		"duration, and cost.",
	Run: runRender,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&flagShort, "short", "s", false, "Condensed display (elide standard project paths)")
	rootCmd.Flags().BoolVar(&flagNoPR, "no-pr", false, "Skip the PR check-status fetch")
}

// runRender is deliberately Run, not RunE: status line rendering must
// never fail the host process, so degraded inputs shrink the line and
// the exit code stays zero.
func runRender(_ *cobra.Command, _ []string) {
	cfg, _ := config.Load()
	pricing := config.NewPricingTable(cfg.Pricing)

	snap := snapshot.Read(os.Stdin)
	line := statusline.Render(snap, cfg, pricing, statusline.Options{
		Short: flagShort,
		NoPR:  flagNoPR,
	})

	// No trailing newline: the host embeds the line as-is.
	fmt.Print(line)
}
