package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/ccline/internal/config"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to ccline!")
	fmt.Println()

	// 1. Context window
	fmt.Println("  1. Context window capacity")
	fmt.Println("     Used for the context percentage when the snapshot")
	fmt.Println("     does not report its own window size.")
	fmt.Println("     (1) 160,000 tokens [default]")
	fmt.Println("     (2) 200,000 tokens")
	fmt.Println("     (3) 1,000,000 tokens")
	fmt.Println("     (or type an exact number)")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	choice = strings.TrimSpace(choice)
	switch choice {
	case "", "1":
		cfg.General.ContextWindow = 160_000
	case "2":
		cfg.General.ContextWindow = 200_000
	case "3":
		cfg.General.ContextWindow = 1_000_000
	default:
		if n, err := strconv.ParseInt(choice, 10, 64); err == nil && n > 0 {
			cfg.General.ContextWindow = n
		}
	}
	fmt.Println()

	// 2. Theme
	fmt.Println("  2. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `ccline setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
