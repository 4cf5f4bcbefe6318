// breakoutish is a breakout game for the terminal.
//
// Usage:
//
//	breakoutish play         - Play in the current terminal
//	breakoutish serve        - Start SSH server for remote play
//	breakoutish sim          - Run a headless deterministic simulation
//
// Global flags:
//
//	--config <path>     - Game config YAML (default: search path, then built-in)
//	--difficulty <name> - Difficulty preset: easy, normal, hard
//	--fps <rate>        - Render rate (default: from config)
//	--db <dsn>          - Round ledger (default: in-memory)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breakoutish/internal/config"
	"github.com/vovakirdan/breakoutish/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagFPS        int
	flagDB         string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakoutish",
	Short: "Breakout in your terminal",
	Long: `breakoutish is a breakout game with a fixed-step simulation,
played with the mouse or the arrow keys.

Available commands:
  play     - Play in the current terminal
  serve    - Start SSH server for remote play
  sim      - Headless simulation with a fake clock

Examples:
  breakoutish play
  breakoutish play --difficulty easy
  breakoutish serve --ssh :2222
  breakoutish sim --steps 10000`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Render rate in frames per second (0 = config value)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", storage.MemoryDSN, "Round ledger database (:memory: keeps it for this run only)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// loadConfig resolves the game configuration from the global flags.
func loadConfig() (config.BreakoutConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagFPS > 0 {
		cfg.Loop.FPS = flagFPS
	}
	return cfg, cfg.Validate()
}
