package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/breakoutish/internal/config"
	"github.com/vovakirdan/breakoutish/internal/core"
	"github.com/vovakirdan/breakoutish/internal/games/breakout"
	"github.com/vovakirdan/breakoutish/internal/loop"
	"github.com/vovakirdan/breakoutish/internal/storage"
)

var (
	flagSteps     int
	flagWidth     float64
	flagHeight    float64
	flagAutopilot bool
	flagVerbose   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run the game loop without a terminal, driven by a fake clock.

The run is deterministic: the same flags always print the same hash.
With --autopilot the paddle follows the ball; without it the paddle
never moves. The ball is relaunched after every reset.

Examples:
  breakoutish sim
  breakoutish sim --steps 100000 --autopilot=false
  breakoutish sim --width 400 --height 640 --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSteps, "steps", 3000, "Number of fixed steps to simulate")
	simCmd.Flags().Float64Var(&flagWidth, "width", 0, "Playfield width in pixels (0 = config value)")
	simCmd.Flags().Float64Var(&flagHeight, "height", 0, "Playfield height in pixels (0 = config value)")
	simCmd.Flags().BoolVar(&flagAutopilot, "autopilot", true, "Steer the paddle towards the ball")
	simCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every round to stderr")
}

// simResult is the outcome of a headless run.
type simResult struct {
	Snapshot breakout.Snapshot
	Rounds   int
	Frames   uint64
	Stats    *storage.Stats
}

// simulate runs steps fixed steps of a world on a fake clock, one step per
// loop iteration, recording rounds into store.
func simulate(cfg config.BreakoutConfig, steps int, autopilot bool, store *storage.Store, logger *log.Logger) (simResult, error) {
	var res simResult

	input := core.NewSignal()
	world, err := breakout.NewWorld(cfg, input, breakout.WithResetHook(func(ev breakout.ResetEvent) {
		res.Rounds++
		logger.Info("round over", "kind", ev.Kind, "score", ev.Score, "step", ev.Step)
		if _, err := store.RecordReset("sim", ev); err != nil {
			logger.Warn("could not record round", "error", err)
		}
	}))
	if err != nil {
		return res, err
	}

	clock := loop.NewFakeClock(time.Unix(0, 0))
	l := loop.New(world, loop.NewRecorder(), loop.WithClock(clock), loop.WithLogger(logger))
	width, _ := world.Size()

	l.Tick()
	for l.Steps() < uint64(steps) { //#nosec G115 -- steps is validated positive
		if world.Paused() {
			input.Press(ballRatio(world, width))
			if !autopilot {
				input.Release()
			}
		} else if autopilot {
			input.Move(ballRatio(world, width))
		}

		clock.Advance(world.Step())
		l.Tick()
	}

	res.Snapshot = world.Snapshot()
	res.Frames = l.Frames()
	res.Stats, err = store.Stats()
	return res, err
}

func ballRatio(world *breakout.World, width float64) float64 {
	return world.Ball().Bounds().CenterX() / width
}

func runSim(_ *cobra.Command, _ []string) error {
	if flagSteps <= 0 {
		return fmt.Errorf("--steps must be positive, got %d", flagSteps)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagWidth > 0 {
		cfg.Playfield.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.Playfield.Height = flagHeight
	}

	logger := log.New(io.Discard)
	if flagVerbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "breakoutish-sim"})
	}

	store, err := storage.Open(flagDB)
	if err != nil {
		return fmt.Errorf("cannot open round ledger: %w", err)
	}
	defer store.Close()

	res, err := simulate(cfg, flagSteps, flagAutopilot, store, logger)
	if err != nil {
		return err
	}

	snap := res.Snapshot
	fmt.Printf("Steps:    %d\n", snap.Steps)
	fmt.Printf("Score:    %d\n", snap.Score)
	fmt.Printf("Lives:    %d\n", snap.Lives)
	fmt.Printf("Bricks:   %d/%d\n", snap.BricksRemaining, len(snap.BrickData))
	fmt.Printf("Rounds:   %d (game over %d, cleared %d)\n", res.Rounds, res.Stats.GameOvers, res.Stats.LevelClears)
	fmt.Printf("Best:     %d\n", res.Stats.HighScore)
	fmt.Printf("Frames:   %d\n", res.Frames)
	fmt.Printf("Hash:     %016x\n", snap.Hash())
	return nil
}
