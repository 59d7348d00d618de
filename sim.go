package main

import (
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var (
	flagTicks   int
	flagDelta   int64
	flagProfile string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless",
	Long: `Run the simulation without a window at a fixed tick delta and log
periodic stats.

Examples:
  opensr sim --ticks 3600
  opensr sim --seed 42 --delta 33
  opensr sim --profile cpu`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Number of ticks to run")
	simCmd.Flags().Int64Var(&flagDelta, "delta", 16, "Tick delta in milliseconds")
	simCmd.Flags().StringVar(&flagProfile, "profile", "", "Profile the run: cpu or mem")
}

func runSim(cmd *cobra.Command, args []string) {
	switch flagProfile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		logger.Fatal("unknown profile mode", "profile", flagProfile)
	}

	world, _ := loadWorld()
	start := time.Now()
	for i := 1; i <= flagTicks; i++ {
		world.Tick(flagDelta, nil)
		if i%300 == 0 {
			s := world.Stats()
			logger.Info("tick", "n", s.Ticks, "sim_ms", s.TimeMs, "phase", s.Phase, "hidden", s.Hidden, "moving", s.Moving)
		}
	}
	s := world.Stats()
	logger.Info("done", "ticks", s.Ticks, "entities", s.Entities, "hidden", s.Hidden, "elapsed", time.Since(start))
}
