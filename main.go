// opensr runs a top-down street simulation: pedestrians on sidewalks, traffic
// on one-way roads and intersections, and a player moving among them.
//
// Usage:
//
//	opensr play            - Open a window and play
//	opensr sim             - Run the simulation headless
//
// Global flags:
//
//	--config <file>   - Simulation tunables (default: prefabs/sim.yaml)
//	--catalog <file>  - Class catalog (default: prefabs/classes.yaml)
//	--seed <value>    - RNG seed, overrides the config
//	--debug           - Debug logging and overlays
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/opensr/prefabs"
	"github.com/milk9111/opensr/system"
)

var (
	flagConfig  string
	flagCatalog string
	flagSeed    uint64
	flagDebug   bool
	flagLevel   string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "opensr",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "opensr",
	Short: "Top-down street simulation",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagDebug {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "sim.yaml", "Simulation tunables YAML")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "classes.yaml", "Class catalog YAML")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = use the config's seed)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging and overlays")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "Level name in levels/ (basename, .json optional)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
}

// loadWorld builds a world from the config, catalog and level flags. Any
// catalog or level error is fatal.
func loadWorld() (*system.World, prefabs.SimSpec) {
	spec, err := prefabs.LoadSimSpec(flagConfig)
	if err != nil {
		logger.Fatal("load config", "file", flagConfig, "err", err)
	}
	if flagSeed != 0 {
		spec.Seed = flagSeed
	}
	if flagLevel != "" {
		spec.Level = flagLevel
	}

	catalog, err := prefabs.LoadCatalog(flagCatalog)
	if err != nil {
		logger.Fatal("load catalog", "file", flagCatalog, "err", err)
	}

	simLogger := logger.WithPrefix("sim")
	world, err := system.Load(spec.Level, catalog, spec, simLogger)
	if err != nil {
		logger.Fatal("load world", "level", spec.Level, "err", err)
	}
	return world, spec
}
