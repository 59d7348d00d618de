package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/opensr/prefabs"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open a window and play",
	Long: `Open a window on the level and control the player.

Controls:
  WASD/Arrows  - Move
  Mouse        - Aim
  P            - Pause
  Esc          - Quit

Examples:
  opensr play
  opensr play --level street --seed 7
  opensr play --watch`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload tunables when the sim spec changes on disk")
}

func runPlay(cmd *cobra.Command, args []string) {
	world, spec := loadWorld()

	var watcher *prefabs.Watcher
	if flagWatch {
		w, err := prefabs.NewWatcher(flagConfig, flagCatalog)
		if err != nil {
			logger.Warn("tunables watcher disabled", "err", err)
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(spec.Camera.Width*spec.Camera.Zoom), int(spec.Camera.Height*spec.Camera.Zoom))
	ebiten.SetWindowTitle("opensr - " + spec.Name)

	game := NewGame(world, watcher, flagDebug)
	logger.Info("play", "level", spec.Level, "seed", spec.Seed)
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run", "err", err)
	}
}
