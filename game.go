package main

import (
	"fmt"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/opensr/prefabs"
	"github.com/milk9111/opensr/system"
)

type Game struct {
	world   *system.World
	watcher *prefabs.Watcher
	input   *InputPoller
	render  *Renderer

	lastUpdate time.Time
	paused     bool
	quit       bool
	debug      bool
	pauseUI    *ebitenui.UI
}

func NewGame(world *system.World, watcher *prefabs.Watcher, debug bool) *Game {
	g := &Game{
		world:   world,
		watcher: watcher,
		input:   NewInputPoller(),
		render:  NewRenderer(),
		debug:   debug,
	}
	g.pauseUI = NewPauseUI(g)
	return g
}

func (g *Game) Update() error {
	if g.quit || g.world.Quit() {
		return ebiten.Termination
	}
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	now := time.Now()
	if g.lastUpdate.IsZero() {
		g.lastUpdate = now
	}
	deltaMs := now.Sub(g.lastUpdate).Milliseconds()
	g.lastUpdate = now

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.world.Tick(deltaMs, g.input.Poll())
	return nil
}

func (g *Game) pollWatcher() {
	if err := g.watcher.Err(); err != nil {
		logger.Warn("watch prefabs", "err", err)
	}
	change, ok := g.watcher.Poll()
	if !ok {
		return
	}
	if change.Kind == prefabs.SpecCatalog {
		logger.Warn("catalog changed, restart to apply", "file", change.Name)
		return
	}
	spec, err := prefabs.LoadSimSpec(change.Name)
	if err != nil {
		logger.Warn("reload tunables", "file", change.Name, "err", err)
		return
	}
	g.world.ApplySpec(spec)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Begin(screen, g.world.Ctx.Camera)
	g.render.DrawTiles(g.world.Ctx.Level)
	g.world.Draw(g.render)
	if g.debug {
		g.render.DrawShapes(g.world.Ctx)
		s := g.world.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.0f  t=%dms  %s  hidden=%d", ebiten.ActualFPS(), s.TimeMs, s.Phase, s.Hidden))
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.world.Ctx.Camera.ViewSize()
	return int(w), int(h)
}
