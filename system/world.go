package system

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/opensr/levels"
	"github.com/milk9111/opensr/obj"
	"github.com/milk9111/opensr/prefabs"
)

// World owns the simulation context and runs it one tick at a time.
type World struct {
	Ctx    *obj.Context
	Spec   prefabs.SimSpec
	Logger *log.Logger

	ticks int64
	quit  bool
}

// Stats is a summary of the entity arena.
type Stats struct {
	Ticks    int64
	TimeMs   int64
	Entities int
	Hidden   int
	Moving   int
	Phase    obj.TrafficPhase
}

// NewWorld builds a world from a loaded level. Placements are validated
// against the catalog before anything is created.
func NewWorld(level *levels.Level, catalog *prefabs.Catalog, spec prefabs.SimSpec, logger *log.Logger) (*World, error) {
	if level == nil || catalog == nil {
		return nil, fmt.Errorf("world: level and catalog are required")
	}
	if err := level.Validate(catalog.ClassCount()); err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	if logger == nil {
		logger = log.Default().WithPrefix("sim")
	}
	spec = spec.WithDefaults()

	camera := obj.NewCamera(spec.Camera.Width, spec.Camera.Height)
	camera.SetWorldBounds(level.PixelSize())
	ctx := obj.NewContext(level, catalog, camera, spec.Seed)
	ctx.RunSpeed = spec.Player.RunSpeed

	w := &World{Ctx: ctx, Spec: spec, Logger: logger}
	w.spawnPlacements()
	ctx.Traffic = obj.PhaseAt(ctx.TimeMs, spec.Traffic.PhaseMs)
	if p, ok := ctx.Player(); ok {
		camera.Update(p.Pos)
	}

	logger.Info("level loaded", "level", level.Name, "width", level.Width, "height", level.Height, "entities", len(ctx.Entities))
	return w, nil
}

// Load reads the named level and builds a world from it.
func Load(levelName string, catalog *prefabs.Catalog, spec prefabs.SimSpec, logger *log.Logger) (*World, error) {
	level, err := levels.Load(levelName)
	if err != nil {
		return nil, fmt.Errorf("world: load level %s: %w", levelName, err)
	}
	return NewWorld(level, catalog, spec, logger)
}

// ApplySpec re-applies the tunables that may change while running.
func (w *World) ApplySpec(spec prefabs.SimSpec) {
	if w == nil {
		return
	}
	spec = spec.WithDefaults()
	w.Spec.Camera = spec.Camera
	w.Spec.Player = spec.Player
	w.Ctx.Camera.SetViewSize(spec.Camera.Width, spec.Camera.Height)
	w.Ctx.RunSpeed = spec.Player.RunSpeed
	w.Logger.Info("tunables reloaded", "camera_w", spec.Camera.Width, "camera_h", spec.Camera.Height, "run_speed", spec.Player.RunSpeed)
}

// Tick advances the simulation by deltaMs: input, traffic lights, one
// despawn slot, every entity's step, collisions, then the camera.
func (w *World) Tick(deltaMs int64, events []obj.InputEvent) {
	if w == nil {
		return
	}
	ctx := w.Ctx
	if deltaMs < 0 {
		deltaMs = 0
	}
	if deltaMs > w.Spec.MaxDeltaMs {
		deltaMs = w.Spec.MaxDeltaMs
	}

	for _, ev := range events {
		ctx.Input.Apply(ev)
	}
	if ctx.Input.QuitRequested {
		w.quit = true
	}

	ctx.TimeMs += deltaMs
	ctx.Traffic = obj.PhaseAt(ctx.TimeMs, w.Spec.Traffic.PhaseMs)

	w.stepDespawn()

	for i := range ctx.Entities {
		ctx.Entities[i].Step(ctx, deltaMs)
	}

	w.stepCollisions()

	if p, ok := ctx.Player(); ok {
		ctx.Camera.Update(p.Pos)
	}
	w.ticks++
}

// Quit reports whether the exit key was pressed.
func (w *World) Quit() bool {
	return w != nil && w.quit
}

// Stats summarises the current tick.
func (w *World) Stats() Stats {
	s := Stats{Ticks: w.ticks, TimeMs: w.Ctx.TimeMs, Entities: len(w.Ctx.Entities), Phase: w.Ctx.Traffic}
	for i := range w.Ctx.Entities {
		e := &w.Ctx.Entities[i]
		if e.Hidden {
			s.Hidden++
			continue
		}
		if e.Speed != 0 {
			s.Moving++
		}
	}
	return s
}

// DrawOrder returns the ids of visible entities by ascending sort order.
// Ties keep id order.
func (w *World) DrawOrder() []int {
	ids := make([]int, 0, len(w.Ctx.Entities))
	for i := range w.Ctx.Entities {
		if !w.Ctx.Entities[i].Hidden {
			ids = append(ids, i)
		}
	}
	slices.SortStableFunc(ids, func(a, b int) int {
		return cmp.Compare(w.Ctx.Entities[a].SortOrder, w.Ctx.Entities[b].SortOrder)
	})
	return ids
}

// Draw emits every visible entity's sprites in draw order.
func (w *World) Draw(d obj.SpriteDrawer) {
	if w == nil || d == nil {
		return
	}
	for _, id := range w.DrawOrder() {
		w.Ctx.Entities[id].Draw(w.Ctx, d)
	}
}

func (w *World) spawnPlacements() {
	ctx := w.Ctx
	for _, pl := range ctx.Level.Entities {
		class, ok := ctx.Catalog.Class(pl.Class)
		if !ok {
			continue
		}
		id := ctx.AddEntity(class, cp.Vector{X: pl.X, Y: pl.Y})
		if pl.Route == nil {
			continue
		}
		e := &ctx.Entities[id]
		if e.Behavior.Kind == obj.BehaviorPerson && e.Behavior.Person.Variant == obj.PersonBase {
			e.FollowRoute(ctx.Level.Routes[*pl.Route])
		}
	}
}
