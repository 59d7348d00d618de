package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/opensr/common"
	"github.com/milk9111/opensr/levels"
	"github.com/milk9111/opensr/obj"
)

const ringCandidates = 8

// stepDespawn visits the next NPC slot of the round robin. Slots holding
// other kinds are skipped without spending the tick.
func (w *World) stepDespawn() {
	ctx := w.Ctx
	n := len(ctx.Entities)
	for range n {
		id := ctx.SpawnCounter % n
		e := &ctx.Entities[id]
		if !e.Type.IsNPC() {
			ctx.SpawnCounter++
			continue
		}
		w.recycle(e)
		ctx.SpawnCounter++
		return
	}
}

// recycle moves an NPC that left the view to a spot just outside it.
func (w *World) recycle(e *obj.Entity) {
	ctx := w.Ctx
	if !e.Hidden && !ctx.Camera.OutOfScreen(e.Pos) {
		return
	}
	if !e.Despawn(ctx) {
		return
	}
	pos, ok := w.findSpawn(e)
	if !ok {
		w.Logger.Debug("spawn search exhausted", "id", e.ID, "class", e.Class.Name)
		return
	}
	e.SetPos(pos)
	e.Hidden = false
	e.UpdatePrev()
	w.Logger.Debug("respawned", "id", e.ID, "class", e.Class.Name, "x", pos.X, "y", pos.Y)
}

// findSpawn searches rings around the view centre, starting just outside the
// view and growing one tile per ring. The ring's rotation is random so
// successive searches try different spots.
func (w *World) findSpawn(e *obj.Entity) (cp.Vector, bool) {
	ctx := w.Ctx
	mid := ctx.Camera.Middle()
	viewW, viewH := ctx.Camera.ViewSize()
	base := math.Ceil(math.Min(viewW, viewH) / common.TileSize)
	phase := ctx.Rand.Float64()

	for ring := range w.Spec.Spawn.Rings {
		radius := (base + float64(ring)) * common.TileSize
		for k := range ringCandidates {
			a := (float64(k) + phase) * common.TwoPi / ringCandidates
			p := mid.Add(common.CosSin(a).Mult(radius))
			tx, ty := levels.PosToTile(p)
			if tx < 0 || ty < 0 || tx >= ctx.Level.Width || ty >= ctx.Level.Height {
				continue
			}
			if pos, ok := e.Spawn(ctx, levels.TileCenter(tx, ty)); ok {
				return pos, true
			}
		}
	}
	return cp.Vector{}, false
}
