package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/opensr/common"
	"github.com/milk9111/opensr/levels"
	"github.com/milk9111/opensr/obj"
)

const quarterTile = common.TileSize / 4.0

// stepCollisions resolves entity pairs in ascending index order, then every
// entity against the level's impassable tiles. A pair is not re-checked
// after a later pair moves one of its entities.
func (w *World) stepCollisions() {
	ents := w.Ctx.Entities
	for i := range ents {
		if isPhysical(&ents[i]) {
			ents[i].Physical.SetPose(ents[i].Pos, ents[i].Angle)
		}
	}

	for i := range ents {
		a := &ents[i]
		if !isPhysical(a) {
			continue
		}
		for j := i + 1; j < len(ents); j++ {
			b := &ents[j]
			if !isPhysical(b) {
				continue
			}
			if response, ok := obj.Overlap(a.Physical, b.Physical); ok {
				Separate(a, b, response)
			}
		}
	}

	for i := range ents {
		if isPhysical(&ents[i]) {
			w.resolveTiles(&ents[i])
		}
	}
}

func isPhysical(e *obj.Entity) bool {
	return !e.Hidden && e.Physical != nil
}

// Separate splits response between a and b by weight so the heavier entity
// moves less. Zero combined weight moves neither.
func Separate(a, b *obj.Entity, response cp.Vector) {
	wa, wb := a.Physical.Weight, b.Physical.Weight
	total := wa + wb
	if total <= 0 {
		return
	}
	a.SetPos(a.Pos.Sub(response.Mult(wb / total)))
	b.SetPos(b.Pos.Add(response.Mult(wa / total)))
}

// resolveTiles pushes e out of impassable tiles. A move longer than a
// quarter tile is first replayed in quarter-tile steps and stops at the first
// step that hits a tile.
func (w *World) resolveTiles(e *obj.Entity) {
	if *w.Spec.Collision.Tunneling {
		move := e.Pos.Sub(e.PrevPos)
		dist := move.Length()
		if dist > quarterTile {
			steps := int(math.Ceil(dist / quarterTile))
			probe := e.Physical.Clone()
			for s := 1; s < steps; s++ {
				at := e.PrevPos.Add(move.Mult(float64(s) / float64(steps)))
				probe.SetPose(at, e.Angle)
				if resolved, hit := pushOutOfTiles(w.Ctx.Level, probe); hit {
					w.Logger.Debug("tunneling stopped", "id", e.ID, "step", s, "steps", steps)
					e.SetPos(resolved)
					break
				}
			}
		}
	}
	if resolved, hit := pushOutOfTiles(w.Ctx.Level, e.Physical); hit {
		e.SetPos(resolved)
	}
}

// pushOutOfTiles moves p out of every impassable tile its bounds touch and
// returns the new position. Tiles take none of the response.
func pushOutOfTiles(l *levels.Level, p *obj.PhysicalObject) (cp.Vector, bool) {
	bb := p.BB()
	tx0, ty0 := levels.PosToTile(cp.Vector{X: bb.L, Y: bb.B})
	tx1, ty1 := levels.PosToTile(cp.Vector{X: bb.R, Y: bb.T})
	half := common.TileSize / 2.0

	hit := false
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			if !l.IsImpassable(tx, ty) {
				continue
			}
			tile := obj.NewPhysicalObjectWithShape(obj.NewRect(half, half), 0, levels.TileCenter(tx, ty), 0)
			response, ok := obj.Overlap(p, tile)
			if !ok {
				continue
			}
			p.SetPose(p.Pos().Sub(response), p.Angle())
			hit = true
		}
	}
	return p.Pos(), hit
}
