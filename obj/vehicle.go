package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/opensr/common"
	"github.com/milk9111/opensr/levels"
)

const (
	turnRate = 4.0

	cruiseSpeed  = 50.0
	turningSpeed = 25.0
	acceleration = 100.0
	deceleration = 200.0

	laneNudgeRate = 10.0
	laneSnap      = 1.0
	spawnNudgeMs  = 1000
)

// roadSearch is the order neighbouring tiles are tried when a vehicle has
// left the road.
var roadSearch = [...][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{2, 0}, {-2, 0}, {0, 2}, {0, -2},
}

func initVehicle(ctx *Context, e *Entity) {
	e.PaletteID = ctx.Rand.IntN(2) + 1
	if ctx.Catalog.IsMotorcycle(e.ClassID) {
		e.GenderID = ctx.Rand.IntN(2)
		pool := ctx.Catalog.NPCPalettes()
		e.PaletteID = pool[ctx.Rand.IntN(len(pool))]
	}
	if e.Type == EntityMovingVehicle {
		e.Hidden = true
	}
}

func stepVehicle(ctx *Context, e *Entity, deltaMs int64) {
	v := &e.Behavior.Vehicle
	e.UpdatePrev()
	v.WantedSpeed = 0
	if e.Stance == StanceRunning {
		code := ctx.Level.TileCodeAtPos(e.Pos)
		if target, ok := RoadDirection(code, ctx.Traffic); ok {
			if free, wanted := CanMoveOnRoad(ctx, e, target); free {
				v.WantedSpeed = turningSpeed
				if turnToward(e, target, deltaMs) {
					v.WantedSpeed = cruiseSpeed
				}
				v.LastTileCode = wanted
			}
		} else if target, ok := findAngleToRoad(ctx, e); ok {
			v.WantedSpeed = turningSpeed
			if turnToward(e, target, deltaMs) {
				v.WantedSpeed = cruiseSpeed
			}
		}
		moveToLaneCenter(ctx, e, deltaMs)
	}
	e.Speed = approachSpeed(e.Speed, v.WantedSpeed, deltaMs)
	e.MoveForward(deltaMs)
}

// CanMoveOnRoad reports whether the vehicle may advance into the point one
// and a half widths ahead of it along angle. It also returns the tile code at
// that point, which becomes the last tile once the vehicle commits to it.
func CanMoveOnRoad(ctx *Context, e *Entity, angle float64) (bool, int8) {
	amount := float64((3 * int(e.Width())) >> 1)
	wanted := e.Pos.Add(common.CosSin(angle).Mult(amount))
	code := ctx.Level.TileCodeAtPos(wanted)
	if !ctx.IsPointFree(e, wanted) {
		return false, code
	}
	last := e.Behavior.Vehicle.LastTileCode
	switch {
	case !IsRoad(last), IsOneWay(code), IsIntersection(last):
		return true, code
	case !ctx.Traffic.IsGreen():
		return false, code
	case !IsRoad(code):
		return true, code
	}
	return MayEnter(code, last, ctx.Traffic), code
}

// turnToward rotates by at most turnRate rad/s along the shorter way. It
// snaps onto target and reports true only when no turn is left.
func turnToward(e *Entity, target float64, deltaMs int64) bool {
	diff := common.AngleDiff(e.Angle, target)
	if common.FuzzyEq(diff, 0) {
		e.SetAngle(target)
		return true
	}
	step := math.Min(math.Abs(diff), turnRate*seconds(deltaMs))
	e.SetAngle(common.NormalizeAngle(e.Angle + math.Copysign(step, diff)))
	return false
}

// approachSpeed eases speed toward wanted, braking faster than it
// accelerates.
func approachSpeed(speed, wanted float64, deltaMs int64) float64 {
	dt := seconds(deltaMs)
	if speed > wanted {
		speed = math.Max(wanted, speed-deceleration*dt)
	} else {
		speed = math.Min(wanted, speed+acceleration*dt)
	}
	if math.Abs(speed) < 1e-5 {
		speed = 0
	}
	return speed
}

func findAngleToRoad(ctx *Context, e *Entity) (float64, bool) {
	tx, ty := levels.PosToTile(e.Pos)
	for _, off := range roadSearch {
		nx, ny := tx+off[0], ty+off[1]
		if !IsRoad(ctx.Level.TileCodeAt(nx, ny)) {
			continue
		}
		return common.VecAngle(levels.TileCenter(nx, ny).Sub(e.Pos)), true
	}
	return 0, false
}

// LaneCenter returns the lane line a vehicle on a straight segment should
// hold. A segment two tiles wide drives on the seam between its tiles.
func LaneCenter(l *levels.Level, pos cp.Vector) (line float64, vertical, ok bool) {
	tx, ty := levels.PosToTile(pos)
	code := l.TileCodeAt(tx, ty)
	origin := levels.TileToPos(tx, ty)
	center := levels.TileCenter(tx, ty)
	switch code {
	case RoadFirst, RoadFirst + 1:
		switch {
		case l.TileCodeAt(tx, ty+1) == code:
			return origin.Y + common.TileSize, false, true
		case l.TileCodeAt(tx, ty-1) == code:
			return origin.Y, false, true
		}
		return center.Y, false, true
	case RoadFirst + 2, RoadFirst + 3:
		switch {
		case l.TileCodeAt(tx+1, ty) == code:
			return origin.X + common.TileSize, true, true
		case l.TileCodeAt(tx-1, ty) == code:
			return origin.X, true, true
		}
		return center.X, true, true
	}
	return 0, false, false
}

// moveToLaneCenter nudges the vehicle across its lane toward the lane line.
func moveToLaneCenter(ctx *Context, e *Entity, deltaMs int64) {
	line, vertical, ok := LaneCenter(ctx.Level, e.Pos)
	if !ok {
		return
	}
	cur := e.Pos.Y
	if vertical {
		cur = e.Pos.X
	}
	dist := line - cur
	next := line
	if math.Abs(dist) > laneSnap {
		next = cur + math.Copysign(math.Min(math.Abs(dist), laneNudgeRate*seconds(deltaMs)), dist)
	}
	if vertical {
		e.SetPos(cp.Vector{X: next, Y: e.Pos.Y})
	} else {
		e.SetPos(cp.Vector{X: e.Pos.X, Y: next})
	}
}

// spawnVehicle only accepts straight segments whose direction matches the
// spawn counter, so new traffic is spread over every direction.
func spawnVehicle(ctx *Context, e *Entity, pos cp.Vector) (cp.Vector, bool) {
	tx, ty := levels.PosToTile(pos)
	code := ctx.Level.TileCodeAt(tx, ty)
	if code < RoadFirst || code > RoadSpawnLast {
		return cp.Vector{}, false
	}
	if ctx.SpawnCounter%roadSpawnChoices != int(code-RoadFirst) {
		return cp.Vector{}, false
	}
	center := levels.TileCenter(tx, ty)
	if !ctx.IsPointFree(e, center) {
		return cp.Vector{}, false
	}

	saved := e.EntityBase
	savedVehicle := e.Behavior.Vehicle
	e.SetPos(center)
	moveToLaneCenter(ctx, e, spawnNudgeMs)
	angle, _ := RoadDirection(code, ctx.Traffic)
	e.SetAngle(angle)
	e.Behavior.Vehicle.LastTileCode = code
	if free, _ := CanMoveOnRoad(ctx, e, e.Angle); !free {
		e.EntityBase = saved
		e.Behavior.Vehicle = savedVehicle
		e.SetPos(e.Pos)
		return cp.Vector{}, false
	}
	e.Hidden = false
	e.Speed = 0
	e.SetStance(StanceRunning)
	return e.Pos, true
}

func drawVehicle(ctx *Context, e *Entity, d SpriteDrawer) {
	drawClip(ctx, d, e.Class.Clip, e.Pos, e.Angle, 0, e.PaletteID)
	if !ctx.Catalog.IsMotorcycle(e.ClassID) {
		return
	}
	if rider, ok := ctx.Catalog.RiderClip(e.GenderID); ok {
		drawClip(ctx, d, rider, e.Pos, e.Angle, 0, e.PaletteID)
	}
}
