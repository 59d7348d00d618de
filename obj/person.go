package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/opensr/common"
	"github.com/milk9111/opensr/component"
)

const (
	aimingMs    = 1000
	lyingDownMs = 3000

	walkSpeedMin   = 15
	walkSpeedRange = 15
	walkAttempts   = 4

	routeSpeed     = 20
	routeThreshold = 1

	playerPalette = 11
	policePalette = 0
)

func initPerson(ctx *Context, e *Entity) {
	switch e.Type {
	case EntityPlayer:
		e.PaletteID = playerPalette
	case EntityPolice:
		e.PaletteID = policePalette
	default:
		pool := ctx.Catalog.NPCPalettes()
		e.PaletteID = pool[ctx.Rand.IntN(len(pool))]
		e.GenderID = ctx.Rand.IntN(2)
	}
}

// FollowRoute attaches route and starts running along it.
func (e *Entity) FollowRoute(route component.Route) {
	e.Route.SetRoute(route, routeThreshold)
	e.FollowingRoute = true
	e.Speed = routeSpeed
	e.SetStance(StanceRunning)
	if p, ok := route.PointAt(0); ok {
		e.SetPos(p)
	}
	if a, ok := route.AngleAt(0); ok {
		e.SetAngle(a)
	}
}

func stepPerson(ctx *Context, e *Entity, deltaMs int64) {
	if !stepPersonBase(e) {
		return
	}
	switch e.Behavior.Person.Variant {
	case PersonBase:
		stepRoute(e, deltaMs)
	case PersonSidewalk:
		stepSidewalk(ctx, e, deltaMs)
	case PersonPlayer:
		stepPlayer(ctx, e, deltaMs)
	}
}

// stepPersonBase applies the stance timers and reports whether the variant
// may move this tick.
func stepPersonBase(e *Entity) bool {
	if e.Stance == StanceDead {
		return false
	}
	e.UpdatePrev()
	switch e.Stance {
	case StanceAiming:
		if e.StanceElapsedMs >= aimingMs {
			e.SetStance(StanceStanding)
		}
	case StanceLyingDown:
		if e.StanceElapsedMs >= lyingDownMs {
			e.SetStance(StanceStanding)
		}
		return false
	}
	return true
}

func stepRoute(e *Entity, deltaMs int64) {
	if !e.FollowingRoute {
		return
	}
	pos, angle, ok := e.Route.Step(e.Speed, deltaMs)
	if !ok {
		e.FollowingRoute = false
		e.Speed = 0
		e.SetStance(StanceStanding)
		return
	}
	e.Angle = angle
	e.SetPos(pos)
}

func stepSidewalk(ctx *Context, e *Entity, deltaMs int64) {
	p := &e.Behavior.Person
	switch e.Stance {
	case StanceStanding:
		for range walkAttempts {
			angle := float64(ctx.Rand.IntN(4)) * common.HalfPi
			dir := cp.Vector{X: e.Width() * math.Cos(angle), Y: e.Height() * math.Sin(angle)}
			if !ctx.Level.IsSidewalk(e.Pos.Add(dir)) {
				continue
			}
			p.WalkAngle = angle
			p.WalkDirection = dir
			e.Speed = walkSpeedMin + ctx.Rand.Float64()*walkSpeedRange
			e.SetStance(StanceWalking)
			break
		}
	case StanceWalking:
		e.Angle = p.WalkAngle
		e.MoveForward(deltaMs)
		if !ctx.Level.IsSidewalk(e.Pos.Add(p.WalkDirection)) {
			e.RollBack()
			e.Speed = 0
			e.SetStance(StanceStanding)
		}
	}
}

func spawnPerson(ctx *Context, e *Entity, pos cp.Vector) (cp.Vector, bool) {
	if !ctx.Level.IsSidewalk(pos) {
		return cp.Vector{}, false
	}
	e.Speed = 0
	e.SetStance(StanceStanding)
	return pos, true
}

// despawnPerson retires passengers that left a vehicle; every other person
// may be relocated.
func despawnPerson(_ *Context, e *Entity) bool {
	if e.Type == EntityVehiclePedestrian {
		e.Hidden = true
		return false
	}
	return true
}

func drawPerson(ctx *Context, e *Entity, d SpriteDrawer) {
	stance := e.Stance
	if stance == StanceRiding || e.Class.Clip < 0 {
		return
	}
	if stance == StanceUnknown {
		stance = StanceRunning
	}
	drawClip(ctx, d, e.Class.Clip+int(stance), e.Pos, e.Angle, e.StanceElapsedMs, e.PaletteID)
}
