package obj

import (
	"github.com/milk9111/opensr/common"
)

// stepPlayer turns the player toward the pointer and moves it along the held
// direction keys.
func stepPlayer(ctx *Context, e *Entity, deltaMs int64) {
	in := &ctx.Input
	if in.HasPointer {
		aim := in.PointerWorld(ctx.Camera).Sub(e.Pos)
		if aim.Length() >= e.Width()/2 {
			e.SetAngle(common.VecAngle(aim))
		}
	}

	if !e.Stance.IsControllable() {
		return
	}
	dir, ok := in.Direction()
	if !ok {
		e.Speed = 0
		if e.Stance.IsSelfMoving() {
			e.SetStance(StanceStanding)
		}
		return
	}
	e.Speed = ctx.RunSpeed
	e.SetStance(StanceRunning)
	e.Move(dir, deltaMs)
}
