package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/opensr/common"
	"github.com/milk9111/opensr/component"
	"github.com/milk9111/opensr/prefabs"
)

// EntityBase is the transform and state record shared by every entity kind.
type EntityBase struct {
	ID      int
	ClassID int
	Class   *prefabs.Class
	Type    EntityType

	Pos       cp.Vector
	PrevPos   cp.Vector
	Angle     float64
	PrevAngle float64
	Speed     float64

	// SortOrder mirrors Pos.Y when SortByY is set.
	SortOrder float64
	SortByY   bool

	Stance          Stance
	StanceElapsedMs int64

	PaletteID int
	GenderID  int

	Route          component.RouteData
	FollowingRoute bool
	Hidden         bool

	// Physical is the collision object, nil for entities without a shape.
	Physical *PhysicalObject
}

// SetPos moves the entity and keeps the sort order and collision object in
// step with it.
func (e *EntityBase) SetPos(pos cp.Vector) {
	e.Pos = pos
	if e.SortByY {
		e.SortOrder = pos.Y
	}
	if e.Physical != nil {
		e.Physical.SetPose(pos, e.Angle)
	}
}

// SetAngle turns the entity and keeps its collision object in step.
func (e *EntityBase) SetAngle(angle float64) {
	e.Angle = angle
	if e.Physical != nil {
		e.Physical.SetPose(e.Pos, angle)
	}
}

// UpdatePrev snapshots the pose before this tick's movement.
func (e *EntityBase) UpdatePrev() {
	e.PrevPos = e.Pos
	e.PrevAngle = e.Angle
}

// RollBack restores the pose saved by UpdatePrev.
func (e *EntityBase) RollBack() {
	e.Angle = e.PrevAngle
	e.SetPos(e.PrevPos)
}

// SetStance changes the stance and restarts its timer. Setting the current
// stance again keeps the timer running.
func (e *EntityBase) SetStance(s Stance) {
	if e.Stance == s {
		return
	}
	e.Stance = s
	e.StanceElapsedMs = 0
}

// MoveForward advances along the facing angle at the current speed.
func (e *EntityBase) MoveForward(deltaMs int64) {
	if e.Speed == 0 {
		return
	}
	e.Move(common.CosSin(e.Angle), deltaMs)
}

// Move advances along dir, which need not match the facing angle.
func (e *EntityBase) Move(dir cp.Vector, deltaMs int64) {
	e.SetPos(e.Pos.Add(dir.Mult(e.Speed * seconds(deltaMs))))
}

// Width is the class width, 0 for an entity without a class.
func (e *EntityBase) Width() float64 {
	if e.Class == nil {
		return 0
	}
	return e.Class.Width
}

// Height is the class height, 0 for an entity without a class.
func (e *EntityBase) Height() float64 {
	if e.Class == nil {
		return 0
	}
	return e.Class.Height
}

// Entity is one slot of the entity arena.
type Entity struct {
	EntityBase
	Behavior Behavior
}

// NewEntity builds an entity of class at pos. Palette, gender and initial
// visibility are picked from the class kind.
func NewEntity(ctx *Context, id int, class *prefabs.Class, pos cp.Vector) Entity {
	e := Entity{
		EntityBase: EntityBase{
			ID:      id,
			ClassID: class.ID,
			Class:   class,
			Type:    EntityType(class.EntityType),
			SortByY: true,
		},
	}
	e.Behavior = NewBehavior(e.Type)
	e.Physical = NewPhysicalObject(class, e.Type)
	e.SetPos(pos)
	e.UpdatePrev()
	e.Behavior.init(ctx, &e)
	return e
}

// Step advances the entity by deltaMs. Hidden entities do not step.
func (e *Entity) Step(ctx *Context, deltaMs int64) {
	if e == nil || e.Hidden {
		return
	}
	e.StanceElapsedMs += deltaMs
	switch e.Behavior.Kind {
	case BehaviorPerson:
		stepPerson(ctx, e, deltaMs)
	case BehaviorVehicle:
		stepVehicle(ctx, e, deltaMs)
	}
}

// Spawn tries to place the entity at pos. It returns the final position,
// which may be adjusted, or false when pos is not acceptable.
func (e *Entity) Spawn(ctx *Context, pos cp.Vector) (cp.Vector, bool) {
	if e == nil {
		return cp.Vector{}, false
	}
	switch e.Behavior.Kind {
	case BehaviorPerson:
		return spawnPerson(ctx, e, pos)
	case BehaviorVehicle:
		return spawnVehicle(ctx, e, pos)
	}
	return pos, true
}

// Despawn reports whether the entity may be relocated by a spawn search.
// False means it was retired in place or has to wait for a later cycle.
func (e *Entity) Despawn(ctx *Context) bool {
	if e == nil {
		return false
	}
	if e.Behavior.Kind == BehaviorPerson {
		return despawnPerson(ctx, e)
	}
	return true
}

// Draw emits the entity's sprites. Hidden entities draw nothing.
func (e *Entity) Draw(ctx *Context, d SpriteDrawer) {
	if e == nil || d == nil || e.Hidden || e.Class == nil {
		return
	}
	switch e.Behavior.Kind {
	case BehaviorPerson:
		drawPerson(ctx, e, d)
	case BehaviorVehicle:
		drawVehicle(ctx, e, d)
	default:
		drawClip(ctx, d, e.Class.Clip, e.Pos, e.Angle, 0, e.PaletteID)
	}
}

func seconds(deltaMs int64) float64 {
	return float64(deltaMs) / 1000
}
