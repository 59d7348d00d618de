package obj

import (
	"github.com/jakecoffman/cp"
)

// BehaviorKind selects the step/draw/spawn rules of an entity.
type BehaviorKind int

const (
	BehaviorNull BehaviorKind = iota
	BehaviorPerson
	BehaviorVehicle
)

// PersonVariant selects how a person decides where to go.
type PersonVariant int

const (
	// PersonBase only follows an attached route.
	PersonBase PersonVariant = iota
	// PersonSidewalk wanders along sidewalk tiles.
	PersonSidewalk
	// PersonPlayer is driven by input.
	PersonPlayer
)

type PersonData struct {
	Variant       PersonVariant
	WalkDirection cp.Vector
	WalkAngle     float64
}

type VehicleData struct {
	// LastTileCode is the tile the vehicle last entered legally, -1 before
	// the first one.
	LastTileCode int8
	WantedSpeed  float64
}

// Behavior is the closed set of entity behaviors. Only the data of Kind is
// meaningful.
type Behavior struct {
	Kind    BehaviorKind
	Person  PersonData
	Vehicle VehicleData
}

// NewBehavior returns the behavior for an entity type.
func NewBehavior(t EntityType) Behavior {
	switch {
	case t == EntityPlayer:
		return Behavior{Kind: BehaviorPerson, Person: PersonData{Variant: PersonPlayer}}
	case t == EntityPedestrian, t == EntityVehiclePedestrian, t == EntityGangster:
		return Behavior{Kind: BehaviorPerson, Person: PersonData{Variant: PersonSidewalk}}
	case t.IsPerson():
		return Behavior{Kind: BehaviorPerson, Person: PersonData{Variant: PersonBase}}
	case t.IsVehicle():
		return Behavior{Kind: BehaviorVehicle, Vehicle: VehicleData{LastTileCode: -1}}
	}
	return Behavior{Kind: BehaviorNull}
}

func (b *Behavior) init(ctx *Context, e *Entity) {
	switch b.Kind {
	case BehaviorPerson:
		initPerson(ctx, e)
	case BehaviorVehicle:
		initVehicle(ctx, e)
	}
}

// SpriteDrawer receives the sprites of an entity in draw order.
type SpriteDrawer interface {
	DrawSprite(id int, pos cp.Vector, flip int, palette int)
}

// drawClip draws the frame of clipID facing angle at elapsedMs. Clip -1 and
// unknown clips draw nothing.
func drawClip(ctx *Context, d SpriteDrawer, clipID int, pos cp.Vector, angle float64, elapsedMs int64, palette int) {
	if clipID < 0 || ctx == nil {
		return
	}
	clip, ok := ctx.Catalog.Clip(clipID)
	if !ok {
		return
	}
	sprite, ok := clip.Sprite(angle, elapsedMs)
	if !ok {
		return
	}
	d.DrawSprite(sprite, pos, 0, palette)
}
