package obj

// EntityType is the kind of an entity class, as stored in the catalog.
type EntityType int

const (
	EntityNone EntityType = iota
	EntityExtra
	EntityPlayer
	EntityPedestrian
	EntityVehiclePedestrian
	EntityGangster
	EntityPolice
	EntityBystander
	EntityParkedVehicle
	EntityPlayerVehicle
	EntityMovingVehicle
	EntityEnemyVehicle
	EntityPoliceCar
	EntityPickup
	EntityProp
	EntityDecal
	EntityGarageDoor
	EntityDoor
	EntitySpawner
	EntityTrigger
	EntityMarker
)

var entityTypeNames = [...]string{
	"none", "extra", "player", "pedestrian", "vehicle_pedestrian", "gangster",
	"police", "bystander", "parked_vehicle", "player_vehicle", "moving_vehicle",
	"enemy_vehicle", "police_car", "pickup", "prop", "decal", "garage_door",
	"door", "spawner", "trigger", "marker",
}

func (t EntityType) String() string {
	if t < 0 || int(t) >= len(entityTypeNames) {
		return "unknown"
	}
	return entityTypeNames[t]
}

// IsPerson reports whether the type walks on foot.
func (t EntityType) IsPerson() bool {
	return t >= EntityExtra && t <= EntityBystander
}

// IsVehicle reports whether the type is driven by the road navigator.
func (t EntityType) IsVehicle() bool {
	return t >= EntityParkedVehicle && t <= EntityPoliceCar
}

// OccupiesRoad reports whether the type blocks a vehicle's next point. The
// clearance uses the other entity's width for vehicles and the asking
// entity's height for the player.
func (t EntityType) OccupiesRoad() bool {
	switch t {
	case EntityParkedVehicle, EntityPlayerVehicle, EntityMovingVehicle, EntityPoliceCar, EntityPlayer:
		return true
	}
	return false
}

// IsNPC reports whether the type takes part in the despawn cycle.
func (t EntityType) IsNPC() bool {
	switch t {
	case EntityPedestrian, EntityVehiclePedestrian, EntityGangster, EntityMovingVehicle:
		return true
	}
	return false
}

// Stance is the animation state of an entity. Its value is also the clip
// offset from a person class's first clip.
type Stance int

const (
	StanceStanding Stance = iota
	StanceWalking
	StanceRunning
	StanceDead
	StanceLyingDown
	StanceAiming
	StanceShooting
	StancePunching
	StanceRiding
	StanceSliding
	StanceUnknown
)

var stanceNames = [...]string{
	"standing", "walking", "running", "dead", "lying_down", "aiming",
	"shooting", "punching", "riding", "sliding", "unknown",
}

func (s Stance) String() string {
	if s < 0 || int(s) >= len(stanceNames) {
		return "unknown"
	}
	return stanceNames[s]
}

// IsSelfMoving reports whether the stance was entered by the entity's own
// movement and may be left as soon as it stops.
func (s Stance) IsSelfMoving() bool {
	return s == StanceWalking || s == StanceRunning
}

// IsControllable reports whether player movement input applies in the stance.
func (s Stance) IsControllable() bool {
	switch s {
	case StanceStanding, StanceAiming, StanceWalking, StanceRunning:
		return true
	}
	return false
}
