package obj

import (
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/opensr/common"
	"github.com/milk9111/opensr/levels"
	"github.com/milk9111/opensr/prefabs"
)

// Context is the simulation state handed to every behavior. Entities is an
// arena: ids are slice indices and entries are never removed.
type Context struct {
	Level   *levels.Level
	Catalog *prefabs.Catalog
	Camera  *Camera
	Rand    *rand.Rand

	Entities []Entity
	// PlayerID is the player's entity id, -1 without a player.
	PlayerID int

	TimeMs       int64
	Traffic      TrafficPhase
	SpawnCounter int
	Input        Input

	RunSpeed float64
}

// NewContext returns an empty context seeded with seed.
func NewContext(level *levels.Level, catalog *prefabs.Catalog, camera *Camera, seed uint64) *Context {
	return &Context{
		Level:    level,
		Catalog:  catalog,
		Camera:   camera,
		Rand:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		PlayerID: -1,
		RunSpeed: 60,
	}
}

// AddEntity appends an entity of class at pos and returns its id.
func (c *Context) AddEntity(class *prefabs.Class, pos cp.Vector) int {
	id := len(c.Entities)
	c.Entities = append(c.Entities, NewEntity(c, id, class, pos))
	if c.PlayerID < 0 && c.Entities[id].Type == EntityPlayer {
		c.PlayerID = id
	}
	return id
}

// Entity returns the entity with id.
func (c *Context) Entity(id int) (*Entity, bool) {
	if c == nil || id < 0 || id >= len(c.Entities) {
		return nil, false
	}
	return &c.Entities[id], true
}

// Player returns the player entity.
func (c *Context) Player() (*Entity, bool) {
	return c.Entity(c.PlayerID)
}

// IsPointFree reports whether no visible road user other than self is within
// clearance of p. Vehicles keep their own width clear; the player keeps
// self's height clear.
func (c *Context) IsPointFree(self *Entity, p cp.Vector) bool {
	for i := range c.Entities {
		other := &c.Entities[i]
		if other == self || other.Hidden || !other.Type.OccupiesRoad() {
			continue
		}
		clearance := other.Width()
		if other.Type == EntityPlayer {
			clearance = self.Height()
		}
		if common.ChebyshevDistance(other.Pos, p) < clearance {
			return false
		}
	}
	return true
}
