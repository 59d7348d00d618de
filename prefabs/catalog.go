package prefabs

import (
	"errors"
	"fmt"
	"slices"

	"github.com/milk9111/opensr/component"
)

var ErrUnknownClip = errors.New("unknown clip")

// ShapeKind selects the collision primitive of a class.
type ShapeKind string

const (
	ShapeDefault ShapeKind = ""
	ShapeNone    ShapeKind = "none"
	ShapeRect    ShapeKind = "rect"
	ShapeCircle  ShapeKind = "circle"
)

// Class is the immutable per-class attribute record.
type Class struct {
	ID         int
	Name       string
	EntityType int
	// Clip is the first clip of the class, -1 when it is never drawn.
	Clip   int
	Health int
	Width  float64
	Height float64
	Weight float64
	Shape  ShapeKind
}

// Catalog is the read-only class and clip lookup.
type Catalog struct {
	classes           []Class
	clips             []component.Clip
	riderClips        []int
	motorcycleClasses []int
	npcPalettes       []int
}

// NewCatalog validates spec and builds the lookup tables. Any class or rider
// clip that points outside the clip table is an error.
func NewCatalog(spec CatalogSpec) (*Catalog, error) {
	c := &Catalog{
		classes:           make([]Class, 0, len(spec.Classes)),
		clips:             make([]component.Clip, 0, len(spec.Clips)),
		riderClips:        slices.Clone(spec.RiderClips),
		motorcycleClasses: slices.Clone(spec.MotorcycleClasses),
		npcPalettes:       slices.Clone(spec.NPCPalettes),
	}
	for _, clip := range spec.Clips {
		c.clips = append(c.clips, component.Clip(clip))
	}
	for id, cs := range spec.Classes {
		if cs.Clip < -1 || cs.Clip >= len(c.clips) {
			return nil, fmt.Errorf("prefabs: class %d (%s) clip %d: %w", id, cs.Name, cs.Clip, ErrUnknownClip)
		}
		shape := ShapeKind(cs.Shape)
		switch shape {
		case ShapeDefault, ShapeNone, ShapeRect, ShapeCircle:
		default:
			return nil, fmt.Errorf("prefabs: class %d (%s): unknown shape %q", id, cs.Name, cs.Shape)
		}
		c.classes = append(c.classes, Class{
			ID:         id,
			Name:       cs.Name,
			EntityType: cs.EntityType,
			Clip:       cs.Clip,
			Health:     cs.Health,
			Width:      cs.Width,
			Height:     cs.Height,
			Weight:     cs.Weight,
			Shape:      shape,
		})
	}
	for gender, clip := range c.riderClips {
		if clip < 0 || clip >= len(c.clips) {
			return nil, fmt.Errorf("prefabs: rider clip for gender %d: %d: %w", gender, clip, ErrUnknownClip)
		}
	}
	if len(c.npcPalettes) == 0 {
		c.npcPalettes = []int{0}
	}
	return c, nil
}

// LoadCatalog loads classes.yaml, or the named file.
func LoadCatalog(name string) (*Catalog, error) {
	if name == "" {
		name = "classes.yaml"
	}
	spec, err := LoadSpec[CatalogSpec](name)
	if err != nil {
		return nil, err
	}
	return NewCatalog(spec)
}

// ClassCount is the number of classes.
func (c *Catalog) ClassCount() int {
	if c == nil {
		return 0
	}
	return len(c.classes)
}

// Class returns the class with the given id.
func (c *Catalog) Class(id int) (*Class, bool) {
	if c == nil || id < 0 || id >= len(c.classes) {
		return nil, false
	}
	return &c.classes[id], true
}

// Clip returns the clip with the given id.
func (c *Catalog) Clip(id int) (component.Clip, bool) {
	if c == nil || id < 0 || id >= len(c.clips) {
		return nil, false
	}
	return c.clips[id], true
}

// RiderClip is the clip drawn on a motorcycle for a rider gender.
func (c *Catalog) RiderClip(gender int) (int, bool) {
	if c == nil || gender < 0 || gender >= len(c.riderClips) {
		return 0, false
	}
	return c.riderClips[gender], true
}

// IsMotorcycle reports whether a class is drawn with a rider.
func (c *Catalog) IsMotorcycle(classID int) bool {
	return c != nil && slices.Contains(c.motorcycleClasses, classID)
}

// NPCPalettes is the pool random NPC persons pick their palette from.
func (c *Catalog) NPCPalettes() []int {
	if c == nil {
		return []int{0}
	}
	return c.npcPalettes
}
