package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/opensr/prefabs"
)

type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
)

// Shape is a collision primitive centred on its owner. Extents are half
// sizes along the owner's local axes.
type Shape struct {
	Kind    ShapeKind
	Extents cp.Vector
	Radius  float64
}

func NewRect(halfW, halfH float64) Shape {
	return Shape{Kind: ShapeRect, Extents: cp.Vector{X: halfW, Y: halfH}}
}

func NewCircle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// BoundingRadius is the radius of the smallest centred circle holding s.
func (s Shape) BoundingRadius() float64 {
	if s.Kind == ShapeCircle {
		return s.Radius
	}
	return s.Extents.Length()
}

// PhysicalObject is a shape placed by a rigid transform. The chipmunk shape
// has no body; its cached geometry is refreshed by SetPose.
type PhysicalObject struct {
	Shape  Shape
	Weight float64

	pos   cp.Vector
	angle float64
	iso   cp.Transform
	geom  *cp.Shape
}

// NewPhysicalObject returns the collision object of a class, or nil when the
// class has no shape. Vehicles default to rectangles and persons to circles.
func NewPhysicalObject(class *prefabs.Class, t EntityType) *PhysicalObject {
	if class == nil {
		return nil
	}
	kind := class.Shape
	if kind == prefabs.ShapeDefault {
		switch {
		case t.IsVehicle():
			kind = prefabs.ShapeRect
		case t.IsPerson():
			kind = prefabs.ShapeCircle
		default:
			kind = prefabs.ShapeNone
		}
	}
	var shape Shape
	switch kind {
	case prefabs.ShapeRect:
		shape = NewRect(class.Width, class.Height)
	case prefabs.ShapeCircle:
		shape = NewCircle(class.Width)
	default:
		return nil
	}
	return NewPhysicalObjectWithShape(shape, class.Weight, cp.Vector{}, 0)
}

func NewPhysicalObjectWithShape(shape Shape, weight float64, pos cp.Vector, angle float64) *PhysicalObject {
	p := &PhysicalObject{Shape: shape, Weight: weight}
	if shape.Kind == ShapeCircle {
		p.geom = cp.NewCircle(nil, shape.Radius, cp.Vector{})
	} else {
		p.geom = cp.NewBox(nil, 2*shape.Extents.X, 2*shape.Extents.Y, 0)
	}
	p.SetPose(pos, angle)
	return p
}

// Clone returns an independent copy at the same pose.
func (p *PhysicalObject) Clone() *PhysicalObject {
	return NewPhysicalObjectWithShape(p.Shape, p.Weight, p.pos, p.angle)
}

// SetPose rebuilds the isometry and the shape's world geometry.
func (p *PhysicalObject) SetPose(pos cp.Vector, angle float64) {
	if p == nil {
		return
	}
	p.pos = pos
	p.angle = angle
	p.iso = cp.NewTransformRigid(pos, angle)
	p.geom.Update(p.iso)
}

func (p *PhysicalObject) Pos() cp.Vector {
	return p.pos
}

func (p *PhysicalObject) Angle() float64 {
	return p.angle
}

// BB is the world bounding box of the shape.
func (p *PhysicalObject) BB() cp.BB {
	return p.geom.BB()
}

// Corners returns the world corners of a rectangle, clockwise.
func (p *PhysicalObject) Corners() [4]cp.Vector {
	e := p.Shape.Extents
	return [4]cp.Vector{
		p.iso.Point(cp.Vector{X: -e.X, Y: -e.Y}),
		p.iso.Point(cp.Vector{X: e.X, Y: -e.Y}),
		p.iso.Point(cp.Vector{X: e.X, Y: e.Y}),
		p.iso.Point(cp.Vector{X: -e.X, Y: e.Y}),
	}
}

// Overlap returns the response of a against b: the direction from a toward
// b scaled by the penetration depth. Moving a by -response, or b by
// +response, separates them.
func Overlap(a, b *PhysicalObject) (cp.Vector, bool) {
	if a == nil || b == nil {
		return cp.Vector{}, false
	}
	if !a.BB().Intersects(b.BB()) {
		return cp.Vector{}, false
	}
	set := cp.ShapesCollide(a.geom, b.geom)
	depth := 0.0
	for i := 0; i < set.Count; i++ {
		depth = math.Max(depth, -set.Points[i].Distance)
	}
	if depth <= 0 {
		return cp.Vector{}, false
	}
	n := set.Normal
	if n.LengthSq() == 0 {
		// coincident centres
		n = cp.Vector{X: 1}
	}
	return n.Mult(depth), true
}
