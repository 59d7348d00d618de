package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/opensr/common"
)

// Waypoint is one route vertex and the arclength from the first vertex to it.
type Waypoint struct {
	Pos      cp.Vector
	Distance float64
}

// Route is an ordered, arclength-parametrized polyline. Distances never
// decrease and the last waypoint carries the total length.
type Route struct {
	Waypoints []Waypoint
}

// NewRoute builds a route through points and fills in cumulative distances.
func NewRoute(points []cp.Vector) Route {
	r := Route{Waypoints: make([]Waypoint, len(points))}
	for i, p := range points {
		r.Waypoints[i].Pos = p
	}
	r.SetDistances()
	return r
}

// SetDistances recomputes the cumulative distance of every waypoint.
func (r *Route) SetDistances() {
	if r == nil || len(r.Waypoints) == 0 {
		return
	}
	total := 0.0
	r.Waypoints[0].Distance = 0
	for i := 1; i < len(r.Waypoints); i++ {
		total += r.Waypoints[i].Pos.Distance(r.Waypoints[i-1].Pos)
		r.Waypoints[i].Distance = total
	}
}

// TotalLength is the distance of the last waypoint.
func (r Route) TotalLength() float64 {
	if len(r.Waypoints) == 0 {
		return 0
	}
	return r.Waypoints[len(r.Waypoints)-1].Distance
}

// segmentAt returns the index i of the segment [i-1, i] containing distance d.
func (r Route) segmentAt(d float64) (int, bool) {
	if d < 0 {
		return 0, false
	}
	for i := 1; i < len(r.Waypoints); i++ {
		if d <= r.Waypoints[i].Distance {
			return i, true
		}
	}
	return 0, false
}

// PointAt returns the position at arclength d. Past the end of the route
// there is no point.
func (r Route) PointAt(d float64) (cp.Vector, bool) {
	if len(r.Waypoints) == 1 && d == 0 {
		return r.Waypoints[0].Pos, true
	}
	i, ok := r.segmentAt(d)
	if !ok {
		return cp.Vector{}, false
	}
	a, b := r.Waypoints[i-1], r.Waypoints[i]
	return common.InterpolateVec(a.Pos, b.Pos, a.Distance, b.Distance, d), true
}

// AngleAt returns the heading of the segment containing arclength d.
func (r Route) AngleAt(d float64) (float64, bool) {
	i, ok := r.segmentAt(d)
	if !ok {
		return 0, false
	}
	return common.VecAngle(r.Waypoints[i].Pos.Sub(r.Waypoints[i-1].Pos)), true
}

// RouteData is the per-entity state of a route follower.
type RouteData struct {
	Route     *Route
	Threshold float64
	Progress  float64
}

// SetRoute starts following route from its beginning. The follower stops once
// less than threshold remains.
func (d *RouteData) SetRoute(route Route, threshold float64) {
	d.Route = &route
	d.Threshold = threshold
	d.Progress = 0
}

// Reset drops the current route.
func (d *RouteData) Reset() {
	d.Route = nil
}

// Step advances progress by speed over deltaMs and returns the new pose. When
// the route is exhausted it is dropped and ok is false.
func (d *RouteData) Step(speed float64, deltaMs int64) (pos cp.Vector, angle float64, ok bool) {
	if d == nil || d.Route == nil {
		return cp.Vector{}, 0, false
	}
	if d.Route.TotalLength()-d.Progress > d.Threshold {
		d.Progress += speed * (float64(deltaMs) / 1000)
		if a, found := d.Route.AngleAt(d.Progress); found {
			p, _ := d.Route.PointAt(d.Progress)
			return p, a, true
		}
	}
	d.Reset()
	return cp.Vector{}, 0, false
}
