package obj

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/opensr/common"
	"github.com/milk9111/opensr/levels"
	"github.com/milk9111/opensr/prefabs"
)

func roadContext(t *testing.T, w, h int, tiles []int8) *Context {
	t.Helper()
	return NewContext(levels.New(w, h, tiles), testCatalog(t), NewCamera(240, 320), 1)
}

func TestVehicleAcceleratesAlongRoad(t *testing.T) {
	ctx := roadContext(t, 10, 1, []int8{10, 10, 10, 10, 10, 10, 10, 10, 10, 10})
	car := addEntity(t, ctx, classCar, cp.Vector{X: 60, Y: 12})
	car.Hidden = false
	car.SetStance(StanceRunning)

	for i, want := range []float64{10, 20, 30} {
		car.Step(ctx, 100)
		if !common.FuzzyEq(car.Speed, want) {
			t.Fatalf("tick %d speed = %v, want %v", i, car.Speed, want)
		}
	}
	if !common.FuzzyEq(car.Pos.X, 66) || !common.FuzzyEq(car.Pos.Y, 12) {
		t.Fatalf("pos = %v, want (66, 12)", car.Pos)
	}
	if car.Behavior.Vehicle.LastTileCode != 10 {
		t.Fatalf("LastTileCode = %d", car.Behavior.Vehicle.LastTileCode)
	}
}

func TestVehicleNotRunningCoasts(t *testing.T) {
	ctx := roadContext(t, 10, 1, []int8{10, 10, 10, 10, 10, 10, 10, 10, 10, 10})
	car := addEntity(t, ctx, classParkedCar, cp.Vector{X: 60, Y: 12})
	car.Speed = 20

	car.Step(ctx, 100)
	if !common.FuzzyEq(car.Speed, 0) || !common.FuzzyEq(car.Pos.X, 60) {
		t.Fatalf("parked car should brake to a stop: speed %v pos %v", car.Speed, car.Pos)
	}
}

func TestCanMoveOnRoadAtIntersection(t *testing.T) {
	cases := []struct {
		name  string
		phase TrafficPhase
		want  bool
	}{
		{"green_for_us", PhaseHorizontalGreen, true},
		{"yellow", PhaseHorizontalYellow, false},
		{"green_for_cross", PhaseVerticalGreen, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := roadContext(t, 3, 1, []int8{10, 10, 18})
			ctx.Traffic = c.phase
			car := addEntity(t, ctx, classCar, levels.TileCenter(1, 0))
			car.Hidden = false
			car.Behavior.Vehicle.LastTileCode = 10
			got, wanted := CanMoveOnRoad(ctx, car, common.AngleE)
			if got != c.want || wanted != 18 {
				t.Fatalf("CanMoveOnRoad = %v, %d, want %v, 18", got, wanted, c.want)
			}
		})
	}
}

func TestCanMoveOnRoadRules(t *testing.T) {
	cases := []struct {
		name  string
		tiles []int8
		last  int8
		phase TrafficPhase
		want  bool
	}{
		{"off_road_last", []int8{9, 9, 18}, 9, PhaseVerticalYellow, true},
		{"one_way_ahead", []int8{10, 10, 10}, 10, PhaseVerticalYellow, true},
		{"inside_intersection", []int8{18, 18, 18}, 18, PhaseVerticalYellow, true},
		{"leaving_road_on_green", []int8{10, 10, 9}, 10, PhaseVerticalGreen, true},
		{"leaving_road_on_yellow", []int8{10, 10, 9}, 10, PhaseVerticalYellow, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := roadContext(t, 3, 1, c.tiles)
			ctx.Traffic = c.phase
			car := addEntity(t, ctx, classCar, levels.TileCenter(1, 0))
			car.Behavior.Vehicle.LastTileCode = c.last
			if got, _ := CanMoveOnRoad(ctx, car, common.AngleE); got != c.want {
				t.Fatalf("CanMoveOnRoad = %v, want %v", got, c.want)
			}
		})
	}
}

func TestCanMoveOnRoadBlocked(t *testing.T) {
	ctx := roadContext(t, 6, 1, []int8{10, 10, 10, 10, 10, 10})
	addEntity(t, ctx, classParkedCar, cp.Vector{X: 84, Y: 12})
	id := ctx.AddEntity(mustClass(t, ctx, classCar), cp.Vector{X: 60, Y: 12})
	car, _ := ctx.Entity(id)

	if free, _ := CanMoveOnRoad(ctx, car, common.AngleE); free {
		t.Fatalf("car should be blocked by the parked car ahead")
	}
	if free, _ := CanMoveOnRoad(ctx, car, common.AngleW); !free {
		t.Fatalf("nothing behind the car")
	}
}

func TestVehicleClearsIntersectionWhenYellowStarts(t *testing.T) {
	ctx := roadContext(t, 10, 1, []int8{10, 10, 10, 18, 18, 10, 10, 10, 10, 10})
	car := addEntity(t, ctx, classCar, cp.Vector{X: 50, Y: 12})
	car.Hidden = false
	car.SetStance(StanceRunning)
	car.Speed = cruiseSpeed
	car.Behavior.Vehicle.LastTileCode = 10

	// The car commits to the intersection 100 ms before the light turns.
	ctx.TimeMs = 2900
	for tick := 0; tick < 200; tick++ {
		ctx.TimeMs += 10
		ctx.Traffic = PhaseAt(ctx.TimeMs, DefaultPhaseMs)
		car.Step(ctx, 10)
		if car.Speed == 0 {
			t.Fatalf("car stopped at x = %v during %v (last tile %d)", car.Pos.X, ctx.Traffic, car.Behavior.Vehicle.LastTileCode)
		}
	}
	if car.Pos.X <= 144 {
		t.Fatalf("car did not clear the intersection: x = %v", car.Pos.X)
	}
}

func TestVehicleStopsBeforeIntersectionOnYellow(t *testing.T) {
	ctx := roadContext(t, 10, 1, []int8{10, 10, 10, 18, 18, 10, 10, 10, 10, 10})
	car := addEntity(t, ctx, classCar, cp.Vector{X: 50, Y: 12})
	car.Hidden = false
	car.SetStance(StanceRunning)
	car.Speed = cruiseSpeed
	car.Behavior.Vehicle.LastTileCode = 10
	ctx.Traffic = PhaseHorizontalYellow

	for tick := 0; tick < 50; tick++ {
		car.Step(ctx, 10)
	}
	if car.Speed != 0 || car.Pos.X >= 72 {
		t.Fatalf("car should wait before the intersection: speed %v x %v", car.Speed, car.Pos.X)
	}
	if car.Behavior.Vehicle.LastTileCode != 10 {
		t.Fatalf("LastTileCode = %d, want 10", car.Behavior.Vehicle.LastTileCode)
	}
}

func TestIsPointFree(t *testing.T) {
	ctx := testContext(t, 20, 20, 0)
	addEntity(t, ctx, classParkedCar, cp.Vector{X: 100, Y: 100})
	addEntity(t, ctx, classPlayer, cp.Vector{X: 200, Y: 200})
	addEntity(t, ctx, classPedestrian, cp.Vector{X: 300, Y: 300})
	hidden := addEntity(t, ctx, classCar, cp.Vector{X: 400, Y: 400})
	if !hidden.Hidden {
		t.Fatalf("moving vehicles start hidden")
	}
	self, _ := ctx.Entity(hidden.ID)

	cases := []struct {
		name string
		p    cp.Vector
		want bool
	}{
		{"near_car", cp.Vector{X: 110, Y: 95}, false},
		{"car_clear", cp.Vector{X: 116, Y: 100}, true},
		{"near_player", cp.Vector{X: 207, Y: 200}, false},
		{"player_clear", cp.Vector{X: 200, Y: 208}, true},
		{"pedestrians_ignored", cp.Vector{X: 300, Y: 300}, true},
		{"hidden_ignored", cp.Vector{X: 401, Y: 400}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ctx.IsPointFree(self, c.p); got != c.want {
				t.Fatalf("IsPointFree(%v) = %v, want %v", c.p, got, c.want)
			}
		})
	}
}

func TestApproachSpeed(t *testing.T) {
	cases := []struct {
		speed, wanted float64
		deltaMs       int64
		want          float64
	}{
		{0, 50, 100, 10},
		{45, 50, 100, 50},
		{50, 0, 100, 30},
		{10, 0, 100, 0},
		{50, 25, 1000, 25},
		{25, 25, 100, 25},
	}

	for _, c := range cases {
		if got := approachSpeed(c.speed, c.wanted, c.deltaMs); !common.FuzzyEq(got, c.want) {
			t.Fatalf("approachSpeed(%v, %v, %d) = %v, want %v", c.speed, c.wanted, c.deltaMs, got, c.want)
		}
	}
}

func TestTurnToward(t *testing.T) {
	cases := []struct {
		name    string
		from    float64
		target  float64
		want    float64
		reached bool
	}{
		{"partial", 0, math.Pi / 2, 0.4, false},
		{"partial_negative", 0, -math.Pi / 2, -0.4, false},
		{"last_step", 0, 0.3, 0.3, false},
		{"aligned", 0.3, 0.3, 0.3, true},
		{"nearly_aligned", 1, 1 + 1e-7, 1 + 1e-7, true},
		{"across_wrap", 3.0, -3.0, -3.0, false},
		{"wrap_partial", 3.0, -2.0, common.NormalizeAngle(3.4), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var e Entity
			e.Angle = c.from
			reached := turnToward(&e, c.target, 100)
			if reached != c.reached || !common.FuzzyEq(e.Angle, c.want) {
				t.Fatalf("turnToward = %v angle %v, want %v angle %v", reached, e.Angle, c.reached, c.want)
			}
		})
	}
}

// laneLevel has a two tile wide eastbound road on rows 1-2 and a single
// southbound column at x = 3.
func laneLevel() *levels.Level {
	return levels.New(4, 4, []int8{
		0, 0, 0, 12,
		10, 10, 10, 12,
		10, 10, 10, 12,
		0, 0, 0, 12,
	})
}

func TestLaneCenter(t *testing.T) {
	l := laneLevel()
	cases := []struct {
		name     string
		pos      cp.Vector
		line     float64
		vertical bool
		ok       bool
	}{
		{"upper_lane", levels.TileCenter(1, 1), 48, false, true},
		{"lower_lane", levels.TileCenter(1, 2), 48, false, true},
		{"single_column", levels.TileCenter(3, 0), 84, true, true},
		{"not_road", levels.TileCenter(0, 0), 0, false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			line, vertical, ok := LaneCenter(l, c.pos)
			if line != c.line || vertical != c.vertical || ok != c.ok {
				t.Fatalf("LaneCenter = %v %v %v", line, vertical, ok)
			}
		})
	}
}

func TestMoveToLaneCenter(t *testing.T) {
	cases := []struct {
		name  string
		start cp.Vector
		want  cp.Vector
	}{
		{"nudge", cp.Vector{X: 36, Y: 40}, cp.Vector{X: 36, Y: 41}},
		{"snap", cp.Vector{X: 36, Y: 47.5}, cp.Vector{X: 36, Y: 48}},
		{"nudge_vertical", cp.Vector{X: 80, Y: 12}, cp.Vector{X: 81, Y: 12}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := NewContext(laneLevel(), testCatalog(t), NewCamera(240, 320), 1)
			car := addEntity(t, ctx, classCar, c.start)
			moveToLaneCenter(ctx, car, 100)
			if !vecNear(car.Pos, c.want) {
				t.Fatalf("pos = %v, want %v", car.Pos, c.want)
			}
		})
	}
}

func TestFindAngleToRoad(t *testing.T) {
	tiles := make([]int8, 25)
	tiles[4*5+2] = 10
	ctx := roadContext(t, 5, 5, tiles)
	car := addEntity(t, ctx, classCar, levels.TileCenter(2, 2))

	got, ok := findAngleToRoad(ctx, car)
	if !ok || !common.FuzzyEq(got, common.AngleS) {
		t.Fatalf("findAngleToRoad = %v, %v", got, ok)
	}

	car.SetPos(levels.TileCenter(0, 0))
	if _, ok := findAngleToRoad(ctx, car); ok {
		t.Fatalf("no road within two tiles of the corner")
	}
}

func TestVehicleSpawn(t *testing.T) {
	cases := []struct {
		name    string
		counter int
		blocker bool
		ok      bool
	}{
		{"matching_direction", 0, false, true},
		{"counter_wraps", 4, false, true},
		{"other_direction", 1, false, false},
		{"blocked_ahead", 0, true, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := roadContext(t, 6, 1, []int8{10, 10, 10, 10, 10, 10})
			if c.blocker {
				addEntity(t, ctx, classParkedCar, cp.Vector{X: 84, Y: 12})
			}
			id := ctx.AddEntity(mustClass(t, ctx, classCar), cp.Vector{})
			car, _ := ctx.Entity(id)
			ctx.SpawnCounter = c.counter

			pos, ok := car.Spawn(ctx, cp.Vector{X: 55, Y: 5})
			if ok != c.ok {
				t.Fatalf("Spawn ok = %v, want %v", ok, c.ok)
			}
			if !ok {
				if !car.Hidden || car.Pos != (cp.Vector{}) || car.Physical.Pos() != (cp.Vector{}) {
					t.Fatalf("failed spawn must leave the car untouched: %+v", car.EntityBase)
				}
				return
			}
			if pos != (cp.Vector{X: 60, Y: 12}) || car.Hidden || car.Stance != StanceRunning || car.Speed != 0 {
				t.Fatalf("spawned car = %v %+v", pos, car.EntityBase)
			}
			if car.Angle != common.AngleE || car.Behavior.Vehicle.LastTileCode != 10 {
				t.Fatalf("heading %v last %d", car.Angle, car.Behavior.Vehicle.LastTileCode)
			}
		})
	}
}

func TestVehicleSpawnRejectsNonRoad(t *testing.T) {
	ctx := roadContext(t, 2, 1, []int8{9, 18})
	car := addEntity(t, ctx, classCar, cp.Vector{})
	for _, p := range []cp.Vector{levels.TileCenter(0, 0), levels.TileCenter(1, 0)} {
		if _, ok := car.Spawn(ctx, p); ok {
			t.Fatalf("spawned at %v", p)
		}
	}
}

func TestVehicleDrawsClassClip(t *testing.T) {
	ctx := testContext(t, 4, 4, 0)
	var r spriteRecorder
	car := addEntity(t, ctx, classParkedCar, cp.Vector{X: 5, Y: 5})
	car.Draw(ctx, &r)
	if len(r.sprites) != 1 || r.sprites[0].id != 11 {
		t.Fatalf("car sprites = %+v", r.sprites)
	}
}

func mustClass(t *testing.T, ctx *Context, id int) *prefabs.Class {
	t.Helper()
	c, ok := ctx.Catalog.Class(id)
	if !ok {
		t.Fatalf("no class %d", id)
	}
	return c
}
