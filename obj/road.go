package obj

import (
	"github.com/milk9111/opensr/common"
)

// TrafficPhase is the state of every traffic light in the level.
type TrafficPhase int

const (
	PhaseHorizontalGreen TrafficPhase = iota
	PhaseHorizontalYellow
	PhaseVerticalGreen
	PhaseVerticalYellow
)

// DefaultPhaseMs is the length of one traffic phase.
const DefaultPhaseMs = 3000

// PhaseAt returns the phase at timeMs for phases of phaseMs each.
func PhaseAt(timeMs, phaseMs int64) TrafficPhase {
	if phaseMs <= 0 {
		phaseMs = DefaultPhaseMs
	}
	if timeMs < 0 {
		timeMs = 0
	}
	return TrafficPhase((timeMs / phaseMs) % 4)
}

func (p TrafficPhase) IsGreen() bool {
	return p == PhaseHorizontalGreen || p == PhaseVerticalGreen
}

// tableIndex folds yellow onto the green it follows.
func (p TrafficPhase) tableIndex() int {
	return int(p) / 2
}

func (p TrafficPhase) String() string {
	switch p {
	case PhaseHorizontalGreen:
		return "h-green"
	case PhaseHorizontalYellow:
		return "h-yellow"
	case PhaseVerticalGreen:
		return "v-green"
	case PhaseVerticalYellow:
		return "v-yellow"
	}
	return "unknown"
}

// Road tile codes. 10-17 are one-way segments, 18-29 intersections.
const (
	RoadFirst         int8 = 10
	RoadOneWayLast    int8 = 17
	RoadIntersection  int8 = 18
	RoadLast          int8 = 29
	RoadSpawnLast     int8 = 13
	roadSpawnChoices       = 4
	roadTableRowCount      = int(RoadLast-RoadFirst) + 1
)

func IsRoad(code int8) bool {
	return code >= RoadFirst && code <= RoadLast
}

func IsOneWay(code int8) bool {
	return code >= RoadFirst && code <= RoadOneWayLast
}

func IsIntersection(code int8) bool {
	return code >= RoadIntersection && code <= RoadLast
}

const (
	dirE  = common.AngleE
	dirW  = common.AngleW
	dirS  = common.AngleS
	dirN  = common.AngleN
	dirSE = common.AngleSE
	dirSW = common.AngleSW
	dirNE = common.AngleNE
	dirNW = common.AngleNW
)

// roadDirections holds the travel angle of each road code for the
// horizontal and vertical light.
var roadDirections = [roadTableRowCount][2]float64{
	{dirE, dirE}, // 10
	{dirW, dirW},
	{dirS, dirS},
	{dirN, dirN},
	{dirSE, dirSE},
	{dirSW, dirSW},
	{dirNE, dirNE},
	{dirNW, dirNW},
	{dirE, dirN}, // 18
	{dirW, dirN},
	{dirE, dirS},
	{dirW, dirS},
	{dirE, dirSE},
	{dirE, dirNE},
	{dirW, dirSW},
	{dirW, dirNW},
	{dirSE, dirS},
	{dirSW, dirS},
	{dirNE, dirN},
	{dirNW, dirN},
}

// A rule row says which one-way segments (E, W, S, N, SE, SW, NE, NW) may
// enter an intersection.
type roadRule [8]bool

var (
	ruleE = roadRule{true, false, false, false, true, false, true, false}
	ruleW = roadRule{false, true, false, false, false, true, false, true}
	ruleN = roadRule{false, false, false, true, false, false, true, true}
	ruleS = roadRule{false, false, true, false, true, true, false, false}
)

// roadRules is indexed by intersection code and light.
var roadRules = [int(RoadLast-RoadIntersection) + 1][2]roadRule{
	{ruleE, ruleN}, // 18
	{ruleW, ruleN},
	{ruleE, ruleS},
	{ruleW, ruleS},
	{ruleE, ruleS},
	{ruleE, ruleN},
	{ruleW, ruleS},
	{ruleW, ruleN},
	{ruleE, ruleS},
	{ruleW, ruleS},
	{ruleE, ruleN},
	{ruleW, ruleN},
}

// RoadDirection returns the travel angle on a road tile during phase.
func RoadDirection(code int8, phase TrafficPhase) (float64, bool) {
	if !IsRoad(code) {
		return 0, false
	}
	return roadDirections[code-RoadFirst][phase.tableIndex()], true
}

// MayEnter reports whether traffic coming from the one-way segment from may
// enter the intersection to during phase.
func MayEnter(to, from int8, phase TrafficPhase) bool {
	if !IsIntersection(to) || !IsOneWay(from) {
		return false
	}
	return roadRules[to-RoadIntersection][phase.tableIndex()][from-RoadFirst]
}
