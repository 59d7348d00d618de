package component

import (
	"math"

	"github.com/milk9111/opensr/common"
)

// ClipCycleMs is the time one pass over an orientation's frames takes.
const ClipCycleMs = 700

// Clip is a sprite animation: one frame list per facing, facings spread
// evenly clockwise starting east.
type Clip [][]int

// OrientationIndex picks the facing of a clip closest to angle.
func OrientationIndex(angle float64, orientations int) int {
	if orientations <= 0 {
		return 0
	}
	a := math.Mod(angle, common.TwoPi)
	if a < 0 {
		a += common.TwoPi
	}
	step := common.TwoPi / float64(orientations)
	return int(math.Round(a/step)) % orientations
}

// FrameIndex picks the frame for elapsedMs into a looping cycle of cycleMs.
func FrameIndex(elapsedMs int64, cycleMs int64, frames int) int {
	if frames <= 0 || cycleMs <= 0 {
		return 0
	}
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	return int((elapsedMs % cycleMs) * int64(frames) / cycleMs)
}

// Sprite returns the sprite id for a facing and elapsed time, or false for an
// empty clip.
func (c Clip) Sprite(angle float64, elapsedMs int64) (int, bool) {
	if len(c) == 0 {
		return 0, false
	}
	frames := c[OrientationIndex(angle, len(c))]
	if len(frames) == 0 {
		return 0, false
	}
	return frames[FrameIndex(elapsedMs, ClipCycleMs, len(frames))], true
}
