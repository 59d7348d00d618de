package levels

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/opensr/common"
	"github.com/milk9111/opensr/component"
)

// Tile codes with a fixed meaning in every level. Road codes (10-29) are
// interpreted by the vehicle navigator.
const (
	TileOpen        int8 = 0
	TileOutOfBounds int8 = 1
	TileWall        int8 = 4
	TileSidewalk    int8 = 9
	TileSidewalkAlt int8 = 36
)

// Level is the tile-code grid plus the static placements and routes of a map.
type Level struct {
	Name     string
	Width    int
	Height   int
	Tiles    []int8
	Entities []Placement
	Routes   []component.Route
}

// New builds a level from a row-major tile grid. A short tiles slice is padded
// with open tiles.
func New(width, height int, tiles []int8) *Level {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	grid := make([]int8, width*height)
	copy(grid, tiles)
	return &Level{Width: width, Height: height, Tiles: grid}
}

// Validate checks placements against the class catalog size and the level's
// routes.
func (l *Level) Validate(classCount int) error {
	if l == nil {
		return fmt.Errorf("level is nil")
	}
	for i, p := range l.Entities {
		if p.Class < 0 || p.Class >= classCount {
			return fmt.Errorf("level %q entity %d: class %d: %w", l.Name, i, p.Class, ErrUnknownClass)
		}
		if p.Route != nil && (*p.Route < 0 || *p.Route >= len(l.Routes)) {
			return fmt.Errorf("level %q entity %d: route %d: %w", l.Name, i, *p.Route, ErrUnknownRoute)
		}
	}
	return nil
}

// SetTile writes a tile code; out of range writes are ignored.
func (l *Level) SetTile(tx, ty int, code int8) {
	if l == nil || tx < 0 || ty < 0 || tx >= l.Width || ty >= l.Height {
		return
	}
	l.Tiles[ty*l.Width+tx] = code
}

// TileCodeAt returns the code of a tile. Anything outside the grid is
// TileOutOfBounds, which is impassable.
func (l *Level) TileCodeAt(tx, ty int) int8 {
	if l == nil || tx < 0 || ty < 0 || tx >= l.Width || ty >= l.Height {
		return TileOutOfBounds
	}
	return l.Tiles[ty*l.Width+tx]
}

// TileCodeAtPos returns the code of the tile containing pos.
func (l *Level) TileCodeAtPos(pos cp.Vector) int8 {
	tx, ty := PosToTile(pos)
	return l.TileCodeAt(tx, ty)
}

// IsSidewalk reports whether pedestrians may stand at pos.
func (l *Level) IsSidewalk(pos cp.Vector) bool {
	code := l.TileCodeAtPos(pos)
	return code == TileSidewalk || code == TileSidewalkAlt
}

// IsImpassable reports whether a tile blocks every entity.
func (l *Level) IsImpassable(tx, ty int) bool {
	return IsImpassableCode(l.TileCodeAt(tx, ty))
}

func IsImpassableCode(code int8) bool {
	return code >= 1 && code <= 4
}

// PixelSize is the level extent in world units.
func (l *Level) PixelSize() (float64, float64) {
	if l == nil {
		return 0, 0
	}
	return float64(l.Width * common.TileSize), float64(l.Height * common.TileSize)
}

// PosToTile returns the tile containing pos.
func PosToTile(pos cp.Vector) (int, int) {
	return int(math.Floor(pos.X / common.TileSize)), int(math.Floor(pos.Y / common.TileSize))
}

// TileToPos returns the top-left corner of a tile.
func TileToPos(tx, ty int) cp.Vector {
	return cp.Vector{X: float64(tx * common.TileSize), Y: float64(ty * common.TileSize)}
}

// TileCenter returns the centre of a tile.
func TileCenter(tx, ty int) cp.Vector {
	half := float64(common.TileSize) / 2
	return cp.Vector{X: float64(tx*common.TileSize) + half, Y: float64(ty*common.TileSize) + half}
}
