package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/opensr/component"
)

//go:embed *.json
var LevelsFS embed.FS

var (
	ErrUnknownClass = errors.New("unknown entity class")
	ErrUnknownRoute = errors.New("unknown route")
)

// Placement is a static entity placement read from the level file.
type Placement struct {
	Class int     `json:"class"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	// Route is the index into Routes, or nil when the entity has none.
	Route *int `json:"route,omitempty"`
}

// RoutePoint is a single waypoint as stored in the level file.
type RoutePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type levelFile struct {
	Name     string         `json:"name"`
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	Tiles    []int8         `json:"tiles"`
	Entities []Placement    `json:"entities,omitempty"`
	Routes   [][]RoutePoint `json:"routes,omitempty"`
}

// LoadLevelFromFS reads a level from the embedded levels.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, cleanLevelPath(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return loadLevelFromBytes(data)
}

// LoadLevel reads a level from disk.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return loadLevelFromBytes(data)
}

// Load tries the embedded levels first, then the path on disk.
func Load(name string) (*Level, error) {
	if name == "" {
		return nil, fmt.Errorf("level path is empty")
	}
	if l, err := LoadLevelFromFS(name); err == nil {
		return l, nil
	}
	return LoadLevel(name)
}

func loadLevelFromBytes(b []byte) (*Level, error) {
	var lf levelFile
	if err := json.Unmarshal(b, &lf); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lf.Width <= 0 || lf.Height <= 0 {
		return nil, fmt.Errorf("invalid level dimensions: %dx%d", lf.Width, lf.Height)
	}
	if len(lf.Tiles) != lf.Width*lf.Height {
		return nil, fmt.Errorf("level %q: %d tiles for %dx%d grid", lf.Name, len(lf.Tiles), lf.Width, lf.Height)
	}

	lvl := New(lf.Width, lf.Height, lf.Tiles)
	lvl.Name = lf.Name
	lvl.Entities = lf.Entities
	for _, pts := range lf.Routes {
		waypoints := make([]cp.Vector, 0, len(pts))
		for _, p := range pts {
			waypoints = append(waypoints, cp.Vector{X: p.X, Y: p.Y})
		}
		lvl.Routes = append(lvl.Routes, component.NewRoute(waypoints))
	}
	return lvl, nil
}

func cleanLevelPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
