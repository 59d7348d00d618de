package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SimSpec holds the simulation tunables.
type SimSpec struct {
	Name       string        `yaml:"name"`
	Level      string        `yaml:"level"`
	Seed       uint64        `yaml:"seed"`
	MaxDeltaMs int64         `yaml:"max_delta_ms"`
	Camera     CameraSpec    `yaml:"camera"`
	Traffic    TrafficSpec   `yaml:"traffic"`
	Spawn      SpawnSpec     `yaml:"spawn"`
	Player     PlayerSpec    `yaml:"player"`
	Collision  CollisionSpec `yaml:"collision"`
}

type CameraSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Zoom   float64 `yaml:"zoom"`
}

type TrafficSpec struct {
	PhaseMs int64 `yaml:"phase_ms"`
}

type SpawnSpec struct {
	Rings int `yaml:"rings"`
}

type PlayerSpec struct {
	RunSpeed float64 `yaml:"run_speed"`
}

type CollisionSpec struct {
	// Tunneling enables sub-stepped tile checks for fast movers. A nil value
	// means enabled.
	Tunneling *bool `yaml:"tunneling"`
}

// DefaultSimSpec is used for any field the yaml leaves at zero.
func DefaultSimSpec() SimSpec {
	on := true
	return SimSpec{
		Name:       "street",
		Level:      "street.json",
		MaxDeltaMs: 250,
		Camera:     CameraSpec{Width: 240, Height: 320, Zoom: 2},
		Traffic:    TrafficSpec{PhaseMs: 3000},
		Spawn:      SpawnSpec{Rings: 4},
		Player:     PlayerSpec{RunSpeed: 60},
		Collision:  CollisionSpec{Tunneling: &on},
	}
}

// WithDefaults fills zero fields from DefaultSimSpec.
func (s SimSpec) WithDefaults() SimSpec {
	def := DefaultSimSpec()
	if s.Name == "" {
		s.Name = def.Name
	}
	if s.Level == "" {
		s.Level = def.Level
	}
	if s.MaxDeltaMs <= 0 {
		s.MaxDeltaMs = def.MaxDeltaMs
	}
	if s.Camera.Width <= 0 || s.Camera.Height <= 0 {
		s.Camera.Width, s.Camera.Height = def.Camera.Width, def.Camera.Height
	}
	if s.Camera.Zoom <= 0 {
		s.Camera.Zoom = def.Camera.Zoom
	}
	if s.Traffic.PhaseMs <= 0 {
		s.Traffic.PhaseMs = def.Traffic.PhaseMs
	}
	if s.Spawn.Rings <= 0 {
		s.Spawn.Rings = def.Spawn.Rings
	}
	if s.Player.RunSpeed <= 0 {
		s.Player.RunSpeed = def.Player.RunSpeed
	}
	if s.Collision.Tunneling == nil {
		s.Collision.Tunneling = def.Collision.Tunneling
	}
	return s
}

// LoadSimSpec loads sim.yaml, or the named file, with defaults applied.
func LoadSimSpec(name string) (SimSpec, error) {
	if name == "" {
		name = "sim.yaml"
	}
	spec, err := LoadSpec[SimSpec](name)
	if err != nil {
		return SimSpec{}, err
	}
	return spec.WithDefaults(), nil
}

// CatalogSpec is the yaml form of the static class and clip tables. List
// position is the id.
type CatalogSpec struct {
	Classes           []ClassSpec `yaml:"classes"`
	Clips             [][][]int   `yaml:"clips"`
	RiderClips        []int       `yaml:"rider_clips"`
	MotorcycleClasses []int       `yaml:"motorcycle_classes"`
	NPCPalettes       []int       `yaml:"npc_palettes"`
}

type ClassSpec struct {
	Name       string  `yaml:"name"`
	EntityType int     `yaml:"entity_type"`
	Clip       int     `yaml:"clip"`
	Health     int     `yaml:"health"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Weight     float64 `yaml:"weight"`
	Shape      string  `yaml:"shape"`
}
