package component

import (
	"math"
	"testing"
)

func TestOrientationIndex(t *testing.T) {
	cases := []struct {
		name  string
		angle float64
		n     int
		want  int
	}{
		{"east", 0, 8, 0},
		{"south", math.Pi / 2, 8, 2},
		{"west", math.Pi, 8, 4},
		{"north_negative", -math.Pi / 2, 8, 6},
		{"rounds_to_east", -0.1, 8, 0},
		{"single", 2, 1, 0},
		{"none", 1, 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := OrientationIndex(c.angle, c.n); got != c.want {
				t.Fatalf("OrientationIndex(%v, %d) = %d, want %d", c.angle, c.n, got, c.want)
			}
		})
	}
}

func TestFrameIndexLoops(t *testing.T) {
	cases := []struct {
		elapsed int64
		want    int
	}{
		{0, 0}, {174, 0}, {175, 1}, {350, 2}, {699, 3}, {700, 0}, {1050, 2},
	}
	for _, c := range cases {
		if got := FrameIndex(c.elapsed, ClipCycleMs, 4); got != c.want {
			t.Fatalf("FrameIndex(%d) = %d, want %d", c.elapsed, got, c.want)
		}
	}
}

func TestClipSprite(t *testing.T) {
	clip := Clip{{10, 11}, {20, 21}, {30, 31}, {40, 41}}
	if id, ok := clip.Sprite(math.Pi/2, 400); !ok || id != 21 {
		t.Fatalf("Sprite = %d, %v, want 21", id, ok)
	}
	if _, ok := (Clip{}).Sprite(0, 0); ok {
		t.Fatalf("empty clip should have no sprite")
	}
}
