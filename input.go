package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/opensr/obj"
)

// keyMap binds physical keys to game keys. Several physical keys may share
// one game key.
var keyMap = []struct {
	key  ebiten.Key
	game obj.Key
}{
	{ebiten.KeyW, obj.KeyUp},
	{ebiten.KeyArrowUp, obj.KeyUp},
	{ebiten.KeyS, obj.KeyDown},
	{ebiten.KeyArrowDown, obj.KeyDown},
	{ebiten.KeyA, obj.KeyLeft},
	{ebiten.KeyArrowLeft, obj.KeyLeft},
	{ebiten.KeyD, obj.KeyRight},
	{ebiten.KeyArrowRight, obj.KeyRight},
	{ebiten.KeyEscape, obj.KeyExit},
}

// InputPoller turns ebiten's polled state into queued simulation events.
type InputPoller struct {
	held    map[obj.Key]bool
	pointer cp.Vector
	seen    bool
	events  []obj.InputEvent
}

func NewInputPoller() *InputPoller {
	return &InputPoller{held: make(map[obj.Key]bool)}
}

// Poll returns the events since the last call. The slice is reused.
func (p *InputPoller) Poll() []obj.InputEvent {
	p.events = p.events[:0]

	down := make(map[obj.Key]bool, len(keyMap))
	for _, m := range keyMap {
		if ebiten.IsKeyPressed(m.key) {
			down[m.game] = true
		}
	}
	for _, m := range keyMap {
		k := m.game
		if down[k] == p.held[k] {
			continue
		}
		p.held[k] = down[k]
		kind := obj.KeyReleased
		if down[k] {
			kind = obj.KeyPressed
		}
		p.events = append(p.events, obj.InputEvent{Kind: kind, Key: k})
	}

	// Layout is the view size, so the cursor is already in view coordinates.
	mx, my := ebiten.CursorPosition()
	pos := cp.Vector{X: float64(mx), Y: float64(my)}
	if !p.seen || pos != p.pointer {
		p.seen = true
		p.pointer = pos
		p.events = append(p.events, obj.InputEvent{Kind: obj.PointerMoved, Pointer: pos})
	}
	return p.events
}
