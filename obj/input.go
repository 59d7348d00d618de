package obj

import (
	"github.com/jakecoffman/cp"
)

// Key is a logical game key.
type Key int

const (
	KeyDown Key = iota
	KeyRight
	KeyUp
	KeyLeft
	KeyExit

	keyCount
)

type InputEventKind int

const (
	KeyPressed InputEventKind = iota
	KeyReleased
	PointerMoved
)

// InputEvent is one queued input change. Pointer is in view coordinates.
type InputEvent struct {
	Kind    InputEventKind
	Key     Key
	Pointer cp.Vector
}

// Input holds the current input state built from queued events.
type Input struct {
	held [keyCount]bool
	// Pointer is the last pointer position in view coordinates.
	Pointer    cp.Vector
	HasPointer bool
	// QuitRequested is set once the exit key has been pressed.
	QuitRequested bool
}

// Apply folds one event into the state.
func (i *Input) Apply(ev InputEvent) {
	switch ev.Kind {
	case KeyPressed, KeyReleased:
		if ev.Key < 0 || ev.Key >= keyCount {
			return
		}
		i.held[ev.Key] = ev.Kind == KeyPressed
		if ev.Key == KeyExit && ev.Kind == KeyPressed {
			i.QuitRequested = true
		}
	case PointerMoved:
		i.Pointer = ev.Pointer
		i.HasPointer = true
	}
}

// Held reports whether k is down.
func (i *Input) Held(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	return i.held[k]
}

// PointerWorld is the pointer in world coordinates for camera.
func (i *Input) PointerWorld(camera *Camera) cp.Vector {
	if camera == nil {
		return i.Pointer
	}
	return camera.ViewToWorld(i.Pointer)
}

// Direction returns the unit direction of the held movement keys. Up wins
// over down and left over right.
func (i *Input) Direction() (cp.Vector, bool) {
	var d cp.Vector
	switch {
	case i.Held(KeyUp):
		d.Y = -1
	case i.Held(KeyDown):
		d.Y = 1
	}
	switch {
	case i.Held(KeyLeft):
		d.X = -1
	case i.Held(KeyRight):
		d.X = 1
	}
	if d.X == 0 && d.Y == 0 {
		return cp.Vector{}, false
	}
	return d.Normalize(), true
}
