package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func press(k Key, mods Mods) Event   { return Event{Kind: KeyDown, Key: k, Mods: mods} }
func release(k Key, mods Mods) Event { return Event{Kind: KeyUp, Key: k, Mods: mods} }

func TestKeyAxes(t *testing.T) {
	tests := []struct {
		key  Key
		mods Mods
		get  func(*State) int
		want int
	}{
		{KeyW, 0, func(s *State) int { return s.MoveBackForward }, 1},
		{KeyS, 0, func(s *State) int { return s.MoveBackForward }, -1},
		{KeyA, 0, func(s *State) int { return s.MoveLeftRight }, 1},
		{KeyD, 0, func(s *State) int { return s.MoveLeftRight }, -1},
		{KeyQ, 0, func(s *State) int { return s.MoveUpDown }, -1},
		{KeyE, 0, func(s *State) int { return s.MoveUpDown }, 1},
		{KeyArrowUp, 0, func(s *State) int { return s.RotateUpDown }, -1},
		{KeyArrowDown, 0, func(s *State) int { return s.RotateUpDown }, 1},
		{KeyArrowLeft, 0, func(s *State) int { return s.RotateLeftRight }, 1},
		{KeyArrowRight, 0, func(s *State) int { return s.RotateLeftRight }, -1},
		{KeyArrowLeft, ModShift, func(s *State) int { return s.RotateRoll }, -1},
		{KeyArrowRight, ModShift, func(s *State) int { return s.RotateRoll }, 1},
	}
	for _, tt := range tests {
		s := NewState()
		s.Apply([]Event{press(tt.key, tt.mods)})
		assert.Equal(t, tt.want, tt.get(s), "key %v mods %v down", tt.key, tt.mods)
		assert.True(t, s.Moving())

		s.Apply([]Event{release(tt.key, tt.mods)})
		assert.Equal(t, 0, tt.get(s), "key %v mods %v up", tt.key, tt.mods)
		assert.False(t, s.Moving())
	}
}

func TestSpaceTogglesPlay(t *testing.T) {
	s := NewState()
	s.Apply([]Event{press(KeySpace, 0), release(KeySpace, 0)})
	assert.True(t, s.Play)

	// Auto-repeat does not toggle again.
	s.Apply([]Event{press(KeySpace, 0), {Kind: KeyDown, Key: KeySpace, Repeat: true}, release(KeySpace, 0)})
	assert.False(t, s.Play)
}

func TestSpeedBrackets(t *testing.T) {
	s := NewState()
	s.Apply([]Event{press(KeyLeftBracket, 0)})
	assert.Equal(t, DefaultPanningSpeed*0.5, s.PanningSpeed)
	assert.Equal(t, DefaultRotationSpeed, s.RotationSpeed)

	s.Apply([]Event{press(KeyRightBracket, ModShift)})
	assert.Equal(t, DefaultRotationSpeed*1.5, s.RotationSpeed)

	s.Apply([]Event{press(KeyLeftBracket, ModShift), release(KeyLeftBracket, ModShift)})
	assert.Equal(t, DefaultRotationSpeed*0.75, s.RotationSpeed)
}

func TestEscapeQuits(t *testing.T) {
	s := NewState()
	s.Apply([]Event{press(KeyEscape, 0)})
	assert.True(t, s.Quit)
}

func TestDragOrbit(t *testing.T) {
	s := NewState()
	s.Apply([]Event{
		{Kind: MouseMove, X: 100, Y: 100},
		{Kind: MouseMove, X: 150, Y: 100}, // not dragging
		{Kind: ButtonDown, Button: ButtonLeft},
		{Kind: MouseMove, X: 170, Y: 90},
		{Kind: MouseMove, X: 180, Y: 100},
	})
	assert.True(t, s.CursorLocked())

	dx, dy := s.TakeOrbit()
	assert.InDelta(t, 0.30, dx, 1e-12)
	assert.InDelta(t, 0.0, dy, 1e-12)

	dx, dy = s.TakeOrbit()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	s.Apply([]Event{{Kind: ButtonUp, Button: ButtonLeft}, {Kind: MouseMove, X: 0, Y: 0}})
	assert.False(t, s.CursorLocked())
	dx, _ = s.TakeOrbit()
	assert.Zero(t, dx)
}

func TestScrollZoom(t *testing.T) {
	s := NewState()
	s.Apply([]Event{{Kind: Scroll, ScrollY: 1}, {Kind: Scroll, ScrollY: 2}})
	assert.InDelta(t, 3*DefaultZoomStep, s.TakeZoom(), 1e-12)
	assert.Zero(t, s.TakeZoom())
}

func TestRollStopsWhenShiftReleasedFirst(t *testing.T) {
	s := NewState()
	s.Apply([]Event{press(KeyArrowLeft, ModShift)})
	assert.Equal(t, -1, s.RotateRoll)

	// Shift goes up before the arrow: the arrow's release carries no mods.
	s.Apply([]Event{release(KeyArrowLeft, 0)})
	assert.Equal(t, 0, s.RotateRoll)
	assert.Equal(t, 0, s.RotateLeftRight)
	assert.False(t, s.Moving())

	s.Apply([]Event{press(KeyArrowRight, 0), release(KeyArrowRight, ModShift)})
	assert.Equal(t, 0, s.RotateLeftRight)
	assert.False(t, s.Moving())
}
