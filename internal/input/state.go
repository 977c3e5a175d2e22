package input

// Default speeds.
const (
	DefaultRotationSpeed    = 0.015625
	DefaultPanningSpeed     = 0.25
	DefaultMouseSensitivity = 0.01
	DefaultZoomStep         = 0.25
)

// State is the accumulated input of the viewer. Axis fields hold -1, 0 or 1
// while the corresponding key is held.
type State struct {
	MoveUpDown      int
	MoveLeftRight   int
	MoveBackForward int
	RotateLeftRight int
	RotateUpDown    int
	RotateRoll      int

	RotationSpeed    float64
	PanningSpeed     float64
	MouseSensitivity float64
	ZoomStep         float64

	Play bool
	Quit bool

	cursorLocked   bool
	cursorX        float64
	cursorY        float64
	orbitX, orbitY float64
	zoom           float64
}

// NewState returns a State with the default speeds.
func NewState() *State {
	return &State{
		RotationSpeed:    DefaultRotationSpeed,
		PanningSpeed:     DefaultPanningSpeed,
		MouseSensitivity: DefaultMouseSensitivity,
		ZoomStep:         DefaultZoomStep,
	}
}

// Apply folds events into s in order.
func (s *State) Apply(events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case KeyDown:
			s.key(ev.Key, ev.Mods, true, ev.Repeat)
		case KeyUp:
			s.key(ev.Key, ev.Mods, false, false)
		case ButtonDown:
			if ev.Button == ButtonLeft {
				s.cursorLocked = true
			}
		case ButtonUp:
			if ev.Button == ButtonLeft {
				s.cursorLocked = false
			}
		case MouseMove:
			if s.cursorLocked {
				s.orbitX += (ev.X - s.cursorX) * s.MouseSensitivity
				s.orbitY += (ev.Y - s.cursorY) * s.MouseSensitivity
			}
			s.cursorX, s.cursorY = ev.X, ev.Y
		case Scroll:
			s.zoom += ev.ScrollY * s.ZoomStep
		}
	}
}

func (s *State) key(k Key, mods Mods, down, repeat bool) {
	axis := func(v int) int {
		if down {
			return v
		}
		return 0
	}
	shift := mods&ModShift != 0

	switch k {
	case KeyEscape:
		if down {
			s.Quit = true
		}
	case KeyW:
		s.MoveBackForward = axis(1)
	case KeyS:
		s.MoveBackForward = axis(-1)
	case KeyA:
		s.MoveLeftRight = axis(1)
	case KeyD:
		s.MoveLeftRight = axis(-1)
	case KeyQ:
		s.MoveUpDown = axis(-1)
	case KeyE:
		s.MoveUpDown = axis(1)
	case KeyArrowUp:
		s.RotateUpDown = axis(-1)
	case KeyArrowDown:
		s.RotateUpDown = axis(1)
	case KeyArrowLeft, KeyArrowRight:
		// Shift may be released before the arrow: release stops both axes.
		if !down {
			s.RotateRoll, s.RotateLeftRight = 0, 0
			return
		}
		dir := 1
		if k == KeyArrowRight {
			dir = -1
		}
		if shift {
			s.RotateRoll = -dir
		} else {
			s.RotateLeftRight = dir
		}
	case KeySpace:
		if down && !repeat {
			s.Play = !s.Play
		}
	case KeyLeftBracket:
		if !down {
			return
		}
		if shift {
			s.RotationSpeed *= 0.5
		} else {
			s.PanningSpeed *= 0.5
		}
	case KeyRightBracket:
		if !down {
			return
		}
		if shift {
			s.RotationSpeed *= 1.5
		} else {
			s.PanningSpeed *= 1.5
		}
	}
}

// TakeOrbit returns and clears the orbit delta accumulated by left-button
// drags since the last call.
func (s *State) TakeOrbit() (dx, dy float64) {
	dx, dy = s.orbitX, s.orbitY
	s.orbitX, s.orbitY = 0, 0
	return dx, dy
}

// TakeZoom returns and clears the accumulated scroll zoom.
func (s *State) TakeZoom() float64 {
	z := s.zoom
	s.zoom = 0
	return z
}

// Moving reports whether any move or rotate key is held.
func (s *State) Moving() bool {
	return s.MoveUpDown != 0 || s.MoveLeftRight != 0 || s.MoveBackForward != 0 ||
		s.RotateLeftRight != 0 || s.RotateUpDown != 0 || s.RotateRoll != 0
}

// CursorLocked reports whether a left-button drag is in progress.
func (s *State) CursorLocked() bool { return s.cursorLocked }
