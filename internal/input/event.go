// Package input turns window-system events into the per-frame camera
// commands of the viewer. Events are queued by the window backend and
// applied synchronously at the top of each frame.
package input

// Kind is the type of an Event.
type Kind uint8

const (
	KeyDown Kind = iota
	KeyUp
	ButtonDown
	ButtonUp
	MouseMove
	Scroll
)

// Key identifies the keys the viewer reacts to.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeySpace
	KeyLeftBracket
	KeyRightBracket
	KeyEscape
)

// Mods is a modifier key bit set.
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Button is a mouse button.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Event is one window-system input event. Which fields are meaningful
// depends on Kind: Key and Mods for key events, Button and Mods for button
// events, X and Y (window coordinates) for MouseMove, ScrollY for Scroll.
type Event struct {
	Kind    Kind
	Key     Key
	Mods    Mods
	Button  Button
	Repeat  bool
	X, Y    float64
	ScrollY float64
}
