package app

import (
	"context"
	"log/slog"
	"time"

	"orbit-renderer/internal/input"
	"orbit-renderer/internal/render"
)

// Window is the windowing half of the graphics context. PollEvents returns
// the input gathered since the previous call; it must be called on the
// goroutine that created the window.
type Window interface {
	PollEvents() []input.Event
	SwapBuffers()
	ShouldClose() bool
	FramebufferSize() (w, h int)
}

// Run drives the frame loop until the window closes, Escape is pressed or
// ctx is cancelled. Presentation blocks on vsync inside SwapBuffers.
func (s *State) Run(ctx context.Context, win Window, dev render.Device) error {
	start := time.Now()
	frames := 0
	defer func() {
		elapsed := time.Since(start).Seconds()
		if elapsed > 0 {
			slog.Info("frame loop stopped", "frames", frames, "fps", float64(frames)/elapsed)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if win.ShouldClose() || s.Input.Quit {
			return nil
		}

		events := win.PollEvents()
		if w, h := win.FramebufferSize(); s.Resize(w, h) {
			slog.Debug("framebuffer resized", "width", w, "height", h)
		}

		s.Frame(dev, events)
		win.SwapBuffers()
		frames++
	}
}
