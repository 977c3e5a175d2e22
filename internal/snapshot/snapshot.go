// Package snapshot renders an orbit around the scene with the software
// rasterizer and writes the frames as WebP images.
package snapshot

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"orbit-renderer/internal/app"
	"orbit-renderer/internal/mathutil"
	"orbit-renderer/internal/postprocess"
	"orbit-renderer/internal/raster"
)

// Options controls a snapshot run.
type Options struct {
	OutputDir   string
	Frames      int
	Width       int
	Height      int
	Supersample int
	// YawStep is the orbit angle between frames, in degrees.
	YawStep float64
	// Workers encode and write frames; rendering itself stays on the
	// calling goroutine.
	Workers int
	// Texture, when set, is sampled on the sphere instead of its flat colour.
	Texture *image.NRGBA
}

type job struct {
	index int
	img   *image.NRGBA
}

// FrameName returns the file name of frame i.
func FrameName(i int) string { return fmt.Sprintf("frame_%04d.webp", i) }

// Run renders opt.Frames frames of st, orbiting the camera around its focus
// by opt.YawStep degrees per frame and advancing the animation when st is
// playing. Frames are downsampled, encoded and written by a worker pool
// while the next frame renders. Per-frame write failures are recorded in
// the manifest; Run fails only on setup errors or cancellation.
func Run(ctx context.Context, st *app.State, opt Options) (Manifest, error) {
	if opt.Frames <= 0 || opt.Width <= 0 || opt.Height <= 0 {
		return Manifest{}, fmt.Errorf("snapshot: invalid options: %d frames of %dx%d", opt.Frames, opt.Width, opt.Height)
	}
	if opt.Workers <= 0 {
		opt.Workers = 1
	}
	if err := os.MkdirAll(opt.OutputDir, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("snapshot: %w", err)
	}

	rw, rh := postprocess.Factor(opt.Width, opt.Height, opt.Supersample)
	dev := raster.NewDevice(rw, rh)
	dev.SetTexture(opt.Texture)
	if err := st.Init(dev); err != nil {
		return Manifest{}, fmt.Errorf("snapshot: %w", err)
	}
	st.Resize(rw, rh)

	m := Manifest{
		Width:       opt.Width,
		Height:      opt.Height,
		Supersample: opt.Supersample,
		YawStep:     opt.YawStep,
		CurveLength: st.CurveLength(),
		Frames:      make([]FrameEntry, opt.Frames),
	}

	var written atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := written.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					slog.Info("snapshot progress", "written", p, "total", opt.Frames, "fps", rate)
				}
			}
		}
	}()

	// Worker pool
	jobs := make(chan job, opt.Workers*2)
	var wg sync.WaitGroup
	for w := 0; w < opt.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := writeFrame(opt, j); err != nil {
					m.Frames[j.index].Error = err.Error()
				}
				written.Add(1)
			}
		}()
	}

	yaw := mathutil.Deg2Rad(opt.YawStep)
	var runErr error
	for i := 0; i < opt.Frames; i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		if i > 0 {
			st.Camera.RotateAroundFocus(yaw, 0)
		}
		st.Update(nil)
		st.Draw(dev)

		cam := st.Camera
		m.Frames[i] = FrameEntry{
			Index:    i,
			Image:    FrameName(i),
			T:        st.T,
			Position: cam.Position(),
			Forward:  cam.Forward(),
			Up:       cam.Up(),
		}
		jobs <- job{index: i, img: dev.Image()}
	}
	close(jobs)
	wg.Wait()
	close(done)

	if runErr != nil {
		return m, fmt.Errorf("snapshot: %w", runErr)
	}
	if err := WriteManifest(filepath.Join(opt.OutputDir, "manifest.json"), m); err != nil {
		return m, err
	}
	slog.Info("snapshot done", "frames", opt.Frames, "failed", m.Failed(),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return m, nil
}

func writeFrame(opt Options, j job) error {
	img := postprocess.Downsample(j.img, opt.Width, opt.Height)

	f, err := os.Create(filepath.Join(opt.OutputDir, FrameName(j.index)))
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("webp encode: %w", err)
	}
	return f.Close()
}
