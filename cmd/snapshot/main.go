package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"orbit-renderer/internal/app"
	"orbit-renderer/internal/config"
	"orbit-renderer/internal/snapshot"
	"orbit-renderer/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to a TOML config file")
	outputDir := flag.String("output", "", "Output directory (default: snapshots)")
	frames := flag.Int("frames", 0, "Number of frames (default: 36)")
	size := flag.Int("size", 0, "Frame width and height in pixels (default: 256)")
	tex := flag.String("texture", "", "PNG, JPEG or TGA texture for the sphere")
	sampling := flag.String("sampling", "", "Curve sampling: legacy or uniform")
	play := flag.Bool("play", false, "Advance the animation between frames")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Open(*configFile, config.Flags{
		OutputDir: *outputDir,
		Frames:    *frames,
		Size:      *size,
		Texture:   *tex,
		Sampling:  *sampling,
		Play:      *play,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	st, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var sphereTex *image.NRGBA
	if cfg.Sphere.Texture != "" {
		sphereTex, err = texture.Load(cfg.Sphere.Texture)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	sn := cfg.Snapshot
	fmt.Printf("Orbit snapshot → WebP\n")
	fmt.Printf("Frames: %d, Size: %dx%d (x%d), Workers: %d\n", sn.Frames, sn.Size, sn.Size, sn.Supersample, sn.Workers)
	fmt.Printf("Output: %s\n", sn.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	m, err := snapshot.Run(ctx, st, snapshot.Options{
		OutputDir:   sn.OutputDir,
		Frames:      sn.Frames,
		Width:       sn.Size,
		Height:      sn.Size,
		Supersample: sn.Supersample,
		YawStep:     sn.YawStep,
		Workers:     sn.Workers,
		Texture:     sphereTex,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())
	fmt.Printf("Rendered: %d/%d\n", len(m.Frames)-m.Failed(), len(m.Frames))

	if failed := m.Failed(); failed > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, f := range m.Frames {
			if f.Error != "" {
				fmt.Printf("  %s: %s\n", f.Image, f.Error)
			}
		}
		os.Exit(1)
	}
	fmt.Printf("Manifest: %s\n", filepath.Join(sn.OutputDir, "manifest.json"))
}
