package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"orbit-renderer/internal/app"
	"orbit-renderer/internal/config"
	"orbit-renderer/internal/glview"
	"orbit-renderer/internal/shader"
)

func main() {
	configFile := flag.String("config", "", "Path to a TOML config file")
	shaderDir := flag.String("shaders", "", "Shader directory (default: shaders)")
	width := flag.Int("width", 0, "Window width (default: 800)")
	height := flag.Int("height", 0, "Window height (default: 600)")
	sampling := flag.String("sampling", "", "Curve sampling: legacy or uniform")
	play := flag.Bool("play", false, "Start with the animation playing")
	watch := flag.Bool("watch", false, "Recompile shaders when their files change")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Open(*configFile, config.Flags{
		ShaderDir:   *shaderDir,
		Width:       *width,
		Height:      *height,
		Sampling:    *sampling,
		Play:        *play,
		WatchShader: *watch,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src, err := shader.Load(cfg.Shaders.Dir)
	if err != nil {
		return err
	}

	st, err := app.New(cfg)
	if err != nil {
		return err
	}

	win, dev, err := glview.Open(cfg.Window, src)
	if err != nil {
		return err
	}
	defer win.Close()

	if cfg.Shaders.Watch {
		ch, err := shader.Watch(ctx, cfg.Shaders.Dir)
		if err != nil {
			return err
		}
		win.WatchShaders(ch)
		slog.Info("watching shaders", "dir", cfg.Shaders.Dir)
	}

	if err := st.Init(dev); err != nil {
		return err
	}

	fmt.Printf("Sphere: %d vertices, Curve: %d vertices (%s sampling)\n",
		st.Sphere.VertexCount(), len(st.Curve), cfg.Curve.Sampling)
	fmt.Println("W/S/A/D/Q/E move, arrows rotate, Shift+Left/Right roll, drag orbit, scroll zoom, Space play, [ ] speed, Esc quit")

	err = st.Run(ctx, win, dev)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
