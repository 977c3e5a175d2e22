// Package shader loads the GLSL program sources from disk and watches them
// for edits.
package shader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// File names looked up in the shader directory.
const (
	VertexFile   = "basic_vs.glsl"
	FragmentFile = "basic_fs.glsl"
)

// ErrMissingSource is returned when a shader file does not exist.
var ErrMissingSource = errors.New("shader: missing source")

// Sources is a vertex/fragment pair ready for compilation.
type Sources struct {
	Vertex   string
	Fragment string
}

// Load reads both shader files from dir.
func Load(dir string) (Sources, error) {
	vs, err := readSource(filepath.Join(dir, VertexFile))
	if err != nil {
		return Sources{}, err
	}
	frag, err := readSource(filepath.Join(dir, FragmentFile))
	if err != nil {
		return Sources{}, err
	}
	return Sources{Vertex: vs, Fragment: frag}, nil
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrMissingSource, path)
	}
	if err != nil {
		return "", fmt.Errorf("shader: read %s: %w", path, err)
	}
	return string(data), nil
}

// Watch reloads the sources whenever one of the shader files in dir is
// written, created or renamed into place, and delivers them on the returned
// channel. Sources that fail to load are logged and skipped. The channel is
// closed once ctx is done.
func Watch(ctx context.Context, dir string) (<-chan Sources, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader: watch %s: %w", dir, err)
	}
	// Watch the directory, not the files: editors often replace a file by
	// renaming a temporary over it.
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("shader: watch %s: %w", dir, err)
	}

	out := make(chan Sources, 1)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !relevant(ev) {
					continue
				}
				src, err := Load(dir)
				if err != nil {
					slog.Warn("shader reload skipped", "file", ev.Name, "err", err)
					continue
				}
				slog.Debug("shader sources changed", "file", ev.Name, "op", ev.Op.String())
				select {
				case out <- src:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("shader watcher", "err", err)
			}
		}
	}()
	return out, nil
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(ev.Name)
	return name == VertexFile || name == FragmentFile
}
