package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
)

// FrameEntry describes one rendered frame in the output manifest.
type FrameEntry struct {
	Index    int        `json:"index"`
	Image    string     `json:"image"`
	T        float64    `json:"t"`
	Position [3]float64 `json:"position"`
	Forward  [3]float64 `json:"forward"`
	Up       [3]float64 `json:"up"`
	Error    string     `json:"error,omitempty"`
}

// Manifest is written as manifest.json next to the frames.
type Manifest struct {
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Supersample int          `json:"supersample"`
	YawStep     float64      `json:"yaw_step_deg"`
	CurveLength float64      `json:"curve_length"`
	Frames      []FrameEntry `json:"frames"`
}

// Failed counts frames that could not be written.
func (m *Manifest) Failed() int {
	n := 0
	for _, f := range m.Frames {
		if f.Error != "" {
			n++
		}
	}
	return n
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("snapshot: read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("snapshot: parse manifest %s: %w", path, err)
	}
	return m, nil
}
