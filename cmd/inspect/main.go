package main

import (
	"flag"
	"fmt"
	"os"

	"orbit-renderer/internal/app"
	"orbit-renderer/internal/config"
	"orbit-renderer/internal/mathutil"
)

func main() {
	configFile := flag.String("config", "", "Path to a TOML config file")
	sampling := flag.String("sampling", "", "Curve sampling: legacy or uniform")
	points := flag.Bool("points", false, "Print every curve sample")

	flag.Parse()

	cfg, err := config.Open(*configFile, config.Flags{Sampling: *sampling})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	st, err := app.New(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sphere: radius=%.3f step=%g° vertices=%d triangles=%d\n",
		cfg.Sphere.Radius, cfg.Sphere.Step, st.Sphere.VertexCount(), st.Sphere.TriangleCount())
	fmt.Printf("Curve: control=%d segments=%d sampling=%s samples=%d length=%.4f\n",
		len(cfg.Curve.Control), (len(cfg.Curve.Control)-1)/3, cfg.Curve.Sampling, len(st.Curve), st.CurveLength())
	if n := len(st.Curve); n > 0 {
		fmt.Printf("  First: %s  Last: %s\n", vec(st.Curve[0]), vec(st.Curve[n-1]))
	}
	if *points {
		for i, p := range st.Curve {
			fmt.Printf("  [%3d] %s\n", i, vec(p))
		}
	}

	cam := st.Camera
	fmt.Printf("Camera: pos=%s forward=%s up=%s focus=%.3f\n",
		vec(cam.Position()), vec(cam.Forward()), vec(cam.Up()), cam.FocusDistance())

	printMatrix("P", st.P)
	printMatrix("V", st.V)
	printMatrix("MVP", st.MVP(st.M))
}

func vec(v mathutil.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v[0], v[1], v[2])
}

func printMatrix(name string, m mathutil.Mat4) {
	fmt.Printf("%s:\n", name)
	for r := 0; r < 4; r++ {
		fmt.Printf("  % .5f % .5f % .5f % .5f\n", m[r*4], m[r*4+1], m[r*4+2], m[r*4+3])
	}
}
