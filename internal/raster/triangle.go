package raster

import (
	"image"
	"math"
)

// vertex is a vertex after projection: pixel coordinates, depth (larger is
// nearer), 1/w of the clip position and texture coordinate.
type vertex struct {
	x, y, z float64
	iw      float64
	u, v    float64
}

// interpolateUV returns the perspective-correct texture coordinate at the
// screen-space barycentric weights w0, w1, w2: u/w and v/w are interpolated
// linearly and divided by the interpolated 1/w.
func interpolateUV(p *[3]vertex, w0, w1, w2 float64) (u, v float64) {
	a, b, c := w0*p[0].iw, w1*p[1].iw, w2*p[2].iw
	iw := a + b + c
	if iw == 0 {
		return w0*p[0].u + w1*p[1].u + w2*p[2].u, w0*p[0].v + w1*p[1].v + w2*p[2].v
	}
	return (a*p[0].u + b*p[1].u + c*p[2].u) / iw, (a*p[0].v + b*p[1].v + c*p[2].v) / iw
}

// rasterizeTriangle fills one triangle with z-buffering. With a texture the
// colour comes from bilinear samples at the interpolated UV; without one
// the triangle is flat r, g, b.
//
// This is the hot path: no allocation in the pixel loop.
func rasterizeTriangle(fb *FrameBuffer, p [3]vertex, tex *image.NRGBA, r, g, b uint8) {
	x0, y0, z0 := p[0].x, p[0].y, p[0].z
	x1, y1, z1 := p[1].x, p[1].y, p[1].z
	x2, y2, z2 := p[2].x, p[2].y, p[2].z

	// Bounding box
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			cr, cg, cb, ca := r, g, b, uint8(255)
			if tex != nil {
				u, v := interpolateUV(&p, w0, w1, w2)
				cr, cg, cb, ca = SampleTexture(tex, u, v)
				// Skip transparent texels
				if ca < 8 {
					continue
				}
			}
			fb.ZBuf[zIdx] = z

			i := zIdx * 4
			fb.Color[i] = cr
			fb.Color[i+1] = cg
			fb.Color[i+2] = cb
			fb.Color[i+3] = ca
		}
	}
}

// rasterizeLine draws a depth-tested one pixel wide segment.
func rasterizeLine(fb *FrameBuffer, a, b vertex, r, g, bl uint8) {
	dx, dy := b.x-a.x, b.y-a.y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		fb.plot(int(math.Round(a.x)), int(math.Round(a.y)), a.z, r, g, bl, 255)
		return
	}
	inv := 1 / float64(steps)
	for i := 0; i <= steps; i++ {
		t := float64(i) * inv
		x := a.x + dx*t
		y := a.y + dy*t
		z := a.z + (b.z-a.z)*t
		fb.plot(int(math.Round(x)), int(math.Round(y)), z, r, g, bl, 255)
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
