// Package raster is a z-buffered software rasterizer implementing
// render.Device, used to render the scene without a window.
package raster

import (
	"fmt"
	"image"

	"orbit-renderer/internal/mathutil"
	"orbit-renderer/internal/render"
)

// nearW is the smallest clip-space w accepted. Primitives with a vertex
// at or behind it are dropped rather than clipped.
const nearW = 1e-6

type buffer struct {
	positions []mathutil.Vec3
	uvs       []mathutil.Vec2
}

func (b *buffer) Len() int { return len(b.positions) }

// Device renders into a FrameBuffer.
type Device struct {
	fb       *FrameBuffer
	matrices map[string]mathutil.Mat4
	colors   map[string]render.Color
	tex      *image.NRGBA

	// scratch, reused across Draw calls
	proj    []vertex
	visible []bool
}

var _ render.Device = (*Device)(nil)

// NewDevice returns a device with a w×h target.
func NewDevice(w, h int) *Device {
	return &Device{
		fb:       NewFrameBuffer(w, h),
		matrices: map[string]mathutil.Mat4{render.UniformMVP: mathutil.Mat4Identity()},
		colors:   map[string]render.Color{},
	}
}

// SetTexture makes triangle draws of buffers with UVs sample tex instead of
// using the flat colour. nil restores flat colour.
func (d *Device) SetTexture(tex *image.NRGBA) { d.tex = tex }

func (d *Device) Upload(positions []mathutil.Vec3, uvs []mathutil.Vec2) (render.Buffer, error) {
	if len(uvs) != 0 && len(uvs) != len(positions) {
		return nil, fmt.Errorf("raster: upload: %d uvs for %d positions", len(uvs), len(positions))
	}
	b := &buffer{
		positions: append([]mathutil.Vec3(nil), positions...),
	}
	if len(uvs) > 0 {
		b.uvs = append([]mathutil.Vec2(nil), uvs...)
	}
	return b, nil
}

func (d *Device) SetMatrix(name string, m mathutil.Mat4) { d.matrices[name] = m }

func (d *Device) SetColor(name string, c render.Color) { d.colors[name] = c }

func (d *Device) Clear(c render.Color) {
	d.fb.Clear(clamp255(c.R*255), clamp255(c.G*255), clamp255(c.B*255), 255)
}

// Draw projects the first count vertices of rb with the MVP uniform and
// rasterizes them in the current inputColor.
func (d *Device) Draw(rb render.Buffer, topo render.Topology, count int) {
	b := rb.(*buffer)
	if count > len(b.positions) {
		count = len(b.positions)
	}
	d.project(b, count)

	c := d.colors[render.UniformColor]
	r, g, bl := clamp255(c.R*255), clamp255(c.G*255), clamp255(c.B*255)

	switch topo {
	case render.TriangleList:
		tex := d.tex
		if len(b.uvs) == 0 {
			tex = nil
		}
		for i := 0; i+2 < count; i += 3 {
			if !d.visible[i] || !d.visible[i+1] || !d.visible[i+2] {
				continue
			}
			rasterizeTriangle(d.fb, [3]vertex{d.proj[i], d.proj[i+1], d.proj[i+2]}, tex, r, g, bl)
		}
	case render.LineStrip:
		for i := 0; i+1 < count; i++ {
			if !d.visible[i] || !d.visible[i+1] {
				continue
			}
			rasterizeLine(d.fb, d.proj[i], d.proj[i+1], r, g, bl)
		}
	}
}

// project maps vertices to pixel space. Pixel y grows downward; depth is
// -z/w so that nearer points compare larger.
func (d *Device) project(b *buffer, count int) {
	if cap(d.proj) < count {
		d.proj = make([]vertex, count)
		d.visible = make([]bool, count)
	}
	d.proj = d.proj[:count]
	d.visible = d.visible[:count]

	mvp := d.matrices[render.UniformMVP]
	w, h := float64(d.fb.Width), float64(d.fb.Height)
	for i := 0; i < count; i++ {
		p := b.positions[i]
		clip := mvp.MulVec4([4]float64{p[0], p[1], p[2], 1})
		if clip[3] <= nearW || clip[2] < -clip[3] {
			d.visible[i] = false
			continue
		}
		inv := 1 / clip[3]
		v := vertex{
			x:  (clip[0]*inv + 1) * 0.5 * w,
			y:  (1 - clip[1]*inv) * 0.5 * h,
			z:  -clip[2] * inv,
			iw: inv,
		}
		if b.uvs != nil {
			v.u, v.v = b.uvs[i][0], b.uvs[i][1]
		}
		d.proj[i] = v
		d.visible[i] = true
	}
}

// Image returns a copy of the current frame.
func (d *Device) Image() *image.NRGBA { return d.fb.Image() }

// Size returns the target dimensions.
func (d *Device) Size() (int, int) { return d.fb.Width, d.fb.Height }
