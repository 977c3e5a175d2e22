package glview

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"

	"orbit-renderer/internal/mathutil"
	"orbit-renderer/internal/render"
	"orbit-renderer/internal/shader"
)

// Vertex attribute locations, bound by name before linking.
const (
	attribPosition = 0
	attribUV       = 1
)

// CompileError carries the info log of a failed compile or link.
type CompileError struct {
	Stage string // "vertex", "fragment" or "link"
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("glview: %s shader: %s", e.Stage, strings.TrimSpace(e.Log))
}

type buffer struct {
	vao, vbo, uvbo uint32
	n              int
}

func (b *buffer) Len() int { return b.n }

// Device implements render.Device on the current GL context.
type Device struct {
	program  uint32
	uniforms map[string]int32
	buffers  []*buffer
}

var _ render.Device = (*Device)(nil)

func newDevice(src shader.Sources) (*Device, error) {
	prog, err := buildProgram(src)
	if err != nil {
		return nil, err
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.UseProgram(prog)
	return &Device{program: prog, uniforms: map[string]int32{}}, nil
}

// Reload compiles src and swaps it in. On failure the current program stays
// in use.
func (d *Device) Reload(src shader.Sources) error {
	prog, err := buildProgram(src)
	if err != nil {
		return err
	}
	gl.DeleteProgram(d.program)
	d.program = prog
	d.uniforms = map[string]int32{}
	gl.UseProgram(prog)
	return nil
}

func (d *Device) Upload(positions []mathutil.Vec3, uvs []mathutil.Vec2) (render.Buffer, error) {
	if len(uvs) != 0 && len(uvs) != len(positions) {
		return nil, fmt.Errorf("glview: upload: %d uvs for %d positions", len(uvs), len(positions))
	}
	b := &buffer{n: len(positions)}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	flat := make([]float32, 0, 3*len(positions))
	for _, p := range positions {
		flat = append(flat, float32(p[0]), float32(p[1]), float32(p[2]))
	}
	b.vbo = uploadAttrib(flat, attribPosition, 3)

	if len(uvs) > 0 {
		flat = make([]float32, 0, 2*len(uvs))
		for _, uv := range uvs {
			flat = append(flat, float32(uv[0]), float32(uv[1]))
		}
		b.uvbo = uploadAttrib(flat, attribUV, 2)
	}

	gl.BindVertexArray(0)
	d.buffers = append(d.buffers, b)
	return b, nil
}

func uploadAttrib(data []float32, loc uint32, size int32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 4*len(data), gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, 0, 0)
	return vbo
}

func (d *Device) uniform(name string) int32 {
	if loc, ok := d.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(d.program, gl.Str(name+"\x00"))
	d.uniforms[name] = loc
	return loc
}

// SetMatrix uploads m with transpose = true: Mat4 is row-major.
func (d *Device) SetMatrix(name string, m mathutil.Mat4) {
	f := m.Float32()
	gl.UseProgram(d.program)
	gl.UniformMatrix4fv(d.uniform(name), 1, true, &f[0])
}

func (d *Device) SetColor(name string, c render.Color) {
	gl.UseProgram(d.program)
	gl.Uniform3f(d.uniform(name), float32(c.R), float32(c.G), float32(c.B))
}

func (d *Device) Draw(rb render.Buffer, topo render.Topology, count int) {
	b := rb.(*buffer)
	mode := uint32(gl.TRIANGLES)
	if topo == render.LineStrip {
		mode = gl.LINE_STRIP
	}
	gl.UseProgram(d.program)
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(mode, 0, int32(count))
	gl.BindVertexArray(0)
}

func (d *Device) Clear(c render.Color) {
	gl.ClearColor(float32(c.R), float32(c.G), float32(c.B), 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Delete releases the program and every uploaded buffer.
func (d *Device) Delete() {
	for _, b := range d.buffers {
		gl.DeleteBuffers(1, &b.vbo)
		if b.uvbo != 0 {
			gl.DeleteBuffers(1, &b.uvbo)
		}
		gl.DeleteVertexArrays(1, &b.vao)
	}
	d.buffers = nil
	gl.DeleteProgram(d.program)
}

func buildProgram(src shader.Sources) (uint32, error) {
	vs, err := compile(src.Vertex, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compile(src.Fragment, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.BindAttribLocation(prog, attribPosition, gl.Str("position\x00"))
	gl.BindAttribLocation(prog, attribUV, gl.Str("uv\x00"))
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(prog, n, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, &CompileError{Stage: "link", Log: strings.TrimRight(log, "\x00")}
	}
	return prog, nil
}

func compile(source string, kind uint32, stage string) (uint32, error) {
	sh := gl.CreateShader(kind)
	csrc, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(sh, n, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, &CompileError{Stage: stage, Log: strings.TrimRight(log, "\x00")}
	}
	return sh, nil
}
