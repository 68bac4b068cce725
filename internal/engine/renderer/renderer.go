// Package renderer draws the plant mesh and its debug overlay with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/stemforge/internal/engine/debug"
	"github.com/Faultbox/stemforge/internal/engine/lighting"
	"github.com/Faultbox/stemforge/internal/engine/shader"
	"github.com/Faultbox/stemforge/internal/logger"
	"github.com/Faultbox/stemforge/internal/mesh"
	"github.com/Faultbox/stemforge/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Frame is what one draw call needs from the viewer.
type Frame struct {
	ViewProj  math.Mat4
	Sun       lighting.Sun
	Wireframe bool
	Overlay   []debug.LineVertex
}

// Renderer owns the GPU copies of the plant mesh and overlay lines.
type Renderer struct {
	config Config
	log    *zap.Logger

	meshProgram *shader.Program
	lineProgram *shader.Program

	meshVAO, meshVBO, meshEBO uint32
	meshIndices               int32

	lineVAO, lineVBO uint32
	lineCap          int
}

// New creates a renderer. It must be called after the GL context exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg, log: logger.Named("renderer")}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.55, 0.7, 0.85, 1.0)

	var err error
	if r.meshProgram, err = shader.Compile(meshVertexShader, meshFragmentShader); err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	if r.lineProgram, err = shader.Compile(lineVertexShader, lineFragmentShader); err != nil {
		r.meshProgram.Delete()
		return nil, fmt.Errorf("line program: %w", err)
	}

	r.createMeshBuffers()
	r.createLineBuffers()
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// Close frees GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	gl.DeleteVertexArrays(1, &r.meshVAO)
	gl.DeleteBuffers(1, &r.meshVBO)
	gl.DeleteBuffers(1, &r.meshEBO)
	gl.DeleteVertexArrays(1, &r.lineVAO)
	gl.DeleteBuffers(1, &r.lineVBO)
	r.meshProgram.Delete()
	r.lineProgram.Delete()
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// UploadMesh replaces the GPU mesh.
func (r *Renderer) UploadMesh(e mesh.Export) {
	verts := e.Interleaved()
	gl.BindVertexArray(r.meshVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)
	if len(verts) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*int(unsafe.Sizeof(mesh.Vertex{})), unsafe.Pointer(&verts[0]), gl.DYNAMIC_DRAW)
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.meshEBO)
	if len(e.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(e.Indices)*4, unsafe.Pointer(&e.Indices[0]), gl.DYNAMIC_DRAW)
	}
	gl.BindVertexArray(0)
	r.meshIndices = int32(len(e.Indices))
}

// Draw renders one frame.
func (r *Renderer) Draw(f Frame) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.meshIndices > 0 {
		if f.Wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		}
		r.meshProgram.Use()
		r.meshProgram.SetMat4("uViewProj", f.ViewProj)
		r.meshProgram.SetVec3("uLightDir", f.Sun.Direction())
		r.meshProgram.SetVec3("uLightColor", f.Sun.Color)
		r.meshProgram.SetFloat("uAmbient", f.Sun.Ambient)
		r.meshProgram.SetVec3("uColor", math.Vec3{X: 0.3, Y: 0.65, Z: 0.25})
		gl.BindVertexArray(r.meshVAO)
		gl.DrawElements(gl.TRIANGLES, r.meshIndices, gl.UNSIGNED_INT, nil)
		gl.BindVertexArray(0)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	if len(f.Overlay) > 0 {
		// Overlay is drawn on top of the mesh.
		gl.Disable(gl.DEPTH_TEST)
		r.drawLines(f.ViewProj, f.Overlay)
		gl.Enable(gl.DEPTH_TEST)
	}
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func (r *Renderer) drawLines(viewProj math.Mat4, lines []debug.LineVertex) {
	stride := int(unsafe.Sizeof(debug.LineVertex{}))
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	if len(lines) > r.lineCap {
		gl.BufferData(gl.ARRAY_BUFFER, len(lines)*stride, unsafe.Pointer(&lines[0]), gl.STREAM_DRAW)
		r.lineCap = len(lines)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(lines)*stride, unsafe.Pointer(&lines[0]))
	}

	r.lineProgram.Use()
	r.lineProgram.SetMat4("uViewProj", viewProj)
	gl.DrawArrays(gl.LINES, 0, int32(len(lines)))
	gl.BindVertexArray(0)
}

func (r *Renderer) createMeshBuffers() {
	gl.GenVertexArrays(1, &r.meshVAO)
	gl.BindVertexArray(r.meshVAO)
	gl.GenBuffers(1, &r.meshVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)
	gl.GenBuffers(1, &r.meshEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.meshEBO)

	stride := int32(unsafe.Sizeof(mesh.Vertex{}))
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
}

func (r *Renderer) createLineBuffers() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)

	stride := int32(unsafe.Sizeof(debug.LineVertex{}))
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}
