// Package renderer draws the scene graph with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tubular/internal/engine/mesh"
	"github.com/Faultbox/tubular/internal/engine/scene"
	"github.com/Faultbox/tubular/internal/logger"
	"github.com/Faultbox/tubular/internal/tube"
	"github.com/Faultbox/tubular/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
	ShowGrid   bool
	LightDir   math.Vec3 // direction light travels; zero uses a default
}

// View is the per-frame camera state.
type View struct {
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
}

// gpuMesh is the GPU copy of one scene node's mesh.
type gpuMesh struct {
	vao     uint32
	vbo     uint32
	ebo     uint32
	count   int32
	version uint64
	static  bool
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	litProgram uint32
	locModel   int32
	locView    int32
	locProj    int32
	locColor   int32
	locLight   int32
	locEye     int32

	lineProgram  uint32
	locLineVP    int32
	locLineColor int32
	gridVAO      uint32
	gridVBO      uint32
	gridCount    int32

	lightDir math.Vec3

	meshes  map[tube.Handle]*gpuMesh
	scratch []float32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		lightDir: cfg.LightDir.Normalize(),
		meshes:   make(map[tube.Handle]*gpuMesh),
	}

	if r.lightDir.SqrLength() == 0 {
		r.lightDir = math.Vec3{X: -0.4, Y: -1, Z: -0.3}.Normalize()
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// Tube rings have no consistent winding toward the viewer
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.MULTISAMPLE)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)

	var err error
	r.litProgram, err = compileProgram(litVertexShader, litFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("lit program: %w", err)
	}
	r.locModel = uniform(r.litProgram, "uModel")
	r.locView = uniform(r.litProgram, "uView")
	r.locProj = uniform(r.litProgram, "uProjection")
	r.locColor = uniform(r.litProgram, "uColor")
	r.locLight = uniform(r.litProgram, "uLightDir")
	r.locEye = uniform(r.litProgram, "uCameraPos")

	r.lineProgram, err = compileProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		gl.DeleteProgram(r.litProgram)
		return nil, fmt.Errorf("line program: %w", err)
	}
	r.locLineVP = uniform(r.lineProgram, "uViewProj")
	r.locLineColor = uniform(r.lineProgram, "uColor")

	r.createGrid(50, 1)

	logger.Debug("renderer ready",
		zap.Uint32("lit", r.litProgram),
		zap.Uint32("line", r.lineProgram),
	)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for h := range r.meshes {
		r.release(h)
	}
	if r.gridVAO != 0 {
		gl.DeleteVertexArrays(1, &r.gridVAO)
	}
	if r.gridVBO != 0 {
		gl.DeleteBuffers(1, &r.gridVBO)
	}
	if r.litProgram != 0 {
		gl.DeleteProgram(r.litProgram)
	}
	if r.lineProgram != 0 {
		gl.DeleteProgram(r.lineProgram)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Render syncs GPU buffers with the graph and draws one frame.
func (r *Renderer) Render(g *scene.Graph, v View) {
	for _, h := range g.DrainReleased() {
		r.release(h)
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.config.ShowGrid {
		r.drawGrid(v)
	}

	gl.UseProgram(r.litProgram)
	gl.UniformMatrix4fv(r.locView, 1, false, v.View.Ptr())
	gl.UniformMatrix4fv(r.locProj, 1, false, v.Projection.Ptr())
	gl.Uniform3f(r.locLight, r.lightDir.X, r.lightDir.Y, r.lightDir.Z)
	gl.Uniform3f(r.locEye, v.Eye.X, v.Eye.Y, v.Eye.Z)

	g.Walk(func(n *scene.Node, world math.Vec3) {
		if n.Mesh == nil || len(n.Mesh.Indices) == 0 {
			return
		}
		gm := r.sync(n)
		model := math.Translate(world.X, world.Y, world.Z)
		c := n.Material.Color
		gl.UniformMatrix4fv(r.locModel, 1, false, model.Ptr())
		gl.Uniform4f(r.locColor, c[0], c[1], c[2], c[3])
		gl.BindVertexArray(gm.vao)
		gl.DrawElements(gl.TRIANGLES, gm.count, gl.UNSIGNED_INT, nil)
	})
	gl.BindVertexArray(0)
}

// sync uploads a node's mesh when it changed since the last upload.
func (r *Renderer) sync(n *scene.Node) *gpuMesh {
	gm, ok := r.meshes[n.Handle]
	if !ok {
		gm = &gpuMesh{}
		gl.GenVertexArrays(1, &gm.vao)
		gl.GenBuffers(1, &gm.vbo)
		gl.GenBuffers(1, &gm.ebo)
		gl.BindVertexArray(gm.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)

		stride := int32(mesh.FloatsPerVertex * 4)
		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))
		gl.EnableVertexAttribArray(2)

		r.meshes[n.Handle] = gm
	}
	if ok && gm.version == n.Version {
		return gm
	}

	usage := uint32(gl.DYNAMIC_DRAW)
	if n.Static {
		usage = gl.STATIC_DRAW
	}

	r.scratch = mesh.Interleave(n.Mesh.Vertices, r.scratch[:0])
	indices := n.Mesh.Indices

	gl.BindVertexArray(gm.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.scratch)*4, unsafe.Pointer(&r.scratch[0]), usage)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), usage)

	gm.count = int32(len(indices))
	gm.version = n.Version
	gm.static = n.Static
	return gm
}

func (r *Renderer) release(h tube.Handle) {
	gm, ok := r.meshes[h]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &gm.vao)
	gl.DeleteBuffers(1, &gm.vbo)
	gl.DeleteBuffers(1, &gm.ebo)
	delete(r.meshes, h)
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
// Call it after Render and before the buffers are swapped.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}
