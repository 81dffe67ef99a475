package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// gridLines returns line endpoints for a square grid on the XZ plane,
// half cells in each direction from the origin.
func gridLines(half int, cell float32) []float32 {
	extent := float32(half) * cell
	lines := make([]float32, 0, (2*half+1)*12)
	for i := -half; i <= half; i++ {
		p := float32(i) * cell
		lines = append(lines,
			p, 0, -extent, p, 0, extent,
			-extent, 0, p, extent, 0, p,
		)
	}
	return lines
}

func (r *Renderer) createGrid(half int, cell float32) {
	lines := gridLines(half, cell)
	r.gridCount = int32(len(lines) / 3)

	gl.GenVertexArrays(1, &r.gridVAO)
	gl.BindVertexArray(r.gridVAO)
	gl.GenBuffers(1, &r.gridVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.gridVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(lines)*4, unsafe.Pointer(&lines[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawGrid(v View) {
	vp := v.Projection.Mul(v.View)
	gl.UseProgram(r.lineProgram)
	gl.UniformMatrix4fv(r.locLineVP, 1, false, vp.Ptr())
	gl.Uniform4f(r.locLineColor, 0.35, 0.35, 0.4, 1)
	gl.BindVertexArray(r.gridVAO)
	gl.DrawArrays(gl.LINES, 0, r.gridCount)
	gl.BindVertexArray(0)
}
