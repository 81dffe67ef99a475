package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// OBJObject is one named mesh in a Wavefront OBJ file.
type OBJObject struct {
	Name      string
	Offset    [3]float32 // added to every position
	Positions [][3]float32
	Normals   [][3]float32 // optional, same length as Positions
	UVs       [][2]float32 // optional, same length as Positions
	Indices   []uint32     // triangles, 0-based
}

// OBJWriter streams objects to a Wavefront OBJ file. Vertex numbering
// continues across objects, as the format requires.
type OBJWriter struct {
	w     *bufio.Writer
	base  int
	buf   []byte
	count int
}

// NewOBJWriter creates a writer. Call Flush when done.
func NewOBJWriter(w io.Writer) *OBJWriter {
	return &OBJWriter{w: bufio.NewWriter(w)}
}

// Comment writes a comment line.
func (o *OBJWriter) Comment(text string) error {
	_, err := fmt.Fprintf(o.w, "# %s\n", text)
	return err
}

// Objects returns the number of objects written so far.
func (o *OBJWriter) Objects() int {
	return o.count
}

// WriteObject validates obj and appends it to the file.
func (o *OBJWriter) WriteObject(obj OBJObject) error {
	n := len(obj.Positions)
	hasNormals := len(obj.Normals) > 0
	hasUVs := len(obj.UVs) > 0

	if hasNormals && len(obj.Normals) != n {
		return fmt.Errorf("%w: %s: %d normals for %d positions", ErrInvalidMesh, obj.Name, len(obj.Normals), n)
	}
	if hasUVs && len(obj.UVs) != n {
		return fmt.Errorf("%w: %s: %d uvs for %d positions", ErrInvalidMesh, obj.Name, len(obj.UVs), n)
	}
	if len(obj.Indices)%3 != 0 {
		return fmt.Errorf("%w: %s: %d indices is not a triangle list", ErrInvalidMesh, obj.Name, len(obj.Indices))
	}
	for _, idx := range obj.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: %s: index %d out of range", ErrInvalidMesh, obj.Name, idx)
		}
	}

	if _, err := fmt.Fprintf(o.w, "o %s\n", obj.Name); err != nil {
		return err
	}
	for _, p := range obj.Positions {
		o.line("v", p[0]+obj.Offset[0], p[1]+obj.Offset[1], p[2]+obj.Offset[2])
	}
	for _, uv := range obj.UVs {
		o.line("vt", uv[0], uv[1])
	}
	for _, nm := range obj.Normals {
		o.line("vn", nm[0], nm[1], nm[2])
	}

	for i := 0; i < len(obj.Indices); i += 3 {
		o.buf = append(o.buf[:0], 'f')
		for _, idx := range obj.Indices[i : i+3] {
			ref := strconv.Itoa(o.base + int(idx) + 1)
			o.buf = append(o.buf, ' ')
			o.buf = append(o.buf, ref...)
			switch {
			case hasUVs && hasNormals:
				o.buf = append(o.buf, '/')
				o.buf = append(o.buf, ref...)
				o.buf = append(o.buf, '/')
				o.buf = append(o.buf, ref...)
			case hasUVs:
				o.buf = append(o.buf, '/')
				o.buf = append(o.buf, ref...)
			case hasNormals:
				o.buf = append(o.buf, "//"...)
				o.buf = append(o.buf, ref...)
			}
		}
		o.buf = append(o.buf, '\n')
		if _, err := o.w.Write(o.buf); err != nil {
			return err
		}
	}

	o.base += n
	o.count++
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (o *OBJWriter) Flush() error {
	return o.w.Flush()
}

// line writes a keyword followed by shortest-form floats. Write errors are
// sticky in bufio and surface from the next checked write or Flush.
func (o *OBJWriter) line(keyword string, values ...float32) {
	o.buf = append(o.buf[:0], keyword...)
	for _, v := range values {
		o.buf = append(o.buf, ' ')
		o.buf = strconv.AppendFloat(o.buf, float64(v), 'f', -1, 32)
	}
	o.buf = append(o.buf, '\n')
	o.w.Write(o.buf)
}
