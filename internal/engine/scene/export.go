package scene

import (
	"fmt"
	"io"

	"github.com/Faultbox/tubular/pkg/formats"
	"github.com/Faultbox/tubular/pkg/math"
)

// ExportOBJ writes every non-empty mesh in the graph as an OBJ object in
// world space and returns the number of objects written.
func (g *Graph) ExportOBJ(w io.Writer) (int, error) {
	ow := formats.NewOBJWriter(w)
	if err := ow.Comment("tubular scene export"); err != nil {
		return 0, err
	}

	var err error
	g.Walk(func(n *Node, world math.Vec3) {
		if err != nil || n.Mesh == nil || len(n.Mesh.Indices) == 0 {
			return
		}
		obj := formats.OBJObject{
			Name:      fmt.Sprintf("%s_%d", n.Kind, n.Handle),
			Offset:    world.Array(),
			Positions: make([][3]float32, len(n.Mesh.Vertices)),
			Normals:   make([][3]float32, len(n.Mesh.Vertices)),
			UVs:       make([][2]float32, len(n.Mesh.Vertices)),
			Indices:   n.Mesh.Indices,
		}
		for i, v := range n.Mesh.Vertices {
			obj.Positions[i] = v.Position
			obj.Normals[i] = v.Normal
			obj.UVs[i] = v.TexCoord
		}
		err = ow.WriteObject(obj)
	})
	if err != nil {
		return ow.Objects(), err
	}
	return ow.Objects(), ow.Flush()
}
