// Package scene provides the node graph that tube sessions build into. It
// holds meshes and hierarchy only; drawing is done by the renderer package,
// which syncs GPU buffers from the graph each frame.
package scene

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/tubular/internal/engine/mesh"
	"github.com/Faultbox/tubular/internal/logger"
	"github.com/Faultbox/tubular/internal/tube"
	"github.com/Faultbox/tubular/pkg/math"
)

// Kind is the type of a scene node.
type Kind int

const (
	KindGroup Kind = iota
	KindSegment
	KindSphere
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindSegment:
		return "segment"
	case KindSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Node is a single element of the graph. Positions are relative to the parent.
type Node struct {
	Handle   tube.Handle
	Kind     Kind
	Name     string
	Parent   tube.Handle
	Position math.Vec3
	Material tube.Material
	Mesh     *mesh.Mesh

	// Static is set once a segment is finalized.
	Static bool
	// Version increments whenever Mesh changes.
	Version uint64

	children []tube.Handle
}

// Children returns the handles of the node's direct children.
func (n *Node) Children() []tube.Handle {
	return slices.Clone(n.children)
}

// Stats summarizes the contents of a graph.
type Stats struct {
	Groups    int
	Segments  int
	Spheres   int
	Vertices  int
	Triangles int
}

// Option configures a Graph.
type Option func(*Graph)

// WithSphereResolution sets the tessellation of end-cap spheres.
func WithSphereResolution(stacks, sectors int) Option {
	return func(g *Graph) {
		g.sphereStacks = stacks
		g.sphereSectors = sectors
	}
}

// WithLogger replaces the graph logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Graph) { g.log = l }
}

// Graph is an in-memory scene graph implementing tube.Renderer.
// It is not safe for concurrent use.
type Graph struct {
	nodes    map[tube.Handle]*Node
	next     tube.Handle
	released []tube.Handle

	sphereStacks  int
	sphereSectors int

	log *zap.Logger
}

var _ tube.Renderer = (*Graph)(nil)

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		nodes:         make(map[tube.Handle]*Node),
		sphereStacks:  12,
		sphereSectors: 24,
		log:           logger.Named("scene"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Graph) add(n *Node) tube.Handle {
	g.next++
	n.Handle = g.next
	g.nodes[n.Handle] = n
	return n.Handle
}

func (g *Graph) lookup(h tube.Handle, op string) *Node {
	n, ok := g.nodes[h]
	if !ok {
		g.log.Warn("unknown scene node", zap.String("op", op), zap.Uint32("handle", uint32(h)))
		return nil
	}
	return n
}

// NewGroup implements tube.Renderer.
func (g *Graph) NewGroup(name string) tube.Handle {
	return g.add(&Node{Kind: KindGroup, Name: name})
}

// NewSegment implements tube.Renderer.
func (g *Graph) NewSegment(material tube.Material) tube.Handle {
	return g.add(&Node{
		Kind:     KindSegment,
		Name:     "segment",
		Material: material,
		Mesh:     &mesh.Mesh{},
	})
}

// UpdateSegment implements tube.Renderer. Normals are recalculated on every
// update so the open segment is lit correctly while it grows.
func (g *Graph) UpdateSegment(h tube.Handle, vertices []math.Vec3, uvs []math.Vec2, indices []uint32) {
	n := g.lookup(h, "update")
	if n == nil {
		return
	}
	if n.Static {
		g.log.Warn("update of finalized segment ignored", zap.Uint32("handle", uint32(h)))
		return
	}
	n.Mesh = mesh.Build(vertices, uvs, indices)
	mesh.RecalculateNormals(n.Mesh)
	n.Version++
}

// FinalizeSegment implements tube.Renderer.
func (g *Graph) FinalizeSegment(h tube.Handle) {
	n := g.lookup(h, "finalize")
	if n == nil || n.Static {
		return
	}
	removed := mesh.Optimize(n.Mesh)
	mesh.RecalculateNormals(n.Mesh)
	n.Static = true
	n.Version++

	g.log.Debug("segment finalized",
		zap.Uint32("handle", uint32(h)),
		zap.Int("vertices", len(n.Mesh.Vertices)),
		zap.Int("triangles", len(n.Mesh.Indices)/3),
		zap.Int("degenerate", removed),
	)
}

// NewSphere implements tube.Renderer.
func (g *Graph) NewSphere(center math.Vec3, radius float32, material tube.Material) tube.Handle {
	return g.add(&Node{
		Kind:     KindSphere,
		Name:     "cap",
		Position: center,
		Material: material,
		Mesh:     mesh.Sphere(radius, g.sphereStacks, g.sphereSectors),
		Static:   true,
		Version:  1,
	})
}

// SetPosition implements tube.Renderer.
func (g *Graph) SetPosition(h tube.Handle, p math.Vec3) {
	if n := g.lookup(h, "position"); n != nil {
		n.Position = p
	}
}

// Attach implements tube.Renderer. The child keeps its local position.
func (g *Graph) Attach(child, parent tube.Handle) {
	c := g.lookup(child, "attach")
	p := g.lookup(parent, "attach")
	if c == nil || p == nil || child == parent {
		return
	}
	if c.Parent == parent {
		return
	}
	g.detach(c)
	c.Parent = parent
	p.children = append(p.children, child)
}

func (g *Graph) detach(n *Node) {
	if n.Parent == tube.NoHandle {
		return
	}
	if p, ok := g.nodes[n.Parent]; ok {
		p.children = slices.DeleteFunc(p.children, func(h tube.Handle) bool { return h == n.Handle })
	}
	n.Parent = tube.NoHandle
}

// Destroy implements tube.Renderer. Children are destroyed with the node.
func (g *Graph) Destroy(h tube.Handle) {
	n, ok := g.nodes[h]
	if !ok {
		return
	}
	g.detach(n)
	g.destroy(n)
}

func (g *Graph) destroy(n *Node) {
	for _, c := range n.children {
		if child, ok := g.nodes[c]; ok {
			g.destroy(child)
		}
	}
	delete(g.nodes, n.Handle)
	g.released = append(g.released, n.Handle)
}

// Node returns the node for h.
func (g *Graph) Node(h tube.Handle) (*Node, bool) {
	n, ok := g.nodes[h]
	return n, ok
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// DrainReleased returns the handles destroyed since the previous call, so
// GPU resources tied to them can be freed.
func (g *Graph) DrainReleased() []tube.Handle {
	out := g.released
	g.released = nil
	return out
}

// Roots returns the top-level nodes in creation order.
func (g *Graph) Roots() []*Node {
	var roots []*Node
	for _, n := range g.nodes {
		if n.Parent == tube.NoHandle {
			roots = append(roots, n)
		}
	}
	slices.SortFunc(roots, func(a, b *Node) int { return int(a.Handle) - int(b.Handle) })
	return roots
}

// Walk visits every node depth-first, roots in creation order, passing the
// node's world position.
func (g *Graph) Walk(fn func(n *Node, world math.Vec3)) {
	for _, r := range g.Roots() {
		g.walk(r, math.Vec3{}, fn)
	}
}

func (g *Graph) walk(n *Node, parent math.Vec3, fn func(*Node, math.Vec3)) {
	world := parent.Add(n.Position)
	fn(n, world)
	for _, c := range n.children {
		if child, ok := g.nodes[c]; ok {
			g.walk(child, world, fn)
		}
	}
}

// Stats counts nodes and geometry in the graph.
func (g *Graph) Stats() Stats {
	var s Stats
	for _, n := range g.nodes {
		switch n.Kind {
		case KindGroup:
			s.Groups++
		case KindSegment:
			s.Segments++
		case KindSphere:
			s.Spheres++
		}
		if n.Mesh != nil {
			s.Vertices += len(n.Mesh.Vertices)
			s.Triangles += len(n.Mesh.Indices) / 3
		}
	}
	return s
}
