package scene

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Faultbox/tubular/internal/tube"
	"github.com/Faultbox/tubular/pkg/math"
)

func TestExportOBJ(t *testing.T) {
	g := New(WithSphereResolution(4, 8))
	anchor := &tube.FixedAnchor{Fwd: math.Forward, Rt: math.Right}
	s, err := tube.NewSession(tube.DefaultSettings(), g, anchor)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(tube.DefaultRadius, tube.DefaultMaterial); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 30; i++ {
		anchor.Pos.Z += 0.5
		s.Advance(anchor.Pos)
	}
	s.Close()

	var buf bytes.Buffer
	n, err := g.ExportOBJ(&buf)
	if err != nil {
		t.Fatalf("ExportOBJ() error = %v", err)
	}

	stats := g.Stats()
	if want := stats.Segments + stats.Spheres; n != want {
		t.Errorf("objects = %d, want %d", n, want)
	}

	var verts, faces, objects int
	for _, line := range strings.Split(buf.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "o "):
			objects++
		case strings.HasPrefix(line, "v "):
			verts++
		case strings.HasPrefix(line, "f "):
			faces++
		}
	}
	if objects != n {
		t.Errorf("object lines = %d, want %d", objects, n)
	}
	if verts != stats.Vertices {
		t.Errorf("vertex lines = %d, want %d", verts, stats.Vertices)
	}
	if faces != stats.Triangles {
		t.Errorf("face lines = %d, want %d", faces, stats.Triangles)
	}
}

func TestExportOBJEmptyGraph(t *testing.T) {
	g := New()
	g.NewGroup("empty")
	g.NewSegment(tube.DefaultMaterial)

	var buf bytes.Buffer
	n, err := g.ExportOBJ(&buf)
	if err != nil {
		t.Fatalf("ExportOBJ() error = %v", err)
	}
	if n != 0 {
		t.Errorf("objects = %d, want 0", n)
	}
	if strings.Contains(buf.String(), "\no ") {
		t.Errorf("unexpected object in %q", buf.String())
	}
}

func TestExportOBJWorldSpace(t *testing.T) {
	g := New(WithSphereResolution(2, 3))
	group := g.NewGroup("run")
	g.SetPosition(group, math.Vec3{X: 10})
	sphere := g.NewSphere(math.Vec3{Y: 5}, 1, tube.DefaultMaterial)
	g.Attach(sphere, group)

	var buf bytes.Buffer
	if _, err := g.ExportOBJ(&buf); err != nil {
		t.Fatal(err)
	}
	// Top pole of a unit sphere centred at (10, 5, 0)
	if !strings.Contains(buf.String(), "v 10 6 0\n") {
		t.Errorf("world offset not applied:\n%s", buf.String())
	}
}
