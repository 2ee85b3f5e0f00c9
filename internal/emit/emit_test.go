package emit

import (
	"bytes"
	"strings"
	"testing"

	"gocsg/internal/csg2"
	"gocsg/internal/csg3"
	"gocsg/internal/planar"
)

func onePolyOutput() (*planar.Output, csg3.ZRange) {
	out := planar.NewOutput(1)
	poly := csg3.Polygon2{Rings: []csg3.Ring{{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}}}
	out.Cells[0] = csg2.NewCell(csg3.PolygonSet{poly})
	return out, csg3.ZRange{Min: 5, Step: 10, Count: 1}
}

func TestFromExtension(t *testing.T) {
	cases := map[string]Format{"model.stl": STL, "model.js": JS, "model.scad": SCAD, "model.csg": SCAD, "model.ps": PS}
	for path, want := range cases {
		got, err := FromExtension(path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if got != want {
			t.Fatalf("%s: got %v, want %v", path, got, want)
		}
	}
	if _, err := FromExtension("model.xyz"); err == nil {
		t.Fatalf("expected error for unknown extension")
	}
	if _, err := FromExtension("noext"); err == nil {
		t.Fatalf("expected error for missing extension")
	}
}

func TestSTLEmptyOutputHasValidHeaderFooter(t *testing.T) {
	out := planar.NewOutput(1)
	out.Cells[0] = csg2.NewCell(nil)
	var buf bytes.Buffer
	if err := New(STL, PSOptions{}).Emit(&buf, out, csg3.ZRange{Min: 0, Step: 1, Count: 1}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	s := buf.String()
	if !strings.HasPrefix(s, "solid gocsg\n") || !strings.HasSuffix(s, "endsolid gocsg\n") {
		t.Fatalf("got %q, want valid empty solid header/footer", s)
	}
	if strings.Contains(s, "facet") {
		t.Fatalf("expected no facets for an empty cell")
	}
}

func TestSTLEmitsFacetsForASquare(t *testing.T) {
	out, zr := onePolyOutput()
	var buf bytes.Buffer
	if err := New(STL, PSOptions{}).Emit(&buf, out, zr); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if n := strings.Count(buf.String(), "facet normal"); n == 0 {
		t.Fatalf("expected at least one facet")
	}
}

func TestJSEmitsParseableLayerArray(t *testing.T) {
	out, zr := onePolyOutput()
	var buf bytes.Buffer
	if err := New(JS, PSOptions{}).Emit(&buf, out, zr); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	s := buf.String()
	if !strings.HasPrefix(s, "const layers = [") || !strings.Contains(s, "\"z\": 5") {
		t.Fatalf("got %q", s)
	}
}

func TestSCADEmitsExtrudedPolygon(t *testing.T) {
	out, zr := onePolyOutput()
	var buf bytes.Buffer
	if err := New(SCAD, PSOptions{}).Emit(&buf, out, zr); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	s := buf.String()
	if !strings.Contains(s, "linear_extrude") || !strings.Contains(s, "polygon(points=") {
		t.Fatalf("got %q", s)
	}
}

func TestPSEmitsOnePageWithStroke(t *testing.T) {
	out, zr := onePolyOutput()
	var buf bytes.Buffer
	if err := New(PS, PSOptions{Scale: 1}).Emit(&buf, out, zr); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	s := buf.String()
	if !strings.HasPrefix(s, "%!PS-Adobe-3.0") || !strings.Contains(s, "showpage") || !strings.Contains(s, "stroke") {
		t.Fatalf("got %q", s)
	}
}
