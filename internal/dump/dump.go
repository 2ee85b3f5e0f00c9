// Package dump renders the intermediate trees as indented text for the
// `--dump-csg3`/`--dump-csg2` inspection flags (spec §6). It is a
// debugging aid, not a re-parseable serialization.
package dump

import (
	"fmt"
	"strings"

	"gocsg/internal/csg2"
	"gocsg/internal/csg3"
)

// CSG3 renders t's boolean/leaf structure.
func CSG3(t *csg3.Tree) string {
	var b strings.Builder
	if t == nil || t.Root == nil {
		b.WriteString("(empty)\n")
		return b.String()
	}
	writeNode3(&b, t.Root, 0)
	return b.String()
}

func writeNode3(b *strings.Builder, n csg3.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch t := n.(type) {
	case *csg3.Sphere:
		fmt.Fprintf(b, "%ssphere(r=%g)\n", indent, t.Radius)
	case *csg3.Cylinder:
		fmt.Fprintf(b, "%scylinder(r1=%g, r2=%g, h=%g)\n", indent, t.R1, t.R2, t.Height)
	case *csg3.Polyhedron:
		fmt.Fprintf(b, "%spolyhedron(%d points, %d faces)\n", indent, len(t.Points), len(t.Faces))
	case *csg3.Embed2D:
		fmt.Fprintf(b, "%slinear_extrude(h=%g)\n", indent, t.Height)
	case *csg3.Add:
		fmt.Fprintf(b, "%sunion\n", indent)
		for _, c := range t.Children {
			writeNode3(b, c, depth+1)
		}
	case *csg3.Sub:
		fmt.Fprintf(b, "%sdifference\n", indent)
		for _, c := range t.Children {
			writeNode3(b, c, depth+1)
		}
	case *csg3.Intersect:
		fmt.Fprintf(b, "%sintersection\n", indent)
		for _, c := range t.Children {
			writeNode3(b, c, depth+1)
		}
	case *csg3.Translate:
		fmt.Fprintf(b, "%stranslate(%v)\n", indent, t.Offset)
		writeNode3(b, t.Child, depth+1)
	case *csg3.Rotate:
		fmt.Fprintf(b, "%srotate(z=%g)\n", indent, t.DegreesZ)
		writeNode3(b, t.Child, depth+1)
	case *csg3.Scale:
		fmt.Fprintf(b, "%sscale(%v)\n", indent, t.Factor)
		writeNode3(b, t.Child, depth+1)
	default:
		fmt.Fprintf(b, "%s<unknown node>\n", indent)
	}
}

// CSG2 renders the sliced skeleton's boolean structure (leaves show only
// their location, since their per-layer cells aren't populated yet at
// dump time).
func CSG2(t *csg2.Tree) string {
	var b strings.Builder
	if t == nil || t.Root == nil {
		b.WriteString("(empty)\n")
		return b.String()
	}
	writeNode2(&b, t.Root, 0)
	return b.String()
}

func writeNode2(b *strings.Builder, n csg2.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch t := n.(type) {
	case *csg2.Leaf:
		fmt.Fprintf(b, "%sleaf(%d layers)\n", indent, len(t.Cells))
	case *csg2.Add:
		fmt.Fprintf(b, "%sunion\n", indent)
		for _, c := range t.Children {
			writeNode2(b, c, depth+1)
		}
	case *csg2.Sub:
		fmt.Fprintf(b, "%sdifference\n", indent)
		for _, c := range t.Children {
			writeNode2(b, c, depth+1)
		}
	case *csg2.Intersect:
		fmt.Fprintf(b, "%sintersection\n", indent)
		for _, c := range t.Children {
			writeNode2(b, c, depth+1)
		}
	default:
		fmt.Fprintf(b, "%s<unknown node>\n", indent)
	}
}
