// Package slicer builds the CSG-2 skeleton from a CSG-3 tree (spec
// §4.3/§2 row E) and, per layer, fills in each leaf's raw cross-section
// at the plane the layer driver asks for.
package slicer

import (
	"gocsg/internal/csg2"
	"gocsg/internal/csg3"
	"gocsg/internal/diag"
	"gocsg/internal/logging"
)

// BuildSkeleton walks tree once and returns a CSG-2 tree with the same
// boolean shape, one Leaf per 3D leaf (transform-wrapped or not), and
// every Leaf's Cells array sized to layerCount but empty (spec §3: "a
// skeleton ... at each 2D-relevant subtree root, an indexed array of
// layer cells").
func BuildSkeleton(tree *csg3.Tree, layerCount int) *csg2.Tree {
	out := &csg2.Tree{NumLayers: layerCount}
	if tree == nil || tree.Root == nil {
		return out
	}
	out.Root = build(tree.Root, layerCount, identityZ, nil)
	out.AnyShowOnly = tree.AnyShowOnly
	logging.Logger(logging.Slic).Debugf("built skeleton: %d layers, show-only=%v", layerCount, out.AnyShowOnly)
	return out
}

func build(n csg3.Node, layerCount int, z zInvert, xy xyChain) csg2.Node {
	switch v := n.(type) {
	case *csg3.Add:
		return &csg2.Add{Graphics: v.GC(), Children: buildChildren(v.Children, layerCount, z, xy)}
	case *csg3.Sub:
		return &csg2.Sub{Graphics: v.GC(), Children: buildChildren(v.Children, layerCount, z, xy)}
	case *csg3.Intersect:
		return &csg2.Intersect{Graphics: v.GC(), Children: buildChildren(v.Children, layerCount, z, xy)}
	case *csg3.Translate:
		return build(v.Child, layerCount, z.translate(v.Offset.Z), xy.withTranslate(v.Offset.X, v.Offset.Y))
	case *csg3.Scale:
		return build(v.Child, layerCount, z.scale(v.Factor.Z), xy.withScale(v.Factor.X, v.Factor.Y))
	case *csg3.Rotate:
		return build(v.Child, layerCount, z, xy.withRotateDegrees(v.DegreesZ))
	case *csg3.Sphere:
		return csg2.NewLeaf(v.Loc(), v.GC(), layerCount, func(worldZ float64) csg3.PolygonSet {
			return sliceSphere(v.Loc(), v.Radius, v.Facets, z(worldZ), xy)
		})
	case *csg3.Cylinder:
		return csg2.NewLeaf(v.Loc(), v.GC(), layerCount, func(worldZ float64) csg3.PolygonSet {
			return sliceCylinder(v.Loc(), v.R1, v.R2, v.Height, v.Facets, z(worldZ), xy)
		})
	case *csg3.Polyhedron:
		points, faces := v.Points, v.Faces
		return csg2.NewLeaf(v.Loc(), v.GC(), layerCount, func(worldZ float64) csg3.PolygonSet {
			return slicePolyhedron(v.Loc(), points, faces, z(worldZ), xy)
		})
	case *csg3.Embed2D:
		body := v.Body
		return csg2.NewLeaf(v.Loc(), v.GC(), layerCount, func(worldZ float64) csg3.PolygonSet {
			return sliceEmbed2D(v.Loc(), v.Height, body, z(worldZ), xy)
		})
	default:
		return csg2.NewLeaf(n.Loc(), n.GC(), layerCount, func(float64) csg3.PolygonSet { return nil })
	}
}

func buildChildren(children []csg3.Node, layerCount int, z zInvert, xy xyChain) []csg2.Node {
	out := make([]csg2.Node, len(children))
	for i, c := range children {
		out[i] = build(c, layerCount, z, xy)
	}
	return out
}

// PopulateLayer fills in layer i's cell on every Leaf reachable from
// tree.Root (spec §4.4 pass 1 step 2: "Ask the slicer to populate layer
// i of the working 2D tree (polygon rings only)"). zAt is the world Z
// plane for layer i.
func PopulateLayer(tree *csg2.Tree, i int, zAt float64) error {
	if tree == nil || tree.Root == nil {
		return nil
	}
	return populate(tree.Root, i, zAt)
}

func populate(n csg2.Node, i int, zAt float64) error {
	switch v := n.(type) {
	case *csg2.Leaf:
		if i < 0 || i >= len(v.Cells) {
			return diag.New(diag.Slice, v.Loc(), "layer index %d out of range", i)
		}
		v.Cells[i] = csg2.NewCell(v.SliceAt(zAt))
		return nil
	default:
		for _, c := range csg2.Children(n) {
			if err := populate(c, i, zAt); err != nil {
				return err
			}
		}
		return nil
	}
}
