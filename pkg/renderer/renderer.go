// Package renderer assigns overlap-free nodes to layers and derives the
// direction-dependent geometry of each label box and its connector.
//
// The renderer runs after (and, for a first layering estimate, before) the
// force resolver. It never moves nodes along the time axis; it only decides
// how far from the axis each label sits (its layer) and computes the anchor
// coordinates and connector vector that the sinks draw from.
package renderer

import (
	"fmt"
	"sort"

	"github.com/pklampros/timelab/pkg/force"
)

// Options tunes the layer geometry.
type Options struct {
	// CrossExtent is the thickness of one layer measured away from the axis.
	// Labels in layer L are offset by LayerGap + L*(CrossExtent+LayerGap).
	CrossExtent float64

	// LayerGap is the gap between the axis and layer 0 and between
	// consecutive layers.
	LayerGap float64

	// Direction is the side of the axis the labels grow towards.
	Direction Direction
}

// Renderer lays out resolved nodes into layers on one side of the axis.
type Renderer struct {
	opts Options
}

// New creates a renderer with the given options.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Options returns the renderer's configuration.
func (r *Renderer) Options() Options {
	return r.opts
}

// Layout assigns each node a layer and fills in its anchor coordinates and
// connector vector. Nodes are modified in place and returned.
//
// Layer assignment is greedy interval partitioning: nodes are visited in
// order of their occupied interval start, and each takes the lowest layer
// whose previously placed node does not overlap it. Two nodes that fit side
// by side therefore share layer 0.
func (r *Renderer) Layout(nodes []*force.Node) []*force.Node {
	r.assignLayers(nodes)
	for _, n := range nodes {
		r.place(n)
	}
	return nodes
}

func (r *Renderer) assignLayers(nodes []*force.Node) {
	order := make([]*force.Node, len(nodes))
	copy(order, nodes)
	sort.SliceStable(order, func(i, j int) bool {
		li, _ := order[i].Interval()
		lj, _ := order[j].Interval()
		return li < lj
	})

	// layerEnds[L] is the end of the last interval placed on layer L.
	var layerEnds []float64
	for _, n := range order {
		lo, hi := n.Interval()
		placed := false
		for l, end := range layerEnds {
			if lo >= end {
				n.Layer = l
				layerEnds[l] = hi
				placed = true
				break
			}
		}
		if !placed {
			n.Layer = len(layerEnds)
			layerEnds = append(layerEnds, hi)
		}
	}
}

// place computes the node's anchor point and connector vector. (X, Y) is the
// direction-dependent anchor the node position formulas start from; (Dx, Dy)
// encodes the connector between the label box and its axis dot. An
// undisplaced node always has a zero along-axis connector component.
func (r *Renderer) place(n *force.Node) {
	off := r.opts.LayerGap + float64(n.Layer)*(r.opts.CrossExtent+r.opts.LayerGap)
	shift := n.CurrentPos - n.IdealPos

	switch r.opts.Direction {
	case DirRight:
		n.X = off
		n.Dx = -off
		n.Dy = shift
		n.Y = (n.CurrentPos - n.H/2) + n.Dy/2
	case DirLeft:
		n.X = 0
		n.Dx = -off
		n.Dy = shift
		n.Y = (n.CurrentPos - n.H/2) + n.Dy/2
	case DirDown:
		n.Y = off
		n.Dy = -off
		n.Dx = shift
		n.X = (n.CurrentPos - n.W/2) + n.Dx/2
	case DirUp:
		n.Y = -(off + n.H)
		n.Dy = -n.Y
		n.Dx = shift
		n.X = (n.CurrentPos - n.W/2) + n.Dx/2
	default:
		panic(fmt.Sprintf("renderer: invalid direction %d", r.opts.Direction))
	}
}

// LayerCount returns the number of layers used by a laid-out node set.
func LayerCount(nodes []*force.Node) int {
	max := -1
	for _, n := range nodes {
		if n.Layer > max {
			max = n.Layer
		}
	}
	return max + 1
}

// Depth returns the total cross-axis extent occupied by count layers,
// including the gap between the axis and the first layer.
func (r *Renderer) Depth(count int) float64 {
	if count <= 0 {
		return 0
	}
	return float64(count) * (r.opts.CrossExtent + r.opts.LayerGap)
}
