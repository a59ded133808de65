// Package timeline turns time-stamped event records into a collision-free
// label layout along a time axis.
//
// A [Timeline] owns the configuration, sizes one [Item] per input record,
// normalizes the items into a direction-independent frame, derives the time
// scale, and sequences the three layout stages: a first layer pass to
// establish layering, the overlap resolver, and a second layer pass that
// recomputes connector vectors against the resolved positions. The second
// pass is not optional; connector vectors derived from ideal positions point
// at the wrong anchors once labels have been pushed apart.
//
// # Canonical frame
//
// All geometry code in this package works in a frame where "width" means
// extent along the time axis. For the left and right directions the input
// labels are conceptually rotated into that frame at construction, and the
// node extents are swapped back when handed to the resolver, which dodges
// along its own primary axis. Directions only reappear at final anchor
// placement in [Timeline.NodePos].
package timeline

import (
	"fmt"
	"time"

	"github.com/pklampros/timelab/pkg/errors"
	"github.com/pklampros/timelab/pkg/force"
	"github.com/pklampros/timelab/pkg/renderer"
	"github.com/pklampros/timelab/pkg/scale"
)

// Timeline is the layout orchestrator. Construct with [New]; configuration
// and the derived scale are fixed afterwards. Compute and ForceCompute build
// fresh node sets on every call, so a Timeline is safe for concurrent reads.
type Timeline struct {
	opts  Options
	items []*Item
	scale *scale.TimeScale
}

// Result is the outcome of a full layout run.
type Result struct {
	// Nodes carry resolved positions, layers and connector vectors, in
	// input order.
	Nodes []*force.Node

	// Renderer is the layer renderer used for the final pass; callers can
	// query its layering metadata.
	Renderer *renderer.Renderer

	// Degraded is set when the resolver could not satisfy its position
	// bounds and produced a best-effort placement.
	Degraded bool
}

// New builds a timeline from input records. Each record is sized into an
// Item through the configured accessors, the items are normalized for the
// configured direction, and the time scale is derived. Records without a
// usable time field fail with a MISSING_TIME error; an empty record list
// fails with EMPTY_INPUT.
func New(records []any, opts ...Option) (*Timeline, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch o.Direction {
	case DirRight, DirLeft, DirUp, DirDown:
	default:
		return nil, errors.New(errors.ErrCodeInvalidDirection, "direction value %d is not a valid direction", o.Direction)
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "cannot lay out zero events")
	}

	tl := &Timeline{opts: o}
	for i, rec := range records {
		t, err := o.TimeFn(rec)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMissingTime, err, "event %d", i)
		}
		var width *float64
		if o.WidthFn != nil {
			width = o.WidthFn(rec)
		}
		tl.items = append(tl.items, NewItem(t, o.TextFn(rec), width, rec))
	}

	tl.equalHeights()
	tl.rotateItems()
	if err := tl.initAxis(); err != nil {
		return nil, err
	}
	return tl, nil
}

// equalHeights raises every labeled item to the tallest labeled height so
// labels form aligned rows. Unlabeled marks keep their compact box.
func (tl *Timeline) equalHeights() {
	max := 0.0
	for _, it := range tl.items {
		if it.Labeled() && it.Height > max {
			max = it.Height
		}
	}
	if max == 0 {
		return
	}
	for _, it := range tl.items {
		if it.Labeled() {
			it.Height = max
		}
	}
}

// rotateItems swaps labeled items into the canonical frame for vertical-axis
// directions, so that width means extent along the time axis everywhere.
func (tl *Timeline) rotateItems() {
	if !tl.opts.Direction.Vertical() {
		return
	}
	for _, it := range tl.items {
		if it.Labeled() {
			it.Width, it.Height = it.Height, it.Width
		}
	}
}

func (tl *Timeline) initAxis() error {
	var domain [2]time.Time
	nice := false
	if tl.opts.Domain != nil {
		domain = *tl.opts.Domain
	} else {
		ext, err := scale.Extent(tl.items, func(it *Item) time.Time { return it.Time })
		if err != nil {
			return err
		}
		domain = ext
		nice = true
	}

	innerWidth, innerHeight := tl.InnerDims()
	extent := innerWidth
	if tl.opts.Direction.Vertical() {
		extent = innerHeight
	}
	tl.scale = scale.New(domain, [2]float64{0, extent})
	if nice {
		tl.scale.Nice()
	}
	return nil
}

// Items returns the sized, normalized items in input order.
func (tl *Timeline) Items() []*Item {
	return tl.items
}

// Options returns a copy of the timeline's configuration.
func (tl *Timeline) Options() Options {
	return tl.opts
}

// Scale returns the derived time scale.
func (tl *Timeline) Scale() *scale.TimeScale {
	return tl.scale
}

// Direction returns the configured layout direction.
func (tl *Timeline) Direction() Direction {
	return tl.opts.Direction
}

// InnerDims returns the canvas extent with margins subtracted.
func (tl *Timeline) InnerDims() (width, height float64) {
	m := tl.opts.Margin
	return tl.opts.InitialWidth - m.Left - m.Right,
		tl.opts.InitialHeight - m.Top - m.Bottom
}

// Nodes materializes one fresh layout node per item: projected ideal
// position, padded box extents, and the dodge-axis width the resolver needs.
// For vertical-axis directions the padded extents are swapped so the
// resolver sees the along-axis extent as the node width.
func (tl *Timeline) Nodes() []*force.Node {
	pad := tl.opts.LabelPadding
	nodes := make([]*force.Node, len(tl.items))
	for i, it := range tl.items {
		n := force.NewNode(tl.scale.Project(it.Time), it.Width, it)
		n.W = it.Width + pad.Left + pad.Right
		n.H = it.Height + pad.Top + pad.Bottom
		if tl.opts.Direction.Vertical() {
			n.W, n.H = n.H, n.W
			n.Width = n.H
		} else {
			n.Width = n.W
		}
		nodes[i] = n
	}
	return nodes
}

// Compute runs the full layout pipeline: a preliminary layer pass, the
// overlap resolver, then a final layer pass over the resolved positions.
func (tl *Timeline) Compute() *Result {
	nodes := tl.Nodes()

	rend := renderer.New(renderer.Options{
		CrossExtent: tl.crossExtent(nodes),
		LayerGap:    tl.opts.LayerGap,
		Direction:   tl.opts.Direction,
	})
	rend.Layout(nodes)

	f := force.New(tl.opts.Force)
	f.SetNodes(nodes)
	resolved := f.Compute()
	rend.Layout(resolved)

	return &Result{Nodes: resolved, Renderer: rend, Degraded: f.Degraded()}
}

// ForceCompute materializes nodes and runs only the overlap resolver,
// returning resolved positions without connector geometry.
func (tl *Timeline) ForceCompute() []*force.Node {
	f := force.New(tl.opts.Force)
	f.SetNodes(tl.Nodes())
	return f.Compute()
}

// crossExtent is the layer thickness shared by all nodes: the largest
// cross-axis extent in the set.
func (tl *Timeline) crossExtent(nodes []*force.Node) float64 {
	max := 0.0
	for _, n := range nodes {
		ext := n.H
		if tl.opts.Direction.Vertical() {
			ext = n.W
		}
		if ext > max {
			max = ext
		}
	}
	return max
}

// NodePos returns the top-left corner of a laid-out node's label box.
func (tl *Timeline) NodePos(n *force.Node) (x, y float64) {
	switch tl.opts.Direction {
	case DirRight:
		return n.X, n.Y - n.Dy/2
	case DirLeft:
		return n.X - n.W + n.Dx, n.Y - n.Dy/2
	case DirUp, DirDown:
		return n.X - n.Dx/2, n.Y
	default:
		panic(fmt.Sprintf("timeline: invalid direction %d", tl.opts.Direction))
	}
}

// ===== Style channels =====

// Each channel resolves through the same Paint dispatch: cyclic palettes by
// item index, functors on the item payload, constants otherwise.

// DotColor resolves the axis dot color for the item at index i.
func (tl *Timeline) DotColor(data any, i int) string {
	return tl.opts.DotColor.Resolve(data, i)
}

// LinkColor resolves the connector color for the item at index i.
func (tl *Timeline) LinkColor(data any, i int) string {
	return tl.opts.LinkColor.Resolve(data, i)
}

// LabelBgColor resolves the label background color for the item at index i.
func (tl *Timeline) LabelBgColor(data any, i int) string {
	return tl.opts.LabelBgColor.Resolve(data, i)
}

// LabelTextColor resolves the label text color for the item at index i.
func (tl *Timeline) LabelTextColor(data any, i int) string {
	return tl.opts.LabelTextColor.Resolve(data, i)
}

// BorderColor resolves the label border color for the item at index i.
func (tl *Timeline) BorderColor(data any, i int) string {
	return tl.opts.BorderColor.Resolve(data, i)
}
