package sink

import (
	"time"

	"github.com/pklampros/timelab/pkg/force"
	"github.com/pklampros/timelab/pkg/timeline"
)

// point is a coordinate in the layout frame (origin on the axis).
type point struct {
	X, Y float64
}

// origin returns the translation from canvas coordinates to the layout
// frame. The axis runs through the frame origin; directions whose labels
// grow towards negative coordinates anchor the origin on the far canvas
// edge.
func origin(tl *timeline.Timeline) point {
	m := tl.Options().Margin
	w, h := tl.InnerDims()
	switch tl.Direction() {
	case timeline.DirLeft:
		return point{X: m.Left + w, Y: m.Top}
	case timeline.DirUp:
		return point{X: m.Left, Y: m.Top + h}
	default: // right and down grow from the near edge
		return point{X: m.Left, Y: m.Top}
	}
}

// dotPoint returns the axis anchor of a node in the layout frame.
func dotPoint(tl *timeline.Timeline, n *force.Node) point {
	if tl.Direction().Vertical() {
		return point{X: 0, Y: n.IdealPos}
	}
	return point{X: n.IdealPos, Y: 0}
}

// boxPoint returns the top-left corner of the node's label box in the
// layout frame. The box is always n.W wide and n.H tall on screen.
func boxPoint(tl *timeline.Timeline, n *force.Node) point {
	x, y := tl.NodePos(n)
	return point{X: x, Y: y}
}

// linkPoint returns where the connector meets the label box: the edge
// center facing the axis.
func linkPoint(tl *timeline.Timeline, n *force.Node) point {
	b := boxPoint(tl, n)
	switch tl.Direction() {
	case timeline.DirRight:
		return point{X: b.X, Y: b.Y + n.H/2}
	case timeline.DirLeft:
		return point{X: b.X + n.W, Y: b.Y + n.H/2}
	case timeline.DirUp:
		return point{X: b.X + n.W/2, Y: b.Y + n.H}
	default: // down
		return point{X: b.X + n.W/2, Y: b.Y}
	}
}

// axisLine returns the axis endpoints in the layout frame.
func axisLine(tl *timeline.Timeline) (point, point) {
	r := tl.Scale().GetRange()
	if tl.Direction().Vertical() {
		return point{X: 0, Y: r[0]}, point{X: 0, Y: r[1]}
	}
	return point{X: r[0], Y: 0}, point{X: r[1], Y: 0}
}

// tickPoint returns the axis position of a tick time in the layout frame.
func tickPoint(tl *timeline.Timeline, t time.Time) point {
	pos := tl.Scale().Project(t)
	if tl.Direction().Vertical() {
		return point{X: 0, Y: pos}
	}
	return point{X: pos, Y: 0}
}

// tickFormat picks a label format appropriate for the domain span.
func tickFormat(tl *timeline.Timeline) string {
	d := tl.Scale().GetDomain()
	if d[1].Sub(d[0]) >= 48*time.Hour {
		return "Jan 02"
	}
	return "15:04"
}

// itemOf returns the item a node was built from.
func itemOf(n *force.Node) *timeline.Item {
	it, _ := n.Data.(*timeline.Item)
	return it
}
