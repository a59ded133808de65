package force

// Node is a box placed along the dodge axis. It is produced from one timeline
// item and consumed by both the resolver and the layer renderer.
//
// Before layout, only IdealPos, CurrentPos, Width, W and H are meaningful.
// After layout, X, Y, Dx, Dy and Layer carry the resolved geometry: X/Y the
// direction-dependent anchor coordinates, (Dx, Dy) the connector vector from
// the label box back to its axis anchor, and Layer the row/column bucket
// assigned by the renderer.
type Node struct {
	IdealPos   float64 // projected time position along the axis
	CurrentPos float64 // resolved position; equals IdealPos before Compute

	Width float64 // extent along the dodge axis, used for overlap tests
	W     float64 // padded box width in the canonical frame
	H     float64 // padded box height in the canonical frame

	X     float64
	Y     float64
	Dx    float64
	Dy    float64
	Layer int

	Data any // the item this node was built from
}

// NewNode creates a node at the given ideal position. CurrentPos starts at
// the ideal position; Width doubles as the initial dodge extent.
func NewNode(idealPos, width float64, data any) *Node {
	return &Node{
		IdealPos:   idealPos,
		CurrentPos: idealPos,
		Width:      width,
		Data:       data,
	}
}

// Clone returns a shallow copy of the node. Data is shared by reference.
func (n *Node) Clone() *Node {
	c := *n
	return &c
}

// Interval returns the occupied span [lo, hi] along the dodge axis at the
// node's current position.
func (n *Node) Interval() (lo, hi float64) {
	half := n.Width / 2
	return n.CurrentPos - half, n.CurrentPos + half
}

// Overlaps reports whether the node's interval intersects other's, keeping at
// least spacing between them.
func (n *Node) Overlaps(other *Node, spacing float64) bool {
	_, hi := n.Interval()
	lo, _ := other.Interval()
	return hi+spacing > lo
}

// Displacement returns the signed distance the node has moved from its ideal
// position.
func (n *Node) Displacement() float64 {
	return n.CurrentPos - n.IdealPos
}
