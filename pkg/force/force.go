// Package force removes overlap between boxes along a single axis while
// keeping each box as close as possible to its ideal position.
//
// Despite the name (kept for symmetry with force-directed label placement
// libraries), the resolver is not a physical simulation. It runs a
// deterministic cluster-merge sweep: nodes are sorted by ideal position,
// chains of mutually overlapping nodes are merged into clusters, and each
// cluster is placed so that the sum of squared displacements of its members
// is minimal. Nodes that conflict with nobody are left exactly at their
// ideal position.
package force

import (
	"sort"
)

// Options tunes the resolver.
type Options struct {
	// NodeSpacing is the minimum gap kept between adjacent resolved nodes.
	NodeSpacing float64

	// MinPos and MaxPos optionally bound the resolved span. When the total
	// width of a cluster exceeds the available span, the cluster is pinned
	// to MinPos and the result is flagged as degraded.
	MinPos *float64
	MaxPos *float64
}

// Force resolves overlap between a set of nodes along their primary axis.
// Use SetNodes, then Compute, then Nodes to read the resolved set.
type Force struct {
	opts     Options
	nodes    []*Node
	degraded bool
}

// New creates a resolver with the given options.
func New(opts Options) *Force {
	return &Force{opts: opts}
}

// SetNodes supplies the node set to resolve. The slice is not retained;
// Compute operates on clones so callers keep their originals untouched.
func (f *Force) SetNodes(nodes []*Node) {
	f.nodes = nodes
}

// Nodes returns the most recently resolved node set, or the input set if
// Compute has not run yet.
func (f *Force) Nodes() []*Node {
	return f.nodes
}

// Degraded reports whether the last Compute could not satisfy the configured
// position bounds and produced a best-effort result.
func (f *Force) Degraded() bool {
	return f.degraded
}

// Compute resolves overlap and returns the resolved nodes. The input nodes
// are cloned; the returned slice preserves the input order. Guarantees:
//
//   - no two resolved intervals overlap (with NodeSpacing between them)
//   - the total squared displacement from ideal positions is minimal
//   - nodes without conflicting neighbors stay at their ideal position
//
// The sweep is finite and order-independent for a fixed input, so repeated
// calls produce identical results.
func (f *Force) Compute() []*Node {
	f.degraded = false

	resolved := make([]*Node, len(f.nodes))
	for i, n := range f.nodes {
		resolved[i] = n.Clone()
		resolved[i].CurrentPos = n.IdealPos
	}
	if len(resolved) < 2 {
		f.nodes = resolved
		return resolved
	}

	order := make([]*Node, len(resolved))
	copy(order, resolved)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].IdealPos < order[j].IdealPos
	})

	var stack []*cluster
	for _, n := range order {
		c := newCluster(n)
		stack = append(stack, c)
		for len(stack) >= 2 {
			prev, cur := stack[len(stack)-2], stack[len(stack)-1]
			if prev.end(f.opts)+f.opts.NodeSpacing <= cur.start(f.opts) {
				break
			}
			prev.absorb(cur, f.opts.NodeSpacing)
			stack = stack[:len(stack)-1]
		}
	}

	for _, c := range stack {
		if f.opts.MinPos != nil && f.opts.MaxPos != nil && c.width > *f.opts.MaxPos-*f.opts.MinPos {
			f.degraded = true
		}
		c.place(f.opts)
	}

	f.nodes = resolved
	return resolved
}

// cluster is a run of nodes that must move together. Node centers sit at
// start + offs[i]; the optimal start minimizes the sum of squared
// displacements, which works out to mean(ideal_i - offs_i).
type cluster struct {
	nodes []*Node
	offs  []float64
	width float64
	sum   float64 // sum of (ideal_i - offs_i)
}

func newCluster(n *Node) *cluster {
	return &cluster{
		nodes: []*Node{n},
		offs:  []float64{n.Width / 2},
		width: n.Width,
		sum:   n.IdealPos - n.Width/2,
	}
}

// absorb appends other's nodes to c, shifting their offsets past c's span.
func (c *cluster) absorb(other *cluster, spacing float64) {
	shift := c.width + spacing
	for i, n := range other.nodes {
		off := other.offs[i] + shift
		c.nodes = append(c.nodes, n)
		c.offs = append(c.offs, off)
		c.sum += n.IdealPos - off
	}
	c.width += spacing + other.width
}

// start returns the optimal (bound-clamped) start coordinate of the cluster.
func (c *cluster) start(opts Options) float64 {
	s := c.sum / float64(len(c.nodes))
	if opts.MaxPos != nil && s+c.width > *opts.MaxPos {
		s = *opts.MaxPos - c.width
	}
	if opts.MinPos != nil && s < *opts.MinPos {
		s = *opts.MinPos
	}
	return s
}

func (c *cluster) end(opts Options) float64 {
	return c.start(opts) + c.width
}

// place writes final positions into the cluster's nodes.
func (c *cluster) place(opts Options) {
	s := c.start(opts)
	for i, n := range c.nodes {
		n.CurrentPos = s + c.offs[i]
	}
}
