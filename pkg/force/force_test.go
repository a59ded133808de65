package force

import (
	"math"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

// checkNoOverlap fails the test if any two resolved intervals intersect.
func checkNoOverlap(t *testing.T, nodes []*Node, spacing float64) {
	t.Helper()
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			if a.CurrentPos > b.CurrentPos {
				a, b = b, a
			}
			_, aHi := a.Interval()
			bLo, _ := b.Interval()
			if aHi+spacing > bLo+1e-9 {
				t.Errorf("nodes %d and %d overlap: [%v] vs [%v]", i, j, aHi, bLo)
			}
		}
	}
}

func TestComputeLeavesConflictFreeNodesAlone(t *testing.T) {
	f := New(Options{})
	f.SetNodes([]*Node{
		NewNode(0, 10, nil),
		NewNode(100, 10, nil),
		NewNode(200, 10, nil),
	})

	resolved := f.Compute()
	for i, n := range resolved {
		if n.Displacement() != 0 {
			t.Errorf("node %d displaced by %v, want 0", i, n.Displacement())
		}
	}
}

func TestComputeSeparatesCoincidentNodes(t *testing.T) {
	f := New(Options{})
	f.SetNodes([]*Node{
		NewNode(300, 50, nil),
		NewNode(300, 50, nil),
	})

	resolved := f.Compute()
	checkNoOverlap(t, resolved, 0)

	gap := math.Abs(resolved[1].CurrentPos - resolved[0].CurrentPos)
	if gap < 50 {
		t.Errorf("separation = %v, want >= 50", gap)
	}
	// Displacement is symmetric about the shared ideal position.
	mid := (resolved[0].CurrentPos + resolved[1].CurrentPos) / 2
	if math.Abs(mid-300) > 1e-9 {
		t.Errorf("cluster midpoint = %v, want 300", mid)
	}
	if math.Abs(resolved[0].Displacement()+resolved[1].Displacement()) > 1e-9 {
		t.Error("displacements should cancel for a symmetric pair")
	}
}

func TestComputeChainOfOverlaps(t *testing.T) {
	// Three nodes of width 40 at positions 0, 10, 20 must spread out as one
	// cluster centered on the mean ideal position.
	f := New(Options{})
	f.SetNodes([]*Node{
		NewNode(0, 40, nil),
		NewNode(10, 40, nil),
		NewNode(20, 40, nil),
	})

	resolved := f.Compute()
	checkNoOverlap(t, resolved, 0)

	// Optimal placement centers the chain on mean(0,10,20) = 10.
	if math.Abs(resolved[1].CurrentPos-10) > 1e-9 {
		t.Errorf("middle node at %v, want 10", resolved[1].CurrentPos)
	}
	if math.Abs(resolved[0].CurrentPos-(-30)) > 1e-9 {
		t.Errorf("first node at %v, want -30", resolved[0].CurrentPos)
	}
	if math.Abs(resolved[2].CurrentPos-50) > 1e-9 {
		t.Errorf("last node at %v, want 50", resolved[2].CurrentPos)
	}
}

func TestComputePreservesInputOrderAndCount(t *testing.T) {
	f := New(Options{})
	nodes := []*Node{
		NewNode(50, 30, "b"),
		NewNode(0, 30, "a"),
		NewNode(55, 30, "c"),
	}
	f.SetNodes(nodes)

	resolved := f.Compute()
	if len(resolved) != 3 {
		t.Fatalf("len = %d, want 3", len(resolved))
	}
	for i, want := range []string{"b", "a", "c"} {
		if resolved[i].Data != want {
			t.Errorf("resolved[%d].Data = %v, want %v", i, resolved[i].Data, want)
		}
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	orig := NewNode(300, 50, nil)
	other := NewNode(300, 50, nil)
	f := New(Options{})
	f.SetNodes([]*Node{orig, other})
	f.Compute()

	if orig.CurrentPos != 300 || other.CurrentPos != 300 {
		t.Error("Compute should operate on clones, not the caller's nodes")
	}
}

func TestComputeRespectsSpacing(t *testing.T) {
	f := New(Options{NodeSpacing: 5})
	f.SetNodes([]*Node{
		NewNode(100, 20, nil),
		NewNode(100, 20, nil),
	})

	resolved := f.Compute()
	gap := resolved[1].CurrentPos - resolved[0].CurrentPos
	if math.Abs(math.Abs(gap)-25) > 1e-9 {
		t.Errorf("center distance = %v, want 25 (width 20 + spacing 5)", gap)
	}
}

func TestComputeBounds(t *testing.T) {
	f := New(Options{MinPos: floatPtr(0), MaxPos: floatPtr(100)})
	f.SetNodes([]*Node{
		NewNode(5, 30, nil), // ideal interval [-10, 20] sticks out below 0
	})

	resolved := f.Compute()
	lo, _ := resolved[0].Interval()
	if lo < 0 {
		t.Errorf("node start %v violates MinPos 0", lo)
	}
	if f.Degraded() {
		t.Error("fitting input should not be degraded")
	}
}

func TestComputeDegradedWhenSpanTooSmall(t *testing.T) {
	f := New(Options{MinPos: floatPtr(0), MaxPos: floatPtr(50)})
	f.SetNodes([]*Node{
		NewNode(10, 40, nil),
		NewNode(20, 40, nil),
	})

	f.Compute()
	if !f.Degraded() {
		t.Error("cluster wider than the span should flag a degraded result")
	}
}

func TestComputeDeterministic(t *testing.T) {
	build := func() []*Node {
		return []*Node{
			NewNode(10, 25, nil),
			NewNode(12, 25, nil),
			NewNode(14, 25, nil),
			NewNode(90, 25, nil),
		}
	}

	f1 := New(Options{})
	f1.SetNodes(build())
	r1 := f1.Compute()

	f2 := New(Options{})
	f2.SetNodes(build())
	r2 := f2.Compute()

	for i := range r1 {
		if r1[i].CurrentPos != r2[i].CurrentPos {
			t.Errorf("node %d: %v vs %v across runs", i, r1[i].CurrentPos, r2[i].CurrentPos)
		}
	}
}
