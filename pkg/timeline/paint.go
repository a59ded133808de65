package timeline

// Paint is a style channel value: a single constant color, a cyclic palette
// indexed by item position, or a function of the item's payload. The variant
// is fixed when the Paint is constructed, so resolution is a single dispatch
// with no runtime type inspection.
//
// The zero Paint resolves to the empty string; configure channels through
// [Constant], [Cyclic] or [Func].
type Paint struct {
	kind  paintKind
	value string
	list  []string
	fn    func(data any) string
}

type paintKind int

const (
	paintConstant paintKind = iota
	paintCyclic
	paintFunc
)

// Constant returns a Paint that always resolves to value.
func Constant(value string) Paint {
	return Paint{kind: paintConstant, value: value}
}

// Cyclic returns a Paint that resolves to colors[i % len(colors)] for item
// index i. An empty palette resolves to the empty string.
func Cyclic(colors ...string) Paint {
	return Paint{kind: paintCyclic, list: colors}
}

// Func returns a Paint that resolves through fn on the item's payload.
func Func(fn func(data any) string) Paint {
	return Paint{kind: paintFunc, fn: fn}
}

// Resolve returns the channel's color for the item with payload data at
// index i. Cyclic palettes take priority over the functor path, matching the
// documented list-first resolution order.
func (p Paint) Resolve(data any, i int) string {
	switch p.kind {
	case paintCyclic:
		if len(p.list) == 0 {
			return ""
		}
		return p.list[i%len(p.list)]
	case paintFunc:
		if p.fn == nil {
			return ""
		}
		return p.fn(data)
	default:
		return p.value
	}
}
