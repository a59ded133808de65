package timeline

import (
	"fmt"
	"time"
)

// Label sizing heuristics. Text widths are estimated from character count;
// unlabeled events render as small marks and get a compact default box.
const (
	DefaultWidth        = 50.0
	TextWidthMultiplier = 2.0
	TextHeight          = 20.0
	MarkHeight          = 13.0
)

// Item is one input event, sized and ready for layout. Items are built once
// at timeline construction and not modified afterwards except by the
// direction normalization passes.
type Item struct {
	Time   time.Time
	Text   string
	Width  float64
	Height float64

	// Data is the original input record, carried for style and text
	// accessors and for downstream rendering.
	Data any
}

// NewItem sizes an item from its text and optional explicit width. Explicit
// widths are honored as-is; otherwise labeled items derive their width from
// the text length and unlabeled items fall back to the default mark box.
func NewItem(t time.Time, text string, width *float64, data any) *Item {
	it := &Item{Time: t, Text: text, Data: data}
	switch {
	case text != "":
		it.Height = TextHeight
		if width != nil {
			it.Width = *width
		} else {
			it.Width = float64(len(text)) * TextWidthMultiplier
		}
	default:
		it.Height = MarkHeight
		if width != nil {
			it.Width = *width
		} else {
			it.Width = DefaultWidth
		}
	}
	return it
}

// Labeled reports whether the item carries text.
func (it *Item) Labeled() bool {
	return it.Text != ""
}

func (it *Item) String() string {
	return fmt.Sprintf("Item(time=%s, text=%q, width=%g, height=%g)",
		it.Time.Format(time.RFC3339), it.Text, it.Width, it.Height)
}
