package sink

import (
	"encoding/json"
	"time"

	"github.com/pklampros/timelab/pkg/timeline"
)

// Layout is the JSON interchange form of a computed layout.
type Layout struct {
	Direction string       `json:"direction"`
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	Domain    [2]time.Time `json:"domain"`
	Degraded  bool         `json:"degraded,omitempty"`
	Nodes     []LayoutNode `json:"nodes"`
}

// LayoutNode is one label's resolved geometry.
type LayoutNode struct {
	Time       time.Time `json:"time"`
	Text       string    `json:"text,omitempty"`
	IdealPos   float64   `json:"ideal_pos"`
	CurrentPos float64   `json:"current_pos"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	W          float64   `json:"w"`
	H          float64   `json:"h"`
	Dx         float64   `json:"dx"`
	Dy         float64   `json:"dy"`
	Layer      int       `json:"layer"`

	DotColor       string `json:"dot_color,omitempty"`
	LinkColor      string `json:"link_color,omitempty"`
	LabelBgColor   string `json:"label_bg_color,omitempty"`
	LabelTextColor string `json:"label_text_color,omitempty"`
}

// RenderJSON serializes a computed layout to indented JSON. Box coordinates
// are the label top-left in the layout frame, the same frame the SVG sink
// draws in.
func RenderJSON(tl *timeline.Timeline, res *timeline.Result) ([]byte, error) {
	o := tl.Options()
	out := Layout{
		Direction: tl.Direction().String(),
		Width:     o.InitialWidth,
		Height:    o.InitialHeight,
		Domain:    tl.Scale().GetDomain(),
		Degraded:  res.Degraded,
		Nodes:     make([]LayoutNode, len(res.Nodes)),
	}

	for i, n := range res.Nodes {
		it := itemOf(n)
		x, y := tl.NodePos(n)
		out.Nodes[i] = LayoutNode{
			Time:           it.Time,
			Text:           it.Text,
			IdealPos:       n.IdealPos,
			CurrentPos:     n.CurrentPos,
			X:              x,
			Y:              y,
			W:              n.W,
			H:              n.H,
			Dx:             n.Dx,
			Dy:             n.Dy,
			Layer:          n.Layer,
			DotColor:       tl.DotColor(it.Data, i),
			LinkColor:      tl.LinkColor(it.Data, i),
			LabelBgColor:   tl.LabelBgColor(it.Data, i),
			LabelTextColor: tl.LabelTextColor(it.Data, i),
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
