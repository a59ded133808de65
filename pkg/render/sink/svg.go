package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/pklampros/timelab/pkg/timeline"
)

// SVGOption adjusts SVG emission.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	fontFamily string
	fontSize   float64
	tickCount  int
	tickLength float64
}

// WithBackground fills the canvas with a solid color.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithFont sets the label font family and size.
func WithFont(family string, size float64) SVGOption {
	return func(r *svgRenderer) { r.fontFamily, r.fontSize = family, size }
}

// WithTickCount sets the number of axis ticks.
func WithTickCount(n int) SVGOption {
	return func(r *svgRenderer) { r.tickCount = n }
}

// RenderSVG serializes a computed layout to a self-contained SVG document.
func RenderSVG(tl *timeline.Timeline, res *timeline.Result, opts ...SVGOption) []byte {
	r := svgRenderer{
		fontFamily: "sans-serif",
		fontSize:   10,
		tickCount:  6,
		tickLength: 5,
	}
	for _, opt := range opts {
		opt(&r)
	}

	o := tl.Options()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		o.InitialWidth, o.InitialHeight, o.InitialWidth, o.InitialHeight)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill=%q/>`+"\n", r.background)
	}

	og := origin(tl)
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f,%.1f)">`+"\n", og.X, og.Y)

	r.renderAxis(&buf, tl)
	if o.ShowTicks {
		r.renderTicks(&buf, tl)
	}
	r.renderLinks(&buf, tl, res)
	r.renderDots(&buf, tl, res)
	r.renderLabels(&buf, tl, res)

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderAxis(buf *bytes.Buffer, tl *timeline.Timeline) {
	a, b := axisLine(tl)
	fmt.Fprintf(buf, `    <line class="axis" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#222"/>`+"\n",
		a.X, a.Y, b.X, b.Y)
}

func (r *svgRenderer) renderTicks(buf *bytes.Buffer, tl *timeline.Timeline) {
	format := tickFormat(tl)
	for _, t := range tl.Scale().Ticks(r.tickCount) {
		p := tickPoint(tl, t)
		label := t.Format(format)
		if tl.Direction().Vertical() {
			fmt.Fprintf(buf, `    <line class="tick" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#222"/>`+"\n",
				p.X-r.tickLength, p.Y, p.X+r.tickLength, p.Y)
			fmt.Fprintf(buf, `    <text class="tick-label" x="%.1f" y="%.1f" font-family=%q font-size="%.0f" text-anchor="middle">%s</text>`+"\n",
				p.X, p.Y-r.tickLength-2, r.fontFamily, r.fontSize, html.EscapeString(label))
		} else {
			fmt.Fprintf(buf, `    <line class="tick" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#222"/>`+"\n",
				p.X, p.Y-r.tickLength, p.X, p.Y+r.tickLength)
			fmt.Fprintf(buf, `    <text class="tick-label" x="%.1f" y="%.1f" font-family=%q font-size="%.0f" text-anchor="middle">%s</text>`+"\n",
				p.X, p.Y-r.tickLength-3, r.fontFamily, r.fontSize, html.EscapeString(label))
		}
	}
}

func (r *svgRenderer) renderLinks(buf *bytes.Buffer, tl *timeline.Timeline, res *timeline.Result) {
	for i, n := range res.Nodes {
		it := itemOf(n)
		dot := dotPoint(tl, n)
		edge := linkPoint(tl, n)
		fmt.Fprintf(buf, `    <path class="link" d="M%.1f,%.1f L%.1f,%.1f" stroke=%q fill="none"/>`+"\n",
			dot.X, dot.Y, edge.X, edge.Y, tl.LinkColor(it.Data, i))
	}
}

func (r *svgRenderer) renderDots(buf *bytes.Buffer, tl *timeline.Timeline, res *timeline.Result) {
	radius := tl.Options().DotRadius
	for i, n := range res.Nodes {
		it := itemOf(n)
		p := dotPoint(tl, n)
		fmt.Fprintf(buf, `    <circle class="dot" cx="%.1f" cy="%.1f" r="%.1f" fill=%q/>`+"\n",
			p.X, p.Y, radius, tl.DotColor(it.Data, i))
	}
}

func (r *svgRenderer) renderLabels(buf *bytes.Buffer, tl *timeline.Timeline, res *timeline.Result) {
	o := tl.Options()
	for i, n := range res.Nodes {
		it := itemOf(n)
		b := boxPoint(tl, n)

		stroke := "none"
		if o.ShowBorder {
			stroke = tl.BorderColor(it.Data, i)
		}
		fmt.Fprintf(buf, `    <rect class="label-bg" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="2" fill=%q stroke=%q/>`+"\n",
			b.X, b.Y, n.W, n.H, tl.LabelBgColor(it.Data, i), stroke)

		if !it.Labeled() {
			continue
		}
		fmt.Fprintf(buf, `    <text class="label" x="%.1f" y="%.1f" dx=%q dy=%q font-family=%q font-size="%.0f" fill=%q>%s</text>`+"\n",
			b.X+o.LabelPadding.Left, b.Y+o.LabelPadding.Top,
			o.TextXOffset, o.TextYOffset,
			r.fontFamily, r.fontSize,
			tl.LabelTextColor(it.Data, i), html.EscapeString(it.Text))
	}
}
