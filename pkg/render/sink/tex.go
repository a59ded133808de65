package sink

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/pklampros/timelab/pkg/timeline"
)

// TeXOption adjusts TikZ emission.
type TeXOption func(*texRenderer)

type texRenderer struct {
	tickCount int
	now       func() time.Time
}

// WithTeXTickCount sets the number of axis ticks in the TikZ output.
func WithTeXTickCount(n int) TeXOption {
	return func(r *texRenderer) { r.tickCount = n }
}

// withTeXClock overrides the timestamp source, for tests.
func withTeXClock(now func() time.Time) TeXOption {
	return func(r *texRenderer) { r.now = now }
}

// RenderTeX serializes a computed layout to a standalone TikZ document.
// The timeline's LaTeX option block supplies font size, line thicknesses,
// preamble text, and the reproducibility flag; with Reproducible set the
// generation timestamp is omitted so identical inputs render to identical
// bytes.
func RenderTeX(tl *timeline.Timeline, res *timeline.Result, opts ...TeXOption) []byte {
	r := texRenderer{tickCount: 6, now: time.Now}
	for _, opt := range opts {
		opt(&r)
	}

	o := tl.Options()
	lx := o.Latex

	var buf bytes.Buffer
	if !lx.Reproducible {
		fmt.Fprintf(&buf, "%% generated %s\n", r.now().Format(time.RFC3339))
	}
	fmt.Fprintf(&buf, "\\documentclass[%s]{standalone}\n", lx.FontSize)
	buf.WriteString("\\usepackage{tikz}\n")
	if lx.Preamble != "" {
		buf.WriteString(lx.Preamble)
		if !strings.HasSuffix(lx.Preamble, "\n") {
			buf.WriteByte('\n')
		}
	}
	buf.WriteString("\\begin{document}\n")
	// TikZ's y axis points up; flip it so the layout frame carries over.
	buf.WriteString("\\begin{tikzpicture}[x=1pt, y=-1pt]\n")

	r.renderAxis(&buf, tl, lx)
	if o.ShowTicks {
		r.renderTicks(&buf, tl, lx)
	}
	r.renderLinks(&buf, tl, res, lx)
	r.renderDots(&buf, tl, res)
	r.renderLabels(&buf, tl, res, lx)

	buf.WriteString("\\end{tikzpicture}\n\\end{document}\n")
	return buf.Bytes()
}

func (r *texRenderer) renderAxis(buf *bytes.Buffer, tl *timeline.Timeline, lx timeline.LatexOptions) {
	a, b := axisLine(tl)
	fmt.Fprintf(buf, "\\draw[%s] (%.1f,%.1f) -- (%.1f,%.1f);\n", lx.AxisThickness, a.X, a.Y, b.X, b.Y)
}

func (r *texRenderer) renderTicks(buf *bytes.Buffer, tl *timeline.Timeline, lx timeline.LatexOptions) {
	format := tickFormat(tl)
	vertical := tl.Direction().Vertical()
	for _, t := range tl.Scale().Ticks(r.tickCount) {
		p := tickPoint(tl, t)
		lo, hi := 0.0, 5.0
		if lx.TickCross {
			lo = -5.0
		}
		if vertical {
			fmt.Fprintf(buf, "\\draw[%s] (%.1f,%.1f) -- (%.1f,%.1f);\n", lx.TickThickness, p.X-hi, p.Y, p.X-lo, p.Y)
			fmt.Fprintf(buf, "\\node[left, font=\\tiny] at (%.1f,%.1f) {%s};\n", p.X-hi, p.Y, escapeTeX(t.Format(format)))
		} else {
			fmt.Fprintf(buf, "\\draw[%s] (%.1f,%.1f) -- (%.1f,%.1f);\n", lx.TickThickness, p.X, p.Y-hi, p.X, p.Y-lo)
			fmt.Fprintf(buf, "\\node[above, font=\\tiny] at (%.1f,%.1f) {%s};\n", p.X, p.Y-hi, escapeTeX(t.Format(format)))
		}
	}
}

func (r *texRenderer) renderLinks(buf *bytes.Buffer, tl *timeline.Timeline, res *timeline.Result, lx timeline.LatexOptions) {
	for i, n := range res.Nodes {
		it := itemOf(n)
		dot := dotPoint(tl, n)
		edge := linkPoint(tl, n)
		fmt.Fprintf(buf, "\\draw[%s, color={%s}] (%.1f,%.1f) -- (%.1f,%.1f);\n",
			lx.LinkThickness, texColor(tl.LinkColor(it.Data, i)), dot.X, dot.Y, edge.X, edge.Y)
	}
}

func (r *texRenderer) renderDots(buf *bytes.Buffer, tl *timeline.Timeline, res *timeline.Result) {
	radius := tl.Options().DotRadius
	for i, n := range res.Nodes {
		it := itemOf(n)
		p := dotPoint(tl, n)
		fmt.Fprintf(buf, "\\fill[color={%s}] (%.1f,%.1f) circle (%.1fpt);\n",
			texColor(tl.DotColor(it.Data, i)), p.X, p.Y, radius)
	}
}

func (r *texRenderer) renderLabels(buf *bytes.Buffer, tl *timeline.Timeline, res *timeline.Result, lx timeline.LatexOptions) {
	o := tl.Options()
	for i, n := range res.Nodes {
		it := itemOf(n)
		b := boxPoint(tl, n)

		draw := "draw=none"
		if o.ShowBorder {
			draw = fmt.Sprintf("draw={%s}, %s", texColor(tl.BorderColor(it.Data, i)), lx.BorderThickness)
		}
		fmt.Fprintf(buf, "\\draw[fill={%s}, %s, rounded corners=1pt] (%.1f,%.1f) rectangle (%.1f,%.1f);\n",
			texColor(tl.LabelBgColor(it.Data, i)), draw, b.X, b.Y, b.X+n.W, b.Y+n.H)

		if !it.Labeled() {
			continue
		}
		fmt.Fprintf(buf, "\\node[text={%s}, font=\\tiny] at (%.1f,%.1f) {%s};\n",
			texColor(tl.LabelTextColor(it.Data, i)), b.X+n.W/2, b.Y+n.H/2, escapeTeX(it.Text))
	}
}

// texColor converts a hex color to an inline TikZ rgb expression. Named
// colors pass through untouched.
func texColor(c string) string {
	if !strings.HasPrefix(c, "#") {
		return c
	}
	hex := strings.TrimPrefix(c, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return c
	}
	var red, green, blue int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &red, &green, &blue); err != nil {
		return c
	}
	return fmt.Sprintf("rgb,255:red,%d;green,%d;blue,%d", red, green, blue)
}

var texEscaper = strings.NewReplacer(
	"\\", "\\textbackslash{}",
	"&", "\\&",
	"%", "\\%",
	"$", "\\$",
	"#", "\\#",
	"_", "\\_",
	"{", "\\{",
	"}", "\\}",
	"~", "\\textasciitilde{}",
	"^", "\\textasciicircum{}",
)

func escapeTeX(s string) string {
	return texEscaper.Replace(s)
}
