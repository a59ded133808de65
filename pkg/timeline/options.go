package timeline

import (
	"time"

	"github.com/pklampros/timelab/pkg/errors"
	"github.com/pklampros/timelab/pkg/force"
)

// Margin is the space between the canvas edge and the drawable area.
type Margin struct {
	Left, Right, Top, Bottom float64
}

// Padding is the space added around a label's text box on each side.
type Padding struct {
	Left, Right, Top, Bottom float64
}

// LatexOptions are pass-through hints for the TikZ emission path. The layout
// core never interprets them.
type LatexOptions struct {
	FontSize        string
	BorderThickness string
	AxisThickness   string
	TickThickness   string
	LinkThickness   string
	TickCross       bool
	Preamble        string

	// Reproducible strips volatile metadata (timestamps) from the emitted
	// document so identical inputs produce identical bytes.
	Reproducible bool
}

// TimeFunc extracts the event time from an input record.
type TimeFunc func(data any) (time.Time, error)

// TextFunc extracts the label text from an input record. Empty means the
// event renders as an unlabeled mark.
type TextFunc func(data any) string

// WidthFunc extracts an explicit label width from an input record, or nil to
// use the sizing heuristics.
type WidthFunc func(data any) *float64

// Options is the full timeline configuration. Construct it with
// [DefaultOptions] and adjust through [Option] values passed to [New]; the
// defaults are produced fresh on every call and never shared.
type Options struct {
	Margin        Margin
	InitialWidth  float64
	InitialHeight float64

	// Domain fixes the time extent explicitly. When nil the domain is the
	// niced extent of the input times.
	Domain *[2]time.Time

	Direction Direction
	DotRadius float64
	LayerGap  float64

	// Force tunes the overlap resolver.
	Force force.Options

	TimeFn  TimeFunc
	TextFn  TextFunc
	WidthFn WidthFunc

	DotColor       Paint
	LabelBgColor   Paint
	LabelTextColor Paint
	LinkColor      Paint
	BorderColor    Paint

	LabelPadding Padding
	TextXOffset  string
	TextYOffset  string
	ShowTicks    bool
	ShowBorder   bool
	Latex        LatexOptions
}

// DefaultOptions returns the documented default configuration. It is a pure
// function; callers may mutate the result freely.
func DefaultOptions() Options {
	return Options{
		Margin:         Margin{Left: 20, Right: 20, Top: 20, Bottom: 20},
		InitialWidth:   400,
		InitialHeight:  400,
		Direction:      DirRight,
		DotRadius:      3,
		LayerGap:       60,
		TimeFn:         mapTime,
		TextFn:         mapText,
		WidthFn:        mapWidth,
		DotColor:       Constant("#222"),
		LabelBgColor:   Constant("#222"),
		LabelTextColor: Constant("#fff"),
		LinkColor:      Constant("#222"),
		BorderColor:    Constant("#000"),
		LabelPadding:   Padding{Left: 2, Right: 2, Top: 3, Bottom: 2},
		TextXOffset:    "0.15em",
		TextYOffset:    "0.85em",
		ShowTicks:      true,
		ShowBorder:     false,
		Latex: LatexOptions{
			FontSize:        "11pt",
			BorderThickness: "very thick",
			AxisThickness:   "very thick",
			TickThickness:   "thick",
			LinkThickness:   "very thick",
		},
	}
}

// Option adjusts one aspect of the configuration.
type Option func(*Options)

// WithDirection sets the side of the axis labels grow towards.
func WithDirection(d Direction) Option {
	return func(o *Options) { o.Direction = d }
}

// WithDomain fixes the time domain instead of deriving it from the input.
func WithDomain(from, to time.Time) Option {
	return func(o *Options) { o.Domain = &[2]time.Time{from, to} }
}

// WithInitialSize sets the canvas size the inner layout extent is cut from.
func WithInitialSize(width, height float64) Option {
	return func(o *Options) { o.InitialWidth, o.InitialHeight = width, height }
}

// WithMargin sets the canvas margins.
func WithMargin(m Margin) Option {
	return func(o *Options) { o.Margin = m }
}

// WithLayerGap sets the gap between the axis and each label layer.
func WithLayerGap(gap float64) Option {
	return func(o *Options) { o.LayerGap = gap }
}

// WithDotRadius sets the radius of the axis anchor dots.
func WithDotRadius(r float64) Option {
	return func(o *Options) { o.DotRadius = r }
}

// WithForce tunes the overlap resolver.
func WithForce(fo force.Options) Option {
	return func(o *Options) { o.Force = fo }
}

// WithTimeFn sets the time accessor for input records.
func WithTimeFn(fn TimeFunc) Option {
	return func(o *Options) { o.TimeFn = fn }
}

// WithTextFn sets the label text accessor for input records.
func WithTextFn(fn TextFunc) Option {
	return func(o *Options) { o.TextFn = fn }
}

// WithWidthFn sets the explicit-width accessor for input records.
func WithWidthFn(fn WidthFunc) Option {
	return func(o *Options) { o.WidthFn = fn }
}

// WithLabelPadding sets the padding added around each label box.
func WithLabelPadding(p Padding) Option {
	return func(o *Options) { o.LabelPadding = p }
}

// WithDotColor sets the axis dot color channel.
func WithDotColor(p Paint) Option {
	return func(o *Options) { o.DotColor = p }
}

// WithLabelBgColor sets the label background color channel.
func WithLabelBgColor(p Paint) Option {
	return func(o *Options) { o.LabelBgColor = p }
}

// WithLabelTextColor sets the label text color channel.
func WithLabelTextColor(p Paint) Option {
	return func(o *Options) { o.LabelTextColor = p }
}

// WithLinkColor sets the connector color channel.
func WithLinkColor(p Paint) Option {
	return func(o *Options) { o.LinkColor = p }
}

// WithBorderColor sets the label border color channel.
func WithBorderColor(p Paint) Option {
	return func(o *Options) { o.BorderColor = p }
}

// WithShowTicks toggles axis tick marks.
func WithShowTicks(show bool) Option {
	return func(o *Options) { o.ShowTicks = show }
}

// WithShowBorder toggles label borders.
func WithShowBorder(show bool) Option {
	return func(o *Options) { o.ShowBorder = show }
}

// WithLatex sets the TikZ emission hints.
func WithLatex(l LatexOptions) Option {
	return func(o *Options) { o.Latex = l }
}

// ===== Default record accessors =====

// The default accessors read generic map records, the shape produced by the
// events loader. Custom record types supply their own accessors.

func mapTime(data any) (time.Time, error) {
	m, ok := data.(map[string]any)
	if !ok {
		return time.Time{}, errors.New(errors.ErrCodeMissingTime, "record %T has no time field", data)
	}
	v, ok := m["time"]
	if !ok {
		return time.Time{}, errors.New(errors.ErrCodeMissingTime, "record has no time field")
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, errors.New(errors.ErrCodeMissingTime, "record time field is %T, want time.Time", v)
	}
	return t, nil
}

func mapText(data any) string {
	if m, ok := data.(map[string]any); ok {
		if s, ok := m["text"].(string); ok {
			return s
		}
	}
	return ""
}

func mapWidth(data any) *float64 {
	m, ok := data.(map[string]any)
	if !ok {
		return nil
	}
	switch v := m["width"].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}
