// Package pipeline provides the parse → layout → render pipeline for timelab.
//
// This package implements the complete flow from an event file to rendered
// artifacts, so the CLI and library callers share one code path. The three
// stages are:
//
//  1. Parse: load and normalize event records from a YAML or JSON file
//  2. Layout: build the timeline and resolve the label geometry
//  3. Render: serialize the layout through the configured sinks
//
// Each stage can be run independently through the [Runner], and the render
// stage caches artifacts by content hash so unchanged inputs do not
// re-render.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pklampros/timelab/pkg/cache"
	"github.com/pklampros/timelab/pkg/errors"
	"github.com/pklampros/timelab/pkg/events"
	"github.com/pklampros/timelab/pkg/timeline"
)

// Default layout values shared by CLI and library entry points.
const (
	DefaultWidth     = 400.0
	DefaultHeight    = 400.0
	DefaultLayerGap  = 60.0
	DefaultDotRadius = 3.0
	DefaultDirection = "right"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatTeX  = "tex"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatTeX:  true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: svg, tex, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options contains all configuration for the pipeline.
// The struct supports JSON serialization so saved configurations round-trip.
type Options struct {
	// Parse options
	Input string `json:"input"`

	// Layout options
	Direction  string  `json:"direction,omitempty"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	LayerGap   float64 `json:"layer_gap,omitempty"`
	DotRadius  float64 `json:"dot_radius,omitempty"`
	DomainFrom string  `json:"domain_from,omitempty"` // RFC 3339; empty means auto
	DomainTo   string  `json:"domain_to,omitempty"`

	// Style options. A palette takes priority over the matching constant.
	DotColor       string   `json:"dot_color,omitempty"`
	DotPalette     []string `json:"dot_palette,omitempty"`
	LabelBgColor   string   `json:"label_bg_color,omitempty"`
	LabelBgPalette []string `json:"label_bg_palette,omitempty"`
	LabelTextColor string   `json:"label_text_color,omitempty"`
	LinkColor      string   `json:"link_color,omitempty"`
	BorderColor    string   `json:"border_color,omitempty"`
	HideTicks      bool     `json:"hide_ticks,omitempty"`
	ShowBorder     bool     `json:"show_border,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Reproducible bool     `json:"reproducible,omitempty"`
	Refresh      bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Events is the parsed, normalized event list.
	Events []events.Event

	// EventsHash is the content hash of the event list.
	EventsHash string

	// Timeline is the configured orchestrator, kept for callers that need
	// the scale or style channels.
	Timeline *timeline.Timeline

	// Layout is the resolved geometry.
	Layout *timeline.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EventCount int
	LayerCount int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits per stage. Parsing and layout are cheap and
// always recomputed; only rendered artifacts are cached.
type CacheInfo struct {
	RenderHit bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidPath, "input file is required")
	}
	o.SetLayoutDefaults()
	if _, err := timeline.ParseDirection(o.Direction); err != nil {
		return err
	}
	if err := o.validateDomain(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Direction == "" {
		o.Direction = DefaultDirection
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.LayerGap == 0 {
		o.LayerGap = DefaultLayerGap
	}
	if o.DotRadius == 0 {
		o.DotRadius = DefaultDotRadius
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func (o *Options) validateDomain() error {
	if (o.DomainFrom == "") != (o.DomainTo == "") {
		return errors.New(errors.ErrCodeInvalidDomain, "domain_from and domain_to must be set together")
	}
	if o.DomainFrom == "" {
		return nil
	}
	from, err := time.Parse(time.RFC3339, o.DomainFrom)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDomain, err, "domain_from")
	}
	to, err := time.Parse(time.RFC3339, o.DomainTo)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDomain, err, "domain_to")
	}
	if !from.Before(to) {
		return errors.New(errors.ErrCodeInvalidDomain, "domain_from must precede domain_to")
	}
	return nil
}

// TimelineOptions converts pipeline options into timeline configuration.
func (o *Options) TimelineOptions() ([]timeline.Option, error) {
	dir, err := timeline.ParseDirection(o.Direction)
	if err != nil {
		return nil, err
	}

	opts := []timeline.Option{
		timeline.WithDirection(dir),
		timeline.WithInitialSize(o.Width, o.Height),
		timeline.WithLayerGap(o.LayerGap),
		timeline.WithDotRadius(o.DotRadius),
		timeline.WithShowTicks(!o.HideTicks),
		timeline.WithShowBorder(o.ShowBorder),
	}

	if o.DomainFrom != "" {
		from, err := time.Parse(time.RFC3339, o.DomainFrom)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDomain, err, "domain_from")
		}
		to, err := time.Parse(time.RFC3339, o.DomainTo)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDomain, err, "domain_to")
		}
		opts = append(opts, timeline.WithDomain(from, to))
	}

	if paint, ok := paintFor(o.DotPalette, o.DotColor); ok {
		opts = append(opts, timeline.WithDotColor(paint))
	}
	if paint, ok := paintFor(o.LabelBgPalette, o.LabelBgColor); ok {
		opts = append(opts, timeline.WithLabelBgColor(paint))
	}
	if paint, ok := paintFor(nil, o.LabelTextColor); ok {
		opts = append(opts, timeline.WithLabelTextColor(paint))
	}
	if paint, ok := paintFor(nil, o.LinkColor); ok {
		opts = append(opts, timeline.WithLinkColor(paint))
	}
	if paint, ok := paintFor(nil, o.BorderColor); ok {
		opts = append(opts, timeline.WithBorderColor(paint))
	}

	if o.Reproducible {
		lx := timeline.DefaultOptions().Latex
		lx.Reproducible = true
		opts = append(opts, timeline.WithLatex(lx))
	}
	return opts, nil
}

func paintFor(palette []string, constant string) (timeline.Paint, bool) {
	if len(palette) > 0 {
		return timeline.Cyclic(palette...), true
	}
	if constant != "" {
		return timeline.Constant(constant), true
	}
	return timeline.Paint{}, false
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		Reproducible: o.Reproducible,
	}
}
