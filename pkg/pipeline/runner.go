package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pklampros/timelab/pkg/cache"
	"github.com/pklampros/timelab/pkg/errors"
	"github.com/pklampros/timelab/pkg/events"
	"github.com/pklampros/timelab/pkg/render/sink"
	"github.com/pklampros/timelab/pkg/renderer"
	"github.com/pklampros/timelab/pkg/timeline"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, caching is disabled.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.Discard
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	evs, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Events = evs
	result.EventsHash = cache.Hash([]byte(events.Fingerprint(evs)))
	result.Stats.ParseTime = time.Since(parseStart)

	r.Logger.Info("parsed events",
		"count", len(evs),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	tl, layout, err := r.ComputeLayout(evs, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Timeline = tl
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.EventCount = len(evs)
	result.Stats.LayerCount = renderer.LayerCount(layout.Nodes)

	if layout.Degraded {
		r.Logger.Warn("layout could not satisfy position bounds, result is best-effort")
	}
	r.Logger.Info("computed layout",
		"nodes", len(layout.Nodes),
		"layers", result.Stats.LayerCount,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, tl, layout, result.EventsHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse loads and normalizes the event file named by opts.Input.
func (r *Runner) Parse(ctx context.Context, opts Options) ([]events.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return events.Load(opts.Input)
}

// ComputeLayout builds the timeline and resolves the label geometry.
func (r *Runner) ComputeLayout(evs []events.Event, opts Options) (*timeline.Timeline, *timeline.Result, error) {
	tlOpts, err := opts.TimelineOptions()
	if err != nil {
		return nil, nil, err
	}
	tl, err := timeline.New(events.Records(evs), tlOpts...)
	if err != nil {
		return nil, nil, err
	}
	return tl, tl.Compute(), nil
}

// RenderWithCacheInfo renders all requested formats, serving from the
// artifact cache when every format is already present. The cache key covers
// the event content and the full option set, so any styling change
// invalidates.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, tl *timeline.Timeline, layout *timeline.Result, eventsHash string, opts Options) (map[string][]byte, bool, error) {
	layoutHash := r.layoutHash(eventsHash, opts)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		allCached := true
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				allCached = false
				break
			}
			artifacts[format] = data
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := r.render(tl, layout, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, key, data, cache.ArtifactTTL)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, tl *timeline.Timeline, layout *timeline.Result, eventsHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, tl, layout, eventsHash, opts)
	return artifacts, err
}

func (r *Runner) render(tl *timeline.Timeline, layout *timeline.Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = sink.RenderSVG(tl, layout)
		case FormatTeX:
			artifacts[format] = sink.RenderTeX(tl, layout)
		case FormatJSON:
			data, err := sink.RenderJSON(tl, layout)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout")
			}
			artifacts[format] = data
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format %q", format)
		}
	}
	return artifacts, nil
}

// layoutHash derives the artifact cache namespace from the event content and
// every serializable option.
func (r *Runner) layoutHash(eventsHash string, opts Options) string {
	optData, _ := json.Marshal(opts)
	return cache.Hash(append([]byte(eventsHash), optData...))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
