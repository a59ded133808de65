// Package scale maps time values to pixel coordinates along one axis.
//
// A [TimeScale] is a linear projection from a time domain onto a pixel range.
// The domain can be set explicitly or derived from the input data with
// [Extent] and then rounded outward to human-friendly bounds with
// [TimeScale.Nice]. The projection never clamps: times outside the domain
// receive a linear extrapolation, so callers that configure a domain narrower
// than their data still get usable (if off-canvas) coordinates.
package scale

import (
	"time"

	"github.com/pklampros/timelab/pkg/errors"
)

// TimeScale is a monotonic linear mapping from a time domain to a pixel range.
// The zero value projects everything to zero; call Domain and Range (or let
// the timeline orchestrator do it) before projecting.
type TimeScale struct {
	d0, d1 time.Time
	r0, r1 float64
}

// New creates a scale with the given domain and range.
func New(domain [2]time.Time, rng [2]float64) *TimeScale {
	s := &TimeScale{}
	s.Domain(domain)
	s.Range(rng)
	return s
}

// Domain sets the time extent the scale projects from.
func (s *TimeScale) Domain(d [2]time.Time) {
	s.d0, s.d1 = d[0], d[1]
}

// GetDomain returns the current domain.
func (s *TimeScale) GetDomain() [2]time.Time {
	return [2]time.Time{s.d0, s.d1}
}

// Range sets the pixel extent the scale projects onto.
func (s *TimeScale) Range(r [2]float64) {
	s.r0, s.r1 = r[0], r[1]
}

// GetRange returns the current range.
func (s *TimeScale) GetRange() [2]float64 {
	return [2]float64{s.r0, s.r1}
}

// Project maps a time value to a pixel coordinate. Values outside the domain
// extrapolate linearly; there is no clamping. A degenerate domain (start ==
// end) projects every value to the middle of the range.
func (s *TimeScale) Project(t time.Time) float64 {
	span := s.d1.Sub(s.d0)
	if span == 0 {
		return (s.r0 + s.r1) / 2
	}
	frac := float64(t.Sub(s.d0)) / float64(span)
	return s.r0 + frac*(s.r1-s.r0)
}

// Nice rounds the domain outward to round time boundaries. The rounding unit
// grows with the domain span: seconds, minutes, hours, then whole days. The
// niced domain always contains the original one.
func (s *TimeScale) Nice() {
	span := s.d1.Sub(s.d0)
	var unit time.Duration
	switch {
	case span >= 48*time.Hour:
		unit = 24 * time.Hour
	case span >= 2*time.Hour:
		unit = time.Hour
	case span >= 2*time.Minute:
		unit = time.Minute
	default:
		unit = time.Second
	}
	s.d0 = floorTime(s.d0, unit)
	s.d1 = ceilTime(s.d1, unit)
}

// Ticks returns count evenly spaced times covering the domain, endpoints
// included. Returns nil for count < 2.
func (s *TimeScale) Ticks(count int) []time.Time {
	if count < 2 {
		return nil
	}
	span := s.d1.Sub(s.d0)
	ticks := make([]time.Time, count)
	for i := range ticks {
		frac := float64(i) / float64(count-1)
		ticks[i] = s.d0.Add(time.Duration(frac * float64(span)))
	}
	return ticks
}

// floorTime rounds t down to a multiple of unit. Day units snap to local
// midnight so that multi-day domains start on date boundaries.
func floorTime(t time.Time, unit time.Duration) time.Time {
	if unit == 24*time.Hour {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	return t.Truncate(unit)
}

// ceilTime rounds t up to a multiple of unit.
func ceilTime(t time.Time, unit time.Duration) time.Time {
	floored := floorTime(t, unit)
	if floored.Equal(t) {
		return t
	}
	return floored.Add(unit)
}

// Extent computes the [min, max] time over a slice of records using the given
// accessor. It fails with an EMPTY_INPUT error when records is empty.
func Extent[T any](records []T, accessor func(T) time.Time) ([2]time.Time, error) {
	if len(records) == 0 {
		return [2]time.Time{}, errors.New(errors.ErrCodeEmptyInput, "cannot compute time extent of zero records")
	}
	min := accessor(records[0])
	max := min
	for _, r := range records[1:] {
		t := accessor(r)
		if t.Before(min) {
			min = t
		}
		if t.After(max) {
			max = t
		}
	}
	return [2]time.Time{min, max}, nil
}
