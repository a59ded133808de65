// Package events loads timeline event records from YAML or JSON files.
//
// Records are loosely typed on disk: the time field may be a full datetime, a
// bare date, or a bare clock time. Everything is normalized to a full
// time.Time at parse time so the layout core only ever sees one
// representation. Bare dates combine with midnight; bare clock times combine
// with today's date.
package events

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pklampros/timelab/pkg/errors"
)

// Event is one normalized input record.
type Event struct {
	Time  time.Time
	Text  string
	Width *float64

	// Extra carries unrecognized fields for style functors and renderers.
	Extra map[string]any
}

// Format identifies an event file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DetectFormat infers the file format from its extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer event format from %q (want .yaml, .yml or .json)", path)
}

// Load reads and parses an event file, inferring the format from the
// extension.
func Load(path string) ([]Event, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot open event file %s", path)
	}
	defer f.Close()
	return Parse(f, format)
}

// Parse decodes a stream of event records in the given format.
func Parse(r io.Reader, format Format) ([]Event, error) {
	var raw []map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed yaml event list")
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed json event list")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown event format %q", format)
	}

	events := make([]Event, 0, len(raw))
	for i, m := range raw {
		ev, err := fromMap(m)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "event %d", i)
		}
		events = append(events, ev)
	}
	return events, nil
}

func fromMap(m map[string]any) (Event, error) {
	ev := Event{Extra: map[string]any{}}
	for k, v := range m {
		switch k {
		case "time":
			t, err := normalizeTime(v)
			if err != nil {
				return Event{}, err
			}
			ev.Time = t
		case "text":
			if s, ok := v.(string); ok {
				ev.Text = s
			}
		case "width":
			switch w := v.(type) {
			case float64:
				ev.Width = &w
			case int:
				f := float64(w)
				ev.Width = &f
			}
		default:
			ev.Extra[k] = v
		}
	}
	if _, ok := m["time"]; !ok {
		return Event{}, errors.New(errors.ErrCodeMissingTime, "record has no time field")
	}
	return ev, nil
}

// Layouts tried for string time values, most specific first. Date-only and
// clock-only layouts get completed to a full datetime afterwards.
var timeLayouts = []struct {
	layout   string
	dateOnly bool
	timeOnly bool
}{
	{layout: time.RFC3339},
	{layout: "2006-01-02T15:04:05"},
	{layout: "2006-01-02 15:04:05"},
	{layout: "2006-01-02 15:04"},
	{layout: "2006-01-02", dateOnly: true},
	{layout: "15:04:05", timeOnly: true},
	{layout: "15:04", timeOnly: true},
}

func normalizeTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return parseTimeString(t)
	}
	return time.Time{}, errors.New(errors.ErrCodeMissingTime, "time field is %T, want timestamp or string", v)
}

func parseTimeString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range timeLayouts {
		t, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}
		switch {
		case l.timeOnly:
			now := time.Now()
			return time.Date(now.Year(), now.Month(), now.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, time.Local), nil
		case l.dateOnly:
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		default:
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeMissingTime, "unparseable time value %q", s)
}

// Records converts events to the generic map records the timeline's default
// accessors read. Extra fields are copied through for style functors.
func Records(events []Event) []any {
	records := make([]any, len(events))
	for i, ev := range events {
		m := map[string]any{"time": ev.Time}
		if ev.Text != "" {
			m["text"] = ev.Text
		}
		if ev.Width != nil {
			m["width"] = *ev.Width
		}
		for k, v := range ev.Extra {
			m[k] = v
		}
		records[i] = m
	}
	return records
}

// Fingerprint returns a stable content summary of an event list, used for
// cache keys.
func Fingerprint(events []Event) string {
	var b strings.Builder
	for _, ev := range events {
		fmt.Fprintf(&b, "%d|%s|", ev.Time.UnixNano(), ev.Text)
		if ev.Width != nil {
			fmt.Fprintf(&b, "%g", *ev.Width)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
