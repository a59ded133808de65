package scale

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProjectLinear(t *testing.T) {
	s := New(
		[2]time.Time{date(2024, 1, 1), date(2024, 1, 11)},
		[2]float64{0, 100},
	)

	tests := []struct {
		t    time.Time
		want float64
	}{
		{date(2024, 1, 1), 0},
		{date(2024, 1, 11), 100},
		{date(2024, 1, 6), 50},
		{date(2024, 1, 3), 20},
	}
	for _, tt := range tests {
		if got := s.Project(tt.t); got != tt.want {
			t.Errorf("Project(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestProjectExtrapolatesOutsideDomain(t *testing.T) {
	s := New(
		[2]time.Time{date(2024, 1, 1), date(2024, 1, 11)},
		[2]float64{0, 100},
	)

	// No clamping: out-of-domain times project linearly past the range.
	if got := s.Project(date(2023, 12, 31)); got != -10 {
		t.Errorf("Project before domain = %v, want -10", got)
	}
	if got := s.Project(date(2024, 1, 21)); got != 200 {
		t.Errorf("Project after domain = %v, want 200", got)
	}
}

func TestProjectDegenerateDomain(t *testing.T) {
	d := date(2024, 5, 1)
	s := New([2]time.Time{d, d}, [2]float64{0, 100})

	if got := s.Project(d); got != 50 {
		t.Errorf("degenerate domain should project to range midpoint, got %v", got)
	}
}

func TestNice(t *testing.T) {
	tests := []struct {
		name       string
		d0, d1     time.Time
		want0      time.Time
		want1      time.Time
	}{
		{
			name:  "multi-day spans snap to day boundaries",
			d0:    time.Date(2024, 3, 2, 7, 30, 0, 0, time.UTC),
			d1:    time.Date(2024, 3, 9, 18, 45, 0, 0, time.UTC),
			want0: date(2024, 3, 2),
			want1: date(2024, 3, 10),
		},
		{
			name:  "hour spans snap to hours",
			d0:    time.Date(2024, 3, 2, 7, 30, 0, 0, time.UTC),
			d1:    time.Date(2024, 3, 2, 12, 10, 0, 0, time.UTC),
			want0: time.Date(2024, 3, 2, 7, 0, 0, 0, time.UTC),
			want1: time.Date(2024, 3, 2, 13, 0, 0, 0, time.UTC),
		},
		{
			name:  "already-round bounds are untouched",
			d0:    date(2024, 3, 2),
			d1:    date(2024, 3, 9),
			want0: date(2024, 3, 2),
			want1: date(2024, 3, 9),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New([2]time.Time{tt.d0, tt.d1}, [2]float64{0, 1})
			s.Nice()
			got := s.GetDomain()
			if !got[0].Equal(tt.want0) || !got[1].Equal(tt.want1) {
				t.Errorf("Nice() domain = [%v, %v], want [%v, %v]", got[0], got[1], tt.want0, tt.want1)
			}
			// Niced bounds must contain the raw extent.
			if got[0].After(tt.d0) || got[1].Before(tt.d1) {
				t.Error("niced domain does not contain raw extent")
			}
		})
	}
}

func TestExtent(t *testing.T) {
	type rec struct{ at time.Time }
	records := []rec{
		{date(2024, 6, 3)},
		{date(2024, 6, 1)},
		{date(2024, 6, 9)},
	}

	ext, err := Extent(records, func(r rec) time.Time { return r.at })
	if err != nil {
		t.Fatalf("Extent: %v", err)
	}
	if !ext[0].Equal(date(2024, 6, 1)) || !ext[1].Equal(date(2024, 6, 9)) {
		t.Errorf("Extent = [%v, %v]", ext[0], ext[1])
	}
}

func TestExtentEmptyInput(t *testing.T) {
	_, err := Extent(nil, func(t time.Time) time.Time { return t })
	if err == nil {
		t.Fatal("Extent of zero records should fail")
	}
}

func TestTicks(t *testing.T) {
	s := New(
		[2]time.Time{date(2024, 1, 1), date(2024, 1, 5)},
		[2]float64{0, 100},
	)

	ticks := s.Ticks(5)
	if len(ticks) != 5 {
		t.Fatalf("len(ticks) = %d, want 5", len(ticks))
	}
	if !ticks[0].Equal(date(2024, 1, 1)) || !ticks[4].Equal(date(2024, 1, 5)) {
		t.Error("ticks should include domain endpoints")
	}
	if !ticks[2].Equal(date(2024, 1, 3)) {
		t.Errorf("middle tick = %v, want %v", ticks[2], date(2024, 1, 3))
	}

	if got := s.Ticks(1); got != nil {
		t.Error("Ticks(<2) should return nil")
	}
}
