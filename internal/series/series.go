package series

import (
	"slices"
	"time"

	"github.com/pivotlab/regime-core/internal/model"
)

// Day truncates a timestamp to its UTC calendar day. Every date key in this
// package is normalized through it.
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// Series is an immutable date-keyed sequence of daily closes, sorted
// ascending. It contains trading days only, so positional windows skip
// weekends and holidays naturally.
type Series struct {
	days   []time.Time
	closes []float64
	index  map[time.Time]int
}

// New normalizes raw (day, close) pairs into a Series: days are truncated to
// UTC midnight, sorted ascending and deduplicated with last-sample-wins.
func New(days []time.Time, closes []float64) Series {
	byDay := make(map[time.Time]float64, len(days))
	for i, d := range days {
		byDay[Day(d)] = closes[i]
	}

	sorted := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		sorted = append(sorted, d)
	}
	slices.SortFunc(sorted, time.Time.Compare)

	s := Series{
		days:   sorted,
		closes: make([]float64, len(sorted)),
		index:  make(map[time.Time]int, len(sorted)),
	}
	for i, d := range sorted {
		s.closes[i] = byDay[d]
		s.index[d] = i
	}
	return s
}

func FromPrices(samples []model.PriceSample) Series {
	days := make([]time.Time, len(samples))
	closes := make([]float64, len(samples))
	for i, smp := range samples {
		days[i] = smp.Ts
		closes[i] = smp.ClosePrice
	}
	return New(days, closes)
}

func FromVolatility(samples []model.VolatilitySample) Series {
	days := make([]time.Time, len(samples))
	closes := make([]float64, len(samples))
	for i, smp := range samples {
		days[i] = smp.Ts
		closes[i] = smp.IndexClose
	}
	return New(days, closes)
}

func (s Series) Len() int {
	return len(s.days)
}

// Days returns the sorted trading days of the series. The slice is shared;
// callers must not mutate it.
func (s Series) Days() []time.Time {
	return s.days
}

func (s Series) At(i int) (time.Time, float64) {
	return s.days[i], s.closes[i]
}

// IndexOf reports the position of the given calendar day within the series.
func (s Series) IndexOf(day time.Time) (int, bool) {
	i, ok := s.index[Day(day)]
	return i, ok
}

// CloseOn returns the close for the exact calendar day.
func (s Series) CloseOn(day time.Time) (float64, bool) {
	if i, ok := s.index[Day(day)]; ok {
		return s.closes[i], true
	}
	return 0, false
}

// NearestEntry returns the value keyed by the given calendar day, falling
// back to the nearest prior key within maxDaysBack calendar days. The walk
// tolerates weekend and holiday gaps between two date-keyed collections; a
// gap longer than maxDaysBack days reports no value.
func NearestEntry[V any](byDay map[time.Time]V, day time.Time, maxDaysBack int) (V, bool) {
	d := Day(day)
	for back := 0; back <= maxDaysBack; back++ {
		if v, ok := byDay[d.AddDate(0, 0, -back)]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// NearestOnOrBefore returns the close for the given day or for the nearest
// prior trading day within maxDaysBack calendar days.
func (s Series) NearestOnOrBefore(day time.Time, maxDaysBack int) (float64, bool) {
	i, ok := NearestEntry(s.index, day, maxDaysBack)
	if !ok {
		return 0, false
	}
	return s.closes[i], true
}

// TrailingSMA is the unweighted mean of the window most recent closes ending
// at position i, inclusive, in series order. It reports ok=false until the
// series holds window samples up to i.
func (s Series) TrailingSMA(i, window int) (float64, bool) {
	if window <= 0 || i+1 < window || i >= len(s.closes) {
		return 0, false
	}
	sum := 0.0
	for j := i - window + 1; j <= i; j++ {
		sum += s.closes[j]
	}
	return sum / float64(window), true
}
