package schedule

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 8, 0, 0, 0, time.UTC)
}

func dayEnd(d int) time.Time {
	return time.Date(2025, time.March, d, 17, 0, 0, 0, time.UTC)
}

func TestPackTracksDisjointSpansShareTrack(t *testing.T) {
	spans := []Span{
		{ID: "a", Start: day(3), End: dayEnd(4)},
		{ID: "b", Start: day(5), End: dayEnd(6)},
	}
	tracks := PackTracks(spans)
	assert.Equal(t, 0, tracks["a"])
	assert.Equal(t, 0, tracks["b"])
	assert.Equal(t, 1, TrackCount(tracks))
}

func TestPackTracksOverlapOpensNewTrack(t *testing.T) {
	spans := []Span{
		{ID: "a", Start: day(3), End: dayEnd(5)},
		{ID: "b", Start: day(4), End: dayEnd(6)},
		{ID: "c", Start: day(6), End: dayEnd(7)},
	}
	tracks := PackTracks(spans)
	assert.Equal(t, 0, tracks["a"])
	assert.Equal(t, 1, tracks["b"])
	// c starts while both a ends the day before and b still runs.
	assert.Equal(t, 0, tracks["c"])
}

func TestPackTracksNoOverlapWithinTrack(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	for iter := 0; iter < 200; iter++ {
		var spans []Span
		for i := 0; i < 12; i++ {
			start := 1 + rng.Intn(25)
			spans = append(spans, Span{
				ID:    fmt.Sprintf("s%d", i),
				Start: day(start),
				End:   dayEnd(start + rng.Intn(5)),
			})
		}
		tracks := PackTracks(spans)

		for i := range spans {
			for j := i + 1; j < len(spans); j++ {
				if tracks[spans[i].ID] != tracks[spans[j].ID] {
					continue
				}
				a, b := spans[i], spans[j]
				overlap := Overlaps(a.Start, a.End, b.Start, b.End)
				require.False(t, overlap,
					"iter %d: %s and %s overlap on track %d", iter, a.ID, b.ID, tracks[a.ID])
			}
		}
	}
}

func TestPackWindowClipsAndFlags(t *testing.T) {
	// Week of Monday 2025-03-10.
	weekStart := StartOfWeek(day(12))
	spans := []Span{
		{ID: "long", Start: day(8), End: dayEnd(18)},
		{ID: "inside", Start: day(11), End: dayEnd(12)},
	}

	bars := PackWindow(spans, weekStart)
	require.Len(t, bars, 2)

	byID := map[string]Bar{}
	for _, b := range bars {
		byID[b.Span.ID] = b
	}

	long := byID["long"]
	assert.False(t, long.StartsInWindow)
	assert.False(t, long.EndsInWindow)
	assert.InDelta(t, 0, long.LeftPct, 1e-9)
	assert.InDelta(t, 100, long.WidthPct, 1e-9)

	inside := byID["inside"]
	assert.True(t, inside.StartsInWindow)
	assert.True(t, inside.EndsInWindow)
	assert.InDelta(t, 100.0/7, inside.LeftPct, 1e-9)
	assert.InDelta(t, 2*100.0/7, inside.WidthPct, 1e-9)

	// Both cover Tuesday, so they cannot share a track.
	assert.NotEqual(t, long.Track, inside.Track)
}

func TestPackWindowExcludesSpansOutsideWeek(t *testing.T) {
	weekStart := StartOfWeek(day(12))
	bars := PackWindow([]Span{{ID: "x", Start: day(24), End: dayEnd(25)}}, weekStart)
	assert.Empty(t, bars)
}

func TestPackWindowNoOverlapWithinTrack(t *testing.T) {
	weekStart := StartOfWeek(day(12))
	rng := rand.New(rand.NewSource(17))

	for iter := 0; iter < 200; iter++ {
		var spans []Span
		for i := 0; i < 10; i++ {
			start := 5 + rng.Intn(14)
			spans = append(spans, Span{
				ID:    fmt.Sprintf("s%d", i),
				Start: day(start),
				End:   dayEnd(start + rng.Intn(7)),
				Done:  rng.Intn(2) == 0,
			})
		}

		bars := PackWindow(spans, weekStart)
		for i := range bars {
			for j := i + 1; j < len(bars); j++ {
				if bars[i].Track != bars[j].Track {
					continue
				}
				a, b := bars[i], bars[j]
				sameCell := a.LeftPct < b.LeftPct+b.WidthPct-1e-9 &&
					b.LeftPct < a.LeftPct+a.WidthPct-1e-9
				require.False(t, sameCell,
					"iter %d: bars %s and %s collide on track %d", iter, a.Span.ID, b.Span.ID, a.Track)
			}
		}
	}
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierDone, TierFor(3, true))
	assert.Equal(t, TierLow, TierFor(0, false))
	assert.Equal(t, TierMedium, TierFor(1, false))
	assert.Equal(t, TierHigh, TierFor(2, false))
	assert.Equal(t, TierHigh, TierFor(5, false))
}

func TestRowHeights(t *testing.T) {
	assert.Equal(t, 60, WeekRowHeight(0))
	assert.Equal(t, 60, WeekRowHeight(1))
	assert.Equal(t, 100, WeekRowHeight(2))
	assert.Equal(t, 120, CalendarRowHeight(0))
	assert.Equal(t, 120, CalendarRowHeight(3))
	assert.Equal(t, 142, CalendarRowHeight(4))
}

func TestStartOfWeekAndCalendarWeeks(t *testing.T) {
	// 2025-03-12 is a Wednesday; its week starts Monday the 10th.
	start := StartOfWeek(day(12))
	assert.Equal(t, 10, start.Day())
	assert.Equal(t, time.Monday, start.Weekday())

	// Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2025, time.March, 16, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 10, StartOfWeek(sunday).Day())

	weeks := CalendarWeeks(day(12))
	require.Len(t, weeks, 6)
	for _, w := range weeks {
		require.Len(t, w, 7)
		assert.Equal(t, time.Monday, w[0].Weekday())
	}
	// March 2025 starts on a Saturday, so the grid opens on Feb 24.
	assert.Equal(t, time.February, weeks[0][0].Month())
	assert.Equal(t, 24, weeks[0][0].Day())
}

func TestWeekBarsKeepAssignedTracks(t *testing.T) {
	// March 3 2025 is a Monday.
	weekStart := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	spans := []Span{
		{ID: "a", Start: day(3), End: dayEnd(5)},
		{ID: "b", Start: day(4), End: dayEnd(6)},
		{ID: "c", Start: day(12), End: dayEnd(13)},
	}
	tracks := PackTracks(spans)
	bars := WeekBars(spans, tracks, weekStart)

	// c falls in the next week and is skipped.
	require.Len(t, bars, 2)
	assert.Equal(t, tracks["a"], bars[0].Track)
	assert.Equal(t, tracks["b"], bars[1].Track)
	assert.InDelta(t, 0, bars[0].LeftPct, 1e-9)
	assert.InDelta(t, 3*100.0/7, bars[0].WidthPct, 1e-9)
	assert.InDelta(t, 100.0/7, bars[1].LeftPct, 1e-9)
	assert.True(t, bars[0].StartsInWindow)
	assert.True(t, bars[1].EndsInWindow)
}

func TestWeekBarsClipSpansCrossingTheWindow(t *testing.T) {
	weekStart := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	spans := []Span{{ID: "a", Start: day(1), End: dayEnd(11)}}
	bars := WeekBars(spans, PackTracks(spans), weekStart)

	require.Len(t, bars, 1)
	assert.False(t, bars[0].StartsInWindow)
	assert.False(t, bars[0].EndsInWindow)
	assert.InDelta(t, 0, bars[0].LeftPct, 1e-9)
	assert.InDelta(t, 100, bars[0].WidthPct, 1e-9)
}

func TestPackWindowAcrossLocations(t *testing.T) {
	// A window anchored in a non-UTC zone must still place spans that
	// were parsed as UTC on their calendar days.
	bangkok := time.FixedZone("UTC+7", 7*3600)
	weekStart := time.Date(2025, time.March, 3, 0, 0, 0, 0, bangkok)
	spans := []Span{{ID: "a", Start: day(3), End: dayEnd(3)}}

	bars := PackWindow(spans, weekStart)
	require.Len(t, bars, 1)
	assert.InDelta(t, 0, bars[0].LeftPct, 1e-9)
	assert.InDelta(t, 100.0/7, bars[0].WidthPct, 1e-9)
}

func TestDayColumnMatchesByCalendarDate(t *testing.T) {
	bangkok := time.FixedZone("UTC+7", 7*3600)
	weekStart := time.Date(2025, time.March, 3, 0, 0, 0, 0, bangkok)

	assert.Equal(t, 0, DayColumn(weekStart, day(3)))
	assert.Equal(t, 4, DayColumn(weekStart, dayEnd(7)))
	assert.Equal(t, -1, DayColumn(weekStart, day(12)))
}
