package schedule

import (
	"sort"
	"time"
)

// Span is the scheduling view of one plan entry.
type Span struct {
	ID    string
	Start time.Time
	End   time.Time
	Done  bool
}

// Bar is a placed span on a calendar week row: its vertical track, its
// horizontal position and width as percentages of the row, and whether
// the underlying span is clipped at either edge of the window.
type Bar struct {
	Span           Span    `json:"span"`
	Track          int     `json:"track"`
	LeftPct        float64 `json:"leftPct"`
	WidthPct       float64 `json:"widthPct"`
	StartsInWindow bool    `json:"startsInWindow"`
	EndsInWindow   bool    `json:"endsInWindow"`
	Tier           string  `json:"tier"`
}

// Load tiers drive the bar color: done work is grey, the first track
// is calm, the second is busy, anything deeper is overloaded.
const (
	TierDone   = "done"
	TierLow    = "low"
	TierMedium = "medium"
	TierHigh   = "high"
)

// TierFor maps a bar's track depth and completion to its load tier.
func TierFor(track int, done bool) string {
	switch {
	case done:
		return TierDone
	case track == 0:
		return TierLow
	case track == 1:
		return TierMedium
	default:
		return TierHigh
	}
}

const dayWidthPct = 100.0 / 7

// PackTracks assigns each span to the lowest track whose last entry it
// does not overlap. Spans are placed in start order, so a track's
// entries are always chronological and only the last one can collide.
func PackTracks(spans []Span) map[string]int {
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	tracks := make(map[string]int, len(spans))
	var lastEnd []time.Time
	for _, s := range sorted {
		placed := false
		for t := range lastEnd {
			if s.Start.After(lastEnd[t]) {
				tracks[s.ID] = t
				lastEnd[t] = s.End
				placed = true
				break
			}
		}
		if !placed {
			tracks[s.ID] = len(lastEnd)
			lastEnd = append(lastEnd, s.End)
		}
	}
	return tracks
}

// WeekBars positions spans on one person's weekly board row using the
// tracks PackTracks assigned across the person's whole span list, so a
// span keeps its track from week to week. Spans outside the window are
// skipped, spans crossing an edge are clipped.
func WeekBars(spans []Span, tracks map[string]int, weekStart time.Time) []Bar {
	weekEnd := DayEnd(weekStart.AddDate(0, 0, 6))

	var bars []Bar
	for _, s := range spans {
		if !Overlaps(s.Start, s.End, weekStart, weekEnd) {
			continue
		}
		start, end := s.Start, s.End
		startsIn, endsIn := true, true
		if start.Before(weekStart) {
			start = weekStart
			startsIn = false
		}
		if end.After(weekEnd) {
			end = weekEnd
			endsIn = false
		}

		startCol := DayColumn(weekStart, start)
		endCol := DayColumn(weekStart, end)
		track := tracks[s.ID]
		bars = append(bars, Bar{
			Span:           s,
			Track:          track,
			LeftPct:        float64(startCol) * dayWidthPct,
			WidthPct:       float64(endCol-startCol+1) * dayWidthPct,
			StartsInWindow: startsIn,
			EndsInWindow:   endsIn,
			Tier:           TierFor(track, s.Done),
		})
	}
	return bars
}

// PackWindow lays the spans that touch a one-week window out as bars.
// Unlike PackTracks, placement checks every bar already on a track, so
// spans sorted start-then-longest-first never overlap within a track
// even when clipping makes windows irregular.
func PackWindow(spans []Span, weekStart time.Time) []Bar {
	weekEnd := DayEnd(weekStart.AddDate(0, 0, 6))

	var visible []Span
	for _, s := range spans {
		if Overlaps(s.Start, s.End, weekStart, weekEnd) {
			visible = append(visible, s)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		if !visible[i].Start.Equal(visible[j].Start) {
			return visible[i].Start.Before(visible[j].Start)
		}
		return visible[i].End.After(visible[j].End)
	})

	bars := make([]Bar, 0, len(visible))
	var trackBars [][]Bar
	for _, s := range visible {
		start, end := s.Start, s.End
		startsIn, endsIn := true, true
		if start.Before(weekStart) {
			start = weekStart
			startsIn = false
		}
		if end.After(weekEnd) {
			end = weekEnd
			endsIn = false
		}

		startCol := DayColumn(weekStart, start)
		endCol := DayColumn(weekStart, end)
		bar := Bar{
			Span:           s,
			LeftPct:        float64(startCol) * dayWidthPct,
			WidthPct:       float64(endCol-startCol+1) * dayWidthPct,
			StartsInWindow: startsIn,
			EndsInWindow:   endsIn,
		}

		track := 0
		for ; track < len(trackBars); track++ {
			free := true
			for _, placed := range trackBars[track] {
				if Overlaps(start, end, clippedStart(placed, weekStart), clippedEnd(placed, weekEnd)) {
					free = false
					break
				}
			}
			if free {
				break
			}
		}
		bar.Track = track
		bar.Tier = TierFor(track, s.Done)
		if track == len(trackBars) {
			trackBars = append(trackBars, nil)
		}
		trackBars[track] = append(trackBars[track], bar)
		bars = append(bars, bar)
	}
	return bars
}

func clippedStart(b Bar, weekStart time.Time) time.Time {
	if b.Span.Start.Before(weekStart) {
		return weekStart
	}
	return b.Span.Start
}

func clippedEnd(b Bar, weekEnd time.Time) time.Time {
	if b.Span.End.After(weekEnd) {
		return weekEnd
	}
	return b.Span.End
}

// TrackCount returns the number of tracks a packed layout uses.
func TrackCount(tracks map[string]int) int {
	max := 0
	for _, t := range tracks {
		if t+1 > max {
			max = t + 1
		}
	}
	return max
}

// WeekRowHeight sizes one person's row on the weekly board.
func WeekRowHeight(tracks int) int {
	h := tracks*40 + 20
	if h < 60 {
		return 60
	}
	return h
}

// CalendarRowHeight sizes one week row on the monthly calendar.
func CalendarRowHeight(tracks int) int {
	h := tracks*28 + 30
	if h < 120 {
		return 120
	}
	return h
}
