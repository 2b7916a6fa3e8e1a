// Package schedule selects entries from the availability calendar served
// by the backend. The calendar is read-only on this side; the only
// operations are matching a slot to a requested instant and grouping days
// into calendar weeks for paged display.
package schedule

import "time"

type SlotStatus string

const (
	SlotOpen      SlotStatus = "open"
	SlotTentative SlotStatus = "tentative"
	SlotBlocked   SlotStatus = "blocked"
)

type Slot struct {
	StartAt string     `json:"start_at"`
	EndAt   string     `json:"end_at"`
	Status  SlotStatus `json:"status"`
	StaffID string     `json:"staff_id,omitempty"`
}

type Day struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// matchTolerance absorbs serialization rounding between the URL parameter
// and the calendar's start_at values. It is not meant to fuzzy-match user
// intent.
const matchTolerance = 60 * time.Second

// Match is a selected slot together with the day it belongs to.
type Match struct {
	Day  Day
	Slot Slot
}

// MatchSlot returns the first slot whose start_at lies within the
// tolerance window around target. An empty or unparseable target, or one
// matching nothing, falls back to the first open slot across all days.
// Returns nil when the calendar has no candidate at all.
func MatchSlot(days []Day, target string) *Match {
	if target != "" {
		if instant, err := time.Parse(time.RFC3339, target); err == nil {
			for _, day := range days {
				for _, slot := range day.Slots {
					start, err := time.Parse(time.RFC3339, slot.StartAt)
					if err != nil {
						continue
					}
					diff := start.Sub(instant)
					if diff < 0 {
						diff = -diff
					}
					if diff <= matchTolerance {
						return &Match{Day: day, Slot: slot}
					}
				}
			}
		}
	}
	return FirstOpen(days)
}

// FirstOpen returns the first slot with status open, scanning days in order.
func FirstOpen(days []Day) *Match {
	for _, day := range days {
		for _, slot := range day.Slots {
			if slot.Status == SlotOpen {
				return &Match{Day: day, Slot: slot}
			}
		}
	}
	return nil
}

// Week is one Monday-anchored calendar week of the availability calendar.
type Week struct {
	Start time.Time
	Days  []Day
}

// WeekBuckets groups days by the Monday of their calendar week, preserving
// the calendar's day order. Days with an unparseable date are skipped.
func WeekBuckets(days []Day) []Week {
	var weeks []Week
	index := map[time.Time]int{}
	for _, day := range days {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			continue
		}
		monday := date.AddDate(0, 0, -((int(date.Weekday()) + 6) % 7))
		i, ok := index[monday]
		if !ok {
			i = len(weeks)
			index[monday] = i
			weeks = append(weeks, Week{Start: monday})
		}
		weeks[i].Days = append(weeks[i].Days, day)
	}
	return weeks
}

// ClampWeek keeps index-based week navigation inside [0, weekCount-1].
func ClampWeek(index, weekCount int) int {
	if weekCount <= 0 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index >= weekCount {
		return weekCount - 1
	}
	return index
}
