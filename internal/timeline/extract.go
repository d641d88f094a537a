package timeline

import (
	"sort"
	"time"

	"github.com/alexanderramin/tiendo/internal/dates"
)

// Extract reads every slot from src and returns the events that parsed,
// sorted by date. Ties keep slot order, start before end. An end date
// without a start date contributes nothing.
func Extract(src MilestoneSource, slots []TaskSlot) Extraction {
	var ex Extraction
	for _, slot := range slots {
		task := Task{
			Name:       slot.Name,
			StartLabel: slot.StartLabel,
			EndLabel:   slot.EndLabel,
			Color:      slot.Color,
			Standalone: slot.Standalone,
		}

		startStr, start, ok := firstDate(src, slot)
		if ok {
			task.Start = &start
			task.StartStr = startStr
			ex.Events = append(ex.Events, TimedEvent{
				TaskName: slot.Name,
				Label:    slot.StartLabel,
				Date:     start,
				DateStr:  startStr,
				Color:    slot.Color,
				Role:     RoleStart,
			})

			if !slot.Standalone {
				endStr := src.Milestone(slot.End)
				if end, ok := dates.Parse(endStr); ok {
					task.End = &end
					task.EndStr = endStr
					ex.Events = append(ex.Events, TimedEvent{
						TaskName: slot.Name,
						Label:    slot.EndLabel,
						Date:     end,
						DateStr:  endStr,
						Color:    slot.Color,
						Role:     RoleEnd,
					})
				}
			}
		}
		ex.Tasks = append(ex.Tasks, task)
	}

	sort.SliceStable(ex.Events, func(i, j int) bool {
		return ex.Events[i].Date.Before(ex.Events[j].Date)
	})
	return ex
}

func firstDate(src MilestoneSource, slot TaskSlot) (string, time.Time, bool) {
	for _, f := range slot.Start {
		raw := src.Milestone(f)
		if t, ok := dates.Parse(raw); ok {
			return raw, t, true
		}
	}
	return "", time.Time{}, false
}

// MilestoneDates returns every date in src that the slots refer to and that
// parses, including the end of a paired slot whose start is missing. These
// dates draw nothing on their own but still widen a shared overview axis.
func MilestoneDates(src MilestoneSource, slots []TaskSlot) []time.Time {
	var out []time.Time
	for _, slot := range slots {
		if _, t, ok := firstDate(src, slot); ok {
			out = append(out, t)
		}
		if slot.Standalone {
			continue
		}
		if t, ok := dates.Parse(src.Milestone(slot.End)); ok {
			out = append(out, t)
		}
	}
	return out
}

// SpanOf returns the range covered by events, or false when there are none.
// A single-day range is widened to one day so positions stay finite.
func SpanOf(events []TimedEvent) (Span, bool) {
	if len(events) == 0 {
		return Span{}, false
	}
	lo, hi := events[0].Date, events[0].Date
	for _, ev := range events[1:] {
		if ev.Date.Before(lo) {
			lo = ev.Date
		}
		if ev.Date.After(hi) {
			hi = ev.Date
		}
	}
	return NewSpan(lo, hi), true
}

// NewSpan builds a span from its bounds, widening an empty range by a day.
func NewSpan(start, end time.Time) Span {
	if !end.After(start) {
		end = dates.AddDays(start, 1)
	}
	return Span{Start: start, End: end, TotalDays: dates.DayCount(start, end)}
}

// Pad widens the span by days on both sides.
func (s Span) Pad(days int) Span {
	if days <= 0 {
		return s
	}
	return NewSpan(dates.AddDays(s.Start, -days), dates.AddDays(s.End, days))
}

// Contains reports whether t falls inside the span, bounds included.
func (s Span) Contains(t time.Time) bool {
	return !t.Before(s.Start) && !t.After(s.End)
}
