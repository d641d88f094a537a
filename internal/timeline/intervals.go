package timeline

import (
	"fmt"

	"github.com/alexanderramin/tiendo/internal/dates"
)

// DurationText renders the caption for an interval of days.
func DurationText(days int) string {
	return fmt.Sprintf("(%d ngày)", days)
}

// durationLane collapses both above lanes onto the inner above lane and
// both below lanes onto the inner below lane.
func durationLane(l Lane) Lane {
	if l.Above() {
		return LaneInnerAbove
	}
	return LaneInnerBelow
}

// Intervals draws a connecting line, and a day-count caption, for every
// paired task whose start lies strictly before its end and whose start
// event received a lane. Anything else is skipped.
func Intervals(tasks []Task, lanes *LaneAssigner, span Span, sc Scaler) ([]ConnectingLine, []DurationLabel) {
	var lines []ConnectingLine
	var labels []DurationLabel
	for _, task := range tasks {
		if task.Standalone || task.Start == nil || task.End == nil {
			continue
		}
		if !task.Start.Before(*task.End) {
			continue
		}
		lane, ok := lanes.TaskLane(task.Name)
		if !ok {
			continue
		}

		left := sc.Scale(dates.DayCount(span.Start, *task.Start), span)
		right := sc.Scale(dates.DayCount(span.Start, *task.End), span)
		lines = append(lines, ConnectingLine{
			TaskName: task.Name,
			Left:     left,
			Width:    right - left,
			Lane:     lane,
			Color:    task.Color,
		})

		days := dates.DayCount(*task.Start, *task.End)
		if days <= 0 {
			continue
		}
		labels = append(labels, DurationLabel{
			TaskName: task.Name,
			Text:     DurationText(days),
			Days:     days,
			Left:     left,
			Width:    right - left,
			Lane:     durationLane(lane),
			Color:    task.Color,
		})
	}
	return lines, labels
}
