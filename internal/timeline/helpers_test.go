package timeline

import (
	"time"

	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/domain"
)

type record map[domain.MilestoneField]string

func (r record) Milestone(f domain.MilestoneField) string { return r[f] }

func day(s string) time.Time { return dates.MustParse(s) }

func pointsFor(plan *RenderPlan, task string) []EventPoint {
	var out []EventPoint
	for _, p := range plan.EventPoints {
		if p.TaskName == task {
			out = append(out, p)
		}
	}
	return out
}
