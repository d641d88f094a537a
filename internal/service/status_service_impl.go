package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/progress"
	"github.com/alexanderramin/tiendo/internal/repository"
)

type statusService struct {
	projects repository.ProjectRepo
	clock    func() time.Time
}

func NewStatusService(projects repository.ProjectRepo, clock func() time.Time) StatusService {
	if clock == nil {
		clock = time.Now
	}
	return &statusService{projects: projects, clock: clock}
}

func (s *statusService) GetStatus(ctx context.Context, req contract.StatusRequest) (*contract.StatusResponse, error) {
	now := s.clock()
	if req.Now != nil {
		now = *req.Now
	}

	projects, err := s.projects.List(ctx, req.IncludeArchived)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}

	projects, err = filterProjectsByScope(projects, req.ProjectScope)
	if err != nil {
		return nil, err
	}

	views := make([]contract.ProjectStatusView, 0, len(projects))
	for _, p := range projects {
		views = append(views, buildStatusView(p, now))
	}
	sortStatusViews(views)

	return &contract.StatusResponse{
		GeneratedAt: now.UTC(),
		Summary:     buildStatusSummary(views),
		Projects:    views,
	}, nil
}

// filterProjectsByScope keeps projects whose short ID or UUID appears in
// scope. Every scope entry must match something.
func filterProjectsByScope(projects []*domain.Project, scope []string) ([]*domain.Project, error) {
	if len(scope) == 0 {
		return projects, nil
	}
	var out []*domain.Project
	for _, want := range scope {
		found := false
		for _, p := range projects {
			if strings.EqualFold(p.ShortID, want) || p.ID == want {
				out = append(out, p)
				found = true
				break
			}
		}
		if !found {
			return nil, &contract.StatusError{
				Code:    contract.StatusErrInvalidScope,
				Message: fmt.Sprintf("no project matches %q", want),
			}
		}
	}
	return out, nil
}

func buildStatusView(p *domain.Project, now time.Time) contract.ProjectStatusView {
	v := contract.ProjectStatusView{
		ProjectID:         p.ID,
		ShortID:           p.ShortID,
		Name:              p.Name,
		Archived:          p.Archived(),
		Status:            progress.Evaluate(p, now),
		ConstructionStart: p.ConstructionStartDate,
		PlannedAcceptance: p.PlannedAcceptanceDate,
	}
	if f, raw, ok := nextMilestone(p, now); ok {
		v.NextMilestone = f.Label()
		v.NextMilestoneDate = raw
	}
	return v
}

// nextMilestone returns the earliest parseable milestone dated today or
// later. Ties keep lifecycle order.
func nextMilestone(p *domain.Project, now time.Time) (domain.MilestoneField, string, bool) {
	today := dates.Today(now)
	var (
		best     domain.MilestoneField
		bestRaw  string
		bestDate time.Time
		found    bool
	)
	for _, f := range domain.MilestoneFields {
		raw := p.Milestone(f)
		d, ok := dates.Parse(raw)
		if !ok || d.Before(today) {
			continue
		}
		if !found || d.Before(bestDate) {
			best, bestRaw, bestDate, found = f, raw, d, true
		}
	}
	return best, bestRaw, found
}

// phaseRank orders the board so projects needing attention come first.
var phaseRank = map[progress.Phase]int{
	progress.PhaseOverdue:           0,
	progress.PhaseDueSoon:           1,
	progress.PhaseMissingAcceptance: 2,
	progress.PhaseOnTrack:           3,
	progress.PhaseNotStarted:        4,
	progress.PhasePreparing:         5,
	progress.PhaseSettling:          6,
	progress.PhaseSettled:           7,
}

func sortStatusViews(views []contract.ProjectStatusView) {
	sort.SliceStable(views, func(i, j int) bool {
		ri, rj := phaseRank[views[i].Status.Phase], phaseRank[views[j].Status.Phase]
		if ri != rj {
			return ri < rj
		}
		di, dj := views[i].Status.DaysRemaining, views[j].Status.DaysRemaining
		if di != nil && dj != nil && *di != *dj {
			return *di < *dj
		}
		return views[i].ShortID < views[j].ShortID
	})
}

func buildStatusSummary(views []contract.ProjectStatusView) contract.GlobalStatusSummary {
	sum := contract.GlobalStatusSummary{Counts: make(map[progress.Phase]int), Total: len(views)}
	for _, v := range views {
		sum.Counts[v.Status.Phase]++
		switch v.Status.Phase {
		case progress.PhaseOverdue:
			sum.Overdue++
		case progress.PhaseDueSoon:
			sum.DueSoon++
		}
	}
	return sum
}
