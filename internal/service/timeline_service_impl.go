package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/repository"
	"github.com/alexanderramin/tiendo/internal/timeline"
)

// TimelineConfig holds the layout defaults applied when a request leaves
// them unset.
type TimelineConfig struct {
	PixelsPerDay float64
	PadDays      int
	// Clock supplies "now" when a request carries none.
	Clock func() time.Time
}

type timelineService struct {
	projects repository.ProjectRepo
	cfg      TimelineConfig
	cache    *planCache
	recorder LayoutRecorder
	observer UseCaseObserver
}

func NewTimelineService(
	projects repository.ProjectRepo,
	cfg TimelineConfig,
	recorder LayoutRecorder,
	observers ...UseCaseObserver,
) TimelineService {
	if cfg.PixelsPerDay <= 0 {
		cfg.PixelsPerDay = timeline.DefaultPixelsPerDay
	}
	if cfg.PadDays == 0 {
		cfg.PadDays = timeline.DefaultPadDays
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if recorder == nil {
		recorder = noopLayoutRecorder{}
	}
	return &timelineService{
		projects: projects,
		cfg:      cfg,
		cache:    newPlanCache(),
		recorder: recorder,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *timelineService) now(req *time.Time) time.Time {
	if req != nil {
		return *req
	}
	return s.cfg.Clock()
}

func (s *timelineService) pixelsPerDay(v float64) float64 {
	if v > 0 {
		return v
	}
	return s.cfg.PixelsPerDay
}

// padDays resolves a request pad: zero takes the default, negative means
// none.
func (s *timelineService) padDays(v int) int {
	switch {
	case v < 0:
		return 0
	case v == 0:
		return max(s.cfg.PadDays, 0)
	default:
		return v
	}
}

func (s *timelineService) Project(ctx context.Context, req contract.TimelineRequest) (view *contract.TimelineView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": req.ProjectID, "mode": string(req.Mode)}
	defer observe(ctx, s.observer, "project-timeline", startedAt, fields, &err)

	mode := req.Mode
	if mode == "" {
		mode = timeline.ModePercent
	}
	if _, ok := timeline.ParseMode(string(mode)); !ok {
		return nil, &contract.TimelineError{Code: contract.TimelineErrInvalidMode, Message: fmt.Sprintf("unknown mode %q", mode)}
	}

	p, err := resolveProject(ctx, s.projects, req.ProjectID)
	if err != nil {
		return nil, err
	}

	ppd, pad := 0.0, 0
	if mode == timeline.ModePixel {
		ppd, pad = s.pixelsPerDay(req.PixelsPerDay), s.padDays(req.PadDays)
	}
	now := s.now(req.Now)

	view = &contract.TimelineView{ProjectID: p.ID, ShortID: p.ShortID, Name: p.Name}
	key, err := newPlanKey(p, mode, ppd, pad, now)
	if err != nil {
		return nil, fmt.Errorf("hashing timeline inputs: %w", err)
	}
	slot := cacheSlot(p.ID, mode)
	if plan, show, ok := s.cache.get(slot, key); ok {
		view.Plan, view.Show, view.Cached = plan, show, true
		fields["cached"] = true
		return view, nil
	}

	began := time.Now()
	plan, show := timeline.Build(p, timeline.Options{
		Scaler:  timeline.ScalerFor(mode, ppd),
		Now:     now,
		PadDays: pad,
	})
	fallbacks := 0
	if show {
		fallbacks = plan.Stats.LaneFallbacks
	}
	s.recorder.ObserveLayout("project", string(mode), show, time.Since(began), fallbacks)
	s.cache.put(slot, key, plan, show)

	view.Plan, view.Show = plan, show
	fields["show"] = show
	return view, nil
}

func (s *timelineService) Overview(ctx context.Context, req contract.OverviewRequest) (view *contract.OverviewView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"requested": len(req.ProjectIDs)}
	defer observe(ctx, s.observer, "portfolio-overview", startedAt, fields, &err)

	var projects []*domain.Project
	if len(req.ProjectIDs) == 0 {
		projects, err = s.projects.List(ctx, req.IncludeArchived)
		if err != nil {
			return nil, fmt.Errorf("loading projects: %w", err)
		}
	} else {
		seen := make(map[string]bool, len(req.ProjectIDs))
		for _, id := range req.ProjectIDs {
			p, err := resolveProject(ctx, s.projects, id)
			if err != nil {
				return nil, err
			}
			if !seen[p.ID] {
				seen[p.ID] = true
				projects = append(projects, p)
			}
		}
	}
	if len(projects) == 0 {
		return nil, &contract.TimelineError{Code: contract.TimelineErrNoProjects, Message: "no projects to draw"}
	}

	view = &contract.OverviewView{}
	inputs := make([]timeline.OverviewInput, 0, len(projects))
	for _, p := range projects {
		if len(timeline.MilestoneDates(p, timeline.DefaultSlots())) == 0 {
			view.Skipped = append(view.Skipped, p.DisplayID())
			continue
		}
		inputs = append(inputs, timeline.OverviewInput{ID: p.DisplayID(), Name: p.ShortName(), Source: p})
	}
	fields["rows"] = len(inputs)

	pad := s.padDays(req.PadDays)
	if pad == 0 {
		pad = -1
	}
	began := time.Now()
	ov, show := timeline.BuildOverview(inputs, timeline.OverviewOptions{
		PixelsPerDay: s.pixelsPerDay(req.PixelsPerDay),
		PadDays:      pad,
		Now:          s.now(req.Now),
	})
	fallbacks := 0
	if show {
		fallbacks = ov.LaneFallbacks()
	}
	s.recorder.ObserveLayout("overview", string(timeline.ModePixel), show, time.Since(began), fallbacks)

	view.Show, view.Overview = show, ov
	return view, nil
}
