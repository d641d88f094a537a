package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/svg"
	"github.com/alexanderramin/tiendo/internal/timeline"
	"github.com/gofiber/fiber/v2"
)

type handlers struct {
	svcs Services
}

// ProjectSummary is the list representation of a project.
type ProjectSummary struct {
	ID       string `json:"id"`
	ShortID  string `json:"short_id"`
	Name     string `json:"name"`
	Archived bool   `json:"archived"`
}

// ProjectDetail adds every recorded milestone, keyed by field name.
type ProjectDetail struct {
	ProjectSummary
	Milestones map[string]string `json:"milestones"`
	Decisions  map[string]string `json:"decisions,omitempty"`
}

func summarize(p *domain.Project) ProjectSummary {
	return ProjectSummary{ID: p.ID, ShortID: p.ShortID, Name: p.Name, Archived: p.Archived()}
}

func detail(p *domain.Project) ProjectDetail {
	d := ProjectDetail{ProjectSummary: summarize(p), Milestones: make(map[string]string)}
	for _, f := range domain.MilestoneFields {
		if v := p.Milestone(f); v != "" {
			d.Milestones[string(f)] = v
		}
	}
	for k, v := range map[string]string{
		"capital_plan":   p.CapitalPlanApproval.DecisionNumber,
		"technical_plan": p.TechnicalPlanApproval.DecisionNumber,
		"budget":         p.BudgetApproval.DecisionNumber,
	} {
		if v != "" {
			if d.Decisions == nil {
				d.Decisions = make(map[string]string)
			}
			d.Decisions[k] = v
		}
	}
	return d
}

// liveness handles GET /healthz.
func (h *handlers) liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// listProjects handles GET /api/v1/projects[?all=true].
func (h *handlers) listProjects(c *fiber.Ctx) error {
	projects, err := h.svcs.Projects.List(c.UserContext(), c.QueryBool("all"))
	if err != nil {
		return err
	}
	out := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, summarize(p))
	}
	return c.JSON(fiber.Map{"projects": out})
}

// getProject handles GET /api/v1/projects/:id.
func (h *handlers) getProject(c *fiber.Ctx) error {
	p, err := h.svcs.Projects.Resolve(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(detail(p))
}

// timelineRequest reads ?mode=, ?today= and ?ppd= for a project.
func timelineRequest(c *fiber.Ctx) (contract.TimelineRequest, error) {
	req := contract.NewTimelineRequest(c.Params("id"))
	if raw := c.Query("mode"); raw != "" {
		req.Mode = timeline.Mode(raw)
	}
	now, err := todayParam(c)
	if err != nil {
		return req, err
	}
	req.Now = now
	if raw := c.Query("ppd"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return req, fiber.NewError(fiber.StatusBadRequest, "ppd must be a positive number")
		}
		req.PixelsPerDay = v
	}
	return req, nil
}

func todayParam(c *fiber.Ctx) (*time.Time, error) {
	raw := c.Query("today")
	if raw == "" {
		return nil, nil
	}
	t, ok := dates.Parse(raw)
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "today must be a DD/MM/YYYY date")
	}
	return &t, nil
}

// projectTimeline handles GET /api/v1/projects/:id/timeline.
func (h *handlers) projectTimeline(c *fiber.Ctx) error {
	req, err := timelineRequest(c)
	if err != nil {
		return err
	}
	view, err := h.svcs.Timeline.Project(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// projectTimelineSVG handles GET /api/v1/projects/:id/timeline.svg. A
// project with nothing to draw answers like the JSON route.
func (h *handlers) projectTimelineSVG(c *fiber.Ctx) error {
	req, err := timelineRequest(c)
	if err != nil {
		return err
	}
	view, err := h.svcs.Timeline.Project(c.UserContext(), req)
	if err != nil {
		return err
	}
	if !view.Show {
		return c.JSON(view)
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml; charset=utf-8")
	return c.SendString(svg.RenderPlan(view.Plan, svg.Options{Title: view.ShortID + " " + view.Name}))
}

func overviewRequest(c *fiber.Ctx) (contract.OverviewRequest, error) {
	var req contract.OverviewRequest
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			req.ProjectIDs = append(req.ProjectIDs, id)
		}
	}
	req.IncludeArchived = c.QueryBool("all")
	now, err := todayParam(c)
	if err != nil {
		return req, err
	}
	req.Now = now
	return req, nil
}

// overview handles GET /api/v1/overview[?ids=a,b].
func (h *handlers) overview(c *fiber.Ctx) error {
	req, err := overviewRequest(c)
	if err != nil {
		return err
	}
	view, err := h.svcs.Timeline.Overview(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// overviewSVG handles GET /api/v1/overview.svg.
func (h *handlers) overviewSVG(c *fiber.Ctx) error {
	req, err := overviewRequest(c)
	if err != nil {
		return err
	}
	view, err := h.svcs.Timeline.Overview(c.UserContext(), req)
	if err != nil {
		return err
	}
	if !view.Show {
		return c.JSON(view)
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml; charset=utf-8")
	return c.SendString(svg.RenderOverview(view.Overview))
}

// status handles GET /api/v1/status.
func (h *handlers) status(c *fiber.Ctx) error {
	req := contract.NewStatusRequest()
	req.IncludeArchived = c.QueryBool("all")
	if scope := c.Query("ids"); scope != "" {
		req.ProjectScope = strings.Split(scope, ",")
	}
	now, err := todayParam(c)
	if err != nil {
		return err
	}
	req.Now = now
	resp, err := h.svcs.Status.GetStatus(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
