package service

import (
	"sync"
	"time"

	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/timeline"
	"github.com/mitchellh/hashstructure/v2"
)

// planKey is every input a single-project plan depends on.
type planKey struct {
	Milestones   []string
	Mode         string
	PixelsPerDay float64
	PadDays      int
	Today        string
}

func newPlanKey(p *domain.Project, mode timeline.Mode, pixelsPerDay float64, padDays int, now time.Time) (uint64, error) {
	ms := make([]string, len(domain.MilestoneFields))
	for i, f := range domain.MilestoneFields {
		ms[i] = p.Milestone(f)
	}
	return hashstructure.Hash(planKey{
		Milestones:   ms,
		Mode:         string(mode),
		PixelsPerDay: pixelsPerDay,
		PadDays:      padDays,
		Today:        dates.FormatFull(dates.Today(now)),
	}, hashstructure.FormatV2, nil)
}

type cachedPlan struct {
	key  uint64
	plan *timeline.RenderPlan
	show bool
}

// planCache holds the latest plan per project and mode. A lookup with a
// different key misses, and the following store supersedes the entry.
// Cached plans are shared and must not be mutated.
type planCache struct {
	mu      sync.Mutex
	entries map[string]cachedPlan
}

func newPlanCache() *planCache {
	return &planCache{entries: make(map[string]cachedPlan)}
}

func cacheSlot(projectID string, mode timeline.Mode) string {
	return projectID + "/" + string(mode)
}

func (c *planCache) get(slot string, key uint64) (*timeline.RenderPlan, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[slot]
	if !ok || e.key != key {
		return nil, false, false
	}
	return e.plan, e.show, true
}

func (c *planCache) put(slot string, key uint64, plan *timeline.RenderPlan, show bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[slot] = cachedPlan{key: key, plan: plan, show: show}
}

func (c *planCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
