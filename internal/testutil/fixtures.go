package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// ProjectOption mutates a test project.
type ProjectOption func(*domain.Project)

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

// WithMilestone sets one raw milestone string.
func WithMilestone(f domain.MilestoneField, v string) ProjectOption {
	return func(p *domain.Project) {
		p.SetMilestone(f, v)
	}
}

// WithConstruction sets the construction start and planned acceptance.
func WithConstruction(start, acceptance string) ProjectOption {
	return func(p *domain.Project) {
		p.ConstructionStartDate = start
		p.PlannedAcceptanceDate = acceptance
	}
}

// WithCapitalPlan sets the capital plan approval decision.
func WithCapitalPlan(decision, date string) ProjectOption {
	return func(p *domain.Project) {
		p.CapitalPlanApproval = domain.Approval{DecisionNumber: decision, Date: date}
	}
}

func WithArchived() ProjectOption {
	return func(p *domain.Project) {
		now := time.Now().UTC()
		p.ArchivedAt = &now
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

// NewTestProject builds a project with no milestones unless options add them.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewScheduledProject is a typical mid-construction project.
func NewScheduledProject(name string, opts ...ProjectOption) *domain.Project {
	base := []ProjectOption{
		WithCapitalPlan("125/QĐ-UBND", "15/05/2024"),
		WithMilestone(domain.FieldDesignITB, "20/05/2024"),
		WithMilestone(domain.FieldDesignContract, "10/06/2024"),
		WithMilestone(domain.FieldBudgetSubmission, "01/07/2024"),
		WithMilestone(domain.FieldBudgetApproved, "20/07/2024"),
		WithConstruction("01/08/2024", "31/10/2024"),
	}
	return NewTestProject(name, append(base, opts...)...)
}
