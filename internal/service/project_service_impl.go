package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/repository"
)

// ErrAmbiguousID is returned when a UUID prefix matches several projects.
var ErrAmbiguousID = errors.New("ambiguous project ID")

type projectService struct {
	projects repository.ProjectRepo
}

func NewProjectService(projects repository.ProjectRepo) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) Resolve(ctx context.Context, input string) (*domain.Project, error) {
	return resolveProject(ctx, s.projects, input)
}

// resolveProject matches input against short IDs first, then full UUIDs,
// then UUID prefixes.
func resolveProject(ctx context.Context, projects repository.ProjectRepo, input string) (*domain.Project, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("project ID is required")
	}

	p, err := projects.GetByShortID(ctx, input)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	all, err := projects.List(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.ID == input {
			return p, nil
		}
	}

	var matches []*domain.Project
	for _, p := range all {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project %q: %w", input, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.DisplayID()
		}
		return nil, fmt.Errorf("%w %q matches %s", ErrAmbiguousID, input, strings.Join(ids, ", "))
	}
}

func (s *projectService) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, includeArchived)
}

func (s *projectService) Archive(ctx context.Context, id string) error {
	return s.projects.Archive(ctx, id)
}

func (s *projectService) Unarchive(ctx context.Context, id string) error {
	return s.projects.Unarchive(ctx, id)
}

func (s *projectService) Delete(ctx context.Context, id string, force bool) error {
	if !force {
		p, err := s.projects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !p.Archived() {
			return fmt.Errorf("project must be archived before deletion (use --force to override)")
		}
	}
	return s.projects.Delete(ctx, id)
}
