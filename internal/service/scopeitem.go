package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"scope-service/internal/domain/client"
	"scope-service/internal/domain/project"
	"scope-service/internal/domain/scopeitem"
	"scope-service/internal/infra/cache"
	"scope-service/internal/repository"
	apperrors "scope-service/pkg/errors"
)

type ScopeItemService struct {
	projects   repository.ProjectRepository
	clients    repository.ClientRepository
	scopeItems repository.ScopeItemRepository
	inv        *invalidator
}

func NewScopeItemService(
	projects repository.ProjectRepository,
	clients repository.ClientRepository,
	scopeItems repository.ScopeItemRepository,
	store cache.Store,
	logger *log.Logger,
) *ScopeItemService {
	return &ScopeItemService{
		projects:   projects,
		clients:    clients,
		scopeItems: scopeItems,
		inv:        newInvalidator(store, logger),
	}
}

// ScopeItemExport is the read model handed to the external document
// renderer.
type ScopeItemExport struct {
	Project *project.Project       `json:"project"`
	Client  *client.Client         `json:"client"`
	Items   []*scopeitem.ScopeItem `json:"items"`
}

func validateScopeItemName(name string) error {
	if name == "" {
		return apperrors.Validation("name is required")
	}
	if len(name) > scopeitem.MaxNameLength {
		return apperrors.Validation("name must be at most %d characters", scopeitem.MaxNameLength)
	}
	return nil
}

func validateScopeItemDescription(desc string) error {
	if len(desc) > scopeitem.MaxDescriptionLength {
		return apperrors.Validation("description must be at most %d characters", scopeitem.MaxDescriptionLength)
	}
	return nil
}

func (s *ScopeItemService) Create(ctx context.Context, projectID, userID uuid.UUID, name, description string) (*scopeitem.ScopeItem, error) {
	if err := validateScopeItemName(name); err != nil {
		return nil, err
	}
	if err := validateScopeItemDescription(description); err != nil {
		return nil, err
	}

	if _, err := s.projects.FindOwned(ctx, projectID, userID); err != nil {
		return nil, err
	}

	item, err := s.scopeItems.Create(ctx, scopeitem.CreateScopeItemInput{
		ProjectID:   projectID,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	s.inv.projectScoped(projectID, userID)

	return item, nil
}

func (s *ScopeItemService) List(ctx context.Context, projectID, userID uuid.UUID) ([]*scopeitem.ScopeItem, error) {
	if _, err := s.projects.FindOwned(ctx, projectID, userID); err != nil {
		return nil, err
	}

	return s.scopeItems.ListByProject(ctx, projectID)
}

func (s *ScopeItemService) Update(ctx context.Context, id, projectID, userID uuid.UUID, input scopeitem.UpdateScopeItemInput) (*scopeitem.ScopeItem, error) {
	if input.Name != nil {
		if err := validateScopeItemName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := validateScopeItemDescription(*input.Description); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		if err := input.Status.Validate(); err != nil {
			return nil, apperrors.Validation("%v", err)
		}
	}

	if _, err := s.projects.FindOwned(ctx, projectID, userID); err != nil {
		return nil, err
	}

	item, err := s.scopeItems.Update(ctx, id, projectID, input)
	if err != nil {
		return nil, err
	}

	s.inv.projectScoped(projectID, userID)

	return item, nil
}

func (s *ScopeItemService) Delete(ctx context.Context, id, projectID, userID uuid.UUID) error {
	if _, err := s.projects.FindOwned(ctx, projectID, userID); err != nil {
		return err
	}

	if err := s.scopeItems.Delete(ctx, id, projectID); err != nil {
		return err
	}

	s.inv.projectScoped(projectID, userID)

	return nil
}

// Export resolves the project, its client and every scope item into the
// document read model. It performs no mutation and no cache writes.
func (s *ScopeItemService) Export(ctx context.Context, projectID, userID uuid.UUID) (*ScopeItemExport, error) {
	p, err := s.projects.FindOwned(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	c, err := s.clients.GetByID(ctx, p.ClientID)
	if err != nil {
		return nil, err
	}

	items, err := s.scopeItems.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &ScopeItemExport{Project: p, Client: c, Items: items}, nil
}
