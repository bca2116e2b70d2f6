package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"scope-service/internal/domain/changeorder"
	"scope-service/internal/domain/client"
	"scope-service/internal/domain/project"
	"scope-service/internal/domain/request"
	"scope-service/internal/domain/scopeitem"
	"scope-service/internal/infra/cache"
	"scope-service/internal/repository"
	apperrors "scope-service/pkg/errors"
)

type ProjectService struct {
	uow          repository.UnitOfWork
	projects     repository.ProjectRepository
	clients      repository.ClientRepository
	scopeItems   repository.ScopeItemRepository
	requests     repository.RequestRepository
	changeOrders repository.ChangeOrderRepository
	cache        cache.Store
	cacheTTL     time.Duration
	inv          *invalidator
	logger       *log.Logger
}

func NewProjectService(
	uow repository.UnitOfWork,
	projects repository.ProjectRepository,
	clients repository.ClientRepository,
	scopeItems repository.ScopeItemRepository,
	requests repository.RequestRepository,
	changeOrders repository.ChangeOrderRepository,
	store cache.Store,
	cacheTTL time.Duration,
	logger *log.Logger,
) *ProjectService {
	return &ProjectService{
		uow:          uow,
		projects:     projects,
		clients:      clients,
		scopeItems:   scopeItems,
		requests:     requests,
		changeOrders: changeOrders,
		cache:        store,
		cacheTTL:     cacheTTL,
		inv:          newInvalidator(store, logger),
		logger:       logger,
	}
}

type CreateProjectParams struct {
	Name          string
	Description   string
	ClientName    string
	ClientEmail   *string
	ClientCompany *string
}

// ProjectDetail is the read model behind the project:<id> cache entry.
type ProjectDetail struct {
	Project      *project.Project           `json:"project"`
	Client       *client.Client             `json:"client"`
	ScopeItems   []*scopeitem.ScopeItem     `json:"scopeItems"`
	Requests     []*request.Request         `json:"requests"`
	ChangeOrders []*changeorder.ChangeOrder `json:"changeOrders"`
}

func validateProjectName(name string) error {
	if name == "" {
		return apperrors.Validation("name is required")
	}
	if len(name) > project.MaxNameLength {
		return apperrors.Validation("name must be at most %d characters", project.MaxNameLength)
	}
	return nil
}

func validateProjectDescription(desc string) error {
	if len(desc) > project.MaxDescriptionLength {
		return apperrors.Validation("description must be at most %d characters", project.MaxDescriptionLength)
	}
	return nil
}

// CreateProject creates the client and the project in one transaction; a
// project never exists without its client.
func (s *ProjectService) CreateProject(ctx context.Context, userID uuid.UUID, params CreateProjectParams) (*project.Project, error) {
	if err := validateProjectName(params.Name); err != nil {
		return nil, err
	}
	if err := validateProjectDescription(params.Description); err != nil {
		return nil, err
	}
	if params.ClientName == "" {
		return nil, apperrors.Validation("client name is required")
	}

	var created *project.Project
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.clients.Create(ctx, client.CreateClientInput{
			Name:    params.ClientName,
			Email:   params.ClientEmail,
			Company: params.ClientCompany,
		})
		if err != nil {
			return err
		}

		created, err = s.projects.Create(ctx, project.CreateProjectInput{
			UserID:      userID,
			ClientID:    c.ID,
			Name:        params.Name,
			Description: params.Description,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.inv.delete(cache.DashboardKey(userID))

	return created, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, userID uuid.UUID) ([]*project.Project, error) {
	return s.projects.ListByUser(ctx, userID)
}

// GetProject is the read-through cached project detail. Ownership is checked
// before the cache is consulted so a cached entry can never leak across
// users.
func (s *ProjectService) GetProject(ctx context.Context, projectID, userID uuid.UUID) (*ProjectDetail, error) {
	p, err := s.projects.FindOwned(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	key := cache.ProjectKey(projectID)
	if cached, ok, err := s.cache.Get(key); err != nil {
		s.logger.Printf("cache get failed for %s: %v", key, err)
	} else if ok {
		var detail ProjectDetail
		if err := json.Unmarshal([]byte(cached), &detail); err == nil {
			return &detail, nil
		}
		s.logger.Printf("cache entry for %s is corrupt, rebuilding", key)
	}

	detail := &ProjectDetail{Project: p}
	if detail.Client, err = s.clients.GetByID(ctx, p.ClientID); err != nil {
		return nil, err
	}
	if detail.ScopeItems, err = s.scopeItems.ListByProject(ctx, projectID); err != nil {
		return nil, err
	}
	if detail.Requests, err = s.requests.ListByProject(ctx, projectID); err != nil {
		return nil, err
	}
	if detail.ChangeOrders, err = s.changeOrders.ListByProject(ctx, projectID); err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(detail); err == nil {
		if err := s.cache.Set(key, string(encoded), s.cacheTTL); err != nil {
			s.logger.Printf("cache set failed for %s: %v", key, err)
		}
	}

	return detail, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, projectID, userID uuid.UUID, input project.UpdateProjectInput) (*project.Project, error) {
	if input.Name != nil {
		if err := validateProjectName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := validateProjectDescription(*input.Description); err != nil {
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

	updated, err := s.projects.Update(ctx, projectID, input)
	if err != nil {
		return nil, err
	}

	s.inv.projectScoped(projectID, userID)

	return updated, nil
}

// DeleteProject removes the project; the store cascades to scope items,
// requests, change orders and share links.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID, userID uuid.UUID) error {
	if _, err := s.projects.FindOwned(ctx, projectID, userID); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}

	s.inv.projectScoped(projectID, userID)
	s.inv.shareLinks(projectID)

	return nil
}

// UpdateClient updates the project's client; ownership is derived through
// the project since clients carry no owner of their own.
func (s *ProjectService) UpdateClient(ctx context.Context, projectID, userID uuid.UUID, input client.UpdateClientInput) (*client.Client, error) {
	if input.Name != nil && *input.Name == "" {
		return nil, apperrors.Validation("client name is required")
	}

	p, err := s.projects.FindOwned(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.clients.Update(ctx, p.ClientID, input)
	if err != nil {
		return nil, err
	}

	s.inv.projectScoped(projectID, userID)

	return updated, nil
}
