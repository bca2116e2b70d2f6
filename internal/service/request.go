package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"scope-service/internal/domain/request"
	"scope-service/internal/infra/cache"
	"scope-service/internal/repository"
	apperrors "scope-service/pkg/errors"
)

type RequestService struct {
	projects repository.ProjectRepository
	requests repository.RequestRepository
	inv      *invalidator
}

func NewRequestService(
	projects repository.ProjectRepository,
	requests repository.RequestRepository,
	store cache.Store,
	logger *log.Logger,
) *RequestService {
	return &RequestService{
		projects: projects,
		requests: requests,
		inv:      newInvalidator(store, logger),
	}
}

func validateRequestDescription(desc string) error {
	if desc == "" {
		return apperrors.Validation("description is required")
	}
	if len(desc) > request.MaxDescriptionLength {
		return apperrors.Validation("description must be at most %d characters", request.MaxDescriptionLength)
	}
	return nil
}

func (s *RequestService) Create(ctx context.Context, projectID, userID uuid.UUID, description string) (*request.Request, error) {
	if err := validateRequestDescription(description); err != nil {
		return nil, err
	}

	if _, err := s.projects.FindOwned(ctx, projectID, userID); err != nil {
		return nil, err
	}

	req, err := s.requests.Create(ctx, request.CreateRequestInput{
		ProjectID:   projectID,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	s.inv.projectScoped(projectID, userID)

	return req, nil
}

func (s *RequestService) List(ctx context.Context, projectID, userID uuid.UUID) ([]*request.Request, error) {
	if _, err := s.projects.FindOwned(ctx, projectID, userID); err != nil {
		return nil, err
	}

	return s.requests.ListByProject(ctx, projectID)
}

// Update applies only the supplied fields. Ownership is verified
// transitively through the parent project; a request owned by someone else
// fails REQUEST_NOT_FOUND exactly like a missing one. PENDING is not a
// settable target; movement between IN_SCOPE and OUT_OF_SCOPE stays open in
// both directions even when a change order already references the request.
func (s *RequestService) Update(ctx context.Context, id, userID uuid.UUID, input request.UpdateRequestInput) (*request.Request, error) {
	if input.Description != nil {
		if err := validateRequestDescription(*input.Description); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		if err := input.Status.ValidateUpdateTarget(); err != nil {
			return nil, apperrors.Validation("%v", err)
		}
	}

	existing, err := s.requests.FindOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.requests.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.inv.projectScoped(existing.ProjectID, userID)

	return updated, nil
}

func (s *RequestService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	existing, err := s.requests.FindOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.requests.Delete(ctx, id); err != nil {
		return err
	}

	s.inv.projectScoped(existing.ProjectID, userID)

	return nil
}
