package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"scope-service/internal/domain/changeorder"
	"scope-service/internal/domain/client"
	"scope-service/internal/domain/project"
	"scope-service/internal/domain/request"
	"scope-service/internal/infra/cache"
	"scope-service/internal/repository"
	apperrors "scope-service/pkg/errors"
)

// ChangeOrderService owns the request-to-change-order state machine: the
// eligibility predicate at creation, the PENDING-only mutation gate, and
// the transition table. Every write runs inside one transaction; cache
// invalidation happens only after commit.
type ChangeOrderService struct {
	uow          repository.UnitOfWork
	projects     repository.ProjectRepository
	clients      repository.ClientRepository
	requests     repository.RequestRepository
	changeOrders repository.ChangeOrderRepository
	inv          *invalidator
}

func NewChangeOrderService(
	uow repository.UnitOfWork,
	projects repository.ProjectRepository,
	clients repository.ClientRepository,
	requests repository.RequestRepository,
	changeOrders repository.ChangeOrderRepository,
	store cache.Store,
	logger *log.Logger,
) *ChangeOrderService {
	return &ChangeOrderService{
		uow:          uow,
		projects:     projects,
		clients:      clients,
		requests:     requests,
		changeOrders: changeOrders,
		inv:          newInvalidator(store, logger),
	}
}

// ChangeOrderExport is the fully-resolved document read model consumed by
// the external PDF renderer.
type ChangeOrderExport struct {
	Project *project.Project         `json:"project"`
	Client  *client.Client           `json:"client"`
	Request *request.Request         `json:"request"`
	Order   *changeorder.ChangeOrder `json:"changeOrder"`
}

// Create validates the financial fields first, then evaluates the whole
// eligibility predicate and inserts inside one transaction, so two
// concurrent creations against the same request cannot both succeed.
func (s *ChangeOrderService) Create(ctx context.Context, projectID, requestID, userID uuid.UUID, priceUSD float64, extraDays *int) (*changeorder.ChangeOrder, error) {
	if err := changeorder.ValidatePriceUSD(priceUSD); err != nil {
		return nil, err
	}
	if extraDays != nil {
		if err := changeorder.ValidateExtraDays(*extraDays); err != nil {
			return nil, err
		}
	}

	var created *changeorder.ChangeOrder
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.changeOrders.FindEligibleRequest(ctx, requestID, projectID, userID); err != nil {
			return err
		}

		var err error
		created, err = s.changeOrders.Create(ctx, changeorder.CreateChangeOrderInput{
			RequestID: requestID,
			ProjectID: projectID,
			UserID:    userID,
			PriceUSD:  priceUSD,
			ExtraDays: extraDays,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.inv.projectScoped(projectID, userID)

	return created, nil
}

func (s *ChangeOrderService) List(ctx context.Context, projectID, userID uuid.UUID) ([]*changeorder.ChangeOrder, error) {
	if _, err := s.projects.FindOwned(ctx, projectID, userID); err != nil {
		return nil, err
	}

	return s.changeOrders.ListByProject(ctx, projectID)
}

func (s *ChangeOrderService) Get(ctx context.Context, projectID, id, userID uuid.UUID) (*changeorder.ChangeOrder, error) {
	if _, err := s.projects.FindOwned(ctx, projectID, userID); err != nil {
		return nil, err
	}

	return s.changeOrders.FindScoped(ctx, id, projectID, userID)
}

// Update enforces the transition table. A change order that has left
// PENDING rejects every field change, including a no-op rewrite of the same
// terminal status; only PENDING origins may move, and PENDING→PENDING is a
// legal self-transition.
func (s *ChangeOrderService) Update(ctx context.Context, projectID, id, userID uuid.UUID, input changeorder.UpdateChangeOrderInput) (*changeorder.ChangeOrder, error) {
	if input.PriceUSD != nil {
		if err := changeorder.ValidatePriceUSD(*input.PriceUSD); err != nil {
			return nil, err
		}
	}
	if input.ExtraDays != nil {
		if err := changeorder.ValidateExtraDays(*input.ExtraDays); err != nil {
			return nil, err
		}
	}

	if _, err := s.projects.FindOwned(ctx, projectID, userID); err != nil {
		return nil, err
	}

	var updated *changeorder.ChangeOrder
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.changeOrders.FindScoped(ctx, id, projectID, userID)
		if err != nil {
			return err
		}

		if existing.Status != changeorder.StatusPending {
			return apperrors.ErrInvalidStatusUpdate
		}
		if input.Status != nil && !existing.Status.CanTransitionTo(*input.Status) {
			return apperrors.ErrInvalidStatusUpdate
		}

		updated, err = s.changeOrders.Update(ctx, id, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.inv.projectScoped(projectID, userID)

	return updated, nil
}

// Delete is gated exactly like Update: a decided change order is
// permanently immutable, including against deletion.
func (s *ChangeOrderService) Delete(ctx context.Context, projectID, id, userID uuid.UUID) error {
	if _, err := s.projects.FindOwned(ctx, projectID, userID); err != nil {
		return err
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.changeOrders.FindScoped(ctx, id, projectID, userID)
		if err != nil {
			return err
		}

		if existing.Status != changeorder.StatusPending {
			return apperrors.ErrInvalidStatusUpdate
		}

		return s.changeOrders.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.inv.projectScoped(projectID, userID)

	return nil
}

// Export resolves the change order with its project, client and originating
// request for the external renderer. Read-only.
func (s *ChangeOrderService) Export(ctx context.Context, projectID, id, userID uuid.UUID) (*ChangeOrderExport, error) {
	p, err := s.projects.FindOwned(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	co, err := s.changeOrders.FindScoped(ctx, id, projectID, userID)
	if err != nil {
		return nil, err
	}

	c, err := s.clients.GetByID(ctx, p.ClientID)
	if err != nil {
		return nil, err
	}

	req, err := s.requests.FindOwned(ctx, co.RequestID, userID)
	if err != nil {
		return nil, err
	}

	return &ChangeOrderExport{Project: p, Client: c, Request: req, Order: co}, nil
}
