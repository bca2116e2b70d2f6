package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scope-service/internal/domain/changeorder"
	"scope-service/internal/domain/client"
	"scope-service/internal/domain/dashboard"
	"scope-service/internal/domain/paymentlink"
	"scope-service/internal/domain/project"
	"scope-service/internal/domain/request"
	"scope-service/internal/domain/scopeitem"
	"scope-service/internal/domain/sharelink"
	"scope-service/internal/domain/user"
	"scope-service/internal/domain/wallet"
)

// Repository interfaces consumed by the service layer. Concrete postgres
// implementations live in repository/postgres; in-memory fakes back the
// service tests.
//
// Lookup methods that take both a resource id and a user id use a compound
// predicate so a non-owned resource is indistinguishable from a missing one.
// They return the resource's typed *_NOT_FOUND error on no match.

// UnitOfWork runs fn inside one atomic database transaction. Repository
// calls made with the callback's context join that transaction.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProjectRepository interface {
	Create(ctx context.Context, input project.CreateProjectInput) (*project.Project, error)
	// FindOwned resolves a project by (id AND userID); this is the
	// ownership guard every scoped operation goes through.
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*project.Project, error)
	// GetByID is owner-free and exists solely for the public share-link
	// resolve path. Authenticated reads must use FindOwned.
	GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*project.Project, error)
	Update(ctx context.Context, id uuid.UUID, input project.UpdateProjectInput) (*project.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ClientRepository interface {
	Create(ctx context.Context, input client.CreateClientInput) (*client.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error)
	Update(ctx context.Context, id uuid.UUID, input client.UpdateClientInput) (*client.Client, error)
}

type ScopeItemRepository interface {
	Create(ctx context.Context, input scopeitem.CreateScopeItemInput) (*scopeitem.ScopeItem, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*scopeitem.ScopeItem, error)
	// Update and Delete are scoped compound writes: zero affected rows
	// yields ErrScopeItemNotFound.
	Update(ctx context.Context, id, projectID uuid.UUID, input scopeitem.UpdateScopeItemInput) (*scopeitem.ScopeItem, error)
	Delete(ctx context.Context, id, projectID uuid.UUID) error
}

type RequestRepository interface {
	Create(ctx context.Context, input request.CreateRequestInput) (*request.Request, error)
	// ListByProject returns requests newest-first.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*request.Request, error)
	// FindOwned verifies ownership transitively through the parent project.
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*request.Request, error)
	Update(ctx context.Context, id uuid.UUID, input request.UpdateRequestInput) (*request.Request, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ChangeOrderRepository interface {
	// FindEligibleRequest evaluates the whole eligibility predicate as a
	// single compound query: the request must belong to the project, belong
	// to the user transitively, be OUT_OF_SCOPE, and have no change order.
	// Any failing condition collapses into ErrRequestNotEligible.
	FindEligibleRequest(ctx context.Context, requestID, projectID, userID uuid.UUID) (*request.Request, error)
	Create(ctx context.Context, input changeorder.CreateChangeOrderInput) (*changeorder.ChangeOrder, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*changeorder.ChangeOrder, error)
	FindScoped(ctx context.Context, id, projectID, userID uuid.UUID) (*changeorder.ChangeOrder, error)
	Update(ctx context.Context, id uuid.UUID, input changeorder.UpdateChangeOrderInput) (*changeorder.ChangeOrder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ShareLinkRepository interface {
	Create(ctx context.Context, input sharelink.CreateShareLinkInput) (*sharelink.ShareLink, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*sharelink.ShareLink, error)
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*sharelink.ShareLink, error)
	FindByTokenHash(ctx context.Context, tokenHash string) (*sharelink.ShareLink, error)
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) (*sharelink.ShareLink, error)
	// RecordView increments the view counter; lost updates under high
	// concurrency are an accepted approximation.
	RecordView(ctx context.Context, id uuid.UUID, at time.Time) error
}

type DashboardRepository interface {
	Counts(ctx context.Context, userID uuid.UUID, startOfWeek, startOfMonth time.Time) (*dashboard.Counts, error)
	RecentProjects(ctx context.Context, userID uuid.UUID, limit int) ([]*project.Project, error)
	RecentRequests(ctx context.Context, userID uuid.UUID, limit int) ([]*request.Request, error)
	RecentChangeOrders(ctx context.Context, userID uuid.UUID, limit int) ([]*changeorder.ChangeOrder, error)
}

type WalletRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*wallet.Wallet, error)
	Exists(ctx context.Context, userID uuid.UUID, chain wallet.Chain, address string) (bool, error)
	HasPrimary(ctx context.Context, userID uuid.UUID, chain wallet.Chain) (bool, error)
	// DemotePrimary clears the primary flag for every wallet of the
	// (user, chain) pair.
	DemotePrimary(ctx context.Context, userID uuid.UUID, chain wallet.Chain) error
	Create(ctx context.Context, input wallet.CreateWalletInput) (*wallet.Wallet, error)
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*wallet.Wallet, error)
	SetPrimary(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PaymentLinkRepository interface {
	Create(ctx context.Context, input paymentlink.CreatePaymentLinkInput) (*paymentlink.PaymentLink, error)
	FindActiveBySlug(ctx context.Context, slug string) (*paymentlink.PaymentLink, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*paymentlink.PaymentLink, error)
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*paymentlink.PaymentLink, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*paymentlink.PaymentLink, error)
}

type UserRepository interface {
	// UpsertByExternalID is idempotent: repeated identity events for the
	// same external id converge on one row.
	UpsertByExternalID(ctx context.Context, input user.UpsertUserInput) (*user.User, error)
	DeactivateByExternalID(ctx context.Context, externalID string) (*user.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*user.User, error)
}
