package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"scope-service/internal/domain/changeorder"
	"scope-service/internal/domain/request"
	"scope-service/internal/domain/scopeitem"
	"scope-service/internal/domain/sharelink"
	"scope-service/internal/infra/cache"
	"scope-service/internal/repository"
	apperrors "scope-service/pkg/errors"
	"scope-service/pkg/token"
)

type ShareLinkService struct {
	projects     repository.ProjectRepository
	clients      repository.ClientRepository
	scopeItems   repository.ScopeItemRepository
	requests     repository.RequestRepository
	changeOrders repository.ChangeOrderRepository
	shareLinks   repository.ShareLinkRepository
	cache        cache.Store
	cacheTTL     time.Duration
	inv          *invalidator
	logger       *log.Logger
	now          func() time.Time
}

func NewShareLinkService(
	projects repository.ProjectRepository,
	clients repository.ClientRepository,
	scopeItems repository.ScopeItemRepository,
	requests repository.RequestRepository,
	changeOrders repository.ChangeOrderRepository,
	shareLinks repository.ShareLinkRepository,
	store cache.Store,
	cacheTTL time.Duration,
	logger *log.Logger,
) *ShareLinkService {
	return &ShareLinkService{
		projects:     projects,
		clients:      clients,
		scopeItems:   scopeItems,
		requests:     requests,
		changeOrders: changeOrders,
		shareLinks:   shareLinks,
		cache:        store,
		cacheTTL:     cacheTTL,
		inv:          newInvalidator(store, logger),
		logger:       logger,
		now:          time.Now,
	}
}

type CreateShareLinkParams struct {
	ExpiresAt        *time.Time
	ShowScopeItems   bool
	ShowRequests     bool
	ShowChangeOrders bool
}

// CreatedShareLink carries the raw token alongside the persisted link. This
// is the only moment the token ever leaves the service.
type CreatedShareLink struct {
	Link  *sharelink.ShareLink `json:"link"`
	Token string               `json:"token"`
}

// SharedProjectView is the payload a visitor sees when resolving a share
// link. Arrays gated off by a visibility flag are present but empty.
type SharedProjectView struct {
	ProjectName        string                     `json:"projectName"`
	ProjectDescription string                     `json:"projectDescription"`
	ProjectStatus      string                     `json:"projectStatus"`
	ClientName         string                     `json:"clientName"`
	ScopeItems         []*scopeitem.ScopeItem     `json:"scopeItems"`
	Requests           []*request.Request         `json:"requests"`
	ChangeOrders       []*changeorder.ChangeOrder `json:"changeOrders"`
}

func (s *ShareLinkService) Create(ctx context.Context, projectID, userID uuid.UUID, params CreateShareLinkParams) (*CreatedShareLink, error) {
	if params.ExpiresAt != nil && params.ExpiresAt.Before(s.now()) {
		return nil, apperrors.Validation("expiresAt must be in the future")
	}

	if _, err := s.projects.FindOwned(ctx, projectID, userID); err != nil {
		return nil, err
	}

	raw, hash, err := token.GenerateShareToken()
	if err != nil {
		return nil, err
	}

	link, err := s.shareLinks.Create(ctx, sharelink.CreateShareLinkInput{
		ProjectID:        projectID,
		TokenHash:        hash,
		ExpiresAt:        params.ExpiresAt,
		ShowScopeItems:   params.ShowScopeItems,
		ShowRequests:     params.ShowRequests,
		ShowChangeOrders: params.ShowChangeOrders,
	})
	if err != nil {
		return nil, err
	}

	s.inv.shareLinks(projectID)

	return &CreatedShareLink{Link: link, Token: raw}, nil
}

// List returns the project's share links through the share-links cache.
// Ownership is checked before the cache is read.
func (s *ShareLinkService) List(ctx context.Context, projectID, userID uuid.UUID) ([]*sharelink.ShareLink, error) {
	if _, err := s.projects.FindOwned(ctx, projectID, userID); err != nil {
		return nil, err
	}

	key := cache.ShareLinksKey(projectID)
	if cached, ok, err := s.cache.Get(key); err != nil {
		s.logger.Printf("cache get failed for %s: %v", key, err)
	} else if ok {
		var links []*sharelink.ShareLink
		if err := json.Unmarshal([]byte(cached), &links); err == nil {
			return links, nil
		}
		s.logger.Printf("cache entry for %s is corrupt, rebuilding", key)
	}

	links, err := s.shareLinks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(links); err == nil {
		if err := s.cache.Set(key, string(encoded), s.cacheTTL); err != nil {
			s.logger.Printf("cache set failed for %s: %v", key, err)
		}
	}

	return links, nil
}

// Revoke is a one-way flip. Revoking an already-revoked link is an error,
// not a no-op.
func (s *ShareLinkService) Revoke(ctx context.Context, id, userID uuid.UUID) (*sharelink.ShareLink, error) {
	link, err := s.shareLinks.FindOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if !link.IsActive {
		return nil, apperrors.ErrShareLinkNotActive
	}

	revoked, err := s.shareLinks.Revoke(ctx, id, s.now())
	if err != nil {
		return nil, err
	}

	s.inv.shareLink(id, link.ProjectID)

	return revoked, nil
}

// Resolve is the public, unauthenticated read path. The token is hashed and
// looked up; active and unexpired links yield the visibility-filtered view.
// A cache hit skips the view-count increment; approximate counts are
// accepted.
func (s *ShareLinkService) Resolve(ctx context.Context, rawToken string) (*SharedProjectView, error) {
	link, err := s.shareLinks.FindByTokenHash(ctx, token.HashToken(rawToken))
	if err != nil {
		return nil, err
	}

	if !link.IsActive {
		return nil, apperrors.ErrShareLinkNotActive
	}
	if link.Expired(s.now()) {
		return nil, apperrors.ErrShareLinkExpired
	}

	key := cache.ShareLinkKey(link.ID)
	if cached, ok, err := s.cache.Get(key); err != nil {
		s.logger.Printf("cache get failed for %s: %v", key, err)
	} else if ok {
		var view SharedProjectView
		if err := json.Unmarshal([]byte(cached), &view); err == nil {
			return &view, nil
		}
		s.logger.Printf("cache entry for %s is corrupt, rebuilding", key)
	}

	view, err := s.buildView(ctx, link)
	if err != nil {
		return nil, err
	}

	// Best-effort: the read returns even if the counter write fails.
	if err := s.shareLinks.RecordView(ctx, link.ID, s.now()); err != nil {
		s.logger.Printf("share link view record failed for %s: %v", link.ID, err)
	}

	if encoded, err := json.Marshal(view); err == nil {
		if err := s.cache.Set(key, string(encoded), s.cacheTTL); err != nil {
			s.logger.Printf("cache set failed for %s: %v", key, err)
		}
	}

	return view, nil
}

func (s *ShareLinkService) buildView(ctx context.Context, link *sharelink.ShareLink) (*SharedProjectView, error) {
	p, err := s.projects.GetByID(ctx, link.ProjectID)
	if err != nil {
		return nil, err
	}

	c, err := s.clients.GetByID(ctx, p.ClientID)
	if err != nil {
		return nil, err
	}

	view := &SharedProjectView{
		ProjectName:        p.Name,
		ProjectDescription: p.Description,
		ProjectStatus:      string(p.Status),
		ClientName:         c.Name,
		ScopeItems:         []*scopeitem.ScopeItem{},
		Requests:           []*request.Request{},
		ChangeOrders:       []*changeorder.ChangeOrder{},
	}

	if link.ShowScopeItems {
		if view.ScopeItems, err = s.scopeItems.ListByProject(ctx, link.ProjectID); err != nil {
			return nil, err
		}
	}
	if link.ShowRequests {
		if view.Requests, err = s.requests.ListByProject(ctx, link.ProjectID); err != nil {
			return nil, err
		}
	}
	if link.ShowChangeOrders {
		if view.ChangeOrders, err = s.changeOrders.ListByProject(ctx, link.ProjectID); err != nil {
			return nil, err
		}
	}

	return view, nil
}
