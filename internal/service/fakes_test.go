package service

import (
	"context"
	"io"
	"log"
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
	"scope-service/internal/domain/wallet"
	"scope-service/internal/infra/cache"
	apperrors "scope-service/pkg/errors"
)

// In-memory fakes mirroring the postgres repositories' contracts: compound
// ownership reads return the typed *_NOT_FOUND sentinel on no match, and the
// change order fake enforces the one-per-request uniqueness the database
// constraint provides.

type fakeUnitOfWork struct{}

func (fakeUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeProjectRepo struct {
	byID map[uuid.UUID]*project.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{byID: make(map[uuid.UUID]*project.Project)}
}

func (r *fakeProjectRepo) Create(_ context.Context, input project.CreateProjectInput) (*project.Project, error) {
	p := &project.Project{
		ID:          uuid.New(),
		UserID:      input.UserID,
		ClientID:    input.ClientID,
		Name:        input.Name,
		Description: input.Description,
		Status:      project.StatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *fakeProjectRepo) FindOwned(_ context.Context, id, userID uuid.UUID) (*project.Project, error) {
	p, ok := r.byID[id]
	if !ok || p.UserID != userID {
		return nil, apperrors.ErrProjectNotFound
	}
	return p, nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*project.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrProjectNotFound
	}
	return p, nil
}

func (r *fakeProjectRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*project.Project, error) {
	out := []*project.Project{}
	for _, p := range r.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, id uuid.UUID, input project.UpdateProjectInput) (*project.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrProjectNotFound
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Status != nil {
		p.Status = *input.Status
	}
	p.UpdatedAt = time.Now()
	return p, nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return apperrors.ErrProjectNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeClientRepo struct {
	byID map[uuid.UUID]*client.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{byID: make(map[uuid.UUID]*client.Client)}
}

func (r *fakeClientRepo) Create(_ context.Context, input client.CreateClientInput) (*client.Client, error) {
	c := &client.Client{
		ID:        uuid.New(),
		Name:      input.Name,
		Email:     input.Email,
		Company:   input.Company,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.byID[c.ID] = c
	return c, nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id uuid.UUID) (*client.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrClientNotFound
	}
	return c, nil
}

func (r *fakeClientRepo) Update(_ context.Context, id uuid.UUID, input client.UpdateClientInput) (*client.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrClientNotFound
	}
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Email != nil {
		c.Email = input.Email
	}
	if input.Company != nil {
		c.Company = input.Company
	}
	c.UpdatedAt = time.Now()
	return c, nil
}

type fakeScopeItemRepo struct {
	byID map[uuid.UUID]*scopeitem.ScopeItem
}

func newFakeScopeItemRepo() *fakeScopeItemRepo {
	return &fakeScopeItemRepo{byID: make(map[uuid.UUID]*scopeitem.ScopeItem)}
}

func (r *fakeScopeItemRepo) Create(_ context.Context, input scopeitem.CreateScopeItemInput) (*scopeitem.ScopeItem, error) {
	item := &scopeitem.ScopeItem{
		ID:          uuid.New(),
		ProjectID:   input.ProjectID,
		Name:        input.Name,
		Description: input.Description,
		Status:      scopeitem.StatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	r.byID[item.ID] = item
	return item, nil
}

func (r *fakeScopeItemRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*scopeitem.ScopeItem, error) {
	out := []*scopeitem.ScopeItem{}
	for _, item := range r.byID {
		if item.ProjectID == projectID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeScopeItemRepo) Update(_ context.Context, id, projectID uuid.UUID, input scopeitem.UpdateScopeItemInput) (*scopeitem.ScopeItem, error) {
	item, ok := r.byID[id]
	if !ok || item.ProjectID != projectID {
		return nil, apperrors.ErrScopeItemNotFound
	}
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Status != nil {
		item.Status = *input.Status
	}
	item.UpdatedAt = time.Now()
	return item, nil
}

func (r *fakeScopeItemRepo) Delete(_ context.Context, id, projectID uuid.UUID) error {
	item, ok := r.byID[id]
	if !ok || item.ProjectID != projectID {
		return apperrors.ErrScopeItemNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeRequestRepo struct {
	byID     map[uuid.UUID]*request.Request
	projects *fakeProjectRepo
}

func newFakeRequestRepo(projects *fakeProjectRepo) *fakeRequestRepo {
	return &fakeRequestRepo{byID: make(map[uuid.UUID]*request.Request), projects: projects}
}

func (r *fakeRequestRepo) Create(_ context.Context, input request.CreateRequestInput) (*request.Request, error) {
	req := &request.Request{
		ID:          uuid.New(),
		ProjectID:   input.ProjectID,
		Description: input.Description,
		Status:      request.StatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	r.byID[req.ID] = req
	return req, nil
}

func (r *fakeRequestRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*request.Request, error) {
	out := []*request.Request{}
	for _, req := range r.byID {
		if req.ProjectID == projectID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) FindOwned(_ context.Context, id, userID uuid.UUID) (*request.Request, error) {
	req, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	p, ok := r.projects.byID[req.ProjectID]
	if !ok || p.UserID != userID {
		return nil, apperrors.ErrRequestNotFound
	}
	return req, nil
}

func (r *fakeRequestRepo) Update(_ context.Context, id uuid.UUID, input request.UpdateRequestInput) (*request.Request, error) {
	req, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	if input.Description != nil {
		req.Description = *input.Description
	}
	if input.Status != nil {
		req.Status = *input.Status
	}
	req.UpdatedAt = time.Now()
	return req, nil
}

func (r *fakeRequestRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return apperrors.ErrRequestNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeChangeOrderRepo struct {
	byID     map[uuid.UUID]*changeorder.ChangeOrder
	projects *fakeProjectRepo
	requests *fakeRequestRepo
}

func newFakeChangeOrderRepo(projects *fakeProjectRepo, requests *fakeRequestRepo) *fakeChangeOrderRepo {
	return &fakeChangeOrderRepo{
		byID:     make(map[uuid.UUID]*changeorder.ChangeOrder),
		projects: projects,
		requests: requests,
	}
}

func (r *fakeChangeOrderRepo) FindEligibleRequest(_ context.Context, requestID, projectID, userID uuid.UUID) (*request.Request, error) {
	req, ok := r.requests.byID[requestID]
	if !ok || req.ProjectID != projectID {
		return nil, apperrors.ErrRequestNotEligible
	}
	p, ok := r.projects.byID[projectID]
	if !ok || p.UserID != userID {
		return nil, apperrors.ErrRequestNotEligible
	}
	if req.Status != request.StatusOutOfScope {
		return nil, apperrors.ErrRequestNotEligible
	}
	for _, co := range r.byID {
		if co.RequestID == requestID {
			return nil, apperrors.ErrRequestNotEligible
		}
	}
	return req, nil
}

func (r *fakeChangeOrderRepo) Create(_ context.Context, input changeorder.CreateChangeOrderInput) (*changeorder.ChangeOrder, error) {
	for _, co := range r.byID {
		if co.RequestID == input.RequestID {
			return nil, apperrors.ErrRequestNotEligible
		}
	}
	co := &changeorder.ChangeOrder{
		ID:        uuid.New(),
		RequestID: input.RequestID,
		ProjectID: input.ProjectID,
		UserID:    input.UserID,
		PriceUSD:  input.PriceUSD,
		ExtraDays: input.ExtraDays,
		Status:    changeorder.StatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.byID[co.ID] = co
	return co, nil
}

func (r *fakeChangeOrderRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*changeorder.ChangeOrder, error) {
	out := []*changeorder.ChangeOrder{}
	for _, co := range r.byID {
		if co.ProjectID == projectID {
			out = append(out, co)
		}
	}
	return out, nil
}

func (r *fakeChangeOrderRepo) FindScoped(_ context.Context, id, projectID, userID uuid.UUID) (*changeorder.ChangeOrder, error) {
	co, ok := r.byID[id]
	if !ok || co.ProjectID != projectID || co.UserID != userID {
		return nil, apperrors.ErrChangeOrderNotFound
	}
	return co, nil
}

func (r *fakeChangeOrderRepo) Update(_ context.Context, id uuid.UUID, input changeorder.UpdateChangeOrderInput) (*changeorder.ChangeOrder, error) {
	co, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrChangeOrderNotFound
	}
	if input.PriceUSD != nil {
		co.PriceUSD = *input.PriceUSD
	}
	if input.ExtraDays != nil {
		co.ExtraDays = input.ExtraDays
	}
	if input.Status != nil {
		co.Status = *input.Status
	}
	co.UpdatedAt = time.Now()
	return co, nil
}

func (r *fakeChangeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return apperrors.ErrChangeOrderNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeShareLinkRepo struct {
	byID     map[uuid.UUID]*sharelink.ShareLink
	projects *fakeProjectRepo
}

func newFakeShareLinkRepo(projects *fakeProjectRepo) *fakeShareLinkRepo {
	return &fakeShareLinkRepo{byID: make(map[uuid.UUID]*sharelink.ShareLink), projects: projects}
}

func (r *fakeShareLinkRepo) Create(_ context.Context, input sharelink.CreateShareLinkInput) (*sharelink.ShareLink, error) {
	l := &sharelink.ShareLink{
		ID:               uuid.New(),
		ProjectID:        input.ProjectID,
		TokenHash:        input.TokenHash,
		ExpiresAt:        input.ExpiresAt,
		ShowScopeItems:   input.ShowScopeItems,
		ShowRequests:     input.ShowRequests,
		ShowChangeOrders: input.ShowChangeOrders,
		IsActive:         true,
		CreatedAt:        time.Now(),
	}
	r.byID[l.ID] = l
	return l, nil
}

func (r *fakeShareLinkRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*sharelink.ShareLink, error) {
	out := []*sharelink.ShareLink{}
	for _, l := range r.byID {
		if l.ProjectID == projectID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeShareLinkRepo) FindOwned(_ context.Context, id, userID uuid.UUID) (*sharelink.ShareLink, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrShareLinkNotFound
	}
	p, ok := r.projects.byID[l.ProjectID]
	if !ok || p.UserID != userID {
		return nil, apperrors.ErrShareLinkNotFound
	}
	return l, nil
}

func (r *fakeShareLinkRepo) FindByTokenHash(_ context.Context, tokenHash string) (*sharelink.ShareLink, error) {
	for _, l := range r.byID {
		if l.TokenHash == tokenHash {
			return l, nil
		}
	}
	return nil, apperrors.ErrShareLinkNotFound
}

func (r *fakeShareLinkRepo) Revoke(_ context.Context, id uuid.UUID, at time.Time) (*sharelink.ShareLink, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrShareLinkNotFound
	}
	l.IsActive = false
	l.RevokedAt = &at
	return l, nil
}

func (r *fakeShareLinkRepo) RecordView(_ context.Context, id uuid.UUID, at time.Time) error {
	l, ok := r.byID[id]
	if !ok {
		return apperrors.ErrShareLinkNotFound
	}
	l.ViewCount++
	l.LastViewedAt = &at
	return nil
}

type fakeWalletRepo struct {
	byID map[uuid.UUID]*wallet.Wallet
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{byID: make(map[uuid.UUID]*wallet.Wallet)}
}

func (r *fakeWalletRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*wallet.Wallet, error) {
	out := []*wallet.Wallet{}
	for _, w := range r.byID {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWalletRepo) Exists(_ context.Context, userID uuid.UUID, chain wallet.Chain, address string) (bool, error) {
	for _, w := range r.byID {
		if w.UserID == userID && w.Chain == chain && w.Address == address {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeWalletRepo) HasPrimary(_ context.Context, userID uuid.UUID, chain wallet.Chain) (bool, error) {
	for _, w := range r.byID {
		if w.UserID == userID && w.Chain == chain && w.IsPrimary {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeWalletRepo) DemotePrimary(_ context.Context, userID uuid.UUID, chain wallet.Chain) error {
	for _, w := range r.byID {
		if w.UserID == userID && w.Chain == chain {
			w.IsPrimary = false
		}
	}
	return nil
}

func (r *fakeWalletRepo) Create(_ context.Context, input wallet.CreateWalletInput) (*wallet.Wallet, error) {
	w := &wallet.Wallet{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Address:   input.Address,
		Chain:     input.Chain,
		IsPrimary: input.IsPrimary,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.byID[w.ID] = w
	return w, nil
}

func (r *fakeWalletRepo) FindOwned(_ context.Context, id, userID uuid.UUID) (*wallet.Wallet, error) {
	w, ok := r.byID[id]
	if !ok || w.UserID != userID {
		return nil, apperrors.ErrWalletNotFound
	}
	return w, nil
}

func (r *fakeWalletRepo) SetPrimary(_ context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	w, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrWalletNotFound
	}
	w.IsPrimary = true
	return w, nil
}

func (r *fakeWalletRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return apperrors.ErrWalletNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakePaymentLinkRepo struct {
	byID map[uuid.UUID]*paymentlink.PaymentLink
}

func newFakePaymentLinkRepo() *fakePaymentLinkRepo {
	return &fakePaymentLinkRepo{byID: make(map[uuid.UUID]*paymentlink.PaymentLink)}
}

func (r *fakePaymentLinkRepo) Create(_ context.Context, input paymentlink.CreatePaymentLinkInput) (*paymentlink.PaymentLink, error) {
	pl := &paymentlink.PaymentLink{
		ID:        uuid.New(),
		UserID:    input.UserID,
		WalletID:  input.WalletID,
		Slug:      input.Slug,
		Chain:     input.Chain,
		Asset:     input.Asset,
		AmountUSD: input.AmountUSD,
		Memo:      input.Memo,
		Status:    paymentlink.StatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.byID[pl.ID] = pl
	return pl, nil
}

func (r *fakePaymentLinkRepo) FindActiveBySlug(_ context.Context, slug string) (*paymentlink.PaymentLink, error) {
	for _, pl := range r.byID {
		if pl.Slug == slug && pl.Status == paymentlink.StatusActive {
			return pl, nil
		}
	}
	return nil, apperrors.ErrPaymentLinkNotFound
}

func (r *fakePaymentLinkRepo) ListActiveByUser(_ context.Context, userID uuid.UUID) ([]*paymentlink.PaymentLink, error) {
	out := []*paymentlink.PaymentLink{}
	for _, pl := range r.byID {
		if pl.UserID == userID && pl.Status == paymentlink.StatusActive {
			out = append(out, pl)
		}
	}
	return out, nil
}

func (r *fakePaymentLinkRepo) FindOwned(_ context.Context, id, userID uuid.UUID) (*paymentlink.PaymentLink, error) {
	pl, ok := r.byID[id]
	if !ok || pl.UserID != userID {
		return nil, apperrors.ErrPaymentLinkNotFound
	}
	return pl, nil
}

func (r *fakePaymentLinkRepo) Deactivate(_ context.Context, id uuid.UUID) (*paymentlink.PaymentLink, error) {
	pl, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrPaymentLinkNotFound
	}
	pl.Status = paymentlink.StatusInactive
	pl.UpdatedAt = time.Now()
	return pl, nil
}

type fakeDashboardRepo struct {
	counts   dashboard.Counts
	projects []*project.Project
	requests []*request.Request
	orders   []*changeorder.ChangeOrder
}

func (r *fakeDashboardRepo) Counts(_ context.Context, _ uuid.UUID, _, _ time.Time) (*dashboard.Counts, error) {
	counts := r.counts
	return &counts, nil
}

func (r *fakeDashboardRepo) RecentProjects(_ context.Context, _ uuid.UUID, _ int) ([]*project.Project, error) {
	return r.projects, nil
}

func (r *fakeDashboardRepo) RecentRequests(_ context.Context, _ uuid.UUID, _ int) ([]*request.Request, error) {
	return r.requests, nil
}

func (r *fakeDashboardRepo) RecentChangeOrders(_ context.Context, _ uuid.UUID, _ int) ([]*changeorder.ChangeOrder, error) {
	return r.orders, nil
}

// testEnv wires every fake together behind the real services.
type testEnv struct {
	uow          fakeUnitOfWork
	projects     *fakeProjectRepo
	clients      *fakeClientRepo
	scopeItems   *fakeScopeItemRepo
	requests     *fakeRequestRepo
	changeOrders *fakeChangeOrderRepo
	shareLinks   *fakeShareLinkRepo
	wallets      *fakeWalletRepo
	paymentLinks *fakePaymentLinkRepo
	store        *cache.MemoryStore
	logger       *log.Logger
}

func newTestEnv() *testEnv {
	projects := newFakeProjectRepo()
	requests := newFakeRequestRepo(projects)
	return &testEnv{
		projects:     projects,
		clients:      newFakeClientRepo(),
		scopeItems:   newFakeScopeItemRepo(),
		requests:     requests,
		changeOrders: newFakeChangeOrderRepo(projects, requests),
		shareLinks:   newFakeShareLinkRepo(projects),
		wallets:      newFakeWalletRepo(),
		paymentLinks: newFakePaymentLinkRepo(),
		store:        cache.NewMemoryStore(),
		logger:       log.New(io.Discard, "", 0),
	}
}

func (e *testEnv) projectService() *ProjectService {
	return NewProjectService(e.uow, e.projects, e.clients, e.scopeItems, e.requests, e.changeOrders, e.store, time.Minute, e.logger)
}

func (e *testEnv) scopeItemService() *ScopeItemService {
	return NewScopeItemService(e.projects, e.clients, e.scopeItems, e.store, e.logger)
}

func (e *testEnv) requestService() *RequestService {
	return NewRequestService(e.projects, e.requests, e.store, e.logger)
}

func (e *testEnv) changeOrderService() *ChangeOrderService {
	return NewChangeOrderService(e.uow, e.projects, e.clients, e.requests, e.changeOrders, e.store, e.logger)
}

func (e *testEnv) shareLinkService() *ShareLinkService {
	return NewShareLinkService(e.projects, e.clients, e.scopeItems, e.requests, e.changeOrders, e.shareLinks, e.store, time.Minute, e.logger)
}

func (e *testEnv) walletService() *WalletService {
	return NewWalletService(e.uow, e.wallets)
}

func (e *testEnv) paymentLinkService() *PaymentLinkService {
	return NewPaymentLinkService(e.wallets, e.paymentLinks)
}

// seedProject creates a user-owned project with its client directly in the
// fakes.
func (e *testEnv) seedProject(userID uuid.UUID) *project.Project {
	c, _ := e.clients.Create(context.Background(), client.CreateClientInput{Name: "Acme"})
	p, _ := e.projects.Create(context.Background(), project.CreateProjectInput{
		UserID:      userID,
		ClientID:    c.ID,
		Name:        "Website redesign",
		Description: "Marketing site refresh",
	})
	return p
}

// seedRequest creates a request in the given status.
func (e *testEnv) seedRequest(projectID uuid.UUID, status request.Status) *request.Request {
	req, _ := e.requests.Create(context.Background(), request.CreateRequestInput{
		ProjectID:   projectID,
		Description: "Add a blog section",
	})
	req.Status = status
	return req
}
