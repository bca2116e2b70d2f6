package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scope-service/internal/domain/changeorder"
	"scope-service/internal/domain/request"
	"scope-service/internal/infra/cache"
	apperrors "scope-service/pkg/errors"
)

func TestChangeOrderCreate(t *testing.T) {
	env := newTestEnv()
	svc := env.changeOrderService()
	ctx := context.Background()

	userID := uuid.New()
	p := env.seedProject(userID)
	req := env.seedRequest(p.ID, request.StatusOutOfScope)

	days := 10
	co, err := svc.Create(ctx, p.ID, req.ID, userID, 1500.50, &days)
	require.NoError(t, err)
	assert.Equal(t, changeorder.StatusPending, co.Status)
	assert.Equal(t, req.ID, co.RequestID)
	assert.Equal(t, 1500.50, co.PriceUSD)
	require.NotNil(t, co.ExtraDays)
	assert.Equal(t, 10, *co.ExtraDays)
}

func TestChangeOrderCreate_RequestNotOutOfScope(t *testing.T) {
	env := newTestEnv()
	svc := env.changeOrderService()
	ctx := context.Background()

	userID := uuid.New()
	p := env.seedProject(userID)

	for _, status := range []request.Status{request.StatusPending, request.StatusInScope} {
		req := env.seedRequest(p.ID, status)
		_, err := svc.Create(ctx, p.ID, req.ID, userID, 100, nil)
		assert.Equal(t, apperrors.CodeRequestNotEligible, apperrors.CodeOf(err))
	}
}

func TestChangeOrderCreate_RequestInOtherProject(t *testing.T) {
	env := newTestEnv()
	svc := env.changeOrderService()
	ctx := context.Background()

	userID := uuid.New()
	p := env.seedProject(userID)
	other := env.seedProject(userID)
	req := env.seedRequest(other.ID, request.StatusOutOfScope)

	_, err := svc.Create(ctx, p.ID, req.ID, userID, 100, nil)
	assert.Equal(t, apperrors.CodeRequestNotEligible, apperrors.CodeOf(err))
}

func TestChangeOrderCreate_NotOwner(t *testing.T) {
	env := newTestEnv()
	svc := env.changeOrderService()
	ctx := context.Background()

	owner := uuid.New()
	p := env.seedProject(owner)
	req := env.seedRequest(p.ID, request.StatusOutOfScope)

	_, err := svc.Create(ctx, p.ID, req.ID, uuid.New(), 100, nil)
	assert.Equal(t, apperrors.CodeRequestNotEligible, apperrors.CodeOf(err))
}

func TestChangeOrderCreate_SecondCreateFails(t *testing.T) {
	env := newTestEnv()
	svc := env.changeOrderService()
	ctx := context.Background()

	userID := uuid.New()
	p := env.seedProject(userID)
	req := env.seedRequest(p.ID, request.StatusOutOfScope)

	_, err := svc.Create(ctx, p.ID, req.ID, userID, 100, nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, p.ID, req.ID, userID, 200, nil)
	assert.Equal(t, apperrors.CodeRequestNotEligible, apperrors.CodeOf(err))
}

func TestChangeOrderCreate_PriceValidatedBeforeEligibility(t *testing.T) {
	env := newTestEnv()
	svc := env.changeOrderService()
	ctx := context.Background()

	userID := uuid.New()
	p := env.seedProject(userID)
	// Request is IN_SCOPE, so it is also ineligible; the price failure must
	// win because validation runs first.
	req := env.seedRequest(p.ID, request.StatusInScope)

	_, err := svc.Create(ctx, p.ID, req.ID, userID, -5, nil)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestChangeOrderCreate_InvalidExtraDays(t *testing.T) {
	env := newTestEnv()
	svc := env.changeOrderService()
	ctx := context.Background()

	userID := uuid.New()
	p := env.seedProject(userID)
	req := env.seedRequest(p.ID, request.StatusOutOfScope)

	days := 400
	_, err := svc.Create(ctx, p.ID, req.ID, userID, 100, &days)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestChangeOrderCreate_InvalidatesCache(t *testing.T) {
	env := newTestEnv()
	svc := env.changeOrderService()
	ctx := context.Background()

	userID := uuid.New()
	p := env.seedProject(userID)
	req := env.seedRequest(p.ID, request.StatusOutOfScope)

	env.store.Set(cache.ProjectKey(p.ID), "stale", time.Minute)
	env.store.Set(cache.DashboardKey(userID), "stale", time.Minute)

	_, err := svc.Create(ctx, p.ID, req.ID, userID, 100, nil)
	require.NoError(t, err)

	_, ok, _ := env.store.Get(cache.ProjectKey(p.ID))
	assert.False(t, ok)
	_, ok, _ = env.store.Get(cache.DashboardKey(userID))
	assert.False(t, ok)
}

func TestChangeOrderUpdate_Transitions(t *testing.T) {
	env := newTestEnv()
	svc := env.changeOrderService()
	ctx := context.Background()

	userID := uuid.New()
	p := env.seedProject(userID)
	req := env.seedRequest(p.ID, request.StatusOutOfScope)

	co, err := svc.Create(ctx, p.ID, req.ID, userID, 100, nil)
	require.NoError(t, err)

	// PENDING -> PENDING is a legal self-transition.
	pending := changeorder.StatusPending
	price := 250.0
	updated, err := svc.Update(ctx, p.ID, co.ID, userID, changeorder.UpdateChangeOrderInput{PriceUSD: &price, Status: &pending})
	require.NoError(t, err)
	assert.Equal(t, 250.0, updated.PriceUSD)
	assert.Equal(t, changeorder.StatusPending, updated.Status)

	// PENDING -> APPROVED.
	approved := changeorder.StatusApproved
	updated, err = svc.Update(ctx, p.ID, co.ID, userID, changeorder.UpdateChangeOrderInput{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, changeorder.StatusApproved, updated.Status)

	// APPROVED -> REJECTED is forbidden.
	rejected := changeorder.StatusRejected
	_, err = svc.Update(ctx, p.ID, co.ID, userID, changeorder.UpdateChangeOrderInput{Status: &rejected})
	assert.Equal(t, apperrors.CodeInvalidStatusUpdate, apperrors.CodeOf(err))

	// Even a no-op rewrite of the same terminal status is forbidden.
	_, err = svc.Update(ctx, p.ID, co.ID, userID, changeorder.UpdateChangeOrderInput{Status: &approved})
	assert.Equal(t, apperrors.CodeInvalidStatusUpdate, apperrors.CodeOf(err))

	// A price-only update on a decided order is forbidden too.
	_, err = svc.Update(ctx, p.ID, co.ID, userID, changeorder.UpdateChangeOrderInput{PriceUSD: &price})
	assert.Equal(t, apperrors.CodeInvalidStatusUpdate, apperrors.CodeOf(err))
}

func TestChangeOrderDelete_TerminalImmutable(t *testing.T) {
	env := newTestEnv()
	svc := env.changeOrderService()
	ctx := context.Background()

	userID := uuid.New()
	p := env.seedProject(userID)
	req := env.seedRequest(p.ID, request.StatusOutOfScope)

	co, err := svc.Create(ctx, p.ID, req.ID, userID, 100, nil)
	require.NoError(t, err)

	rejected := changeorder.StatusRejected
	_, err = svc.Update(ctx, p.ID, co.ID, userID, changeorder.UpdateChangeOrderInput{Status: &rejected})
	require.NoError(t, err)

	err = svc.Delete(ctx, p.ID, co.ID, userID)
	assert.Equal(t, apperrors.CodeInvalidStatusUpdate, apperrors.CodeOf(err))
}

func TestChangeOrderDelete_Pending(t *testing.T) {
	env := newTestEnv()
	svc := env.changeOrderService()
	ctx := context.Background()

	userID := uuid.New()
	p := env.seedProject(userID)
	req := env.seedRequest(p.ID, request.StatusOutOfScope)

	co, err := svc.Create(ctx, p.ID, req.ID, userID, 100, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID, co.ID, userID))

	_, err = svc.Get(ctx, p.ID, co.ID, userID)
	assert.Equal(t, apperrors.CodeChangeOrderNotFound, apperrors.CodeOf(err))

	// After deletion the request is eligible again.
	_, err = svc.Create(ctx, p.ID, req.ID, userID, 300, nil)
	assert.NoError(t, err)
}

func TestChangeOrder_OwnershipIsolation(t *testing.T) {
	env := newTestEnv()
	svc := env.changeOrderService()
	ctx := context.Background()

	owner := uuid.New()
	stranger := uuid.New()
	p := env.seedProject(owner)
	req := env.seedRequest(p.ID, request.StatusOutOfScope)

	co, err := svc.Create(ctx, p.ID, req.ID, owner, 100, nil)
	require.NoError(t, err)

	_, err = svc.Get(ctx, p.ID, co.ID, stranger)
	assert.Equal(t, apperrors.CodeProjectNotFound, apperrors.CodeOf(err))

	approved := changeorder.StatusApproved
	_, err = svc.Update(ctx, p.ID, co.ID, stranger, changeorder.UpdateChangeOrderInput{Status: &approved})
	assert.Equal(t, apperrors.CodeProjectNotFound, apperrors.CodeOf(err))

	err = svc.Delete(ctx, p.ID, co.ID, stranger)
	assert.Equal(t, apperrors.CodeProjectNotFound, apperrors.CodeOf(err))
}

func TestChangeOrderExport(t *testing.T) {
	env := newTestEnv()
	svc := env.changeOrderService()
	ctx := context.Background()

	userID := uuid.New()
	p := env.seedProject(userID)
	req := env.seedRequest(p.ID, request.StatusOutOfScope)

	co, err := svc.Create(ctx, p.ID, req.ID, userID, 100, nil)
	require.NoError(t, err)

	export, err := svc.Export(ctx, p.ID, co.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, export.Project.ID)
	assert.Equal(t, p.ClientID, export.Client.ID)
	assert.Equal(t, req.ID, export.Request.ID)
	assert.Equal(t, co.ID, export.Order.ID)
}

func TestRequestStatusMovableWithChangeOrder(t *testing.T) {
	env := newTestEnv()
	coSvc := env.changeOrderService()
	reqSvc := env.requestService()
	ctx := context.Background()

	userID := uuid.New()
	p := env.seedProject(userID)
	req := env.seedRequest(p.ID, request.StatusOutOfScope)

	_, err := coSvc.Create(ctx, p.ID, req.ID, userID, 100, nil)
	require.NoError(t, err)

	// The referencing change order does not freeze the request's status.
	inScope := request.StatusInScope
	updated, err := reqSvc.Update(ctx, req.ID, userID, request.UpdateRequestInput{Status: &inScope})
	require.NoError(t, err)
	assert.Equal(t, request.StatusInScope, updated.Status)

	outOfScope := request.StatusOutOfScope
	updated, err = reqSvc.Update(ctx, req.ID, userID, request.UpdateRequestInput{Status: &outOfScope})
	require.NoError(t, err)
	assert.Equal(t, request.StatusOutOfScope, updated.Status)

	// Back OUT_OF_SCOPE it is still ineligible: the change order exists.
	_, err = coSvc.Create(ctx, p.ID, req.ID, userID, 200, nil)
	assert.Equal(t, apperrors.CodeRequestNotEligible, apperrors.CodeOf(err))
}
