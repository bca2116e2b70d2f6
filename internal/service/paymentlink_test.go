package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scope-service/internal/domain/paymentlink"
	"scope-service/internal/domain/wallet"
	apperrors "scope-service/pkg/errors"
)

func seedWallet(t *testing.T, env *testEnv, userID uuid.UUID) *wallet.Wallet {
	t.Helper()
	w, err := env.walletService().Create(context.Background(), userID, CreateWalletParams{
		Address: testAddress,
		Chain:   wallet.ChainETHMainnet,
	})
	require.NoError(t, err)
	return w
}

func TestPaymentLinkCreate(t *testing.T) {
	env := newTestEnv()
	svc := env.paymentLinkService()
	ctx := context.Background()
	userID := uuid.New()
	w := seedWallet(t, env, userID)

	amount := 250.0
	pl, err := svc.Create(ctx, userID, CreatePaymentLinkParams{
		WalletID:  w.ID,
		Chain:     wallet.ChainETHMainnet,
		Asset:     wallet.AssetUSDT,
		AmountUSD: &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, paymentlink.StatusActive, pl.Status)
	assert.NotEmpty(t, pl.Slug)

	// The slug resolves publicly.
	got, err := svc.GetBySlug(ctx, pl.Slug)
	require.NoError(t, err)
	assert.Equal(t, pl.ID, got.ID)
}

func TestPaymentLinkCreate_ChainMismatch(t *testing.T) {
	env := newTestEnv()
	svc := env.paymentLinkService()
	ctx := context.Background()
	userID := uuid.New()
	w := seedWallet(t, env, userID)

	_, err := svc.Create(ctx, userID, CreatePaymentLinkParams{
		WalletID: w.ID,
		Chain:    wallet.Chain("SOLANA"),
		Asset:    wallet.AssetETH,
	})
	assert.Equal(t, apperrors.CodeChainMismatch, apperrors.CodeOf(err))
}

func TestPaymentLinkCreate_UnsupportedAsset(t *testing.T) {
	env := newTestEnv()
	svc := env.paymentLinkService()
	ctx := context.Background()
	userID := uuid.New()
	w := seedWallet(t, env, userID)

	_, err := svc.Create(ctx, userID, CreatePaymentLinkParams{
		WalletID: w.ID,
		Chain:    wallet.ChainETHMainnet,
		Asset:    wallet.Asset("DOGE"),
	})
	assert.Equal(t, apperrors.CodeUnsupportedAsset, apperrors.CodeOf(err))
}

func TestPaymentLinkCreate_Validation(t *testing.T) {
	env := newTestEnv()
	svc := env.paymentLinkService()
	ctx := context.Background()
	userID := uuid.New()
	w := seedWallet(t, env, userID)

	small := 0.5
	_, err := svc.Create(ctx, userID, CreatePaymentLinkParams{
		WalletID:  w.ID,
		Chain:     wallet.ChainETHMainnet,
		Asset:     wallet.AssetETH,
		AmountUSD: &small,
	})
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))

	memo := strings.Repeat("x", paymentlink.MaxMemoLength+1)
	_, err = svc.Create(ctx, userID, CreatePaymentLinkParams{
		WalletID: w.ID,
		Chain:    wallet.ChainETHMainnet,
		Asset:    wallet.AssetETH,
		Memo:     &memo,
	})
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestPaymentLinkCreate_ForeignWallet(t *testing.T) {
	env := newTestEnv()
	svc := env.paymentLinkService()
	ctx := context.Background()
	w := seedWallet(t, env, uuid.New())

	_, err := svc.Create(ctx, uuid.New(), CreatePaymentLinkParams{
		WalletID: w.ID,
		Chain:    wallet.ChainETHMainnet,
		Asset:    wallet.AssetETH,
	})
	assert.Equal(t, apperrors.CodeWalletNotFound, apperrors.CodeOf(err))
}

func TestPaymentLinkDelete_SoftDeactivate(t *testing.T) {
	env := newTestEnv()
	svc := env.paymentLinkService()
	ctx := context.Background()
	userID := uuid.New()
	w := seedWallet(t, env, userID)

	pl, err := svc.Create(ctx, userID, CreatePaymentLinkParams{
		WalletID: w.ID,
		Chain:    wallet.ChainETHMainnet,
		Asset:    wallet.AssetETH,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, pl.ID, userID))

	// An inactive link no longer resolves or lists.
	_, err = svc.GetBySlug(ctx, pl.Slug)
	assert.Equal(t, apperrors.CodePaymentLinkNotFound, apperrors.CodeOf(err))

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Deleting again reads as absent.
	err = svc.Delete(ctx, pl.ID, userID)
	assert.Equal(t, apperrors.CodePaymentLinkNotFound, apperrors.CodeOf(err))
}
