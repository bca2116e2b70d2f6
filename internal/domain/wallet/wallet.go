package wallet

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	apperrors "scope-service/pkg/errors"
)

type Chain string

const (
	ChainETHMainnet Chain = "ETH_MAINNET"
)

type Asset string

const (
	AssetETH  Asset = "ETH"
	AssetUSDT Asset = "USDT"
)

// supportedAssets is the per-chain asset allow-list.
var supportedAssets = map[Chain][]Asset{
	ChainETHMainnet: {AssetETH, AssetUSDT},
}

func (c Chain) Validate() error {
	if _, ok := supportedAssets[c]; !ok {
		return apperrors.Validation("unsupported chain: %s", string(c))
	}
	return nil
}

// Supports reports whether the asset is allowed on this chain.
func (c Chain) Supports(a Asset) bool {
	for _, asset := range supportedAssets[c] {
		if asset == a {
			return true
		}
	}
	return false
}

var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

func ValidateAddress(addr string) error {
	if !addressPattern.MatchString(addr) {
		return apperrors.Validation("invalid wallet address")
	}
	return nil
}

// Wallet is a per-user, per-chain receiving address. Exactly one wallet per
// (user, chain) pair is primary at all times once any wallet exists for
// that pair.
type Wallet struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Address   string    `json:"address"`
	Chain     Chain     `json:"chain"`
	IsPrimary bool      `json:"isPrimary"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateWalletInput struct {
	UserID    uuid.UUID
	Address   string
	Chain     Chain
	IsPrimary bool
}
