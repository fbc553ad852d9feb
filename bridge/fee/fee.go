// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

// Package fee prices bridge transfers. Fees are first estimated in the
// native asset from the per-destination schedule and converted into the
// transferred asset through the governance price table when necessary.
package fee

import (
	"math/big"

	coreStore "github.com/sygmaprotocol/sygma-core/store"

	"github.com/ChainSafe/bridge-settlement/bridge"
	"github.com/ChainSafe/bridge-settlement/bridge/location"
	"github.com/ChainSafe/bridge-settlement/bridge/registry"
	"github.com/ChainSafe/bridge-settlement/store"
)

// feeScaleDenominator is parts per 1000, not per 10000. Deliberate; the
// governance-facing fee_scale values are calibrated against it.
const feeScaleDenominator = 1000

// PriceEntry prices one asset against the native asset, both sides in e12
// fixed point.
type PriceEntry struct {
	Asset location.Location
	Price *big.Int
}

type Calculator struct {
	fees        *store.FeeStore
	prices      []PriceEntry
	nativePrice *big.Int
}

// NewCalculator creates a fee calculator reading schedules from db.
// nativeExecutionPrice anchors the price table; prices is ordered and
// governance-owned.
func NewCalculator(db coreStore.KeyValueReaderWriter, prices []PriceEntry, nativeExecutionPrice *big.Int) *Calculator {
	return &Calculator{
		fees:        store.NewFeeStore(db),
		prices:      prices,
		nativePrice: nativeExecutionPrice,
	}
}

// EstimateFeeInNative computes max(min_fee, floor(amount * fee_scale / 1000))
// for an e12 amount. Errors with ErrFeeOptionsMissing when the destination
// has no schedule.
func (c *Calculator) EstimateFeeInNative(destination bridge.ChainID, amount *big.Int) (*big.Int, error) {
	schedule, err := c.fees.Fee(destination)
	if err != nil {
		return nil, err
	}

	estimated := new(big.Int).Mul(amount, big.NewInt(int64(schedule.FeeScale)))
	estimated.Div(estimated, big.NewInt(feeScaleDenominator))
	if estimated.Cmp(schedule.MinFee.Int) > 0 {
		return estimated, nil
	}
	return new(big.Int).Set(schedule.MinFee.Int), nil
}

// GetFee computes the fee for transferring amount of the given asset,
// denominated in that asset's own units. Non-native assets without a price
// entry cannot pay the fee.
func (c *Calculator) GetFee(destination bridge.ChainID, kind registry.AssetKind, amount *big.Int) (*big.Int, error) {
	decimals := kind.Decimals()
	feeInNative, err := c.EstimateFeeInNative(destination, ToE12(amount, decimals))
	if err != nil {
		return nil, err
	}
	if kind.IsNative() {
		return feeInNative, nil
	}

	assetLocation := kind.Location()
	for _, entry := range c.prices {
		if entry.Asset.Equal(assetLocation) {
			feeE12 := new(big.Int).Mul(feeInNative, entry.Price)
			feeE12.Div(feeE12, c.nativePrice)
			return FromE12(feeE12, decimals), nil
		}
	}
	return nil, bridge.ErrCannotPayAsFee
}

// ToE12 normalizes an amount with the given decimal precision to the
// canonical 12 decimal fixed point.
func ToE12(amount *big.Int, decimals uint8) *big.Int {
	if decimals > 12 {
		return new(big.Int).Div(amount, pow10(uint32(decimals)-12))
	}
	return new(big.Int).Mul(amount, pow10(12-uint32(decimals)))
}

// FromE12 rescales an e12 amount back to the given decimal precision.
// Lossy for decimals below 12; the truncation is floor rounding.
func FromE12(amount *big.Int, decimals uint8) *big.Int {
	if decimals > 12 {
		return new(big.Int).Mul(amount, pow10(uint32(decimals)-12))
	}
	return new(big.Int).Div(amount, pow10(12-uint32(decimals)))
}

func pow10(exp uint32) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
}
