// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ChainSafe/bridge-settlement/bridge"
	"github.com/ChainSafe/bridge-settlement/bridge/fee"
	"github.com/ChainSafe/bridge-settlement/bridge/location"
	"github.com/ChainSafe/bridge-settlement/bridge/registry"
)

// RawBridgeConfig is the on-disk shape of the settlement configuration.
// Locations are SCALE-encoded hex strings, balances are decimal strings.
type RawBridgeConfig struct {
	WhitelistedChains    []uint8          `mapstructure:"WhitelistedChains" json:"whitelistedChains"`
	TreasuryAccount      string           `mapstructure:"TreasuryAccount" json:"treasuryAccount"`
	NativeExecutionPrice string           `mapstructure:"NativeExecutionPrice" json:"nativeExecutionPrice" default:"1"`
	FeeSchedules         []RawFeeSchedule `mapstructure:"FeeSchedules" json:"feeSchedules"`
	Assets               []RawAsset       `mapstructure:"Assets" json:"assets"`
	Prices               []RawPrice       `mapstructure:"Prices" json:"prices"`
}

type RawFeeSchedule struct {
	DestChainID uint8  `mapstructure:"DestChainId" json:"destChainId"`
	MinFee      string `mapstructure:"MinFee" json:"minFee"`
	FeeScale    uint32 `mapstructure:"FeeScale" json:"feeScale"`
}

type RawAsset struct {
	Location      string `mapstructure:"Location" json:"location"`
	OriginChainID uint8  `mapstructure:"OriginChainId" json:"originChainId"`
	Decimals      *uint8 `mapstructure:"Decimals" json:"decimals,omitempty"`
	Symbol        string `mapstructure:"Symbol" json:"symbol"`
}

type RawPrice struct {
	Location string `mapstructure:"Location" json:"location"`
	Price    string `mapstructure:"Price" json:"price"`
}

type FeeSchedule struct {
	DestChainID bridge.ChainID
	MinFee      *big.Int
	FeeScale    uint32
}

type BridgeConfig struct {
	WhitelistedChains    []bridge.ChainID
	Treasury             bridge.AccountID
	NativeExecutionPrice *big.Int
	FeeSchedules         []FeeSchedule
	Assets               []registry.Asset
	Prices               []fee.PriceEntry
}

// NewBridgeConfig parses RawBridgeConfig into BridgeConfig
func NewBridgeConfig(rawConfig RawBridgeConfig) (BridgeConfig, error) {
	config := BridgeConfig{}

	treasuryBytes, err := hexutil.Decode(rawConfig.TreasuryAccount)
	if err != nil {
		return config, fmt.Errorf("invalid treasury account %s: %w", rawConfig.TreasuryAccount, err)
	}
	if len(treasuryBytes) != 32 {
		return config, fmt.Errorf("treasury account must be 32 bytes, got %d", len(treasuryBytes))
	}
	copy(config.Treasury[:], treasuryBytes)

	nativePrice, err := parseBalance(rawConfig.NativeExecutionPrice)
	if err != nil {
		return config, fmt.Errorf("invalid native execution price: %w", err)
	}
	config.NativeExecutionPrice = nativePrice

	for _, chainID := range rawConfig.WhitelistedChains {
		config.WhitelistedChains = append(config.WhitelistedChains, bridge.ChainID(chainID))
	}

	for _, rawSchedule := range rawConfig.FeeSchedules {
		minFee, err := parseBalance(rawSchedule.MinFee)
		if err != nil {
			return config, fmt.Errorf("invalid min fee for chain %d: %w", rawSchedule.DestChainID, err)
		}
		if rawSchedule.FeeScale > 1000 {
			return config, fmt.Errorf("fee scale for chain %d exceeds 1000", rawSchedule.DestChainID)
		}
		config.FeeSchedules = append(config.FeeSchedules, FeeSchedule{
			DestChainID: bridge.ChainID(rawSchedule.DestChainID),
			MinFee:      minFee,
			FeeScale:    rawSchedule.FeeScale,
		})
	}

	for _, rawAsset := range rawConfig.Assets {
		assetLocation, err := parseLocation(rawAsset.Location)
		if err != nil {
			return config, fmt.Errorf("invalid asset location %s: %w", rawAsset.Location, err)
		}
		config.Assets = append(config.Assets, registry.Asset{
			Location:      assetLocation,
			OriginChainID: bridge.ChainID(rawAsset.OriginChainID),
			Decimals:      rawAsset.Decimals,
			Symbol:        rawAsset.Symbol,
		})
	}

	for _, rawPrice := range rawConfig.Prices {
		priceLocation, err := parseLocation(rawPrice.Location)
		if err != nil {
			return config, fmt.Errorf("invalid price location %s: %w", rawPrice.Location, err)
		}
		price, err := parseBalance(rawPrice.Price)
		if err != nil {
			return config, fmt.Errorf("invalid price for %s: %w", rawPrice.Location, err)
		}
		config.Prices = append(config.Prices, fee.PriceEntry{
			Asset: priceLocation,
			Price: price,
		})
	}

	return config, nil
}

func parseBalance(raw string) (*big.Int, error) {
	balance, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("not a decimal number: %s", raw)
	}
	if balance.Sign() < 0 {
		return nil, fmt.Errorf("negative balance: %s", raw)
	}
	return balance, nil
}

func parseLocation(raw string) (location.Location, error) {
	locationBytes, err := hexutil.Decode(raw)
	if err != nil {
		return location.Location{}, err
	}
	return location.FromBytes(locationBytes)
}

// Whitelist is the configured set of reachable destination chains.
type Whitelist struct {
	chains map[bridge.ChainID]struct{}
}

func NewWhitelist(chains []bridge.ChainID) *Whitelist {
	whitelisted := make(map[bridge.ChainID]struct{}, len(chains))
	for _, chainID := range chains {
		whitelisted[chainID] = struct{}{}
	}
	return &Whitelist{chains: whitelisted}
}

func (w *Whitelist) ChainWhitelisted(destination bridge.ChainID) bool {
	_, ok := w.chains[destination]
	return ok
}
