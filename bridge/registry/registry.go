// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

// Package registry keeps the bidirectional mapping between resource ids and
// location-based asset identities. Registration is a governance operation;
// settlement only reads.
package registry

import (
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	coreStore "github.com/sygmaprotocol/sygma-core/store"

	"github.com/ChainSafe/bridge-settlement/bridge"
	"github.com/ChainSafe/bridge-settlement/bridge/location"
	"github.com/ChainSafe/bridge-settlement/store"
)

// DefaultDecimals is assumed for assets registered without a decimal
// precision. This is a policy constant of the bridge, not a storage default.
const DefaultDecimals uint8 = 12

// Asset is a registered bridged asset. Symbol is display-only.
type Asset struct {
	Location      location.Location
	OriginChainID bridge.ChainID
	Decimals      *uint8
	Symbol        string
}

type Registry struct {
	assets *store.AssetStore
}

func NewRegistry(db coreStore.KeyValueReaderWriter) *Registry {
	return &Registry{
		assets: store.NewAssetStore(db),
	}
}

// Register persists an asset registration and returns its resource id.
// The mapping is append-only.
func (r *Registry) Register(asset Asset) (bridge.ResourceID, error) {
	rid, err := ResourceIDOf(asset)
	if err != nil {
		return bridge.ResourceID{}, err
	}

	decimals := types.NewOptionU8Empty()
	if asset.Decimals != nil {
		decimals = types.NewOptionU8(types.NewU8(*asset.Decimals))
	}
	err = r.assets.StoreAsset(rid, store.AssetRecord{
		Location:      asset.Location,
		OriginChainID: types.NewU8(asset.OriginChainID),
		Decimals:      decimals,
		Symbol:        types.NewText(asset.Symbol),
	})
	if err != nil {
		return bridge.ResourceID{}, err
	}
	return rid, nil
}

// Resolve returns the asset registered under a resource id, or
// ErrAssetNotRegistered.
func (r *Registry) Resolve(rid bridge.ResourceID) (Asset, error) {
	record, err := r.assets.AssetByResourceID(rid)
	if err != nil {
		return Asset{}, err
	}
	return assetFromRecord(record), nil
}

// ByLocation returns the asset registered under a location identity, or
// ErrAssetNotRegistered.
func (r *Registry) ByLocation(l location.Location) (Asset, error) {
	record, err := r.assets.AssetByLocation(l)
	if err != nil {
		return Asset{}, err
	}
	return assetFromRecord(record), nil
}

// ResourceIDOf derives the resource id of an asset. Derivation is pure; it
// never requires a registry round trip.
func ResourceIDOf(asset Asset) (bridge.ResourceID, error) {
	return asset.Location.IntoResourceID(asset.OriginChainID)
}

// DecimalsOf returns the decimal precision of an asset, defaulting to 12
// when the registration does not specify one.
func DecimalsOf(asset Asset) uint8 {
	if asset.Decimals == nil {
		return DefaultDecimals
	}
	return *asset.Decimals
}

func assetFromRecord(record store.AssetRecord) Asset {
	asset := Asset{
		Location:      record.Location,
		OriginChainID: uint8(record.OriginChainID),
		Symbol:        string(record.Symbol),
	}
	ok, value := record.Decimals.Unwrap()
	if ok {
		decimals := uint8(value)
		asset.Decimals = &decimals
	}
	return asset
}
