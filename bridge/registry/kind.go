// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package registry

import (
	"github.com/ChainSafe/bridge-settlement/bridge/location"
)

// AssetKind is the settled form of "which asset is this": the local native
// asset or a registered one. It is resolved once at request entry so later
// steps never re-check nativeness dynamically.
type AssetKind struct {
	native bool
	asset  Asset
}

func Native() AssetKind {
	return AssetKind{native: true}
}

func Registered(asset Asset) AssetKind {
	return AssetKind{asset: asset}
}

func (k AssetKind) IsNative() bool {
	return k.native
}

// Asset returns the registered asset, or false for the native kind.
func (k AssetKind) Asset() (Asset, bool) {
	if k.native {
		return Asset{}, false
	}
	return k.asset, true
}

// Location returns the identity location of the asset. The native asset
// lives at the local chain itself.
func (k AssetKind) Location() location.Location {
	if k.native {
		return location.Here()
	}
	return k.asset.Location
}

// Decimals returns the decimal precision used for amounts of this asset.
// The native asset uses the canonical 12.
func (k AssetKind) Decimals() uint8 {
	if k.native {
		return DefaultDecimals
	}
	return DecimalsOf(k.asset)
}
