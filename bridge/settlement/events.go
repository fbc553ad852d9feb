// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package settlement

import (
	"math/big"

	"github.com/ChainSafe/bridge-settlement/bridge"
	"github.com/ChainSafe/bridge-settlement/bridge/location"
)

// Event is a settlement notification. Events are only surfaced when the
// whole request committed.
type Event interface {
	Name() string
}

type FeeUpdated struct {
	DestChainID bridge.ChainID
	MinFee      *big.Int
	FeeScale    uint32
}

func (e FeeUpdated) Name() string { return "FeeUpdated" }

type AssetRegistered struct {
	ResourceID bridge.ResourceID
	Asset      location.Location
	Symbol     string
}

func (e AssetRegistered) Name() string { return "AssetRegistered" }

type Deposited struct {
	Asset     location.Location
	Recipient bridge.AccountID
	Amount    *big.Int
}

func (e Deposited) Name() string { return "Deposited" }

type Forwarded struct {
	Asset  location.Location
	Dest   location.Location
	Amount *big.Int
}

func (e Forwarded) Name() string { return "Forwarded" }
