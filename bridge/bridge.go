// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package bridge

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ChainID identifies a bridged chain. The bridge hub assigns one id per
// whitelisted chain and encodes it as the first byte of every resource id.
type ChainID = uint8

// ResourceID is the cross-chain handle of a registered asset. Byte 0 carries
// the origin chain id, the remaining 31 bytes are derived from the asset
// location and never reassigned.
type ResourceID [32]byte

func (r ResourceID) ChainID() ChainID {
	return r[0]
}

func (r ResourceID) Hex() string {
	return hexutil.Encode(r[:])
}

// AccountID is a 32 byte account address on the local chain.
type AccountID [32]byte

func (a AccountID) Hex() string {
	return hexutil.Encode(a[:])
}
