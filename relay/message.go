// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package relay

import (
	"math/big"

	"github.com/sygmaprotocol/sygma-core/relayer/message"

	"github.com/ChainSafe/bridge-settlement/bridge"
	"github.com/ChainSafe/bridge-settlement/bridge/location"
)

const (
	FungibleMessageType message.MessageType = "FungibleTransfer"
	ForwardMessageType  message.MessageType = "ForwardTransfer"
)

// FungibleMessage is an outbound fungible transfer headed to a remote chain
// through the bridge relay.
type FungibleMessage struct {
	Destination bridge.ChainID
	Nonce       uint64
	ResourceID  bridge.ResourceID
	Recipient   []byte
	Amount      *big.Int
	Type        message.MessageType
}

// ForwardMessage carries funds that landed locally but belong on another
// chain reachable over the cross-chain transactor.
type ForwardMessage struct {
	Nonce        uint64
	Holder       bridge.AccountID
	Asset        location.Location
	Dest         location.Location
	Amount       *big.Int
	WeightBudget uint64
	Type         message.MessageType
}

func NewFungibleMessage(destination bridge.ChainID, nonce uint64, rid bridge.ResourceID, recipient []byte, amount *big.Int) *FungibleMessage {
	return &FungibleMessage{
		Destination: destination,
		Nonce:       nonce,
		ResourceID:  rid,
		Recipient:   recipient,
		Amount:      amount,
		Type:        FungibleMessageType,
	}
}
