// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package settlement

import (
	"github.com/ChainSafe/bridge-settlement/bridge"
	"github.com/ChainSafe/bridge-settlement/bridge/location"
)

type DestinationKind uint8

const (
	// DestLocalAccount settles into an account on the local chain.
	DestLocalAccount DestinationKind = iota
	// DestRelayAccount forwards to an account on the relay chain.
	DestRelayAccount
	// DestParachainAccount forwards to an account on a sibling parachain.
	DestParachainAccount
	// DestUnsupported covers every other shape, including EVM-style chain
	// descriptors. Unsupported destinations fail the request; they are
	// never silently dropped.
	DestUnsupported
)

// Destination is the classified shape of an inbound transfer's destination
// location. One variant per supported settlement arm.
type Destination struct {
	Kind      DestinationKind
	Recipient bridge.AccountID
	ParaID    uint32
	Location  location.Location
}

// ParseDestination classifies a destination location into its settlement
// arm. The decision table is closed; new shapes need a new variant here.
func ParseDestination(l location.Location) Destination {
	dest := Destination{Kind: DestUnsupported, Location: l}
	switch l.Parents {
	case 0:
		if len(l.Interior) == 1 && l.Interior[0].Kind == location.KindAccountID32 {
			dest.Kind = DestLocalAccount
			dest.Recipient = l.Interior[0].AccountID
		}
	case 1:
		if len(l.Interior) == 1 && l.Interior[0].Kind == location.KindAccountID32 {
			dest.Kind = DestRelayAccount
			dest.Recipient = l.Interior[0].AccountID
		}
		if len(l.Interior) == 2 && l.Interior[0].Kind == location.KindParachain &&
			l.Interior[1].Kind == location.KindAccountID32 {
			dest.Kind = DestParachainAccount
			dest.ParaID = l.Interior[0].ParaID
			dest.Recipient = l.Interior[1].AccountID
		}
	}
	return dest
}
