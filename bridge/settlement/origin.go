// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package settlement

import (
	"errors"

	"github.com/ChainSafe/bridge-settlement/bridge"
)

// ErrBadOrigin is a framework-level rejection, not part of the settlement
// error taxonomy: the call never entered the settlement state machine.
var ErrBadOrigin = errors.New("bad origin")

type OriginKind uint8

const (
	// OriginSigned is a regular user call signed by Caller.
	OriginSigned OriginKind = iota
	// OriginGovernance is the bridge committee / root path.
	OriginGovernance
	// OriginBridge is the relay confirmation path; Caller is the bridge
	// pallet's own account.
	OriginBridge
)

// Origin is the authenticated caller identity injected by the host call
// dispatch. Authentication itself happens outside this module.
type Origin struct {
	Kind   OriginKind
	Caller bridge.AccountID
}

func SignedOrigin(caller bridge.AccountID) Origin {
	return Origin{Kind: OriginSigned, Caller: caller}
}

func GovernanceOrigin() Origin {
	return Origin{Kind: OriginGovernance}
}

func BridgeOrigin(bridgeAccount bridge.AccountID) Origin {
	return Origin{Kind: OriginBridge, Caller: bridgeAccount}
}

func (o Origin) EnsureSigned() (bridge.AccountID, error) {
	if o.Kind != OriginSigned {
		return bridge.AccountID{}, ErrBadOrigin
	}
	return o.Caller, nil
}

func (o Origin) EnsureGovernance() error {
	if o.Kind != OriginGovernance {
		return ErrBadOrigin
	}
	return nil
}

func (o Origin) EnsureBridge() (bridge.AccountID, error) {
	if o.Kind != OriginBridge {
		return bridge.AccountID{}, ErrBadOrigin
	}
	return o.Caller, nil
}
