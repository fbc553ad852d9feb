// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

// Package ledger applies balance mutations for the native asset and
// registered fungibles. It is purely mechanical; which mutation happens for
// a given transfer is decided by the settlement engine.
package ledger

import (
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/ethereum/go-ethereum/common/hexutil"
	coreStore "github.com/sygmaprotocol/sygma-core/store"

	"github.com/ChainSafe/bridge-settlement/bridge"
	"github.com/ChainSafe/bridge-settlement/bridge/registry"
	"github.com/ChainSafe/bridge-settlement/store"
)

const nativeAssetKey = "native"

type Ledger struct {
	balances *store.BalanceStore
}

func NewLedger(db coreStore.KeyValueReaderWriter) *Ledger {
	return &Ledger{
		balances: store.NewBalanceStore(db),
	}
}

// ToLedgerBalance narrows an amount to the u128 ledger representation.
// Negative or overflowing amounts cannot be represented.
func ToLedgerBalance(amount *big.Int) (types.U128, error) {
	if amount == nil || amount.Sign() < 0 || amount.BitLen() > 128 {
		return types.U128{}, bridge.ErrBalanceConversionFailed
	}
	return types.NewU128(*new(big.Int).Set(amount)), nil
}

// Balance returns the spendable balance an account holds of an asset.
func (l *Ledger) Balance(kind registry.AssetKind, account bridge.AccountID) (*big.Int, error) {
	key, err := assetKey(kind)
	if err != nil {
		return nil, err
	}
	balance, err := l.balances.Balance(key, account)
	if err != nil {
		return nil, err
	}
	return balance.Int, nil
}

// Mint credits an account with new balance of an asset.
func (l *Ledger) Mint(kind registry.AssetKind, account bridge.AccountID, amount *big.Int) error {
	key, err := assetKey(kind)
	if err != nil {
		return err
	}
	balance, err := l.balances.Balance(key, account)
	if err != nil {
		return err
	}

	updated, err := ToLedgerBalance(new(big.Int).Add(balance.Int, amount))
	if err != nil {
		return err
	}
	return l.balances.StoreBalance(key, account, updated)
}

// Burn destroys balance of an asset held by an account. Fails with
// ErrInsufficientBalance when the account holds less than amount.
func (l *Ledger) Burn(kind registry.AssetKind, account bridge.AccountID, amount *big.Int) error {
	key, err := assetKey(kind)
	if err != nil {
		return err
	}
	balance, err := l.balances.Balance(key, account)
	if err != nil {
		return err
	}
	if balance.Int.Cmp(amount) < 0 {
		return bridge.ErrInsufficientBalance
	}

	updated, err := ToLedgerBalance(new(big.Int).Sub(balance.Int, amount))
	if err != nil {
		return err
	}
	return l.balances.StoreBalance(key, account, updated)
}

// Transfer moves balance of an asset between two accounts.
func (l *Ledger) Transfer(kind registry.AssetKind, from, to bridge.AccountID, amount *big.Int) error {
	err := l.Burn(kind, from, amount)
	if err != nil {
		return err
	}
	return l.Mint(kind, to, amount)
}

func assetKey(kind registry.AssetKind) (string, error) {
	if kind.IsNative() {
		return nativeAssetKey, nil
	}
	encoded, err := kind.Location().Bytes()
	if err != nil {
		return "", err
	}
	return hexutil.Encode(encoded), nil
}
