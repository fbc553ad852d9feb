// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/sygmaprotocol/sygma-core/store"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/ChainSafe/bridge-settlement/bridge"
)

var balanceKey = "balance:%s:%s"

type BalanceStore struct {
	db store.KeyValueReaderWriter
}

func NewBalanceStore(db store.KeyValueReaderWriter) *BalanceStore {
	return &BalanceStore{
		db: db,
	}
}

// Balance fetches the balance of an account in one asset. Accounts with no
// stored entry hold zero.
func (bs *BalanceStore) Balance(assetKey string, account bridge.AccountID) (types.U128, error) {
	key := bytes.Buffer{}
	key.WriteString(fmt.Sprintf(balanceKey, assetKey, account.Hex()))

	v, err := bs.db.GetByKey(key.Bytes())
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return types.NewU128(*big.NewInt(0)), nil
		}
		return types.U128{}, err
	}

	var balance types.U128
	err = codec.Decode(v, &balance)
	if err != nil {
		return types.U128{}, err
	}
	return balance, nil
}

// StoreBalance persists the balance of an account in one asset.
func (bs *BalanceStore) StoreBalance(assetKey string, account bridge.AccountID, balance types.U128) error {
	key := bytes.Buffer{}
	key.WriteString(fmt.Sprintf(balanceKey, assetKey, account.Hex()))

	value, err := codec.Encode(balance)
	if err != nil {
		return err
	}

	return bs.db.SetByKey(key.Bytes(), value)
}
