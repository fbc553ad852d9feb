// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/sygmaprotocol/sygma-core/store"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/ChainSafe/bridge-settlement/bridge"
)

var feeKey = "fee:destination:%d"

// BridgeFee is the governance-set fee schedule towards one destination
// chain. FeeScale is expressed in parts per 1000 of the transferred amount,
// not the conventional parts per 10000.
type BridgeFee struct {
	MinFee   types.U128
	FeeScale types.U32
}

type FeeStore struct {
	db store.KeyValueReaderWriter
}

func NewFeeStore(db store.KeyValueReaderWriter) *FeeStore {
	return &FeeStore{
		db: db,
	}
}

// StoreFee persists the fee schedule for a destination chain.
func (fs *FeeStore) StoreFee(destination bridge.ChainID, fee BridgeFee) error {
	key := bytes.Buffer{}
	keyS := fmt.Sprintf(feeKey, destination)
	key.WriteString(keyS)

	value, err := codec.Encode(fee)
	if err != nil {
		return err
	}

	return fs.db.SetByKey(key.Bytes(), value)
}

// Fee fetches the fee schedule for a destination chain. A destination with
// no schedule at all yields ErrFeeOptionsMissing.
func (fs *FeeStore) Fee(destination bridge.ChainID) (BridgeFee, error) {
	key := bytes.Buffer{}
	keyS := fmt.Sprintf(feeKey, destination)
	key.WriteString(keyS)

	v, err := fs.db.GetByKey(key.Bytes())
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return BridgeFee{}, bridge.ErrFeeOptionsMissing
		}
		return BridgeFee{}, err
	}

	var fee BridgeFee
	err = codec.Decode(v, &fee)
	if err != nil {
		return BridgeFee{}, err
	}
	return fee, nil
}

// HasFee reports whether a fee schedule exists for a destination chain.
func (fs *FeeStore) HasFee(destination bridge.ChainID) bool {
	_, err := fs.Fee(destination)
	return err == nil
}
