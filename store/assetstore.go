// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sygmaprotocol/sygma-core/store"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/ChainSafe/bridge-settlement/bridge"
	"github.com/ChainSafe/bridge-settlement/bridge/location"
)

var (
	assetByResourceKey = "asset:resource:%s"
	assetByLocationKey = "asset:location:%s"
)

// AssetRecord is the registry entry of one bridged asset. The mapping from
// resource id to record is append-only; registrations are never reassigned.
type AssetRecord struct {
	Location      location.Location
	OriginChainID types.U8
	Decimals      types.OptionU8
	Symbol        types.Text
}

type AssetStore struct {
	db store.KeyValueReaderWriter
}

func NewAssetStore(db store.KeyValueReaderWriter) *AssetStore {
	return &AssetStore{
		db: db,
	}
}

// StoreAsset persists a registration under both its resource id and its
// location so either side of the mapping can be resolved.
func (as *AssetStore) StoreAsset(rid bridge.ResourceID, record AssetRecord) error {
	value, err := codec.Encode(record)
	if err != nil {
		return err
	}

	key := bytes.Buffer{}
	key.WriteString(fmt.Sprintf(assetByResourceKey, rid.Hex()))
	err = as.db.SetByKey(key.Bytes(), value)
	if err != nil {
		return err
	}

	locBytes, err := record.Location.Bytes()
	if err != nil {
		return err
	}
	locKey := bytes.Buffer{}
	locKey.WriteString(fmt.Sprintf(assetByLocationKey, hexutil.Encode(locBytes)))
	return as.db.SetByKey(locKey.Bytes(), value)
}

// AssetByResourceID fetches the registration behind a resource id.
func (as *AssetStore) AssetByResourceID(rid bridge.ResourceID) (AssetRecord, error) {
	key := bytes.Buffer{}
	key.WriteString(fmt.Sprintf(assetByResourceKey, rid.Hex()))
	return as.fetch(key.Bytes())
}

// AssetByLocation fetches the registration behind an asset location.
func (as *AssetStore) AssetByLocation(l location.Location) (AssetRecord, error) {
	locBytes, err := l.Bytes()
	if err != nil {
		return AssetRecord{}, err
	}
	key := bytes.Buffer{}
	key.WriteString(fmt.Sprintf(assetByLocationKey, hexutil.Encode(locBytes)))
	return as.fetch(key.Bytes())
}

func (as *AssetStore) fetch(key []byte) (AssetRecord, error) {
	v, err := as.db.GetByKey(key)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return AssetRecord{}, bridge.ErrAssetNotRegistered
		}
		return AssetRecord{}, err
	}

	var record AssetRecord
	err = codec.Decode(v, &record)
	if err != nil {
		return AssetRecord{}, err
	}
	return record, nil
}
