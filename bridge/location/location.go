// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

// Package location models the location-based identity of assets and
// destinations. A Location is a path of junctions relative to the local
// chain, mirroring the consensus-side multilocation format, and is the
// input for reserve resolution, account derivation and resource ids.
package location

import (
	"bytes"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ChainSafe/bridge-settlement/bridge"
)

// BridgeAssetKey marks locations administered by the bridge hub. A chain
// reserve location is always (0, X2(GeneralKey(BridgeAssetKey), GeneralIndex(chainID))).
const BridgeAssetKey = "cb"

type JunctionKind uint8

const (
	KindAccountID32 JunctionKind = iota
	KindParachain
	KindGeneralKey
	KindGeneralIndex
)

// Junction is one path segment of a Location. Kind selects which of the
// payload fields is meaningful; the set of kinds is closed.
type Junction struct {
	Kind      JunctionKind
	AccountID bridge.AccountID
	ParaID    uint32
	Key       []byte
	Index     types.U128
}

func AccountID32(id bridge.AccountID) Junction {
	return Junction{Kind: KindAccountID32, AccountID: id}
}

func Parachain(id uint32) Junction {
	return Junction{Kind: KindParachain, ParaID: id}
}

func GeneralKey(key []byte) Junction {
	return Junction{Kind: KindGeneralKey, Key: key}
}

func GeneralIndex(index uint64) Junction {
	return Junction{Kind: KindGeneralIndex, Index: types.NewU128(*new(big.Int).SetUint64(index))}
}

func (j Junction) Equal(other Junction) bool {
	if j.Kind != other.Kind {
		return false
	}
	switch j.Kind {
	case KindAccountID32:
		return j.AccountID == other.AccountID
	case KindParachain:
		return j.ParaID == other.ParaID
	case KindGeneralKey:
		return bytes.Equal(j.Key, other.Key)
	case KindGeneralIndex:
		return j.Index.Int.Cmp(other.Index.Int) == 0
	}
	return false
}

func (j Junction) Encode(encoder scale.Encoder) error {
	err := encoder.PushByte(byte(j.Kind))
	if err != nil {
		return err
	}
	switch j.Kind {
	case KindAccountID32:
		return encoder.Write(j.AccountID[:])
	case KindParachain:
		return encoder.Encode(j.ParaID)
	case KindGeneralKey:
		err := encoder.EncodeUintCompact(*big.NewInt(int64(len(j.Key))))
		if err != nil {
			return err
		}
		return encoder.Write(j.Key)
	case KindGeneralIndex:
		return encoder.Encode(j.Index)
	}
	return bridge.ErrDestUnrecognized
}

func (j *Junction) Decode(decoder scale.Decoder) error {
	kind, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	j.Kind = JunctionKind(kind)
	switch j.Kind {
	case KindAccountID32:
		return decoder.Read(j.AccountID[:])
	case KindParachain:
		return decoder.Decode(&j.ParaID)
	case KindGeneralKey:
		length, err := decoder.DecodeUintCompact()
		if err != nil {
			return err
		}
		j.Key = make([]byte, length.Int64())
		return decoder.Read(j.Key)
	case KindGeneralIndex:
		return decoder.Decode(&j.Index)
	}
	return bridge.ErrDestUnrecognized
}

// Location identifies an asset or a destination as a path of junctions,
// Parents levels up from the local chain.
type Location struct {
	Parents  uint8
	Interior []Junction
}

func New(parents uint8, interior ...Junction) Location {
	return Location{Parents: parents, Interior: interior}
}

// Here is the location of the local chain itself, the identity of the
// native asset.
func Here() Location {
	return Location{}
}

func Parent() Location {
	return Location{Parents: 1}
}

// ChainReserveLocation is the canonical reserve location of a bridged solo
// chain with the given id.
func ChainReserveLocation(chainID bridge.ChainID) Location {
	return New(0, GeneralKey([]byte(BridgeAssetKey)), GeneralIndex(uint64(chainID)))
}

func (l Location) IsHere() bool {
	return l.Parents == 0 && len(l.Interior) == 0
}

func (l Location) Equal(other Location) bool {
	if l.Parents != other.Parents || len(l.Interior) != len(other.Interior) {
		return false
	}
	for i, j := range l.Interior {
		if !j.Equal(other.Interior[i]) {
			return false
		}
	}
	return true
}

func (l Location) Encode(encoder scale.Encoder) error {
	err := encoder.PushByte(l.Parents)
	if err != nil {
		return err
	}
	err = encoder.EncodeUintCompact(*big.NewInt(int64(len(l.Interior))))
	if err != nil {
		return err
	}
	for _, j := range l.Interior {
		err = j.Encode(encoder)
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *Location) Decode(decoder scale.Decoder) error {
	parents, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	l.Parents = parents
	length, err := decoder.DecodeUintCompact()
	if err != nil {
		return err
	}
	l.Interior = make([]Junction, length.Int64())
	for i := range l.Interior {
		err = l.Interior[i].Decode(decoder)
		if err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns the SCALE encoding of the location.
func (l Location) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer([]byte{})
	encoder := scale.NewEncoder(buf)
	err := l.Encode(*encoder)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromBytes decodes a SCALE encoded location, typically the destination
// bytes carried by an inbound relay message.
func FromBytes(b []byte) (Location, error) {
	var l Location
	decoder := scale.NewDecoder(bytes.NewReader(b))
	err := l.Decode(*decoder)
	if err != nil {
		return Location{}, err
	}
	return l, nil
}

// ReserveLocation derives the chain that is the canonical home of an asset
// at this location. Assets administered by the bridge hub reserve on the
// solo chain encoded in their location, parachain assets on their
// parachain, parent assets on the relay chain and everything local here.
func (l Location) ReserveLocation() (Location, error) {
	switch l.Parents {
	case 0:
		if len(l.Interior) >= 2 &&
			l.Interior[0].Kind == KindGeneralKey && bytes.Equal(l.Interior[0].Key, []byte(BridgeAssetKey)) &&
			l.Interior[1].Kind == KindGeneralIndex {
			return New(0, l.Interior[0], l.Interior[1]), nil
		}
		return Here(), nil
	case 1:
		if len(l.Interior) >= 1 && l.Interior[0].Kind == KindParachain {
			return New(1, l.Interior[0]), nil
		}
		return Parent(), nil
	}
	return Location{}, bridge.ErrCannotDetermineReservedLocation
}

// IntoAccountID derives the deterministic local account controlled by this
// location. Used for chain reserve accounts and the temporary forwarding
// account.
func (l Location) IntoAccountID() (bridge.AccountID, error) {
	encoded, err := l.Bytes()
	if err != nil {
		return bridge.AccountID{}, err
	}
	var account bridge.AccountID
	copy(account[:], crypto.Keccak256(encoded))
	return account, nil
}

// IntoResourceID derives the resource id binding this asset location to the
// given origin chain. The chain id is both hashed in and kept readable as
// byte 0, so the origin is always recoverable from the id alone.
func (l Location) IntoResourceID(chainID bridge.ChainID) (bridge.ResourceID, error) {
	encoded, err := l.Bytes()
	if err != nil {
		return bridge.ResourceID{}, err
	}
	var rid bridge.ResourceID
	copy(rid[:], crypto.Keccak256(append(encoded, chainID)))
	rid[0] = chainID
	return rid, nil
}

// NativeResourceID is the resource id of the local native asset towards the
// given chain. The native asset deliberately has one resource id per
// destination chain, unlike registered assets which have exactly one.
func NativeResourceID(chainID bridge.ChainID) bridge.ResourceID {
	rid, _ := Here().IntoResourceID(chainID)
	return rid
}
