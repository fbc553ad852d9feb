// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/sygmaprotocol/sygma-core/store"
	"github.com/syndtr/goleveldb/leveldb"
)

type OutboundStatus string

var (
	outboundKey     = "outbound:destination:%d:nonce:%d"
	nonceKey        = "outbound:destination:%d:nonce"
	forwardKey      = "forward:nonce:%d"
	forwardNonceKey = "forward:nonce"

	MissingOutbound OutboundStatus = "missing"
	PendingOutbound OutboundStatus = "pending"
	SentOutbound    OutboundStatus = "sent"
	FailedOutbound  OutboundStatus = "failed"
)

// OutboxStore tracks outbound relay messages per destination chain. Nonces
// are allocated sequentially per destination so the remote side can order
// and deduplicate deliveries.
type OutboxStore struct {
	db store.KeyValueReaderWriter
}

func NewOutboxStore(db store.KeyValueReaderWriter) *OutboxStore {
	return &OutboxStore{
		db: db,
	}
}

// NextNonce allocates the next outbound nonce towards a destination.
func (os *OutboxStore) NextNonce(destination uint8) (uint64, error) {
	key := bytes.Buffer{}
	key.WriteString(fmt.Sprintf(nonceKey, destination))
	return os.nextNonce(key.Bytes())
}

// NextForwardNonce allocates the next forward nonce. Forwards leave through
// the local transactor rather than a destination chain, so they share one
// sequence.
func (os *OutboxStore) NextForwardNonce() (uint64, error) {
	return os.nextNonce([]byte(forwardNonceKey))
}

func (os *OutboxStore) nextNonce(key []byte) (uint64, error) {
	nonce := uint64(0)
	v, err := os.db.GetByKey(key)
	if err != nil {
		if !errors.Is(err, leveldb.ErrNotFound) {
			return 0, err
		}
	} else {
		nonce = binary.BigEndian.Uint64(v)
	}

	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, nonce+1)
	err = os.db.SetByKey(key, next)
	if err != nil {
		return 0, err
	}

	return nonce, nil
}

// StoreStatus stores delivery status per outbound message
func (os *OutboxStore) StoreStatus(destination uint8, nonce uint64, status OutboundStatus) error {
	key := bytes.Buffer{}
	key.WriteString(fmt.Sprintf(outboundKey, destination, nonce))

	err := os.db.SetByKey(key.Bytes(), []byte(status))
	if err != nil {
		return err
	}

	return nil
}

// Status returns the delivery status of an outbound message
func (os *OutboxStore) Status(destination uint8, nonce uint64) (OutboundStatus, error) {
	key := bytes.Buffer{}
	key.WriteString(fmt.Sprintf(outboundKey, destination, nonce))
	return os.status(key.Bytes())
}

// StoreForwardStatus stores delivery status per forwarded transfer
func (os *OutboxStore) StoreForwardStatus(nonce uint64, status OutboundStatus) error {
	key := bytes.Buffer{}
	key.WriteString(fmt.Sprintf(forwardKey, nonce))
	return os.db.SetByKey(key.Bytes(), []byte(status))
}

// ForwardStatus returns the delivery status of a forwarded transfer
func (os *OutboxStore) ForwardStatus(nonce uint64) (OutboundStatus, error) {
	key := bytes.Buffer{}
	key.WriteString(fmt.Sprintf(forwardKey, nonce))
	return os.status(key.Bytes())
}

func (os *OutboxStore) status(key []byte) (OutboundStatus, error) {
	v, err := os.db.GetByKey(key)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return MissingOutbound, nil
		}
		return MissingOutbound, err
	}

	status := OutboundStatus(string(v))
	return status, nil
}
