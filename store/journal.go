// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"github.com/sygmaprotocol/sygma-core/store"
)

// Journal is a write overlay over a backing key-value store. Reads fall
// through to the base store until a key is written; writes are buffered and
// only reach the base store on Commit. Dropping a journal without committing
// discards every buffered write, which gives settlement requests their
// all-or-nothing semantics.
type Journal struct {
	base    store.KeyValueReaderWriter
	pending map[string][]byte
	order   []string
}

func NewJournal(base store.KeyValueReaderWriter) *Journal {
	return &Journal{
		base:    base,
		pending: make(map[string][]byte),
	}
}

func (j *Journal) GetByKey(key []byte) ([]byte, error) {
	if v, ok := j.pending[string(key)]; ok {
		return v, nil
	}
	return j.base.GetByKey(key)
}

func (j *Journal) SetByKey(key []byte, value []byte) error {
	k := string(key)
	if _, ok := j.pending[k]; !ok {
		j.order = append(j.order, k)
	}
	j.pending[k] = value
	return nil
}

// Commit flushes buffered writes to the base store in first-write order.
func (j *Journal) Commit() error {
	for _, k := range j.order {
		err := j.base.SetByKey([]byte(k), j.pending[k])
		if err != nil {
			return err
		}
	}
	j.pending = make(map[string][]byte)
	j.order = nil
	return nil
}

// Len returns the number of keys with buffered writes.
func (j *Journal) Len() int {
	return len(j.pending)
}
