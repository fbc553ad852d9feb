// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package store_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	mock_store "github.com/sygmaprotocol/sygma-core/mock"
	"github.com/syndtr/goleveldb/leveldb"
	"go.uber.org/mock/gomock"

	"github.com/ChainSafe/bridge-settlement/store"
)

type OutboxStoreTestSuite struct {
	suite.Suite
	outboxStore          *store.OutboxStore
	keyValueReaderWriter *mock_store.MockKeyValueReaderWriter
}

func TestRunOutboxStoreTestSuite(t *testing.T) {
	suite.Run(t, new(OutboxStoreTestSuite))
}

func (s *OutboxStoreTestSuite) SetupTest() {
	gomockController := gomock.NewController(s.T())
	s.keyValueReaderWriter = mock_store.NewMockKeyValueReaderWriter(gomockController)
	s.outboxStore = store.NewOutboxStore(s.keyValueReaderWriter)
}

func (s *OutboxStoreTestSuite) Test_NextNonce_FirstAllocation() {
	s.keyValueReaderWriter.EXPECT().GetByKey([]byte("outbound:destination:2:nonce")).Return(nil, leveldb.ErrNotFound)
	s.keyValueReaderWriter.EXPECT().SetByKey([]byte("outbound:destination:2:nonce"), []byte{0, 0, 0, 0, 0, 0, 0, 1}).Return(nil)

	nonce, err := s.outboxStore.NextNonce(2)

	s.Nil(err)
	s.Equal(uint64(0), nonce)
}

func (s *OutboxStoreTestSuite) Test_NextNonce_Sequential() {
	s.keyValueReaderWriter.EXPECT().GetByKey([]byte("outbound:destination:2:nonce")).Return([]byte{0, 0, 0, 0, 0, 0, 0, 5}, nil)
	s.keyValueReaderWriter.EXPECT().SetByKey([]byte("outbound:destination:2:nonce"), []byte{0, 0, 0, 0, 0, 0, 0, 6}).Return(nil)

	nonce, err := s.outboxStore.NextNonce(2)

	s.Nil(err)
	s.Equal(uint64(5), nonce)
}

func (s *OutboxStoreTestSuite) Test_NextNonce_FailedFetch() {
	s.keyValueReaderWriter.EXPECT().GetByKey([]byte("outbound:destination:2:nonce")).Return(nil, errors.New("error"))

	_, err := s.outboxStore.NextNonce(2)

	s.NotNil(err)
}

func (s *OutboxStoreTestSuite) Test_StoreStatus_FailedStore() {
	s.keyValueReaderWriter.EXPECT().SetByKey([]byte("outbound:destination:2:nonce:5"), []byte("pending")).Return(errors.New("error"))

	err := s.outboxStore.StoreStatus(2, 5, store.PendingOutbound)

	s.NotNil(err)
}

func (s *OutboxStoreTestSuite) Test_Status_Missing() {
	s.keyValueReaderWriter.EXPECT().GetByKey([]byte("outbound:destination:2:nonce:5")).Return(nil, leveldb.ErrNotFound)

	status, err := s.outboxStore.Status(2, 5)

	s.Nil(err)
	s.Equal(store.MissingOutbound, status)
}

func (s *OutboxStoreTestSuite) Test_Status_RoundTrip() {
	s.keyValueReaderWriter.EXPECT().SetByKey([]byte("outbound:destination:2:nonce:5"), []byte("sent")).Return(nil)
	s.keyValueReaderWriter.EXPECT().GetByKey([]byte("outbound:destination:2:nonce:5")).Return([]byte("sent"), nil)

	err := s.outboxStore.StoreStatus(2, 5, store.SentOutbound)
	s.Nil(err)

	status, err := s.outboxStore.Status(2, 5)
	s.Nil(err)
	s.Equal(store.SentOutbound, status)
}

func (s *OutboxStoreTestSuite) Test_NextForwardNonce_FirstAllocation() {
	s.keyValueReaderWriter.EXPECT().GetByKey([]byte("forward:nonce")).Return(nil, leveldb.ErrNotFound)
	s.keyValueReaderWriter.EXPECT().SetByKey([]byte("forward:nonce"), []byte{0, 0, 0, 0, 0, 0, 0, 1}).Return(nil)

	nonce, err := s.outboxStore.NextForwardNonce()

	s.Nil(err)
	s.Equal(uint64(0), nonce)
}

func (s *OutboxStoreTestSuite) Test_ForwardStatus_Missing() {
	s.keyValueReaderWriter.EXPECT().GetByKey([]byte("forward:nonce:5")).Return(nil, leveldb.ErrNotFound)

	status, err := s.outboxStore.ForwardStatus(5)

	s.Nil(err)
	s.Equal(store.MissingOutbound, status)
}

func (s *OutboxStoreTestSuite) Test_ForwardStatus_RoundTrip() {
	s.keyValueReaderWriter.EXPECT().SetByKey([]byte("forward:nonce:5"), []byte("failed")).Return(nil)
	s.keyValueReaderWriter.EXPECT().GetByKey([]byte("forward:nonce:5")).Return([]byte("failed"), nil)

	err := s.outboxStore.StoreForwardStatus(5, store.FailedOutbound)
	s.Nil(err)

	status, err := s.outboxStore.ForwardStatus(5)
	s.Nil(err)
	s.Equal(store.FailedOutbound, status)
}
