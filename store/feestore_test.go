// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package store_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/stretchr/testify/suite"
	mock_store "github.com/sygmaprotocol/sygma-core/mock"
	"github.com/syndtr/goleveldb/leveldb"
	"go.uber.org/mock/gomock"

	"github.com/ChainSafe/bridge-settlement/bridge"
	"github.com/ChainSafe/bridge-settlement/store"
)

type FeeStoreTestSuite struct {
	suite.Suite
	feeStore             *store.FeeStore
	keyValueReaderWriter *mock_store.MockKeyValueReaderWriter
}

func TestRunFeeStoreTestSuite(t *testing.T) {
	suite.Run(t, new(FeeStoreTestSuite))
}

func (s *FeeStoreTestSuite) SetupTest() {
	gomockController := gomock.NewController(s.T())
	s.keyValueReaderWriter = mock_store.NewMockKeyValueReaderWriter(gomockController)
	s.feeStore = store.NewFeeStore(s.keyValueReaderWriter)
}

func (s *FeeStoreTestSuite) Test_StoreFee_FailedStore() {
	fee := store.BridgeFee{
		MinFee:   types.NewU128(*big.NewInt(100)),
		FeeScale: types.NewU32(10),
	}
	s.keyValueReaderWriter.EXPECT().SetByKey([]byte("fee:destination:2"), gomock.Any()).Return(errors.New("error"))

	err := s.feeStore.StoreFee(2, fee)

	s.NotNil(err)
}

func (s *FeeStoreTestSuite) Test_StoreFee_Success() {
	fee := store.BridgeFee{
		MinFee:   types.NewU128(*big.NewInt(100)),
		FeeScale: types.NewU32(10),
	}
	encoded, _ := codec.Encode(fee)
	s.keyValueReaderWriter.EXPECT().SetByKey([]byte("fee:destination:2"), encoded).Return(nil)

	err := s.feeStore.StoreFee(2, fee)

	s.Nil(err)
}

func (s *FeeStoreTestSuite) Test_Fee_MissingSchedule() {
	s.keyValueReaderWriter.EXPECT().GetByKey([]byte("fee:destination:2")).Return(nil, leveldb.ErrNotFound)

	_, err := s.feeStore.Fee(2)

	s.ErrorIs(err, bridge.ErrFeeOptionsMissing)
}

func (s *FeeStoreTestSuite) Test_Fee_FailedFetch() {
	s.keyValueReaderWriter.EXPECT().GetByKey([]byte("fee:destination:2")).Return(nil, errors.New("error"))

	_, err := s.feeStore.Fee(2)

	s.NotNil(err)
	s.False(errors.Is(err, bridge.ErrFeeOptionsMissing))
}

func (s *FeeStoreTestSuite) Test_Fee_Success() {
	fee := store.BridgeFee{
		MinFee:   types.NewU128(*big.NewInt(100)),
		FeeScale: types.NewU32(10),
	}
	encoded, _ := codec.Encode(fee)
	s.keyValueReaderWriter.EXPECT().GetByKey([]byte("fee:destination:2")).Return(encoded, nil)

	fetched, err := s.feeStore.Fee(2)

	s.Nil(err)
	s.Equal(int64(100), fetched.MinFee.Int64())
	s.Equal(types.NewU32(10), fetched.FeeScale)
}

func (s *FeeStoreTestSuite) Test_HasFee() {
	fee := store.BridgeFee{
		MinFee:   types.NewU128(*big.NewInt(100)),
		FeeScale: types.NewU32(10),
	}
	encoded, _ := codec.Encode(fee)
	s.keyValueReaderWriter.EXPECT().GetByKey([]byte("fee:destination:2")).Return(encoded, nil)
	s.keyValueReaderWriter.EXPECT().GetByKey([]byte("fee:destination:3")).Return(nil, leveldb.ErrNotFound)

	s.True(s.feeStore.HasFee(2))
	s.False(s.feeStore.HasFee(3))
}
