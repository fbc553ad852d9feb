// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package fee_test

import (
	"math/big"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/stretchr/testify/suite"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/ChainSafe/bridge-settlement/bridge"
	"github.com/ChainSafe/bridge-settlement/bridge/fee"
	"github.com/ChainSafe/bridge-settlement/bridge/location"
	"github.com/ChainSafe/bridge-settlement/bridge/registry"
	"github.com/ChainSafe/bridge-settlement/store"
)

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) GetByKey(key []byte) ([]byte, error) {
	v, ok := m.data[string(key)]
	if !ok {
		return nil, leveldb.ErrNotFound
	}
	return v, nil
}

func (m *memStore) SetByKey(key []byte, value []byte) error {
	m.data[string(key)] = value
	return nil
}

func e12(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(12), nil))
}

type CalculatorTestSuite struct {
	suite.Suite
	db       *memStore
	feeStore *store.FeeStore
	assetLoc location.Location
}

func TestRunCalculatorTestSuite(t *testing.T) {
	suite.Run(t, new(CalculatorTestSuite))
}

func (s *CalculatorTestSuite) SetupTest() {
	s.db = newMemStore()
	s.feeStore = store.NewFeeStore(s.db)
	s.assetLoc = location.New(0, location.GeneralKey([]byte("gld")))
}

func (s *CalculatorTestSuite) storeFee(destination bridge.ChainID, minFee *big.Int, feeScale uint32) {
	err := s.feeStore.StoreFee(destination, store.BridgeFee{
		MinFee:   types.NewU128(*minFee),
		FeeScale: types.NewU32(feeScale),
	})
	s.Nil(err)
}

func (s *CalculatorTestSuite) Test_EstimateFeeInNative_MissingSchedule() {
	calculator := fee.NewCalculator(s.db, nil, big.NewInt(1))

	_, err := calculator.EstimateFeeInNative(2, e12(100))

	s.ErrorIs(err, bridge.ErrFeeOptionsMissing)
}

func (s *CalculatorTestSuite) Test_EstimateFeeInNative_MinFeeFloor() {
	// 1% with a minimum of 100
	s.storeFee(2, e12(100), 10)
	calculator := fee.NewCalculator(s.db, nil, big.NewInt(1))

	estimated, err := calculator.EstimateFeeInNative(2, e12(1000))
	s.Nil(err)

	// 1% of 1000 is 10, below the minimum
	s.Equal(e12(100), estimated)
}

func (s *CalculatorTestSuite) Test_EstimateFeeInNative_ScaledPart() {
	s.storeFee(2, e12(100), 10)
	calculator := fee.NewCalculator(s.db, nil, big.NewInt(1))

	estimated, err := calculator.EstimateFeeInNative(2, e12(100000))
	s.Nil(err)

	s.Equal(e12(1000), estimated)
}

func (s *CalculatorTestSuite) Test_EstimateFeeInNative_Monotonic() {
	s.storeFee(2, e12(100), 10)
	calculator := fee.NewCalculator(s.db, nil, big.NewInt(1))

	small, err := calculator.EstimateFeeInNative(2, e12(20000))
	s.Nil(err)
	large, err := calculator.EstimateFeeInNative(2, e12(30000))
	s.Nil(err)

	s.True(small.Cmp(large) <= 0)
}

func (s *CalculatorTestSuite) Test_GetFee_Native() {
	s.storeFee(2, e12(2), 0)
	calculator := fee.NewCalculator(s.db, nil, e12(1))

	feeInNative, err := calculator.GetFee(2, registry.Native(), e12(50))
	s.Nil(err)

	s.Equal(e12(2), feeInNative)
}

func (s *CalculatorTestSuite) Test_GetFee_PricedAsset() {
	s.storeFee(2, e12(2), 0)
	decimals := uint8(18)
	kind := registry.Registered(registry.Asset{
		Location: s.assetLoc,
		Decimals: &decimals,
	})
	// asset is worth half the native asset, so the fee doubles in asset units
	prices := []fee.PriceEntry{{Asset: s.assetLoc, Price: e12(1)}}
	calculator := fee.NewCalculator(s.db, prices, e12(2))

	amount := new(big.Int).Mul(big.NewInt(50), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
	feeInAsset, err := calculator.GetFee(2, kind, amount)
	s.Nil(err)

	expected := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	s.Equal(expected, feeInAsset)
}

func (s *CalculatorTestSuite) Test_GetFee_UnpricedAsset() {
	s.storeFee(2, e12(2), 0)
	kind := registry.Registered(registry.Asset{Location: s.assetLoc})
	calculator := fee.NewCalculator(s.db, nil, e12(1))

	_, err := calculator.GetFee(2, kind, e12(50))

	s.ErrorIs(err, bridge.ErrCannotPayAsFee)
}

func (s *CalculatorTestSuite) Test_ToE12() {
	s.Equal(big.NewInt(12300), fee.ToE12(big.NewInt(123), 10))
	s.Equal(big.NewInt(123), fee.ToE12(big.NewInt(123), 12))
	s.Equal(big.NewInt(1), fee.ToE12(big.NewInt(1000000), 18))
}

func (s *CalculatorTestSuite) Test_FromE12() {
	s.Equal(big.NewInt(123), fee.FromE12(big.NewInt(12345), 10))
	s.Equal(big.NewInt(123), fee.FromE12(big.NewInt(123), 12))
	s.Equal(big.NewInt(1000000), fee.FromE12(big.NewInt(1), 18))
}
