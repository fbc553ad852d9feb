// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package api_test

import (
	"bytes"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/ChainSafe/bridge-settlement/api"
	"github.com/ChainSafe/bridge-settlement/bridge"
	"github.com/ChainSafe/bridge-settlement/bridge/ledger"
	"github.com/ChainSafe/bridge-settlement/bridge/registry"
	"github.com/ChainSafe/bridge-settlement/bridge/settlement"
	"github.com/ChainSafe/bridge-settlement/config"
	"github.com/ChainSafe/bridge-settlement/relay"
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

type ServerTestSuite struct {
	suite.Suite
	server *httptest.Server
	db     *memStore
}

func TestRunServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.db = newMemStore()
	outbox := relay.NewOutbox(store.NewOutboxStore(s.db), 8)
	handler := settlement.NewHandler(
		s.db,
		config.NewWhitelist([]bridge.ChainID{2}),
		outbox,
		nil,
		big.NewInt(1),
		bridge.AccountID{9},
		nil,
	)
	s.server = httptest.NewServer(api.NewServer(handler, 0).Routes())
}

func (s *ServerTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ServerTestSuite) post(path string, body string) *http.Response {
	resp, err := http.Post(s.server.URL+path, "application/json", bytes.NewBufferString(body))
	s.Nil(err)
	return resp
}

func (s *ServerTestSuite) Test_UpdateFee_Success() {
	resp := s.post("/v1/fees", `{"destChainId": 2, "minFee": "4", "feeScale": 10}`)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	var result struct {
		Events []string `json:"events"`
	}
	s.Nil(json.NewDecoder(resp.Body).Decode(&result))
	s.Equal([]string{"FeeUpdated"}, result.Events)
}

func (s *ServerTestSuite) Test_UpdateFee_ScaleOutOfRange() {
	resp := s.post("/v1/fees", `{"destChainId": 2, "minFee": "4", "feeScale": 1001}`)
	defer resp.Body.Close()

	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

func (s *ServerTestSuite) Test_UpdateFee_MethodNotAllowed() {
	resp, err := http.Get(s.server.URL + "/v1/fees")
	s.Nil(err)
	defer resp.Body.Close()

	s.Equal(http.StatusMethodNotAllowed, resp.StatusCode)
}

func (s *ServerTestSuite) Test_RegisterAsset_Success() {
	resp := s.post("/v1/assets", `{"location": "0x0004020c676c64", "originChainId": 0, "decimals": 18, "symbol": "GLD"}`)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	var result struct {
		Events []string `json:"events"`
	}
	s.Nil(json.NewDecoder(resp.Body).Decode(&result))
	s.Equal([]string{"AssetRegistered"}, result.Events)
}

func (s *ServerTestSuite) Test_TransferNative_Success() {
	// fund the sender first
	sender := bridge.AccountID{1}
	s.Nil(ledger.NewLedger(s.db).Mint(registry.Native(), sender, big.NewInt(100)))
	resp := s.post("/v1/fees", `{"destChainId": 2, "minFee": "4", "feeScale": 0}`)
	resp.Body.Close()

	resp = s.post("/v1/transfers/native", `{
		"sender": "0x0100000000000000000000000000000000000000000000000000000000000000",
		"destChainId": 2,
		"recipient": "0xaabb",
		"amount": "50"
	}`)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	balance, err := ledger.NewLedger(s.db).Balance(registry.Native(), sender)
	s.Nil(err)
	s.Equal(int64(46), balance.Int64())
}

func (s *ServerTestSuite) Test_TransferNative_SettlementRejected() {
	resp := s.post("/v1/transfers/native", `{
		"sender": "0x0100000000000000000000000000000000000000000000000000000000000000",
		"destChainId": 4,
		"recipient": "0xaabb",
		"amount": "50"
	}`)
	defer resp.Body.Close()

	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

func (s *ServerTestSuite) Test_TransferAssets_MalformedSender() {
	resp := s.post("/v1/transfers/asset", `{"sender": "0x01", "asset": "0x00", "destChainId": 2, "recipient": "0xaabb", "amount": "50"}`)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}
