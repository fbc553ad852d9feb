// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

// Package api exposes the settlement commands over HTTP. Caller
// authentication happens upstream; requests arrive with their origin role
// already established.
package api

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog/log"

	"github.com/ChainSafe/bridge-settlement/bridge"
	"github.com/ChainSafe/bridge-settlement/bridge/location"
	"github.com/ChainSafe/bridge-settlement/bridge/registry"
	"github.com/ChainSafe/bridge-settlement/bridge/settlement"
)

type Server struct {
	handler *settlement.Handler
	port    uint16
}

func NewServer(handler *settlement.Handler, port uint16) *Server {
	return &Server{
		handler: handler,
		port:    port,
	}
}

func (s *Server) Start() error {
	log.Info().Msgf("started settlement api on port %d", s.port)
	return http.ListenAndServe(fmt.Sprintf(":%d", s.port), s.Routes())
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/fees", s.updateFee)
	mux.HandleFunc("/v1/assets", s.registerAsset)
	mux.HandleFunc("/v1/transfers/asset", s.transferAssets)
	mux.HandleFunc("/v1/transfers/native", s.transferNative)
	mux.HandleFunc("/v1/transfers/execute", s.executeTransfer)
	return mux
}

type updateFeeRequest struct {
	DestChainID uint8  `json:"destChainId"`
	MinFee      string `json:"minFee"`
	FeeScale    uint32 `json:"feeScale"`
}

type registerAssetRequest struct {
	Location      string `json:"location"`
	OriginChainID uint8  `json:"originChainId"`
	Decimals      *uint8 `json:"decimals,omitempty"`
	Symbol        string `json:"symbol"`
}

type transferAssetsRequest struct {
	Sender      string `json:"sender"`
	Asset       string `json:"asset"`
	DestChainID uint8  `json:"destChainId"`
	Recipient   string `json:"recipient"`
	Amount      string `json:"amount"`
}

type transferNativeRequest struct {
	Sender      string `json:"sender"`
	DestChainID uint8  `json:"destChainId"`
	Recipient   string `json:"recipient"`
	Amount      string `json:"amount"`
}

type executeTransferRequest struct {
	Dest       string `json:"dest"`
	Amount     string `json:"amount"`
	ResourceID string `json:"resourceId"`
}

type response struct {
	Events []string `json:"events,omitempty"`
	Error  string   `json:"error,omitempty"`
}

func (s *Server) updateFee(w http.ResponseWriter, r *http.Request) {
	var req updateFeeRequest
	if !decode(w, r, &req) {
		return
	}
	minFee, err := parseAmount(req.MinFee)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	events, err := s.handler.UpdateFee(settlement.GovernanceOrigin(), minFee, req.FeeScale, req.DestChainID)
	writeResult(w, events, err)
}

func (s *Server) registerAsset(w http.ResponseWriter, r *http.Request) {
	var req registerAssetRequest
	if !decode(w, r, &req) {
		return
	}
	assetLocation, err := parseLocation(req.Location)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	events, err := s.handler.RegisterAsset(settlement.GovernanceOrigin(), registry.Asset{
		Location:      assetLocation,
		OriginChainID: req.OriginChainID,
		Decimals:      req.Decimals,
		Symbol:        req.Symbol,
	})
	writeResult(w, events, err)
}

func (s *Server) transferAssets(w http.ResponseWriter, r *http.Request) {
	var req transferAssetsRequest
	if !decode(w, r, &req) {
		return
	}
	sender, err := parseAccount(req.Sender)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	asset, err := parseLocation(req.Asset)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	recipient, err := hexutil.Decode(req.Recipient)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	events, err := s.handler.TransferAssets(settlement.SignedOrigin(sender), asset, req.DestChainID, recipient, amount)
	writeResult(w, events, err)
}

func (s *Server) transferNative(w http.ResponseWriter, r *http.Request) {
	var req transferNativeRequest
	if !decode(w, r, &req) {
		return
	}
	sender, err := parseAccount(req.Sender)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	recipient, err := hexutil.Decode(req.Recipient)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	events, err := s.handler.TransferNative(settlement.SignedOrigin(sender), amount, recipient, req.DestChainID)
	writeResult(w, events, err)
}

func (s *Server) executeTransfer(w http.ResponseWriter, r *http.Request) {
	var req executeTransferRequest
	if !decode(w, r, &req) {
		return
	}
	destBytes, err := hexutil.Decode(req.Dest)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ridBytes, err := hexutil.Decode(req.ResourceID)
	if err != nil || len(ridBytes) != 32 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("resource id must be 32 bytes"))
		return
	}
	var rid bridge.ResourceID
	copy(rid[:], ridBytes)

	events, err := s.handler.ExecuteTransfer(settlement.BridgeOrigin(settlement.BridgeAccount), destBytes, amount, rid)
	writeResult(w, events, err)
}

func decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return false
	}
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func writeResult(w http.ResponseWriter, events []settlement.Event, err error) {
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Name())
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response{Events: names})
}

func writeError(w http.ResponseWriter, status int, err error) {
	log.Debug().Err(err).Msg("settlement request rejected")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response{Error: err.Error()})
}

func parseAccount(raw string) (bridge.AccountID, error) {
	accountBytes, err := hexutil.Decode(raw)
	if err != nil {
		return bridge.AccountID{}, err
	}
	if len(accountBytes) != 32 {
		return bridge.AccountID{}, fmt.Errorf("account must be 32 bytes, got %d", len(accountBytes))
	}
	var account bridge.AccountID
	copy(account[:], accountBytes)
	return account, nil
}

func parseLocation(raw string) (location.Location, error) {
	locationBytes, err := hexutil.Decode(raw)
	if err != nil {
		return location.Location{}, err
	}
	return location.FromBytes(locationBytes)
}

func parseAmount(raw string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("not a decimal number: %s", raw)
	}
	return amount, nil
}
