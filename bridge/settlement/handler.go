// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

// Package settlement decides and applies the ledger effect of cross-chain
// transfers: mint, burn, reserve transfer or forward. All commands are
// atomic; any failure discards every mutation of the request, fee
// deduction included.
package settlement

import (
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/rs/zerolog/log"
	coreStore "github.com/sygmaprotocol/sygma-core/store"

	"github.com/ChainSafe/bridge-settlement/bridge"
	"github.com/ChainSafe/bridge-settlement/bridge/fee"
	"github.com/ChainSafe/bridge-settlement/bridge/ledger"
	"github.com/ChainSafe/bridge-settlement/bridge/location"
	"github.com/ChainSafe/bridge-settlement/bridge/registry"
	"github.com/ChainSafe/bridge-settlement/metrics"
	"github.com/ChainSafe/bridge-settlement/store"
)

// maxFeeScale bounds fee_scale to parts per 1000.
const maxFeeScale = 1000

// forwardWeightBudget is the execution weight granted to the remote leg of
// a forwarded transfer.
const forwardWeightBudget = uint64(6000000000)

// ChainWhitelist reports whether a chain id is a known bridge destination.
// Whitelist management lives with the bridge relay module.
type ChainWhitelist interface {
	ChainWhitelisted(destination bridge.ChainID) bool
}

// Relay opens a message batch per settlement request. Nonce and status
// writes of the batch go through db, the request's journal, so they commit
// and revert together with the balances.
type Relay interface {
	Begin(db coreStore.KeyValueReaderWriter) RelayBatch
}

// RelayBatch stages the outbound messages of one settlement request.
// Staging reserves queue room and fails the request when the relay cannot
// take more; nothing is visible to the delivery side before Flush. Exactly
// one of Flush or Discard ends the batch.
type RelayBatch interface {
	SendFungible(destination bridge.ChainID, rid bridge.ResourceID, recipient []byte, amount *big.Int) error
	ForwardFungible(holder bridge.AccountID, asset location.Location, amount *big.Int, dest location.Location, weightBudget uint64) error
	Flush()
	Discard()
}

func mustAccountID(l location.Location) bridge.AccountID {
	account, err := l.IntoAccountID()
	if err != nil {
		panic(err)
	}
	return account
}

var (
	// BridgeAccount is the bridge's sovereign account. Native balance
	// bridged out is parked here to back the remote mint.
	BridgeAccount = mustAccountID(location.New(0, location.GeneralKey([]byte("bridge"))))

	// forwardHoldingAccount temporarily holds inbound funds that are about
	// to leave again through the forwarder.
	forwardHoldingAccount = mustAccountID(location.New(0, location.GeneralKey([]byte("bridge_transfer"))))
)

type Handler struct {
	db        coreStore.KeyValueReaderWriter
	whitelist ChainWhitelist
	relay     Relay

	prices      []fee.PriceEntry
	nativePrice *big.Int
	treasury    bridge.AccountID
	metrics     *metrics.SettlementMetrics
}

func NewHandler(
	db coreStore.KeyValueReaderWriter,
	whitelist ChainWhitelist,
	relay Relay,
	prices []fee.PriceEntry,
	nativeExecutionPrice *big.Int,
	treasury bridge.AccountID,
	m *metrics.SettlementMetrics,
) *Handler {
	return &Handler{
		db:          db,
		whitelist:   whitelist,
		relay:       relay,
		prices:      prices,
		nativePrice: nativeExecutionPrice,
		treasury:    treasury,
		metrics:     m,
	}
}

// unit bundles the per-request journal with components reading through it.
// Nothing reaches the backing store or the relay queues until the journal
// commits.
type unit struct {
	journal    *store.Journal
	fees       *store.FeeStore
	registry   *registry.Registry
	calculator *fee.Calculator
	ledger     *ledger.Ledger
	relay      RelayBatch
}

func (h *Handler) begin() *unit {
	journal := store.NewJournal(h.db)
	return &unit{
		journal:    journal,
		fees:       store.NewFeeStore(journal),
		registry:   registry.NewRegistry(journal),
		calculator: fee.NewCalculator(journal, h.prices, h.nativePrice),
		ledger:     ledger.NewLedger(journal),
		relay:      h.relay.Begin(journal),
	}
}

func (h *Handler) abort(u *unit, err error) error {
	if u != nil {
		u.relay.Discard()
	}
	h.metrics.TrackFailedSettlement()
	return err
}

func (h *Handler) commit(u *unit, events []Event) ([]Event, error) {
	err := u.journal.Commit()
	if err != nil {
		return nil, h.abort(u, err)
	}
	u.relay.Flush()
	for _, e := range events {
		log.Info().Str("event", e.Name()).Msgf("settlement event %+v", e)
	}
	return events, nil
}

// UpdateFee sets the bridging fee schedule towards a destination chain.
// Governance only.
func (h *Handler) UpdateFee(origin Origin, minFee *big.Int, feeScale uint32, destination bridge.ChainID) ([]Event, error) {
	err := origin.EnsureGovernance()
	if err != nil {
		return nil, err
	}
	if feeScale > maxFeeScale {
		return nil, h.abort(nil, bridge.ErrInvalidFeeOption)
	}
	min, err := ledger.ToLedgerBalance(minFee)
	if err != nil {
		return nil, h.abort(nil, err)
	}

	u := h.begin()
	err = u.fees.StoreFee(destination, store.BridgeFee{
		MinFee:   min,
		FeeScale: types.NewU32(feeScale),
	})
	if err != nil {
		return nil, h.abort(u, err)
	}

	return h.commit(u, []Event{FeeUpdated{
		DestChainID: destination,
		MinFee:      minFee,
		FeeScale:    feeScale,
	}})
}

// RegisterAsset records a bridged asset under its derived resource id.
// Governance only. Which chains may receive it is a whitelist concern,
// not a registration one.
func (h *Handler) RegisterAsset(origin Origin, asset registry.Asset) ([]Event, error) {
	err := origin.EnsureGovernance()
	if err != nil {
		return nil, err
	}

	u := h.begin()
	rid, err := u.registry.Register(asset)
	if err != nil {
		return nil, h.abort(u, err)
	}
	return h.commit(u, []Event{AssetRegistered{
		ResourceID: rid,
		Asset:      asset.Location,
		Symbol:     asset.Symbol,
	}})
}

// TransferAssets moves amount of a registered asset to a recipient on a
// whitelisted destination chain. The fee is deducted from the amount in the
// transferred asset; the remainder is burned when the asset returns to its
// reserve and parked in the destination's reserve account otherwise.
func (h *Handler) TransferAssets(origin Origin, asset location.Location, destination bridge.ChainID, recipient []byte, amount *big.Int) ([]Event, error) {
	sender, err := origin.EnsureSigned()
	if err != nil {
		return nil, err
	}

	destReserve := location.ChainReserveLocation(destination)
	assetReserve, err := asset.ReserveLocation()
	if err != nil {
		return nil, h.abort(nil, bridge.ErrCannotDetermineReservedLocation)
	}

	if !h.whitelist.ChainWhitelisted(destination) {
		return nil, h.abort(nil, bridge.ErrInvalidDestination)
	}

	u := h.begin()
	if !u.fees.HasFee(destination) {
		return nil, h.abort(u, bridge.ErrFeeOptionsMissing)
	}

	registered, err := u.registry.ByLocation(asset)
	if err != nil {
		return nil, h.abort(u, bridge.ErrAssetNotRegistered)
	}
	rid, err := registry.ResourceIDOf(registered)
	if err != nil {
		return nil, h.abort(u, bridge.ErrAssetConversionFailed)
	}
	// The registration must resolve both ways before any value moves.
	_, err = u.registry.Resolve(rid)
	if err != nil {
		return nil, h.abort(u, bridge.ErrAssetConversionFailed)
	}
	kind := registry.Registered(registered)

	_, err = ledger.ToLedgerBalance(amount)
	if err != nil {
		return nil, h.abort(u, bridge.ErrBalanceConversionFailed)
	}
	balance, err := u.ledger.Balance(kind, sender)
	if err != nil {
		return nil, h.abort(u, err)
	}
	if balance.Cmp(amount) < 0 {
		return nil, h.abort(u, bridge.ErrInsufficientBalance)
	}

	feeInAsset, err := u.calculator.GetFee(destination, kind, amount)
	if err != nil {
		return nil, h.abort(u, err)
	}
	// The transfer must strictly exceed its fee, otherwise nothing would
	// arrive on the other side.
	if amount.Cmp(feeInAsset) <= 0 {
		return nil, h.abort(u, bridge.ErrInsufficientBalance)
	}

	err = u.ledger.Transfer(kind, sender, h.treasury, feeInAsset)
	if err != nil {
		return nil, h.abort(u, bridge.ErrFailedToTransactAsset)
	}

	remaining := new(big.Int).Sub(amount, feeInAsset)
	if assetReserve.Equal(destReserve) {
		// Returning home: the reserve chain re-issues it, so burn here.
		err = u.ledger.Burn(kind, sender, remaining)
		if err != nil {
			return nil, h.abort(u, bridge.ErrFailedToTransactAsset)
		}
	} else {
		destReserveAccount, err := destReserve.IntoAccountID()
		if err != nil {
			return nil, h.abort(u, err)
		}
		err = u.ledger.Transfer(kind, sender, destReserveAccount, remaining)
		if err != nil {
			return nil, h.abort(u, bridge.ErrFailedToTransactAsset)
		}
	}

	err = u.relay.SendFungible(destination, rid, recipient, remaining)
	if err != nil {
		return nil, h.abort(u, err)
	}

	events, err := h.commit(u, nil)
	if err != nil {
		return nil, err
	}
	h.metrics.TrackOutboundTransfer()
	log.Info().
		Uint8("destination", destination).
		Str("resourceID", rid.Hex()).
		Msgf("Settled outbound transfer of %s (fee %s)", remaining.String(), feeInAsset.String())
	return events, nil
}

// TransferNative moves amount of the local native asset to a recipient on a
// whitelisted destination chain. The fee is charged on top of the amount;
// the principal is parked in the bridge account to back the remote mint.
func (h *Handler) TransferNative(origin Origin, amount *big.Int, recipient []byte, destination bridge.ChainID) ([]Event, error) {
	sender, err := origin.EnsureSigned()
	if err != nil {
		return nil, err
	}
	if !h.whitelist.ChainWhitelisted(destination) {
		return nil, h.abort(nil, bridge.ErrInvalidDestination)
	}

	u := h.begin()
	if !u.fees.HasFee(destination) {
		return nil, h.abort(u, bridge.ErrFeeOptionsMissing)
	}

	_, err = ledger.ToLedgerBalance(amount)
	if err != nil {
		return nil, h.abort(u, bridge.ErrBalanceConversionFailed)
	}
	feeInNative, err := u.calculator.EstimateFeeInNative(destination, amount)
	if err != nil {
		return nil, h.abort(u, err)
	}

	native := registry.Native()
	free, err := u.ledger.Balance(native, sender)
	if err != nil {
		return nil, h.abort(u, err)
	}
	if free.Cmp(new(big.Int).Add(amount, feeInNative)) < 0 {
		return nil, h.abort(u, bridge.ErrInsufficientBalance)
	}

	err = u.ledger.Transfer(native, sender, h.treasury, feeInNative)
	if err != nil {
		return nil, h.abort(u, bridge.ErrFailedToTransactAsset)
	}
	err = u.ledger.Transfer(native, sender, BridgeAccount, amount)
	if err != nil {
		return nil, h.abort(u, bridge.ErrFailedToTransactAsset)
	}

	err = u.relay.SendFungible(destination, location.NativeResourceID(destination), recipient, amount)
	if err != nil {
		return nil, h.abort(u, err)
	}

	events, err := h.commit(u, nil)
	if err != nil {
		return nil, err
	}
	h.metrics.TrackOutboundTransfer()
	log.Info().
		Uint8("destination", destination).
		Msgf("Settled outbound native transfer of %s (fee %s)", amount.String(), feeInNative.String())
	return events, nil
}

// ExecuteTransfer settles an inbound transfer confirmed by the relay.
// Bridge origin only. Funds whose reserve is not the source chain were
// previously parked locally and are released from the reserve first; the
// destination shape then selects deposit or forward.
func (h *Handler) ExecuteTransfer(origin Origin, destBytes []byte, amount *big.Int, rid bridge.ResourceID) ([]Event, error) {
	bridgeAccount, err := origin.EnsureBridge()
	if err != nil {
		return nil, err
	}

	srcChain := rid.ChainID()
	srcReserve := location.ChainReserveLocation(srcChain)

	destLocation, err := location.FromBytes(destBytes)
	if err != nil {
		return nil, h.abort(nil, bridge.ErrDestUnrecognized)
	}

	u := h.begin()
	assetLocation, kind, err := resolveAsset(u, rid, srcChain)
	if err != nil {
		return nil, h.abort(u, err)
	}
	assetReserve, err := assetLocation.ReserveLocation()
	if err != nil {
		return nil, h.abort(u, bridge.ErrCannotDetermineReservedLocation)
	}
	_, err = ledger.ToLedgerBalance(amount)
	if err != nil {
		return nil, h.abort(u, bridge.ErrBalanceConversionFailed)
	}

	// Assets not reserved on the source chain were parked locally when they
	// left, so the parked balance is released before settling. Assets sent
	// from their own reserve are simply minted.
	if !assetReserve.Equal(srcReserve) {
		if kind.IsNative() {
			err = u.ledger.Burn(kind, bridgeAccount, amount)
		} else {
			var srcReserveAccount bridge.AccountID
			srcReserveAccount, err = srcReserve.IntoAccountID()
			if err != nil {
				return nil, h.abort(u, err)
			}
			err = u.ledger.Burn(kind, srcReserveAccount, amount)
		}
		if err != nil {
			return nil, h.abort(u, bridge.ErrFailedToTransactAsset)
		}
		log.Debug().
			Str("resourceID", rid.Hex()).
			Msg("Asset reserve differs from source, released parked balance")
	}

	dest := ParseDestination(destLocation)
	var events []Event
	switch dest.Kind {
	case DestLocalAccount:
		err = u.ledger.Mint(kind, dest.Recipient, amount)
		if err != nil {
			return nil, h.abort(u, bridge.ErrFailedToTransactAsset)
		}
		events = append(events, Deposited{
			Asset:     assetLocation,
			Recipient: dest.Recipient,
			Amount:    amount,
		})
	case DestRelayAccount, DestParachainAccount:
		err = u.ledger.Mint(kind, forwardHoldingAccount, amount)
		if err != nil {
			return nil, h.abort(u, bridge.ErrFailedToTransactAsset)
		}
		log.Debug().
			Str("holder", forwardHoldingAccount.Hex()).
			Msg("Deposited inbound asset to forwarding account")

		err = u.relay.ForwardFungible(forwardHoldingAccount, assetLocation, amount, destLocation, forwardWeightBudget)
		if err != nil {
			return nil, h.abort(u, err)
		}
		// destLocation still carries the final recipient.
		events = append(events, Forwarded{
			Asset:  assetLocation,
			Dest:   destLocation,
			Amount: amount,
		})
	default:
		return nil, h.abort(u, bridge.ErrDestUnrecognized)
	}

	events, err = h.commit(u, events)
	if err != nil {
		return nil, err
	}
	switch dest.Kind {
	case DestLocalAccount:
		h.metrics.TrackInboundDeposit()
	default:
		h.metrics.TrackInboundForward()
	}
	return events, nil
}

// resolveAsset maps a resource id to the asset it settles. The native
// asset's per-destination ids resolve without touching the registry.
func resolveAsset(u *unit, rid bridge.ResourceID, srcChain bridge.ChainID) (location.Location, registry.AssetKind, error) {
	if rid == location.NativeResourceID(srcChain) {
		return location.Here(), registry.Native(), nil
	}
	asset, err := u.registry.Resolve(rid)
	if err != nil {
		return location.Location{}, registry.AssetKind{}, bridge.ErrAssetConversionFailed
	}
	return asset.Location, registry.Registered(asset), nil
}
