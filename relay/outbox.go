// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

// Package relay queues settled transfers for delivery to remote chains and
// tracks their delivery status per nonce.
package relay

import (
	"context"
	"errors"
	"math/big"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	coreStore "github.com/sygmaprotocol/sygma-core/store"

	"github.com/ChainSafe/bridge-settlement/bridge"
	"github.com/ChainSafe/bridge-settlement/bridge/location"
	"github.com/ChainSafe/bridge-settlement/bridge/settlement"
	"github.com/ChainSafe/bridge-settlement/store"
)

// ErrQueueFull rejects staging when the delivery queue has no room left.
// The settlement request aborts instead of waiting on the dispatcher.
var ErrQueueFull = errors.New("relay queue is full")

// Courier delivers prepared messages over the bridge transport.
type Courier interface {
	Deliver(ctx context.Context, msg *FungibleMessage) error
	Forward(ctx context.Context, msg *ForwardMessage) error
}

// Outbox queues settled transfers for asynchronous delivery. Messages are
// staged in per-request batches and only reach the queues once the request
// committed; the slot channels cap staged plus queued messages at queue
// capacity so a post-commit flush can never block.
type Outbox struct {
	store *store.OutboxStore

	fungibles chan *FungibleMessage
	forwards  chan *ForwardMessage

	fungibleSlots chan struct{}
	forwardSlots  chan struct{}
}

func NewOutbox(outboxStore *store.OutboxStore, queueSize int) *Outbox {
	return &Outbox{
		store:         outboxStore,
		fungibles:     make(chan *FungibleMessage, queueSize),
		forwards:      make(chan *ForwardMessage, queueSize),
		fungibleSlots: make(chan struct{}, queueSize),
		forwardSlots:  make(chan struct{}, queueSize),
	}
}

// Begin opens a message batch for one settlement request. Nonce and status
// writes go through db, the request's journal, so they revert together
// with the balances when the request aborts.
func (o *Outbox) Begin(db coreStore.KeyValueReaderWriter) settlement.RelayBatch {
	return &Batch{
		outbox: o,
		store:  store.NewOutboxStore(db),
	}
}

// Batch stages the outbound messages of one settlement request.
type Batch struct {
	outbox    *Outbox
	store     *store.OutboxStore
	fungibles []*FungibleMessage
	forwards  []*ForwardMessage
}

func (b *Batch) SendFungible(destination bridge.ChainID, rid bridge.ResourceID, recipient []byte, amount *big.Int) error {
	select {
	case b.outbox.fungibleSlots <- struct{}{}:
	default:
		return ErrQueueFull
	}

	nonce, err := b.store.NextNonce(destination)
	if err != nil {
		<-b.outbox.fungibleSlots
		return err
	}
	err = b.store.StoreStatus(destination, nonce, store.PendingOutbound)
	if err != nil {
		<-b.outbox.fungibleSlots
		return err
	}

	b.fungibles = append(b.fungibles, NewFungibleMessage(destination, nonce, rid, recipient, amount))
	return nil
}

func (b *Batch) ForwardFungible(holder bridge.AccountID, asset location.Location, amount *big.Int, dest location.Location, weightBudget uint64) error {
	select {
	case b.outbox.forwardSlots <- struct{}{}:
	default:
		return ErrQueueFull
	}

	nonce, err := b.store.NextForwardNonce()
	if err != nil {
		<-b.outbox.forwardSlots
		return err
	}
	err = b.store.StoreForwardStatus(nonce, store.PendingOutbound)
	if err != nil {
		<-b.outbox.forwardSlots
		return err
	}

	b.forwards = append(b.forwards, &ForwardMessage{
		Nonce:        nonce,
		Holder:       holder,
		Asset:        asset,
		Dest:         dest,
		Amount:       amount,
		WeightBudget: weightBudget,
		Type:         ForwardMessageType,
	})
	return nil
}

// Flush queues the staged messages for delivery. The slots reserved at
// staging time guarantee the sends cannot block. Call only after the
// request journal committed.
func (b *Batch) Flush() {
	for _, msg := range b.fungibles {
		b.outbox.fungibles <- msg
	}
	for _, msg := range b.forwards {
		b.outbox.forwards <- msg
	}
	b.fungibles = nil
	b.forwards = nil
}

// Discard drops the staged messages and releases their queue slots. The
// staged nonce and status writes die with the request journal.
func (b *Batch) Discard() {
	for range b.fungibles {
		<-b.outbox.fungibleSlots
	}
	for range b.forwards {
		<-b.outbox.forwardSlots
	}
	b.fungibles = nil
	b.forwards = nil
}

// Dispatcher drains the outbox and hands messages to the courier.
type Dispatcher struct {
	outbox  *Outbox
	courier Courier
}

func NewDispatcher(outbox *Outbox, courier Courier) *Dispatcher {
	return &Dispatcher{
		outbox:  outbox,
		courier: courier,
	}
}

// Start blocks until ctx is cancelled or a queue loop fails.
func (d *Dispatcher) Start(ctx context.Context) error {
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(d.dispatchFungibles)
	p.Go(d.dispatchForwards)
	return p.Wait()
}

func (d *Dispatcher) dispatchFungibles(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-d.outbox.fungibles:
			<-d.outbox.fungibleSlots
			err := d.courier.Deliver(ctx, msg)
			if err != nil {
				log.Err(err).
					Uint8("destination", msg.Destination).
					Uint64("nonce", msg.Nonce).
					Msg("Failed to deliver fungible transfer")
				err = d.outbox.store.StoreStatus(msg.Destination, msg.Nonce, store.FailedOutbound)
				if err != nil {
					return err
				}
				continue
			}
			err = d.outbox.store.StoreStatus(msg.Destination, msg.Nonce, store.SentOutbound)
			if err != nil {
				return err
			}
			log.Debug().
				Uint8("destination", msg.Destination).
				Uint64("nonce", msg.Nonce).
				Str("resourceID", msg.ResourceID.Hex()).
				Msg("Delivered fungible transfer")
		}
	}
}

func (d *Dispatcher) dispatchForwards(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-d.outbox.forwards:
			<-d.outbox.forwardSlots
			err := d.courier.Forward(ctx, msg)
			if err != nil {
				log.Err(err).
					Uint64("nonce", msg.Nonce).
					Str("holder", msg.Holder.Hex()).
					Msg("Failed to forward transfer")
				err = d.outbox.store.StoreForwardStatus(msg.Nonce, store.FailedOutbound)
				if err != nil {
					return err
				}
				continue
			}
			err = d.outbox.store.StoreForwardStatus(msg.Nonce, store.SentOutbound)
			if err != nil {
				return err
			}
			log.Debug().
				Uint64("nonce", msg.Nonce).
				Str("holder", msg.Holder.Hex()).
				Uint64("weightBudget", msg.WeightBudget).
				Msg("Forwarded transfer to remote destination")
		}
	}
}
