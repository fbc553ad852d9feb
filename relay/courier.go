// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package relay

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogCourier writes deliveries to the log instead of a transport. Used when
// the service runs without a configured bridge connection, and in local
// setups where the remote side is observed from logs.
type LogCourier struct{}

func NewLogCourier() *LogCourier {
	return &LogCourier{}
}

func (c *LogCourier) Deliver(ctx context.Context, msg *FungibleMessage) error {
	log.Info().
		Uint8("destination", msg.Destination).
		Uint64("nonce", msg.Nonce).
		Str("resourceID", msg.ResourceID.Hex()).
		Msgf("Outbound fungible transfer of %s", msg.Amount.String())
	return nil
}

func (c *LogCourier) Forward(ctx context.Context, msg *ForwardMessage) error {
	log.Info().
		Uint64("nonce", msg.Nonce).
		Str("holder", msg.Holder.Hex()).
		Uint64("weightBudget", msg.WeightBudget).
		Msgf("Forwarding %s to remote destination", msg.Amount.String())
	return nil
}
