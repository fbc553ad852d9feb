// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	api "go.opentelemetry.io/otel/metric"
)

type SettlementMetrics struct {
	meter api.Meter

	OutboundTransfers api.Int64Counter
	InboundDeposits   api.Int64Counter
	InboundForwards   api.Int64Counter
	FailedSettlements api.Int64Counter

	Opts api.MeasurementOption
}

// NewSettlementMetrics creates an instance of settlement metrics
func NewSettlementMetrics(meter api.Meter, env, instanceID string) (*SettlementMetrics, error) {
	outboundTransfers, err := meter.Int64Counter(
		"settlement.OutboundTransfers",
		api.WithDescription("Number of outbound transfers settled"),
	)
	if err != nil {
		return nil, err
	}
	inboundDeposits, err := meter.Int64Counter(
		"settlement.InboundDeposits",
		api.WithDescription("Number of inbound transfers deposited to local accounts"),
	)
	if err != nil {
		return nil, err
	}
	inboundForwards, err := meter.Int64Counter(
		"settlement.InboundForwards",
		api.WithDescription("Number of inbound transfers forwarded to remote destinations"),
	)
	if err != nil {
		return nil, err
	}
	failedSettlements, err := meter.Int64Counter(
		"settlement.FailedSettlements",
		api.WithDescription("Number of settlement requests that aborted and reverted"),
	)
	if err != nil {
		return nil, err
	}

	return &SettlementMetrics{
		meter:             meter,
		OutboundTransfers: outboundTransfers,
		InboundDeposits:   inboundDeposits,
		InboundForwards:   inboundForwards,
		FailedSettlements: failedSettlements,
		Opts: api.WithAttributes(
			attribute.String("env", env),
			attribute.String("instance", instanceID),
		),
	}, nil
}

func (m *SettlementMetrics) TrackOutboundTransfer() {
	if m == nil {
		return
	}
	m.OutboundTransfers.Add(context.Background(), 1, m.Opts)
}

func (m *SettlementMetrics) TrackInboundDeposit() {
	if m == nil {
		return
	}
	m.InboundDeposits.Add(context.Background(), 1, m.Opts)
}

func (m *SettlementMetrics) TrackInboundForward() {
	if m == nil {
		return
	}
	m.InboundForwards.Add(context.Background(), 1, m.Opts)
}

func (m *SettlementMetrics) TrackFailedSettlement() {
	if m == nil {
		return
	}
	m.FailedSettlements.Add(context.Background(), 1, m.Opts)
}
