// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package bridge

import "errors"

// Settlement failures. Every error aborts the whole request and discards all
// balance mutations collected up to that point. None of them is retryable
// without the originator correcting the condition first.
var (
	ErrAssetNotRegistered              = errors.New("asset not registered")
	ErrAssetConversionFailed           = errors.New("asset conversion failed")
	ErrFeeOptionsMissing               = errors.New("fee options missing for destination chain")
	ErrCannotPayAsFee                  = errors.New("asset cannot be used to pay the fee")
	ErrInvalidDestination              = errors.New("destination chain not whitelisted")
	ErrInvalidFeeOption                = errors.New("invalid fee option")
	ErrInsufficientBalance             = errors.New("insufficient balance")
	ErrBalanceConversionFailed         = errors.New("balance conversion failed")
	ErrFailedToTransactAsset           = errors.New("failed to transact asset")
	ErrDestUnrecognized                = errors.New("destination format unrecognized")
	ErrCannotDetermineReservedLocation = errors.New("cannot determine reserve location")
	ErrUnimplemented                   = errors.New("unimplemented")
)
