// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "errors"

var (
	ErrMissingCredential    = errors.New("set " + EtherscanAPIKeyEnvVar)
	ErrDuplicateTask        = errors.New("task already registered")
	ErrTaskNotFound         = errors.New("task not found")
	ErrInvalidTask          = errors.New("invalid task")
	ErrTooManyArgs          = errors.New("too many task arguments")
	ErrUnsupportedNetwork   = errors.New("network not supported by etherscan")
	ErrChainIDMismatch      = errors.New("rpc endpoint serves a different chain")
	ErrNoDeploys            = errors.New("no deploys found")
	ErrNoVerificationInputs = errors.New("no verification inputs found")
	ErrContractNotFound     = errors.New("contract not found in build info")
	ErrAmbiguousContract    = errors.New("contract name matches more than one source")
	ErrNoCodeAtAddress      = errors.New("no contract code at address")
	ErrVerificationFailed   = errors.New("verification failed")
	ErrInvalidConfig        = errors.New("invalid configuration")
)
