// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package models contains data structures shared between commands.
package models

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// VerificationStatus is the outcome for one contract.
type VerificationStatus string

const (
	StatusVerified        VerificationStatus = "verified"
	StatusAlreadyVerified VerificationStatus = "already verified"
	StatusFailed          VerificationStatus = "failed"
)

// VerificationResult contains the result of verifying a single contract.
type VerificationResult struct {
	Name    string
	Address string
	IsProxy bool
	Status  VerificationStatus
	Err     error
}

// VerificationResults collects results from concurrent verifications.
type VerificationResults struct {
	Results []VerificationResult
	Lock    sync.Mutex
}

// AddResult adds the result for one contract.
func (vr *VerificationResults) AddResult(result VerificationResult) {
	vr.Lock.Lock()
	defer vr.Lock.Unlock()
	vr.Results = append(vr.Results, result)
}

// GetResults returns all results ordered by contract name then address.
func (vr *VerificationResults) GetResults() []VerificationResult {
	vr.Lock.Lock()
	defer vr.Lock.Unlock()
	out := append([]VerificationResult(nil), vr.Results...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Address < out[j].Address
	})
	return out
}

// Len returns the number of results.
func (vr *VerificationResults) Len() int {
	vr.Lock.Lock()
	defer vr.Lock.Unlock()
	return len(vr.Results)
}

// HasErrors returns true if any contract failed.
func (vr *VerificationResults) HasErrors() bool {
	return vr.Err() != nil
}

// Err joins every failure, each prefixed with its contract.
func (vr *VerificationResults) Err() error {
	var errs []error
	for _, r := range vr.GetResults() {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s at %s: %w", r.Name, r.Address, r.Err))
		}
	}
	return errors.Join(errs...)
}
