// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/ethclient"
)

// EVMClient is a thin JSON-RPC client with a per-call timeout.
type EVMClient struct {
	client  *ethclient.Client
	timeout time.Duration
}

// NewEVMClientWithTimeout creates an EVM client with a custom timeout
func NewEVMClientWithTimeout(ctx context.Context, url string, timeout time.Duration) (*EVMClient, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial EVM RPC: %w", err)
	}
	return &EVMClient{
		client:  client,
		timeout: timeout,
	}, nil
}

// ChainID gets the chain ID
func (c *EVMClient) ChainID(ctx context.Context) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.client.ChainID(ctx)
}

// HasCode reports whether address holds contract code at the latest block.
func (c *EVMClient) HasCode(ctx context.Context, address common.Address) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	code, err := c.client.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Errorf("eth_getCode %s: %w", address.Hex(), err)
	}
	return len(code) > 0, nil
}

// Close closes the client connection
func (c *EVMClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}
