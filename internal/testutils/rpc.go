// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/common/hexutil"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FakeRPC is a JSON-RPC node answering eth_getCode from a fixed map.
// Addresses without an entry have no code. It reports goerli's chain id
// unless told otherwise.
type FakeRPC struct {
	*httptest.Server

	mu      sync.Mutex
	code    map[common.Address]string
	chainID uint64
}

func NewFakeRPC(t *testing.T) *FakeRPC {
	t.Helper()
	f := &FakeRPC{code: map[common.Address]string{}, chainID: 5}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// SetCode deploys hex-encoded code at address.
func (f *FakeRPC) SetCode(address common.Address, code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.code[address] = code
}

func (f *FakeRPC) SetChainID(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chainID = id
}

func (f *FakeRPC) serve(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp := rpcResponse{JSONRPC: "2.0", ID: req.ID}
	switch req.Method {
	case "eth_getCode":
		var addr string
		if len(req.Params) == 0 || json.Unmarshal(req.Params[0], &addr) != nil {
			resp.Error = &rpcError{Code: -32602, Message: "invalid params"}
			break
		}
		f.mu.Lock()
		code, ok := f.code[common.HexToAddress(addr)]
		f.mu.Unlock()
		if !ok {
			code = "0x"
		}
		if !strings.HasPrefix(code, "0x") {
			code = "0x" + code
		}
		resp.Result = code
	case "eth_chainId":
		f.mu.Lock()
		resp.Result = hexutil.EncodeUint64(f.chainID)
		f.mu.Unlock()
	default:
		resp.Error = &rpcError{Code: -32601, Message: "method not found"}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
