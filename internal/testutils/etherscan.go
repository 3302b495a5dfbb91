// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// EtherscanResponse is the JSON envelope the Etherscan API answers with.
type EtherscanResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

func OK(result string) EtherscanResponse {
	return EtherscanResponse{Status: "1", Message: "OK", Result: result}
}

func NotOK(result string) EtherscanResponse {
	return EtherscanResponse{Status: "0", Message: "NOTOK", Result: result}
}

// FakeEtherscan records every call and answers per action. Actions without
// a handler get a successful default.
type FakeEtherscan struct {
	*httptest.Server

	mu       sync.Mutex
	requests []url.Values
	handlers map[string]func(url.Values) EtherscanResponse
}

func NewFakeEtherscan(t *testing.T) *FakeEtherscan {
	t.Helper()
	f := &FakeEtherscan{handlers: map[string]func(url.Values) EtherscanResponse{}}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// APIURL is the endpoint to point an etherscan client at.
func (f *FakeEtherscan) APIURL() string {
	return f.URL + "/api"
}

// Handle overrides the answer for action.
func (f *FakeEtherscan) Handle(action string, h func(url.Values) EtherscanResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[action] = h
}

// Sequence answers action with responses in order, repeating the last one.
func (f *FakeEtherscan) Sequence(action string, responses ...EtherscanResponse) {
	var (
		mu sync.Mutex
		i  int
	)
	f.Handle(action, func(url.Values) EtherscanResponse {
		mu.Lock()
		defer mu.Unlock()
		r := responses[i]
		if i < len(responses)-1 {
			i++
		}
		return r
	})
}

// Calls returns the parameters of every request made for action.
func (f *FakeEtherscan) Calls(action string) []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []url.Values
	for _, r := range f.requests {
		if r.Get("action") == action {
			out = append(out, r)
		}
	}
	return out
}

func (f *FakeEtherscan) serve(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params := r.Form
	action := params.Get("action")

	f.mu.Lock()
	f.requests = append(f.requests, params)
	h, ok := f.handlers[action]
	f.mu.Unlock()

	var resp EtherscanResponse
	switch {
	case ok:
		resp = h(params)
	case action == "verifysourcecode":
		resp = OK("guid-" + params.Get("contractaddress"))
	case action == "checkverifystatus":
		resp = OK("Pass - Verified")
	case action == "verifyproxycontract":
		resp = OK("proxy-guid-" + params.Get("address"))
	case action == "checkproxyverification":
		resp = OK("The proxy's implementation contract is found and is successfully updated.")
	default:
		resp = NotOK("unknown action " + action)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
