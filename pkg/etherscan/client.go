// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package etherscan talks to the Etherscan contract verification API.
package etherscan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/vaults/pkg/constants"
	"go.uber.org/zap"
)

const (
	codeFormatStandardJSON = "solidity-standard-json-input"

	statusOK = "1"

	resultPending         = "pending in queue"
	resultPass            = "pass - verified"
	resultAlreadyVerified = "already verified"
	resultRateLimited     = "rate limit"
)

var (
	// ErrAlreadyVerified is returned when Etherscan already has the source.
	ErrAlreadyVerified = errors.New("contract source code already verified")

	errPending     = errors.New("verification pending")
	errRateLimited = errors.New("etherscan rate limit reached")
)

// APIError is a response Etherscan answered with status 0.
type APIError struct {
	Action  string
	Message string
	Result  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("etherscan %s: %s: %s", e.Action, e.Message, e.Result)
}

type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func (r response) result() string {
	var s string
	if err := json.Unmarshal(r.Result, &s); err == nil {
		return s
	}
	return string(r.Result)
}

type Client struct {
	apiURL       string
	apiKey       string
	http         *retryablehttp.Client
	log          luxlog.Logger
	pollInterval time.Duration
	pollAttempts int
}

type Option func(*Client)

// WithLogger routes client and transport logs to log.
func WithLogger(log luxlog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithPolling sets how often, and how many times, pending submissions are
// polled (and rate-limited calls retried). At least one attempt is made.
func WithPolling(interval time.Duration, attempts int) Option {
	if attempts < 1 {
		attempts = 1
	}
	return func(c *Client) {
		c.pollInterval = interval
		c.pollAttempts = attempts
	}
}

// WithRetries sets the transport retry policy for 429/5xx and network errors.
func WithRetries(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.http.RetryMax = retryMax
		c.http.RetryWaitMin = waitMin
		c.http.RetryWaitMax = waitMax
	}
}

func NewClient(apiURL, apiKey string, opts ...Option) *Client {
	hc := retryablehttp.NewClient()
	hc.RetryMax = constants.DefaultHTTPRetryMax
	hc.RetryWaitMin = constants.DefaultHTTPRetryWaitMin
	hc.RetryWaitMax = constants.DefaultHTTPRetryWaitMax
	hc.HTTPClient.Timeout = constants.APIRequestTimeout

	c := &Client{
		apiURL:       apiURL,
		apiKey:       apiKey,
		http:         hc,
		log:          luxlog.NewNoOpLogger(),
		pollInterval: constants.DefaultPollInterval,
		pollAttempts: constants.DefaultPollAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	hc.Logger = scrubbingLogger{next: luxLogger{c.log}}
	return c
}

// NewClientForNetwork returns a client for network's Etherscan instance.
func NewClientForNetwork(network, apiKey string, opts ...Option) (*Client, error) {
	apiURL, ok := constants.EtherscanAPIURLs[network]
	if !ok {
		return nil, fmt.Errorf("%w: %s", constants.ErrUnsupportedNetwork, network)
	}
	return NewClient(apiURL, apiKey, opts...), nil
}

// SupportedNetworks lists the networks Etherscan verification works on.
func SupportedNetworks() []string {
	names := make([]string, 0, len(constants.EtherscanAPIURLs))
	for name := range constants.EtherscanAPIURLs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupportedNetwork reports whether network has an Etherscan instance.
func IsSupportedNetwork(network string) bool {
	_, ok := constants.EtherscanAPIURLs[network]
	return ok
}

// SourceVerificationRequest submits standard-json compiler input.
type SourceVerificationRequest struct {
	Address              common.Address
	ContractName         string
	CompilerVersion      string
	StandardJSONInput    string
	ConstructorArguments string
}

// VerifySourceCode submits source for verification and returns the GUID to
// poll. ErrAlreadyVerified is returned if there is nothing to do.
func (c *Client) VerifySourceCode(ctx context.Context, req SourceVerificationRequest) (string, error) {
	params := url.Values{}
	params.Set("module", "contract")
	params.Set("action", "verifysourcecode")
	params.Set("contractaddress", req.Address.Hex())
	params.Set("sourceCode", req.StandardJSONInput)
	params.Set("codeformat", codeFormatStandardJSON)
	params.Set("contractname", req.ContractName)
	params.Set("compilerversion", req.CompilerVersion)
	// sic: the API spells it this way
	params.Set("constructorArguements", req.ConstructorArguments)

	resp, err := c.call(ctx, http.MethodPost, params)
	if err != nil {
		return "", err
	}
	result := resp.result()
	if resp.Status != statusOK {
		if containsFold(result, resultAlreadyVerified) {
			return "", ErrAlreadyVerified
		}
		return "", &APIError{Action: "verifysourcecode", Message: resp.Message, Result: result}
	}
	return result, nil
}

// CheckVerifyStatus returns the raw status text for guid.
func (c *Client) CheckVerifyStatus(ctx context.Context, guid string) (bool, string, error) {
	params := url.Values{}
	params.Set("module", "contract")
	params.Set("action", "checkverifystatus")
	params.Set("guid", guid)
	resp, err := c.call(ctx, http.MethodGet, params)
	if err != nil {
		return false, "", err
	}
	return resp.Status == statusOK, resp.result(), nil
}

// WaitForVerification polls guid until Etherscan passes or rejects it.
func (c *Client) WaitForVerification(ctx context.Context, guid string) error {
	return c.poll(ctx, "checkverifystatus", func() error {
		ok, result, err := c.CheckVerifyStatus(ctx, guid)
		if err != nil {
			return backoff.Permanent(err)
		}
		switch {
		case ok || containsFold(result, resultPass) || containsFold(result, resultAlreadyVerified):
			return nil
		case containsFold(result, resultPending):
			return errPending
		default:
			return backoff.Permanent(fmt.Errorf("%w: %s", constants.ErrVerificationFailed, result))
		}
	})
}

// VerifyProxy asks Etherscan to link the proxy at address to its
// implementation and returns the GUID to poll.
func (c *Client) VerifyProxy(ctx context.Context, address common.Address) (string, error) {
	params := url.Values{}
	params.Set("module", "contract")
	params.Set("action", "verifyproxycontract")
	params.Set("address", address.Hex())

	resp, err := c.call(ctx, http.MethodPost, params)
	if err != nil {
		return "", err
	}
	if resp.Status != statusOK {
		return "", &APIError{Action: "verifyproxycontract", Message: resp.Message, Result: resp.result()}
	}
	return resp.result(), nil
}

// WaitForProxyVerification polls a proxy verification guid.
func (c *Client) WaitForProxyVerification(ctx context.Context, guid string) error {
	return c.poll(ctx, "checkproxyverification", func() error {
		params := url.Values{}
		params.Set("module", "contract")
		params.Set("action", "checkproxyverification")
		params.Set("guid", guid)
		resp, err := c.call(ctx, http.MethodGet, params)
		if err != nil {
			return backoff.Permanent(err)
		}
		result := resp.result()
		switch {
		case resp.Status == statusOK:
			return nil
		case containsFold(result, resultPending):
			return errPending
		default:
			return backoff.Permanent(fmt.Errorf("%w: %s", constants.ErrVerificationFailed, result))
		}
	})
}

func (c *Client) poll(ctx context.Context, action string, check func() error) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, check()
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(c.pollInterval)),
		backoff.WithMaxTries(uint(c.pollAttempts)),
	)
	if errors.Is(err, errPending) {
		return fmt.Errorf("%w: %s still pending after %d attempts", constants.ErrVerificationFailed, action, c.pollAttempts)
	}
	return err
}

// call performs one API request, retrying while Etherscan reports its rate
// limit. Transport-level retries happen inside retryablehttp.
func (c *Client) call(ctx context.Context, method string, params url.Values) (response, error) {
	resp, err := backoff.Retry(ctx, func() (response, error) {
		resp, err := c.do(ctx, method, params)
		if err != nil {
			return response{}, backoff.Permanent(err)
		}
		if resp.Status != statusOK && containsFold(resp.result(), resultRateLimited) {
			c.log.Debug("etherscan rate limited", zap.String("action", params.Get("action")))
			return response{}, errRateLimited
		}
		return resp, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(c.pollInterval)),
		backoff.WithMaxTries(uint(c.pollAttempts)),
	)
	if err != nil {
		return response{}, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method string, params url.Values) (response, error) {
	params = cloneValues(params)
	params.Set("apikey", c.apiKey)

	var (
		req *retryablehttp.Request
		err error
	)
	if method == http.MethodPost {
		req, err = retryablehttp.NewRequestWithContext(ctx, method, c.apiURL, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = retryablehttp.NewRequestWithContext(ctx, method, c.apiURL+"?"+params.Encode(), nil)
	}
	if err != nil {
		return response{}, redactedError{err}
	}

	c.log.Debug("etherscan request", zap.String("action", params.Get("action")), zap.String("method", method))
	httpResp, err := c.http.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("etherscan %s: %w", params.Get("action"), redactedError{err})
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return response{}, err
	}
	if httpResp.StatusCode != http.StatusOK {
		return response{}, fmt.Errorf("etherscan %s: unexpected status %d: %s",
			params.Get("action"), httpResp.StatusCode, strings.TrimSpace(string(body)))
	}
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return response{}, fmt.Errorf("etherscan %s: invalid response: %w", params.Get("action"), err)
	}
	return resp, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
