// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package verification publishes the source of the latest bridge deploy to
// Etherscan.
package verification

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/vaults/pkg/application"
	"github.com/luxfi/vaults/pkg/artifacts"
	"github.com/luxfi/vaults/pkg/constants"
	"github.com/luxfi/vaults/pkg/deploy"
	"github.com/luxfi/vaults/pkg/etherscan"
	"github.com/luxfi/vaults/pkg/models"
	"github.com/luxfi/vaults/pkg/utils"
	"github.com/luxfi/vaults/pkg/ux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CodeChecker tells whether an address holds contract code on the chain
// it is connected to.
type CodeChecker interface {
	ChainID(ctx context.Context) (*big.Int, error)
	HasCode(ctx context.Context, address common.Address) (bool, error)
	Close()
}

// DialFunc connects a CodeChecker to a JSON-RPC endpoint.
type DialFunc func(ctx context.Context, url string) (CodeChecker, error)

func dialEVM(ctx context.Context, url string) (CodeChecker, error) {
	return utils.NewEVMClientWithTimeout(ctx, url, constants.RPCRequestTimeout)
}

type Verifier struct {
	out          *ux.UserLog
	etherscanURL string
	dial         DialFunc
}

type Option func(*Verifier)

// WithOutput sends user-facing progress to out instead of ux.Logger.
func WithOutput(out *ux.UserLog) Option {
	return func(v *Verifier) {
		v.out = out
	}
}

// WithEtherscanURL pins the Etherscan endpoint instead of deriving it from
// the network.
func WithEtherscanURL(url string) Option {
	return func(v *Verifier) {
		v.etherscanURL = url
	}
}

// WithDialer replaces how on-chain code checks connect.
func WithDialer(dial DialFunc) Option {
	return func(v *Verifier) {
		v.dial = dial
	}
}

func New(opts ...Option) *Verifier {
	v := &Verifier{dial: dialEVM}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VerifyLatestBridgeDeploy verifies the latest bridge deploy on the app's
// network with the default Verifier.
func VerifyLatestBridgeDeploy(ctx context.Context, app *application.Vaults, apiKey string) error {
	return New().VerifyLatestBridgeDeploy(ctx, app, apiKey)
}

// VerifyLatestBridgeDeploy submits every contract of the latest bridge
// deploy for the selected network. Each contract is attempted; the error
// joins all per-contract failures.
func (v *Verifier) VerifyLatestBridgeDeploy(ctx context.Context, app *application.Vaults, apiKey string) error {
	network := app.NetworkName()
	if !etherscan.IsSupportedNetwork(network) {
		return fmt.Errorf("%w: pass --network tag to %s (current network=%s)",
			constants.ErrUnsupportedNetwork, constants.VerifyLatestDeployTaskName, network)
	}

	deployDir, inputs, err := deploy.LatestBridgeVerificationInputs(app.GetDeploysDir(), network)
	if err != nil {
		return err
	}
	index, err := artifacts.LoadIndex(app.GetBuildInfoDir())
	if err != nil {
		return fmt.Errorf("failed to load build info: %w", err)
	}
	app.Log.Info("verifying latest bridge deploy",
		zap.String("network", network),
		zap.String("deploy", deployDir),
		zap.Int("contracts", len(inputs)),
		zap.Int("compiled", index.Len()),
	)

	var checker CodeChecker
	if netConf, ok := app.NetworkConfig(); ok {
		checker, err = v.dial(ctx, netConf.URL)
		if err != nil {
			return err
		}
		defer checker.Close()
		if err := checkChainID(ctx, checker, network); err != nil {
			return err
		}
	}

	client, err := v.client(app, network, apiKey)
	if err != nil {
		return err
	}

	out := v.output(app)
	out.PrintToUser("Verifying %d contracts from %s on %s", len(inputs), deployDir, network)

	var results models.VerificationResults
	g := new(errgroup.Group)
	g.SetLimit(app.Conf.Verify.Concurrency)
	for _, in := range inputs {
		g.Go(func() error {
			res := v.verifyOne(ctx, app.Log, client, index, checker, in)
			if res.Err != nil {
				out.RedXToUser("%s at %s: %s", res.Name, res.Address, res.Err)
			} else {
				out.GreenCheckmarkToUser("%s at %s: %s", res.Name, res.Address, res.Status)
			}
			results.AddResult(res)
			return nil
		})
	}
	_ = g.Wait()

	out.PrintLineSeparator()
	if err := printSummary(out, &results); err != nil {
		out.Error("failed to print summary: %s", err)
	}
	if results.HasErrors() {
		out.PrintToUser("Some contracts failed verification on %s", network)
	} else {
		out.Info("verified %d contracts on %s", results.Len(), network)
	}
	return results.Err()
}

// checkChainID makes sure the configured RPC url serves network's chain, so
// code checks do not look at the wrong chain.
func checkChainID(ctx context.Context, checker CodeChecker, network string) error {
	want, ok := constants.EtherscanChainIDs[network]
	if !ok {
		return nil
	}
	got, err := checker.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to read chain id of %s rpc: %w", network, err)
	}
	if !got.IsUint64() || got.Uint64() != want {
		return fmt.Errorf("%w: %s expects chain id %d, rpc reports %s",
			constants.ErrChainIDMismatch, network, want, got)
	}
	return nil
}

func (v *Verifier) client(app *application.Vaults, network, apiKey string) (*etherscan.Client, error) {
	opts := []etherscan.Option{
		etherscan.WithLogger(app.Log),
		etherscan.WithPolling(app.Conf.Verify.PollInterval, app.Conf.Verify.PollAttempts),
	}
	if v.etherscanURL != "" {
		return etherscan.NewClient(v.etherscanURL, apiKey, opts...), nil
	}
	return etherscan.NewClientForNetwork(network, apiKey, opts...)
}

func (v *Verifier) output(app *application.Vaults) *ux.UserLog {
	switch {
	case v.out != nil:
		return v.out
	case ux.Logger != nil:
		return ux.Logger
	default:
		return ux.NewUserLogger(app.Log, os.Stdout)
	}
}

func (v *Verifier) verifyOne(
	ctx context.Context,
	log luxlog.Logger,
	client *etherscan.Client,
	index *artifacts.Index,
	checker CodeChecker,
	in deploy.VerificationInput,
) models.VerificationResult {
	res := models.VerificationResult{
		Name:    in.Name,
		Address: in.ContractAddress().Hex(),
		IsProxy: in.IsProxy,
		Status:  models.StatusFailed,
	}
	fields := []interface{}{zap.String("contract", in.Name), zap.String("address", res.Address)}

	if checker != nil {
		hasCode, err := checker.HasCode(ctx, in.ContractAddress())
		if err != nil {
			res.Err = err
			return res
		}
		if !hasCode {
			res.Err = constants.ErrNoCodeAtAddress
			return res
		}
	}

	contract, err := index.Lookup(in.Name)
	if err != nil {
		res.Err = err
		return res
	}
	encodedArgs, err := contract.EncodeConstructorArgs(in.ConstructorArguments)
	if err != nil {
		res.Err = err
		return res
	}

	guid, err := client.VerifySourceCode(ctx, etherscan.SourceVerificationRequest{
		Address:              in.ContractAddress(),
		ContractName:         contract.FullyQualifiedName(),
		CompilerVersion:      contract.CompilerVersion,
		StandardJSONInput:    string(contract.StandardJSONInput),
		ConstructorArguments: encodedArgs,
	})
	switch {
	case errors.Is(err, etherscan.ErrAlreadyVerified):
		log.Debug("source already verified", fields...)
		res.Status = models.StatusAlreadyVerified
	case err != nil:
		res.Err = err
		return res
	default:
		log.Debug("source submitted", append(fields, zap.String("guid", guid))...)
		if err := client.WaitForVerification(ctx, guid); err != nil {
			res.Err = err
			return res
		}
		res.Status = models.StatusVerified
	}

	if in.IsProxy {
		proxyGUID, err := client.VerifyProxy(ctx, in.ContractAddress())
		if err == nil {
			err = client.WaitForProxyVerification(ctx, proxyGUID)
		}
		if err != nil {
			res.Status = models.StatusFailed
			res.Err = fmt.Errorf("proxy verification: %w", err)
			return res
		}
	}
	return res
}

func printSummary(out *ux.UserLog, results *models.VerificationResults) error {
	rows := make([][]string, 0, results.Len())
	for _, r := range results.GetResults() {
		proxy := "no"
		if r.IsProxy {
			proxy = "yes"
		}
		rows = append(rows, []string{r.Name, r.Address, proxy, string(r.Status)})
	}
	return ux.PrintTable(out.Writer(), []string{"Contract", "Address", "Proxy", "Status"}, rows)
}
