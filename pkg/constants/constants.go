// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import (
	"time"
)

const (
	DefaultPerms755 = 0o755

	CLIName = "vaults"

	// BaseDirName holds per-user state under $HOME, currently only logs.
	BaseDirName = ".vaults"
	LogDir      = "logs"

	MaxLogFileSize   = 4
	MaxNumOfLogFiles = 5
	RetainOldFiles   = 0 // retain all old log files

	// EnvPrefix prefixes every environment override of a config key
	// (VAULTS_VERIFY_CONCURRENCY -> verify.concurrency).
	EnvPrefix = "VAULTS"

	EtherscanAPIKeyEnvVar = "ETHERSCAN_API_KEY"

	DefaultEnvFile        = ".env"
	DefaultConfigFileName = "vaults"

	DefaultSolidityVersion  = "0.7.6"
	DefaultOptimizerEnabled = true
	DefaultOptimizerRuns    = 999999
	DefaultGasCurrency      = "USD"

	DefaultTypechainOutDir  = "../../typescript/typechain/optics-xapps"
	DefaultTypechainTarget  = "ethers-v5"
	DefaultDeploysDir       = "../../rust/config"
	DefaultArtifactsDir     = "artifacts"
	BuildInfoDir            = "build-info"
	BridgeDeployDir         = "bridge"
	VerificationFileSuffix  = "_verification.json"
	DefaultNetwork          = "hardhat"
	HarmonyTestnetNetwork   = "harmony_testnet"
	HarmonyTestnetRPCURL    = "https://api.s0.b.hmny.io"
	DefaultVerifyWorkers    = 1
	DefaultPollInterval     = 5 * time.Second
	DefaultPollAttempts     = 24
	RedactedValue           = "<redacted>"
	APIRequestTimeout       = 30 * time.Second
	RPCRequestTimeout       = 10 * time.Second
	DefaultHTTPRetryMax     = 4
	DefaultHTTPRetryWaitMin = 500 * time.Millisecond
	DefaultHTTPRetryWaitMax = 5 * time.Second

	VerifyLatestDeployTaskName        = "verify-latest-deploy"
	VerifyLatestDeployTaskDescription = "Verifies the source code of the latest contract deploy"
)
