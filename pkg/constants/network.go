// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package constants

// Etherscan API endpoints for the networks contract verification supports.
var EtherscanAPIURLs = map[string]string{
	"mainnet": "https://api.etherscan.io/api",
	"goerli":  "https://api-goerli.etherscan.io/api",
	"sepolia": "https://api-sepolia.etherscan.io/api",
	"kovan":   "https://api-kovan.etherscan.io/api",
	"ropsten": "https://api-ropsten.etherscan.io/api",
	"rinkeby": "https://api-rinkeby.etherscan.io/api",
}

// EtherscanChainIDs are the chain ids behind EtherscanAPIURLs. A configured
// RPC url for one of these networks must serve the same chain.
var EtherscanChainIDs = map[string]uint64{
	"mainnet": 1,
	"ropsten": 3,
	"rinkeby": 4,
	"goerli":  5,
	"kovan":   42,
	"sepolia": 11155111,
}
