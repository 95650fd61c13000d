// Package deployments maps chain ids to contract deployments and network
// capability flags. Lookups are static; absence is represented in the result,
// never as an error.
package deployments

import "github.com/ethereum/go-ethereum/common"

// DeploymentInfo describes the donation log contract on one chain.
type DeploymentInfo struct {
	ChainID         uint64
	ChainName       string
	ContractAddress common.Address
	// IsDeployed is false for unknown chain ids and zero-address entries.
	// Callers must branch on it before any read or write against the contract.
	IsDeployed bool
}

// Capabilities carries per-network UX flags. Chain-specific branching is
// data, not business logic.
type Capabilities struct {
	// RequiresRelayer is false on mock-capable local networks.
	RequiresRelayer bool
	// IsProductionSafe is false for networks that only exist in local dev.
	IsProductionSafe bool
}

const (
	ChainSepolia = 11155111
	ChainHardhat = 31337
)

var contracts = map[uint64]DeploymentInfo{
	ChainSepolia: {
		ChainID:         ChainSepolia,
		ChainName:       "sepolia",
		ContractAddress: common.HexToAddress("0x7D43afa1E649EB6B2Af71B674227e13EEf3B09fA"),
	},
	ChainHardhat: {
		ChainID:         ChainHardhat,
		ChainName:       "hardhat",
		ContractAddress: common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
	},
}

var capabilities = map[uint64]Capabilities{
	ChainSepolia: {RequiresRelayer: true, IsProductionSafe: true},
	ChainHardhat: {RequiresRelayer: false, IsProductionSafe: false},
}

// Resolve returns the deployment for chainID. It never fails: unknown ids
// come back with IsDeployed=false.
func Resolve(chainID uint64) DeploymentInfo {
	info, ok := contracts[chainID]
	if !ok {
		return DeploymentInfo{ChainID: chainID}
	}
	info.IsDeployed = info.ContractAddress != (common.Address{})
	return info
}

// CapabilitiesFor returns the capability flags for chainID. Unknown chains
// are treated as relayer-requiring and production-safe, the conservative
// combination.
func CapabilitiesFor(chainID uint64) Capabilities {
	caps, ok := capabilities[chainID]
	if !ok {
		return Capabilities{RequiresRelayer: true, IsProductionSafe: true}
	}
	return caps
}

// ExpectedChainIDs lists the chain ids with a deployed contract, for chain
// mismatch diagnostics.
func ExpectedChainIDs() []uint64 {
	ids := make([]uint64, 0, len(contracts))
	for id := range contracts {
		if Resolve(id).IsDeployed {
			ids = append(ids, id)
		}
	}
	return ids
}
