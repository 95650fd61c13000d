package deployments

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownChains(t *testing.T) {
	hardhat := Resolve(31337)
	require.True(t, hardhat.IsDeployed)
	assert.Equal(t, "hardhat", hardhat.ChainName)
	assert.Equal(t, common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"), hardhat.ContractAddress)

	sepolia := Resolve(11155111)
	require.True(t, sepolia.IsDeployed)
	assert.Equal(t, "sepolia", sepolia.ChainName)
}

func TestResolve_UnknownChain(t *testing.T) {
	info := Resolve(999999)
	assert.False(t, info.IsDeployed)
	assert.Equal(t, uint64(999999), info.ChainID)
	assert.Equal(t, common.Address{}, info.ContractAddress)
}

func TestCapabilitiesFor(t *testing.T) {
	assert.Equal(t, Capabilities{RequiresRelayer: false, IsProductionSafe: false}, CapabilitiesFor(31337))
	assert.Equal(t, Capabilities{RequiresRelayer: true, IsProductionSafe: true}, CapabilitiesFor(11155111))
	// unknown chains get the conservative combination
	assert.Equal(t, Capabilities{RequiresRelayer: true, IsProductionSafe: true}, CapabilitiesFor(5))
}

func TestExpectedChainIDs(t *testing.T) {
	ids := ExpectedChainIDs()
	assert.ElementsMatch(t, []uint64{11155111, 31337}, ids)
}
