package scripts

import (
	"fmt"

	sdk "github.com/onflow/flow-go-sdk"
)

const (
	Mainnet  = "mainnet"
	Testnet  = "testnet"
	Emulator = "emulator"
)

// Environment resolves the contract imports of scripts for one network.
type Environment struct {
	Network       string
	ChainID       sdk.ChainID
	AccessAddress string
	DAOAddress    sdk.Address
}

var environments = map[string]Environment{
	Mainnet: {
		Network:       Mainnet,
		ChainID:       sdk.Mainnet,
		AccessAddress: "access.mainnet.nodes.onflow.org:9000",
		DAOAddress:    sdk.HexToAddress("ded84803994b06e4"),
	},
	Testnet: {
		Network:       Testnet,
		ChainID:       sdk.Testnet,
		AccessAddress: "access.devnet.nodes.onflow.org:9000",
	},
	Emulator: {
		Network:       Emulator,
		ChainID:       sdk.Emulator,
		AccessAddress: "127.0.0.1:3569",
		DAOAddress:    sdk.HexToAddress("f8d6e0586b0a20c7"),
	},
}

// EnvironmentForNetwork returns the environment of a network. Non-empty accessAddress and
// daoAddress replace the network defaults.
func EnvironmentForNetwork(network string, accessAddress string, daoAddress string) (Environment, error) {
	env, ok := environments[network]
	if !ok {
		return Environment{}, fmt.Errorf("invalid network string expecting one of ( %s | %s | %s ), got %q", Mainnet, Testnet, Emulator, network)
	}

	if accessAddress != "" {
		env.AccessAddress = accessAddress
	}

	if daoAddress != "" {
		addr := sdk.HexToAddress(daoAddress)
		if !addr.IsValid(env.ChainID) {
			return Environment{}, fmt.Errorf("invalid DAO contract address %s for %s", daoAddress, network)
		}
		env.DAOAddress = addr
	}

	if env.DAOAddress == sdk.EmptyAddress {
		return Environment{}, fmt.Errorf("no DAO contract address known for %s, an address must be configured", network)
	}

	return env, nil
}
