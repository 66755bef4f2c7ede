package scripts

import (
	"strings"
	"testing"

	sdk "github.com/onflow/flow-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentForNetwork(t *testing.T) {
	t.Run("mainnet defaults", func(t *testing.T) {
		env, err := EnvironmentForNetwork(Mainnet, "", "")
		require.NoError(t, err)
		assert.Equal(t, sdk.HexToAddress("ded84803994b06e4"), env.DAOAddress)
		assert.Equal(t, "access.mainnet.nodes.onflow.org:9000", env.AccessAddress)
	})

	t.Run("overrides", func(t *testing.T) {
		env, err := EnvironmentForNetwork(Mainnet, "localhost:9000", "0x1654653399040a61")
		require.NoError(t, err)
		assert.Equal(t, sdk.HexToAddress("1654653399040a61"), env.DAOAddress)
		assert.Equal(t, "localhost:9000", env.AccessAddress)
	})

	t.Run("testnet requires an address", func(t *testing.T) {
		_, err := EnvironmentForNetwork(Testnet, "", "")
		assert.Error(t, err)
	})

	t.Run("address of another chain", func(t *testing.T) {
		_, err := EnvironmentForNetwork(Mainnet, "", "f8d6e0586b0a20c7")
		assert.Error(t, err)
	})

	t.Run("unknown network", func(t *testing.T) {
		_, err := EnvironmentForNetwork("localnet", "", "")
		assert.ErrorContains(t, err, "invalid network string")
	})
}

func TestRegistry(t *testing.T) {
	env, err := EnvironmentForNetwork(Mainnet, "", "")
	require.NoError(t, err)

	registry, err := NewRegistry(env)
	require.NoError(t, err)
	assert.Len(t, registry.Names(), 8)

	for _, name := range scriptNames {
		code, err := registry.Script(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(code), "import DAO from 0xded84803994b06e4")
		assert.NotContains(t, string(code), `import "DAO"`)
		assert.Contains(t, string(code), "fun main()")
	}

	for _, name := range transactionNames {
		code, err := registry.Transaction(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(code), "import DAO from 0xded84803994b06e4")
		assert.True(t, strings.Contains(string(code), "transaction("), name)
	}
}

func TestRegistry_UnknownScript(t *testing.T) {
	env, err := EnvironmentForNetwork(Emulator, "", "")
	require.NoError(t, err)

	registry, err := NewRegistry(env)
	require.NoError(t, err)

	_, err = registry.Script("get_votes")
	assert.ErrorIs(t, err, ErrUnknownScript)

	// transactions are not served as scripts
	_, err = registry.Script(VoteTopic)
	assert.ErrorIs(t, err, ErrUnknownScript)

	_, err = registry.Transaction(GetFounders)
	assert.ErrorIs(t, err, ErrUnknownScript)
}

func TestRegistry_LazyArsenal(t *testing.T) {
	env, err := EnvironmentForNetwork(Emulator, "", "")
	require.NoError(t, err)

	registry, err := NewRegistry(env)
	require.NoError(t, err)

	for _, name := range []Name{VoteFounder, VoteTopic, AddTopicOption} {
		code, err := registry.Transaction(name)
		require.NoError(t, err)
		assert.Contains(t, string(code), "DAO.createArsenal(parentAccount: signer)", name)
	}

	code, err := registry.Transaction(ProposeTopic)
	require.NoError(t, err)
	assert.Contains(t, string(code), "auth(DAO.FounderActions) &DAO.Arsenal")
}
