package dao_test

import (
	"testing"

	sdk "github.com/onflow/flow-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/dao-dashboard/module/dao"
	"github.com/onflow/dao-dashboard/utils/unittest"
)

func signerConfig(t *testing.T, address string) dao.SignerConfig {
	return dao.SignerConfig{
		Address:  address,
		Key:      unittest.PrivateKeyFixture(t).String(),
		SigAlgo:  "ECDSA_P256",
		HashAlgo: "SHA3_256",
	}
}

func TestNewSession(t *testing.T) {
	t.Run("no signer is logged out", func(t *testing.T) {
		session, err := dao.NewSession(dao.SignerConfig{}, sdk.Emulator)
		require.NoError(t, err)
		assert.False(t, session.LoggedIn())
		assert.Equal(t, sdk.EmptyAddress, session.Address())
	})

	t.Run("configured signer", func(t *testing.T) {
		addr := unittest.AddressFixture()

		session, err := dao.NewSession(signerConfig(t, "0x"+addr.Hex()), sdk.Emulator)
		require.NoError(t, err)
		assert.True(t, session.LoggedIn())
		assert.Equal(t, addr, session.Address())
		assert.NotNil(t, session.Signer())
	})

	t.Run("missing key", func(t *testing.T) {
		config := signerConfig(t, unittest.AddressFixture().Hex())
		config.Key = ""
		_, err := dao.NewSession(config, sdk.Emulator)
		assert.ErrorContains(t, err, "missing private key")
	})
}

func TestNewSession_InvalidAddress(t *testing.T) {
	valid := unittest.AddressFixture()

	invalid := map[string]string{
		"not hex":             "0xnothex",
		"longer than 8 bytes": "0x00" + valid.Hex(),
		"other chain":         "0x1654653399040a61",
	}

	for name, address := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := dao.NewSession(signerConfig(t, address), sdk.Emulator)
			assert.ErrorContains(t, err, "invalid signer address")
		})
	}
}
