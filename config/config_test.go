package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	InitializeFlags(flags, DefaultConfig())
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)

	env, err := c.Environment()
	require.NoError(t, err)
	assert.Equal(t, "mainnet", env.Network)
	assert.Equal(t, "access.mainnet.nodes.onflow.org:9000", env.AccessAddress)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dao.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
network: emulator
seal-timeout: 2m
refresh-interval: 30s
listen-address: ":9000"
`), 0600))

	t.Setenv("DAO_REFRESH_INTERVAL", "20s")
	t.Setenv("DAO_COMPUTE_LIMIT", "9999")

	c, err := Load(newFlags(t, "--config-file", path, "--listen-address", ":7000"))
	require.NoError(t, err)

	assert.Equal(t, "emulator", c.Network)                 // file
	assert.Equal(t, 2*time.Minute, c.SealTimeout)          // file
	assert.Equal(t, 20*time.Second, c.RefreshInterval)     // env over file
	assert.Equal(t, uint64(9999), c.ComputeLimit)          // env over default
	assert.Equal(t, ":7000", c.ListenAddress)              // flag over file
	assert.Equal(t, 8*time.Second, c.NotificationTTL)      // default
	assert.Equal(t, uint32(5), c.CircuitBreaker().MaxFailures)
}

func TestLoad_Signer(t *testing.T) {
	c, err := Load(newFlags(t,
		"--network", "testnet",
		"--dao-address", "0x7e60df042a9c0868",
		"--signer-address", "0x7e60df042a9c0868",
		"--signer-key", "0xabcd",
		"--signer-key-index", "2",
	))
	require.NoError(t, err)

	signer := c.Signer()
	assert.Equal(t, "0x7e60df042a9c0868", signer.Address)
	assert.Equal(t, "0xabcd", signer.Key)
	assert.Equal(t, 2, signer.KeyIndex)
	assert.Equal(t, "ECDSA_P256", signer.SigAlgo)
	assert.Equal(t, "SHA3_256", signer.HashAlgo)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][]string{
		"unknown network":       {"--network", "devnet"},
		"signer without key":    {"--signer-address", "0x01"},
		"zero compute limit":    {"--compute-limit", "0"},
		"negative key index":    {"--signer-key-index", "-1"},
		"zero refresh interval": {"--refresh-interval", "0s"},
		"unknown log level":     {"--log-level", "verbose"},
	}

	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(newFlags(t, args...))
			assert.Error(t, err)
		})
	}
}

func TestLoad_InvalidMessage(t *testing.T) {
	_, err := Load(newFlags(t, "--network", "devnet"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid network devnet (oneof)")
}

func TestLoad_UnknownFileKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dao.yaml")
	require.NoError(t, os.WriteFile(path, []byte("netwrok: emulator\n"), 0600))

	_, err := Load(newFlags(t, "--config-file", path))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(newFlags(t, "--config-file", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}
