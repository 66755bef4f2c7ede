// Package config loads the dashboard configuration from flags, DAO_ prefixed environment
// variables and an optional config file, in decreasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/onflow/dao-dashboard/module/access"
	"github.com/onflow/dao-dashboard/module/dao"
	"github.com/onflow/dao-dashboard/module/scripts"
)

const envPrefix = "DAO"

const (
	// All constant strings are used for CLI flag names and corresponding keys for config values.
	configFile      = "config-file"
	network         = "network"
	accessAddress   = "access-address"
	daoAddress      = "dao-address"
	grpcMaxMsgSize  = "grpc-max-msg-size"
	signerAddress   = "signer-address"
	signerKey       = "signer-key"
	signerKeyIndex  = "signer-key-index"
	signerSigAlgo   = "signer-sig-algo"
	signerHashAlgo  = "signer-hash-algo"
	computeLimit    = "compute-limit"
	sealTimeout     = "seal-timeout"
	pollInterval    = "poll-interval"
	refreshInterval = "refresh-interval"
	notificationTTL = "notification-ttl"
	listenAddress   = "listen-address"
	metricsPort     = "metrics-port"
	logLevel        = "log-level"
	// access node circuit breaker
	breakerEnabled        = "circuit-breaker-enabled"
	breakerRestoreTimeout = "circuit-breaker-restore-timeout"
	breakerMaxFailures    = "circuit-breaker-max-failures"
	breakerMaxRequests    = "circuit-breaker-max-requests"
)

// Config is the configuration of the dashboard commands.
type Config struct {
	ConfigFile string `mapstructure:"config-file"`

	Network        string `validate:"oneof=mainnet testnet emulator" mapstructure:"network"`
	AccessAddress  string `mapstructure:"access-address"`
	DAOAddress     string `mapstructure:"dao-address"`
	GRPCMaxMsgSize int    `validate:"gte=0" mapstructure:"grpc-max-msg-size"`

	// The signer is optional, without it the dashboard is read-only.
	SignerAddress  string `mapstructure:"signer-address"`
	SignerKey      string `validate:"required_with=SignerAddress" mapstructure:"signer-key"`
	SignerKeyIndex int    `validate:"gte=0" mapstructure:"signer-key-index"`
	SignerSigAlgo  string `validate:"required" mapstructure:"signer-sig-algo"`
	SignerHashAlgo string `validate:"required" mapstructure:"signer-hash-algo"`

	ComputeLimit    uint64        `validate:"gt=0" mapstructure:"compute-limit"`
	SealTimeout     time.Duration `validate:"gt=0" mapstructure:"seal-timeout"`
	PollInterval    time.Duration `validate:"gt=0" mapstructure:"poll-interval"`
	RefreshInterval time.Duration `validate:"gt=0" mapstructure:"refresh-interval"`
	NotificationTTL time.Duration `validate:"gt=0" mapstructure:"notification-ttl"`

	ListenAddress string `validate:"required" mapstructure:"listen-address"`
	// MetricsPort 0 disables the metrics server.
	MetricsPort uint   `validate:"lte=65535" mapstructure:"metrics-port"`
	LogLevel    string `validate:"oneof=trace debug info warn error" mapstructure:"log-level"`

	BreakerEnabled        bool          `mapstructure:"circuit-breaker-enabled"`
	BreakerRestoreTimeout time.Duration `validate:"gt=0" mapstructure:"circuit-breaker-restore-timeout"`
	BreakerMaxFailures    uint32        `validate:"gt=0" mapstructure:"circuit-breaker-max-failures"`
	BreakerMaxRequests    uint32        `validate:"gt=0" mapstructure:"circuit-breaker-max-requests"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	breaker := access.DefaultCircuitBreakerConfig()
	return Config{
		Network:               scripts.Mainnet,
		GRPCMaxMsgSize:        20 << 20, // 20MB
		SignerKeyIndex:        0,
		SignerSigAlgo:         "ECDSA_P256",
		SignerHashAlgo:        "SHA3_256",
		ComputeLimit:          dao.DefaultComputeLimit,
		SealTimeout:           10 * time.Minute,
		PollInterval:          time.Second,
		RefreshInterval:       10 * time.Second,
		NotificationTTL:       8 * time.Second,
		ListenAddress:         ":8080",
		MetricsPort:           8081,
		LogLevel:              "info",
		BreakerEnabled:        breaker.Enabled,
		BreakerRestoreTimeout: breaker.RestoreTimeout,
		BreakerMaxFailures:    breaker.MaxFailures,
		BreakerMaxRequests:    breaker.MaxRequests,
	}
}

// InitializeFlags initializes all CLI flags of the configuration on the provided pflag set.
func InitializeFlags(flags *pflag.FlagSet, defaults Config) {
	flags.String(configFile, defaults.ConfigFile, "path to a YAML, JSON or TOML config file")

	flags.String(network, defaults.Network, "Flow network, one of mainnet, testnet or emulator")
	flags.String(accessAddress, defaults.AccessAddress, "access node gRPC address, defaults to the network access node")
	flags.String(daoAddress, defaults.DAOAddress, "address of the DAO contract, defaults to the network deployment")
	flags.Int(grpcMaxMsgSize, defaults.GRPCMaxMsgSize, "maximum size of gRPC messages received from the access node")

	flags.String(signerAddress, defaults.SignerAddress, "address of the signing account, the dashboard is read-only without it")
	flags.String(signerKey, defaults.SignerKey, "hex encoded private key of the signing account")
	flags.Int(signerKeyIndex, defaults.SignerKeyIndex, "index of the signing key on the account")
	flags.String(signerSigAlgo, defaults.SignerSigAlgo, "signature algorithm of the signing key")
	flags.String(signerHashAlgo, defaults.SignerHashAlgo, "hash algorithm of the signing key")

	flags.Uint64(computeLimit, defaults.ComputeLimit, "compute limit of submitted transactions")
	flags.Duration(sealTimeout, defaults.SealTimeout, "time to wait for a transaction to be sealed")
	flags.Duration(pollInterval, defaults.PollInterval, "interval between transaction status polls")
	flags.Duration(refreshInterval, defaults.RefreshInterval, "interval between refreshes of the DAO state")
	flags.Duration(notificationTTL, defaults.NotificationTTL, "time after which notifications are dismissed")

	flags.String(listenAddress, defaults.ListenAddress, "address the REST API listens on")
	flags.Uint(metricsPort, defaults.MetricsPort, "port of the prometheus metrics server, 0 disables it")
	flags.String(logLevel, defaults.LogLevel, "level for logging output")

	flags.Bool(breakerEnabled, defaults.BreakerEnabled, "whether to guard the access node with a circuit breaker")
	flags.Duration(breakerRestoreTimeout, defaults.BreakerRestoreTimeout, "time after which an open circuit breaker lets requests through again")
	flags.Uint32(breakerMaxFailures, defaults.BreakerMaxFailures, "consecutive access node failures opening the circuit breaker")
	flags.Uint32(breakerMaxRequests, defaults.BreakerMaxRequests, "requests let through to probe a recovering access node")
}

// Load reads the configuration. Flags set on the command line take precedence over
// environment variables, which take precedence over the config file and the flag defaults.
func Load(flags *pflag.FlagSet) (Config, error) {
	conf := viper.New()
	conf.SetEnvPrefix(envPrefix)
	conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	conf.AutomaticEnv()

	if err := conf.BindPFlags(flags); err != nil {
		return Config{}, fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := conf.GetString(configFile); path != "" {
		conf.SetConfigFile(path)
		if err := conf.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var c Config
	err := conf.Unmarshal(&c, func(decoderConfig *mapstructure.DecoderConfig) {
		// keys of the config file which are not part of the configuration are rejected
		decoderConfig.ErrorUnused = true
	})
	if err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	var msgs []string
	for _, fieldErr := range validationErrs {
		msgs = append(msgs, fmt.Sprintf("invalid %s %v (%s)", flagName(fieldErr.StructField()), fieldErr.Value(), fieldErr.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
}

// flagName maps a Config field to its flag.
func flagName(field string) string {
	names := map[string]string{
		"Network":               network,
		"GRPCMaxMsgSize":        grpcMaxMsgSize,
		"SignerKey":             signerKey,
		"SignerKeyIndex":        signerKeyIndex,
		"SignerSigAlgo":         signerSigAlgo,
		"SignerHashAlgo":        signerHashAlgo,
		"ComputeLimit":          computeLimit,
		"SealTimeout":           sealTimeout,
		"PollInterval":          pollInterval,
		"RefreshInterval":       refreshInterval,
		"NotificationTTL":       notificationTTL,
		"ListenAddress":         listenAddress,
		"MetricsPort":           metricsPort,
		"LogLevel":              logLevel,
		"BreakerRestoreTimeout": breakerRestoreTimeout,
		"BreakerMaxFailures":    breakerMaxFailures,
		"BreakerMaxRequests":    breakerMaxRequests,
	}
	if name, ok := names[field]; ok {
		return name
	}
	return field
}

// Environment returns the script environment of the configured network.
func (c Config) Environment() (scripts.Environment, error) {
	return scripts.EnvironmentForNetwork(c.Network, c.AccessAddress, c.DAOAddress)
}

// Signer returns the signing account configuration.
func (c Config) Signer() dao.SignerConfig {
	return dao.SignerConfig{
		Address:  c.SignerAddress,
		Key:      c.SignerKey,
		KeyIndex: c.SignerKeyIndex,
		SigAlgo:  c.SignerSigAlgo,
		HashAlgo: c.SignerHashAlgo,
	}
}

// CircuitBreaker returns the circuit breaker configuration of the access client.
func (c Config) CircuitBreaker() access.CircuitBreakerConfig {
	return access.CircuitBreakerConfig{
		Enabled:        c.BreakerEnabled,
		RestoreTimeout: c.BreakerRestoreTimeout,
		MaxFailures:    c.BreakerMaxFailures,
		MaxRequests:    c.BreakerMaxRequests,
	}
}
