// Package config loads aggchain-tool configuration from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. AGGCHAIN_TIMELOCK_MIN_DELAY.
const EnvPrefix = "AGGCHAIN"

// Config holds all configuration for aggchain-tool.
type Config struct {
	LogLevel  string          `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	OutputDir string          `mapstructure:"output_dir" validate:"required"`
	Aggchain  AggchainConfig  `mapstructure:"aggchain"`
	Init      InitConfig      `mapstructure:"init"`
	Timelock  TimelockConfig  `mapstructure:"timelock"`
	Registry  []RegistryEntry `mapstructure:"registry" validate:"dive"`
}

// AggchainConfig selects the flavor and carries the inputs of the aggchain hash.
type AggchainConfig struct {
	Type          string       `mapstructure:"type" validate:"required,oneof=ecdsa fep"`
	VKeyVersion   string       `mapstructure:"vkey_version" validate:"required,hexadecimal"`
	ConsensusType uint32       `mapstructure:"consensus_type" validate:"oneof=0 1"`
	VKey          string       `mapstructure:"vkey" validate:"omitempty,len=66,hexadecimal"`
	ECDSA         *ECDSAConfig `mapstructure:"ecdsa" validate:"required_if=Type ecdsa"`
	FEP           *FEPConfig   `mapstructure:"fep" validate:"required_if=Type fep"`
}

// ECDSAConfig holds the signature flavor's parameters.
type ECDSAConfig struct {
	TrustedSigner string `mapstructure:"trusted_signer" validate:"required,eth_addr"`
}

// FEPConfig holds the fault-proof flavor's parameters.
type FEPConfig struct {
	PreviousOutputRoot  string `mapstructure:"previous_output_root" validate:"required,len=66,hexadecimal"`
	NewOutputRoot       string `mapstructure:"new_output_root" validate:"required,len=66,hexadecimal"`
	NewBlockNumber      string `mapstructure:"new_block_number" validate:"required"`
	RollupConfigHash    string `mapstructure:"rollup_config_hash" validate:"required,len=66,hexadecimal"`
	OptimisticMode      bool   `mapstructure:"optimistic_mode"`
	TrustedSequencer    string `mapstructure:"trusted_sequencer" validate:"required,eth_addr"`
	RangeVKeyCommitment string `mapstructure:"range_vkey_commitment" validate:"required,len=66,hexadecimal"`
	AggregationVKey     string `mapstructure:"aggregation_vkey" validate:"required,len=66,hexadecimal"`
}

// InitConfig describes an initialization payload.
type InitConfig struct {
	Version           uint8    `mapstructure:"version" validate:"oneof=0 1"`
	Admin             string   `mapstructure:"admin" validate:"omitempty,eth_addr"`
	TrustedSequencer  string   `mapstructure:"trusted_sequencer" validate:"omitempty,eth_addr"`
	GasTokenAddress   string   `mapstructure:"gas_token_address" validate:"omitempty,eth_addr"`
	SequencerURL      string   `mapstructure:"trusted_sequencer_url"`
	NetworkName       string   `mapstructure:"network_name"`
	UseDefaultGateway bool     `mapstructure:"use_default_gateway"`
	OwnedVKeys        []string `mapstructure:"owned_vkeys" validate:"dive,len=66,hexadecimal"`
	Selectors         []string `mapstructure:"selectors" validate:"dive,len=10,hexadecimal"`
	VKeyManager       string   `mapstructure:"vkey_manager" validate:"required,eth_addr"`

	StartingOutputRoot  string `mapstructure:"starting_output_root" validate:"omitempty,len=66,hexadecimal"`
	StartingTimestamp   string `mapstructure:"starting_timestamp"`
	StartingBlockNumber string `mapstructure:"starting_block_number"`
}

// TimelockConfig holds the constructor arguments of the genesis timelock.
type TimelockConfig struct {
	Layout    string `mapstructure:"layout" validate:"required,oneof=oz-timelock-v4 oz-timelock-v5"`
	MinDelay  string `mapstructure:"min_delay" validate:"required"`
	Admin     string `mapstructure:"admin" validate:"required,eth_addr"`
	Address   string `mapstructure:"address" validate:"required,eth_addr"`
	Code      string `mapstructure:"code" validate:"omitempty,hexadecimal"`
	BaseAlloc string `mapstructure:"base_alloc" validate:"omitempty,file"`
}

// RegistryEntry is one gateway default key.
type RegistryEntry struct {
	Selector string `mapstructure:"selector" validate:"required,len=10,hexadecimal"`
	VKey     string `mapstructure:"vkey" validate:"required,len=66,hexadecimal"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from path (optional) and AGGCHAIN_ environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("aggchain")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Env-only keys are not seen by Unmarshal unless bound.
	for _, key := range []string{
		"aggchain.type", "aggchain.vkey", "aggchain.vkey_version", "aggchain.consensus_type",
		"init.admin", "init.vkey_manager",
		"timelock.min_delay", "timelock.admin", "timelock.address", "timelock.code",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateSection("config", struct {
		LogLevel  string `validate:"oneof=debug info warn error"`
		OutputDir string `validate:"required"`
	}{cfg.LogLevel, cfg.OutputDir}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("output_dir", "./out")

	v.SetDefault("aggchain.vkey_version", "0x0001")
	v.SetDefault("aggchain.consensus_type", 1)

	v.SetDefault("init.version", 0)
	v.SetDefault("init.use_default_gateway", true)
	v.SetDefault("init.gas_token_address", "0x0000000000000000000000000000000000000000")

	v.SetDefault("timelock.layout", "oz-timelock-v4")
	v.SetDefault("timelock.min_delay", "3600")
}

// validateSection runs struct validation on one section. Sections are checked lazily so
// a command only needs the sections it uses.
func validateSection(name string, s any) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid %s: %s", name, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	return nil
}
