package config

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gateway-fm/zkevm-contracts-sub000/internal/aggchain"
	"github.com/gateway-fm/zkevm-contracts-sub000/internal/ethereum"
	"github.com/gateway-fm/zkevm-contracts-sub000/internal/timelock"
)

// AggchainType returns the configured flavor.
func (c *AggchainConfig) AggchainType() (aggchain.AggchainType, error) {
	t, ok := aggchain.AggchainTypeFromName(c.Type)
	if !ok {
		return aggchain.AggchainType{}, fmt.Errorf("invalid aggchain: unknown type %q", c.Type)
	}
	return t, nil
}

// Selector builds the selector from the configured flavor and version tag.
func (c *AggchainConfig) Selector() (aggchain.Selector, error) {
	t, err := c.AggchainType()
	if err != nil {
		return aggchain.Selector{}, err
	}
	return aggchain.SelectorFromHexTags(t.String(), c.VKeyVersion)
}

// VerificationKey decodes the configured aggchain verification key.
func (c *AggchainConfig) VerificationKey() (aggchain.VerificationKey, error) {
	if c.VKey == "" {
		return aggchain.VerificationKey{}, fmt.Errorf("invalid aggchain: vkey is required")
	}
	return ethereum.DecodeHash(c.VKey)
}

// Params validates the section and returns the flavor's consensus parameters.
func (c *AggchainConfig) Params() (aggchain.AggchainParams, error) {
	if err := validateSection("aggchain", c); err != nil {
		return nil, err
	}
	switch c.Type {
	case "ecdsa":
		signer, err := ethereum.DecodeAddress(c.ECDSA.TrustedSigner)
		if err != nil {
			return nil, fmt.Errorf("trusted_signer: %w", err)
		}
		return aggchain.ECDSAParams{TrustedSigner: signer}, nil
	case "fep":
		return c.FEP.params()
	default:
		return nil, fmt.Errorf("invalid aggchain: unknown type %q", c.Type)
	}
}

func (f *FEPConfig) params() (aggchain.FEPParams, error) {
	d := &decoder{}
	p := aggchain.FEPParams{
		PreviousOutputRoot:  d.hash("previous_output_root", f.PreviousOutputRoot),
		NewOutputRoot:       d.hash("new_output_root", f.NewOutputRoot),
		NewBlockNumber:      d.big("new_block_number", f.NewBlockNumber),
		RollupConfigHash:    d.hash("rollup_config_hash", f.RollupConfigHash),
		OptimisticMode:      f.OptimisticMode,
		TrustedSequencer:    d.address("trusted_sequencer", f.TrustedSequencer),
		RangeVKeyCommitment: d.hash("range_vkey_commitment", f.RangeVKeyCommitment),
		AggregationVKey:     d.hash("aggregation_vkey", f.AggregationVKey),
	}
	return p, d.err
}

// InitPayload validates both sections and assembles the configured initialization payload.
// Version 0 of the fault-proof flavor takes its key material from aggchain.fep.
func (c *Config) InitPayload() (aggchain.InitPayload, error) {
	if err := validateSection("aggchain", &c.Aggchain); err != nil {
		return nil, err
	}
	if err := validateSection("init", &c.Init); err != nil {
		return nil, err
	}
	t, err := c.Aggchain.AggchainType()
	if err != nil {
		return nil, err
	}

	in := &c.Init
	d := &decoder{}
	gateway := aggchain.GatewayBinding{
		UseDefaultGateway: in.UseDefaultGateway,
		OwnedVKeys:        make([]aggchain.VerificationKey, 0, len(in.OwnedVKeys)),
		Selectors:         make([]aggchain.Selector, 0, len(in.Selectors)),
		VKeyManager:       d.address("vkey_manager", in.VKeyManager),
	}
	for i, k := range in.OwnedVKeys {
		gateway.OwnedVKeys = append(gateway.OwnedVKeys, d.hash(fmt.Sprintf("owned_vkeys[%d]", i), k))
	}
	for i, s := range in.Selectors {
		gateway.Selectors = append(gateway.Selectors, d.selector(fmt.Sprintf("selectors[%d]", i), s))
	}

	if in.Version == 1 {
		if d.err != nil {
			return nil, d.err
		}
		return &aggchain.InitV1{Type: t, Gateway: gateway}, nil
	}

	if in.Admin == "" || in.TrustedSequencer == "" {
		return nil, fmt.Errorf("invalid init: admin and trusted_sequencer are required for version 0")
	}
	bootstrap := aggchain.Bootstrap{
		Admin:               d.address("admin", in.Admin),
		TrustedSequencer:    d.address("trusted_sequencer", in.TrustedSequencer),
		GasTokenAddress:     d.address("gas_token_address", in.GasTokenAddress),
		TrustedSequencerURL: in.SequencerURL,
		NetworkName:         in.NetworkName,
	}

	var payload aggchain.InitPayload
	if t == aggchain.AggchainTypeECDSA {
		payload = &aggchain.ECDSAInitV0{Bootstrap: bootstrap, Gateway: gateway}
	} else {
		fep := c.Aggchain.FEP
		payload = &aggchain.FEPInitV0{
			Bootstrap:           bootstrap,
			Gateway:             gateway,
			AggregationVKey:     d.hash("aggregation_vkey", fep.AggregationVKey),
			RollupConfigHash:    d.hash("rollup_config_hash", fep.RollupConfigHash),
			RangeVKeyCommitment: d.hash("range_vkey_commitment", fep.RangeVKeyCommitment),
			StartingOutputRoot:  d.hashOrZero("starting_output_root", in.StartingOutputRoot),
			StartingTimestamp:   d.big("starting_timestamp", in.StartingTimestamp),
			StartingBlockNumber: d.big("starting_block_number", in.StartingBlockNumber),
		}
	}
	if d.err != nil {
		return nil, d.err
	}
	return payload, nil
}

// VKeyRegistry builds the gateway default key registry from the registry section.
func (c *Config) VKeyRegistry() (*aggchain.VKeyRegistry, error) {
	d := &decoder{}
	entries := make([]aggchain.VKeyEntry, 0, len(c.Registry))
	for i, e := range c.Registry {
		if err := validateSection(fmt.Sprintf("registry[%d]", i), &e); err != nil {
			return nil, err
		}
		entries = append(entries, aggchain.VKeyEntry{
			Selector: d.selector(fmt.Sprintf("registry[%d].selector", i), e.Selector),
			VKey:     d.hash(fmt.Sprintf("registry[%d].vkey", i), e.VKey),
		})
	}
	if d.err != nil {
		return nil, d.err
	}
	return aggchain.NewVKeyRegistry(entries)
}

// TimelockLayout returns the configured storage layout.
func (c *TimelockConfig) TimelockLayout() (timelock.Layout, error) {
	l, ok := timelock.Layouts[c.Layout]
	if !ok {
		return timelock.Layout{}, fmt.Errorf("invalid timelock: unknown layout %q", c.Layout)
	}
	return l, nil
}

// Input validates the section and returns the timelock constructor arguments.
func (c *TimelockConfig) Input() (timelock.Input, error) {
	if err := validateSection("timelock", c); err != nil {
		return timelock.Input{}, err
	}
	d := &decoder{}
	in := timelock.Input{
		MinDelay: d.big("min_delay", c.MinDelay),
		Admin:    d.address("admin", c.Admin),
		Timelock: d.address("address", c.Address),
	}
	return in, d.err
}

// Bytecode decodes the runtime code placed at the timelock address.
func (c *TimelockConfig) Bytecode() ([]byte, error) {
	return ethereum.DecodeBytes(c.Code)
}

// decoder keeps the first decoding error so a struct literal can be filled in one pass.
type decoder struct {
	err error
}

func (d *decoder) fail(field string, err error) {
	if d.err == nil {
		d.err = fmt.Errorf("%s: %w", field, err)
	}
}

func (d *decoder) address(field, s string) common.Address {
	a, err := ethereum.DecodeAddress(s)
	if err != nil {
		d.fail(field, err)
	}
	return a
}

func (d *decoder) hash(field, s string) common.Hash {
	h, err := ethereum.DecodeHash(s)
	if err != nil {
		d.fail(field, err)
	}
	return h
}

func (d *decoder) hashOrZero(field, s string) common.Hash {
	if s == "" {
		return common.Hash{}
	}
	return d.hash(field, s)
}

func (d *decoder) big(field, s string) *big.Int {
	v, err := ethereum.DecodeBig(s)
	if err != nil {
		d.fail(field, err)
		return new(big.Int)
	}
	return v
}

func (d *decoder) selector(field, s string) aggchain.Selector {
	var sel aggchain.Selector
	if err := sel.UnmarshalText([]byte(s)); err != nil {
		d.fail(field, err)
	}
	return sel
}

// Consensus returns the configured consensus family.
func (c *AggchainConfig) Consensus() aggchain.ConsensusType {
	return aggchain.ConsensusType(c.ConsensusType)
}
