package commands

import (
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/gateway-fm/zkevm-contracts-sub000/internal/aggchain"
	"github.com/gateway-fm/zkevm-contracts-sub000/internal/artifacts"
)

// SelectorResult is the selector.json artifact.
type SelectorResult struct {
	Selector     aggchain.Selector `json:"selector"`
	AggchainType string            `json:"aggchainType"`
	Flavor       string            `json:"flavor"`
	VKeyVersion  string            `json:"vkeyVersion"`
}

// ParamsHashResult is the params-hash.json artifact.
type ParamsHashResult struct {
	Flavor     string        `json:"flavor"`
	Packed     hexutil.Bytes `json:"packed"`
	ParamsHash common.Hash   `json:"paramsHash"`
}

// AggchainHashResult is the aggchain-hash.json artifact.
type AggchainHashResult struct {
	Selector      aggchain.Selector        `json:"selector"`
	ConsensusType aggchain.ConsensusType   `json:"consensusType"`
	VKey          aggchain.VerificationKey `json:"vkey"`
	VKeySource    string                   `json:"vkeySource"`
	ParamsHash    common.Hash              `json:"paramsHash"`
	AggchainHash  common.Hash              `json:"aggchainHash"`
}

func newSelectorCommand(rc *runContext) *cobra.Command {
	var flavor, version string
	cmd := &cobra.Command{
		Use:   "selector",
		Short: "Build the 4-byte verification key selector",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ac := rc.cfg.Aggchain
			if flavor != "" {
				ac.Type = flavor
			}
			if version != "" {
				ac.VKeyVersion = version
			}
			sel, err := ac.Selector()
			if err != nil {
				return fmt.Errorf("build selector: %w", err)
			}
			t, v := aggchain.ParseSelector(sel)
			rc.logger.Info("selector built", slog.String("selector", sel.String()), slog.String("flavor", t.Name()))
			return rc.writeArtifact(cmd.Name(), artifactFile{artifacts.SelectorFile, SelectorResult{
				Selector:     sel,
				AggchainType: t.String(),
				Flavor:       t.Name(),
				VKeyVersion:  v.String(),
			}})
		},
	}
	cmd.Flags().StringVar(&flavor, "type", "", "aggchain type: ecdsa or fep (overrides aggchain.type)")
	cmd.Flags().StringVar(&version, "vkey-version", "", "2-byte version tag, e.g. 0x0001 (overrides aggchain.vkey_version)")
	return cmd
}

func newParamsHashCommand(rc *runContext) *cobra.Command {
	return &cobra.Command{
		Use:   "params-hash",
		Short: "Digest the flavor's consensus parameters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := rc.cfg.Aggchain.Params()
			if err != nil {
				return err
			}
			packed, err := params.Pack()
			if err != nil {
				return fmt.Errorf("pack params: %w", err)
			}
			digest, err := aggchain.ParamsHash(params)
			if err != nil {
				return fmt.Errorf("hash params: %w", err)
			}
			rc.logger.Info("params hashed", slog.String("flavor", params.AggchainType().Name()), slog.String("params_hash", digest.Hex()))
			return rc.writeArtifact(cmd.Name(), artifactFile{artifacts.ParamsHashFile, ParamsHashResult{
				Flavor:     params.AggchainType().Name(),
				Packed:     packed,
				ParamsHash: digest,
			}})
		},
	}
}

func newAggchainHashCommand(rc *runContext) *cobra.Command {
	return &cobra.Command{
		Use:   "aggchain-hash",
		Short: "Bind the params digest to the consensus type and verification key",
		Long: `Computes keccak256(consensusType || vkey || paramsHash).

The key is aggchain.vkey when set. Otherwise it is resolved for the configured
selector from the gateway registry (init.use_default_gateway) or from the
unit's own keys (init.owned_vkeys / init.selectors).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ac := &rc.cfg.Aggchain
			params, err := ac.Params()
			if err != nil {
				return err
			}
			sel, err := ac.Selector()
			if err != nil {
				return fmt.Errorf("build selector: %w", err)
			}
			key, source, err := rc.resolveKey(sel)
			if err != nil {
				return fmt.Errorf("resolve vkey for %s: %w", sel, err)
			}
			digest, err := aggchain.ParamsHash(params)
			if err != nil {
				return fmt.Errorf("hash params: %w", err)
			}
			hash, err := aggchain.BindHash(ac.Consensus(), key, digest)
			if err != nil {
				return fmt.Errorf("bind hash: %w", err)
			}
			rc.logger.Info("aggchain hash computed", slog.String("selector", sel.String()), slog.String("vkey_source", source), slog.String("aggchain_hash", hash.Hex()))
			return rc.writeArtifact(cmd.Name(), artifactFile{artifacts.AggchainHashFile, AggchainHashResult{
				Selector:      sel,
				ConsensusType: ac.Consensus(),
				VKey:          key,
				VKeySource:    source,
				ParamsHash:    digest,
				AggchainHash:  hash,
			}})
		},
	}
}

func (rc *runContext) resolveKey(sel aggchain.Selector) (aggchain.VerificationKey, string, error) {
	if rc.cfg.Aggchain.VKey != "" {
		key, err := rc.cfg.Aggchain.VerificationKey()
		return key, "config", err
	}
	payload, err := rc.cfg.InitPayload()
	if err != nil {
		return aggchain.VerificationKey{}, "", err
	}
	gateway := gatewayOf(payload)
	owned, err := aggchain.OwnedKeys(gateway.Selectors, gateway.OwnedVKeys)
	if err != nil {
		return aggchain.VerificationKey{}, "", err
	}
	registry, err := rc.cfg.VKeyRegistry()
	if err != nil {
		return aggchain.VerificationKey{}, "", err
	}
	key, err := registry.Resolve(sel, gateway.UseDefaultGateway, owned)
	source := "owned"
	if gateway.UseDefaultGateway {
		source = "gateway"
	}
	return key, source, err
}

func gatewayOf(p aggchain.InitPayload) aggchain.GatewayBinding {
	switch p := p.(type) {
	case *aggchain.ECDSAInitV0:
		return p.Gateway
	case *aggchain.FEPInitV0:
		return p.Gateway
	case *aggchain.InitV1:
		return p.Gateway
	default:
		return aggchain.GatewayBinding{}
	}
}
