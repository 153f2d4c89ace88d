package aggchain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/gateway-fm/zkevm-contracts-sub000/internal/ethereum"
	pkgerrors "github.com/gateway-fm/zkevm-contracts-sub000/internal/pkg/errors"
)

// FEPParamsLength is the packed length of FEPParams:
// four 32-byte words, one 32-byte block number, a 1-byte flag, a 20-byte address and two more words.
const FEPParamsLength = 32 + 32 + 32 + 32 + 1 + common.AddressLength + 32 + 32

// AggchainParams is the flavor-specific input of one verification round.
type AggchainParams interface {
	// AggchainType reports the flavor whose canonical layout Pack produces.
	AggchainType() AggchainType
	// Pack returns the canonical byte packing that is hashed into the params digest.
	Pack() ([]byte, error)
}

// ECDSAParams binds the digest to the single signer allowed to attest.
type ECDSAParams struct {
	TrustedSigner common.Address `json:"trustedSigner"`
}

// AggchainType implements AggchainParams.
func (p ECDSAParams) AggchainType() AggchainType {
	return AggchainTypeECDSA
}

// Pack implements AggchainParams.
func (p ECDSAParams) Pack() ([]byte, error) {
	return p.TrustedSigner.Bytes(), nil
}

// FEPParams describes one output-root advancement of the fault-proof flavor.
// Field order here is the packing order.
type FEPParams struct {
	PreviousOutputRoot  common.Hash    `json:"previousOutputRoot"`
	NewOutputRoot       common.Hash    `json:"newOutputRoot"`
	NewBlockNumber      *big.Int       `json:"newBlockNumber"`
	RollupConfigHash    common.Hash    `json:"rollupConfigHash"`
	OptimisticMode      bool           `json:"optimisticMode"`
	TrustedSequencer    common.Address `json:"trustedSequencer"`
	RangeVKeyCommitment common.Hash    `json:"rangeVkeyCommitment"`
	AggregationVKey     common.Hash    `json:"aggregationVkey"`
}

// AggchainType implements AggchainParams.
func (p FEPParams) AggchainType() AggchainType {
	return AggchainTypeFEP
}

// Pack implements AggchainParams.
func (p FEPParams) Pack() ([]byte, error) {
	blockNumber, ok := ethereum.Word32(p.NewBlockNumber)
	if !ok {
		return nil, pkgerrors.NewFieldOverflowError("newBlockNumber", 256)
	}

	out := make([]byte, 0, FEPParamsLength)
	out = append(out, p.PreviousOutputRoot[:]...)
	out = append(out, p.NewOutputRoot[:]...)
	out = append(out, blockNumber[:]...)
	out = append(out, p.RollupConfigHash[:]...)
	out = append(out, boolByte(p.OptimisticMode))
	out = append(out, p.TrustedSequencer[:]...)
	out = append(out, p.RangeVKeyCommitment[:]...)
	out = append(out, p.AggregationVKey[:]...)
	return out, nil
}

// ParamsHash returns the Keccak-256 digest of the canonical packing of p.
func ParamsHash(p AggchainParams) (common.Hash, error) {
	if p == nil {
		return common.Hash{}, pkgerrors.NewUnsupportedFlavorError("aggchain params", nil)
	}
	if t := p.AggchainType(); !t.Valid() {
		return common.Hash{}, pkgerrors.NewUnsupportedFlavorError("aggchain type", t.String())
	}
	packed, err := p.Pack()
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(packed), nil
}

func boolByte(b bool) byte {
	if b {
		return 0x01
	}
	return 0x00
}
