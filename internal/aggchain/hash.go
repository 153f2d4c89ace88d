package aggchain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	pkgerrors "github.com/gateway-fm/zkevm-contracts-sub000/internal/pkg/errors"
)

// BindHash computes keccak256(uint32 consensusType || key || paramsDigest), the value
// an on-chain verifier recomputes and compares byte for byte.
func BindHash(ct ConsensusType, key VerificationKey, digest common.Hash) (common.Hash, error) {
	if !ct.Valid() {
		return common.Hash{}, pkgerrors.NewUnsupportedFlavorError("consensus type", uint32(ct))
	}
	return crypto.Keccak256Hash(ct.Bytes(), key[:], digest[:]), nil
}

// AggchainHash digests params and binds the result to ct and key.
func AggchainHash(ct ConsensusType, key VerificationKey, params AggchainParams) (common.Hash, error) {
	digest, err := ParamsHash(params)
	if err != nil {
		return common.Hash{}, err
	}
	return BindHash(ct, key, digest)
}
