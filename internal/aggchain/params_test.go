package aggchain

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/gateway-fm/zkevm-contracts-sub000/internal/pkg/errors"
)

// Test fixtures
func testFEPParams() FEPParams {
	return FEPParams{
		PreviousOutputRoot:  common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111111"),
		NewOutputRoot:       common.HexToHash("0x2222222222222222222222222222222222222222222222222222222222222222"),
		NewBlockNumber:      big.NewInt(12345678),
		RollupConfigHash:    common.HexToHash("0x3333333333333333333333333333333333333333333333333333333333333333"),
		OptimisticMode:      true,
		TrustedSequencer:    common.HexToAddress("0x1234567890123456789012345678901234567890"),
		RangeVKeyCommitment: common.HexToHash("0x4444444444444444444444444444444444444444444444444444444444444444"),
		AggregationVKey:     common.HexToHash("0x5555555555555555555555555555555555555555555555555555555555555555"),
	}
}

func maxUint256() *big.Int {
	return new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
}

// unknownParams reports an aggchain type outside the known flavors.
type unknownParams struct{}

func (unknownParams) AggchainType() AggchainType { return AggchainType{0x00, 0x07} }
func (unknownParams) Pack() ([]byte, error)      { return []byte{0x01}, nil }

// ============================================================================
// Signature flavor
// ============================================================================

func TestECDSAParams(t *testing.T) {
	signer := common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc454e4438f44e")
	p := ECDSAParams{TrustedSigner: signer}

	packed, err := p.Pack()
	require.NoError(t, err)
	assert.Equal(t, signer.Bytes(), packed)
	assert.Len(t, packed, common.AddressLength)

	digest, err := ParamsHash(p)
	require.NoError(t, err)
	assert.Equal(t, crypto.Keccak256Hash(signer.Bytes()), digest)

	again, err := ParamsHash(p)
	require.NoError(t, err)
	assert.Equal(t, digest, again)
}

// ============================================================================
// Fault-proof flavor
// ============================================================================

func TestFEPParams_Pack(t *testing.T) {
	p := testFEPParams()

	packed, err := p.Pack()
	require.NoError(t, err)
	require.Len(t, packed, FEPParamsLength)
	assert.Equal(t, 213, FEPParamsLength)

	assert.Equal(t, p.PreviousOutputRoot.Bytes(), packed[0:32])
	assert.Equal(t, p.NewOutputRoot.Bytes(), packed[32:64])
	assert.Equal(t, common.BigToHash(p.NewBlockNumber).Bytes(), packed[64:96])
	assert.Equal(t, p.RollupConfigHash.Bytes(), packed[96:128])
	assert.Equal(t, byte(0x01), packed[128])
	assert.Equal(t, p.TrustedSequencer.Bytes(), packed[129:149])
	assert.Equal(t, p.RangeVKeyCommitment.Bytes(), packed[149:181])
	assert.Equal(t, p.AggregationVKey.Bytes(), packed[181:213])
}

func TestFEPParams_BooleanByte(t *testing.T) {
	p := testFEPParams()
	p.OptimisticMode = false

	packed, err := p.Pack()
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), packed[128])
}

func TestFEPParams_NilBlockNumberIsZero(t *testing.T) {
	p := testFEPParams()
	p.NewBlockNumber = nil

	packed, err := p.Pack()
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 32), packed[64:96])
}

func TestFEPParams_BlockNumberBoundary(t *testing.T) {
	t.Run("maximum value succeeds", func(t *testing.T) {
		p := testFEPParams()
		p.NewBlockNumber = maxUint256()

		packed, err := p.Pack()
		require.NoError(t, err)
		for _, b := range packed[64:96] {
			assert.Equal(t, byte(0xff), b)
		}
	})

	t.Run("one above maximum overflows", func(t *testing.T) {
		p := testFEPParams()
		p.NewBlockNumber = new(big.Int).Add(maxUint256(), big.NewInt(1))

		_, err := ParamsHash(p)
		require.Error(t, err)
		assert.True(t, errors.Is(err, pkgerrors.ErrFieldOverflow))
	})

	t.Run("negative overflows", func(t *testing.T) {
		p := testFEPParams()
		p.NewBlockNumber = big.NewInt(-1)

		_, err := p.Pack()
		assert.True(t, errors.Is(err, pkgerrors.ErrFieldOverflow))
	})
}

func TestFEPParams_Deterministic(t *testing.T) {
	a, err := ParamsHash(testFEPParams())
	require.NoError(t, err)
	b, err := ParamsHash(testFEPParams())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFEPParams_FieldOrderSensitivity(t *testing.T) {
	p := testFEPParams()
	canonical, err := ParamsHash(p)
	require.NoError(t, err)

	block := common.BigToHash(p.NewBlockNumber)

	// Same eight values, reversed order.
	permuted := crypto.Keccak256Hash(
		p.AggregationVKey[:],
		p.RangeVKeyCommitment[:],
		p.TrustedSequencer[:],
		[]byte{0x01},
		p.RollupConfigHash[:],
		block[:],
		p.NewOutputRoot[:],
		p.PreviousOutputRoot[:],
	)
	assert.NotEqual(t, canonical, permuted)

	// Swapping the two output roots also changes the digest.
	swapped := p
	swapped.PreviousOutputRoot, swapped.NewOutputRoot = p.NewOutputRoot, p.PreviousOutputRoot
	swappedDigest, err := ParamsHash(swapped)
	require.NoError(t, err)
	assert.NotEqual(t, canonical, swappedDigest)

	// Canonical order hashed by hand matches.
	manual := crypto.Keccak256Hash(
		p.PreviousOutputRoot[:],
		p.NewOutputRoot[:],
		block[:],
		p.RollupConfigHash[:],
		[]byte{0x01},
		p.TrustedSequencer[:],
		p.RangeVKeyCommitment[:],
		p.AggregationVKey[:],
	)
	assert.Equal(t, manual, canonical)
}

func TestParamsHash_Layouts(t *testing.T) {
	signer := common.HexToAddress("0x1234567890123456789012345678901234567890")

	ecdsa, err := ParamsHash(ECDSAParams{TrustedSigner: signer})
	require.NoError(t, err)

	fep := testFEPParams()
	fep.TrustedSequencer = signer
	fepDigest, err := ParamsHash(fep)
	require.NoError(t, err)

	assert.NotEqual(t, ecdsa, fepDigest)
}

func TestParamsHash_UnsupportedFlavor(t *testing.T) {
	_, err := ParamsHash(unknownParams{})
	assert.True(t, errors.Is(err, pkgerrors.ErrUnsupportedFlavor))

	_, err = ParamsHash(nil)
	assert.True(t, errors.Is(err, pkgerrors.ErrUnsupportedFlavor))
}
