package ethereum

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAddress(t *testing.T) {
	t.Run("valid address with 0x", func(t *testing.T) {
		addr, err := DecodeAddress("0x742d35Cc6634C0532925a3b844Bc454e4438f44e")
		require.NoError(t, err)
		assert.Equal(t, byte(0x74), addr[0])
		assert.Equal(t, byte(0x4e), addr[19])
	})

	t.Run("valid address without 0x", func(t *testing.T) {
		addr, err := DecodeAddress("742d35Cc6634C0532925a3b844Bc454e4438f44e")
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc454e4438f44e"), addr)
	})

	t.Run("zero address", func(t *testing.T) {
		addr, err := DecodeAddress("0x0000000000000000000000000000000000000000")
		require.NoError(t, err)
		assert.Equal(t, common.Address{}, addr)
	})

	t.Run("invalid length", func(t *testing.T) {
		_, err := DecodeAddress("0x742d35Cc")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid length")
	})

	t.Run("invalid hex", func(t *testing.T) {
		_, err := DecodeAddress("0xGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGGG")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid hex")
	})
}

func TestDecodeHash(t *testing.T) {
	t.Run("valid hash", func(t *testing.T) {
		h, err := DecodeHash("0x1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcdef")
		require.NoError(t, err)
		assert.Equal(t, byte(0x12), h[0])
		assert.Equal(t, byte(0xef), h[31])
	})

	t.Run("short hash is rejected", func(t *testing.T) {
		_, err := DecodeHash("0x1234")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid hash")
	})
}

func TestDecodeFixedBytes(t *testing.T) {
	b, err := DecodeFixedBytes("0x0001", 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01}, b)

	_, err = DecodeFixedBytes("0x000001", 2)
	assert.Error(t, err)
}

func TestDecodeBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []byte
	}{
		{"empty", "0x", []byte{}},
		{"odd length", "0x123", []byte{0x01, 0x23}},
		{"no prefix", "abcd", []byte{0xab, 0xcd}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := DecodeBytes(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, b)
		})
	}
}

func TestDecodeBig(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *big.Int
		wantErr  bool
	}{
		{name: "decimal", input: "3600", expected: big.NewInt(3600)},
		{name: "hex", input: "0xe10", expected: big.NewInt(3600)},
		{name: "empty is zero", input: "", expected: big.NewInt(0)},
		{name: "negative", input: "-1", wantErr: true},
		{name: "garbage", input: "12ab", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecodeBig(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, tt.expected.Cmp(v))
		})
	}

	t.Run("beyond 256 bits is still parsed", func(t *testing.T) {
		v, err := DecodeBig("0x1" + "0000000000000000000000000000000000000000000000000000000000000000")
		require.NoError(t, err)
		assert.Equal(t, 257, v.BitLen())
	})
}

func TestHas0xPrefix(t *testing.T) {
	assert.True(t, Has0xPrefix("0x12"))
	assert.True(t, Has0xPrefix("0X12"))
	assert.False(t, Has0xPrefix("12"))
	assert.False(t, Has0xPrefix("0"))
}

func TestEncodeBytes(t *testing.T) {
	assert.Equal(t, "0x0001", EncodeBytes([]byte{0x00, 0x01}))
}
