// Package ethereum provides strict hex decoding for the fixed-width values that
// configuration and artifacts carry as strings.
package ethereum

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// DecodeAddress decodes a hex address string. Unlike common.HexToAddress it
// rejects anything that is not exactly 20 bytes.
func DecodeAddress(s string) (common.Address, error) {
	var addr common.Address
	b, err := DecodeFixedBytes(s, common.AddressLength)
	if err != nil {
		return addr, fmt.Errorf("invalid address: %w", err)
	}
	copy(addr[:], b)
	return addr, nil
}

// DecodeHash decodes a hex string of exactly 32 bytes.
func DecodeHash(s string) (common.Hash, error) {
	var h common.Hash
	b, err := DecodeFixedBytes(s, common.HashLength)
	if err != nil {
		return h, fmt.Errorf("invalid hash: %w", err)
	}
	copy(h[:], b)
	return h, nil
}

// DecodeFixedBytes decodes a hex string that must be exactly n bytes long.
func DecodeFixedBytes(s string, n int) ([]byte, error) {
	s = strip0x(s)
	if len(s) != 2*n {
		return nil, fmt.Errorf("invalid length: %d hex digits, want %d", len(s), 2*n)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return b, nil
}

// DecodeBytes decodes a hex string of any length to []byte.
func DecodeBytes(s string) ([]byte, error) {
	s = strip0x(s)
	if s == "" {
		return []byte{}, nil
	}
	// Handle odd-length hex strings
	if len(s)%2 != 0 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return b, nil
}

// DecodeBig decodes a non-negative integer written either in decimal or as 0x-prefixed hex.
// Range checks against an encoding width are left to the encoder.
func DecodeBig(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return big.NewInt(0), nil
	}
	base := 10
	if Has0xPrefix(s) {
		s = s[2:]
		base = 16
	}
	val, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("invalid number: %s", s)
	}
	if val.Sign() < 0 {
		return nil, fmt.Errorf("negative number: %s", s)
	}
	return val, nil
}

// EncodeBytes encodes bytes to hex string with 0x prefix.
func EncodeBytes(b []byte) string {
	return fmt.Sprintf("0x%x", b)
}

// Has0xPrefix returns true if the string has a 0x prefix.
func Has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func strip0x(s string) string {
	if Has0xPrefix(s) {
		return s[2:]
	}
	return s
}
