package ethereum

import (
	"math/big"

	"github.com/holiman/uint256"
)

// ToUint256 converts v to a 256-bit word. It reports false for negative values and
// values wider than 256 bits; nil is treated as zero.
func ToUint256(v *big.Int) (*uint256.Int, bool) {
	if v == nil {
		return new(uint256.Int), true
	}
	if v.Sign() < 0 {
		return nil, false
	}
	w, overflow := uint256.FromBig(v)
	if overflow {
		return nil, false
	}
	return w, true
}

// Word32 returns the 32-byte big-endian encoding of v, or false if v does not fit.
func Word32(v *big.Int) ([32]byte, bool) {
	w, ok := ToUint256(v)
	if !ok {
		return [32]byte{}, false
	}
	return w.Bytes32(), true
}
