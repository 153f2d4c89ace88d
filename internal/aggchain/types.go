// Package aggchain implements the deterministic encodings that bind an aggchain proof
// to a verification key and to a flavor-specific set of consensus parameters.
package aggchain

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AggchainType is the 2-byte flavor tag that prefixes every selector.
type AggchainType [2]byte

// Known aggchain types.
var (
	// AggchainTypeECDSA is the signature-attested flavor.
	AggchainTypeECDSA = AggchainType{0x00, 0x00}
	// AggchainTypeFEP is the fault-proof / output-root flavor.
	AggchainTypeFEP = AggchainType{0x00, 0x01}
)

// Valid reports whether t is one of the known flavors.
func (t AggchainType) Valid() bool {
	return t == AggchainTypeECDSA || t == AggchainTypeFEP
}

// Name returns a short human-readable flavor name.
func (t AggchainType) Name() string {
	switch t {
	case AggchainTypeECDSA:
		return "ecdsa"
	case AggchainTypeFEP:
		return "fep"
	default:
		return "unknown"
	}
}

// String returns the 0x-prefixed hex form.
func (t AggchainType) String() string {
	return hexutil.Encode(t[:])
}

// AggchainTypeFromName maps "ecdsa" and "fep" to their aggchain type.
func AggchainTypeFromName(name string) (AggchainType, bool) {
	switch name {
	case "ecdsa":
		return AggchainTypeECDSA, true
	case "fep":
		return AggchainTypeFEP, true
	default:
		return AggchainType{}, false
	}
}

// VKeyVersion is the caller-chosen 2-byte version half of a selector.
type VKeyVersion [2]byte

// String returns the 0x-prefixed hex form.
func (v VKeyVersion) String() string {
	return hexutil.Encode(v[:])
}

// ConsensusType is the coarse consensus family hashed into the aggchain hash.
// It lives at a different granularity than AggchainType and is never derived from it.
type ConsensusType uint32

const (
	// ConsensusTypePessimistic is the legacy pessimistic-proof family.
	ConsensusTypePessimistic ConsensusType = 0
	// ConsensusTypeGeneric is the generic aggchain family used by both flavors.
	ConsensusTypeGeneric ConsensusType = 1
)

// Valid reports whether c is a known consensus family.
func (c ConsensusType) Valid() bool {
	return c == ConsensusTypePessimistic || c == ConsensusTypeGeneric
}

// Bytes returns the 4-byte big-endian encoding.
func (c ConsensusType) Bytes() []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(c))
	return b[:]
}

func (c ConsensusType) String() string {
	return fmt.Sprintf("%d", uint32(c))
}

// VerificationKey is an opaque 32-byte verification key.
type VerificationKey = common.Hash
