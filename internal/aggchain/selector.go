package aggchain

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/gateway-fm/zkevm-contracts-sub000/internal/ethereum"
	pkgerrors "github.com/gateway-fm/zkevm-contracts-sub000/internal/pkg/errors"
)

const (
	// TagLength is the byte width of both selector halves.
	TagLength = 2
	// SelectorLength is the byte width of a selector.
	SelectorLength = 2 * TagLength
)

// Selector is the 4-byte verification key routing key: aggchain type || version.
type Selector [SelectorLength]byte

// NewSelector concatenates an aggchain type and a version, type first.
func NewSelector(t AggchainType, v VKeyVersion) Selector {
	var s Selector
	copy(s[:TagLength], t[:])
	copy(s[TagLength:], v[:])
	return s
}

// BuildSelector concatenates raw flavor and version tags. Both must be exactly 2 bytes.
func BuildSelector(flavorTag, versionTag []byte) (Selector, error) {
	if len(flavorTag) != TagLength {
		return Selector{}, pkgerrors.NewTagLengthError("flavor", TagLength, len(flavorTag))
	}
	if len(versionTag) != TagLength {
		return Selector{}, pkgerrors.NewTagLengthError("version", TagLength, len(versionTag))
	}
	var s Selector
	copy(s[:TagLength], flavorTag)
	copy(s[TagLength:], versionTag)
	return s, nil
}

// ParseSelector splits a selector into its aggchain type and version.
func ParseSelector(s Selector) (AggchainType, VKeyVersion) {
	var t AggchainType
	var v VKeyVersion
	copy(t[:], s[:TagLength])
	copy(v[:], s[TagLength:])
	return t, v
}

// SelectorFromHexTags is the compatibility path for callers that still build selectors
// by concatenating hex strings. Each tag must be exactly four hex digits, with or
// without a 0x prefix.
func SelectorFromHexTags(flavorHex, versionHex string) (Selector, error) {
	flavor, err := decodeHexTag("flavor", flavorHex)
	if err != nil {
		return Selector{}, err
	}
	version, err := decodeHexTag("version", versionHex)
	if err != nil {
		return Selector{}, err
	}
	return BuildSelector(flavor, version)
}

func decodeHexTag(name, s string) ([]byte, error) {
	if ethereum.Has0xPrefix(s) {
		s = s[2:]
	}
	if len(s) != 2*TagLength {
		return nil, pkgerrors.NewTagLengthError(name, TagLength, len(s)/2)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode %s tag: %w", name, err)
	}
	return b, nil
}

// AggchainType returns the flavor half.
func (s Selector) AggchainType() AggchainType {
	t, _ := ParseSelector(s)
	return t
}

// Version returns the version half.
func (s Selector) Version() VKeyVersion {
	_, v := ParseSelector(s)
	return v
}

// String returns the 0x-prefixed hex form.
func (s Selector) String() string {
	return hexutil.Encode(s[:])
}

// MarshalText implements encoding.TextMarshaler.
func (s Selector) MarshalText() ([]byte, error) {
	return hexutil.Bytes(s[:]).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Selector) UnmarshalText(input []byte) error {
	var b hexutil.Bytes
	if err := b.UnmarshalText(input); err != nil {
		return fmt.Errorf("decode selector: %w", err)
	}
	if len(b) != SelectorLength {
		return pkgerrors.NewTagLengthError("selector", SelectorLength, len(b))
	}
	copy(s[:], b)
	return nil
}
