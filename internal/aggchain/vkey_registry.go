package aggchain

import (
	"fmt"

	pkgerrors "github.com/gateway-fm/zkevm-contracts-sub000/internal/pkg/errors"
)

// VKeyEntry pairs a selector with the verification key it routes to.
type VKeyEntry struct {
	Selector Selector        `json:"selector"`
	VKey     VerificationKey `json:"vkey"`
}

// VKeyRegistry holds the gateway-wide default verification keys. It is read-only after
// construction, so Resolve may be called from many goroutines.
type VKeyRegistry struct {
	defaults map[Selector]VerificationKey
}

// NewVKeyRegistry builds a registry from default key entries. A selector may appear once.
func NewVKeyRegistry(entries []VKeyEntry) (*VKeyRegistry, error) {
	defaults := make(map[Selector]VerificationKey, len(entries))
	for _, e := range entries {
		if !e.Selector.AggchainType().Valid() {
			return nil, pkgerrors.NewUnsupportedFlavorError("aggchain type", e.Selector.AggchainType().String())
		}
		if _, exists := defaults[e.Selector]; exists {
			return nil, pkgerrors.ErrVKeyAlreadyExists.WithDetails(e.Selector.String())
		}
		defaults[e.Selector] = e.VKey
	}
	return &VKeyRegistry{defaults: defaults}, nil
}

// Default returns the default key registered for selector.
func (r *VKeyRegistry) Default(selector Selector) (VerificationKey, error) {
	key, ok := r.defaults[selector]
	if !ok || key == (VerificationKey{}) {
		return VerificationKey{}, pkgerrors.ErrVKeyNotFound.WithDetails(selector.String())
	}
	return key, nil
}

// Len returns the number of default keys.
func (r *VKeyRegistry) Len() int {
	return len(r.defaults)
}

// Resolve returns the key a chain instance verifies against: the gateway default when
// useDefaultGateway is set, otherwise the chain's own key for selector.
func (r *VKeyRegistry) Resolve(selector Selector, useDefaultGateway bool, owned map[Selector]VerificationKey) (VerificationKey, error) {
	if useDefaultGateway {
		return r.Default(selector)
	}
	key, ok := owned[selector]
	if !ok || key == (VerificationKey{}) {
		return VerificationKey{}, pkgerrors.ErrVKeyNotFound.WithMessage("owned verification key not found").WithDetails(selector.String())
	}
	return key, nil
}

// OwnedKeys zips parallel selector and key lists into a lookup map.
func OwnedKeys(selectors []Selector, keys []VerificationKey) (map[Selector]VerificationKey, error) {
	if len(selectors) != len(keys) {
		return nil, pkgerrors.NewLengthMismatchError(len(selectors), len(keys))
	}
	owned := make(map[Selector]VerificationKey, len(selectors))
	for i, s := range selectors {
		if _, exists := owned[s]; exists {
			return nil, fmt.Errorf("owned key %d: %w", i, pkgerrors.ErrVKeyAlreadyExists.WithDetails(s.String()))
		}
		owned[s] = keys[i]
	}
	return owned, nil
}
