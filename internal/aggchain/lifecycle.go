package aggchain

import (
	pkgerrors "github.com/gateway-fm/zkevm-contracts-sub000/internal/pkg/errors"
)

// InitState is the initializer progress of a target unit as reported by the caller.
type InitState uint8

const (
	// StateNotInitialized is a freshly deployed unit.
	StateNotInitialized InitState = iota
	// StateBootstrapped is a unit that consumed a version 0 payload, or a unit upgraded
	// from an earlier consensus implementation that already holds the administrative fields.
	StateBootstrapped
	// StateRebound is a unit that consumed a version 1 payload.
	StateRebound
)

func (s InitState) String() string {
	switch s {
	case StateNotInitialized:
		return "not_initialized"
	case StateBootstrapped:
		return "bootstrapped"
	case StateRebound:
		return "rebound"
	default:
		return "unknown"
	}
}

// ParseInitState maps the String form back to an InitState.
func ParseInitState(name string) (InitState, bool) {
	for _, s := range []InitState{StateNotInitialized, StateBootstrapped, StateRebound} {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// CheckInitTransition reports whether p may be submitted to a unit in state s.
// Version 0 is accepted exactly once on a fresh unit and version 1 exactly once after it.
func CheckInitTransition(s InitState, p InitPayload) error {
	switch p.Version() {
	case InitVersion0:
		if s != StateNotInitialized {
			return pkgerrors.ErrAlreadyInitialized.WithDetails(s.String())
		}
	case InitVersion1:
		switch s {
		case StateNotInitialized:
			return pkgerrors.ErrInitVersionMismatch.WithDetails("version 1 payload requires a bootstrapped unit")
		case StateRebound:
			return pkgerrors.ErrAlreadyInitialized.WithDetails(s.String())
		}
	default:
		return pkgerrors.ErrInitVersionMismatch.WithDetails(int(p.Version()))
	}
	return nil
}

// NextState returns the state a unit reaches after consuming p from state s.
func NextState(s InitState, p InitPayload) (InitState, error) {
	if err := CheckInitTransition(s, p); err != nil {
		return s, err
	}
	if p.Version() == InitVersion0 {
		return StateBootstrapped, nil
	}
	return StateRebound, nil
}
