package aggchain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/gateway-fm/zkevm-contracts-sub000/internal/pkg/errors"
)

func TestCheckInitTransition(t *testing.T) {
	v0 := testFEPInitV0()
	v1 := &InitV1{Type: AggchainTypeFEP, Gateway: testGateway(AggchainTypeFEP)}

	tests := []struct {
		name    string
		state   InitState
		payload InitPayload
		wantErr error
	}{
		{"v0 on fresh unit", StateNotInitialized, v0, nil},
		{"v0 twice", StateBootstrapped, v0, pkgerrors.ErrAlreadyInitialized},
		{"v0 after v1", StateRebound, v0, pkgerrors.ErrAlreadyInitialized},
		{"v1 on fresh unit", StateNotInitialized, v1, pkgerrors.ErrInitVersionMismatch},
		{"v1 after v0", StateBootstrapped, v1, nil},
		{"v1 twice", StateRebound, v1, pkgerrors.ErrAlreadyInitialized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckInitTransition(tt.state, tt.payload)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestNextState(t *testing.T) {
	s, err := NextState(StateNotInitialized, testECDSAInitV0())
	require.NoError(t, err)
	assert.Equal(t, StateBootstrapped, s)

	s, err = NextState(s, &InitV1{Type: AggchainTypeECDSA, Gateway: testGateway(AggchainTypeECDSA)})
	require.NoError(t, err)
	assert.Equal(t, StateRebound, s)

	s, err = NextState(s, testECDSAInitV0())
	assert.True(t, errors.Is(err, pkgerrors.ErrAlreadyInitialized))
	assert.Equal(t, StateRebound, s)
}

func TestInitState_String(t *testing.T) {
	assert.Equal(t, "not_initialized", StateNotInitialized.String())
	assert.Equal(t, "bootstrapped", StateBootstrapped.String())
	assert.Equal(t, "rebound", StateRebound.String())
	assert.Equal(t, "unknown", InitState(9).String())
}

func TestParseInitState(t *testing.T) {
	for _, s := range []InitState{StateNotInitialized, StateBootstrapped, StateRebound} {
		got, ok := ParseInitState(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
	_, ok := ParseInitState("unknown")
	assert.False(t, ok)
}
