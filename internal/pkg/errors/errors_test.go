package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtocolError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ProtocolError
		expected string
	}{
		{
			name:     "without details",
			err:      ErrSchemaMismatch,
			expected: "payload does not match the requested schema",
		},
		{
			name:     "with details",
			err:      ErrVKeyNotFound.WithDetails("0x00010001"),
			expected: "verification key not found: 0x00010001",
		},
		{
			name:     "custom message",
			err:      ErrInvalidLayout.WithMessage("unknown role"),
			expected: "unknown role",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestProtocolError_Is(t *testing.T) {
	t.Run("copy matches sentinel", func(t *testing.T) {
		err := NewFieldOverflowError("newBlockNumber", 256)
		assert.True(t, stderrors.Is(err, ErrFieldOverflow))
		assert.False(t, stderrors.Is(err, ErrInvalidTagLength))
	})

	t.Run("wrapped copy matches sentinel", func(t *testing.T) {
		err := fmt.Errorf("encode payload: %w", NewLengthMismatchError(2, 1))
		assert.True(t, stderrors.Is(err, ErrSelectorKeyLengthMismatch))
	})

	t.Run("plain error does not match", func(t *testing.T) {
		assert.False(t, stderrors.Is(stderrors.New("boom"), ErrUnsupportedFlavor))
	})
}

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	_ = ErrUnsupportedFlavor.WithDetails(7)
	assert.Nil(t, ErrUnsupportedFlavor.Details)

	_ = NewUnsupportedFlavorError("consensus type", 7)
	assert.Equal(t, "unsupported flavor", ErrUnsupportedFlavor.Message)
}

func TestCode(t *testing.T) {
	assert.Equal(t, "invalid_tag_length", Code(NewTagLengthError("flavor", 2, 3)))
	assert.Equal(t, "already_initialized", Code(fmt.Errorf("init: %w", ErrAlreadyInitialized)))
	assert.Equal(t, "internal_error", Code(stderrors.New("boom")))
}

func TestIsProtocolError(t *testing.T) {
	assert.True(t, IsProtocolError(ErrVKeyAlreadyExists))
	assert.True(t, IsProtocolError(fmt.Errorf("wrap: %w", ErrVKeyAlreadyExists)))
	assert.False(t, IsProtocolError(stderrors.New("boom")))
	assert.False(t, IsProtocolError(nil))
}
