package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name    string
		err     error
		sentinl error
	}{
		{"config", NewConfigError("init", cause), ErrConfig},
		{"argument", NewArgumentError("decode", cause), ErrArgument},
		{"inference", NewInferenceError("run", cause), ErrInference},
		{"decode_warning", NewDecodeWarning("readback", cause), ErrDecodeWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinl))
			assert.ErrorIs(t, tt.err, cause)
			assert.Contains(t, tt.err.Error(), "boom")
		})
	}
}

func TestErrorKindCrossCheck(t *testing.T) {
	err := NewArgumentError("decode", errors.New("bad path"))
	assert.False(t, errors.Is(err, ErrConfig))
	assert.False(t, errors.Is(err, ErrInference))
}
