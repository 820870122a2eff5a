package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrTokenMalformed_WrapsInvalidToken(t *testing.T) {
	assert.True(t, errors.Is(ErrTokenMalformed, ErrInvalidToken))
	assert.False(t, errors.Is(ErrTokenExpired, ErrInvalidToken))
}

func TestSentinels_AreDistinct(t *testing.T) {
	all := []error{
		ErrorNotFound, ErrorAlreadyExists, ErrorInternal, ErrorUnauthorized,
		ErrInvalidCredentials, ErrAccountDisabled, ErrPasswordMismatch,
		ErrInvalidOtp, ErrInvalidState, ErrInvalidToken, ErrTokenExpired,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Fatalf("%v unexpectedly matches %v", a, b)
			}
		}
	}
}
