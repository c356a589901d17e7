package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"with code", NewRequestError("bad gateway", 502, ""), "request error (code 502): bad gateway"},
		{"without code", NewValidationError("count too small"), "validation error: count too small"},
		{"not found", NewNotFoundError("account nobody"), "not_found error (code 404): account nobody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading profile: %w", NewNotFoundError("kevin"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsAuth(wrapped))
	assert.Equal(t, 404, StatusCode(wrapped))
	assert.Equal(t, ErrorTypeNotFound, TypeOf(wrapped))
}

func TestPredicatesOnForeignErrors(t *testing.T) {
	plain := stderrors.New("boom")

	assert.Equal(t, ErrorType(""), TypeOf(plain))
	assert.Equal(t, 0, StatusCode(plain))
	assert.False(t, IsRequest(plain))
	assert.False(t, IsValidation(nil))
}

func TestNetworkErrorUnwraps(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewNetworkError("GET https://example.test", cause)

	assert.True(t, IsNetwork(err))
	assert.ErrorIs(t, err, cause)
}

func TestAuthErrorCarriesBody(t *testing.T) {
	err := NewAuthError("login rejected", 403, `{"status":"fail"}`)

	assert.True(t, IsAuth(err))
	assert.Equal(t, `{"status":"fail"}`, err.Body)
	assert.Equal(t, 403, err.Code)
}
