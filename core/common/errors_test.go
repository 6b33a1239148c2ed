package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := NewError("some_code", "something went wrong")
	require.Equal(t, "some_code: something went wrong", err.Error())
	require.Equal(t, "some_code", err.Code)
}

func TestNewErrorf(t *testing.T) {
	err := NewErrorf("some_code", "value %v out of range %v", 11, 10)
	require.Equal(t, "some_code: value 11 out of range 10", err.Error())
}

func TestInvalidRequest(t *testing.T) {
	err := InvalidRequest("missing field")
	cerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, "invalid_request", cerr.Code)
	require.Contains(t, cerr.Msg, "missing field")
}
