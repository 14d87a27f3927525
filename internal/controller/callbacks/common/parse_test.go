package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackParts(t *testing.T) {
	parts, err := CallbackParts("req_view:svc-1:req-9", "req_view:", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"svc-1", "req-9"}, parts)
}

func TestCallbackPartsSingleArgument(t *testing.T) {
	parts, err := CallbackParts("unban:user-3", "unban:", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"user-3"}, parts)
}

func TestCallbackPartsWrongPrefix(t *testing.T) {
	_, err := CallbackParts("req_view:svc-1:req-9", "req_accept:", 2)
	assert.Error(t, err)
}

func TestCallbackPartsWrongCount(t *testing.T) {
	_, err := CallbackParts("req_view:svc-1", "req_view:", 2)
	assert.Error(t, err)

	_, err = CallbackParts("req_view:svc-1:req-9:extra", "req_view:", 2)
	assert.Error(t, err)
}

func TestCallbackPartsEmptyArgument(t *testing.T) {
	_, err := CallbackParts("req_view::req-9", "req_view:", 2)
	assert.Error(t, err)
}
