package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	sentinel := Business("INSUFFICIENT_BALANCE", "insufficient wallet balance")
	wrapped := fmt.Errorf("capture payment: %w", sentinel.WithDetails(map[string]string{"balance": "50"}))

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.False(t, errors.Is(wrapped, Conflict("ALREADY_PAID", "booking already paid")))
	assert.Equal(t, KindBusinessRule, KindOf(wrapped))
}

func TestKindOfUntaggedIsInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("driver failure")
	err := NotFound("SERVICE_NOT_FOUND", "Service not found").Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "driver failure")
}
