package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewLoggerDefaultsToInfo(t *testing.T) {
	logger, err := NewLogger(Config{Component: "api"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	base := zap.NewExample()
	SetDefault(base)
	t.Cleanup(func() { SetDefault(zap.NewNop()) })

	assert.Same(t, base, FromContext(context.Background()))

	scoped := base.With(zap.String("request_id", "abc"))
	ctx := WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx))
}
