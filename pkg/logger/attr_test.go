package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loginlink/pkg/logger"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestReason(t *testing.T) {
	attr := logger.Reason(errors.New("token expired"))
	require.Equal(t, "reason", attr.Key)
	assert.Equal(t, "token expired", attr.Value.String())

	assert.True(t, logger.Reason(nil).Equal(slog.Attr{}))
}

func TestComponent(t *testing.T) {
	attr := logger.Component("token")
	require.Equal(t, "component", attr.Key)
	assert.Equal(t, "token", attr.Value.String())
}

func TestPrimaryKey(t *testing.T) {
	attr := logger.PrimaryKey("user_id", int64(42))
	require.Equal(t, "user_id", attr.Key)
	assert.Equal(t, int64(42), attr.Value.Any())

	assert.Equal(t, "pk", logger.PrimaryKey("", 1).Key)
	assert.True(t, logger.PrimaryKey("pk", nil).Equal(slog.Attr{}))
}

func TestScope(t *testing.T) {
	assert.Equal(t, "default", logger.Scope("").Value.String())
	assert.Equal(t, "reset", logger.Scope("reset").Value.String())
}

func TestAge(t *testing.T) {
	attr := logger.Age(300)
	require.Equal(t, "age_seconds", attr.Key)
	assert.Equal(t, int64(300), attr.Value.Int64())
}
