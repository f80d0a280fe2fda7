package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func Test_CheckBasic_HealthyBackend(t *testing.T) {
	h := NewHealthChecker(pingFunc(func(context.Context) error { return nil }), nil)

	status := h.CheckBasic(context.Background())

	assert.Equal(t, statusHealthy, status.Status)
	assert.Equal(t, statusDisabled, status.Redis.Status)
	assert.Equal(t, statusDisabled, status.Database.Status)
}

func Test_CheckBasic_UnreachableBackend(t *testing.T) {
	h := NewHealthChecker(pingFunc(func(context.Context) error { return errors.New("connection refused") }), nil)

	status := h.CheckBasic(context.Background())

	assert.Equal(t, statusUnhealthy, status.Status)
	assert.Equal(t, "connection refused", status.Backend.Error)
}

func Test_CheckDetailed_ReportsHost(t *testing.T) {
	h := NewHealthChecker(pingFunc(func(context.Context) error { return nil }), nil)

	status := h.CheckDetailed(context.Background())

	require.NotNil(t, status.Host)
	assert.Greater(t, status.Host.Goroutines, 0)
	assert.NotEmpty(t, status.Uptime)
}
