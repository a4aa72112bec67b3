package connections

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"field-comparator/core/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	provider, err := database.NewProvider([]database.Config{
		{Name: "local", Driver: database.DriverSQLite, Database: ":memory:", MaxOpenConns: 1},
		{Name: "remote", Driver: database.DriverMySQL, Host: "db.invalid"},
	}, zap.NewNop())
	require.NoError(t, err)
	provider.WithConnectFunc(func(cfg database.Config) (*gorm.DB, error) {
		if cfg.Name == "remote" {
			return nil, errors.New("connection refused")
		}
		return database.Connect(cfg)
	})
	t.Cleanup(func() { _ = provider.Close() })

	feature := NewFeature(provider, zap.NewNop())
	app := fiber.New()
	feature.LoadPublic(app)
	require.NoError(t, feature.Load(app))
	return app
}

func TestLoader(t *testing.T) {
	feature := NewFeature(nil, zap.NewNop())
	assert.Equal(t, "connections", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}

func TestHandleHealth(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "UP", body["status"])
	assert.Equal(t, ServiceName, body["service"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHandleValidate(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/connections/validate", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Healthy     bool            `json:"healthy"`
		Connections map[string]bool `json:"connections"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Healthy)
	assert.Equal(t, map[string]bool{"local": true, "remote": false}, body.Connections)
}

func TestHandleStatistics(t *testing.T) {
	app := setupTestApp(t)

	t.Run("Connected", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/connections/local/statistics", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var stats database.Statistics
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
		assert.True(t, stats.Connected)
		assert.Equal(t, "local", stats.Connection)
		assert.NotEmpty(t, stats.Version)
	})

	t.Run("Unreachable", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/connections/remote/statistics", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var stats database.Statistics
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
		assert.False(t, stats.Connected)
		assert.Contains(t, stats.Error, "connection refused")
	})

	t.Run("Unknown", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/connections/nope/statistics", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

