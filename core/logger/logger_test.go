package logger_test

import (
	"net/http/httptest"
	"testing"

	"field-comparator/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		cfg   logger.Config
		level zapcore.Level
	}{
		{"Debug", logger.Config{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{"Info", logger.Config{Level: "info", Format: "json"}, zapcore.InfoLevel},
		{"Warn", logger.Config{Level: "warn"}, zapcore.WarnLevel},
		{"Invalid", logger.Config{Level: "loud"}, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.New(&tt.cfg)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.level))
			if tt.level > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.level-1))
			}
		})
	}
}

func TestWithRule(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	logger.WithRule(base, "users_email").Info("tagged")
	logger.WithRule(base, "").Info("untagged")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "users_email", entries[0].ContextMap()["rule"])
	assert.NotContains(t, entries[1].ContextMap(), "rule")
}

func TestWithRayID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals("ray_id", "ray-1")
		logger.WithRayID(base, c).Info("request")
		return c.SendStatus(fiber.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "ray-1", entries[0].ContextMap()["ray_id"])
}
