package comparison

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"field-comparator/core/compare"
	"field-comparator/core/database"
	"field-comparator/core/report"
	"field-comparator/core/runner"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) Export(ctx context.Context, r report.Report) (string, error) {
	args := m.Called(ctx, r)
	return args.String(0), args.Error(1)
}

func testRule(name string) compare.Rule {
	return compare.Rule{
		Name:         name,
		Source:       compare.TableRef{Connection: "source", Table: "users"},
		Target:       compare.TableRef{Connection: "target", Table: "users"},
		KeyField:     "id",
		CompareField: "email",
	}
}

func setupTestApp(t *testing.T, exporter Exporter) *fiber.App {
	t.Helper()
	provider, err := database.NewProvider([]database.Config{
		{Name: "source", Driver: database.DriverSQLite, Database: ":memory:", MaxOpenConns: 1},
		{Name: "target", Driver: database.DriverSQLite, Database: ":memory:", MaxOpenConns: 1},
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Close() })

	ctx := context.Background()
	seed := map[string]string{
		"source": "INSERT INTO users VALUES (1, 'a@x'), (2, 'b@x'), (3, 'c@x')",
		"target": "INSERT INTO users VALUES (1, 'a@x'), (2, 'B@x'), (4, 'd@x')",
	}
	for name, insert := range seed {
		db, err := provider.Get(ctx, name)
		require.NoError(t, err)
		require.NoError(t, db.Exec("CREATE TABLE users (id INTEGER, email TEXT)").Error)
		require.NoError(t, db.Exec(insert).Error)
	}

	off := false
	disabled := testRule("disabled_rule")
	disabled.Enabled = &off
	cfg := compare.Config{
		Parallel: true,
		PoolSize: 2,
		Rules:    []compare.Rule{testRule("users_email"), disabled},
	}
	r, err := runner.New(cfg, compare.NewExecutor(provider, cfg, zap.NewNop()), provider, zap.NewNop())
	require.NoError(t, err)

	app := fiber.New()
	require.NoError(t, NewFeature(r, exporter, zap.NewNop()).Load(app))
	return app
}

func decodeBody(t *testing.T, body io.Reader, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(body).Decode(v))
}

func TestLoader(t *testing.T) {
	r, err := runner.New(compare.Config{}, compare.NewExecutor(nil, compare.Config{}, nil), nil, nil)
	require.NoError(t, err)

	feature := NewFeature(r, nil, zap.NewNop())
	assert.Equal(t, "comparison", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}

func TestHandleExecuteAll(t *testing.T) {
	app := setupTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/comparison/execute-all", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		RunID   string         `json:"run_id"`
		Summary report.Summary `json:"summary"`
		Results []map[string]any
	}
	decodeBody(t, resp.Body, &body)

	assert.NotEmpty(t, body.RunID)
	assert.Equal(t, report.Summary{Rules: 1, Succeeded: 1, Differences: 3}, body.Summary)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "users_email", body.Results[0]["rule_name"])
	assert.EqualValues(t, 4, body.Results[0]["total_records"])
}

func TestHandleExecute(t *testing.T) {
	app := setupTestApp(t, nil)

	t.Run("Known", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/api/comparison/execute/users_email", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp.Body, &body)
		assert.Equal(t, "SUCCESS", body["status"])
		assert.EqualValues(t, 1, body["value_mismatch_count"])
	})

	t.Run("Disabled Runs Explicitly", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/api/comparison/execute/disabled_rule", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Unknown", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/api/comparison/execute/nope", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp.Body, &body)
		assert.Contains(t, body["error"], "nope")
	})
}

func TestHandleExecuteBatch(t *testing.T) {
	app := setupTestApp(t, nil)

	post := func(body string) (int, []byte) {
		req := httptest.NewRequest("POST", "/api/comparison/execute-batch", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, data
	}

	code, data := post(`["disabled_rule", "users_email"]`)
	assert.Equal(t, fiber.StatusOK, code)
	var r struct {
		Results []map[string]any
	}
	require.NoError(t, json.Unmarshal(data, &r))
	require.Len(t, r.Results, 2)
	assert.Equal(t, "disabled_rule", r.Results[0]["rule_name"])
	assert.Equal(t, "users_email", r.Results[1]["rule_name"])

	code, _ = post(`["users_email", "missing"]`)
	assert.Equal(t, fiber.StatusNotFound, code)
	code, _ = post(`{"names": 1}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
	code, _ = post(`[]`)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestHandleRules(t *testing.T) {
	app := setupTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/comparison/rules", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rules []runner.RuleInfo
	decodeBody(t, resp.Body, &rules)
	require.Len(t, rules, 2)
	assert.Equal(t, "users_email", rules[0].Name)
	assert.True(t, rules[0].Enabled)
	assert.False(t, rules[1].Enabled)
}

func TestHandleExecuteAllAsync(t *testing.T) {
	exporter := new(mockExporter)
	exported := make(chan report.Report, 1)
	exporter.On("Export", mock.Anything, mock.AnythingOfType("report.Report")).
		Run(func(args mock.Arguments) { exported <- args.Get(1).(report.Report) }).
		Return("reports/job.json.zst", nil)

	app := setupTestApp(t, exporter)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/comparison/execute-all-async", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var accepted map[string]string
	decodeBody(t, resp.Body, &accepted)
	jobID := accepted["job_id"]
	require.NotEmpty(t, jobID)

	var r report.Report
	select {
	case r = <-exported:
	case <-time.After(5 * time.Second):
		t.Fatal("job was not exported")
	}
	assert.Equal(t, jobID, r.RunID)
	assert.Equal(t, 1, r.Summary.Succeeded)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/comparison/jobs/"+jobID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status struct {
		JobID  string         `json:"job_id"`
		Status string         `json:"status"`
		Report map[string]any `json:"report"`
	}
	decodeBody(t, resp.Body, &status)
	assert.Equal(t, jobID, status.JobID)
	assert.Equal(t, "completed", status.Status)
	assert.NotNil(t, status.Report)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/comparison/jobs/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
