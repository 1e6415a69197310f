package handlers

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbm-eval/benchboard/pkg/models"
)

func registerReportRoutes(env *testEnv) {
	h := NewReportHandlers(env.Store)
	env.App.Post("/api/reports", h.CreateReport)
	env.App.Get("/api/reports", h.ListReports)
	env.App.Get("/api/reports/:id", h.GetReport)
	env.App.Put("/api/reports/:id", h.UpdateReport)
	env.App.Delete("/api/reports/:id", h.DeleteReport)
}

func TestCreateReport(t *testing.T) {
	env := setupTestEnv(t)
	registerReportRoutes(env)

	body := `{"faster_system":"scidb","execution_time_diff":1.5,"cpu_diff":3.2,
		"memory_diff":-10.0,"disk_read_diff":0,"disk_write_diff":0}`
	resp, err := env.App.Test(jsonRequest(t, "POST", "/api/reports", body))
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var report models.ComparisonReport
	require.NoError(t, json.Unmarshal(readBody(t, resp), &report))
	assert.NotEqual(t, uuid.Nil, report.ID)
	assert.False(t, report.CreatedAt.IsZero())
	assert.Equal(t, models.EngineSciDB, report.FasterSystem)
	assert.Equal(t, 1.5, report.ExecutionTimeDiff)
	assert.Equal(t, -10.0, report.MemoryDiff)
}

func TestCreateReportMissingFields(t *testing.T) {
	env := setupTestEnv(t)
	registerReportRoutes(env)

	resp, err := env.App.Test(jsonRequest(t, "POST", "/api/reports",
		`{"faster_system":"scidb","execution_time_diff":1.5}`))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var errBody struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(readBody(t, resp), &errBody))
	assert.Contains(t, errBody.Error, "cpu_diff")
	assert.Contains(t, errBody.Error, "disk_write_diff")
}

func TestGetReportRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	registerReportRoutes(env)

	body := `{"faster_system":"mapreduce","execution_time_diff":2.25,"cpu_diff":0.5,
		"memory_diff":12,"disk_read_diff":100,"disk_write_diff":200}`
	resp, err := env.App.Test(jsonRequest(t, "POST", "/api/reports", body))
	require.NoError(t, err)
	var created models.ComparisonReport
	require.NoError(t, json.Unmarshal(readBody(t, resp), &created))

	resp, err = env.App.Test(jsonRequest(t, "GET", "/api/reports/"+created.ID.String(), ""))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var got models.ComparisonReport
	require.NoError(t, json.Unmarshal(readBody(t, resp), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.ExecutionTimeDiff, got.ExecutionTimeDiff)
	assert.Equal(t, created.DiskWriteDiff, got.DiskWriteDiff)
}

func TestGetReportNotFound(t *testing.T) {
	env := setupTestEnv(t)
	registerReportRoutes(env)

	resp, err := env.App.Test(jsonRequest(t, "GET", "/api/reports/"+uuid.NewString(), ""))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	// Malformed ids are a client error, not a lookup miss.
	resp, err = env.App.Test(jsonRequest(t, "GET", "/api/reports/not-a-uuid", ""))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestUpdateReport(t *testing.T) {
	env := setupTestEnv(t)
	registerReportRoutes(env)

	body := `{"faster_system":"scidb","execution_time_diff":1,"cpu_diff":1,
		"memory_diff":1,"disk_read_diff":1,"disk_write_diff":1}`
	resp, err := env.App.Test(jsonRequest(t, "POST", "/api/reports", body))
	require.NoError(t, err)
	var created models.ComparisonReport
	require.NoError(t, json.Unmarshal(readBody(t, resp), &created))

	resp, err = env.App.Test(jsonRequest(t, "PUT", "/api/reports/"+created.ID.String(),
		`{"memory_diff": 99.5}`))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var updated models.ComparisonReport
	require.NoError(t, json.Unmarshal(readBody(t, resp), &updated))
	assert.Equal(t, 99.5, updated.MemoryDiff)
	assert.Equal(t, 1.0, updated.CPUDiff)
	assert.NotNil(t, updated.UpdatedAt)

	resp, err = env.App.Test(jsonRequest(t, "PUT", "/api/reports/"+uuid.NewString(),
		`{"memory_diff": 1}`))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDeleteReport(t *testing.T) {
	env := setupTestEnv(t)
	registerReportRoutes(env)

	body := `{"faster_system":"scidb","execution_time_diff":1,"cpu_diff":1,
		"memory_diff":1,"disk_read_diff":1,"disk_write_diff":1}`
	resp, err := env.App.Test(jsonRequest(t, "POST", "/api/reports", body))
	require.NoError(t, err)
	var created models.ComparisonReport
	require.NoError(t, json.Unmarshal(readBody(t, resp), &created))

	resp, err = env.App.Test(jsonRequest(t, "DELETE", "/api/reports/"+created.ID.String(), ""))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = env.App.Test(jsonRequest(t, "GET", "/api/reports/"+created.ID.String(), ""))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = env.App.Test(jsonRequest(t, "DELETE", "/api/reports/"+created.ID.String(), ""))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestListReports(t *testing.T) {
	env := setupTestEnv(t)
	registerReportRoutes(env)

	resp, err := env.App.Test(jsonRequest(t, "GET", "/api/reports", ""))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, "[]", string(readBody(t, resp)))

	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{"faster_system":"scidb","execution_time_diff":%d,"cpu_diff":0,
			"memory_diff":0,"disk_read_diff":0,"disk_write_diff":0}`, i)
		_, err := env.App.Test(jsonRequest(t, "POST", "/api/reports", body))
		require.NoError(t, err)
	}

	resp, err = env.App.Test(jsonRequest(t, "GET", "/api/reports", ""))
	require.NoError(t, err)
	var reports []models.ComparisonReport
	require.NoError(t, json.Unmarshal(readBody(t, resp), &reports))
	assert.Len(t, reports, 3)
}
