package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/hairizuan-noorazman/testcase-service/logger"
	"github.com/hairizuan-noorazman/testcase-service/testcase"
	"github.com/hairizuan-noorazman/testcase-service/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, cfg testcase.ServiceConfig) http.Handler {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &testcase.TestCase{})

	log := logger.NewTestLogger()
	store := testcase.NewMySQLStore(db, log)
	service := testcase.NewService(store, log, cfg)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	return NewRouter(service, sqlDB, log)
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestTestCaseHandler_Create(t *testing.T) {
	router := setupRouter(t, testcase.ServiceConfig{})

	t.Run("returns created test case", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/testcases", map[string]interface{}{
			"title":       "New Test Case",
			"description": "New test case description",
			"priority":    "Medium",
			"status":      "InProgress",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		tc := decode[testcase.TestCase](t, w)
		assert.NotEmpty(t, tc.ID)
		assert.Equal(t, "New Test Case", tc.Title)
		assert.Equal(t, testcase.PriorityMedium, tc.Priority)
		assert.Equal(t, testcase.StatusInProgress, tc.Status)
		assert.Equal(t, tc.CreatedOn, tc.UpdatedOn)
	})

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing title",
			body:       map[string]interface{}{"priority": "High"},
			wantStatus: http.StatusBadRequest,
			wantError:  testcase.ErrInvalidTitle.Error(),
		},
		{
			name:       "null title",
			body:       `{"title": null, "priority": "High"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  testcase.ErrInvalidTitle.Error(),
		},
		{
			name:       "blank title",
			body:       map[string]interface{}{"title": "  ", "priority": "High"},
			wantStatus: http.StatusBadRequest,
			wantError:  testcase.ErrInvalidTitle.Error(),
		},
		{
			name:       "unknown priority",
			body:       map[string]interface{}{"title": "Bad priority", "priority": "Urgent"},
			wantStatus: http.StatusBadRequest,
			wantError:  testcase.ErrUnknownPriority.Error(),
		},
		{
			name:       "malformed body",
			body:       `{"title":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "duplicate title",
			body:       map[string]interface{}{"title": "New Test Case", "priority": "Low"},
			wantStatus: http.StatusConflict,
			wantError:  testcase.ErrDuplicateTitle.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/testcases", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, decode[ErrorResponse](t, w).Error)
		})
	}
}

func TestTestCaseHandler_GetByID(t *testing.T) {
	router := setupRouter(t, testcase.ServiceConfig{})

	created := decode[testcase.TestCase](t, doRequest(t, router, http.MethodPost, "/api/testcases", map[string]interface{}{
		"title":    "Integration Test Case",
		"priority": "High",
		"status":   "Pending",
	}))

	t.Run("existing test case", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/testcases/"+created.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		tc := decode[testcase.TestCase](t, w)
		assert.Equal(t, created.ID, tc.ID)
		assert.Equal(t, "Integration Test Case", tc.Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/testcases/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/testcases/invalid-id", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTestCaseHandler_List(t *testing.T) {
	router := setupRouter(t, testcase.ServiceConfig{})

	for _, body := range []map[string]interface{}{
		{"title": "A", "status": "Pending", "priority": "High"},
		{"title": "B", "status": "Pending", "priority": "Low"},
		{"title": "C", "status": "Passed", "priority": "High"},
	} {
		require.Equal(t, http.StatusCreated, doRequest(t, router, http.MethodPost, "/api/testcases", body).Code)
	}

	tests := []struct {
		name      string
		query     string
		wantTotal int
		wantItems int
	}{
		{"no filters", "", 3, 3},
		{"status filter", "?status=Pending", 2, 2},
		{"priority filter is case-insensitive", "?priority=high", 2, 2},
		{"both filters", "?status=Pending&priority=High", 1, 1},
		{"paged", "?page=1&size=2", 3, 1},
		{"malformed paging falls back to defaults", "?page=x&size=-1", 3, 3},
		{"empty result", "?status=Failed", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodGet, "/api/testcases"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			page := decode[testcase.Page](t, w)
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.Len(t, page.Items, tt.wantItems)
		})
	}

	t.Run("invalid status filter", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/testcases?status=Blocked", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid priority filter", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/testcases?priority=Urgent", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTestCaseHandler_List_EmptyListNotFound(t *testing.T) {
	router := setupRouter(t, testcase.ServiceConfig{EmptyListNotFound: true})

	w := doRequest(t, router, http.MethodGet, "/api/testcases", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, testcase.ErrNoTestCasesFound.Error(), decode[ErrorResponse](t, w).Error)
}

func TestTestCaseHandler_Update(t *testing.T) {
	router := setupRouter(t, testcase.ServiceConfig{})

	created := decode[testcase.TestCase](t, doRequest(t, router, http.MethodPost, "/api/testcases", map[string]interface{}{
		"title":       "Original",
		"description": "Original description",
		"priority":    "High",
		"status":      "Pending",
	}))

	t.Run("partial update", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPut, "/api/testcases/"+created.ID, `{"status":"Passed","title":null}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		tc := decode[testcase.TestCase](t, w)
		assert.Equal(t, "Original", tc.Title)
		assert.Equal(t, "Original description", tc.Description)
		assert.Equal(t, testcase.PriorityHigh, tc.Priority)
		assert.Equal(t, testcase.StatusPassed, tc.Status)
	})

	t.Run("full update", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPut, "/api/testcases/"+created.ID, map[string]interface{}{
			"title":       "Updated Title",
			"description": "Updated description",
			"priority":    "Low",
			"status":      "Failed",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		tc := decode[testcase.TestCase](t, w)
		assert.Equal(t, "Updated Title", tc.Title)
		assert.Equal(t, testcase.StatusFailed, tc.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPut, "/api/testcases/"+uuid.NewString(), map[string]interface{}{"status": "Passed"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid status", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPut, "/api/testcases/"+created.ID, map[string]interface{}{"status": "Blocked"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("title conflict", func(t *testing.T) {
		require.Equal(t, http.StatusCreated, doRequest(t, router, http.MethodPost, "/api/testcases", map[string]interface{}{"title": "Taken"}).Code)

		w := doRequest(t, router, http.MethodPut, "/api/testcases/"+created.ID, map[string]interface{}{"title": "Taken"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestTestCaseHandler_Delete(t *testing.T) {
	router := setupRouter(t, testcase.ServiceConfig{})

	created := decode[testcase.TestCase](t, doRequest(t, router, http.MethodPost, "/api/testcases", map[string]interface{}{
		"title": "Delete me",
	}))

	w := doRequest(t, router, http.MethodDelete, "/api/testcases/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test case deleted successfully", decode[SuccessResponse](t, w).Message)

	assert.Equal(t, http.StatusNotFound, doRequest(t, router, http.MethodGet, "/api/testcases/"+created.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, router, http.MethodDelete, "/api/testcases/"+created.ID, nil).Code)
}

func TestHealth(t *testing.T) {
	router := setupRouter(t, testcase.ServiceConfig{})

	w := doRequest(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode[HealthResponse](t, w).Status)

	w = doRequest(t, router, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[HealthResponse](t, w).Database)
}

type failingPinger struct{}

func (failingPinger) PingContext(ctx context.Context) error { return errors.New("down") }

func TestReadinessHandler_Unreachable(t *testing.T) {
	w := httptest.NewRecorder()
	ReadinessHandler(failingPinger{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{testcase.ErrInvalidTitle, http.StatusBadRequest},
		{testcase.ErrTitleTooLong, http.StatusBadRequest},
		{testcase.ErrDescriptionTooLong, http.StatusBadRequest},
		{testcase.ErrInvalidStatus, http.StatusBadRequest},
		{testcase.ErrUnknownPriority, http.StatusBadRequest},
		{testcase.ErrTestCaseNotFound, http.StatusNotFound},
		{testcase.ErrNoTestCasesFound, http.StatusNotFound},
		{testcase.ErrDuplicateTitle, http.StatusConflict},
		{testcase.ErrStorageFailure, http.StatusServiceUnavailable},
		{testcase.ErrStrategyNotSelected, http.StatusInternalServerError},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}
