package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatih/color"
	"github.com/hairizuan-noorazman/testcase-service/testcase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ParsesErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "test case not found"})
	}))
	defer server.Close()

	_, err := newClient(server.URL, false).Get(testCasePath("missing"), nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "test case not found", apiErr.Message)
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newClient(server.URL, false).Delete(testCasePath("abc"))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "bad gateway")
}

func TestClient_PutOmitsUnsetFields(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/testcases/abc", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &received))
		w.Write([]byte(`{"id":"abc","title":"T","status":"Passed","priority":"High"}`))
	}))
	defer server.Close()

	status := testcase.StatusPassed
	body, err := newClient(server.URL, false).Put(testCasePath("abc"), UpdateTestCaseRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"status": "Passed"}, received)

	var tc testcase.TestCase
	require.NoError(t, json.Unmarshal(body, &tc))
	assert.Equal(t, testcase.StatusPassed, tc.Status)
}

func TestWriteTable_PlainWhenColorDisabled(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	writeTable(&buf, testCaseHeaders(), testCaseRows([]*testcase.TestCase{
		{ID: "id-1", Title: "Login works", Status: testcase.StatusFailed, Priority: testcase.PriorityHigh},
	}))

	out := buf.String()
	assert.Contains(t, out, "Failed")
	assert.Contains(t, out, "High")
	assert.NotContains(t, out, "\x1b[")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééééééé...", truncate("éééééééééééé", 10))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "a", truncate("abcdef", 1))
	assert.Equal(t, "", truncate("abcdef", 0))
	assert.Equal(t, "", truncate("abcdef", -2))
}
