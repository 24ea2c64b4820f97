package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/hairizuan-noorazman/testcase-service/logger"
	"github.com/hairizuan-noorazman/testcase-service/testcase"
)

// TestCaseService is the application service behind the test case endpoints.
type TestCaseService interface {
	Create(ctx context.Context, in testcase.CreateInput) (*testcase.TestCase, error)
	GetByID(ctx context.Context, id string) (*testcase.TestCase, error)
	List(ctx context.Context, in testcase.ListInput) (*testcase.Page, error)
	Update(ctx context.Context, id string, in testcase.UpdateInput) (*testcase.TestCase, error)
	Delete(ctx context.Context, id string) error
}

// TestCaseHandler handles test case requests.
type TestCaseHandler struct {
	service TestCaseService
	logger  logger.Logger
}

// NewTestCaseHandler creates a new test case handler.
func NewTestCaseHandler(service TestCaseService, log logger.Logger) *TestCaseHandler {
	return &TestCaseHandler{
		service: service,
		logger:  log,
	}
}

// CreateTestCaseRequest represents a test case creation request.
type CreateTestCaseRequest struct {
	Title       *string           `json:"title"`
	Description string            `json:"description"`
	Priority    testcase.Priority `json:"priority"`
	Status      testcase.Status   `json:"status"`
}

// UpdateTestCaseRequest represents a partial test case update. Fields that
// are missing or null are left unchanged.
type UpdateTestCaseRequest struct {
	Title       testcase.Optional[string]            `json:"title"`
	Description testcase.Optional[string]            `json:"description"`
	Priority    testcase.Optional[testcase.Priority] `json:"priority"`
	Status      testcase.Optional[testcase.Status]   `json:"status"`
}

// Create handles creating a new test case.
func (h *TestCaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTestCaseRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == nil {
		h.logger.Warn(r.Context(), "title cannot be null", nil)
		respondError(w, http.StatusBadRequest, testcase.ErrInvalidTitle.Error())
		return
	}

	h.logger.Info(r.Context(), "creating test case", map[string]interface{}{
		"title": *req.Title,
	})

	tc, err := h.service.Create(r.Context(), testcase.CreateInput{
		Title:       *req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		h.respondServiceError(w, r, err, "failed to create test case", nil)
		return
	}

	respondJSON(w, http.StatusCreated, tc)
}

// GetByID handles getting a single test case by ID.
func (h *TestCaseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	tc, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to get test case", map[string]interface{}{
			"test_case_id": id,
		})
		return
	}

	respondJSON(w, http.StatusOK, tc)
}

// List handles listing test cases with pagination and optional
// status/priority filters.
func (h *TestCaseHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	in := testcase.ListInput{
		Page: queryInt(r, "page", 0),
		Size: queryInt(r, "size", 0),
	}

	if raw := query.Get("status"); raw != "" {
		status, err := testcase.ParseStatus(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		in.Status = &status
	}
	if raw := query.Get("priority"); raw != "" {
		priority, err := testcase.ParsePriority(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		in.Priority = &priority
	}

	page, err := h.service.List(r.Context(), in)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to list test cases", map[string]interface{}{
			"status":   query.Get("status"),
			"priority": query.Get("priority"),
		})
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// Update handles partially updating a test case.
func (h *TestCaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	var req UpdateTestCaseRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tc, err := h.service.Update(r.Context(), id, testcase.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		h.respondServiceError(w, r, err, "failed to update test case", map[string]interface{}{
			"test_case_id": id,
		})
		return
	}

	respondJSON(w, http.StatusOK, tc)
}

// Delete handles deleting a test case.
func (h *TestCaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err, "failed to delete test case", map[string]interface{}{
			"test_case_id": id,
		})
		return
	}

	respondSuccess(w, "test case deleted successfully")
}

// respondServiceError maps a service error to a status code. Only
// unexpected errors are logged at error level.
func (h *TestCaseHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, msg string, fields map[string]interface{}) {
	status := statusForError(err)
	if status < http.StatusInternalServerError {
		respondError(w, status, err.Error())
		return
	}

	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields["error"] = err.Error()
	h.logger.Error(r.Context(), msg, fields)

	if status == http.StatusServiceUnavailable {
		respondError(w, status, "storage unavailable")
		return
	}
	respondError(w, status, msg)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, testcase.ErrInvalidTitle),
		errors.Is(err, testcase.ErrTitleTooLong),
		errors.Is(err, testcase.ErrDescriptionTooLong),
		errors.Is(err, testcase.ErrInvalidStatus),
		errors.Is(err, testcase.ErrUnknownPriority):
		return http.StatusBadRequest
	case errors.Is(err, testcase.ErrTestCaseNotFound),
		errors.Is(err, testcase.ErrNoTestCasesFound):
		return http.StatusNotFound
	case errors.Is(err, testcase.ErrDuplicateTitle):
		return http.StatusConflict
	case errors.Is(err, testcase.ErrStorageFailure):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
