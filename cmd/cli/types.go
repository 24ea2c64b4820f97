package main

import "github.com/hairizuan-noorazman/testcase-service/testcase"

// ErrorResponse matches handlers.ErrorResponse.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse matches handlers.SuccessResponse.
type SuccessResponse struct {
	Message string `json:"message"`
}

// CreateTestCaseRequest matches handlers.CreateTestCaseRequest.
type CreateTestCaseRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Status      testcase.Status   `json:"status,omitempty"`
	Priority    testcase.Priority `json:"priority,omitempty"`
}

// UpdateTestCaseRequest matches handlers.UpdateTestCaseRequest. Omitted
// fields are left unchanged by the server.
type UpdateTestCaseRequest struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	Status      *testcase.Status   `json:"status,omitempty"`
	Priority    *testcase.Priority `json:"priority,omitempty"`
}
