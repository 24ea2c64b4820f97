package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hairizuan-noorazman/testcase-service/logger"
)

// NewRouter registers every route of the API. db may be nil, in which case
// /ready is not registered.
func NewRouter(service TestCaseService, db Pinger, log logger.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(NewRequestMiddleware(log).Handler)

	router.HandleFunc("/health", HealthHandler).Methods(http.MethodGet)
	if db != nil {
		router.HandleFunc("/ready", ReadinessHandler(db)).Methods(http.MethodGet)
	}

	testCaseHandler := NewTestCaseHandler(service, log)

	api := router.PathPrefix("/api/testcases").Subrouter()
	api.HandleFunc("", testCaseHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("", testCaseHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/{id}", testCaseHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/{id}", testCaseHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/{id}", testCaseHandler.Delete).Methods(http.MethodDelete)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return router
}
