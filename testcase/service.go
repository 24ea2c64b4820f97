package testcase

import (
	"context"
	"math"
	"strings"

	"github.com/hairizuan-noorazman/testcase-service/logger"
)

const (
	// DefaultPageSize is used when a list request does not give a size.
	DefaultPageSize = 20

	// MaxPageSize caps the size of a single page.
	MaxPageSize = 100
)

// ServiceConfig tunes listing behaviour.
type ServiceConfig struct {
	DefaultPageSize int
	MaxPageSize     int

	// EmptyListNotFound makes List return ErrNoTestCasesFound instead of an
	// empty page.
	EmptyListNotFound bool
}

// Service orchestrates validation, duplicate detection and persistence of
// test cases.
type Service struct {
	store  Store
	logger logger.Logger
	cfg    ServiceConfig
}

// NewService creates a new test case service.
func NewService(store Store, log logger.Logger, cfg ServiceConfig) *Service {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = DefaultPageSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = MaxPageSize
	}
	if cfg.DefaultPageSize > cfg.MaxPageSize {
		cfg.DefaultPageSize = cfg.MaxPageSize
	}
	return &Service{
		store:  store,
		logger: log,
		cfg:    cfg,
	}
}

// CreateInput holds the fields of a new test case. Empty Status and
// Priority fall back to StatusPending and PriorityMedium.
type CreateInput struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
}

// UpdateInput holds the fields to change. Unset fields are left as they are.
type UpdateInput struct {
	Title       Optional[string]
	Description Optional[string]
	Status      Optional[Status]
	Priority    Optional[Priority]
}

// ListInput selects a page of test cases. Page is zero-based.
type ListInput struct {
	Page     int
	Size     int
	Status   *Status
	Priority *Priority
}

// Create validates and stores a new test case.
func (s *Service) Create(ctx context.Context, in CreateInput) (*TestCase, error) {
	tc := &TestCase{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
	}
	if tc.Status == "" {
		tc.Status = StatusPending
	}
	if tc.Priority == "" {
		tc.Priority = PriorityMedium
	}

	if err := tc.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.store.ExistsByTitle(ctx, tc.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		s.logger.Warn(ctx, "duplicate test case title", map[string]interface{}{
			"title": tc.Title,
		})
		return nil, ErrDuplicateTitle
	}

	strategy, err := SelectStrategy(tc.Priority)
	if err != nil {
		return nil, err
	}
	if err := strategy.Apply(ctx, s.logger, tc); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, tc); err != nil {
		return nil, err
	}

	return tc, nil
}

// GetByID returns the test case with the given ID.
func (s *Service) GetByID(ctx context.Context, id string) (*TestCase, error) {
	return s.store.GetByID(ctx, id)
}

// List returns one page of test cases matching the optional filters.
func (s *Service) List(ctx context.Context, in ListInput) (*Page, error) {
	if in.Status != nil && !in.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if in.Priority != nil && !in.Priority.IsValid() {
		return nil, ErrUnknownPriority
	}

	page := in.Page
	if page < 0 {
		page = 0
	}
	size := in.Size
	if size <= 0 {
		size = s.cfg.DefaultPageSize
	}
	if size > s.cfg.MaxPageSize {
		size = s.cfg.MaxPageSize
	}

	filter := Filter{Status: in.Status, Priority: in.Priority}

	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	var items []*TestCase
	if pageInRange(page, size, total) {
		items, err = s.store.List(ctx, filter, size, page*size)
		if err != nil {
			return nil, err
		}
	}

	result := NewPage(items, total, page, size)

	s.logger.Debug(ctx, "listed test cases", map[string]interface{}{
		"filter": filter.Kind(),
		"page":   page,
		"size":   size,
		"total":  total,
	})

	if result.IsEmpty() && s.cfg.EmptyListNotFound {
		return nil, ErrNoTestCasesFound
	}

	return result, nil
}

// Update applies the set fields of in to the test case and saves it. The
// record is saved, and UpdatedOn refreshed, even when no field is set.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*TestCase, error) {
	var setters []UpdateSetter

	if title, ok := in.Title.Get(); ok {
		title = strings.TrimSpace(title)
		if err := s.ensureTitleAvailable(ctx, id, title); err != nil {
			return nil, err
		}
		setters = append(setters, SetTitle(title))
	}
	if description, ok := in.Description.Get(); ok {
		setters = append(setters, SetDescription(description))
	}
	if status, ok := in.Status.Get(); ok {
		setters = append(setters, SetStatus(status))
	}
	if priority, ok := in.Priority.Get(); ok {
		setters = append(setters, SetPriority(priority))
	}

	return s.store.Update(ctx, id, setters...)
}

// Delete removes the test case with the given ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// ensureTitleAvailable fails when title is invalid or belongs to a test case
// other than id.
func (s *Service) ensureTitleAvailable(ctx context.Context, id, title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Title == title {
		return nil
	}

	exists, err := s.store.ExistsByTitle(ctx, title)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateTitle
	}
	return nil
}

// pageInRange reports whether page starts before the end of total rows.
// The first check keeps page*size from overflowing.
func pageInRange(page, size, total int) bool {
	if page > (math.MaxInt-size)/size {
		return false
	}
	return page*size < total
}
