package testcase

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hairizuan-noorazman/testcase-service/internal/uuidutil"
	"gorm.io/gorm"
)

const (
	// MaxTitleLength is the maximum number of characters in a title.
	MaxTitleLength = 100

	// MaxDescriptionLength is the maximum number of characters in a description.
	MaxDescriptionLength = 500
)

var (
	// ErrTestCaseNotFound is returned when no test case exists for an ID.
	ErrTestCaseNotFound = errors.New("test case not found")

	// ErrNoTestCasesFound is returned by List when the result is empty and
	// empty lists are configured to be reported as not found.
	ErrNoTestCasesFound = errors.New("no test cases found")

	// ErrInvalidTitle is returned when the title is empty or blank.
	ErrInvalidTitle = errors.New("title is required")

	// ErrTitleTooLong is returned when the title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title must be at most 100 characters")

	// ErrDescriptionTooLong is returned when the description exceeds MaxDescriptionLength.
	ErrDescriptionTooLong = errors.New("description must be at most 500 characters")

	// ErrInvalidStatus is returned when status is not one of the known values.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrUnknownPriority is returned when priority is not one of the known values.
	ErrUnknownPriority = errors.New("unknown priority")

	// ErrDuplicateTitle is returned when another test case already uses the title.
	ErrDuplicateTitle = errors.New("test case already exists with this title")

	// ErrStorageFailure wraps errors from the underlying database.
	ErrStorageFailure = errors.New("storage failure")
)

// Status represents the lifecycle stage of a test case.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusPassed     Status = "Passed"
	StatusFailed     Status = "Failed"
)

// Statuses lists every valid status.
var Statuses = []Status{StatusPending, StatusInProgress, StatusPassed, StatusFailed}

// IsValid checks if the status is valid.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusPassed, StatusFailed:
		return true
	default:
		return false
	}
}

// ParseStatus matches s against the known statuses, ignoring case.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// UnmarshalText accepts any casing of a known status. Unknown values are
// kept verbatim so that Validate reports them.
func (s *Status) UnmarshalText(text []byte) error {
	if parsed, err := ParseStatus(string(text)); err == nil {
		*s = parsed
		return nil
	}
	*s = Status(text)
	return nil
}

// Priority represents the urgency of a test case.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists every valid priority.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// IsValid checks if the priority is valid.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ParsePriority matches s against the known priorities, ignoring case.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", ErrUnknownPriority
}

// UnmarshalText accepts any casing of a known priority. Unknown values are
// kept verbatim so that Validate reports them.
func (p *Priority) UnmarshalText(text []byte) error {
	if parsed, err := ParsePriority(string(text)); err == nil {
		*p = parsed
		return nil
	}
	*p = Priority(text)
	return nil
}

// TestCase is a tracked test case record.
type TestCase struct {
	ID          string    `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"type:varchar(100);not null;uniqueIndex:idx_test_cases_title"`
	Description string    `json:"description" gorm:"type:varchar(500);not null;default:''"`
	Status      Status    `json:"status" gorm:"type:varchar(20);not null;index:idx_test_cases_status"`
	Priority    Priority  `json:"priority" gorm:"type:varchar(10);not null;index:idx_test_cases_priority"`
	CreatedOn   time.Time `json:"created_on" gorm:"autoCreateTime;index:idx_test_cases_created_on"`
	UpdatedOn   time.Time `json:"updated_on" gorm:"autoUpdateTime"`
}

// TableName pins the table name used by GORM and the SQL migrations.
func (TestCase) TableName() string {
	return "test_cases"
}

// BeforeCreate hook to generate an ID before creating a new test case.
func (tc *TestCase) BeforeCreate(tx *gorm.DB) error {
	if tc.ID == "" {
		tc.ID = uuidutil.New()
	}
	return nil
}

// Validate checks if the test case has valid required fields.
func (tc *TestCase) Validate() error {
	if err := validateTitle(tc.Title); err != nil {
		return err
	}
	if err := validateDescription(tc.Description); err != nil {
		return err
	}
	if !tc.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !tc.Priority.IsValid() {
		return ErrUnknownPriority
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrInvalidTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}
