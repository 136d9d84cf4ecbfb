package shared

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrorCategory represents the different classes of failure a monitor run can hit
type ErrorCategory string

const (
	ErrorCategoryConfiguration ErrorCategory = "configuration"
	ErrorCategoryNetwork       ErrorCategory = "network"
	ErrorCategoryValidation    ErrorCategory = "validation"
	ErrorCategoryProcessing    ErrorCategory = "processing"
	ErrorCategoryDelivery      ErrorCategory = "delivery"
)

// Error codes used across the monitor. Validation errors are contained within
// the parsing phase; every other code aborts the run.
const (
	CodeConfigInvalid       = "CONFIG_INVALID"
	CodeMalformedRecord     = "MALFORMED_RECORD"
	CodeProviderFetchFailed = "PROVIDER_FETCH_FAILED"
	CodeReportComposeFailed = "REPORT_COMPOSE_FAILED"
	CodeMailSendFailed      = "MAIL_SEND_FAILED"
)

// ServiceError is a categorized error with operational context
type ServiceError struct {
	Category  ErrorCategory `json:"category"`
	Code      string        `json:"code"`
	Message   string        `json:"message"`
	Operation string        `json:"operation"`
	Timestamp time.Time     `json:"timestamp"`
	Retryable bool          `json:"retryable"`
	Cause     error         `json:"-"`
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether a later scheduled run is expected to succeed
func (e *ServiceError) IsRetryable() bool {
	return e.Retryable
}

// NewServiceError creates a new categorized error
func NewServiceError(category ErrorCategory, code, message, operation string, retryable bool, cause error) *ServiceError {
	return &ServiceError{
		Category:  category,
		Code:      code,
		Message:   message,
		Operation: operation,
		Timestamp: time.Now(),
		Retryable: retryable,
		Cause:     cause,
	}
}

// WrapError wraps an existing error with category and operation context.
// A ServiceError passed in keeps its original category and code.
func WrapError(err error, category ErrorCategory, code, operation string, retryable bool) *ServiceError {
	if err == nil {
		return nil
	}

	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		serviceErr.Operation = operation
		return serviceErr
	}

	return NewServiceError(category, code, err.Error(), operation, retryable, err)
}

// CategoryOf extracts the error category, defaulting to processing for
// uncategorized errors so exit-code mapping always has an answer.
func CategoryOf(err error) ErrorCategory {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Category
	}
	return ErrorCategoryProcessing
}

// LogError logs the error with structured fields
func (e *ServiceError) LogError() {
	logrus.WithFields(logrus.Fields{
		"error_category": e.Category,
		"error_code":     e.Code,
		"operation":      e.Operation,
		"retryable":      e.Retryable,
		"cause":          e.Cause,
	}).Error(e.Message)
}

// BuildSkippedRecordSummary produces a single-line summary of a parsing phase
// that dropped records, including up to three sample errors for diagnosis.
func BuildSkippedRecordSummary(parsedCount, skippedCount int, sampleErrors []error) string {
	var summary strings.Builder
	summary.WriteString(fmt.Sprintf("parsed %d records, skipped %d malformed", parsedCount, skippedCount))

	sampleSize := len(sampleErrors)
	if sampleSize > 3 {
		sampleSize = 3
	}
	for i := 0; i < sampleSize; i++ {
		summary.WriteString(fmt.Sprintf("; %s", sampleErrors[i].Error()))
	}

	if skippedCount > sampleSize {
		summary.WriteString(fmt.Sprintf("; and %d more", skippedCount-sampleSize))
	}

	return summary.String()
}
