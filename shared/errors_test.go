package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceErrorWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := WrapError(cause, ErrorCategoryNetwork, CodeProviderFetchFailed, "FetchIPOCalendar", true)

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorCategoryNetwork, wrapped.Category)
	assert.True(t, wrapped.IsRetryable())
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "PROVIDER_FETCH_FAILED")
}

func TestWrapErrorKeepsExistingCategory(t *testing.T) {
	original := NewServiceError(ErrorCategoryValidation, CodeMalformedRecord, "bad record", "ParseRecord", false, nil)

	rewrapped := WrapError(fmt.Errorf("during run: %w", original), ErrorCategoryNetwork, CodeProviderFetchFailed, "Run", true)
	assert.Equal(t, ErrorCategoryValidation, rewrapped.Category)
	assert.Equal(t, CodeMalformedRecord, rewrapped.Code)
	assert.Equal(t, "Run", rewrapped.Operation)
}

func TestWrapErrorNil(t *testing.T) {
	assert.Nil(t, WrapError(nil, ErrorCategoryNetwork, CodeProviderFetchFailed, "Run", true))
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, ErrorCategoryDelivery,
		CategoryOf(NewServiceError(ErrorCategoryDelivery, CodeMailSendFailed, "refused", "Send", true, nil)))
	assert.Equal(t, ErrorCategoryProcessing, CategoryOf(errors.New("plain error")))
}

func TestBuildSkippedRecordSummary(t *testing.T) {
	sampleErrors := []error{
		errors.New("record has neither ticker nor symbol field"),
		errors.New(`record BAD has unparsable date "tomorrow"`),
	}

	summary := BuildSkippedRecordSummary(5, 2, sampleErrors)
	assert.Contains(t, summary, "parsed 5 records, skipped 2 malformed")
	assert.Contains(t, summary, "neither ticker nor symbol")

	truncated := BuildSkippedRecordSummary(1, 7, sampleErrors)
	assert.Contains(t, truncated, "and 5 more")
}
