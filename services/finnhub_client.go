package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fenilmodi00/ipo-monitor/models"
	"github.com/fenilmodi00/ipo-monitor/shared"
	"github.com/sirupsen/logrus"
)

const finnhubBaseURL = "https://finnhub.io/api/v1"

// CalendarProvider fetches raw IPO calendar records for a date window
type CalendarProvider interface {
	FetchIPOCalendar(ctx context.Context, from, to time.Time) ([]models.RawIPORecord, error)
}

// FinnhubClient is the Finnhub implementation of CalendarProvider. Retries
// with backoff happen inside the shared HTTP helper; once they are exhausted
// the failure is fatal to the run.
type FinnhubClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// NewFinnhubClient creates a calendar client using a pooled HTTP client from
// the shared factory
func NewFinnhubClient(apiKey string, factory *shared.HTTPClientFactory, timeout time.Duration, maxRetries int) *FinnhubClient {
	return &FinnhubClient{
		apiKey:     apiKey,
		baseURL:    finnhubBaseURL,
		httpClient: factory.CreateOptimizedHTTPClient(timeout),
		maxRetries: maxRetries,
	}
}

// finnhubCalendarResponse matches the JSON envelope of the calendar endpoint
type finnhubCalendarResponse struct {
	IPOCalendar []models.RawIPORecord `json:"ipoCalendar"`
}

// FetchIPOCalendar requests the IPO calendar for [from, to] inclusive. Any
// transport error, non-success status after retries, or unusable payload is
// returned as a provider-fetch failure.
func (c *FinnhubClient) FetchIPOCalendar(ctx context.Context, from, to time.Time) ([]models.RawIPORecord, error) {
	endpoint := fmt.Sprintf("%s/calendar/ipo", c.baseURL)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fetchFailed(err)
	}

	query := url.Values{}
	query.Set("from", from.Format(providerDateLayout))
	query.Set("to", to.Format(providerDateLayout))
	request.URL.RawQuery = query.Encode()

	shared.SetProviderHeaders(request, c.apiKey)

	logger := logrus.WithFields(logrus.Fields{
		"component": "FinnhubClient",
		"from":      from.Format(providerDateLayout),
		"to":        to.Format(providerDateLayout),
	})
	logger.Info("Fetching IPO calendar from Finnhub")

	response, err := shared.ExecuteHTTPRequestWithRetry(c.httpClient, request, c.maxRetries)
	if err != nil {
		return nil, fetchFailed(err)
	}
	defer response.Body.Close()

	var payload finnhubCalendarResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fetchFailed(fmt.Errorf("unusable calendar payload: %w", err))
	}

	logger.WithField("record_count", len(payload.IPOCalendar)).Info("Received IPO calendar entries")
	return payload.IPOCalendar, nil
}

func fetchFailed(cause error) *shared.ServiceError {
	return shared.WrapError(cause, shared.ErrorCategoryNetwork, shared.CodeProviderFetchFailed, "FetchIPOCalendar", true)
}
