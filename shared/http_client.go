package shared

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPClientFactory creates optimized HTTP clients with standardized configuration
type HTTPClientFactory struct {
	defaultTimeout time.Duration
	mutex          sync.RWMutex
	clients        map[string]*http.Client
}

// NewHTTPClientFactory creates a new HTTP client factory
func NewHTTPClientFactory(defaultTimeout time.Duration) *HTTPClientFactory {
	return &HTTPClientFactory{
		defaultTimeout: defaultTimeout,
		clients:        make(map[string]*http.Client),
	}
}

// CreateOptimizedHTTPClient creates an HTTP client with connection pooling and optimized settings
func (f *HTTPClientFactory) CreateOptimizedHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = f.defaultTimeout
	}

	clientKey := fmt.Sprintf("timeout_%d", timeout.Milliseconds())

	f.mutex.RLock()
	if client, exists := f.clients[clientKey]; exists {
		f.mutex.RUnlock()
		return client
	}
	f.mutex.RUnlock()

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,

			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	f.mutex.Lock()
	f.clients[clientKey] = client
	f.mutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"component":  "HTTPClientFactory",
		"timeout":    timeout,
		"client_key": clientKey,
	}).Debug("Created new optimized HTTP client")

	return client
}

// SetProviderHeaders configures the headers Finnhub expects on calendar requests
func SetProviderHeaders(request *http.Request, apiToken string) {
	request.Header.Set("X-Finnhub-Token", apiToken)
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", "ipo-monitor/1.0")
}

// isRetryableStatusCode reports whether a response status is worth retrying.
// Rate limiting and server-side failures are transient; other 4xx responses
// (bad token, bad request) will fail identically on every attempt.
func isRetryableStatusCode(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

// ExecuteHTTPRequestWithRetry executes an HTTP request with exponential backoff retry logic
func ExecuteHTTPRequestWithRetry(client *http.Client, request *http.Request, maxRetryAttempts int) (*http.Response, error) {
	logger := logrus.WithFields(logrus.Fields{
		"component": "HTTPClientFactory",
		"method":    "ExecuteHTTPRequestWithRetry",
		"url":       request.URL.Redacted(),
	})

	var httpResponse *http.Response
	var lastExecutionError error

	for attemptNumber := 0; attemptNumber <= maxRetryAttempts; attemptNumber++ {
		if attemptNumber > 0 {
			// Exponential backoff with jitter to avoid hammering a rate-limited API
			baseBackoffDuration := time.Duration(1<<uint(attemptNumber-1)) * time.Second
			jitterDuration := time.Duration(float64(baseBackoffDuration) * 0.1 * (0.5 + 0.5*float64(attemptNumber%3)/2))
			totalBackoffDuration := baseBackoffDuration + jitterDuration

			logger.WithFields(logrus.Fields{
				"attempt":          attemptNumber + 1,
				"backoff_duration": totalBackoffDuration,
			}).Debug("Retrying HTTP request after backoff")

			time.Sleep(totalBackoffDuration)
		}

		httpResponse, lastExecutionError = client.Do(request)
		if lastExecutionError == nil && httpResponse.StatusCode == http.StatusOK {
			logger.WithFields(logrus.Fields{
				"attempt":     attemptNumber + 1,
				"status_code": httpResponse.StatusCode,
			}).Debug("HTTP request successful")
			return httpResponse, nil
		}

		if lastExecutionError != nil {
			lastExecutionError = fmt.Errorf("attempt %d failed with network error: %w", attemptNumber+1, lastExecutionError)
			logger.WithError(lastExecutionError).Debug("HTTP request failed with network error")
			continue
		}

		statusCode := httpResponse.StatusCode
		lastExecutionError = fmt.Errorf("attempt %d failed with HTTP %d: %s", attemptNumber+1, statusCode, http.StatusText(statusCode))
		httpResponse.Body.Close()

		if !isRetryableStatusCode(statusCode) {
			logger.WithField("status_code", statusCode).Debug("HTTP request failed with non-retryable status")
			return nil, lastExecutionError
		}

		logger.WithFields(logrus.Fields{
			"attempt":     attemptNumber + 1,
			"status_code": statusCode,
		}).Debug("HTTP request failed with retryable status")
	}

	totalAttempts := maxRetryAttempts + 1
	logger.WithFields(logrus.Fields{
		"total_attempts": totalAttempts,
		"final_error":    lastExecutionError,
	}).Error("HTTP request failed after all retry attempts")

	return nil, fmt.Errorf("HTTP request failed after %d attempts: %w", totalAttempts, lastExecutionError)
}
