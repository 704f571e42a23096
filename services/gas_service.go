package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/streamdesk/agency_backend/utils"
)

const (
	gasMaxAttempts  = 3
	gasRetryBackoff = 500 * time.Millisecond
)

// GASService forwards dashboard requests to the Google Apps Script
// deployment backing the legacy sheets workflows
type GASService struct {
	deploymentURL  string
	apiKey         string
	allowedActions map[string]bool
	client         *http.Client
}

// NewGASService reads the deployment configuration from environment
// variables. GAS_ALLOWED_ACTIONS is a comma-separated allowlist; empty
// means every action is forwarded.
func NewGASService() *GASService {
	deploymentURL := os.Getenv("GAS_DEPLOYMENT_URL")
	if deploymentURL == "" {
		log.Printf("WARNING: GAS_DEPLOYMENT_URL is not set, /api/gas will fail")
	}

	var allowed map[string]bool
	if raw := os.Getenv("GAS_ALLOWED_ACTIONS"); raw != "" {
		allowed = make(map[string]bool)
		for _, action := range strings.Split(raw, ",") {
			action = strings.TrimSpace(action)
			if action != "" {
				allowed[action] = true
			}
		}
	}

	return &GASService{
		deploymentURL:  deploymentURL,
		apiKey:         os.Getenv("GAS_API_KEY"),
		allowedActions: allowed,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ActionAllowed reports whether the action passes the configured allowlist
func (s *GASService) ActionAllowed(action string) bool {
	if s.allowedActions == nil {
		return true
	}
	return s.allowedActions[action]
}

// Forward proxies a request to the GAS deployment, preserving every query
// parameter verbatim. Network failures and 5xx responses are retried up to
// gasMaxAttempts with linear backoff. Returns the upstream status code and
// body on success.
func (s *GASService) Forward(ctx context.Context, method string, query url.Values, body []byte) (int, []byte, error) {
	if s.deploymentURL == "" {
		return 0, nil, fmt.Errorf("GAS deployment URL is not configured")
	}

	target := s.deploymentURL
	if encoded := query.Encode(); encoded != "" {
		if strings.Contains(target, "?") {
			target += "&" + encoded
		} else {
			target += "?" + encoded
		}
	}

	var lastErr error

	for attempt := 1; attempt <= gasMaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return 0, nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * gasRetryBackoff):
			}
		}

		statusCode, respBody, err := s.doRequest(ctx, method, target, body)
		if err != nil {
			lastErr = err
			tag := utils.ClassifyError(err)
			if !utils.IsRetryable(tag) {
				return 0, nil, err
			}
			log.Printf("GAS request failed (attempt %d/%d, tag=%s): %v", attempt, gasMaxAttempts, tag, err)
			continue
		}

		// Apps Script surfaces transient overload as 5xx
		if statusCode >= 500 {
			lastErr = fmt.Errorf("GAS returned status %d", statusCode)
			log.Printf("GAS request failed (attempt %d/%d): status %d", attempt, gasMaxAttempts, statusCode)
			continue
		}

		return statusCode, respBody, nil
	}

	return 0, nil, fmt.Errorf("GAS request failed after %d attempts: %w", gasMaxAttempts, lastErr)
}

func (s *GASService) doRequest(ctx context.Context, method, target string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-Api-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, respBody, nil
}
