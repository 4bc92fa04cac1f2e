package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/proffreport/profreport-backend/internal/model"
	"github.com/rs/zerolog"
)

// Submitter accepts the standard (payment) submission. Implementations report
// failures in the result rather than as an error.
type Submitter interface {
	Submit(ctx context.Context, payload model.StandardPayload) model.SubmitResult
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, payload model.StandardPayload) model.SubmitResult

func (f SubmitterFunc) Submit(ctx context.Context, payload model.StandardPayload) model.SubmitResult {
	return f(ctx, payload)
}

// HTTPSubmitter posts standard payloads to {base}/submissions and decodes a
// {success, error} body.
type HTTPSubmitter struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewHTTPSubmitter creates a submitter for the backend at baseURL.
func NewHTTPSubmitter(baseURL string, httpClient *http.Client, timeout time.Duration, log zerolog.Logger) *HTTPSubmitter {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &HTTPSubmitter{
		baseURL: baseURL,
		http:    httpClient,
		log:     log.With().Str("component", "http_submitter").Logger(),
	}
}

// Submit never returns an error; transport and protocol failures become an
// unsuccessful result.
func (s *HTTPSubmitter) Submit(ctx context.Context, payload model.StandardPayload) model.SubmitResult {
	resp, err := postJSON(ctx, s.http, s.baseURL+"/submissions", payload)
	if err != nil {
		s.log.Error().Err(err).Msg("Submission transport error")
		return model.SubmitResult{Success: false}
	}
	defer resp.Body.Close()

	var result model.SubmitResult
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(body) > 0 {
		err = json.Unmarshal(body, &result)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Warn().Int("status", resp.StatusCode).Msg("Submission rejected")
		return model.SubmitResult{Success: false, Error: result.Error}
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Undecodable submission response")
		return model.SubmitResult{Success: false}
	}
	return result
}
