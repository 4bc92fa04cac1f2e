// Package gateway delivers finished questionnaires to the report backend.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/proffreport/profreport-backend/internal/model"
	"github.com/rs/zerolog"
)

// ErrSubmissionFailed wraps every failure to deliver a questionnaire.
var ErrSubmissionFailed = errors.New("submission failed")

// QuestionnaireClient posts transformed payloads to {base}/questionnaire.
type QuestionnaireClient struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewQuestionnaireClient creates a client for the report backend at baseURL.
// A nil httpClient gets a default one bounded by timeout.
func NewQuestionnaireClient(baseURL string, httpClient *http.Client, timeout time.Duration, log zerolog.Logger) *QuestionnaireClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &QuestionnaireClient{
		baseURL: baseURL,
		http:    httpClient,
		log:     log.With().Str("component", "questionnaire_client").Logger(),
	}
}

// Send delivers payload. Any non-2xx status is a failure.
func (c *QuestionnaireClient) Send(ctx context.Context, payload model.SubmissionPayload) error {
	resp, err := postJSON(ctx, c.http, c.baseURL+"/questionnaire", payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().
			Int("status", resp.StatusCode).
			Msg("Report backend rejected questionnaire")
		return fmt.Errorf("%w: status %d", ErrSubmissionFailed, resp.StatusCode)
	}
	return nil
}

func postJSON(ctx context.Context, client *http.Client, url string, body any) (*http.Response, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", url, err)
	}
	return resp, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
