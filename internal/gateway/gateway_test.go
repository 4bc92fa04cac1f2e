package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/proffreport/profreport-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionnaireClientSend(t *testing.T) {
	var got model.SubmissionPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/questionnaire", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewQuestionnaireClient(srv.URL+"/api/v1", nil, time.Second, zerolog.Nop())
	payload := model.SubmissionPayload{
		User:   model.UserIdentity{Name: "Анна", Email: "anna@example.com"},
		Values: []model.QuestionnaireItem{{Number: 1, Question: "q", Answer: "5"}},
	}

	require.NoError(t, client.Send(context.Background(), payload))
	assert.Equal(t, payload.User, got.User)
	assert.Equal(t, payload.Values, got.Values)
}

func TestQuestionnaireClientNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewQuestionnaireClient(srv.URL, nil, time.Second, zerolog.Nop())
	err := client.Send(context.Background(), model.SubmissionPayload{})
	assert.ErrorIs(t, err, ErrSubmissionFailed)
}

func TestQuestionnaireClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewQuestionnaireClient(srv.URL, nil, time.Second, zerolog.Nop())
	err := client.Send(context.Background(), model.SubmissionPayload{})
	assert.True(t, errors.Is(err, ErrSubmissionFailed))
}

func TestHTTPSubmitter(t *testing.T) {
	var got model.StandardPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submissions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL, nil, time.Second, zerolog.Nop())
	res := s.Submit(context.Background(), model.StandardPayload{
		TestType: model.TestTypeGraduate,
		Email:    "a@example.com",
		Tariff:   model.TariffPro,
		Answers:  model.Answers{"values_1": model.SingleAnswer("3")},
		Consent:  true,
	})

	assert.True(t, res.Success)
	assert.Equal(t, model.TestTypeGraduate, got.TestType)
	assert.Equal(t, model.SingleAnswer("3"), got.Answers["values_1"])
	assert.True(t, got.Consent)
}

func TestHTTPSubmitterFailures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"reported failure", http.StatusOK, `{"success": false, "error": "Платёж отклонён"}`, "Платёж отклонён"},
		{"server error", http.StatusInternalServerError, `{"error": "down"}`, "down"},
		{"garbage", http.StatusOK, `not json`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			res := NewHTTPSubmitter(srv.URL, nil, time.Second, zerolog.Nop()).
				Submit(context.Background(), model.StandardPayload{})
			assert.False(t, res.Success)
			assert.Equal(t, tc.wantErr, res.Error)
		})
	}
}
