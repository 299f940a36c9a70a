package analysis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/insightify/insightify-go/internal/domain"
	"github.com/insightify/insightify-go/internal/util"
	"github.com/insightify/insightify-go/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var testRequest = domain.AnalysisRequest{VideoURL: "https://www.youtube.com/watch?v=abc", CommentCount: 100}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *util.CircuitBreaker) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	breaker := util.NewCircuitBreaker("test", 5, time.Minute, zap.NewNop())
	client := NewClient(srv.Client(), ClientConfig{
		BaseURL:     srv.URL + "/",
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	}, breaker, zap.NewNop())
	return client, breaker
}

func TestFetchSentimentSendsRequestBody(t *testing.T) {
	var gotPath string
	var gotBody []byte
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		_, _ = w.Write([]byte(`{"total_comments": 100}`))
	})

	data, err := client.FetchSentiment(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("FetchSentiment: %v", err)
	}
	if gotPath != "/api/sentiment/" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	body := gjson.ParseBytes(gotBody)
	if body.Get("video_url").String() != testRequest.VideoURL || body.Get("comment_count").Int() != 100 || body.Get("comment_limit").Int() != 100 {
		t.Fatalf("unexpected body %s", gotBody)
	}
	if body.Get("sentiment_data").Exists() {
		t.Fatalf("sentiment request should not carry sentiment_data")
	}
	if gjson.GetBytes(data, "total_comments").Int() != 100 {
		t.Fatalf("unexpected response %s", data)
	}
}

func TestFetchAIReportIncludesSentiment(t *testing.T) {
	var gotBody []byte
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/aireport/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"gemini_analysis": {"summary": "ok"}}`))
	})

	sentiment := json.RawMessage(`{"total_comments": 7}`)
	if _, err := client.FetchAIReport(context.Background(), testRequest, sentiment); err != nil {
		t.Fatalf("FetchAIReport: %v", err)
	}
	if gjson.GetBytes(gotBody, "sentiment_data.total_comments").Int() != 7 {
		t.Fatalf("expected sentiment_data in body, got %s", gotBody)
	}
}

func TestClientErrorUsesBackendMessage(t *testing.T) {
	var calls atomic.Int32
	client, breaker := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Comments are disabled for this video"}`))
	})

	_, err := client.FetchSentiment(context.Background(), testRequest)
	var apiErr *errors.APIError
	if !stderrors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != 400 || apiErr.Message != "Comments are disabled for this video" {
		t.Fatalf("unexpected error %+v", apiErr.AppError)
	}
	if calls.Load() != 1 {
		t.Fatalf("4xx must not be retried, got %d calls", calls.Load())
	}
	if breaker.State() != util.CircuitStateClosed {
		t.Fatalf("client errors should not trip the breaker")
	}
}

func TestServerErrorIsRetried(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"total_comments": 1}`))
	})

	if _, err := client.FetchSentiment(context.Background(), testRequest); err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 calls, got %d", calls.Load())
	}
}

func TestServerErrorExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchSentiment(context.Background(), testRequest)
	var apiErr *errors.APIError
	if !stderrors.As(err, &apiErr) || apiErr.StatusCode != 500 {
		t.Fatalf("expected 500 APIError, got %v", err)
	}
	if apiErr.Message != "HTTP error! status: 500" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestInvalidJSONResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	})

	_, err := client.FetchSentiment(context.Background(), testRequest)
	var apiErr *errors.APIError
	if !stderrors.As(err, &apiErr) || apiErr.Retryable() {
		t.Fatalf("expected non-retryable APIError, got %v", err)
	}
}

func TestCircuitBreakerShortCircuits(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	breaker := util.NewCircuitBreaker("test", 2, time.Hour, zap.NewNop())
	client := NewClient(srv.Client(), ClientConfig{BaseURL: srv.URL, MaxAttempts: 3, BaseDelay: time.Millisecond}, breaker, zap.NewNop())

	if _, err := client.FetchSentiment(context.Background(), testRequest); err == nil {
		t.Fatalf("expected failure")
	}
	if calls.Load() != 2 {
		t.Fatalf("breaker should stop after 2 failures, got %d calls", calls.Load())
	}

	if _, err := client.FetchSentiment(context.Background(), testRequest); err == nil {
		t.Fatalf("expected open circuit error")
	}
	if calls.Load() != 2 {
		t.Fatalf("open circuit must not reach the server, got %d calls", calls.Load())
	}
}

func TestContextCancelStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		cancel()
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchSentiment(ctx, testRequest)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestValidateRequest(t *testing.T) {
	cases := []struct {
		name  string
		req   domain.AnalysisRequest
		field string
	}{
		{"empty url", domain.AnalysisRequest{CommentCount: 10}, "video_url"},
		{"not youtube", domain.AnalysisRequest{VideoURL: "https://vimeo.com/1", CommentCount: 10}, "video_url"},
		{"zero count", domain.AnalysisRequest{VideoURL: "https://youtu.be/abc", CommentCount: 0}, "comment_count"},
		{"too many", domain.AnalysisRequest{VideoURL: "https://youtu.be/abc", CommentCount: 501}, "comment_count"},
		{"ok", domain.AnalysisRequest{VideoURL: "https://www.youtube.com/watch?v=abc", CommentCount: 500}, ""},
	}
	for _, tc := range cases {
		err := ValidateRequest(tc.req)
		if tc.field == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		var vErr *errors.ValidationError
		if !stderrors.As(err, &vErr) || vErr.Field != tc.field {
			t.Fatalf("%s: expected validation error on %s, got %v", tc.name, tc.field, err)
		}
	}
}
