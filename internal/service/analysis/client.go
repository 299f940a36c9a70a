// Package analysis talks to the remote comment-analysis service.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/insightify/insightify-go/internal/constants"
	"github.com/insightify/insightify-go/internal/domain"
	"github.com/insightify/insightify-go/internal/util"
	"github.com/insightify/insightify-go/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// maxErrorBody bounds how much of a failed response is kept for logging.
const maxErrorBody = 512

// Fetcher is what the workflow needs from the analysis service.
type Fetcher interface {
	FetchSentiment(ctx context.Context, req domain.AnalysisRequest) (json.RawMessage, error)
	FetchAIReport(ctx context.Context, req domain.AnalysisRequest, sentiment json.RawMessage) (json.RawMessage, error)
}

type ClientConfig struct {
	BaseURL     string
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

type Client struct {
	httpClient *http.Client
	cfg        ClientConfig
	breaker    *util.CircuitBreaker
	logger     *zap.Logger
}

var _ Fetcher = (*Client)(nil)

func NewClient(httpClient *http.Client, cfg ClientConfig, breaker *util.CircuitBreaker, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = constants.RetryConfig.MaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = constants.RetryConfig.BaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = constants.RetryConfig.MaxDelay
	}
	if breaker == nil {
		breaker = util.NewCircuitBreaker("analysis-api",
			constants.CircuitBreakerConfig.FailureThreshold,
			constants.CircuitBreakerConfig.ResetTimeout,
			logger,
		)
	}
	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
		breaker:    breaker,
		logger:     logger,
	}
}

type analysisBody struct {
	VideoURL      string          `json:"video_url"`
	CommentCount  int             `json:"comment_count"`
	CommentLimit  int             `json:"comment_limit"`
	SentimentData json.RawMessage `json:"sentiment_data,omitempty"`
}

func newBody(req domain.AnalysisRequest) analysisBody {
	return analysisBody{
		VideoURL:     strings.TrimSpace(req.VideoURL),
		CommentCount: req.CommentCount,
		CommentLimit: req.CommentCount,
	}
}

// FetchSentiment runs sentiment, toxicity and emoji analysis on the video's comments.
func (c *Client) FetchSentiment(ctx context.Context, req domain.AnalysisRequest) (json.RawMessage, error) {
	return c.post(ctx, constants.APIConfig.SentimentPath, newBody(req))
}

// FetchAIReport asks for the Gemini report. sentiment may be nil.
func (c *Client) FetchAIReport(ctx context.Context, req domain.AnalysisRequest, sentiment json.RawMessage) (json.RawMessage, error) {
	body := newBody(req)
	if len(bytes.TrimSpace(sentiment)) > 0 && json.Valid(sentiment) {
		body.SentimentData = sentiment
	}
	return c.post(ctx, constants.APIConfig.AIReportPath, body)
}

func (c *Client) post(ctx context.Context, path string, body analysisBody) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.cfg.BaseURL + path
	var lastErr error

	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		if !c.breaker.CanExecute() {
			retryAfter := time.Until(c.breaker.NextRetryTime())
			c.logger.Warn("Circuit breaker is open",
				zap.String("endpoint", path),
				zap.Duration("retry_after", retryAfter),
			)
			if lastErr == nil {
				lastErr = errors.NewAPIError("Analysis service unavailable, try again later", path, http.StatusServiceUnavailable, nil)
			}
			return nil, lastErr
		}

		if attempt > 0 {
			delay := c.computeDelay(attempt - 1)
			c.logger.Warn("Request failed, retrying",
				zap.String("endpoint", path),
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		data, err := c.do(ctx, endpoint, path, payload)
		if err == nil {
			c.breaker.RecordSuccess()
			return data, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		lastErr = err
		var apiErr *errors.APIError
		if stderrors.As(err, &apiErr) && !apiErr.Retryable() {
			return nil, err
		}
		c.breaker.RecordFailure()
	}

	c.logger.Error("Analysis request failed after retries",
		zap.String("endpoint", path),
		zap.Int("attempts", c.cfg.MaxAttempts),
		zap.Error(lastErr),
	)
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, endpoint, path string, payload []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewAPIError("failed to build request", path, 0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constants.APIConfig.UserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewAPIError("request failed", path, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewAPIError("failed to read response", path, 0, err)
	}

	c.logger.Debug("Analysis response received",
		zap.String("endpoint", path),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		return nil, c.statusError(path, resp.StatusCode, body)
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.NewAPIError("analysis service returned invalid JSON", path, resp.StatusCode, nil)
	}
	return json.RawMessage(body), nil
}

// statusError prefers the backend's own "error" message, as the screens show it to the user.
func (c *Client) statusError(path string, status int, body []byte) error {
	message := fmt.Sprintf("HTTP error! status: %d", status)
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, "error"); msg.Type == gjson.String && msg.Str != "" {
			message = msg.Str
		}
	}

	apiErr := errors.NewAPIError(message, path, status, nil)
	apiErr.Context["body"] = util.TruncateString(string(body), maxErrorBody)
	return apiErr
}

func (c *Client) computeDelay(attempt int) time.Duration {
	base := c.cfg.BaseDelay * time.Duration(math.Pow(2, float64(attempt)))
	if base > c.cfg.MaxDelay || base <= 0 {
		base = c.cfg.MaxDelay
	}
	jitter := time.Duration(rand.Float64() * float64(c.cfg.BaseDelay) / 2)
	return base + jitter
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
