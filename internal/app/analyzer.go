package app

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/insightify/insightify-go/internal/constants"
	"github.com/insightify/insightify-go/internal/domain"
	"github.com/insightify/insightify-go/internal/service/analysis"
	"github.com/insightify/insightify-go/internal/service/cache"
	"github.com/insightify/insightify-go/internal/state"
	"github.com/insightify/insightify-go/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// ErrNoResults is returned by Current when no analysis has been stored yet.
var ErrNoResults = stderrors.New("no analysis results available")

type AnalyzerConfig struct {
	SentimentTTL time.Duration
	ReportTTL    time.Duration
	Concurrency  int
}

// Analyzer runs the submit flow: validate, fetch (or reuse cached) responses,
// record them in the state store and build the dashboard.
type Analyzer struct {
	fetcher analysis.Fetcher
	kv      cache.KeyValueStore
	state   *state.Store
	cfg     AnalyzerConfig
	logger  *zap.Logger
}

func NewAnalyzer(fetcher analysis.Fetcher, kv cache.KeyValueStore, store *state.Store, cfg AnalyzerConfig, logger *zap.Logger) *Analyzer {
	if cfg.SentimentTTL <= 0 {
		cfg.SentimentTTL = constants.CacheTTL.SentimentResult
	}
	if cfg.ReportTTL <= 0 {
		cfg.ReportTTL = constants.CacheTTL.AIReport
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Analyzer{
		fetcher: fetcher,
		kv:      kv,
		state:   store,
		cfg:     cfg,
		logger:  logger,
	}
}

// Analyze runs one analysis and makes it the current one. On failure the
// state keeps the error message with loading cleared, and the error is returned.
func (a *Analyzer) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.Dashboard, error) {
	if err := analysis.ValidateRequest(req); err != nil {
		return nil, err
	}

	a.state.Reset()
	a.state.SetVideoURL(req.VideoURL)
	a.state.SetCommentCount(req.CommentCount)
	a.state.SetLoading(true)

	sentimentRaw, reportRaw, err := a.fetch(ctx, req)
	if err != nil {
		a.state.SetError(UserMessage(err))
		a.state.SetLoading(false)
		a.persist(ctx)
		return nil, err
	}

	a.state.SetSentimentData(sentimentRaw)
	a.state.SetAIReportData(reportRaw)
	a.state.SetLoading(false)
	a.persist(ctx)

	a.logger.Info("Analysis completed",
		zap.String("video_id", req.VideoID()),
		zap.Int("comment_count", req.CommentCount),
	)
	return BuildDashboard(req, sentimentRaw, reportRaw), nil
}

// Current rebuilds the dashboard from the persisted state.
func (a *Analyzer) Current(ctx context.Context) (*domain.Dashboard, error) {
	if _, err := a.state.Restore(ctx); err != nil {
		return nil, fmt.Errorf("failed to restore analysis state: %w", err)
	}
	if !a.state.HasResults() {
		return nil, ErrNoResults
	}

	snap := a.state.Snapshot()
	req := domain.AnalysisRequest{VideoURL: snap.VideoURL, CommentCount: snap.CommentCount}
	return BuildDashboard(req, snap.SentimentData, snap.AIReportData), nil
}

// Reset forgets the current analysis and every cached response.
func (a *Analyzer) Reset(ctx context.Context) error {
	if err := a.state.Clear(ctx); err != nil {
		return errors.NewServiceError("failed to clear analysis state", "analyzer", "reset", err)
	}
	var purged int64
	for _, pattern := range cache.ResponsePatterns() {
		n, err := a.kv.Purge(ctx, pattern)
		if err != nil {
			return errors.NewServiceError("failed to purge cached responses", "analyzer", "reset", err)
		}
		purged += n
	}
	a.logger.Info("Analysis state cleared", zap.Int64("purged_responses", purged))
	return nil
}

type BatchResult struct {
	Request   domain.AnalysisRequest
	Dashboard *domain.Dashboard
	Err       error
}

// AnalyzeBatch analyzes several videos with bounded concurrency. Results keep
// the input order and the current analysis in the state store is left alone.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, reqs []domain.AnalysisRequest) []BatchResult {
	results := make([]BatchResult, len(reqs))
	p := pool.New().WithMaxGoroutines(a.cfg.Concurrency)

	for idx, req := range reqs {
		idx, req := idx, req
		p.Go(func() {
			results[idx] = a.analyzeOne(ctx, req)
		})
	}
	p.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	a.logger.Info("Batch analysis finished",
		zap.Int("total", len(reqs)),
		zap.Int("failed", failed),
	)
	return results
}

func (a *Analyzer) analyzeOne(ctx context.Context, req domain.AnalysisRequest) BatchResult {
	result := BatchResult{Request: req}
	if err := analysis.ValidateRequest(req); err != nil {
		result.Err = err
		return result
	}
	sentimentRaw, reportRaw, err := a.fetch(ctx, req)
	if err != nil {
		result.Err = err
		return result
	}
	result.Dashboard = BuildDashboard(req, sentimentRaw, reportRaw)
	return result
}

func (a *Analyzer) fetch(ctx context.Context, req domain.AnalysisRequest) (json.RawMessage, json.RawMessage, error) {
	videoID := req.VideoID()

	sentimentRaw, err := a.cached(ctx, cache.SentimentKey(videoID, req.CommentCount), videoID, a.cfg.SentimentTTL,
		func() (json.RawMessage, error) {
			return a.fetcher.FetchSentiment(ctx, req)
		})
	if err != nil {
		return nil, nil, err
	}

	reportRaw, err := a.cached(ctx, cache.ReportKey(videoID, req.CommentCount), videoID, a.cfg.ReportTTL,
		func() (json.RawMessage, error) {
			return a.fetcher.FetchAIReport(ctx, req, sentimentRaw)
		})
	if err != nil {
		return nil, nil, err
	}
	return sentimentRaw, reportRaw, nil
}

// cached returns the response stored at key or fetches and stores it. Cache
// failures are logged and never fail the analysis.
func (a *Analyzer) cached(ctx context.Context, key, videoID string, ttl time.Duration, fetch func() (json.RawMessage, error)) (json.RawMessage, error) {
	if videoID != "" {
		data, ok, err := a.kv.GetRaw(ctx, key)
		switch {
		case err != nil:
			a.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		case ok:
			a.logger.Debug("Cache hit", zap.String("key", key))
			return json.RawMessage(data), nil
		}
	}

	data, err := fetch()
	if err != nil {
		return nil, err
	}

	if videoID != "" {
		if err := a.kv.SetRaw(ctx, key, data, ttl); err != nil {
			a.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return data, nil
}

func (a *Analyzer) persist(ctx context.Context) {
	if err := a.state.Persist(ctx); err != nil {
		a.logger.Warn("Failed to persist analysis state", zap.Error(err))
	}
}

// UserMessage is the text shown to the user for err: the backend's own message
// for API and validation errors, the full error otherwise.
func UserMessage(err error) string {
	var apiErr *errors.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Message
	}
	var vErr *errors.ValidationError
	if stderrors.As(err, &vErr) {
		return vErr.Message
	}
	return err.Error()
}
