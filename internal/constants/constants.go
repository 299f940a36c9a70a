package constants

import "time"

var CacheTTL = struct {
	SentimentResult time.Duration
	AIReport        time.Duration
	AnalysisState   time.Duration
}{
	SentimentResult: 60 * time.Minute, // raw /api/sentiment/ responses
	AIReport:        60 * time.Minute, // raw /api/aireport/ responses
	AnalysisState:   0,                // persisted app state never expires
}

var StorageKeys = struct {
	AnalysisState   string
	SentimentPrefix string
	ReportPrefix    string
}{
	AnalysisState:   "analysis-storage",
	SentimentPrefix: "insightify:sentiment",
	ReportPrefix:    "insightify:aireport",
}

var InputLimits = struct {
	MinCommentCount int
	MaxCommentCount int
}{
	MinCommentCount: 1,
	MaxCommentCount: 500,
}

var RetryConfig = struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}{
	MaxAttempts: 3,
	BaseDelay:   500 * time.Millisecond,
	MaxDelay:    8 * time.Second,
}

var CircuitBreakerConfig = struct {
	FailureThreshold int
	ResetTimeout     time.Duration
}{
	FailureThreshold: 3,                // open after 3 consecutive failures
	ResetTimeout:     30 * time.Second, // half-open probe after 30s
}

var APIConfig = struct {
	SentimentPath string
	AIReportPath  string
	UserAgent     string
	DefaultLimit  int
}{
	SentimentPath: "/api/sentiment/",
	AIReportPath:  "/api/aireport/",
	UserAgent:     "insightify-go/1.0",
	DefaultLimit:  100,
}

var RedisConfig = struct {
	ReadyTimeout time.Duration
}{
	ReadyTimeout: 5 * time.Second,
}

var DisplayConfig = struct {
	MaxCommentRunes int
	MaxEmojis       int
}{
	MaxCommentRunes: 120,
	MaxEmojis:       10,
}
