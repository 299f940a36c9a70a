package app

import (
	"bytes"
	"encoding/json"

	"github.com/insightify/insightify-go/internal/domain"
	"github.com/insightify/insightify-go/internal/insight"
	"github.com/insightify/insightify-go/internal/sentiment"
)

// BuildDashboard derives every view model from the raw responses. Either
// response may be nil or malformed; the result is always fully populated.
func BuildDashboard(req domain.AnalysisRequest, sentimentRaw, reportRaw json.RawMessage) *domain.Dashboard {
	analysis := sentiment.NormalizeAnalysis(sentimentRaw)
	vader, textblob := sentiment.Series(analysis.Sentiment)

	return &domain.Dashboard{
		Request:        req,
		Sentiment:      analysis.Sentiment,
		VaderSeries:    vader,
		TextBlobSeries: textblob,
		ToxicComments:  analysis.ToxicComments,
		Emojis:         analysis.Emojis,
		Insights:       insight.SegmentReport(reportRaw),
		HasReport:      present(reportRaw),
	}
}

func present(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
