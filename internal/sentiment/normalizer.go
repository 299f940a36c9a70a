// Package sentiment turns raw sentiment-analysis payloads into render-safe view models.
//
// Every function here is total: missing, wrong-typed or non-finite fields fall
// back to zero values and no input makes them panic or return an error.
package sentiment

import (
	"math"

	"github.com/insightify/insightify-go/internal/domain"
	"github.com/insightify/insightify-go/internal/payload"
	"github.com/tidwall/gjson"
)

// maxCount bounds counts before they are converted to int.
const maxCount = 1 << 52

// Analysis is the normalized form of a whole /api/sentiment/ response.
type Analysis struct {
	Sentiment     domain.SentimentViewModel `json:"sentiment"`
	ToxicComments []domain.ToxicComment     `json:"toxicComments"`
	Emojis        []domain.EmojiCount       `json:"emojis"`
}

// Normalize builds a fully populated SentimentViewModel from raw.
//
// raw may be nil, JSON text ([]byte, json.RawMessage or string), a gjson.Result,
// or any value encoding/json can marshal. Anything that is not a JSON object
// yields the all-zero view model.
func Normalize(raw any) domain.SentimentViewModel {
	return normalizeResult(payload.Parse(raw))
}

// NormalizeAnalysis normalizes the sentiment view model, toxic comments and emojis in one pass.
func NormalizeAnalysis(raw any) Analysis {
	root := payload.Parse(raw)
	return Analysis{
		Sentiment:     normalizeResult(root),
		ToxicComments: toxicComments(root),
		Emojis:        emojis(root),
	}
}

func normalizeResult(root gjson.Result) domain.SentimentViewModel {
	sentiment := payload.Field(root, "sentiment")
	return domain.SentimentViewModel{
		TotalComments: int(count(payload.Field(root, "total_comments"))),
		Vader:         method(payload.Field(sentiment, "vader")),
		TextBlob:      method(payload.Field(sentiment, "textblob")),
	}
}

func method(r gjson.Result) domain.MethodSentiment {
	return domain.MethodSentiment{
		Score:     clamp(number(payload.Field(r, "overall")), -1, 1),
		Breakdown: breakdown(payload.Field(r, "breakdown")),
	}
}

func breakdown(r gjson.Result) domain.Breakdown {
	var b domain.Breakdown
	if !r.IsObject() {
		return b
	}
	for _, key := range domain.BucketKeys {
		b.Set(key, nonNegative(payload.Field(r, string(key))))
	}
	return b
}

// number returns the value of a JSON number, 0 for anything else or for non-finite values.
func number(r gjson.Result) float64 {
	if r.Type != gjson.Number {
		return 0
	}
	f := r.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// count is a non-negative number, truncated to a whole value and bounded.
func count(r gjson.Result) float64 {
	return math.Trunc(nonNegative(r))
}

// nonNegative keeps fractional values, since a breakdown may already hold percentages.
func nonNegative(r gjson.Result) float64 {
	return clamp(number(r), 0, maxCount)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
