package domain

// BucketKey identifies one of the seven sentiment intensity buckets.
type BucketKey string

const (
	BucketStrongPositive BucketKey = "spositive"
	BucketPositive       BucketKey = "positive"
	BucketWeakPositive   BucketKey = "wpositive"
	BucketNeutral        BucketKey = "neutral"
	BucketWeakNegative   BucketKey = "wnegative"
	BucketNegative       BucketKey = "negative"
	BucketStrongNegative BucketKey = "snegative"
)

// BucketKeys lists every bucket in display order, strongest positive first.
var BucketKeys = []BucketKey{
	BucketStrongPositive,
	BucketPositive,
	BucketWeakPositive,
	BucketNeutral,
	BucketWeakNegative,
	BucketNegative,
	BucketStrongNegative,
}

var bucketLabels = map[BucketKey]string{
	BucketStrongPositive: "Strong Positive",
	BucketPositive:       "Positive",
	BucketWeakPositive:   "Weak Positive",
	BucketNeutral:        "Neutral",
	BucketWeakNegative:   "Weak Negative",
	BucketNegative:       "Negative",
	BucketStrongNegative: "Strong Negative",
}

var bucketColors = map[BucketKey]string{
	BucketStrongPositive: "#059669",
	BucketPositive:       "#10b981",
	BucketWeakPositive:   "#34d399",
	BucketNeutral:        "#6b7280",
	BucketWeakNegative:   "#f87171",
	BucketNegative:       "#ef4444",
	BucketStrongNegative: "#b91c1c",
}

func (k BucketKey) Label() string {
	return bucketLabels[k]
}

func (k BucketKey) Color() string {
	return bucketColors[k]
}

// Bucket is one named slice of a breakdown, either a raw count or a percentage.
type Bucket struct {
	Key   BucketKey `json:"key"`
	Label string    `json:"label"`
	Color string    `json:"color"`
	Value float64   `json:"value"`
}

// Breakdown is the seven-bucket sentiment histogram. Every key is always present.
type Breakdown struct {
	SPositive float64 `json:"spositive"`
	Positive  float64 `json:"positive"`
	WPositive float64 `json:"wpositive"`
	Neutral   float64 `json:"neutral"`
	WNegative float64 `json:"wnegative"`
	Negative  float64 `json:"negative"`
	SNegative float64 `json:"snegative"`
}

// Get returns the value stored for key, 0 for an unknown key.
func (b Breakdown) Get(key BucketKey) float64 {
	switch key {
	case BucketStrongPositive:
		return b.SPositive
	case BucketPositive:
		return b.Positive
	case BucketWeakPositive:
		return b.WPositive
	case BucketNeutral:
		return b.Neutral
	case BucketWeakNegative:
		return b.WNegative
	case BucketNegative:
		return b.Negative
	case BucketStrongNegative:
		return b.SNegative
	default:
		return 0
	}
}

// Set stores value under key; unknown keys are ignored.
func (b *Breakdown) Set(key BucketKey, value float64) {
	switch key {
	case BucketStrongPositive:
		b.SPositive = value
	case BucketPositive:
		b.Positive = value
	case BucketWeakPositive:
		b.WPositive = value
	case BucketNeutral:
		b.Neutral = value
	case BucketWeakNegative:
		b.WNegative = value
	case BucketNegative:
		b.Negative = value
	case BucketStrongNegative:
		b.SNegative = value
	}
}

// Buckets returns all seven buckets in display order, zero values included.
func (b Breakdown) Buckets() []Bucket {
	buckets := make([]Bucket, 0, len(BucketKeys))
	for _, key := range BucketKeys {
		buckets = append(buckets, Bucket{
			Key:   key,
			Label: key.Label(),
			Color: key.Color(),
			Value: b.Get(key),
		})
	}
	return buckets
}

// Total sums every bucket.
func (b Breakdown) Total() float64 {
	var total float64
	for _, key := range BucketKeys {
		total += b.Get(key)
	}
	return total
}

type MethodSentiment struct {
	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
}

// SentimentViewModel is the fully populated, render-safe form of a sentiment payload.
type SentimentViewModel struct {
	TotalComments int             `json:"totalComments"`
	Vader         MethodSentiment `json:"vader"`
	TextBlob      MethodSentiment `json:"textblob"`
}

// ChartSeries is a filtered list of buckets ready for a chart. An empty series
// means there is no distribution data to draw.
type ChartSeries struct {
	Slices []Bucket `json:"slices"`
}

func (s ChartSeries) Empty() bool {
	return len(s.Slices) == 0
}

type Mood string

const (
	MoodPositive Mood = "positive"
	MoodNeutral  Mood = "neutral"
	MoodNegative Mood = "negative"
)

// MoodFor maps an overall score to the mood shown next to a chart.
func MoodFor(score float64) Mood {
	switch {
	case score > 0.5:
		return MoodPositive
	case score < -0.5:
		return MoodNegative
	default:
		return MoodNeutral
	}
}

func (m Mood) Emoji() string {
	switch m {
	case MoodPositive:
		return "😊"
	case MoodNegative:
		return "😔"
	default:
		return "😐"
	}
}

// Tone describes the sign of a score: Positive, Negative or Neutral.
func Tone(score float64) string {
	switch {
	case score > 0:
		return "Positive"
	case score < 0:
		return "Negative"
	default:
		return "Neutral"
	}
}

type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}
