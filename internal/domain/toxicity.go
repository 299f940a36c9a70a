package domain

import "math"

// ToxicComment pairs a comment with its predicted toxicity in [0, 1].
type ToxicComment struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type ToxicityLevel string

const (
	ToxicityLow    ToxicityLevel = "low"
	ToxicityMedium ToxicityLevel = "medium"
	ToxicityHigh   ToxicityLevel = "high"
)

func LevelFor(score float64) ToxicityLevel {
	switch {
	case score < 0.3:
		return ToxicityLow
	case score < 0.7:
		return ToxicityMedium
	default:
		return ToxicityHigh
	}
}

func (c ToxicComment) Level() ToxicityLevel {
	return LevelFor(c.Score)
}

// Percent is the score as a rounded whole percentage.
func (c ToxicComment) Percent() int {
	return int(math.Round(c.Score * 100))
}
