package domain

// Dashboard bundles every view model the result screens render for one analysis.
type Dashboard struct {
	Request        AnalysisRequest    `json:"request"`
	Sentiment      SentimentViewModel `json:"sentiment"`
	VaderSeries    ChartSeries        `json:"vaderSeries"`
	TextBlobSeries ChartSeries        `json:"textblobSeries"`
	ToxicComments  []ToxicComment     `json:"toxicComments"`
	Emojis         []EmojiCount       `json:"emojis"`
	Insights       InsightReport      `json:"insights"`
	HasReport      bool               `json:"hasReport"`
}
