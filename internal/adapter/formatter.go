package adapter

import (
	"fmt"
	"strings"

	"github.com/insightify/insightify-go/internal/constants"
	"github.com/insightify/insightify-go/internal/domain"
	"github.com/insightify/insightify-go/internal/util"
)

// ResponseFormatter renders dashboards as plain console text.
type ResponseFormatter struct {
	maxCommentRunes int
	maxEmojis       int
}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{
		maxCommentRunes: constants.DisplayConfig.MaxCommentRunes,
		maxEmojis:       constants.DisplayConfig.MaxEmojis,
	}
}

// FormatDashboard renders every section of one analysis.
func (f *ResponseFormatter) FormatDashboard(d *domain.Dashboard) string {
	if d == nil {
		return "❌ No analysis results available."
	}

	sections := []string{
		fmt.Sprintf("🎬 %s (%d comments requested)", d.Request.VideoURL, d.Request.CommentCount),
		f.FormatSentiment(d.Sentiment, d.VaderSeries, d.TextBlobSeries),
		f.FormatToxicComments(d.ToxicComments),
		f.FormatEmojis(d.Emojis),
	}
	if d.HasReport {
		sections = append(sections, f.FormatInsights(d.Insights))
	} else {
		sections = append(sections, "🤖 AI insights are not available for this analysis.")
	}
	return strings.Join(sections, "\n\n")
}

// FormatSentiment renders the score and percentage breakdown for both methods.
func (f *ResponseFormatter) FormatSentiment(vm domain.SentimentViewModel, vader, textblob domain.ChartSeries) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 Sentiment analysis (%d comments)\n", vm.TotalComments))
	f.writeMethod(&sb, "VADER", vm.Vader.Score, vader)
	sb.WriteString("\n")
	f.writeMethod(&sb, "TextBlob", vm.TextBlob.Score, textblob)
	return strings.TrimRight(sb.String(), "\n")
}

func (f *ResponseFormatter) writeMethod(sb *strings.Builder, name string, score float64, series domain.ChartSeries) {
	mood := domain.MoodFor(score)
	sb.WriteString(fmt.Sprintf("\n%s %s: %s (%.2f)\n", mood.Emoji(), name, domain.Tone(score), score))

	if series.Empty() {
		sb.WriteString("   No distribution data\n")
		return
	}
	for _, slice := range series.Slices {
		sb.WriteString(fmt.Sprintf("   %-16s %5.1f%%\n", slice.Label, slice.Value))
	}
}

func (f *ResponseFormatter) FormatToxicComments(comments []domain.ToxicComment) string {
	if len(comments) == 0 {
		return "☣️ No toxic comments found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("☣️ Toxic comments (%d)\n", len(comments)))
	for i, c := range comments {
		text := util.TruncateString(util.SingleLine(c.Text), f.maxCommentRunes)
		sb.WriteString(fmt.Sprintf("\n%d. [%s %d%%] %s", i+1, strings.ToUpper(string(c.Level())), c.Percent(), text))
	}
	return sb.String()
}

// FormatEmojis lists the first emojis in payload order, which the backend sorts by frequency.
func (f *ResponseFormatter) FormatEmojis(emojis []domain.EmojiCount) string {
	if len(emojis) == 0 {
		return "😶 No emojis found."
	}

	shown := emojis
	if len(shown) > f.maxEmojis {
		shown = shown[:f.maxEmojis]
	}
	parts := make([]string, 0, len(shown))
	for _, e := range shown {
		parts = append(parts, fmt.Sprintf("%s ×%d", e.Emoji, e.Count))
	}
	return "😀 Top emojis\n" + strings.Join(parts, "  ")
}

func (f *ResponseFormatter) FormatInsights(report domain.InsightReport) string {
	sections := []struct {
		Title   string
		Section domain.InsightSection
	}{
		{Title: "📝 Summary", Section: report.Summary},
		{Title: "📣 Public demands", Section: report.PublicDemands},
		{Title: "💡 Suggestions", Section: report.Suggestions},
	}

	rendered := make([]string, 0, len(sections))
	for _, s := range sections {
		text, err := executeFormatterTemplate("insight_section", s)
		if err != nil {
			text = s.Title + "\n  " + err.Error()
		}
		rendered = append(rendered, text)
	}
	return strings.Join(rendered, "\n\n")
}

// FormatBatchItem renders the one-line result of a batch entry.
func (f *ResponseFormatter) FormatBatchItem(index int, req domain.AnalysisRequest, d *domain.Dashboard, errMsg string) string {
	if errMsg != "" || d == nil {
		return fmt.Sprintf("[%d] %s → ❌ %s", index+1, req.VideoURL, errMsg)
	}
	mood := domain.MoodFor(d.Sentiment.Vader.Score)
	return fmt.Sprintf("[%d] %s → %s %s · %d comments · %d toxic",
		index+1, req.VideoURL, mood.Emoji(), domain.Tone(d.Sentiment.Vader.Score),
		d.Sentiment.TotalComments, len(d.ToxicComments))
}

func (f *ResponseFormatter) FormatError(msg string) string {
	return "❌ " + msg
}
