package insight

import (
	"github.com/insightify/insightify-go/internal/domain"
	"github.com/insightify/insightify-go/internal/payload"
)

// SegmentReport segments the three gemini_analysis sections of an AI report
// payload. raw takes the forms payload.Parse accepts; fields that are missing
// or not strings give empty sections.
func SegmentReport(raw any) domain.InsightReport {
	analysis := payload.Field(payload.Parse(raw), "gemini_analysis")
	return domain.InsightReport{
		Summary:       Segment(payload.String(payload.Field(analysis, "summary"))),
		PublicDemands: Segment(payload.String(payload.Field(analysis, "public_demands"))),
		Suggestions:   Segment(payload.String(payload.Field(analysis, "suggestions"))),
	}
}
