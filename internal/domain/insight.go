package domain

type PointKind string

const (
	PointKindPoint      PointKind = "point"
	PointKindSuggestion PointKind = "suggestion"
	PointKindConclusion PointKind = "conclusion"
)

// InsightPoint is one entry of an AI-generated list. Number is the display
// label; 0 means the point is shown without a number.
type InsightPoint struct {
	Text      string    `json:"text"`
	Kind      PointKind `json:"kind"`
	Number    int       `json:"number"`
	SubPoints []string  `json:"subPoints"`
}

// SectionFormat tells an empty section apart from one whose text could not be
// read as a list.
type SectionFormat string

const (
	SectionEmpty        SectionFormat = "empty"
	SectionIntroOnly    SectionFormat = "intro_only"
	SectionStructured   SectionFormat = "structured"
	SectionUnstructured SectionFormat = "unstructured"
)

type InsightSection struct {
	Intro  string         `json:"intro"`
	Points []InsightPoint `json:"points"`
	Format SectionFormat  `json:"format"`
	// Unparsed holds the lines after the intro when no list structure was found.
	Unparsed []string `json:"unparsed,omitempty"`
}

func (s InsightSection) IsEmpty() bool {
	return s.Intro == "" && len(s.Points) == 0 && len(s.Unparsed) == 0
}

// InsightReport is the segmented form of the AI report payload.
type InsightReport struct {
	Summary       InsightSection `json:"summary"`
	PublicDemands InsightSection `json:"publicDemands"`
	Suggestions   InsightSection `json:"suggestions"`
}
