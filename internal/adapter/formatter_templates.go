package adapter

import (
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/insightify/insightify-go/internal/domain"
)

//go:embed templates/*.tmpl
var formatterTemplateFS embed.FS

var (
	formatterTemplates *template.Template
	formatterOnce      sync.Once
	formatterErr       error
)

// pointLabel numbers points and numbered suggestions; conclusions are unlabeled.
func pointLabel(p domain.InsightPoint) string {
	switch {
	case p.Kind == domain.PointKindConclusion:
		return ""
	case p.Number > 0:
		return fmt.Sprintf("%d. ", p.Number)
	default:
		return "- "
	}
}

func executeFormatterTemplate(name string, data any) (string, error) {
	formatterOnce.Do(func() {
		funcMap := template.FuncMap{
			"label": pointLabel,
		}
		tmpl := template.New("formatter").Funcs(funcMap)
		formatterTemplates, formatterErr = tmpl.ParseFS(formatterTemplateFS, "templates/*.tmpl")
	})

	if formatterErr != nil {
		return "", formatterErr
	}

	var builder strings.Builder
	if err := formatterTemplates.ExecuteTemplate(&builder, name, data); err != nil {
		return "", err
	}

	return strings.TrimRight(builder.String(), "\n"), nil
}
