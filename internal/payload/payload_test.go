package payload

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/tidwall/gjson"
)

func TestParseAcceptedForms(t *testing.T) {
	const doc = `{"gemini_analysis": {"summary": "ok"}}`
	parsed := gjson.Parse(doc)

	inputs := map[string]any{
		"string":      doc,
		"bytes":       []byte(doc),
		"raw message": json.RawMessage(doc),
		"result":      parsed,
		"result ptr":  &parsed,
		"map":         map[string]any{"gemini_analysis": map[string]any{"summary": "ok"}},
	}
	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			got := String(Field(Field(Parse(raw), "gemini_analysis"), "summary"))
			if got != "ok" {
				t.Fatalf("expected %q, got %q", "ok", got)
			}
		})
	}
}

func TestParseRejectsUnusableInput(t *testing.T) {
	var nilResult *gjson.Result
	inputs := map[string]any{
		"nil":           nil,
		"nil ptr":       nilResult,
		"empty":         "",
		"invalid json":  `{"summary": `,
		"unmarshalable": math.NaN(),
		"channel":       make(chan int),
	}
	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			if got := Parse(raw); got.Exists() {
				t.Fatalf("expected absent result, got %s", got.Raw)
			}
		})
	}
}

func TestFieldOnlyReadsObjects(t *testing.T) {
	if got := Field(gjson.Parse(`[{"a": 1}]`), "0"); got.Exists() {
		t.Fatalf("array index should not resolve, got %s", got.Raw)
	}
	if got := Field(gjson.Parse(`{"a.b": 2, "a": {"b": 3}}`), "a.b"); got.Int() != 2 {
		t.Fatalf("dotted key should be literal, got %s", got.Raw)
	}
}

func TestString(t *testing.T) {
	r := gjson.Parse(`{"s": "text", "n": 5, "o": {}}`)
	if String(Field(r, "s")) != "text" {
		t.Fatalf("expected string value")
	}
	for _, key := range []string{"n", "o", "missing"} {
		if got := String(Field(r, key)); got != "" {
			t.Fatalf("String(%s) = %q, want empty", key, got)
		}
	}
}
