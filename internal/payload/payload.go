// Package payload reads backend JSON responses tolerantly.
//
// Lookups never fail: input that is not valid JSON, or a key on anything other
// than an object, gives the zero gjson.Result, which reads as absent.
package payload

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Parse accepts nil, JSON text ([]byte, json.RawMessage or string), a
// gjson.Result, or any value encoding/json can marshal.
func Parse(raw any) gjson.Result {
	switch v := raw.(type) {
	case nil:
		return gjson.Result{}
	case gjson.Result:
		return v
	case *gjson.Result:
		if v == nil {
			return gjson.Result{}
		}
		return *v
	case []byte:
		return parseBytes(v)
	case json.RawMessage:
		return parseBytes(v)
	case string:
		return parseBytes([]byte(v))
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return gjson.Result{}
		}
		return parseBytes(data)
	}
}

func parseBytes(data []byte) gjson.Result {
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return gjson.Result{}
	}
	return gjson.ParseBytes(data)
}

// Field looks up a direct child of r only when r is a JSON object, so keys
// are never interpreted as gjson path syntax on arrays or scalars.
func Field(r gjson.Result, key string) gjson.Result {
	if !r.IsObject() {
		return gjson.Result{}
	}
	return r.Get(gjson.Escape(key))
}

// String returns the value of a JSON string and "" for any other type.
func String(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}
