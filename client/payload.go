package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// parsePayload decodes body as JSON, falling back to the raw text.
func parsePayload(body []byte) any {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body)
	}
	return v
}

// formatPayload renders a payload for an error message: objects, arrays and
// null as 2-space indented JSON, strings verbatim, other scalars as JSON literals.
func formatPayload(payload any) string {
	switch v := payload.(type) {
	case string:
		return v
	case map[string]any, []any, nil:
		return encodeJSON(v, "  ")
	default:
		return encodeJSON(v, "")
	}
}

func encodeJSON(v any, indent string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
