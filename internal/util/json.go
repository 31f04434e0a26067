package util

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

func stripDuplicateLeadingBrace(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		rest := strings.TrimSpace(s[1:])
		if strings.HasPrefix(rest, "{") {
			return rest
		}
	}
	return s
}

// UnmarshalFlexible decodes input into out, accepting plain JSON, JSON
// wrapped in a string and JSON that jsonrepair can fix (single quotes,
// unquoted keys, trailing commas).
func UnmarshalFlexible(input []byte, out any) error {
	text := strings.TrimSpace(string(input))
	if text == "" {
		return fmt.Errorf("empty JSON input")
	}
	if err := json.Unmarshal([]byte(text), out); err == nil {
		return nil
	}

	var wrapped string
	if err := json.Unmarshal([]byte(text), &wrapped); err == nil {
		wrapped = strings.TrimSpace(wrapped)
		if err := json.Unmarshal([]byte(wrapped), out); err == nil {
			return nil
		}
		text = wrapped
	}

	text = stripDuplicateLeadingBrace(text)
	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return fmt.Errorf("json repair failed: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("failed to decode repaired JSON: %w", err)
	}
	return nil
}
