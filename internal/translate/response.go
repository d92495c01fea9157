package translate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var jsonFenceRegex = regexp.MustCompile("```(?:json)?\\s*")

// strips markdown code fences models like to wrap JSON in
func cleanJSONResponse(s string) string {
	s = jsonFenceRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// fixes invalid JSON escape sequences like \N (subtitle newline) by escaping
// the backslash, preserving the literal sequence in the decoded text
func fixInvalidEscapes(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	i := 0
	for i < len(s) {
		if i < len(s)-1 && s[i] == '\\' {
			switch s[i+1] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
				result.WriteByte(s[i])
				result.WriteByte(s[i+1])
			default:
				result.WriteString("\\\\")
				result.WriteByte(s[i+1])
			}
			i += 2
			continue
		}
		result.WriteByte(s[i])
		i++
	}

	return result.String()
}

// extractResults pulls a translation result array out of model output,
// tolerating leading prose and common wrapper objects.
func extractResults(text string) ([]Result, error) {
	text = fixInvalidEscapes(cleanJSONResponse(text))

	for i := 0; i < len(text); i++ {
		if text[i] != '[' && text[i] != '{' {
			continue
		}

		decoder := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			continue
		}

		if results, ok := tryExtract(raw); ok {
			return results, nil
		}
	}

	return nil, fmt.Errorf("no valid translation JSON found in response")
}

func tryExtract(raw json.RawMessage) ([]Result, bool) {
	var results []Result
	if err := json.Unmarshal(raw, &results); err == nil && len(results) > 0 {
		return results, true
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, false
	}

	for _, key := range []string{"results", "translations", "data", "items"} {
		if field, exists := wrapper[key]; exists {
			var fieldResults []Result
			if err := json.Unmarshal(field, &fieldResults); err == nil && len(fieldResults) > 0 {
				return fieldResults, true
			}
		}
	}

	return nil, false
}

// checks a batch response covers the batch
func checkResultCount(results []Result, expected int) error {
	if len(results) != expected {
		return fmt.Errorf("expected %d results, got %d", expected, len(results))
	}
	return nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
