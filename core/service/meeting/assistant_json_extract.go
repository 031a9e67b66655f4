package meeting

import (
	"errors"
	"strings"

	"github.com/goccy/go-json"
	"github.com/kaptinlin/jsonrepair"
)

// meetingHint is the shape the language model is asked to emit. Pointer
// fields distinguish "absent" from zero values so text parsing can take
// over when the model omits a time.
type meetingHint struct {
	Summary   string   `json:"summary"`
	Attendees []string `json:"attendees"`
	Hour      *int     `json:"hour"`
	Minute    *int     `json:"minute"`
	AmPm      string   `json:"ampm"`
}

var errNoJSONObject = errors.New("no JSON object in model output")

// extractJSONObject returns the first balanced {...} region of raw, with any
// markdown code fences stripped first. Brace matching ignores braces inside
// string literals.
func extractJSONObject(raw string) (string, error) {
	s := stripFences(raw)

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", errNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	// Unbalanced output is common when the model is cut off mid-object;
	// hand the fragment to the repair pass.
	return s[start:], nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// decodeHint parses model output into a meetingHint, repairing malformed
// JSON when a strict decode fails.
func decodeHint(raw string) (*meetingHint, error) {
	obj, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var hint meetingHint
	if err := json.Unmarshal([]byte(obj), &hint); err == nil {
		return &hint, nil
	}

	repaired, err := jsonrepair.JSONRepair(obj)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(repaired), &hint); err != nil {
		return nil, err
	}
	return &hint, nil
}
