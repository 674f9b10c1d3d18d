package domain

import (
	"encoding/json"
	"errors"
	"strings"
)

// ExtractJSON pulls the first JSON object out of free-form provider text.
// Providers often wrap JSON in prose or markdown fences; the match is greedy
// from the first '{' to the last '}'.
func ExtractJSON(text string) (map[string]any, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, false
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, false
	}
	return payload, true
}

// scorePayload is the shape the scoring output-format hint asks providers for.
type scorePayload struct {
	OverallScore *float64    `json:"overall_score"`
	Rationale    string      `json:"rationale"`
	Deviations   []Deviation `json:"deviations"`
}

// ParseConsistencyScore parses a provider's scoring payload. A missing or
// non-numeric score, or an empty rationale, is a malformed response: the
// caller fails over to the next adapter rather than hard-failing.
func ParseConsistencyScore(text string) (*ConsistencyScore, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, errors.New("no JSON object in scoring payload")
	}

	var payload scorePayload
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, errors.New("scoring payload is not valid JSON")
	}

	if payload.OverallScore == nil {
		return nil, errors.New("scoring payload is missing a numeric overall_score")
	}
	if strings.TrimSpace(payload.Rationale) == "" {
		return nil, errors.New("scoring payload is missing a rationale")
	}

	score := int(*payload.OverallScore)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &ConsistencyScore{
		Score:      score,
		Rationale:  payload.Rationale,
		Deviations: payload.Deviations,
	}, nil
}
