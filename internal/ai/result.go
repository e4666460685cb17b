package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AnalysisResult is the structured contract the model must satisfy.
// Every field is required with the exact primitive type; numeric targets
// are trusted as given, no range checks.
type AnalysisResult struct {
	BodyType              string   `json:"bodyType"`
	EstimatedBodyFatRange string   `json:"estimatedBodyFatRange"`
	VisibleStrengths      []string `json:"visibleStrengths"`
	AreasToFocus          []string `json:"areasToFocus"`
	PostureObservations   string   `json:"postureObservations"`
	FitnessLevelEstimate  string   `json:"fitnessLevelEstimate"`
	Summary               string   `json:"summary"`
	RecommendedSplit      string   `json:"recommendedSplit"`
	CalorieTarget         float64  `json:"calorieTarget"`
	ProteinTarget         float64  `json:"proteinTarget"`
	CarbTarget            float64  `json:"carbTarget"`
	FatTarget             float64  `json:"fatTarget"`
}

// excerptLen bounds the raw-text slice carried in parse errors so a
// misbehaving model can never flood logs with its full payload.
const excerptLen = 200

// MalformedAnalysisError reports a model response that violated the
// contract, with a bounded excerpt for diagnostics.
type MalformedAnalysisError struct {
	Reason  string
	Excerpt string
}

func (e *MalformedAnalysisError) Error() string {
	return fmt.Sprintf("malformed analysis: %s (raw: %q)", e.Reason, e.Excerpt)
}

func malformed(reason string, raw string) error {
	excerpt := raw
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen]
	}
	return &MalformedAnalysisError{Reason: reason, Excerpt: excerpt}
}

// ParseAnalysis strips any surrounding code fence and parses the text
// strictly into AnalysisResult. A missing or mistyped required field
// rejects the whole payload; unknown extra keys are tolerated. There is
// no partial acceptance.
func ParseAnalysis(raw string) (AnalysisResult, error) {
	cleaned := StripCodeFence(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return AnalysisResult{}, malformed("not a JSON object", raw)
	}

	var result AnalysisResult
	checks := []struct {
		key string
		dst any
	}{
		{"bodyType", &result.BodyType},
		{"estimatedBodyFatRange", &result.EstimatedBodyFatRange},
		{"visibleStrengths", &result.VisibleStrengths},
		{"areasToFocus", &result.AreasToFocus},
		{"postureObservations", &result.PostureObservations},
		{"fitnessLevelEstimate", &result.FitnessLevelEstimate},
		{"summary", &result.Summary},
		{"recommendedSplit", &result.RecommendedSplit},
		{"calorieTarget", &result.CalorieTarget},
		{"proteinTarget", &result.ProteinTarget},
		{"carbTarget", &result.CarbTarget},
		{"fatTarget", &result.FatTarget},
	}

	for _, check := range checks {
		value, ok := fields[check.key]
		if !ok {
			return AnalysisResult{}, malformed(fmt.Sprintf("missing field %q", check.key), raw)
		}
		// Unmarshal treats null as a no-op, which would smuggle zero
		// values past the type checks below.
		if string(value) == "null" {
			return AnalysisResult{}, malformed(fmt.Sprintf("field %q is null", check.key), raw)
		}
		if err := json.Unmarshal(value, check.dst); err != nil {
			return AnalysisResult{}, malformed(fmt.Sprintf("field %q has wrong type", check.key), raw)
		}
	}

	return result, nil
}

// StripCodeFence removes one leading ```/```json marker (any casing of
// the language tag) and one trailing ``` marker. Fences elsewhere in
// the text are left alone.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
