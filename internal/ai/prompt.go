package ai

import (
	"encoding/json"
	"fmt"
)

// systemPrompt pins the model to the exact AnalysisResult contract and
// the tone constraint. Changing a field name here is a breaking change
// for ParseAnalysis and must move in lockstep.
const systemPrompt = `You are an expert personal trainer and sports nutritionist. Analyze the photo and user context. Return ONLY valid JSON with no markdown or code fences, matching this exact structure. Be specific, encouraging — never use shame or negative language.

{
  "bodyType": "string (e.g. Mesomorph / Ectomorph / Endomorph or combo)",
  "estimatedBodyFatRange": "string (e.g. 15–20%)",
  "visibleStrengths": ["string", "string"],
  "areasToFocus": ["string", "string"],
  "postureObservations": "string or empty string",
  "fitnessLevelEstimate": "string (Beginner/Intermediate/Advanced)",
  "summary": "2–3 sentence personalized encouraging summary",
  "recommendedSplit": "string (e.g. Push/Pull/Legs)",
  "calorieTarget": number,
  "proteinTarget": number,
  "carbTarget": number,
  "fatTarget": number
}`

const noContextPlaceholder = "No additional context provided."

// userTurn renders the free-form user context for the prompt. Absent
// context becomes an explicit placeholder so the turn never reads empty.
func userTurn(userContext map[string]any) string {
	contextStr := noContextPlaceholder
	if len(userContext) > 0 {
		if data, err := json.MarshalIndent(userContext, "", "  "); err == nil {
			contextStr = string(data)
		}
	}
	return fmt.Sprintf("User context:\n%s\n\nAnalyze the attached photo and return the JSON object only.", contextStr)
}
