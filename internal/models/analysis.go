package models

import "time"

// AnalysisRecord is a persisted model analysis bound to one owner.
// Rows are insert-only; nothing mutates an analysis after creation.
type AnalysisRecord struct {
	ID                   string
	UserID               string
	PhotoURL             string
	PhotoKey             string
	BodyType             string
	BodyFatRange         string
	Strengths            []string
	FocusAreas           []string
	PostureNotes         string
	FitnessLevelEstimate string
	Summary              string
	RecommendedSplit     string
	CalorieTarget        float64
	ProteinTarget        float64
	CarbTarget           float64
	FatTarget            float64
	RawJSON              []byte
	CreatedAt            time.Time
}

// ProgressPhoto references the stored derivatives of one timeline entry.
// AnalysisID is set only when the photo was saved from an analysis; it
// always points at a record owned by the same user.
type ProgressPhoto struct {
	ID           string
	UserID       string
	PhotoURL     string
	PhotoKey     string
	ThumbnailURL string
	ThumbnailKey string
	AnalysisID   *string
	WeightKg     *float64
	Notes        *string
	TakenAt      time.Time
	CreatedAt    time.Time
}
