package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"apexfit/api/internal/models"
)

// PhotoReader and AnalysisReader are the timeline's read operations.
type PhotoReader interface {
	ListByUser(ctx context.Context, userID string) ([]models.ProgressPhoto, error)
}

type AnalysisReader interface {
	FindByIDs(ctx context.Context, ids []string) (map[string]models.AnalysisRecord, error)
}

// TimelineEntry is one timeline row: the photo plus a short summary of
// its linked analysis, when one exists.
type TimelineEntry struct {
	ID           string           `json:"id"`
	PhotoURL     string           `json:"photoUrl"`
	ThumbnailURL string           `json:"thumbnailUrl"`
	WeightKg     *float64         `json:"weightKg,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
	TakenAt      time.Time        `json:"takenAt"`
	Analysis     *AnalysisSummary `json:"analysis"`
}

type AnalysisSummary struct {
	ID           string `json:"id"`
	BodyType     string `json:"bodyType"`
	BodyFatRange string `json:"bodyFatRange"`
	Summary      string `json:"summary"`
}

// ProgressService assembles the per-user timeline, newest takenAt
// first, with a short-lived redis cache in front of the two queries.
type ProgressService struct {
	photos   PhotoReader
	analyses AnalysisReader
	cache    *TimelineCache
	log      zerolog.Logger
}

func NewProgressService(photos PhotoReader, analyses AnalysisReader, cache *TimelineCache, log zerolog.Logger) *ProgressService {
	return &ProgressService{
		photos:   photos,
		analyses: analyses,
		cache:    cache,
		log:      log,
	}
}

func (s *ProgressService) Timeline(ctx context.Context, userID string) ([]TimelineEntry, error) {
	if entries, ok := s.cache.Get(ctx, userID); ok {
		return entries, nil
	}

	photos, err := s.photos.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var analysisIDs []string
	for _, photo := range photos {
		if photo.AnalysisID != nil {
			analysisIDs = append(analysisIDs, *photo.AnalysisID)
		}
	}

	records, err := s.analyses.FindByIDs(ctx, analysisIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]TimelineEntry, 0, len(photos))
	for _, photo := range photos {
		entry := TimelineEntry{
			ID:           photo.ID,
			PhotoURL:     photo.PhotoURL,
			ThumbnailURL: photo.ThumbnailURL,
			WeightKg:     photo.WeightKg,
			Notes:        photo.Notes,
			TakenAt:      photo.TakenAt,
		}
		if photo.ThumbnailURL == "" {
			entry.ThumbnailURL = photo.PhotoURL
		}
		if photo.AnalysisID != nil {
			if record, ok := records[*photo.AnalysisID]; ok {
				entry.Analysis = &AnalysisSummary{
					ID:           record.ID,
					BodyType:     record.BodyType,
					BodyFatRange: record.BodyFatRange,
					Summary:      record.Summary,
				}
			}
		}
		entries = append(entries, entry)
	}

	s.cache.Set(ctx, userID, entries)
	return entries, nil
}

const timelineCacheTTL = 5 * time.Minute

// TimelineCache keeps the rendered timeline in redis per user. Cache
// failures degrade to a database read, never to a request error. A nil
// client disables caching entirely (tests, minimal deployments).
type TimelineCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewTimelineCache(client *redis.Client, log zerolog.Logger) *TimelineCache {
	return &TimelineCache{client: client, log: log}
}

func timelineKey(userID string) string {
	return fmt.Sprintf("timeline:%s", userID)
}

func (c *TimelineCache) Get(ctx context.Context, userID string) ([]TimelineEntry, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, timelineKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("timeline cache read failed")
		}
		return nil, false
	}
	var entries []TimelineEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (c *TimelineCache) Set(ctx context.Context, userID string, entries []TimelineEntry) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, timelineKey(userID), data, timelineCacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("timeline cache write failed")
	}
}

func (c *TimelineCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, timelineKey(userID)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("timeline cache invalidate failed")
	}
}
