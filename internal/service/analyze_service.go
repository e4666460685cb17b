package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"apexfit/api/internal/ai"
	"apexfit/api/internal/apperr"
	"apexfit/api/internal/ids"
	"apexfit/api/internal/media"
	"apexfit/api/internal/models"
	"apexfit/api/internal/storage"
)

// ModelClient is the single-attempt vision model requester.
type ModelClient interface {
	GenerateAnalysis(ctx context.Context, imageJPEG []byte, userContext map[string]any) (string, error)
}

// AnalysisWriter and PhotoWriter are the insert-only persistence
// operations the save path needs.
type AnalysisWriter interface {
	Create(ctx context.Context, record models.AnalysisRecord) error
}

type PhotoWriter interface {
	Create(ctx context.Context, photo models.ProgressPhoto) error
}

// TimelineInvalidator drops a user's cached timeline after a save.
type TimelineInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

// AnalyzeService runs the photo intake pipeline: normalize the upload,
// request the model analysis, validate the response, and on opt-in save
// the photo derivatives plus the linked records.
type AnalyzeService struct {
	model    ModelClient
	store    storage.Store
	analyses AnalysisWriter
	photos   PhotoWriter
	timeline TimelineInvalidator
	log      zerolog.Logger
}

func NewAnalyzeService(
	model ModelClient,
	store storage.Store,
	analyses AnalysisWriter,
	photos PhotoWriter,
	timeline TimelineInvalidator,
	log zerolog.Logger,
) *AnalyzeService {
	return &AnalyzeService{
		model:    model,
		store:    store,
		analyses: analyses,
		photos:   photos,
		timeline: timeline,
		log:      log,
	}
}

type AnalyzeInput struct {
	User           models.User
	Image          []byte
	UserContext    map[string]any
	SaveToProgress bool
}

// AnalyzeOutput merges the model result with the persistence locators.
// The pointer fields stay nil unless the caller opted into saving.
type AnalyzeOutput struct {
	Result     ai.AnalysisResult
	AnalysisID *string
	PhotoURL   *string
	ThumbURL   *string
}

func (s *AnalyzeService) Analyze(ctx context.Context, input AnalyzeInput) (AnalyzeOutput, error) {
	if len(input.Image) == 0 {
		return AnalyzeOutput{}, apperr.New(apperr.CodeBadRequest, "Missing image")
	}

	normalized, err := media.Normalize(input.Image)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			return AnalyzeOutput{}, apperr.Wrap(apperr.CodeUnsupportedImage,
				"That image format is not supported. Please upload a JPEG, PNG, GIF or WebP photo.", err)
		}
		return AnalyzeOutput{}, apperr.Wrap(apperr.CodeServerError, "Analysis failed. Please try again.", err)
	}

	raw, err := s.model.GenerateAnalysis(ctx, normalized, input.UserContext)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrModelRejected):
			return AnalyzeOutput{}, apperr.Wrap(apperr.CodeModelRejected,
				"AI service error. Please check your API key and model configuration.", err)
		case errors.Is(err, ai.ErrModelUnavailable):
			return AnalyzeOutput{}, apperr.Wrap(apperr.CodeModelUnavailable,
				"AI analysis is not available right now. Please try again later.", err)
		default:
			return AnalyzeOutput{}, apperr.Wrap(apperr.CodeServerError, "Analysis failed. Please try again.", err)
		}
	}

	result, err := ai.ParseAnalysis(raw)
	if err != nil {
		var malformed *ai.MalformedAnalysisError
		if errors.As(err, &malformed) {
			s.log.Error().
				Str("user_id", input.User.ID).
				Str("reason", malformed.Reason).
				Str("excerpt", malformed.Excerpt).
				Msg("model returned invalid analysis format")
		}
		return AnalyzeOutput{}, apperr.Wrap(apperr.CodeMalformedAnalysis, "Analysis failed. Please try again.", err)
	}

	output := AnalyzeOutput{Result: result}
	if !input.SaveToProgress {
		return output, nil
	}

	// Persist from the original accepted bytes, not the normalized copy:
	// storage keeps a higher-fidelity derivative than what the model saw.
	saved, err := s.persist(ctx, input.User, input.Image, result, raw)
	if err != nil {
		return AnalyzeOutput{}, err
	}
	output.AnalysisID = &saved.analysisID
	output.PhotoURL = &saved.write.OriginalURL
	output.ThumbURL = &saved.write.ThumbURL
	return output, nil
}

type persistResult struct {
	analysisID string
	write      storage.WriteResult
}

// persist is one logical unit of work: derive, write, then link the
// analysis and photo records. A failure after the derivative write is
// reported as-is; already-written bytes are not rolled back (accepted
// orphan tradeoff, logged for the operator).
func (s *AnalyzeService) persist(
	ctx context.Context,
	user models.User,
	original []byte,
	result ai.AnalysisResult,
	raw string,
) (persistResult, error) {
	derivs, err := media.Derive(ctx, original)
	if err != nil {
		return persistResult{}, apperr.Wrap(apperr.CodeServerError, "Saving the photo failed.", err)
	}

	write, err := s.store.Write(ctx, storage.WriteInput{
		UserID:  user.ID,
		Purpose: storage.PurposeAnalysis,
		Display: derivs.Display,
		Thumb:   derivs.Thumb,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			return persistResult{}, apperr.Wrap(apperr.CodeStorageUnavailable,
				"Photo storage is not available on this deployment. The analysis succeeded but could not be saved.", err)
		}
		return persistResult{}, apperr.Wrap(apperr.CodeServerError, "Saving the photo failed.", err)
	}

	rawJSON, err := json.Marshal(result)
	if err != nil {
		return persistResult{}, apperr.Wrap(apperr.CodeServerError, "Saving the analysis failed.", err)
	}

	record := models.AnalysisRecord{
		ID:                   ids.New(),
		UserID:               user.ID,
		PhotoURL:             write.OriginalURL,
		PhotoKey:             write.OriginalKey,
		BodyType:             result.BodyType,
		BodyFatRange:         result.EstimatedBodyFatRange,
		Strengths:            result.VisibleStrengths,
		FocusAreas:           result.AreasToFocus,
		PostureNotes:         result.PostureObservations,
		FitnessLevelEstimate: result.FitnessLevelEstimate,
		Summary:              result.Summary,
		RecommendedSplit:     result.RecommendedSplit,
		CalorieTarget:        result.CalorieTarget,
		ProteinTarget:        result.ProteinTarget,
		CarbTarget:           result.CarbTarget,
		FatTarget:            result.FatTarget,
		RawJSON:              rawJSON,
	}
	if err := s.analyses.Create(ctx, record); err != nil {
		s.log.Error().Err(err).Str("photo_key", write.OriginalKey).
			Msg("analysis record create failed; derivative files remain unreferenced")
		return persistResult{}, apperr.Wrap(apperr.CodeServerError, "Saving the analysis failed.", err)
	}

	photo := models.ProgressPhoto{
		ID:           ids.New(),
		UserID:       user.ID,
		PhotoURL:     write.OriginalURL,
		PhotoKey:     write.OriginalKey,
		ThumbnailURL: write.ThumbURL,
		ThumbnailKey: write.ThumbKey,
		AnalysisID:   &record.ID,
		TakenAt:      time.Now().UTC(),
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		s.log.Error().Err(err).Str("analysis_id", record.ID).
			Msg("progress photo create failed; analysis record has no timeline entry")
		return persistResult{}, apperr.Wrap(apperr.CodeServerError, "Saving the photo failed.", err)
	}

	if s.timeline != nil {
		s.timeline.Invalidate(ctx, user.ID)
	}

	return persistResult{analysisID: record.ID, write: write}, nil
}

type UploadPhotoInput struct {
	User     models.User
	Image    []byte
	WeightKg *float64
	Notes    *string
}

type UploadPhotoOutput struct {
	Photo models.ProgressPhoto
}

// UploadPhoto saves a photo straight to the timeline without an
// analysis: same derive-and-store path, no record link.
func (s *AnalyzeService) UploadPhoto(ctx context.Context, input UploadPhotoInput) (UploadPhotoOutput, error) {
	if len(input.Image) == 0 {
		return UploadPhotoOutput{}, apperr.New(apperr.CodeBadRequest, "Missing image")
	}

	if _, err := media.Normalize(input.Image); err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			return UploadPhotoOutput{}, apperr.Wrap(apperr.CodeUnsupportedImage,
				"That image format is not supported. Please upload a JPEG, PNG, GIF or WebP photo.", err)
		}
		return UploadPhotoOutput{}, apperr.Wrap(apperr.CodeServerError, "Upload failed.", err)
	}

	derivs, err := media.Derive(ctx, input.Image)
	if err != nil {
		return UploadPhotoOutput{}, apperr.Wrap(apperr.CodeServerError, "Upload failed.", err)
	}

	write, err := s.store.Write(ctx, storage.WriteInput{
		UserID:  input.User.ID,
		Purpose: storage.PurposeProgress,
		Display: derivs.Display,
		Thumb:   derivs.Thumb,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			return UploadPhotoOutput{}, apperr.Wrap(apperr.CodeStorageUnavailable,
				"Photo storage is not available on this deployment.", err)
		}
		return UploadPhotoOutput{}, apperr.Wrap(apperr.CodeServerError, "Upload failed.", err)
	}

	photo := models.ProgressPhoto{
		ID:           ids.New(),
		UserID:       input.User.ID,
		PhotoURL:     write.OriginalURL,
		PhotoKey:     write.OriginalKey,
		ThumbnailURL: write.ThumbURL,
		ThumbnailKey: write.ThumbKey,
		WeightKg:     input.WeightKg,
		Notes:        input.Notes,
		TakenAt:      time.Now().UTC(),
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		return UploadPhotoOutput{}, apperr.Wrap(apperr.CodeServerError, "Upload failed.", err)
	}

	if s.timeline != nil {
		s.timeline.Invalidate(ctx, input.User.ID)
	}

	return UploadPhotoOutput{Photo: photo}, nil
}
