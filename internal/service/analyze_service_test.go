package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/rs/zerolog"

	"apexfit/api/internal/ai"
	"apexfit/api/internal/apperr"
	"apexfit/api/internal/models"
	"apexfit/api/internal/storage"
)

const validModelResponse = `{
	"bodyType": "mesomorph",
	"estimatedBodyFatRange": "15-18%",
	"visibleStrengths": ["shoulders"],
	"areasToFocus": ["legs"],
	"postureObservations": "",
	"fitnessLevelEstimate": "intermediate",
	"summary": "Good base.",
	"recommendedSplit": "upper/lower",
	"calorieTarget": 2600,
	"proteinTarget": 170,
	"carbTarget": 300,
	"fatTarget": 80
}`

type fakeModel struct {
	response string
	err      error
	calls    int
}

func (m *fakeModel) GenerateAnalysis(ctx context.Context, imageJPEG []byte, userContext map[string]any) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type fakeStore struct {
	err    error
	writes []storage.WriteInput
}

func (s *fakeStore) Write(ctx context.Context, in storage.WriteInput) (storage.WriteResult, error) {
	if s.err != nil {
		return storage.WriteResult{}, s.err
	}
	s.writes = append(s.writes, in)
	n := len(s.writes)
	return storage.WriteResult{
		OriginalURL: fmt.Sprintf("/api/uploads/users/%s/%s/%d-original.jpg", in.UserID, in.Purpose, n),
		OriginalKey: fmt.Sprintf("users/%s/%s/%d-original.jpg", in.UserID, in.Purpose, n),
		ThumbURL:    fmt.Sprintf("/api/uploads/users/%s/%s/%d-thumb.jpg", in.UserID, in.Purpose, n),
		ThumbKey:    fmt.Sprintf("users/%s/%s/%d-thumb.jpg", in.UserID, in.Purpose, n),
	}, nil
}

type fakeAnalyses struct {
	err     error
	records []models.AnalysisRecord
}

func (a *fakeAnalyses) Create(ctx context.Context, record models.AnalysisRecord) error {
	if a.err != nil {
		return a.err
	}
	a.records = append(a.records, record)
	return nil
}

type fakePhotos struct {
	err    error
	photos []models.ProgressPhoto
}

func (p *fakePhotos) Create(ctx context.Context, photo models.ProgressPhoto) error {
	if p.err != nil {
		return p.err
	}
	p.photos = append(p.photos, photo)
	return nil
}

type fakeTimeline struct {
	invalidated []string
}

func (t *fakeTimeline) Invalidate(ctx context.Context, userID string) {
	t.invalidated = append(t.invalidated, userID)
}

type analyzeFixture struct {
	svc      *AnalyzeService
	model    *fakeModel
	store    *fakeStore
	analyses *fakeAnalyses
	photos   *fakePhotos
	timeline *fakeTimeline
}

func newAnalyzeFixture() *analyzeFixture {
	f := &analyzeFixture{
		model:    &fakeModel{response: validModelResponse},
		store:    &fakeStore{},
		analyses: &fakeAnalyses{},
		photos:   &fakePhotos{},
		timeline: &fakeTimeline{},
	}
	f.svc = NewAnalyzeService(f.model, f.store, f.analyses, f.photos, f.timeline, zerolog.Nop())
	return f
}

func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		for y := 0; y < 30; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 8), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test jpeg: %v", err)
	}
	return buf.Bytes()
}

func testUser() models.User {
	return models.User{ID: "user-1", Email: "a@b.c", Role: models.UserRoleUser, Status: models.UserStatusActive}
}

func TestAnalyzeWithoutSavePersistsNothing(t *testing.T) {
	t.Parallel()

	f := newAnalyzeFixture()

	output, err := f.svc.Analyze(context.Background(), AnalyzeInput{
		User:  testUser(),
		Image: testJPEG(t),
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if output.Result.BodyType != "mesomorph" {
		t.Errorf("BodyType = %q, want mesomorph", output.Result.BodyType)
	}
	if output.AnalysisID != nil || output.PhotoURL != nil || output.ThumbURL != nil {
		t.Error("locators set without save opt-in, want all nil")
	}
	if len(f.store.writes) != 0 || len(f.analyses.records) != 0 || len(f.photos.photos) != 0 {
		t.Error("persistence touched without save opt-in")
	}
}

func TestAnalyzeWithSaveLinksRecords(t *testing.T) {
	t.Parallel()

	f := newAnalyzeFixture()
	user := testUser()

	output, err := f.svc.Analyze(context.Background(), AnalyzeInput{
		User:           user,
		Image:          testJPEG(t),
		SaveToProgress: true,
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if output.AnalysisID == nil || output.PhotoURL == nil || output.ThumbURL == nil {
		t.Fatal("locators missing after save")
	}

	if len(f.store.writes) != 1 || f.store.writes[0].Purpose != storage.PurposeAnalysis {
		t.Errorf("store writes = %+v, want one write under the analysis purpose", f.store.writes)
	}

	if len(f.analyses.records) != 1 {
		t.Fatalf("analysis records = %d, want 1", len(f.analyses.records))
	}
	record := f.analyses.records[0]
	if record.UserID != user.ID {
		t.Errorf("record.UserID = %q, want %q", record.UserID, user.ID)
	}
	if record.ID != *output.AnalysisID {
		t.Errorf("record.ID = %q, want %q", record.ID, *output.AnalysisID)
	}

	if len(f.photos.photos) != 1 {
		t.Fatalf("photos = %d, want 1", len(f.photos.photos))
	}
	photo := f.photos.photos[0]
	if photo.UserID != user.ID {
		t.Errorf("photo.UserID = %q, want %q", photo.UserID, user.ID)
	}
	if photo.AnalysisID == nil || *photo.AnalysisID != record.ID {
		t.Error("photo not linked to the analysis record")
	}
	if photo.TakenAt.IsZero() {
		t.Error("photo.TakenAt is zero")
	}

	if len(f.timeline.invalidated) != 1 || f.timeline.invalidated[0] != user.ID {
		t.Errorf("timeline invalidations = %v, want [%s]", f.timeline.invalidated, user.ID)
	}
}

func TestAnalyzeEmptyImage(t *testing.T) {
	t.Parallel()

	f := newAnalyzeFixture()

	_, err := f.svc.Analyze(context.Background(), AnalyzeInput{User: testUser()})
	if code := apperr.From(err).Code; code != apperr.CodeBadRequest {
		t.Fatalf("code = %q, want %q", code, apperr.CodeBadRequest)
	}
	if f.model.calls != 0 {
		t.Error("model called for empty image")
	}
}

func TestAnalyzeUnsupportedImage(t *testing.T) {
	t.Parallel()

	f := newAnalyzeFixture()

	_, err := f.svc.Analyze(context.Background(), AnalyzeInput{
		User:  testUser(),
		Image: []byte("definitely not an image"),
	})
	if code := apperr.From(err).Code; code != apperr.CodeUnsupportedImage {
		t.Fatalf("code = %q, want %q", code, apperr.CodeUnsupportedImage)
	}
	if f.model.calls != 0 {
		t.Error("model called for undecodable image")
	}
}

func TestAnalyzeProseResponseSavesNothing(t *testing.T) {
	t.Parallel()

	f := newAnalyzeFixture()
	f.model.response = "I cannot analyze this photo."

	_, err := f.svc.Analyze(context.Background(), AnalyzeInput{
		User:           testUser(),
		Image:          testJPEG(t),
		SaveToProgress: true,
	})
	if code := apperr.From(err).Code; code != apperr.CodeMalformedAnalysis {
		t.Fatalf("code = %q, want %q", code, apperr.CodeMalformedAnalysis)
	}
	if len(f.store.writes) != 0 || len(f.analyses.records) != 0 || len(f.photos.photos) != 0 {
		t.Error("persistence touched for malformed response")
	}
}

func TestAnalyzeStorageUnavailable(t *testing.T) {
	t.Parallel()

	f := newAnalyzeFixture()
	f.store.err = fmt.Errorf("%w: disabled", storage.ErrUnavailable)

	_, err := f.svc.Analyze(context.Background(), AnalyzeInput{
		User:           testUser(),
		Image:          testJPEG(t),
		SaveToProgress: true,
	})
	if code := apperr.From(err).Code; code != apperr.CodeStorageUnavailable {
		t.Fatalf("code = %q, want %q", code, apperr.CodeStorageUnavailable)
	}
	if len(f.analyses.records) != 0 || len(f.photos.photos) != 0 {
		t.Error("records created although storage failed")
	}
}

func TestAnalyzeModelErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want apperr.Code
	}{
		{"rejected", fmt.Errorf("auth: %w", ai.ErrModelRejected), apperr.CodeModelRejected},
		{"unavailable", fmt.Errorf("dial: %w", ai.ErrModelUnavailable), apperr.CodeModelUnavailable},
		{"other", errors.New("boom"), apperr.CodeServerError},
	}

	for _, tc := range cases {
		f := newAnalyzeFixture()
		f.model.err = tc.err

		_, err := f.svc.Analyze(context.Background(), AnalyzeInput{
			User:  testUser(),
			Image: testJPEG(t),
		})
		if code := apperr.From(err).Code; code != tc.want {
			t.Errorf("%s: code = %q, want %q", tc.name, code, tc.want)
		}
	}
}

func TestUploadPhotoStandalone(t *testing.T) {
	t.Parallel()

	f := newAnalyzeFixture()
	weight := 82.5
	notes := "morning, fasted"

	output, err := f.svc.UploadPhoto(context.Background(), UploadPhotoInput{
		User:     testUser(),
		Image:    testJPEG(t),
		WeightKg: &weight,
		Notes:    &notes,
	})
	if err != nil {
		t.Fatalf("UploadPhoto() error = %v", err)
	}

	if output.Photo.AnalysisID != nil {
		t.Error("standalone photo got an analysis link")
	}
	if len(f.store.writes) != 1 || f.store.writes[0].Purpose != storage.PurposeProgress {
		t.Errorf("store writes = %+v, want one write under the progress purpose", f.store.writes)
	}
	if output.Photo.WeightKg == nil || *output.Photo.WeightKg != weight {
		t.Error("weight not carried through")
	}
	if f.model.calls != 0 {
		t.Error("model called for a plain photo upload")
	}
	if len(f.timeline.invalidated) != 1 {
		t.Errorf("timeline invalidations = %d, want 1", len(f.timeline.invalidated))
	}
}
