package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"apexfit/api/internal/apperr"
	"apexfit/api/internal/media"
	"apexfit/api/internal/models"
	"apexfit/api/internal/service"
)

// maxImageBytes bounds the accepted upload before any decode work.
const maxImageBytes = 10 << 20

type analyzeRequest struct {
	Image          string         `json:"image" binding:"required"`
	SaveToProgress bool           `json:"saveToProgress"`
	UserContext    map[string]any `json:"userContext"`
}

type analyzeResponse struct {
	Analysis   any     `json:"analysis"`
	AnalysisID *string `json:"analysisId"`
	PhotoURL   *string `json:"photoUrl"`
	ThumbURL   *string `json:"thumbUrl"`
}

func (h HandlerSet) Analyze(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		h.fail(c, apperr.New(apperr.CodeUnauthorized, "Unauthorized."))
		return
	}

	image, save, userContext, err := h.readAnalyzeInput(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	output, err := h.analyzeService.Analyze(c.Request.Context(), service.AnalyzeInput{
		User:           user,
		Image:          image,
		UserContext:    mergeProfileContext(user, userContext),
		SaveToProgress: save,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, analyzeResponse{
		Analysis:   output.Result,
		AnalysisID: output.AnalysisID,
		PhotoURL:   output.PhotoURL,
		ThumbURL:   output.ThumbURL,
	})
}

// readAnalyzeInput accepts either a JSON body with a base64 or data-URL
// image, or a multipart form with the raw file under "image".
func (h HandlerSet) readAnalyzeInput(c *gin.Context) ([]byte, bool, map[string]any, error) {
	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, err := c.FormFile("image")
		if err != nil {
			file, err = c.FormFile("file")
		}
		if err != nil {
			return nil, false, nil, apperr.Wrap(apperr.CodeBadRequest, "Missing image file.", err)
		}
		image, err := readFormFile(file)
		if err != nil {
			return nil, false, nil, err
		}

		save, _ := strconv.ParseBool(c.PostForm("saveToProgress"))

		var userContext map[string]any
		if raw := c.PostForm("userContext"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &userContext); err != nil {
				return nil, false, nil, apperr.Wrap(apperr.CodeBadRequest, "Invalid userContext payload.", err)
			}
		}
		return image, save, userContext, nil
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, false, nil, apperr.Wrap(apperr.CodeBadRequest, "Invalid analyze payload.", err)
	}
	if len(req.Image) > maxImageBytes*4/3+512 {
		return nil, false, nil, apperr.New(apperr.CodeBadRequest, "Image too large. Maximum size is 10 MB.")
	}

	image, err := media.DecodeInput(req.Image)
	if err != nil {
		return nil, false, nil, apperr.Wrap(apperr.CodeBadRequest, "Image must be base64 or a data URL.", err)
	}
	if len(image) > maxImageBytes {
		return nil, false, nil, apperr.New(apperr.CodeBadRequest, "Image too large. Maximum size is 10 MB.")
	}
	return image, req.SaveToProgress, req.UserContext, nil
}

func readFormFile(file *multipart.FileHeader) ([]byte, error) {
	if file.Size > maxImageBytes {
		return nil, apperr.New(apperr.CodeBadRequest, "Image too large. Maximum size is 10 MB.")
	}
	src, err := file.Open()
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeBadRequest, "Could not read image file.", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImageBytes+1))
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeBadRequest, "Could not read image file.", err)
	}
	if len(data) > maxImageBytes {
		return nil, apperr.New(apperr.CodeBadRequest, "Image too large. Maximum size is 10 MB.")
	}
	return data, nil
}

// mergeProfileContext seeds the prompt context from the stored profile,
// then lets request-supplied keys override it.
func mergeProfileContext(user models.User, overrides map[string]any) map[string]any {
	merged := map[string]any{}

	if user.Age != nil {
		merged["age"] = *user.Age
	}
	if user.Sex != nil {
		merged["sex"] = *user.Sex
	}
	if user.HeightCm != nil {
		merged["heightCm"] = *user.HeightCm
	}
	if user.WeightKg != nil {
		merged["weightKg"] = *user.WeightKg
	}
	if user.Goal != nil {
		merged["goal"] = *user.Goal
	}
	if user.FitnessLevel != nil {
		merged["fitnessLevel"] = *user.FitnessLevel
	}
	if user.Equipment != nil {
		merged["equipment"] = *user.Equipment
	}
	if user.DaysPerWeek != nil {
		merged["daysPerWeek"] = *user.DaysPerWeek
	}

	for key, value := range overrides {
		merged[key] = value
	}

	if len(merged) == 0 {
		return nil
	}
	return merged
}
