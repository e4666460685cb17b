package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"apexfit/api/internal/apperr"
	"apexfit/api/internal/media"
	"apexfit/api/internal/service"
)

type uploadPhotoRequest struct {
	Image    string   `json:"image" binding:"required"`
	WeightKg *float64 `json:"weightKg"`
	Notes    *string  `json:"notes"`
}

// UploadPhoto adds a standalone timeline photo with no analysis link.
func (h HandlerSet) UploadPhoto(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		h.fail(c, apperr.New(apperr.CodeUnauthorized, "Unauthorized."))
		return
	}

	var (
		image    []byte
		weightKg *float64
		notes    *string
	)

	if strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
		file, err := c.FormFile("image")
		if err != nil {
			h.fail(c, apperr.Wrap(apperr.CodeBadRequest, "Missing image file.", err))
			return
		}
		image, err = readFormFile(file)
		if err != nil {
			h.fail(c, err)
			return
		}
		if raw := c.PostForm("weightKg"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				h.fail(c, apperr.Wrap(apperr.CodeBadRequest, "weightKg must be a number.", err))
				return
			}
			weightKg = &v
		}
		if raw := c.PostForm("notes"); raw != "" {
			notes = &raw
		}
	} else {
		var req uploadPhotoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.fail(c, apperr.Wrap(apperr.CodeBadRequest, "Invalid photo payload.", err))
			return
		}
		decoded, err := media.DecodeInput(req.Image)
		if err != nil {
			h.fail(c, apperr.Wrap(apperr.CodeBadRequest, "Image must be base64 or a data URL.", err))
			return
		}
		if len(decoded) > maxImageBytes {
			h.fail(c, apperr.New(apperr.CodeBadRequest, "Image too large. Maximum size is 10 MB."))
			return
		}
		image = decoded
		weightKg = req.WeightKg
		notes = req.Notes
	}

	output, err := h.analyzeService.UploadPhoto(c.Request.Context(), service.UploadPhotoInput{
		User:     user,
		Image:    image,
		WeightKg: weightKg,
		Notes:    notes,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"photo": gin.H{
			"id":           output.Photo.ID,
			"photoUrl":     output.Photo.PhotoURL,
			"thumbnailUrl": output.Photo.ThumbnailURL,
			"weightKg":     output.Photo.WeightKg,
			"notes":        output.Photo.Notes,
			"takenAt":      output.Photo.TakenAt,
		},
	})
}

// ProgressTimeline lists the user's photos newest first, each with its
// linked analysis summary when one exists.
func (h HandlerSet) ProgressTimeline(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		h.fail(c, apperr.New(apperr.CodeUnauthorized, "Unauthorized."))
		return
	}

	entries, err := h.progressService.Timeline(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
	})
}
