package handlers

import (
	"github.com/gin-gonic/gin"

	"apexfit/api/internal/apperr"
)

// fail writes the taxonomy error shape: stable code, user-facing
// message, and the wrapped cause only outside production.
func (h HandlerSet) fail(c *gin.Context, err error) {
	appErr := apperr.From(err)

	body := gin.H{
		"error": appErr.Message,
		"code":  appErr.Code,
	}
	if !h.cfg.IsProduction() {
		if detail := appErr.Detail(); detail != "" {
			body["detail"] = detail
		}
	}

	c.JSON(appErr.HTTPStatus(), body)
}
