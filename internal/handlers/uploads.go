package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"apexfit/api/internal/storage"
)

// ServeUpload streams a locally stored derivative back to its owner.
// The route only exists for the local driver; S3 deployments hand out
// absolute object URLs and never hit this path.
func (h HandlerSet) ServeUpload(c *gin.Context) {
	local, ok := h.store.(*storage.LocalStore)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	path, err := local.Resolve(c.Param("filepath"))
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	c.Header("Content-Type", "image/jpeg")
	c.Header("Cache-Control", "private, max-age=86400")
	c.File(path)
}
