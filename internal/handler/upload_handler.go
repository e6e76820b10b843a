package handler

import (
	"errors"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/recipeshare/internal/service"
	"github.com/recipeshare/internal/storage"
)

const uploadURLPrefix = "/uploads"

func journalImageURL(filename string) string {
	return path.Join(uploadURLPrefix, service.JournalImageFolder, filename)
}

// ListJournalImages 返回已上传的日志图片文件名
func (a *API) ListJournalImages(c *gin.Context) {
	names, err := a.journal.ImageFilenames(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_urls": names})
}

// ServeUpload 按 folder/filename 返回上传文件的原始内容
func (a *API) ServeUpload(c *gin.Context) {
	filePath, err := a.uploads.Path(c.Param("folder"), c.Param("filename"))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrInvalidName):
			respondError(c, http.StatusNotFound, msgFileNotFound)
		default:
			handleServiceError(c, err)
		}
		return
	}
	c.File(filePath)
}
