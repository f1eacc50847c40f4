package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bedrib/mediamover/pkg/internal/service"
	"github.com/bedrib/mediamover/pkg/log"
	"github.com/bedrib/mediamover/pkg/middleware"
)

// UploadFile 上传单个文件到远端根目录.
//
//	@Summary	上传单个文件
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file	formData	file	true	"要上传的文件"
//	@Success	200		{object}	types.UploadResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/upload/ [post]
func UploadFile(c *gin.Context) {
	l := log.Logger()

	fh, err := c.FormFile("file")
	if err != nil {
		l.Warn().Err(err).Msg("missing upload file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})

		return
	}

	svc := service.NewFileService(c.Request.Context())

	res, err := svc.UploadSingle(c.Request.Context(), fh)
	if err != nil {
		writeFileError(c, l, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// UploadMultipleFiles 批量上传文件到指定目录，每个文件写一条上传记录.
func UploadMultipleFiles(c *gin.Context) {
	l := log.Logger()

	user := middleware.GetCurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		l.Warn().Err(err).Msg("invalid multipart form")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "files are required"})
		return
	}

	folder := c.DefaultPostForm("folder", "/")

	svc := service.NewFileService(c.Request.Context())

	res, err := svc.UploadMultiple(c.Request.Context(), user, folder, files)
	if err != nil {
		writeFileError(c, l, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
