package handle

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/bedrib/mediamover/pkg/internal/service"
	"github.com/bedrib/mediamover/pkg/internal/types"
	"github.com/bedrib/mediamover/pkg/log"
	"github.com/bedrib/mediamover/pkg/middleware"
)

// ListFiles 列出指定路径下的文件与目录.
//
//	@Summary	列出文件
//	@Produce	json
//	@Param		path	query		string	false	"要列出的路径"	default(/)
//	@Success	200		{array}		types.FileItem
//	@Failure	400		{object}	map[string]string
//	@Router		/dashboard/files [get]
func ListFiles(c *gin.Context) {
	l := log.Logger()

	listPath := c.DefaultQuery("path", "/")

	svc := service.NewFileService(c.Request.Context())

	items, err := svc.List(c.Request.Context(), listPath)
	if err != nil {
		writeFileError(c, l, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// DownloadFile 下载远端文件.
// 文件先经由本地暂存目录中转，响应写出后清理.
func DownloadFile(c *gin.Context) {
	l := log.Logger()

	filePath := c.Query("path")
	if filePath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	accessedBy := ""
	if user := middleware.GetCurrentUser(c); user != nil {
		accessedBy = user.Username
	}

	svc := service.NewFileService(c.Request.Context())

	localPath, cleanup, err := svc.Download(c.Request.Context(), filePath, accessedBy)
	if err != nil {
		writeFileError(c, l, err)
		return
	}
	defer cleanup()

	c.FileAttachment(localPath, path.Base(filePath))
}

// DeleteFile 删除远端文件或目录.
func DeleteFile(c *gin.Context) {
	l := log.Logger()

	filePath := c.Query("path")
	if filePath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	msg, err := svc.Delete(c.Request.Context(), filePath)
	if err != nil {
		writeFileError(c, l, err)
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: msg})
}

// CreateDirectory 在远端创建目录.
func CreateDirectory(c *gin.Context) {
	l := log.Logger()

	dirPath := c.Query("path")
	if dirPath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	if err := svc.Mkdir(c.Request.Context(), dirPath); err != nil {
		writeFileError(c, l, err)
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: "Directory created successfully"})
}

// MoveFile 移动或重命名远端文件/目录.
func MoveFile(c *gin.Context) {
	l := log.Logger()

	source := c.Query("source")
	destination := c.Query("destination")

	if source == "" || destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source and destination are required"})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	if err := svc.Move(c.Request.Context(), source, destination); err != nil {
		writeFileError(c, l, err)
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: "File moved successfully"})
}
