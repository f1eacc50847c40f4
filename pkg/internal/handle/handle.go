// Package handle 提供 HTTP 请求处理器的实现.
package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/bedrib/mediamover/pkg/internal/fspath"
	"github.com/bedrib/mediamover/pkg/internal/storage/rclone"
)

// writeFileError 把文件操作错误映射为 HTTP 响应.
// 路径校验失败是客户端错误；rclone 子进程失败把 stderr 原样作为 500 详情返回.
func writeFileError(c *gin.Context, l *zerolog.Logger, err error) {
	if errors.Is(err, fspath.ErrUnsafe) {
		l.Warn().Err(err).Msg("rejected unsafe path")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid path"})

		return
	}

	var cmdErr *rclone.CommandError
	if errors.As(err, &cmdErr) {
		l.Error().Str("verb", cmdErr.Verb).Int("exit_code", cmdErr.ExitCode).Msg("rclone command failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": cmdErr.Stderr})

		return
	}

	l.Error().Err(err).Msg("file operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
