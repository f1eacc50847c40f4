package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bedrib/mediamover/pkg/configs"
	nlog "github.com/bedrib/mediamover/pkg/log"
)

// stagingDir 在配置的暂存目录下创建一个唯一子目录.
// 子目录按请求隔离，并发上传/下载互不干扰.
func stagingDir() (string, func(), error) {
	base := configs.GetConfig().Rclone.StagingDir

	dir := filepath.Join(base, uuid.NewString())
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", nil, fmt.Errorf("create staging dir: %w", err)
	}

	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			nlog.Logger().Warn().Err(err).Str("dir", dir).Msg("remove staging dir failed")
		}
	}

	return dir, cleanup, nil
}

// saveMultipartFile 把 multipart 文件落到暂存目录，返回落盘路径.
func saveMultipartFile(fh *multipart.FileHeader, dir string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file %s: %w", fh.Filename, err)
	}
	defer func() { _ = src.Close() }()

	dst := filepath.Join(dir, filepath.Base(fh.Filename))

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create staging file %s: %w", dst, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("write staging file %s: %w", dst, err)
	}

	return dst, nil
}

// stageKeepFile 创建一个空的 .keep 占位文件.
func stageKeepFile() (string, func(), error) {
	dir, cleanup, err := stagingDir()
	if err != nil {
		return "", nil, err
	}

	keep := filepath.Join(dir, ".keep")

	f, err := os.Create(keep)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("create keep file: %w", err)
	}

	_ = f.Close()

	return keep, cleanup, nil
}

// stageDownload 把远端文件下载到暂存子目录.
func (fs *FileService) stageDownload(rel string) (string, func(), error) {
	dir, cleanup, err := stagingDir()
	if err != nil {
		return "", nil, err
	}

	if err := fs.rcloneClient.Download(rel, dir); err != nil {
		cleanup()
		return "", nil, err
	}

	return filepath.Join(dir, filepath.Base(rel)), cleanup, nil
}
