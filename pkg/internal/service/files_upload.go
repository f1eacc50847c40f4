package service

import (
	"context"
	"mime/multipart"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bedrib/mediamover/pkg/internal/fspath"
	"github.com/bedrib/mediamover/pkg/internal/model"
	"github.com/bedrib/mediamover/pkg/internal/types"
	nlog "github.com/bedrib/mediamover/pkg/log"
)

// UploadSingle 上传单个文件到远端根目录.
// 先落到本地暂存目录再由 rclone 复制，结束后清理本地文件；不落库.
func (fs *FileService) UploadSingle(ctx context.Context, fh *multipart.FileHeader) (*types.UploadResponse, error) {
	dir, cleanup, err := stagingDir()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	local, err := saveMultipartFile(fh, dir)
	if err != nil {
		return nil, err
	}

	if err := fs.rcloneClient.Upload(local); err != nil {
		return nil, err
	}

	fs.publishFileUploaded(fh.Filename, "", fh.Filename, fh.Size)

	return &types.UploadResponse{
		Filename: fh.Filename,
		Status:   "success",
		Message:  "File uploaded successfully",
	}, nil
}

// UploadMultiple 批量上传文件到指定目录，并为每个文件写入一条上传记录.
// 文件先并发落到同一个暂存子目录，再整目录交给 rclone 复制到目标路径.
func (fs *FileService) UploadMultiple(ctx context.Context, user *model.User,
	folder string, files []*multipart.FileHeader,
) (*types.UploadMultipleResponse, error) {
	rel, err := fspath.Clean(folder)
	if err != nil {
		return nil, err
	}

	dir, cleanup, err := stagingDir()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	g, _ := errgroup.WithContext(ctx)

	for _, fh := range files {
		g.Go(func() error {
			_, err := saveMultipartFile(fh, dir)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	uploadErr := fs.rcloneClient.UploadDir(dir, rel)

	// 无论传输成败都落库，失败记录保留错误详情供仪表盘排查
	fs.recordUploads(user, folder, files, uploadErr)

	if uploadErr != nil {
		return nil, uploadErr
	}

	names := make([]string, 0, len(files))
	for _, fh := range files {
		names = append(names, fh.Filename)

		fs.publishFileUploaded(joinItemPath(folder, fh.Filename), user.Username, fh.Filename, fh.Size)
	}

	return &types.UploadMultipleResponse{
		Filenames: names,
		Folder:    folder,
		Status:    "success",
		Message:   "Files uploaded successfully to " + folder,
	}, nil
}

// recordUploads 为一批文件写入上传记录.
func (fs *FileService) recordUploads(user *model.User, folder string, files []*multipart.FileHeader, uploadErr error) {
	status := model.UploadStatusSuccess
	errMsg := ""

	if uploadErr != nil {
		status = model.UploadStatusFailed
		errMsg = uploadErr.Error()
	}

	records := make([]model.FileUpload, 0, len(files))

	for _, fh := range files {
		records = append(records, model.FileUpload{
			Filename:     fh.Filename,
			Size:         float64(fh.Size),
			MimeType:     fh.Header.Get("Content-Type"),
			UploadPath:   strings.ReplaceAll(folder+"/"+fh.Filename, "//", "/"),
			Status:       status,
			ErrorMessage: errMsg,
			UploadedBy:   user.ID,
		})
	}

	if len(records) == 0 {
		return
	}

	if err := fs.dbClient.DB.Create(&records).Error; err != nil {
		nlog.Logger().Error().Err(err).Int("count", len(records)).Msg("record uploads failed")
	}
}
