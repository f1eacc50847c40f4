// Package service 实现业务逻辑（远端文件操作、账户、统计等），不处理 HTTP 细节.
package service

import (
	"context"
	"strings"

	"github.com/bedrib/mediamover/pkg/configs"
	ctxPkg "github.com/bedrib/mediamover/pkg/context"
	"github.com/bedrib/mediamover/pkg/internal/fspath"
	"github.com/bedrib/mediamover/pkg/internal/storage/db"
	"github.com/bedrib/mediamover/pkg/internal/storage/mq"
	"github.com/bedrib/mediamover/pkg/internal/storage/rclone"
	"github.com/bedrib/mediamover/pkg/internal/types"
	nlog "github.com/bedrib/mediamover/pkg/log"
	"github.com/bedrib/mediamover/pkg/queue"
)

// FileService 负责远端文件的列表、传输与整理操作.
type FileService struct {
	rcloneClient *rclone.Client
	dbClient     *db.Client
	mqClient     *mq.Client
}

// NewFileService 从 context 获取依赖实例.
func NewFileService(c context.Context) *FileService {
	rc := ctxPkg.GetRcloneClient(c)
	dbc := ctxPkg.GetDBClient(c)
	mqc := ctxPkg.GetMQClient(c)

	// 依赖缺失属于部署错误，直接终止
	if rc == nil || dbc == nil || dbc.DB == nil || mqc == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	return &FileService{
		rcloneClient: rc,
		dbClient:     dbc,
		mqClient:     mqc,
	}
}

// List 列出远端路径下的文件与目录.
func (fs *FileService) List(ctx context.Context, rawPath string) ([]types.FileItem, error) {
	rel, err := fspath.Clean(rawPath)
	if err != nil {
		return nil, err
	}

	entries, err := fs.rcloneClient.List(rel)
	if err != nil {
		return nil, err
	}

	items := make([]types.FileItem, 0, len(entries))

	for _, entry := range entries {
		itemType := types.ItemTypeFile
		if entry.IsDir {
			itemType = types.ItemTypeFolder
		}

		// 条目的 id 与 path 都由请求路径和远端条目路径拼接而成
		full := joinItemPath(rawPath, entry.Path)

		items = append(items, types.FileItem{
			ID:       full,
			Name:     entry.Name,
			Type:     itemType,
			Size:     entry.Size,
			Modified: entry.ModTime,
			Path:     full,
		})
	}

	return items, nil
}

// Download 把远端文件拉取到本地临时目录，返回本地文件路径和清理函数.
// 调用方负责在响应写出后执行 cleanup.
func (fs *FileService) Download(ctx context.Context, rawPath, accessedBy string) (string, func(), error) {
	rel, err := fspath.Clean(rawPath)
	if err != nil {
		return "", nil, err
	}

	localPath, cleanup, err := fs.stageDownload(rel)
	if err != nil {
		return "", nil, err
	}

	fs.publishFileAccessed(rel, accessedBy)

	return localPath, cleanup, nil
}

// Delete 删除远端文件或目录，返回操作结果消息.
// 先用目录探测决定用 purge 还是 delete；探测和删除之间远端可能变化，按原样接受.
func (fs *FileService) Delete(ctx context.Context, rawPath string) (string, error) {
	rel, err := fspath.Clean(rawPath)
	if err != nil {
		return "", err
	}

	if fs.rcloneClient.IsDir(rel) {
		if err := fs.rcloneClient.Purge(rel); err != nil {
			return "", err
		}

		fs.publishFileDeleted(rel, true)

		return "Folder deleted successfully", nil
	}

	if err := fs.rcloneClient.Delete(rel); err != nil {
		return "", err
	}

	fs.publishFileDeleted(rel, false)

	return "File deleted successfully", nil
}

// Mkdir 在远端创建目录，通过上传 .keep 占位文件实现.
// 对象存储没有真正的空目录，占位文件保留不删.
func (fs *FileService) Mkdir(ctx context.Context, rawPath string) error {
	rel, err := fspath.Clean(rawPath)
	if err != nil {
		return err
	}

	keep, cleanup, err := stageKeepFile()
	if err != nil {
		return err
	}
	defer cleanup()

	return fs.rcloneClient.CopyTo(keep, rel+"/.keep")
}

// Move 移动或重命名远端文件/目录.
func (fs *FileService) Move(ctx context.Context, rawSource, rawDestination string) error {
	src, err := fspath.Clean(rawSource)
	if err != nil {
		return err
	}

	dst, err := fspath.Clean(rawDestination)
	if err != nil {
		return err
	}

	if err := fs.rcloneClient.MoveTo(src, dst); err != nil {
		return err
	}

	fs.publishFileMoved(src, dst)

	return nil
}

// joinItemPath 拼接规则：请求路径 + "/" + 条目路径，再折叠双斜杠.
func joinItemPath(requestPath, entryPath string) string {
	return strings.ReplaceAll(requestPath+"/"+entryPath, "//", "/")
}

func (fs *FileService) remoteName() string {
	return fs.rcloneClient.GetConfig().Remote
}

func (fs *FileService) eventsConfig() configs.EventsConfig {
	return configs.GetConfig().Events
}

// publishFileAccessed 下载完成后发布访问事件，发布失败只记日志.
func (fs *FileService) publishFileAccessed(rel, accessedBy string) {
	cfg := fs.eventsConfig()
	if !cfg.Enabled || !cfg.File.Accessed {
		return
	}

	pub := fs.mqClient.Publisher()
	if pub == nil {
		return
	}

	err := queue.PublishFileAccessed(pub, queue.FileAccessedPayload{
		File:       queue.FileRef{Remote: fs.remoteName(), Path: rel},
		AccessedBy: accessedBy,
	})
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("path", rel).Msg("publish file accessed event failed")
	}
}

func (fs *FileService) publishFileDeleted(rel string, recursive bool) {
	cfg := fs.eventsConfig()
	if !cfg.Enabled || !cfg.File.Deleted {
		return
	}

	pub := fs.mqClient.Publisher()
	if pub == nil {
		return
	}

	err := queue.PublishFileDeleted(pub, queue.FileDeletedPayload{
		File:      queue.FileRef{Remote: fs.remoteName(), Path: rel, IsDir: recursive},
		Recursive: recursive,
	})
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("path", rel).Msg("publish file deleted event failed")
	}
}

func (fs *FileService) publishFileMoved(src, dst string) {
	cfg := fs.eventsConfig()
	if !cfg.Enabled || !cfg.File.Moved {
		return
	}

	pub := fs.mqClient.Publisher()
	if pub == nil {
		return
	}

	err := queue.PublishFileMoved(pub, queue.FileMovedPayload{
		Source:      queue.FileRef{Remote: fs.remoteName(), Path: src},
		Destination: queue.FileRef{Remote: fs.remoteName(), Path: dst},
	})
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("source", src).Str("destination", dst).Msg("publish file moved event failed")
	}
}

func (fs *FileService) publishFileUploaded(rel, uploadedBy, fileName string, size int64) {
	cfg := fs.eventsConfig()
	if !cfg.Enabled || !cfg.File.Uploaded {
		return
	}

	pub := fs.mqClient.Publisher()
	if pub == nil {
		return
	}

	err := queue.PublishFileUploaded(pub, queue.FileUploadedPayload{
		File:       queue.FileRef{Remote: fs.remoteName(), Path: rel, Size: size},
		UploadedBy: uploadedBy,
		FileName:   fileName,
	})
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("path", rel).Msg("publish file uploaded event failed")
	}
}
