// Package router 管理路由配置，将路径和处理器绑定到 gin 引擎.
package router

import (
	"time"

	"github.com/gin-gonic/gin"

	appcache "github.com/bedrib/mediamover/pkg/cache"
	"github.com/bedrib/mediamover/pkg/configs"
	"github.com/bedrib/mediamover/pkg/internal/handle"
	"github.com/bedrib/mediamover/pkg/middleware"
)

// listingCacheTTL 文件列表响应缓存时长.
// 列表由远端即时构造，短缓存换掉高频轮询的子进程开销.
const listingCacheTTL = 10 * time.Second

// Register 绑定全部业务路由.
//
// 公开路由：
//
//	GET  /health           -> 健康检查
//	POST /token            -> 登录签发令牌
//	POST /upload/          -> 单文件上传
//
// 认证路由（Bearer 令牌）：
//
//	POST   /token-check        -> 令牌校验
//	POST   /upload-multiple/   -> 批量上传
//	GET    /dashboard/files    -> 列出文件
//	GET    /dashboard/download -> 下载文件
//	DELETE /dashboard/files    -> 删除文件/目录
//	POST   /dashboard/mkdir    -> 创建目录
//	POST   /dashboard/move     -> 移动/重命名
//
// 管理员路由：
//
//	POST /users/                -> 创建用户
//	GET  /dashboard/stats/      -> 总览统计
//	GET  /dashboard/uploads/    -> 上传记录分页
//	GET  /dashboard/metrics/    -> 指标历史
//	GET  /dashboard/errors/     -> 失败记录
func Register(e *gin.Engine, listingCache *appcache.Cache) *gin.Engine {
	authCfg := configs.GetConfig().Auth

	e.GET("/health", handle.Health)
	RegisterHealthCheckRoute(e.Group(""))

	e.POST("/token", handle.Login)
	e.POST("/upload/", handle.UploadFile)

	auth := e.Group("", middleware.AuthMiddleware(authCfg))
	auth.POST("/token-check", handle.TokenCheck)
	auth.POST("/upload-multiple/", handle.UploadMultipleFiles)

	files := auth.Group("/dashboard")

	if listingCache != nil {
		cacheCfg := middleware.DefaultCacheConfig(listingCache)
		cacheCfg.TTL = listingCacheTTL
		files.GET("/files", middleware.CacheMiddleware(cacheCfg), handle.ListFiles)
	} else {
		files.GET("/files", handle.ListFiles)
	}

	files.GET("/download", handle.DownloadFile)
	files.DELETE("/files", handle.DeleteFile)
	files.POST("/mkdir", handle.CreateDirectory)
	files.POST("/move", handle.MoveFile)

	admin := auth.Group("", middleware.RequireAdmin())
	admin.POST("/users/", handle.CreateUser)
	RegisterSchedulerRoutes(admin)

	dash := admin.Group("/dashboard")
	dash.GET("/stats/", handle.DashboardStats)
	dash.GET("/uploads/", handle.ListUploads)
	dash.GET("/metrics/", handle.SystemMetrics)
	dash.GET("/errors/", handle.FailedUploads)

	return e
}
