// Package api 把业务路由组装到 gin 引擎上.
package api

import (
	"github.com/gin-gonic/gin"

	appcache "github.com/bedrib/mediamover/pkg/cache"
	"github.com/bedrib/mediamover/pkg/internal/router"
	"github.com/bedrib/mediamover/pkg/internal/storage"
)

// RegisterRoutes 注册全部业务路由.
// KV 可用时为文件列表接口启用响应缓存.
func RegisterRoutes(e *gin.Engine, manager *storage.Manager) *gin.Engine {
	var listingCache *appcache.Cache
	if kv := manager.GetKVClient(); kv != nil {
		listingCache = appcache.NewCache(kv)
	}

	return router.Register(e, listingCache)
}
