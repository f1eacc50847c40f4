package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bedrib/mediamover/pkg/internal/service"
	"github.com/bedrib/mediamover/pkg/internal/types"
	"github.com/bedrib/mediamover/pkg/log"
)

const defaultMetricsHours = 24

// DashboardStats 返回仪表盘总览统计.
//
//	@Summary	仪表盘总览
//	@Produce	json
//	@Success	200	{object}	types.DashboardStats
//	@Router		/dashboard/stats/ [get]
func DashboardStats(c *gin.Context) {
	l := log.Logger()

	svc := service.NewDashboardService(c.Request.Context())

	stats, err := svc.Stats(c.Request.Context())
	if err != nil {
		l.Error().Err(err).Msg("dashboard stats failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListUploads 分页返回上传记录.
func ListUploads(c *gin.Context) {
	l := log.Logger()

	var q types.UploadsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewDashboardService(c.Request.Context())

	uploads, err := svc.Uploads(c.Request.Context(), q.Skip, q.Limit)
	if err != nil {
		l.Error().Err(err).Msg("list uploads failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, uploads)
}

// SystemMetrics 返回最近 N 小时的系统指标历史，默认 24 小时.
func SystemMetrics(c *gin.Context) {
	l := log.Logger()

	var q types.MetricsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if q.Hours <= 0 {
		q.Hours = defaultMetricsHours
	}

	svc := service.NewDashboardService(c.Request.Context())

	metrics, err := svc.MetricsSince(c.Request.Context(), q.Hours)
	if err != nil {
		l.Error().Err(err).Msg("system metrics failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, metrics)
}

// FailedUploads 返回所有失败的上传记录.
func FailedUploads(c *gin.Context) {
	l := log.Logger()

	svc := service.NewDashboardService(c.Request.Context())

	uploads, err := svc.FailedUploads(c.Request.Context())
	if err != nil {
		l.Error().Err(err).Msg("failed uploads query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, uploads)
}
