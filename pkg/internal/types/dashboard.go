package types

import (
	"github.com/bedrib/mediamover/pkg/internal/model"
)

// DashboardStats 仪表盘总览数据.
type DashboardStats struct {
	TotalUploads     int64              `json:"total_uploads"`
	TotalStorageUsed float64            `json:"total_storage_used"`
	SuccessRate      float64            `json:"success_rate"`
	RecentUploads    []model.FileUpload `json:"recent_uploads"`
	SystemMetrics    model.SystemMetric `json:"system_metrics"`
}

// UploadsQuery 上传记录分页查询参数.
type UploadsQuery struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

// MetricsQuery 指标历史查询参数.
type MetricsQuery struct {
	Hours int `form:"hours"`
}
