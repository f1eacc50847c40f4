package model

import (
	"time"
)

// SystemMetric 主机资源快照，由仪表盘查询和定时任务采样写入.
type SystemMetric struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StorageUsed float64   `json:"storage_used"` // 字节
	StorageFree float64   `json:"storage_free"` // 字节
	CPUUsage    float64   `json:"cpu_usage"`    // 百分比
	MemoryUsage float64   `json:"memory_usage"` // 百分比
	CreatedAt   time.Time `gorm:"index"      json:"created_at"`
}
