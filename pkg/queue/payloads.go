package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 文件存储领域 --------------------------

// FileRef 标识远端存储中的一个文件或目录.
type FileRef struct {
	Remote string `json:"remote"`         // rclone 远端目标，如 GCS:media_mover_test
	Path   string `json:"path"`           // 相对远端根的规范化路径
	Size   int64  `json:"size,omitempty"` // 字节，目录为 0
	IsDir  bool   `json:"is_dir,omitempty"`
}

// FileUploadedPayload 文件已写入远端存储.
type FileUploadedPayload struct {
	File FileRef `json:"file"`
	// Optional 业务上下文，如上传用户、原始文件名等.
	UploadedBy string `json:"uploaded_by,omitempty"`
	FileName   string `json:"file_name,omitempty"`
}

// FileDeletedPayload 文件或目录被删除.
type FileDeletedPayload struct {
	File FileRef `json:"file"`
	// Recursive 表示本次删除使用了目录递归语义（purge）.
	Recursive bool `json:"recursive,omitempty"`
}

// FileMovedPayload 远端路径变更.
type FileMovedPayload struct {
	Source      FileRef `json:"source"`
	Destination FileRef `json:"destination"`
}

// FileAccessedPayload 文件被下载.
type FileAccessedPayload struct {
	File       FileRef `json:"file"`
	AccessedBy string  `json:"accessed_by,omitempty"`
}

// -------------------------- 指标领域 --------------------------

// MetricSampledPayload 一次系统资源采样已落库.
type MetricSampledPayload struct {
	StorageUsed float64 `json:"storage_used"` // 字节
	StorageFree float64 `json:"storage_free"` // 字节
	CPUUsage    float64 `json:"cpu_usage"`    // 百分比
	MemoryUsage float64 `json:"memory_usage"` // 百分比
}
