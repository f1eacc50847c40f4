package types

// 文件条目类型.
const (
	ItemTypeFile   = "file"
	ItemTypeFolder = "folder"
)

// FileItem 列表接口返回的单个条目，按请求即时构造，不落库.
type FileItem struct {
	ID       string `json:"id"`       // 由请求路径和条目路径拼接而成
	Name     string `json:"name"`     // 显示名
	Type     string `json:"type"`     // file 或 folder
	Size     int64  `json:"size"`     // 字节
	Modified string `json:"modified"` // ISO-8601 时间串，来自远端
	Path     string `json:"path"`     // 规范化后的完整路径
}

// MessageResponse 通用操作结果.
type MessageResponse struct {
	Message string `json:"message"`
}
