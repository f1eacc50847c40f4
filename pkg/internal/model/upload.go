package model

import (
	"time"
)

// 上传记录状态.
const (
	UploadStatusSuccess = "success"
	UploadStatusFailed  = "failed"
	UploadStatusPending = "pending"
)

// FileUpload 批量上传的落库记录，单文件直传不落库.
type FileUpload struct {
	ID           uint      `gorm:"primaryKey"     json:"id"`
	Filename     string    `gorm:"size:512;index" json:"filename"`
	Size         float64   `json:"size"`
	MimeType     string    `gorm:"size:255"       json:"mime_type"`
	UploadPath   string    `gorm:"size:1024"      json:"upload_path"`
	Status       string    `gorm:"size:32;index"  json:"status"`
	ErrorMessage string    `gorm:"size:1024"      json:"error_message,omitempty"`
	UploadedBy   uint      `gorm:"index"          json:"uploaded_by"`
	CreatedAt    time.Time `gorm:"index"          json:"created_at"`
}
