package types

// UploadResponse 单文件上传结果.
type UploadResponse struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// UploadMultipleRequest 批量上传的表单参数，文件本身从 multipart 读取.
type UploadMultipleRequest struct {
	Folder string `form:"folder"`
}

// UploadMultipleResponse 批量上传结果.
type UploadMultipleResponse struct {
	Filenames []string `json:"filenames"`
	Folder    string   `json:"folder"`
	Status    string   `json:"status"`
	Message   string   `json:"message"`
}
