// Package fspath 负责客户端传入存储路径的校验与规范化.
// 所有发往远端存储的路径都必须先经过本包处理，防止路径穿越.
package fspath

import (
	"errors"
	"path"
	"strings"
)

// ErrUnsafe 表示路径包含越界片段，调用方应返回 400.
var ErrUnsafe = errors.New("path escapes storage root")

// Clean 校验并规范化客户端传入的存储路径.
// 返回的路径不带前导斜杠，根目录返回空字符串.
// 任何包含 ".." 片段的输入都会被拒绝，包括规范化后会抵消的形式.
func Clean(raw string) (string, error) {
	// 反斜杠统一视为分隔符，避免 Windows 风格的绕过
	normalized := strings.ReplaceAll(raw, "\\", "/")

	for _, seg := range strings.Split(normalized, "/") {
		if seg == ".." {
			return "", ErrUnsafe
		}
	}

	cleaned := path.Clean("/" + normalized)
	if cleaned == "/" {
		return "", nil
	}

	return strings.TrimPrefix(cleaned, "/"), nil
}

// Join 把规范化后的相对路径拼接到 rclone 远端目标上.
// rel 必须是 Clean 的返回值.
func Join(remote, rel string) string {
	if rel == "" {
		return remote
	}

	return remote + "/" + rel
}
