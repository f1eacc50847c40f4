package configs

import (
	"strings"

	"github.com/spf13/viper"
)

// RcloneConfig rclone 远端对象存储配置.
type RcloneConfig struct {
	Binary     string   `mapstructure:"binary"      rule:"required"` // rclone 可执行文件
	Remote     string   `mapstructure:"remote"      rule:"required"` // 远端目标，形如 remote:bucket
	Flags      []string `mapstructure:"flags"`                       // 附加到每次调用的全局参数
	StagingDir string   `mapstructure:"staging_dir" rule:"required"` // 上传暂存目录
}

const (
	DefaultRcloneBinary     = "rclone"               // 默认可执行文件名，按 PATH 查找
	DefaultRcloneRemote     = "GCS:media_mover_test" // 默认远端目标
	DefaultRcloneStagingDir = "uploads"              // 默认上传暂存目录
)

// RemoteName 返回远端名（冒号之前的部分）.
func (c *RcloneConfig) RemoteName() string {
	if i := strings.Index(c.Remote, ":"); i >= 0 {
		return c.Remote[:i]
	}

	return c.Remote
}

// setDefaults 设置 rclone 配置的默认值.
func (c *RcloneConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("rclone.binary", DefaultRcloneBinary)
	v.SetDefault("rclone.remote", DefaultRcloneRemote)
	v.SetDefault("rclone.flags", []string{
		"--gcs-bucket-policy-only",
		"--no-traverse",
	})
	v.SetDefault("rclone.staging_dir", DefaultRcloneStagingDir)
}
