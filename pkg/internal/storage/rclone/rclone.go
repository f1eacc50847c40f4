// Package rclone 通过子进程调用 rclone，是访问远端对象存储的唯一边界.
// 所有远端操作都走固定的动词集合（lsjson、copy、copyto、moveto、delete、purge、lsf、lsd），
// 除远端前缀外不感知任何供应商细节.
package rclone

import (
	"bytes"
	"errors"
	"os/exec"

	"github.com/bytedance/sonic"

	"github.com/bedrib/mediamover/pkg/configs"
	"github.com/bedrib/mediamover/pkg/internal/fspath"
	nlog "github.com/bedrib/mediamover/pkg/log"
)

// Entry lsjson 输出的一条记录.
type Entry struct {
	Path    string `json:"Path"`
	Name    string `json:"Name"`
	Size    int64  `json:"Size"`
	ModTime string `json:"ModTime"`
	IsDir   bool   `json:"IsDir"`
}

// CommandError 表示 rclone 子进程以非零状态退出.
// Error() 原样返回 stderr 文本，上层把它作为 500 响应的详情.
type CommandError struct {
	Verb     string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	return e.Stderr
}

// runner 执行一次子进程调用，返回 stdout、stderr 和退出码.
// 单独抽出来便于测试时替换.
type runner func(bin string, args []string) (stdout, stderr []byte, exitCode int, err error)

// Client rclone 子进程客户端.
type Client struct {
	cfg configs.RcloneConfig
	run runner
}

// New 根据全局配置构造客户端.
func New() *Client {
	return &Client{
		cfg: configs.GetConfig().Rclone,
		run: execRun,
	}
}

// execRun 同步执行 rclone 并收集输出.
// 这里不挂接请求 context：传输一旦开始就让它跑完，客户端断开不应中断远端写入.
func execRun(bin string, args []string) ([]byte, []byte, int, error) {
	cmd := exec.Command(bin, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), stderr.Bytes(), exitErr.ExitCode(), nil
		}

		return stdout.Bytes(), stderr.Bytes(), -1, err
	}

	return stdout.Bytes(), stderr.Bytes(), 0, nil
}

// invoke 执行一个动词，withFlags 控制是否附加配置中的全局参数.
func (c *Client) invoke(verb string, withFlags bool, args ...string) ([]byte, error) {
	argv := append([]string{verb}, args...)
	if withFlags {
		argv = append(argv, c.cfg.Flags...)
	}

	nlog.Logger().Debug().Str("verb", verb).Strs("args", argv).Msg("rclone invoke")

	stdout, stderr, code, err := c.run(c.cfg.Binary, argv)
	if err != nil {
		return nil, err
	}

	if code != 0 {
		return nil, &CommandError{Verb: verb, ExitCode: code, Stderr: string(stderr)}
	}

	return stdout, nil
}

// remotePath 把规范化的相对路径映射到远端目标.
func (c *Client) remotePath(rel string) string {
	return fspath.Join(c.cfg.Remote, rel)
}

// List 列出远端路径下的条目.
func (c *Client) List(rel string) ([]Entry, error) {
	out, err := c.invoke("lsjson", true, c.remotePath(rel))
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := sonic.Unmarshal(out, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// IsDir 用 lsf --dirs-only 探测路径是否为目录.
// 探测失败时按文件处理，和删除逻辑的回退行为保持一致.
func (c *Client) IsDir(rel string) bool {
	out, err := c.invoke("lsf", false, "--dirs-only", c.remotePath(rel))
	if err != nil {
		return false
	}

	return len(bytes.TrimSpace(out)) > 0
}

// Upload 把本地文件复制到远端根目录.
func (c *Client) Upload(localPath string) error {
	_, err := c.invoke("copy", true, localPath, c.cfg.Remote)

	return err
}

// UploadDir 把本地目录的内容复制到远端指定路径下.
func (c *Client) UploadDir(localDir, rel string) error {
	_, err := c.invoke("copy", true, localDir, c.remotePath(rel))

	return err
}

// Download 把远端文件复制到本地目录.
func (c *Client) Download(rel, localDir string) error {
	_, err := c.invoke("copy", false, c.remotePath(rel), localDir)

	return err
}

// CopyTo 把本地文件复制为远端的精确目标路径，用于创建目录占位文件.
func (c *Client) CopyTo(localPath, rel string) error {
	_, err := c.invoke("copyto", true, localPath, c.remotePath(rel))

	return err
}

// Delete 删除远端单个文件.
func (c *Client) Delete(rel string) error {
	_, err := c.invoke("delete", true, c.remotePath(rel))

	return err
}

// Purge 递归删除远端目录.
func (c *Client) Purge(rel string) error {
	_, err := c.invoke("purge", true, c.remotePath(rel))

	return err
}

// MoveTo 在远端移动或重命名文件/目录.
func (c *Client) MoveTo(srcRel, dstRel string) error {
	_, err := c.invoke("moveto", false, c.remotePath(srcRel), c.remotePath(dstRel))

	return err
}

// HealthCheck 通过 lsd 验证远端配置可用，启动时调用.
func (c *Client) HealthCheck() error {
	_, err := c.invoke("lsd", false, c.cfg.Remote)

	return err
}

// Close 关闭客户端（无实际操作，接口兼容）.
func (c *Client) Close() error {
	return nil
}

// GetConfig 返回客户端当前使用的配置.
func (c *Client) GetConfig() configs.RcloneConfig {
	return c.cfg
}
