package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bedrib/mediamover/pkg/configs"
	"github.com/bedrib/mediamover/pkg/internal/fspath"
	"github.com/bedrib/mediamover/pkg/internal/model"
	"github.com/bedrib/mediamover/pkg/internal/storage/rclone"
)

// fakeRemote 安装一个假 rclone 脚本并指向全局配置.
// 脚本把每次调用的参数追加到日志文件，行为由环境变量控制：
//   - FAKE_RCLONE_LSF     lsf 的 stdout（目录探测结果）
//   - FAKE_RCLONE_LSJSON  lsjson 的 stdout
//   - FAKE_RCLONE_FAIL    非空时 copy/copyto 以非零退出并输出 stderr
func fakeRemote(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	script := filepath.Join(dir, "rclone")

	body := `#!/bin/sh
echo "$@" >> "$FAKE_RCLONE_LOG"
case "$1" in
  lsf) printf '%s' "$FAKE_RCLONE_LSF" ;;
  lsjson) printf '%s' "$FAKE_RCLONE_LSJSON" ;;
  copy|copyto)
    if [ -n "$FAKE_RCLONE_FAIL" ]; then echo "boom" >&2; exit 1; fi ;;
esac
exit 0
`
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write fake rclone: %v", err)
	}

	t.Setenv("FAKE_RCLONE_LOG", logPath)
	t.Setenv("FAKE_RCLONE_LSF", "")
	t.Setenv("FAKE_RCLONE_LSJSON", "[]")
	t.Setenv("FAKE_RCLONE_FAIL", "")

	cfg := configs.GetConfig()
	cfg.Rclone.Binary = script
	cfg.Rclone.Remote = "GCS:media_mover_test"
	cfg.Rclone.StagingDir = filepath.Join(dir, "staging")

	return logPath
}

// calledLines 返回假 rclone 收到的调用，一行一次.
func calledLines(t *testing.T, logPath string) []string {
	t.Helper()

	data, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		t.Fatalf("read call log: %v", err)
	}

	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// makeFileHeaders 构造 multipart 文件头，files 按 [名字, 内容] 给出.
func makeFileHeaders(t *testing.T, files [][2]string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)

	for _, f := range files {
		fw, err := w.CreateFormFile("files", f[0])
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}

		if _, err := fw.Write([]byte(f[1])); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}

	_ = w.Close()

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}

	return form.File["files"]
}

func newTestFileService(t *testing.T) *FileService {
	t.Helper()

	return &FileService{
		rcloneClient: rclone.New(),
		dbClient:     newTestDB(t),
	}
}

// TestDeleteRejectsTraversal 测试路径穿越在任何远端调用之前被拒绝.
func TestDeleteRejectsTraversal(t *testing.T) {
	logPath := fakeRemote(t)
	fs := newTestFileService(t)

	_, err := fs.Delete(context.Background(), "../../etc/passwd")
	if !errors.Is(err, fspath.ErrUnsafe) {
		t.Fatalf("err = %v, want ErrUnsafe", err)
	}

	if lines := calledLines(t, logPath); lines != nil {
		t.Errorf("rclone was invoked: %v", lines)
	}
}

// TestDeleteFile 测试普通文件走 delete 动词.
func TestDeleteFile(t *testing.T) {
	logPath := fakeRemote(t)
	fs := newTestFileService(t)

	msg, err := fs.Delete(context.Background(), "/docs/a.txt")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}

	if msg != "File deleted successfully" {
		t.Errorf("msg = %q", msg)
	}

	lines := calledLines(t, logPath)
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "lsf ") || !strings.HasPrefix(lines[1], "delete ") {
		t.Errorf("unexpected calls: %v", lines)
	}
}

// TestDeleteFolder 测试目录探测命中时走 purge 动词.
func TestDeleteFolder(t *testing.T) {
	logPath := fakeRemote(t)
	t.Setenv("FAKE_RCLONE_LSF", "docs/\n")

	fs := newTestFileService(t)

	msg, err := fs.Delete(context.Background(), "/docs")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}

	if msg != "Folder deleted successfully" {
		t.Errorf("msg = %q", msg)
	}

	lines := calledLines(t, logPath)
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "purge ") {
		t.Errorf("unexpected calls: %v", lines)
	}
}

// TestListTranslatesEntries 测试 lsjson 条目到列表条目的映射与路径拼接.
func TestListTranslatesEntries(t *testing.T) {
	fakeRemote(t)
	t.Setenv("FAKE_RCLONE_LSJSON",
		`[{"Path":"a.txt","Name":"a.txt","Size":5,"ModTime":"2026-01-02T03:04:05Z","IsDir":false},`+
			`{"Path":"sub","Name":"sub","Size":0,"ModTime":"2026-01-02T03:04:05Z","IsDir":true}]`)

	fs := newTestFileService(t)

	items, err := fs.List(context.Background(), "/docs")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}

	if items[0].ID != "/docs/a.txt" || items[0].Type != "file" || items[0].Size != 5 {
		t.Errorf("unexpected file item: %+v", items[0])
	}

	if items[1].Path != "/docs/sub" || items[1].Type != "folder" {
		t.Errorf("unexpected folder item: %+v", items[1])
	}
}

// TestUploadSingle 测试单文件上传的响应与暂存清理.
func TestUploadSingle(t *testing.T) {
	logPath := fakeRemote(t)
	fs := newTestFileService(t)

	fhs := makeFileHeaders(t, [][2]string{{"test.txt", "hello"}})

	resp, err := fs.UploadSingle(context.Background(), fhs[0])
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if resp.Filename != "test.txt" || resp.Status != "success" || resp.Message != "File uploaded successfully" {
		t.Errorf("unexpected response: %+v", resp)
	}

	lines := calledLines(t, logPath)
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "copy ") {
		t.Errorf("unexpected calls: %v", lines)
	}

	assertStagingEmpty(t)
}

// TestUploadMultipleRecords 测试批量上传为每个文件写一条成功记录.
func TestUploadMultipleRecords(t *testing.T) {
	fakeRemote(t)
	fs := newTestFileService(t)

	user := model.User{Username: "carol", Email: "carol@example.com", HashedPassword: "x"}
	if err := fs.dbClient.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	fhs := makeFileHeaders(t, [][2]string{
		{"a.txt", "aa"}, {"b.txt", "bb"}, {"c.txt", "cc"},
	})

	resp, err := fs.UploadMultiple(context.Background(), &user, "/docs", fhs)
	if err != nil {
		t.Fatalf("upload multiple: %v", err)
	}

	if len(resp.Filenames) != 3 || resp.Message != "Files uploaded successfully to /docs" {
		t.Errorf("unexpected response: %+v", resp)
	}

	var records []model.FileUpload
	if err := fs.dbClient.DB.Find(&records).Error; err != nil {
		t.Fatalf("load records: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}

	for _, rec := range records {
		if rec.Status != model.UploadStatusSuccess {
			t.Errorf("status = %q, want success", rec.Status)
		}

		if rec.UploadedBy != user.ID {
			t.Errorf("uploaded_by = %d, want %d", rec.UploadedBy, user.ID)
		}

		if !strings.HasPrefix(rec.UploadPath, "/docs/") {
			t.Errorf("upload_path = %q", rec.UploadPath)
		}
	}

	assertStagingEmpty(t)
}

// TestUploadMultipleFailureRecorded 测试远端失败时整体报错且记录带错误详情.
func TestUploadMultipleFailureRecorded(t *testing.T) {
	fakeRemote(t)
	t.Setenv("FAKE_RCLONE_FAIL", "1")

	fs := newTestFileService(t)

	user := model.User{Username: "dave", Email: "dave@example.com", HashedPassword: "x"}
	if err := fs.dbClient.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	fhs := makeFileHeaders(t, [][2]string{{"a.txt", "aa"}})

	_, err := fs.UploadMultiple(context.Background(), &user, "/docs", fhs)

	var cmdErr *rclone.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("err = %v, want CommandError", err)
	}

	if !strings.Contains(cmdErr.Stderr, "boom") {
		t.Errorf("stderr = %q", cmdErr.Stderr)
	}

	var records []model.FileUpload
	if err := fs.dbClient.DB.Find(&records).Error; err != nil {
		t.Fatalf("load records: %v", err)
	}

	if len(records) != 1 || records[0].Status != model.UploadStatusFailed {
		t.Fatalf("unexpected records: %+v", records)
	}

	if !strings.Contains(records[0].ErrorMessage, "boom") {
		t.Errorf("error_message = %q", records[0].ErrorMessage)
	}

	assertStagingEmpty(t)
}

// TestMkdirStagesKeepFile 测试建目录通过 copyto 上传 .keep 占位文件.
func TestMkdirStagesKeepFile(t *testing.T) {
	logPath := fakeRemote(t)
	fs := newTestFileService(t)

	if err := fs.Mkdir(context.Background(), "/newdir"); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	lines := calledLines(t, logPath)
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "copyto ") {
		t.Fatalf("unexpected calls: %v", lines)
	}

	if !strings.Contains(lines[0], "GCS:media_mover_test/newdir/.keep") {
		t.Errorf("copyto target missing .keep: %s", lines[0])
	}

	assertStagingEmpty(t)
}

// TestMoveUsesMoveTo 测试移动操作把两个规范化路径交给 moveto.
func TestMoveUsesMoveTo(t *testing.T) {
	logPath := fakeRemote(t)
	fs := newTestFileService(t)

	if err := fs.Move(context.Background(), "/a.txt", "/b/a.txt"); err != nil {
		t.Fatalf("move: %v", err)
	}

	lines := calledLines(t, logPath)
	want := "moveto GCS:media_mover_test/a.txt GCS:media_mover_test/b/a.txt"

	if len(lines) != 1 || lines[0] != want {
		t.Errorf("calls = %v, want %q", lines, want)
	}
}

// assertStagingEmpty 验证暂存根目录下没有残留子目录.
func assertStagingEmpty(t *testing.T) {
	t.Helper()

	entries, err := os.ReadDir(configs.GetConfig().Rclone.StagingDir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("read staging dir: %v", err)
	}

	if len(entries) != 0 {
		t.Errorf("staging dir not cleaned: %d entries left", len(entries))
	}
}
