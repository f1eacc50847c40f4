package fspath_test

import (
	"errors"
	"testing"

	"github.com/bedrib/mediamover/pkg/internal/fspath"
)

// TestCleanValid 测试合法路径的规范化.
func TestCleanValid(t *testing.T) {
	cases := map[string]string{
		"":                   "",
		"/":                  "",
		"file.txt":           "file.txt",
		"/file.txt":          "file.txt",
		"dir/sub/file.txt":   "dir/sub/file.txt",
		"//dir///file.txt":   "dir/file.txt",
		"./dir/./file.txt":   "dir/file.txt",
		"dir/":               "dir",
		"dir\\sub\\file.txt": "dir/sub/file.txt",
	}

	for raw, want := range cases {
		got, err := fspath.Clean(raw)
		if err != nil {
			t.Errorf("Clean(%q) returned error: %v", raw, err)

			continue
		}

		if got != want {
			t.Errorf("Clean(%q) = %q, want %q", raw, got, want)
		}
	}
}

// TestCleanTraversal 测试包含 ".." 的路径被拒绝.
func TestCleanTraversal(t *testing.T) {
	cases := []string{
		"..",
		"../etc/passwd",
		"dir/../../secret",
		"dir/..",
		"/..",
		"..\\windows\\system32",
		"a/b/../../../root",
	}

	for _, raw := range cases {
		_, err := fspath.Clean(raw)
		if !errors.Is(err, fspath.ErrUnsafe) {
			t.Errorf("Clean(%q) = %v, want ErrUnsafe", raw, err)
		}
	}
}

// TestCleanDotsInNames 测试文件名中包含点号但不是穿越片段的情况.
func TestCleanDotsInNames(t *testing.T) {
	cases := map[string]string{
		"file..txt":      "file..txt",
		"...":            "...",
		"dir/..hidden":   "dir/..hidden",
		"a..b/file.txt":  "a..b/file.txt",
	}

	for raw, want := range cases {
		got, err := fspath.Clean(raw)
		if err != nil {
			t.Errorf("Clean(%q) returned error: %v", raw, err)

			continue
		}

		if got != want {
			t.Errorf("Clean(%q) = %q, want %q", raw, got, want)
		}
	}
}

// TestJoin 测试远端路径拼接.
func TestJoin(t *testing.T) {
	remote := "GCS:media_mover_test"

	if got := fspath.Join(remote, ""); got != remote {
		t.Errorf("Join(remote, \"\") = %q, want %q", got, remote)
	}

	if got := fspath.Join(remote, "dir/file.txt"); got != remote+"/dir/file.txt" {
		t.Errorf("Join(remote, \"dir/file.txt\") = %q", got)
	}
}
