// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fileref

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "absent.txt")},
		{"empty path", ""},
		{"directory", dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Open(tt.path); err == nil {
				t.Fatalf("Open(%q) succeeded, want error", tt.path)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Notes.TXT", "hello world")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if got := f.Base(); got != "Notes.TXT" {
		t.Errorf("Base() = %q, want %q", got, "Notes.TXT")
	}
	if got := f.Name(); got != "Notes" {
		t.Errorf("Name() = %q, want %q", got, "Notes")
	}
	if got := f.Ext(); got != ".txt" {
		t.Errorf("Ext() = %q, want %q", got, ".txt")
	}
	if got := f.Size(); got != int64(len("hello world")) {
		t.Errorf("Size() = %d, want %d", got, len("hello world"))
	}
	if !filepath.IsAbs(f.Path()) {
		t.Errorf("Path() = %q, want absolute", f.Path())
	}
	if got := f.Dir(); got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}
	if !strings.Contains(f.String(), "Notes.TXT") {
		t.Errorf("String() = %q, want file name included", f.String())
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.bin", "\x00\x01payload")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := f.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "\x00\x01payload" {
		t.Errorf("Read() = %q, want %q", data, "\x00\x01payload")
	}
}

func TestCopyTo(t *testing.T) {
	tests := []struct {
		name     string
		dst      func(dir string) string
		wantBase string
	}{
		{
			name:     "explicit file path",
			dst:      func(dir string) string { return filepath.Join(dir, "copy.txt") },
			wantBase: "copy.txt",
		},
		{
			name: "existing directory keeps name",
			dst: func(dir string) string {
				sub := filepath.Join(dir, "backup")
				os.MkdirAll(sub, 0o755)
				return sub
			},
			wantBase: "orig.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := writeFile(t, dir, "orig.txt", "contents")

			f, err := Open(src)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			dst, err := f.CopyTo(tt.dst(dir))
			if err != nil {
				t.Fatalf("CopyTo: %v", err)
			}
			if filepath.Base(dst) != tt.wantBase {
				t.Errorf("CopyTo returned %q, want base %q", dst, tt.wantBase)
			}
			data, err := os.ReadFile(dst)
			if err != nil {
				t.Fatalf("reading copy: %v", err)
			}
			if string(data) != "contents" {
				t.Errorf("copy contents = %q, want %q", data, "contents")
			}
			if f.Path() != src {
				t.Errorf("handle moved to %q, want to stay at source", f.Path())
			}
		})
	}
}

func TestRenameKeepsExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "draft.txt", "x")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := f.Rename("final"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	want := filepath.Join(dir, "final.txt")
	if f.Path() != want {
		t.Errorf("Path() = %q, want %q", f.Path(), want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("old path still present: %v", err)
	}
}

func TestMoveToCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "item.txt", "x")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	dst := filepath.Join(dir, "archive", "2026")
	if err := f.MoveTo(dst); err != nil {
		t.Fatalf("MoveTo: %v", err)
	}
	want := filepath.Join(dst, "item.txt")
	if f.Path() != want {
		t.Errorf("Path() = %q, want %q", f.Path(), want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("moved file missing: %v", err)
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gone.txt", "x")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := f.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still present after Remove: %v", err)
	}
}

func TestRefresh(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "grow.txt", "aa")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := os.WriteFile(path, []byte("aaaa"), 0o644); err != nil {
		t.Fatalf("rewriting: %v", err)
	}
	if err := f.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if f.Size() != 4 {
		t.Errorf("Size() after Refresh = %d, want 4", f.Size())
	}
}
