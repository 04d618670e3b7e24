// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fileref provides a handle on a single regular file: metadata
// accessors plus the small set of filesystem verbs the CLI needs.
package fileref

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// File is a handle on an existing regular file. Construct with Open;
// mutating operations keep the handle pointing at the file's new location.
type File struct {
	path string
	info os.FileInfo
}

// Open resolves path to an absolute location and stats it. The path must
// name an existing regular file.
func Open(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("opening file: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("opening file %s: not a regular file", path)
	}
	return &File{path: abs, info: info}, nil
}

// Path returns the absolute path of the file.
func (f *File) Path() string { return f.path }

// Base returns the file name including its extension.
func (f *File) Base() string { return filepath.Base(f.path) }

// Name returns the file name without its extension.
func (f *File) Name() string {
	base := filepath.Base(f.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Ext returns the lowercased extension including the leading dot, or the
// empty string when the file has none.
func (f *File) Ext() string { return strings.ToLower(filepath.Ext(f.path)) }

// Dir returns the directory containing the file.
func (f *File) Dir() string { return filepath.Dir(f.path) }

// Size returns the size in bytes as of the last stat.
func (f *File) Size() int64 { return f.info.Size() }

// ModTime returns the modification time as of the last stat.
func (f *File) ModTime() time.Time { return f.info.ModTime() }

// Read returns the full file contents.
func (f *File) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	return data, nil
}

// Refresh re-stats the file so Size and ModTime reflect external changes.
func (f *File) Refresh() error {
	info, err := os.Stat(f.path)
	if err != nil {
		return fmt.Errorf("stating %s: %w", f.path, err)
	}
	f.info = info
	return nil
}

// CopyTo copies the file to dst and returns the destination path. When dst
// is an existing directory the copy keeps the file's name inside it. The
// handle still points at the original file afterwards.
func (f *File) CopyTo(dst string) (string, error) {
	if dst == "" {
		return "", fmt.Errorf("copying %s: empty destination", f.Base())
	}
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, f.Base())
	}
	src, err := os.Open(f.path)
	if err != nil {
		return "", fmt.Errorf("copying %s: %w", f.Base(), err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("copying %s: %w", f.Base(), err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", fmt.Errorf("copying %s to %s: %w", f.Base(), dst, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("copying %s to %s: %w", f.Base(), dst, err)
	}
	return dst, nil
}

// Rename renames the file within its directory and repoints the handle.
// A newName without an extension keeps the current one.
func (f *File) Rename(newName string) error {
	if newName == "" {
		return fmt.Errorf("renaming %s: empty name", f.Base())
	}
	if filepath.Ext(newName) == "" {
		newName += f.Ext()
	}
	dst := filepath.Join(f.Dir(), newName)
	if err := os.Rename(f.path, dst); err != nil {
		return fmt.Errorf("renaming %s: %w", f.Base(), err)
	}
	f.path = dst
	return nil
}

// MoveTo moves the file into dstDir, creating the directory if needed,
// and repoints the handle.
func (f *File) MoveTo(dstDir string) error {
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("moving %s: %w", f.Base(), err)
	}
	dst := filepath.Join(dstDir, f.Base())
	if err := os.Rename(f.path, dst); err != nil {
		return fmt.Errorf("moving %s to %s: %w", f.Base(), dstDir, err)
	}
	f.path = dst
	return nil
}

// Remove deletes the file. The handle is no longer usable afterwards.
func (f *File) Remove() error {
	if err := os.Remove(f.path); err != nil {
		return fmt.Errorf("removing %s: %w", f.path, err)
	}
	return nil
}

// String describes the file for diagnostics.
func (f *File) String() string {
	return fmt.Sprintf("%s (%d bytes)", f.path, f.Size())
}
