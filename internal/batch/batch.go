// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch converts image files to a target format one at a time,
// accepting either a single file or a directory of files. Per-file failures
// are reported and counted but never abort the run.
package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdiddy/filekit/pkg/imagefile"
)

// DefaultOutputDirName is the directory created next to the input when no
// output directory is given.
const DefaultOutputDirName = "converted_images"

// Options controls a conversion run.
type Options struct {
	// OutputDir is where converted files are written. Empty means a
	// directory beside the input, named DirName.
	OutputDir string
	// DirName overrides the name of the inferred output directory. Empty
	// means DefaultOutputDirName.
	DirName string
	// Lossless selects lossless encoding for formats that support it.
	Lossless bool
	// Quality is the lossy encoder quality; zero means the default.
	Quality int
	// Force overwrites outputs that already exist instead of skipping them.
	Force bool
}

// Result holds the outcome of a conversion run.
type Result struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r Result) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Run converts the file at input, or every regular file in the directory at
// input, to the target format, printing per-file status to w and returning
// a summary. It returns an error only when the input itself is unusable;
// per-file conversion errors are counted in the result instead.
func Run(input string, target imagefile.Format, opts Options, w io.Writer) (Result, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return Result{}, fmt.Errorf("resolving path %s: %w", input, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", input, err)
	}

	outDir := opts.OutputDir
	if outDir == "" {
		name := opts.DirName
		if name == "" {
			name = DefaultOutputDirName
		}
		outDir = filepath.Join(filepath.Dir(abs), name)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}
	opts.OutputDir = outDir

	var paths []string
	if info.IsDir() {
		entries, err := os.ReadDir(abs)
		if err != nil {
			return Result{}, fmt.Errorf("reading directory %s: %w", input, err)
		}
		for _, e := range entries {
			if e.Type().IsRegular() {
				paths = append(paths, filepath.Join(abs, e.Name()))
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{abs}
	}

	var result Result
	for _, p := range paths {
		switch convertOne(p, target, opts, w) {
		case statusConverted:
			result.Converted++
		case statusSkipped:
			result.Skipped++
		case statusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

type status int

const (
	statusConverted status = iota
	statusSkipped
	statusFailed
)

// convertOne converts a single file, printing one status line. Files with
// unrecognized extensions are skipped rather than failed so that a mixed
// directory converts cleanly.
func convertOne(path string, target imagefile.Format, opts Options, w io.Writer) status {
	base := filepath.Base(path)
	if _, ok := imagefile.FormatForPath(path); !ok {
		fmt.Fprintf(w, "skipped: %s (unsupported file type)\n", base)
		return statusSkipped
	}

	outPath := imagefile.ConvertedPath(path, target, opts.OutputDir)
	if _, err := os.Stat(outPath); err == nil && !opts.Force {
		fmt.Fprintf(w, "skipped: %s (%s already exists)\n", base, filepath.Base(outPath))
		return statusSkipped
	}

	img, err := imagefile.Open(path)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return statusFailed
	}

	out, err := img.Convert(target, imagefile.ConvertOptions{
		OutputDir: opts.OutputDir,
		Lossless:  opts.Lossless,
		Quality:   opts.Quality,
	})
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return statusFailed
	}

	fmt.Fprintf(w, "converted: %s -> %s%s\n", base, filepath.Base(out), sizeDelta(img.File().Size(), out))
	return statusConverted
}

// sizeDelta annotates a conversion with the size reduction it achieved,
// e.g. " (48.3% smaller)". Conversions that grow the file get no note.
func sizeDelta(srcSize int64, outPath string) string {
	info, err := os.Stat(outPath)
	if err != nil || srcSize <= 0 || info.Size() >= srcSize {
		return ""
	}
	pct := float64(srcSize-info.Size()) / float64(srcSize) * 100
	return fmt.Sprintf(" (%.1f%% smaller)", pct)
}
