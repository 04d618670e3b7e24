// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imagefile wraps a single raster image file and provides the two
// operations the CLI is built around: resizing within the same format and
// converting between formats. Pixels are decoded once at Open; operations
// write new files and report the path they wrote.
package imagefile

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"

	"github.com/pdiddy/filekit/pkg/fileref"
)

// Filter selects the resampling kernel used when scaling.
type Filter string

// Supported resampling filters, cheapest first. CatmullRom is the default.
const (
	FilterNearest    Filter = "nearest"
	FilterBilinear   Filter = "bilinear"
	FilterCatmullRom Filter = "catmullrom"
)

// ParseFilter validates a user-supplied filter name.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterNearest, FilterBilinear, FilterCatmullRom:
		return f, nil
	case "":
		return FilterCatmullRom, nil
	default:
		return "", fmt.Errorf("unknown resize filter %q (want nearest, bilinear or catmullrom)", s)
	}
}

func (f Filter) scaler() draw.Scaler {
	switch f {
	case FilterNearest:
		return draw.NearestNeighbor
	case FilterBilinear:
		return draw.BiLinear
	default:
		return draw.CatmullRom
	}
}

// ResizeOptions controls Resize. The zero value overwrites the source file
// with an exact-size CatmullRom rescale.
type ResizeOptions struct {
	// OutputPath is where the resized image is written. Empty means
	// overwrite the source. The extension must match the source's.
	OutputPath string
	// KeepAspect fits the image within width x height instead of forcing
	// both dimensions, and never upscales.
	KeepAspect bool
	Filter     Filter
}

// ConvertOptions controls Convert.
type ConvertOptions struct {
	// OutputDir is the directory the converted file is written to,
	// created if missing. Empty means the source's directory.
	OutputDir string
	Lossless  bool
	Quality   int
}

// Image is a decoded raster image tied to its source file.
type Image struct {
	ref    *fileref.File
	img    image.Image
	format Format
}

// Open decodes the image at path. The extension must belong to a supported,
// decodable format and the content must sniff as an image; a PNG-named text
// file fails here rather than at first use.
func Open(path string) (*Image, error) {
	ref, err := fileref.Open(path)
	if err != nil {
		return nil, err
	}
	format, ok := FormatForPath(ref.Path())
	if !ok {
		return nil, &UnsupportedFormatError{Path: path, Ext: ref.Ext()}
	}
	if !format.Decodable() {
		return nil, &UnsupportedFormatError{Path: path, Ext: ref.Ext()}
	}
	mtype, err := mimetype.DetectFile(ref.Path())
	if err != nil {
		return nil, fmt.Errorf("sniffing %s: %w", path, err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("opening %s: content type %s is not an image", path, mtype)
	}

	f, err := os.Open(ref.Path())
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	m, name, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &Image{ref: ref, img: m, format: Format(name)}, nil
}

// Path returns the absolute path of the source file.
func (im *Image) Path() string { return im.ref.Path() }

// File returns the underlying file handle.
func (im *Image) File() *fileref.File { return im.ref }

// Format returns the decoded format, which may differ from the extension's
// implied format when a file is mislabeled.
func (im *Image) Format() Format { return im.format }

// Dimensions returns the pixel width and height.
func (im *Image) Dimensions() (width, height int) {
	b := im.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize scales the image to width x height and writes it in the source
// format. It returns the written path. With opts.KeepAspect the image is
// fit within the box instead, preserving aspect ratio. When the write
// lands on the source path the handle's pixels are updated to match.
func (im *Image) Resize(width, height int, opts ResizeOptions) (string, error) {
	base := im.ref.Base()
	if width < 1 || height < 1 {
		return "", fmt.Errorf("resizing %s: dimensions %dx%d out of range", base, width, height)
	}
	out := opts.OutputPath
	if out == "" {
		out = im.ref.Path()
	} else {
		srcExt := im.ref.Ext()
		outExt := strings.ToLower(filepath.Ext(out))
		if outExt != srcExt {
			return "", &ExtensionMismatchError{Path: out, Got: outExt, Want: srcExt}
		}
	}

	w, h := width, height
	if opts.KeepAspect {
		sw, sh := im.Dimensions()
		w, h = fitWithin(sw, sh, width, height)
	}
	dst := scale(im.img, w, h, opts.Filter)

	if err := im.write(out, im.format, dst, EncodeOptions{}); err != nil {
		return "", err
	}
	if out == im.ref.Path() {
		im.img = dst
	}
	return out, nil
}

// Convert re-encodes the image as target and writes <stem><ext> into
// opts.OutputDir, returning the written path. Converting to the source's
// own format is allowed and simply re-encodes.
func (im *Image) Convert(target Format, opts ConvertOptions) (string, error) {
	if _, ok := formats[target]; !ok {
		return "", &UnsupportedFormatError{Path: im.ref.Path(), Ext: string(target)}
	}

	out := ConvertedPath(im.ref.Path(), target, opts.OutputDir)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory for %s: %w", im.ref.Base(), err)
	}
	eo := EncodeOptions{Quality: opts.Quality, Lossless: opts.Lossless}
	if err := im.write(out, target, im.img, eo); err != nil {
		return "", err
	}
	return out, nil
}

func (im *Image) write(path string, format Format, m image.Image, opts EncodeOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := formats[format].encode(f, m, opts); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encoding %s as %s: %w", im.ref.Base(), format, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Probe returns the dimensions and format of the image at path without
// decoding its pixels.
func Probe(path string) (width, height int, format Format, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	cfg, name, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, "", fmt.Errorf("probing %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, Format(name), nil
}

// fitWithin shrinks w x h to fit inside maxW x maxH, preserving aspect
// ratio and never upscaling.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	r := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := int(math.Round(float64(w) * r))
	nh := int(math.Round(float64(h) * r))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

func scale(src image.Image, w, h int, f Filter) image.Image {
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	f.scaler().Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
