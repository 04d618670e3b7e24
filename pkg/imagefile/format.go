// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imagefile

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"sort"
	"strings"

	ico "github.com/Kodeworks/golang-image-ico"
	"github.com/chai2010/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	// WebP decoding comes from x/image; chai2010/webp above is only used
	// for encoding, which x/image does not provide.
	_ "golang.org/x/image/webp"
)

// Format identifies a supported image encoding, named after the format
// string the image registry reports for it.
type Format string

// Supported formats. ICO is encode-only: it can be a conversion target but
// not an input.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	WebP Format = "webp"
	ICO  Format = "ico"
)

// DefaultQuality is the lossy encoder quality used when none is configured.
const DefaultQuality = 80

// icoMaxSize bounds icon output; larger sources are scaled to fit.
const icoMaxSize = 32

// EncodeOptions tunes the lossy encoders. Quality applies to JPEG and WebP;
// Lossless switches WebP to its lossless mode.
type EncodeOptions struct {
	Quality  int
	Lossless bool
}

func (o EncodeOptions) quality() int {
	if o.Quality <= 0 {
		return DefaultQuality
	}
	if o.Quality > 100 {
		return 100
	}
	return o.Quality
}

// UnsupportedFormatError reports an extension outside the supported set, or
// an input in a format that cannot be decoded.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unsupported image format %q", e.Ext)
	}
	return fmt.Sprintf("unsupported image format %q: %s", e.Ext, e.Path)
}

// ExtensionMismatchError reports a resize output path whose extension
// differs from the source. Resize never transcodes; use Convert.
type ExtensionMismatchError struct {
	Path string
	Got  string
	Want string
}

func (e *ExtensionMismatchError) Error() string {
	return fmt.Sprintf("output extension %q does not match source %q (resize does not convert formats): %s",
		e.Got, e.Want, e.Path)
}

type formatInfo struct {
	decodable bool
	encode    func(w io.Writer, m image.Image, opts EncodeOptions) error
}

var formats = map[Format]formatInfo{
	PNG: {decodable: true, encode: func(w io.Writer, m image.Image, _ EncodeOptions) error {
		return png.Encode(w, m)
	}},
	JPEG: {decodable: true, encode: func(w io.Writer, m image.Image, o EncodeOptions) error {
		return jpeg.Encode(w, m, &jpeg.Options{Quality: o.quality()})
	}},
	GIF: {decodable: true, encode: func(w io.Writer, m image.Image, _ EncodeOptions) error {
		return gif.Encode(w, m, &gif.Options{NumColors: 256})
	}},
	BMP: {decodable: true, encode: func(w io.Writer, m image.Image, _ EncodeOptions) error {
		return bmp.Encode(w, m)
	}},
	TIFF: {decodable: true, encode: func(w io.Writer, m image.Image, _ EncodeOptions) error {
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}},
	WebP: {decodable: true, encode: func(w io.Writer, m image.Image, o EncodeOptions) error {
		opt := webp.Options{Quality: float32(o.quality())}
		if o.Lossless {
			opt.Lossless = true
			opt.Quality = 100
		}
		return webp.Encode(w, m, &opt)
	}},
	ICO: {decodable: false, encode: encodeICO},
}

// extensions maps recognized file extensions to formats. The jpg/jpeg pair
// shares one format.
var extensions = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".bmp":  BMP,
	".tiff": TIFF,
	".webp": WebP,
	".ico":  ICO,
}

func encodeICO(w io.Writer, m image.Image, _ EncodeOptions) error {
	b := m.Bounds()
	if b.Dx() > icoMaxSize || b.Dy() > icoMaxSize {
		nw, nh := fitWithin(b.Dx(), b.Dy(), icoMaxSize, icoMaxSize)
		m = scale(m, nw, nh, FilterCatmullRom)
	}
	return ico.Encode(w, m)
}

// ParseFormat normalizes a user-supplied extension ("webp", ".PNG", "jpg")
// to its Format.
func ParseFormat(s string) (Format, error) {
	e := strings.ToLower(strings.TrimLeft(strings.TrimSpace(s), "."))
	if e == "jpg" {
		e = "jpeg"
	}
	f := Format(e)
	if _, ok := formats[f]; !ok {
		return "", &UnsupportedFormatError{Ext: s}
	}
	return f, nil
}

// FormatForPath returns the Format implied by the path's extension.
func FormatForPath(path string) (Format, bool) {
	f, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// Ext returns the canonical file extension for the format, dot included.
// JPEG files are written as .jpg.
func (f Format) Ext() string {
	if f == JPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// Decodable reports whether files in this format can be opened, not just
// written.
func (f Format) Decodable() bool {
	return formats[f].decodable
}

// Formats lists the supported formats in lexical order, for help text.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for f := range formats {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// ConvertedPath returns the path Convert writes for srcPath and target.
// An empty outputDir means the source's own directory.
func ConvertedPath(srcPath string, target Format, outputDir string) string {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(srcPath)
	}
	base := filepath.Base(srcPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+target.Ext())
}
