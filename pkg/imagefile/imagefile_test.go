// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imagefile

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.RGBA{R: 255, A: 255}

// makePNG writes a solid red width x height PNG and returns its path.
func makePNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	m := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(m, m.Bounds(), &image.Uniform{C: red}, image.Point{}, draw.Src)

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, m))
	require.NoError(t, f.Close())
	return path
}

func decodeFile(t *testing.T, path string) (image.Image, string) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	m, name, err := image.Decode(f)
	require.NoError(t, err)
	return m, name
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	notImage := filepath.Join(dir, "fake.png")
	require.NoError(t, os.WriteFile(notImage, []byte("just text pretending"), 0o644))

	textFile := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(textFile, []byte("hello"), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "absent.png")},
		{"unsupported extension", textFile},
		{"image extension on text content", notImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.path)
			require.Error(t, err)
		})
	}
}

func TestOpenRejectsIcoInput(t *testing.T) {
	dir := t.TempDir()
	src := makePNG(t, dir, "favicon-source.png", 64, 64)

	im, err := Open(src)
	require.NoError(t, err)
	out, err := im.Convert(ICO, ConvertOptions{})
	require.NoError(t, err)

	_, err = Open(out)
	require.Error(t, err)
	var ufe *UnsupportedFormatError
	assert.True(t, errors.As(err, &ufe), "want UnsupportedFormatError, got %v", err)
}

func TestDimensions(t *testing.T) {
	dir := t.TempDir()
	im, err := Open(makePNG(t, dir, "red.png", 100, 100))
	require.NoError(t, err)

	w, h := im.Dimensions()
	assert.Equal(t, 100, w)
	assert.Equal(t, 100, h)
	assert.Equal(t, PNG, im.Format())
}

func TestResizeExact(t *testing.T) {
	dir := t.TempDir()
	src := makePNG(t, dir, "red.png", 100, 100)
	im, err := Open(src)
	require.NoError(t, err)

	out := filepath.Join(dir, "small.png")
	got, err := im.Resize(50, 30, ResizeOptions{OutputPath: out})
	require.NoError(t, err)
	assert.Equal(t, out, got)

	w, h, format, err := Probe(out)
	require.NoError(t, err)
	assert.Equal(t, 50, w)
	assert.Equal(t, 30, h)
	assert.Equal(t, PNG, format)

	// Source stays at its original size when an output path is given.
	w, h, _, err = Probe(src)
	require.NoError(t, err)
	assert.Equal(t, 100, w)
	assert.Equal(t, 100, h)
}

func TestResizeOverwritesSourceByDefault(t *testing.T) {
	dir := t.TempDir()
	src := makePNG(t, dir, "red.png", 100, 100)
	im, err := Open(src)
	require.NoError(t, err)

	got, err := im.Resize(10, 10, ResizeOptions{})
	require.NoError(t, err)
	assert.Equal(t, src, got)

	w, h, _, err := Probe(src)
	require.NoError(t, err)
	assert.Equal(t, 10, w)
	assert.Equal(t, 10, h)

	w, h = im.Dimensions()
	assert.Equal(t, 10, w, "handle should track an in-place resize")
	assert.Equal(t, 10, h)
}

func TestResizeKeepAspect(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		boxW, boxH int
		wantW      int
		wantH      int
	}{
		{"landscape into square box", 100, 50, 40, 40, 40, 20},
		{"portrait into square box", 50, 100, 40, 40, 20, 40},
		{"never upscales", 10, 10, 100, 100, 10, 10},
		{"already fits", 30, 20, 40, 40, 30, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			im, err := Open(makePNG(t, dir, "src.png", tt.srcW, tt.srcH))
			require.NoError(t, err)

			out := filepath.Join(dir, "fit.png")
			_, err = im.Resize(tt.boxW, tt.boxH, ResizeOptions{OutputPath: out, KeepAspect: true})
			require.NoError(t, err)

			w, h, _, err := Probe(out)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestResizeRejectsExtensionMismatch(t *testing.T) {
	dir := t.TempDir()
	im, err := Open(makePNG(t, dir, "red.png", 20, 20))
	require.NoError(t, err)

	_, err = im.Resize(10, 10, ResizeOptions{OutputPath: filepath.Join(dir, "red.webp")})
	require.Error(t, err)
	var eme *ExtensionMismatchError
	assert.True(t, errors.As(err, &eme), "want ExtensionMismatchError, got %v", err)
}

func TestResizeRejectsBadDimensions(t *testing.T) {
	dir := t.TempDir()
	im, err := Open(makePNG(t, dir, "red.png", 20, 20))
	require.NoError(t, err)

	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 10}} {
		_, err := im.Resize(dims[0], dims[1], ResizeOptions{})
		assert.Error(t, err, "dimensions %v", dims)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		target   Format
		wantName string
	}{
		{WebP, "red.webp"},
		{JPEG, "red.jpg"},
		{GIF, "red.gif"},
		{BMP, "red.bmp"},
		{TIFF, "red.tiff"},
		{PNG, "red.png"},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			dir := t.TempDir()
			im, err := Open(makePNG(t, dir, "red.png", 64, 32))
			require.NoError(t, err)

			outDir := filepath.Join(dir, "out")
			out, err := im.Convert(tt.target, ConvertOptions{OutputDir: outDir})
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(outDir, tt.wantName), out)

			m, name := decodeFile(t, out)
			assert.Equal(t, string(tt.target), name)
			assert.Equal(t, 64, m.Bounds().Dx())
			assert.Equal(t, 32, m.Bounds().Dy())
		})
	}
}

func TestConvertToIcoScalesDown(t *testing.T) {
	dir := t.TempDir()
	im, err := Open(makePNG(t, dir, "big.png", 256, 128))
	require.NoError(t, err)

	out, err := im.Convert(ICO, ConvertOptions{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "big.ico"), out)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestConvertDefaultsToSourceDir(t *testing.T) {
	dir := t.TempDir()
	im, err := Open(makePNG(t, dir, "red.png", 16, 16))
	require.NoError(t, err)

	out, err := im.Convert(WebP, ConvertOptions{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "red.webp"), out)
}

func TestConvertLosslessWebPKeepsPixels(t *testing.T) {
	dir := t.TempDir()
	im, err := Open(makePNG(t, dir, "red.png", 8, 8))
	require.NoError(t, err)

	out, err := im.Convert(WebP, ConvertOptions{Lossless: true})
	require.NoError(t, err)

	m, name := decodeFile(t, out)
	require.Equal(t, "webp", name)
	got := color.RGBAModel.Convert(m.At(4, 4)).(color.RGBA)
	assert.Equal(t, red, got)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", PNG, false},
		{"PNG", PNG, false},
		{".webp", WebP, false},
		{"jpg", JPEG, false},
		{"jpeg", JPEG, false},
		{" tiff ", TIFF, false},
		{"ico", ICO, false},
		{"svg", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	f, ok := FormatForPath("/tmp/photo.JPG")
	assert.True(t, ok)
	assert.Equal(t, JPEG, f)

	_, ok = FormatForPath("/tmp/report.docx")
	assert.False(t, ok)
}

func TestConvertedPath(t *testing.T) {
	assert.Equal(t, "/data/out/pic.webp", ConvertedPath("/data/src/pic.png", WebP, "/data/out"))
	assert.Equal(t, "/data/src/pic.jpg", ConvertedPath("/data/src/pic.png", JPEG, ""))
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{100, 50, 40, 40, 40, 20},
		{10, 10, 100, 100, 10, 10},
		{33, 100, 50, 50, 17, 50},
		{2000, 1, 100, 100, 100, 1},
	}

	for _, tt := range tests {
		gotW, gotH := fitWithin(tt.w, tt.h, tt.maxW, tt.maxH)
		assert.Equal(t, tt.wantW, gotW, "width for %dx%d in %dx%d", tt.w, tt.h, tt.maxW, tt.maxH)
		assert.Equal(t, tt.wantH, gotH, "height for %dx%d in %dx%d", tt.w, tt.h, tt.maxW, tt.maxH)
	}
}
