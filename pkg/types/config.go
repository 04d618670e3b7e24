// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration structs shared between the CLI and
// the library packages.
package types

// ImageConfig holds settings shared by the image operations.
type ImageConfig struct {
	// Quality is the lossy encoder quality for JPEG and WebP output,
	// 1-100 (default 80).
	Quality int `json:"quality" yaml:"quality"`

	// Filter is the resampling kernel used when scaling: nearest,
	// bilinear, or catmullrom (default catmullrom).
	Filter string `json:"filter" yaml:"filter"`
}

// ConvertConfig holds settings for the convert command.
type ConvertConfig struct {
	// OutputDirName is the directory name created beside the input when no
	// output directory is given (default "converted_images").
	OutputDirName string `json:"output_dir" yaml:"output_dir"`

	// Lossless selects lossless encoding by default for formats that
	// support it.
	Lossless bool `json:"lossless" yaml:"lossless"`
}

// ExtractConfig holds settings for the extract command.
type ExtractConfig struct {
	// Format is the default extraction output: "written" for the
	// WrittenContent JSX block or "text" for plain lines.
	Format string `json:"format" yaml:"format"`
}

// Config groups all command configurations.
type Config struct {
	Image   ImageConfig   `json:"image" yaml:"image"`
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Extract ExtractConfig `json:"extract" yaml:"extract"`
}

// DefaultConfig returns the configuration used when no config file or
// environment overrides are present.
func DefaultConfig() Config {
	return Config{
		Image: ImageConfig{
			Quality: 80,
			Filter:  "catmullrom",
		},
		Convert: ConvertConfig{
			OutputDirName: "converted_images",
		},
		Extract: ExtractConfig{
			Format: "written",
		},
	}
}
