// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filekit/pkg/imagefile"
)

var resizeCmd = &cobra.Command{
	Use:   "resize <image> <width> <height>",
	Short: "Resize an image to the given pixel dimensions",
	Long: `Resize scales an image to exactly width x height pixels and writes it in
the source format. Without -o the source file is overwritten in place. With
--keep-aspect the image is instead fit within the width x height box,
preserving its aspect ratio and never upscaling.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		width, err := parseDimension(args[1], "width")
		if err != nil {
			return err
		}
		height, err := parseDimension(args[2], "height")
		if err != nil {
			return err
		}

		filterName, _ := cmd.Flags().GetString("filter")
		if !cmd.Flags().Changed("filter") {
			filterName = loadConfig().Image.Filter
		}
		filter, err := imagefile.ParseFilter(filterName)
		if err != nil {
			return err
		}

		outputPath, _ := cmd.Flags().GetString("output")
		keepAspect, _ := cmd.Flags().GetBool("keep-aspect")

		img, err := imagefile.Open(args[0])
		if err != nil {
			return err
		}
		out, err := img.Resize(width, height, imagefile.ResizeOptions{
			OutputPath: outputPath,
			KeepAspect: keepAspect,
			Filter:     filter,
		})
		if err != nil {
			return err
		}

		w, h, _, err := imagefile.Probe(out)
		if err != nil {
			return err
		}
		fmt.Printf("Resized %s to %dx%d: %s\n", filepath.Base(args[0]), w, h, out)
		return nil
	},
}

// parseDimension parses a positive pixel dimension.
func parseDimension(s, name string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return n, nil
}

func init() {
	resizeCmd.Flags().StringP("output", "o", "", "output path (default: overwrite the source file)")
	resizeCmd.Flags().Bool("keep-aspect", false, "fit within width x height, preserving aspect ratio")
	resizeCmd.Flags().String("filter", "", "resampling filter: nearest, bilinear, or catmullrom")

	rootCmd.AddCommand(resizeCmd)
}
