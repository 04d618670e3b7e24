// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filekit/internal/batch"
	"github.com/pdiddy/filekit/pkg/imagefile"
)

var convertCmd = &cobra.Command{
	Use:   "convert <image-or-dir> <format>",
	Short: "Convert image file(s) to a target format",
	Long: `Convert re-encodes an image file, or every image file in a directory, to
the target format (` + strings.Join(imagefile.Formats(), ", ") + `).

Converted files keep their name with the new extension and are written to
the output directory, which defaults to a "converted_images" directory
beside the input. Existing outputs are skipped unless --force is given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := imagefile.ParseFormat(args[1])
		if err != nil {
			return err
		}

		cfg := loadConfig()
		quality, _ := cmd.Flags().GetInt("quality")
		if !cmd.Flags().Changed("quality") {
			quality = cfg.Image.Quality
		}
		lossless, _ := cmd.Flags().GetBool("lossless")
		if !cmd.Flags().Changed("lossless") {
			lossless = cfg.Convert.Lossless
		}
		force, _ := cmd.Flags().GetBool("force")
		outputDir, _ := cmd.Flags().GetString("output-dir")

		result, err := batch.Run(args[0], target, batch.Options{
			OutputDir: outputDir,
			DirName:   cfg.Convert.OutputDirName,
			Lossless:  lossless,
			Quality:   quality,
			Force:     force,
		}, os.Stdout)
		if err != nil {
			return err
		}
		if result.HasFailures() {
			return fmt.Errorf("%d of %d conversions failed", result.Failed, result.Total())
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().StringP("output-dir", "o", "", "directory for converted files (default: "+
		filepath.Join("<input-parent>", batch.DefaultOutputDirName)+")")
	convertCmd.Flags().Bool("lossless", false, "use lossless compression for formats that support it")
	convertCmd.Flags().Bool("force", false, "overwrite existing output files")
	convertCmd.Flags().Int("quality", 0, "lossy encoder quality, 1-100")

	rootCmd.AddCommand(convertCmd)
}
