// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the filekit CLI, a small toolkit for
// manipulating local files: resizing and converting raster images and
// extracting the written content of word-processing documents.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/filekit/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the filekit CLI.
var rootCmd = &cobra.Command{
	Use:   "filekit",
	Short: "Personal toolkit for local file manipulation",
	Long: `filekit bundles a handful of personal file utilities: resize raster
images, convert them between formats, extract the written content of .docx
documents, and inspect file metadata.

Each utility is a subcommand: resize, convert, extract, and info. The same
operations are importable from pkg/imagefile, pkg/docxfile, and
pkg/writtencontent.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./filekit.yaml or ~/.config/filekit/filekit.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("filekit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "filekit"))
		}
	}

	viper.SetEnvPrefix("FILEKIT")
	viper.AutomaticEnv()

	defaults := types.DefaultConfig()
	viper.SetDefault("image.quality", defaults.Image.Quality)
	viper.SetDefault("image.filter", defaults.Image.Filter)
	viper.SetDefault("convert.output_dir", defaults.Convert.OutputDirName)
	viper.SetDefault("convert.lossless", defaults.Convert.Lossless)
	viper.SetDefault("extract.format", defaults.Extract.Format)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the effective configuration from viper.
func loadConfig() types.Config {
	return types.Config{
		Image: types.ImageConfig{
			Quality: viper.GetInt("image.quality"),
			Filter:  viper.GetString("image.filter"),
		},
		Convert: types.ConvertConfig{
			OutputDirName: viper.GetString("convert.output_dir"),
			Lossless:      viper.GetBool("convert.lossless"),
		},
		Extract: types.ExtractConfig{
			Format: viper.GetString("extract.format"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
