// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filekit/internal/inspect"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>...",
	Short: "Show metadata for local files",
	Long: `Info reports metadata for each given file: size, modification time, and
detected content type, plus pixel dimensions for images and paragraph and
word counts for .docx documents.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reports := make([]inspect.Report, 0, len(args))
		for _, path := range args {
			r, err := inspect.Describe(path)
			if err != nil {
				return err
			}
			reports = append(reports, r)
		}

		format, _ := cmd.Flags().GetString("output")
		return inspect.Render(os.Stdout, reports, format)
	},
}

func init() {
	infoCmd.Flags().String("output", "text", "report format: text, json, or yaml")

	rootCmd.AddCommand(infoCmd)
}
