// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filekit/pkg/docxfile"
	"github.com/pdiddy/filekit/pkg/writtencontent"
)

var extractCmd = &cobra.Command{
	Use:   "extract <docx>",
	Short: "Extract the written content of a .docx document",
	Long: `Extract reads a .docx document and writes its written content.

The default "written" format renders the paragraphs as the WrittenContent
JSX block, saved next to the source as <name>_written_content.txt unless -o
is given. The "text" format writes one plain line per non-empty paragraph;
with "text", -o "-" (or no -o) prints to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if !cmd.Flags().Changed("format") {
			format = loadConfig().Extract.Format
		}
		outputPath, _ := cmd.Flags().GetString("output")

		switch format {
		case "written":
			out, err := writtencontent.RenderFile(args[0], outputPath)
			if err != nil {
				return err
			}
			fmt.Printf("Converted DOCX to WrittenContent JSX: %s\n", out)
			return nil
		case "text":
			doc, err := docxfile.Open(args[0])
			if err != nil {
				return err
			}
			content := doc.Text() + "\n"
			if outputPath == "" || outputPath == "-" {
				fmt.Print(content)
				return nil
			}
			if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outputPath, err)
			}
			fmt.Printf("Extracted text: %s\n", outputPath)
			return nil
		default:
			return fmt.Errorf("unknown extract format %q (want written or text)", format)
		}
	},
}

func init() {
	extractCmd.Flags().StringP("output", "o", "", "output path (default: <name>_written_content.txt beside the source)")
	extractCmd.Flags().String("format", "", "output format: written or text")

	rootCmd.AddCommand(extractCmd)
}
