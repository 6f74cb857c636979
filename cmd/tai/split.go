package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/therealolds/Tai/internal/pipeline"
)

// Worded as full sentences: main prints them after "Error: " as the user-facing line.
var (
	errInvalidParts  = errors.New("Please enter a valid number for splits.")
	errInvalidInput  = errors.New("Please select a valid input image.")
	errInvalidOutput = errors.New("Please select a valid output directory.")
)

func newSplitCmd() *cobra.Command {
	var input, output, parts string
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split an image into k vertical slices",
		Long: "Split an image into k full-height vertical slices saved as\n" +
			"{name}_part{N}.{format} in the output directory. The last slice\n" +
			"takes any leftover columns.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := strconv.Atoi(strings.TrimSpace(parts))
			if err != nil {
				return errInvalidParts
			}
			input, output = strings.TrimSpace(input), strings.TrimSpace(output)
			if fi, err := os.Stat(input); err != nil || !fi.Mode().IsRegular() {
				return errInvalidInput
			}
			if fi, err := os.Stat(output); err != nil || !fi.IsDir() {
				return errInvalidOutput
			}

			req := pipeline.Request{SourcePath: input, OutputDir: output, Parts: k}
			for ev, err := range pipeline.Run(req) {
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ev)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input image file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory")
	cmd.Flags().StringVarP(&parts, "parts", "k", "", "Number of slices")
	return cmd
}
