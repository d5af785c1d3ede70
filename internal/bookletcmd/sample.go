package bookletcmd

import (
	"bytes"
	"fmt"

	"github.com/lehigh-university-libraries/foldbook/internal/document"
	"github.com/spf13/cobra"
)

// NewSampleCmd creates the sample command
func NewSampleCmd() *cobra.Command {
	var count int
	var landscape bool
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a numbered test PDF",
		Long: `Write a PDF whose pages show large page numbers and a TOP marker.

Impose it, print it and fold it to check page order and orientation.`,
		Example: `  foldbook sample --count 16 -o test.pdf
  foldbook sample --count 10 --landscape -o slides.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var buf bytes.Buffer
			if err := document.Sample(&buf, document.SampleOptions{Count: count, Landscape: landscape}); err != nil {
				return err
			}
			if err := writeOutput(output, buf.Bytes(), force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d pages to %s\n", count, output)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 16, "Number of pages")
	cmd.Flags().BoolVar(&landscape, "landscape", false, "Landscape pages")
	cmd.Flags().StringVarP(&output, "output", "o", "sample.pdf", "Output file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing output file")

	return cmd
}
