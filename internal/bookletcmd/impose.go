package bookletcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lehigh-university-libraries/foldbook/internal/booklet"
	"github.com/spf13/cobra"
)

// NewImposeCmd creates the impose command
func NewImposeCmd() *cobra.Command {
	var output string
	var pages string
	var spineGuide bool
	var optimize bool
	var force bool
	var formats formatFlags

	cmd := &cobra.Command{
		Use:   "impose INPUT.pdf",
		Short: "Impose a PDF as a folding booklet",
		Long: `Arrange the pages of a PDF on A4 sheets so that, printed double-sided
(flip on the long edge) and folded, they form a booklet in reading order.

A7 booklets fold the sheet three times, A6 booklets twice. Documents longer
than one sheet produce one folded section per sheet; a section of half a
sheet or less is printed on the front only.`,
		Example: `  # A7 portrait booklet next to the input
  foldbook impose notes.pdf

  # A6 booklet of pages 1 to 8 and 12
  foldbook impose notes.pdf --format a6 --pages 1-8,12 -o zine.pdf

  # A7 with landscape pages, no spine guide
  foldbook impose slides.pdf --orientation landscape --spine-guide=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return err
			}
			format, err := formats.resolve(cmd, cfg)
			if err != nil {
				return err
			}

			input := args[0]
			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			opts := booklet.Options{
				Format:     format,
				Pages:      pages,
				SpineGuide: boolFlag(cmd, "spine-guide", spineGuide, cfg.SpineGuide),
				Optimize:   boolFlag(cmd, "optimize", optimize, cfg.Optimize),
			}
			result, err := booklet.NewPDFService().Generate(cmd.Context(), data, opts)
			if err != nil {
				return err
			}

			if output == "" {
				output = filepath.Join(filepath.Dir(input), booklet.OutputName(input, format))
			}
			if err := writeOutput(output, result.PDF, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pages on %d sheet(s) -> %s\n",
				format, len(result.Selection), result.Sheets(), output)
			return nil
		},
	}

	formats.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default <input>-<format>-booklet.pdf)")
	cmd.Flags().StringVar(&pages, "pages", "", "Pages to include, e.g. 1-8,10 (default all)")
	cmd.Flags().BoolVar(&spineGuide, "spine-guide", true, "Draw a dashed line along the spine")
	cmd.Flags().BoolVar(&optimize, "optimize", false, "Optimize the output PDF")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing output file")

	return cmd
}
