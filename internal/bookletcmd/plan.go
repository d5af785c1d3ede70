package bookletcmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lehigh-university-libraries/foldbook/internal/config"
	"github.com/lehigh-university-libraries/foldbook/internal/document"
	"github.com/lehigh-university-libraries/foldbook/internal/imposition"
	"github.com/lehigh-university-libraries/foldbook/internal/planio"
	"github.com/lehigh-university-libraries/foldbook/internal/selection"
	"github.com/spf13/cobra"
)

// NewPlanCmd creates the plan command
func NewPlanCmd() *cobra.Command {
	var count int
	var input string
	var pages string
	var outputFormat string
	var output string
	var verify bool
	var formats formatFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show where every page goes without rendering",
		Long: `Print the imposition plan for a page count or a PDF: which page lands in
which cell of each sheet side and whether it is printed upside down.

The plan can be written as text, yaml, json, csv or parquet. Text grids are
drawn the way the sheet lies on the table, top row first; a "v" marks pages
printed upside down.`,
		Example: `  # Plan a 20 page A7 booklet
  foldbook plan --count 20

  # Plan a PDF as A6 and save it as parquet, checking the file afterwards
  foldbook plan --input notes.pdf --format a6 --output-format parquet -o plan.parquet --verify`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return err
			}
			format, err := formats.resolve(cmd, cfg)
			if err != nil {
				return err
			}
			outFormat, err := planio.ParseFormat(outputFormat)
			if err != nil {
				return err
			}

			total, err := pageCount(cfg, count, input)
			if err != nil {
				return err
			}
			sel, err := selection.Select(pages, total)
			if err != nil {
				return err
			}
			plan, err := imposition.Build(format, len(sel))
			if err != nil {
				return err
			}

			return executePlan(cmd.OutOrStdout(), plan, sel, outFormat, output, verify)
		},
	}

	formats.register(cmd)
	cmd.Flags().IntVar(&count, "count", 0, "Number of pages in the document")
	cmd.Flags().StringVar(&input, "input", "", "Read the page count from a PDF")
	cmd.Flags().StringVar(&pages, "pages", "", "Pages to include, e.g. 1-8,10 (default all)")
	cmd.Flags().StringVar(&outputFormat, "output-format", "text", "Output format (text, yaml, json, csv, parquet)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the plan to a file instead of stdout")
	cmd.Flags().BoolVar(&verify, "verify", false, "Read a parquet plan back and check it")
	cmd.MarkFlagsMutuallyExclusive("count", "input")
	cmd.MarkFlagsOneRequired("count", "input")

	return cmd
}

func pageCount(cfg config.Config, count int, input string) (int, error) {
	if input == "" {
		if err := cfg.CheckPageCount(count); err != nil {
			return 0, fmt.Errorf("--count: %w", err)
		}
		return count, nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}
	src, err := document.NewPDF().Load(data)
	if err != nil {
		return 0, err
	}
	if src.PageCount() == 0 {
		return 0, document.ErrEmptyDocument
	}
	return src.PageCount(), nil
}

func executePlan(stdout io.Writer, plan *imposition.Plan, sel []int, format planio.Format, output string, verify bool) error {
	if verify && (format != planio.Parquet || output == "") {
		return errors.New("--verify needs --output-format parquet and --output")
	}
	if format == planio.Parquet && output == "" {
		return errors.New("parquet output needs --output")
	}

	var buf bytes.Buffer
	if err := planio.Write(&buf, format, plan, sel); err != nil {
		return err
	}
	if output == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	if verify {
		records, err := planio.ReadParquetFile(output)
		if err != nil {
			return err
		}
		if err := verifyRecords(records, planio.Records(plan, sel)); err != nil {
			return fmt.Errorf("verify %s: %w", output, err)
		}
		fmt.Fprintf(stdout, "Verified %d slots in %s\n", len(records), output)
		return nil
	}

	fmt.Fprintf(stdout, "Plan written to %s\n", output)
	return nil
}

func verifyRecords(got, want []planio.Record) error {
	if len(got) != len(want) {
		return fmt.Errorf("expected %d slots, found %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("slot %d: expected %+v, found %+v", i, want[i], got[i])
		}
	}
	return nil
}
