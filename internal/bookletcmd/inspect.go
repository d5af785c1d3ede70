package bookletcmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/lehigh-university-libraries/foldbook/internal/booklet"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var pages string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect INPUT.pdf",
		Short: "Show page sizes and the paper each format needs",
		Example: `  foldbook inspect notes.pdf
  foldbook inspect notes.pdf --pages 1-12 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			in, err := booklet.NewPDFService().Inspect(data, pages)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(in)
			}
			return printInspection(cmd.OutOrStdout(), args[0], in)
		},
	}

	cmd.Flags().StringVar(&pages, "pages", "", "Pages to include, e.g. 1-8,10 (default all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func printInspection(w io.Writer, name string, in *booklet.Inspection) error {
	fmt.Fprintf(w, "%s: %d pages, %d selected\n\n", name, len(in.Pages), len(in.Selection))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PAGE\tWIDTH\tHEIGHT\tSHAPE")
	for _, p := range in.Pages {
		shape := "portrait"
		if p.Width > p.Height {
			shape = "landscape"
		}
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%s\n", p.Index+1, p.Width, p.Height, shape)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "FORMAT\tSHEETS\tPRINTED SIDES\t")
	for _, f := range in.Formats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t\n", f.Format, f.Sheets, f.PrintedSides)
	}
	return tw.Flush()
}
