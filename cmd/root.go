package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/foldbook/internal/bookletcmd"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "foldbook",
		Short: "Turn PDFs into fold-up booklets printed on a single sheet",
		Long: `Foldbook imposes the pages of a PDF onto A4 sheets that, printed double-sided
and folded, become a small booklet: A7 with three folds or A6 with two.

Defaults can be set in a YAML file (--config) or with FOLDBOOK_* environment
variables, which may also live in a .env file.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")
	cmd.PersistentFlags().String("config", "", "YAML file with default settings")

	// Add subcommands
	cmd.AddCommand(bookletcmd.NewImposeCmd())
	cmd.AddCommand(bookletcmd.NewPlanCmd())
	cmd.AddCommand(bookletcmd.NewInspectCmd())
	cmd.AddCommand(bookletcmd.NewSampleCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
