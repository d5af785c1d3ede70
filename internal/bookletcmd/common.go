// Package bookletcmd holds the cobra commands of the foldbook CLI.
package bookletcmd

import (
	"fmt"
	"os"

	"github.com/lehigh-university-libraries/foldbook/internal/config"
	"github.com/lehigh-university-libraries/foldbook/internal/imposition"
	"github.com/spf13/cobra"
)

// LoadConfig reads the file named by the persistent --config flag, if any,
// and the environment.
func LoadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("FOLDBOOK_CONFIG")
	}
	return config.Load(path)
}

// formatFlags are the --format and --orientation flags. Values not given on
// the command line come from the config.
type formatFlags struct {
	size        string
	orientation string
}

func (f *formatFlags) register(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().StringVar(&f.size, "format", def.Format, "Booklet size (a7 or a6)")
	cmd.Flags().StringVar(&f.orientation, "orientation", def.Orientation, "Page orientation for a7 (portrait or landscape)")
}

func (f *formatFlags) resolve(cmd *cobra.Command, cfg config.Config) (imposition.Format, error) {
	size, orientation := cfg.Format, cfg.Orientation
	if cmd.Flags().Changed("format") {
		size = f.size
	}
	if cmd.Flags().Changed("orientation") {
		orientation = f.orientation
	}
	return imposition.Resolve(size, orientation)
}

// boolFlag returns the flag value when it was given, else fallback.
func boolFlag(cmd *cobra.Command, name string, value, fallback bool) bool {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}

func writeOutput(path string, data []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
