package cli

import (
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/uf46yr/htop/internal/config"
	"github.com/uf46yr/htop/internal/errors"
)

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration htop would run with: defaults, then the config
file, then HTOP_* environment variables, then flags.

The output is valid .htop.yaml and can be saved as a starting point.

Examples:
  htop config
  htop config --interval 5s > .htop.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig(cmd, &flags)
		if err != nil {
			return err
		}
		return writeConfig(cmd.OutOrStdout(), cfg, path)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// writeConfig encodes cfg as YAML, preceded by a comment naming its source.
func writeConfig(w io.Writer, cfg *config.Config, path string) error {
	source := path
	if source == "" {
		source = "defaults and environment"
	}
	if _, err := io.WriteString(w, "# source: "+source+"\n"); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO, "Cannot write configuration", "")
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO, "Cannot write configuration", "")
	}
	return enc.Close()
}
