package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/noisefield/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective field configuration as YAML",
	Long: `Config resolves the field description from defaults, the config file,
NOISEFIELD_* environment variables and flags, and prints it as YAML. The
output can be saved as noisefield.yaml and edited.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := fieldConfig()
		if err != nil {
			return err
		}
		if err := fc.Validate(); err != nil {
			return err
		}
		out, err := config.Marshal(fc)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
