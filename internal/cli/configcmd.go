package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the runner configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the runner file and data directory paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := loadApp(cmd)
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "config: %s\n", a.cfg.ConfigFile)
		_, _ = fmt.Fprintf(out, "data:   %s\n", a.cfg.DataDir)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := loadApp(cmd)
		content, err := a.runner.Encode()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	},
}

func init() {
	configCmd.AddCommand(configPathCmd, configShowCmd)
}
