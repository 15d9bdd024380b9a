package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ThatOtherAndrew/netsphere/internal/config"
	"github.com/spf13/cobra"
)

var pathOnly bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE:  showConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&pathOnly, "path", false, "only print the settings file path")
}

func showConfig(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.GetSettingsPath(); err != nil {
			return err
		}
	}
	if pathOnly {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	}
	return printSettings(cmd.OutOrStdout(), path, loadSettings())
}

func printSettings(w io.Writer, path string, settings *config.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if _, err := fmt.Fprintf(w, "# %s\n%s\n", path, data); err != nil {
		return err
	}
	return nil
}
