package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ThatOtherAndrew/netsphere/internal/config"
	"github.com/spf13/cobra"
)

var resourcesCmd = &cobra.Command{
	Use:          "resources",
	Short:        "List the configured dot resources",
	Args:         cobra.NoArgs,
	RunE:         listResources,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(resourcesCmd)
}

func listResources(cmd *cobra.Command, args []string) error {
	return printResources(cmd.OutOrStdout(), loadSettings())
}

// printResources lists every resource with the dot it is bound to and
// reports how many image files are missing.
func printResources(w io.Writer, settings *config.Settings) error {
	if len(settings.Resources) == 0 {
		_, err := fmt.Fprintln(w, "No resources configured")
		return err
	}

	missing := 0
	fmt.Fprintln(w, "Configured resources:")
	for i, r := range settings.Resources {
		path := settings.ResolvePath(r.Image)
		status := ""
		if _, err := os.Stat(path); err != nil {
			status = " (missing)"
			missing++
		}
		fmt.Fprintf(w, "  %3d  %s%s\n", i, path, status)
		if r.Link != "" {
			fmt.Fprintf(w, "       -> %s\n", r.Link)
		}
	}
	if len(settings.Resources) > settings.DotsAmount {
		fmt.Fprintf(w, "%d resource(s) beyond dots_amount will not be shown\n", len(settings.Resources)-settings.DotsAmount)
	}
	if missing > 0 {
		return fmt.Errorf("%d resource image(s) missing", missing)
	}
	return nil
}
