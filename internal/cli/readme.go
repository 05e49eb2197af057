package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentware/appforge/internal/docs"
)

var (
	readmeRoot   string
	readmeOutput string
)

var readmeCmd = &cobra.Command{
	Use:   "readme",
	Short: "Build the applications README index",
	Long: `Collect every application package under the root directory and
render a markdown index of applications and their tool methods.

Examples:
  appforge readme
  appforge readme -o APPLICATIONS.md`,
	RunE: func(cmd *cobra.Command, args []string) error {
		apps, err := docs.Collect(readmeRoot)
		if err != nil {
			return err
		}

		output := docs.Render(apps)
		if readmeOutput != "" {
			if err := os.WriteFile(readmeOutput, []byte(output+"\n"), 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Index written to %s\n", readmeOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	readmeCmd.Flags().StringVarP(&readmeRoot, "root", "r", "internal/applications", "Applications root directory")
	readmeCmd.Flags().StringVarP(&readmeOutput, "output", "o", "", "Output file path (default: stdout)")

	rootCmd.AddCommand(readmeCmd)
}
