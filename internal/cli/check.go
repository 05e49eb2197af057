package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentware/appforge/internal/transform"
)

var (
	checkRoot string
	checkApps string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report tool methods that call other tool methods",
	Long: `Scan every application for tool methods that invoke another tool
method on the same receiver. Such internal calls usually mean an
endpoint wrapper grew orchestration logic that belongs in the caller.
The command exits non-zero when any internal call is found.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		slugs, err := resolveSlugs(checkRoot, checkApps, args)
		if err != nil {
			return err
		}

		found := 0
		for _, slug := range slugs {
			path := filepath.Join(checkRoot, slug, "app.go")
			if _, err := os.Stat(path); err != nil {
				fmt.Fprintf(out, "Could not find %s\n", path)
				continue
			}
			calls, err := transform.CheckFile(path)
			if err != nil {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}
			for _, call := range calls {
				fmt.Fprintf(out, "%s: %s\n", path, call)
				found++
			}
		}

		if found > 0 {
			return fmt.Errorf("found %d internal tool call(s)", found)
		}
		fmt.Fprintln(out, "No internal tool calls found")
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkRoot, "root", "r", "internal/applications", "Applications root directory")
	checkCmd.Flags().StringVarP(&checkApps, "apps", "a", "", "YAML file listing application slugs (default: every subdirectory of root)")

	rootCmd.AddCommand(checkCmd)
}
