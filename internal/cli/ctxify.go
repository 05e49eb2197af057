package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentware/appforge/internal/transform"
)

var (
	ctxifyRoot string
	ctxifyApps string
)

var ctxifyCmd = &cobra.Command{
	Use:   "ctxify",
	Short: "Add context.Context parameters to tool methods",
	Long: `Insert a leading ctx context.Context parameter into every tool
method that does not already have one, adding the context import as
needed. Helper methods are left alone. This prepares hand-written
applications for asyncify.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		out := cmd.OutOrStdout()

		slugs, err := resolveSlugs(ctxifyRoot, ctxifyApps, args)
		if err != nil {
			return err
		}

		failed := 0
		for _, slug := range slugs {
			path := filepath.Join(ctxifyRoot, slug, "app.go")
			if _, err := os.Stat(path); err != nil {
				fmt.Fprintf(out, "Could not find %s\n", path)
				continue
			}
			res, err := transform.CtxifyFile(path)
			switch {
			case err != nil:
				logger.Error("ctxify failed", "slug", slug, "path", path, "err", err)
				failed++
			case res.Tools == 0:
				fmt.Fprintf(out, "No tool functions found in %s\n", path)
			default:
				fmt.Fprintf(out, "Added context parameters in %s\n", path)
			}
		}

		if failed > 0 {
			return fmt.Errorf("failed to update %d application(s)", failed)
		}
		return nil
	},
}

func init() {
	ctxifyCmd.Flags().StringVarP(&ctxifyRoot, "root", "r", "internal/applications", "Applications root directory")
	ctxifyCmd.Flags().StringVarP(&ctxifyApps, "apps", "a", "", "YAML file listing application slugs (default: every subdirectory of root)")

	rootCmd.AddCommand(ctxifyCmd)
}
