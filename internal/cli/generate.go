package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentware/appforge/internal/generator"
)

var (
	generateRoot string
	generateSlug string
)

var generateCmd = &cobra.Command{
	Use:   "generate [spec]",
	Short: "Generate an application package from an OpenAPI document",
	Long: `Generate a blocking-style application package from an OpenAPI 3.x
document: one exported method per operation plus a ListTools
enumeration. The package is written to <root>/<slug>/app.go and is a
valid asyncify input.

Examples:
  appforge generate specs/calendly.yaml
  appforge generate specs/calendly.yaml --slug calendly
  appforge generate api.yaml --root internal/applications`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		specPath := args[0]
		spec, err := os.ReadFile(specPath)
		if err != nil {
			return fmt.Errorf("failed to read spec: %w", err)
		}

		slug := generateSlug
		if slug == "" {
			slug = strippedBase(specPath)
		}

		app, err := generator.Parse(spec, slug)
		if err != nil {
			return err
		}
		src, err := generator.Render(app)
		if err != nil {
			return err
		}

		dir := filepath.Join(generateRoot, slug)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		target := filepath.Join(dir, "app.go")
		if err := os.WriteFile(target, src, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Generated %s with %d methods\n", target, len(app.Methods))
		return nil
	},
}

// strippedBase derives a slug from a spec path: base name, extension
// removed.
func strippedBase(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

func init() {
	generateCmd.Flags().StringVarP(&generateRoot, "root", "r", "internal/applications", "Applications root directory")
	generateCmd.Flags().StringVarP(&generateSlug, "slug", "s", "", "Application slug (default: spec file base name)")

	rootCmd.AddCommand(generateCmd)
}
