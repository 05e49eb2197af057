package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/agentware/appforge/internal/batch"
	"github.com/agentware/appforge/internal/registry"
	"github.com/agentware/appforge/internal/storage"
)

var (
	asyncifyRoot    string
	asyncifyApps    string
	asyncifyHistory string
)

var asyncifyCmd = &cobra.Command{
	Use:   "asyncify",
	Short: "Convert blocking method calls to context-aware variants",
	Long: `Rewrite every configured application's source file so that, inside
tool methods, blocking HTTP calls take a context:

  a.Get(url, query)         ->  a.GetContext(ctx, url, query)
  a.HandleResponse(resp)    ->  a.HandleResponseContext(ctx, resp)

Only methods listed in the application's ListTools are rewritten. Files
without tool methods are left untouched. Running twice is a no-op.

Examples:
  appforge asyncify
  appforge asyncify calendly hashnode
  appforge asyncify --root internal/applications --apps apps.yaml
  appforge asyncify --history-db runs.db`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		slugs, err := resolveSlugs(asyncifyRoot, asyncifyApps, args)
		if err != nil {
			return err
		}

		runner := batch.NewRunner(asyncifyRoot, cmd.OutOrStdout(), logger)
		if asyncifyHistory != "" {
			repo, closeDB, err := openHistory(asyncifyHistory)
			if err != nil {
				return err
			}
			defer closeDB()
			runner.Recorder = repo
		}

		return runner.Run(cmd.Context(), slugs)
	},
}

func init() {
	asyncifyCmd.Flags().StringVarP(&asyncifyRoot, "root", "r", "internal/applications", "Applications root directory")
	asyncifyCmd.Flags().StringVarP(&asyncifyApps, "apps", "a", "", "YAML file listing application slugs (default: every subdirectory of root)")
	asyncifyCmd.Flags().StringVar(&asyncifyHistory, "history-db", "", "SQLite file recording per-application outcomes")

	rootCmd.AddCommand(asyncifyCmd)
}

// resolveSlugs loads the slug list from positional args or the YAML
// config when given, otherwise from the subdirectories of root.
func resolveSlugs(root, appsPath string, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if appsPath != "" {
		cfg, err := batch.LoadConfig(appsPath)
		if err != nil {
			return nil, err
		}
		return cfg.Apps, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read applications root: %w", err)
	}
	var slugs []string
	for _, entry := range entries {
		if entry.IsDir() {
			slugs = append(slugs, entry.Name())
		}
	}
	if len(slugs) == 0 {
		return nil, fmt.Errorf("no applications found under %s", root)
	}
	sort.Strings(slugs)
	return slugs, nil
}

// openHistory opens the run-history database and returns a ready
// repository plus a close func.
func openHistory(path string) (*registry.Repository, func(), error) {
	db, err := storage.NewDB(path)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return registry.NewRepository(db), func() { db.Close() }, nil
}
