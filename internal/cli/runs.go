package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	runsHistory string
	runsLimit   int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent conversion runs from the history database",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		repo, closeDB, err := openHistory(runsHistory)
		if err != nil {
			return err
		}
		defer closeDB()

		runs, err := repo.Recent(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, "No runs recorded")
			return nil
		}

		for _, run := range runs {
			fmt.Fprintf(out, "%s  %-10s  %-12s  tools=%d  %s\n",
				run.CreatedAt.Format("2006-01-02 15:04:05"), run.Slug, run.Status, run.ToolCount, run.Path)
		}

		counts, err := repo.CountByStatus(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nconverted=%d no_tools=%d missing=%d failed=%d\n",
			counts["converted"], counts["no_tools"], counts["missing"], counts["failed"])
		return nil
	},
}

func init() {
	runsCmd.Flags().StringVar(&runsHistory, "history-db", "runs.db", "SQLite file recording per-application outcomes")
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum number of runs to show")

	rootCmd.AddCommand(runsCmd)
}
