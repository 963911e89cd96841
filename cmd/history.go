package cmd

import (
	"errors"
	"fmt"

	"parquet-compactor/feature/journal"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded compaction runs",
	Long:  `Lists recent runs from the journal database, or the group outcomes of one run.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if a.journal == nil {
			return errors.New("no journal database configured (set DATABASE_DRIVER)")
		}

		if len(args) == 1 {
			run, err := a.journal.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printRun(run)
			return nil
		}

		runs, err := a.journal.ListRuns(cmd.Context(), journal.Filter{
			Username: a.cfg.Compaction.Username,
			Database: a.cfg.Compaction.Database,
			Table:    a.cfg.Compaction.Table,
			Limit:    historyLimit,
		})
		if err != nil {
			return err
		}

		fmt.Printf("\n=== Compaction History (%d runs) ===\n", len(runs))
		for _, r := range runs {
			status := "ok"
			if !r.Succeeded {
				status = "incomplete"
			}
			fmt.Printf("%s  %s  %s/%s/%s  %s %s..%s  compacted=%d unreaped=%d failed=%d  %s\n",
				r.StartedAt.Format("2006-01-02 15:04:05"), r.ID,
				r.Username, r.Database, r.Table,
				r.Granularity, r.StartDate, r.EndDate,
				r.Compacted, r.Unreaped, r.Failed, status)
		}
		return nil
	},
}

func printRun(r *journal.Run) {
	fmt.Printf("\n=== Run %s ===\n", r.ID)
	fmt.Printf("Table: %s/%s/%s\n", r.Username, r.Database, r.Table)
	fmt.Printf("Granularity: %s (%s..%s)\n", r.Granularity, r.StartDate, r.EndDate)
	fmt.Printf("Started: %s\n", r.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Duration: %s\n", r.FinishedAt.Sub(r.StartedAt))
	for _, g := range r.Groups {
		fmt.Printf("  [%s] %s -> %s (%d rows)", g.Status, g.PartitionKey, g.Destination, g.Rows)
		if g.Error != "" {
			fmt.Printf(": %s", g.Error)
		}
		fmt.Println()
	}
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", journal.DefaultLimit, "maximum number of runs to list")
	RootCmd.AddCommand(historyCmd)
}
