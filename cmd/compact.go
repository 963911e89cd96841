package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"parquet-compactor/feature/compaction"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// compactCmd represents the compact command
var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Merge the source objects of one table",
	Long: `Selects the objects of {username}/{database}/{table}/ stamped inside the date range,
groups them by hour, day, month or year and replaces every group with one merged object.
Sources are deleted only after their merged object is written.

Flags override the COMPACTION_* configuration.`,
	Example: `  parquet-compactor compact --username u --database db --table events \
    --start 2025-02-10 --end 2025-02-10 --granularity hour`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		req := a.cfg.Compaction.Request()
		flags := cmd.Flags()
		overrideString(flags.Changed("username"), &req.Username, compactFlags.username)
		overrideString(flags.Changed("database"), &req.Database, compactFlags.database)
		overrideString(flags.Changed("table"), &req.Table, compactFlags.table)
		overrideString(flags.Changed("start"), &req.StartDate, compactFlags.start)
		overrideString(flags.Changed("end"), &req.EndDate, compactFlags.end)
		overrideString(flags.Changed("granularity"), &req.Granularity, compactFlags.granularity)
		req.DryRun = compactFlags.dryRun

		summary, err := a.service.Run(cmd.Context(), req)
		if err != nil {
			return err
		}

		if compactFlags.json {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(summary); err != nil {
				return fmt.Errorf("failed to encode summary: %w", err)
			}
		} else {
			printSummary(summary)
		}

		if !summary.Succeeded() {
			a.logger.Warn("Run finished with incomplete groups",
				zap.Int("published_not_reaped", summary.Count(compaction.StatusUnreaped)),
				zap.Int("failed", summary.Count(compaction.StatusFailed)),
			)
			if compactFlags.strict {
				return errIncomplete
			}
		}
		return nil
	},
}

var compactFlags struct {
	username    string
	database    string
	table       string
	start       string
	end         string
	granularity string
	dryRun      bool
	strict      bool
	json        bool
}

func overrideString(changed bool, dst *string, value string) {
	if changed {
		*dst = value
	}
}

func printSummary(s *compaction.Summary) {
	title := "Compaction"
	if s.DryRun {
		title = "Compaction Plan"
	}

	fmt.Printf("\n=== %s: %s (%s, %s..%s) ===\n", title, s.Namespace, s.Granularity, s.StartDate, s.EndDate)
	fmt.Printf("Run ID: %s\n", s.RunID)
	fmt.Printf("Candidates: %d\n", s.Candidates)
	fmt.Printf("Groups: %d\n", len(s.Groups))

	for _, g := range s.Groups {
		line := fmt.Sprintf("  [%s] %s -> %s (%d sources", g.Status, g.PartitionKey, g.Destination, len(g.Sources))
		if g.Status == compaction.StatusCompacted || g.Status == compaction.StatusUnreaped {
			line += fmt.Sprintf(", %d rows", g.Rows)
		}
		line += ")"
		if g.Error != "" {
			line += ": " + g.Error
		}
		fmt.Println(line)
		if len(g.DeleteFailures) > 0 {
			fmt.Printf("      not deleted: %s\n", strings.Join(g.DeleteFailures, ", "))
		}
	}

	if !s.DryRun {
		fmt.Printf("Compacted: %d\n", s.Count(compaction.StatusCompacted))
		fmt.Printf("Published, not reaped: %d\n", s.Count(compaction.StatusUnreaped))
		fmt.Printf("Failed: %d\n", s.Count(compaction.StatusFailed))
		fmt.Printf("Execution Time: %s\n", s.Duration())
	}
}

func init() {
	f := compactCmd.Flags()
	f.StringVarP(&compactFlags.username, "username", "u", "", "first segment of the table prefix")
	f.StringVarP(&compactFlags.database, "database", "d", "", "second segment of the table prefix")
	f.StringVarP(&compactFlags.table, "table", "t", "", "table name")
	f.StringVar(&compactFlags.start, "start", "", "first day to compact (YYYY-MM-DD)")
	f.StringVar(&compactFlags.end, "end", "", "last day to compact (YYYY-MM-DD)")
	f.StringVarP(&compactFlags.granularity, "granularity", "g", "", "hour, day, month or year")
	f.BoolVar(&compactFlags.dryRun, "dry-run", false, "list merge groups without reading or writing objects")
	f.BoolVar(&compactFlags.strict, "strict", false, "exit non-zero unless every group was published and reaped")
	f.BoolVar(&compactFlags.json, "json", false, "print the summary as JSON")

	RootCmd.AddCommand(compactCmd)
}
