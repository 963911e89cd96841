package cmd

import (
	"fmt"
	"os"

	"parquet-compactor/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "parquet-compactor",
	Short: "Parquet Compactor Service",
	Long: `Parquet Compactor rolls small time-stamped Parquet objects in an S3 compatible
bucket up into one object per hour, day, month or year.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Debug level selects the development config, which prints ISO8601 timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(exitCode(err))
	}
}
