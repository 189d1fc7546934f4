package main

import (
	"os"

	"github.com/spf13/cobra"
	"tracespace/internal/di"
	"tracespace/internal/structures"
)

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:          "tracespaced",
	Short:        "Tiered retention daemon for the trace space visualization",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the daemon: scheduled refresh cycles, tier maintenance and the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := di.InitApp(&flags)
		return err
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single refresh cycle and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		scheduler, err := di.InitScheduler(&flags)
		if err != nil {
			return err
		}
		return scheduler.RunCycle()
	},
}

var maintainCmd = &cobra.Command{
	Use:   "maintain",
	Short: "Run one tier migration pass and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		scheduler, err := di.InitScheduler(&flags)
		if err != nil {
			return err
		}
		return scheduler.RunMaintenance()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "enable debug logging to stdout")
	rootCmd.AddCommand(serveCmd, runCmd, maintainCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
