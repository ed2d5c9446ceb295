package main

import (
	"github.com/spf13/cobra"
)

var healthWait bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the deployment answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()
		if healthWait {
			if err := client.WaitReady(cmd.Context()); err != nil {
				return err
			}
		}
		status, err := client.HealthCheck(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(status)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show server statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()
		stats, err := client.GetStats(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(stats)
	},
}

var indexingCmd = &cobra.Command{
	Use:   "indexing",
	Short: "Show indexing progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()
		progress, err := client.GetIndexingProgress(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(progress)
	},
}

func init() {
	healthCmd.Flags().BoolVar(&healthWait, "wait", false, "poll with backoff until the master answers")
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(indexingCmd)
}
