package main

import (
	"github.com/spf13/cobra"

	"github.com/hivellm/go-vectorizer"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Manage collections",
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()
		collections, err := client.ListCollections(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(collections)
	},
}

var collectionsInfoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show one collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()
		info, err := client.GetCollectionInfo(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(info)
	},
}

var createFlags struct {
	dimension   int
	metric      string
	description string
}

var collectionsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a collection on the master",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()
		info, err := client.CreateCollection(cmd.Context(), vectorizer.Collection{
			Name:             args[0],
			Dimension:        createFlags.dimension,
			SimilarityMetric: createFlags.metric,
			Description:      createFlags.description,
		})
		if err != nil {
			return err
		}
		return printJSON(info)
	},
}

var collectionsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a collection and all of its vectors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()
		return client.DeleteCollection(cmd.Context(), args[0])
	},
}

func init() {
	collectionsCreateCmd.Flags().IntVar(&createFlags.dimension, "dimension", 512, "vector dimension")
	collectionsCreateCmd.Flags().StringVar(&createFlags.metric, "metric", "cosine", "similarity metric")
	collectionsCreateCmd.Flags().StringVar(&createFlags.description, "description", "", "collection description")

	collectionsCmd.AddCommand(collectionsListCmd)
	collectionsCmd.AddCommand(collectionsInfoCmd)
	collectionsCmd.AddCommand(collectionsCreateCmd)
	collectionsCmd.AddCommand(collectionsDeleteCmd)
	rootCmd.AddCommand(collectionsCmd)
}
