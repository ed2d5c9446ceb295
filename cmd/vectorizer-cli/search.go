package main

import (
	"github.com/spf13/cobra"

	"github.com/hivellm/go-vectorizer"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <collection> <query>",
	Short: "Search a collection by text query",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()
		results, err := client.SearchVectors(cmd.Context(), args[0], args[1],
			&vectorizer.SearchOptions{Limit: searchLimit})
		if err != nil {
			return err
		}
		return printJSON(results)
	},
}

var embedCmd = &cobra.Command{
	Use:   "embed <text>",
	Short: "Embed a text with the server's provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()
		embedding, err := client.EmbedText(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(embedding)
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(embedCmd)
}
