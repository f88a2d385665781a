package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(&ResolveCommand)
}

var ResolveCommand = cobra.Command{
	Use:   "resolve",
	Short: "Resolve a DOI",
	Long:  "Resolve a DOI against the CrossRef registry and print the metadata",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			logger.Fatal("resolve wants 1 argument: the doi")
		}

		metadata, err := resolver.Resolve(context.Background(), args[0])
		if err != nil {
			logger.Fatal("error resolving doi:", err)
		}

		data, err := json.Marshal(metadata)
		if err != nil {
			logger.Fatal(err)
		}
		logger.Print(string(data))
	},
}
