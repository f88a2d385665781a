package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	IndexCommand.AddCommand(&IndexAllCommand)
	RootCmd.AddCommand(&IndexCommand)
}

var IndexCommand = cobra.Command{
	Use:   "index",
	Short: "Index papers",
	Long:  "Index papers from their ids",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			logger.Fatal("index wants ids as arguments")
		}

		ids := make([]int, len(args))
		for i, arg := range args {
			id, err := strconv.Atoi(arg)
			if err != nil {
				logger.Fatal("ids should be integers: ", err)
			}
			ids[i] = id
		}

		papers, err := paperStore.Get(ids...)
		if err != nil {
			logger.Fatal("error getting papers:", err)
		}

		for _, paper := range papers {
			if err := paperIndex.Index(paper); err != nil {
				logger.Fatal("error indexing:", err)
			}
			logger.Printf("<Paper %d> indexed", paper.ID)
		}
	},
}

var IndexAllCommand = cobra.Command{
	Use:   "all",
	Short: "Index all papers",
	Long:  "Index all papers in the store",
	Run: func(cmd *cobra.Command, args []string) {
		papers, err := paperStore.List()
		if err != nil {
			logger.Fatal("error listing papers:", err)
		}

		for _, paper := range papers {
			if err := paperIndex.Index(paper); err != nil {
				logger.Fatal("error indexing:", err)
			}
			if verbose {
				logger.Printf("<Paper %d> indexed", paper.ID)
			}
		}
		logger.Printf("%d papers indexed", len(papers))
	},
}
