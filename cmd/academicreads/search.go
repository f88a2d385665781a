package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lgngh/AcademicReads/search"
)

func init() {
	SearchCommand.PersistentFlags().Duration("debounce", 300*time.Millisecond, "delay before a query is issued")
	RootCmd.AddCommand(&SearchCommand)
}

// SearchCommand searches the catalog interactively: every line typed
// on stdin is a new query, results are printed as they settle.
var SearchCommand = cobra.Command{
	Use:   "search",
	Short: "Search the catalog interactively",
	Long:  "Search the catalog interactively. Each line on stdin is a query, an empty line lists everything.",
	Run: func(cmd *cobra.Command, args []string) {
		delay, err := cmd.Flags().GetDuration("debounce")
		if err != nil {
			logger.Fatal(err)
		}

		coordinator := search.NewCoordinator(paperService, delay)
		defer coordinator.Stop()

		go func() {
			for snapshot := range coordinator.Updates() {
				if snapshot.Query == "" {
					fmt.Printf("-- %d papers\n", len(snapshot.Results))
				} else {
					fmt.Printf("-- %d papers for %q\n", len(snapshot.Results), snapshot.Query)
				}
				for _, view := range snapshot.Results {
					rating := "unreviewed"
					if view.Rating.HasReviews {
						rating = fmt.Sprintf("%.1f (%d reviews)", view.Rating.Average, view.Rating.Count)
					}
					fmt.Printf("%4d  %s — %s\n", view.ID, view.Title, rating)
				}
				fmt.Print("> ")
			}
		}()

		fmt.Print("> ")
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			coordinator.Input(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			logger.Fatal("error reading input:", err)
		}
	},
}
