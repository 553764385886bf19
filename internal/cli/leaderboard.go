package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the win leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := client.Leaderboard()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No wins recorded yet")
				return nil
			}
			for i, e := range entries {
				fmt.Printf("%d. %s (%d wins)\n", i+1, e.Name, e.Score)
			}
			return nil
		},
	}
}
