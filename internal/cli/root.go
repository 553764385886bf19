package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "pongcli",
		Short: "CLI tool for the Pong game server",
		Long: `pongcli talks to a running Pong server: it registers and logs in
accounts on the auth port and fetches the win leaderboard.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			client, err = NewClient(cfg)
			return err
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.AuthAddr, "auth-addr", cfg.AuthAddr, "Auth server address (env: PONG_AUTH_ADDR)")
	rootCmd.PersistentFlags().StringVar(&cfg.LeaderboardURL, "leaderboard-url", cfg.LeaderboardURL, "Leaderboard base URL (env: PONG_LEADERBOARD_URL)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLeaderboardCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
