// Package cli implements the webqa command line client.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"webqa/internal/client"
)

var (
	serverURL     string
	clientTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "webqa",
	Short: "Ask questions about web pages",
	Long: `webqa is a client for a running webqa server.
Ingest a set of URLs, then ask questions answered only from their content.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:5000", "webqa server base URL")
	rootCmd.PersistentFlags().DurationVar(&clientTimeout, "timeout", 5*time.Minute, "request timeout")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newClient() *client.Client {
	return client.New(serverURL, clientTimeout)
}
