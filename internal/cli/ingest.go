package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [url...]",
	Short: "Ingest web pages",
	Long: `Scrapes the given URLs on the server and rebuilds its index from them.
The previously ingested content is replaced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	resp, err := newClient().Ingest(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Println(resp.Message)
	for _, r := range resp.Results {
		cmd.Printf("  ok    %s (%d chars)\n", r.URL, r.ContentLength)
	}
	for _, f := range resp.Failures {
		cmd.Printf("  fail  %s: %s\n", f.URL, f.Error)
	}
	cmd.Printf("%d chunks indexed\n", resp.ChunkCount)
	return nil
}
