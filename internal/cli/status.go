package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the server has ingested",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	st, err := newClient().Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	cmd.Printf("state: %s\n", st.State)
	if len(st.URLs) == 0 {
		return nil
	}
	cmd.Printf("chunks: %d\n", st.ChunkCount)
	for _, u := range st.URLs {
		cmd.Printf("  %s\n", u)
	}
	return nil
}
