package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List available log sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := newReader().ListSources(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list sources: %w", err)
		}

		if len(names) == 0 {
			fmt.Fprintln(os.Stderr, "no log sources found")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
