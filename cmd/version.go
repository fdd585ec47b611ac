package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the harvest release version.
const Version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "harvest v%s\n", Version)
		},
	}
}
