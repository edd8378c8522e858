package airbyte_source

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hubspotsource",
	Short: "HubSpot airbyte source",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Please try one of the sub commands")
	},
}

func Execute(ctx context.Context, ver, commit, buildDate string) {
	rootCmd.Version = fmt.Sprintf("%v (commit %v, built %v)", ver, commit, buildDate)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
