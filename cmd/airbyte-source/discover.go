package airbyte_source

import (
	"fmt"
	"os"

	"github.com/planetscale/hubspot-airbyte-source/cmd/internal"
	"github.com/spf13/cobra"
)

var sourceConfigFilePath string

func init() {
	rootCmd.AddCommand(DiscoverCommand(DefaultHelper(os.Stdout)))
}

func DiscoverCommand(ch *Helper) *cobra.Command {
	discoverCmd := &cobra.Command{
		Use:   "discover",
		Short: "Discovers the streams available from HubSpot",
		Run: func(cmd *cobra.Command, args []string) {
			ch.Logger = internal.NewSerializer(cmd.OutOrStdout())
			ctx := cmd.Context()

			if sourceConfigFilePath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Please provide path to a valid configuration file")
				return
			}

			hs, err := parseSource(ch.FileReader, sourceConfigFilePath)
			if err != nil {
				ch.Logger.ConnectionStatus(internal.ConnectionStatus{
					Status:  "FAILED",
					Message: fmt.Sprintf("Configuration for HubSpot is invalid, unable to read source configuration : %v", err),
				})
				return
			}

			ch.EnsureDB(hs)
			cs, err := checkConnectionStatus(ctx, ch.Database, hs)
			if err != nil {
				ch.Logger.ConnectionStatus(cs)
				return
			}

			c, err := ch.Database.DiscoverSchema(ctx, hs)
			if err != nil {
				ch.Logger.Log(internal.LOGLEVEL_ERROR, fmt.Sprintf("Unable to discover streams, failed with [%v]", err))
				return
			}

			ch.Logger.Catalog(c)
		},
	}

	discoverCmd.Flags().StringVar(&sourceConfigFilePath, "config", "", "Path to the HubSpot source configuration")
	return discoverCmd
}
