package airbyte_source

import (
	"context"
	"fmt"
	"os"

	"github.com/planetscale/hubspot-airbyte-source/cmd/internal"
	"github.com/planetscale/hubspot-airbyte-source/lib"
	"github.com/spf13/cobra"
)

var configFilePath string

func init() {
	rootCmd.AddCommand(CheckCommand(DefaultHelper(os.Stdout)))
}

func CheckCommand(ch *Helper) *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validates the credentials to connect to HubSpot",
		Run: func(cmd *cobra.Command, args []string) {
			ch.Logger = internal.NewSerializer(cmd.OutOrStdout())

			if configFilePath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Please provide path to a valid configuration file")
				return
			}

			hs, err := parseSource(ch.FileReader, configFilePath)
			if err != nil {
				ch.Logger.ConnectionStatus(internal.ConnectionStatus{
					Status:  "FAILED",
					Message: fmt.Sprintf("Configuration for HubSpot is invalid, unable to read source configuration : %v", err),
				})
				return
			}

			ch.EnsureDB(hs)
			cs, _ := checkConnectionStatus(cmd.Context(), ch.Database, hs)
			ch.Logger.ConnectionStatus(cs)
		},
	}
	checkCmd.Flags().StringVar(&configFilePath, "config", "", "Path to the HubSpot source configuration")
	return checkCmd
}

func checkConnectionStatus(ctx context.Context, database internal.HubSpotDatabase, hs lib.HubSpotSource) (internal.ConnectionStatus, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := database.CanConnect(ctx, hs); err != nil {
		return internal.ConnectionStatus{
			Status:  "FAILED",
			Message: fmt.Sprintf("Unable to connect to HubSpot at %v. Failed with \n %v", hs.BaseURL, err),
		}, err
	}

	return internal.ConnectionStatus{
		Status:  "SUCCEEDED",
		Message: fmt.Sprintf("Successfully connected to HubSpot at %v", hs.BaseURL),
	}, nil
}
