package airbyte_source

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/planetscale/hubspot-airbyte-source/cmd/internal"
	"github.com/planetscale/hubspot-airbyte-source/lib"
	"github.com/spf13/cobra"
)

var (
	readSourceConfigFilePath string
	readSourceCatalogPath    string
	stateFilePath            string
)

func init() {
	rootCmd.AddCommand(ReadCommand(DefaultHelper(os.Stdout)))
}

func ReadCommand(ch *Helper) *cobra.Command {
	readCmd := &cobra.Command{
		Use:          "read",
		Short:        "Converts HubSpot CRM objects into AirbyteRecordMessages",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ch.Logger = internal.NewSerializer(cmd.OutOrStdout())
			ctx := cmd.Context()

			if readSourceConfigFilePath == "" {
				return errors.Errorf("Please pass path to a valid source config file via the [%v] argument", "config")
			}

			if readSourceCatalogPath == "" {
				return errors.Errorf("Please pass path to a valid source catalog file via the [%v] argument", "catalog")
			}

			hs, err := parseSource(ch.FileReader, readSourceConfigFilePath)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Please provide path to a valid configuration file")
				return nil
			}

			ch.EnsureDB(hs)
			ch.Logger.Log(internal.LOGLEVEL_INFO, "Checking connection")
			cs, err := checkConnectionStatus(ctx, ch.Database, hs)
			if err != nil {
				ch.Logger.ConnectionStatus(cs)
				return nil
			}

			catalog, err := readCatalog(ch.FileReader, readSourceCatalogPath)
			if err != nil {
				ch.Logger.Error(fmt.Sprintf("Unable to read catalog : %v", err))
				return err
			}

			if len(catalog.Streams) == 0 {
				ch.Logger.Log(internal.LOGLEVEL_ERROR, "catalog has no streams")
				return nil
			}

			state := ""
			if stateFilePath != "" {
				b, err := ch.FileReader.ReadFile(stateFilePath)
				if err != nil {
					ch.Logger.Error(fmt.Sprintf("Unable to read state : %v", err))
					return err
				}
				state = string(b)
			}

			syncState, err := readState(state, catalog.Streams)
			if err != nil {
				ch.Logger.Error(fmt.Sprintf("Unable to read state : %v", err))
				return err
			}

			for _, configured := range catalog.Streams {
				streamName := configured.Stream.Name
				streamState := syncState.Streams[streamName]

				sc, err := ch.Database.Read(ctx, hs, configured, *streamState)
				if err != nil {
					ch.Logger.Error(err.Error())
					ch.Logger.Flush()
					return err
				}

				if sc != nil {
					// a stream without a replication key leaves the older state untouched.
					if sc.Cursor != "" {
						syncState.Streams[streamName] = sc
					}
				}
				ch.Logger.State(syncState)
			}

			ch.Logger.Flush()
			return nil
		},
	}
	readCmd.Flags().StringVar(&readSourceCatalogPath, "catalog", "", "Path to the configured catalog")
	readCmd.Flags().StringVar(&readSourceConfigFilePath, "config", "", "Path to the HubSpot source configuration")
	readCmd.Flags().StringVar(&stateFilePath, "state", "", "Path to the HubSpot state information")
	return readCmd
}

// readState decodes the incoming state and makes sure every configured stream has an entry.
// Streams synced as a full refresh start from an empty cursor.
func readState(state string, streams []internal.ConfiguredStream) (lib.SyncState, error) {
	syncState := lib.SyncState{
		Streams: map[string]*lib.StreamState{},
	}
	if state != "" {
		if err := json.Unmarshal([]byte(state), &syncState); err != nil {
			return syncState, err
		}
		if syncState.Streams == nil {
			syncState.Streams = map[string]*lib.StreamState{}
		}
	}

	for _, s := range streams {
		if ss, ok := syncState.Streams[s.Stream.Name]; !ok || ss == nil || !s.IncrementalSyncRequested() {
			syncState.Streams[s.Stream.Name] = &lib.StreamState{}
		}
	}

	return syncState, nil
}

func readCatalog(reader FileReader, path string) (c internal.ConfiguredCatalog, err error) {
	b, err := reader.ReadFile(path)
	if err != nil {
		return c, err
	}
	err = json.Unmarshal(b, &c)
	return c, err
}
