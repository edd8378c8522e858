package airbyte_source

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/planetscale/hubspot-airbyte-source/cmd/internal"
	"github.com/spf13/cobra"
)

//go:embed spec.json
var staticSpec []byte

func init() {
	rootCmd.AddCommand(SpecCommand())
}

func SpecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "spec",
		Short: "Describes inputs needed for connecting to HubSpot",
		RunE: func(cmd *cobra.Command, args []string) error {
			specMessage := internal.SpecMessage{Type: internal.SPEC}
			if err := json.Unmarshal(staticSpec, &specMessage.Spec); err != nil {
				return err
			}

			msg, err := json.Marshal(specMessage)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", msg)
			return nil
		},
	}
}
