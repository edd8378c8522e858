package airbyte_source

import (
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/planetscale/hubspot-airbyte-source/cmd/internal"
	"github.com/planetscale/hubspot-airbyte-source/lib"
)

type Helper struct {
	Database   internal.HubSpotDatabase
	FileReader FileReader
	Logger     internal.AirbyteSerializer
}

type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type fileReader struct{}

func (f fileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func DefaultHelper(w io.Writer) *Helper {
	return &Helper{
		FileReader: fileReader{},
		Logger:     internal.NewSerializer(w),
	}
}

// EnsureDB builds the HubSpot API database for hs unless one was injected.
func (h *Helper) EnsureDB(hs lib.HubSpotSource) {
	if h.Database != nil {
		return
	}

	client := lib.NewClient(lib.NewClientConfig(hs))
	h.Database = internal.HubSpotAPIDatabase{
		Logger: h.Logger,
		Client: lib.NewConnectClient(client),
	}
}

func parseSource(reader FileReader, configFilePath string) (lib.HubSpotSource, error) {
	var hs lib.HubSpotSource
	contents, err := reader.ReadFile(configFilePath)
	if err != nil {
		return hs, err
	}
	if err = json.Unmarshal(contents, &hs); err != nil {
		return hs, errors.Wrap(err, "config is not valid JSON")
	}
	if err = hs.Validate(); err != nil {
		return hs, err
	}
	return hs, nil
}
