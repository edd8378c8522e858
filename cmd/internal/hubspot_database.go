package internal

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/planetscale/hubspot-airbyte-source/lib"
)

// HubSpotDatabase is a general purpose interface
// that defines all the data access methods needed for the HubSpot Airbyte source to function.
type HubSpotDatabase interface {
	CanConnect(ctx context.Context, hs lib.HubSpotSource) error
	DiscoverSchema(ctx context.Context, hs lib.HubSpotSource) (Catalog, error)
	Read(ctx context.Context, hs lib.HubSpotSource, s ConfiguredStream, state lib.StreamState) (*lib.StreamState, error)
}

// HubSpotAPIDatabase is an implementation of the HubSpotDatabase interface defined above.
// It reads every stream through the HubSpot CRM REST API.
type HubSpotAPIDatabase struct {
	Logger AirbyteSerializer
	Client lib.ConnectClient
}

func (h HubSpotAPIDatabase) CanConnect(ctx context.Context, hs lib.HubSpotSource) error {
	return h.Client.CanConnect(ctx)
}

// DiscoverSchema is static: stream schemas only depend on the no_search setting.
func (h HubSpotAPIDatabase) DiscoverSchema(ctx context.Context, hs lib.HubSpotSource) (Catalog, error) {
	var c Catalog
	for _, def := range lib.Streams() {
		c.Streams = append(c.Streams, BuildStream(def, lib.NewStreamMode(def, hs.NoSearch)))
	}
	return c, nil
}

// Read emits every record of a configured stream and returns the state to checkpoint.
// Full refresh syncs ignore the incoming state.
func (h HubSpotAPIDatabase) Read(ctx context.Context, hs lib.HubSpotSource, s ConfiguredStream, state lib.StreamState) (*lib.StreamState, error) {
	def, ok := lib.LookupStream(s.Stream.Name)
	if !ok {
		return nil, errors.Errorf("stream %v is not supported by this source", s.Stream.Name)
	}

	stream := h.Client.NewStream(def, hs)
	if !s.IncrementalSyncRequested() {
		state = lib.StreamState{}
	} else if !stream.Mode.Incremental() {
		h.Logger.Log(LOGLEVEL_WARN, fmt.Sprintf("stream %v has no replication key in this mode, running a full refresh", def.Name))
		state = lib.StreamState{}
	}

	h.Logger.Info(fmt.Sprintf("syncing stream %v from %v", def.Name, stream.Mode.Path()))
	onRecord := func(record lib.NormalizedRecord) error {
		h.Logger.Record(s.Stream.Namespace, def.Name, record)
		return nil
	}

	sc, err := h.Client.Read(ctx, h.Logger, hs, stream, state, onRecord)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read stream %v", def.Name)
	}
	return sc, nil
}
