package internal

import (
	"context"

	"github.com/planetscale/hubspot-airbyte-source/lib"
)

type testAirbyteLogger struct {
	logMessages map[string][]string
	records     map[string][]map[string]interface{}
	states      []lib.SyncState
}

func (tal *testAirbyteLogger) Info(message string) {
	tal.Log(LOGLEVEL_INFO, message)
}

func (tal *testAirbyteLogger) Log(level, message string) {
	if tal.logMessages == nil {
		tal.logMessages = map[string][]string{}
	}
	tal.logMessages[level] = append(tal.logMessages[level], message)
}

func (testAirbyteLogger) Catalog(catalog Catalog) {}

func (testAirbyteLogger) ConnectionStatus(status ConnectionStatus) {}

func (tal *testAirbyteLogger) Record(namespace, stream string, data map[string]interface{}) {
	if tal.records == nil {
		tal.records = map[string][]map[string]interface{}{}
	}
	key := namespace + "." + stream
	tal.records[key] = append(tal.records[key], data)
}

func (testAirbyteLogger) Flush() {}

func (tal *testAirbyteLogger) State(syncState lib.SyncState) {
	tal.states = append(tal.states, syncState)
}

func (tal *testAirbyteLogger) Error(error string) {
	tal.Log(LOGLEVEL_ERROR, error)
}

type readInvocation struct {
	stream lib.Stream
	state  lib.StreamState
}

// connectClientMock serves canned records and records how Read was invoked.
type connectClientMock struct {
	canConnectErr error
	records       []lib.NormalizedRecord
	readState     *lib.StreamState
	readErr       error
	reads         []readInvocation
}

func (c *connectClientMock) CanConnect(ctx context.Context) error {
	return c.canConnectErr
}

func (c *connectClientMock) NewStream(def lib.StreamDefinition, hs lib.HubSpotSource) lib.Stream {
	return lib.Stream{
		Definition: def,
		Mode:       lib.NewStreamMode(def, hs.NoSearch),
		Properties: lib.StaticList(def.Properties),
	}
}

func (c *connectClientMock) Read(ctx context.Context, logger lib.Logger, hs lib.HubSpotSource, s lib.Stream, state lib.StreamState, onRecord lib.OnRecord) (*lib.StreamState, error) {
	c.reads = append(c.reads, readInvocation{stream: s, state: state})
	for _, r := range c.records {
		if err := onRecord(r); err != nil {
			return nil, err
		}
	}
	return c.readState, c.readErr
}
