package airbyte_source

import (
	"context"
	"fmt"

	"github.com/planetscale/hubspot-airbyte-source/cmd/internal"
	"github.com/planetscale/hubspot-airbyte-source/lib"
)

type testFileReader map[string]string

func (tfr testFileReader) ReadFile(path string) ([]byte, error) {
	content, ok := tfr[path]
	if !ok {
		return nil, fmt.Errorf("open %v: no such file or directory", path)
	}
	return []byte(content), nil
}

type readInvocation struct {
	hs     lib.HubSpotSource
	stream internal.ConfiguredStream
	state  lib.StreamState
}

type testDatabase struct {
	canConnectErr error
	catalog       internal.Catalog
	discoverErr   error
	readStates    map[string]*lib.StreamState
	readErrs      map[string]error
	reads         []readInvocation
}

func (td *testDatabase) CanConnect(ctx context.Context, hs lib.HubSpotSource) error {
	return td.canConnectErr
}

func (td *testDatabase) DiscoverSchema(ctx context.Context, hs lib.HubSpotSource) (internal.Catalog, error) {
	return td.catalog, td.discoverErr
}

func (td *testDatabase) Read(ctx context.Context, hs lib.HubSpotSource, s internal.ConfiguredStream, state lib.StreamState) (*lib.StreamState, error) {
	td.reads = append(td.reads, readInvocation{hs: hs, stream: s, state: state})
	if err := td.readErrs[s.Stream.Name]; err != nil {
		return nil, err
	}
	return td.readStates[s.Stream.Name], nil
}
