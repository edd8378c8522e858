package airbyte_source

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/planetscale/hubspot-airbyte-source/cmd/internal"
	"github.com/planetscale/hubspot-airbyte-source/lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configuredCatalog = `{"streams": [
	{"stream": {"name": "contacts", "namespace": "hubspot"}, "sync_mode": "incremental"},
	{"stream": {"name": "tickets_associations", "namespace": "hubspot"}, "sync_mode": "full_refresh"}
]}`

func TestRead_CanCheckConnectionBeforeRead(t *testing.T) {
	td := &testDatabase{canConnectErr: fmt.Errorf("401 Client Error: Unauthorized")}
	readCommand := ReadCommand(&Helper{
		Database:   td,
		FileReader: testFileReader{"source.json": validConfig, "catalog.json": configuredCatalog},
	})
	b := bytes.NewBufferString("")
	readCommand.SetOut(b)
	readCommand.SetArgs([]string{"--config", "source.json", "--catalog", "catalog.json"})
	require.NoError(t, readCommand.Execute())

	msgs := readAirbyteMessages(t, b)
	require.Len(t, msgs, 2)
	assert.Equal(t, internal.LOG, msgs[0].Type)
	assert.Equal(t, internal.CONNECTION_STATUS, msgs[1].Type)
	assert.Equal(t, "FAILED", msgs[1].ConnectionStatus.Status)
	assert.Empty(t, td.reads)
}

func TestRead_RequiresCatalog(t *testing.T) {
	readCommand := ReadCommand(&Helper{
		Database:   &testDatabase{},
		FileReader: testFileReader{"source.json": validConfig},
	})
	readCommand.SetOut(bytes.NewBufferString(""))
	readCommand.SetErr(bytes.NewBufferString(""))
	readCommand.SetArgs([]string{"--config", "source.json"})
	assert.EqualError(t, readCommand.Execute(), "Please pass path to a valid source catalog file via the [catalog] argument")
}

func TestRead_EmitsStatePerStream(t *testing.T) {
	td := &testDatabase{
		readStates: map[string]*lib.StreamState{
			"contacts":             {Cursor: "2023-07-14T08:30:00Z"},
			"tickets_associations": {},
		},
	}
	readCommand := ReadCommand(&Helper{
		Database: td,
		FileReader: testFileReader{
			"source.json":  validConfig,
			"catalog.json": configuredCatalog,
			"state.json":   `{"streams": {"contacts": {"cursor": "2023-07-01T00:00:00Z"}, "tickets_associations": {"cursor": "stale"}}}`,
		},
	})
	b := bytes.NewBufferString("")
	readCommand.SetOut(b)
	readCommand.SetArgs([]string{"--config", "source.json", "--catalog", "catalog.json", "--state", "state.json"})
	require.NoError(t, readCommand.Execute())

	require.Len(t, td.reads, 2)
	assert.Equal(t, "contacts", td.reads[0].stream.Stream.Name)
	assert.Equal(t, "2023-07-01T00:00:00Z", td.reads[0].state.Cursor)
	assert.Equal(t, "pat-na1-123", td.reads[0].hs.AccessToken)
	assert.Equal(t, "", td.reads[1].state.Cursor, "full refresh streams start without a cursor")

	var states []internal.AirbyteMessage
	for _, msg := range readAirbyteMessages(t, b) {
		if msg.Type == internal.STATE {
			states = append(states, msg)
		}
	}
	require.Len(t, states, 2)
	assert.Equal(t, "2023-07-14T08:30:00Z", states[0].State.Data.Streams["contacts"].Cursor)
	last := states[1].State.Data.Streams
	assert.Equal(t, "2023-07-14T08:30:00Z", last["contacts"].Cursor)
	assert.Equal(t, "", last["tickets_associations"].Cursor)
}

func TestRead_KeepsCursorWhenStreamReturnsNone(t *testing.T) {
	td := &testDatabase{readStates: map[string]*lib.StreamState{"contacts": {}}}
	readCommand := ReadCommand(&Helper{
		Database: td,
		FileReader: testFileReader{
			"source.json":  validConfig,
			"catalog.json": `{"streams": [{"stream": {"name": "contacts"}, "sync_mode": "incremental"}]}`,
			"state.json":   `{"streams": {"contacts": {"cursor": "2023-07-01T00:00:00Z"}}}`,
		},
	})
	b := bytes.NewBufferString("")
	readCommand.SetOut(b)
	readCommand.SetArgs([]string{"--config", "source.json", "--catalog", "catalog.json", "--state", "state.json"})
	require.NoError(t, readCommand.Execute())

	msgs := readAirbyteMessages(t, b)
	last := msgs[len(msgs)-1]
	require.Equal(t, internal.STATE, last.Type)
	assert.Equal(t, "2023-07-01T00:00:00Z", last.State.Data.Streams["contacts"].Cursor)
}

func TestRead_StopsOnStreamError(t *testing.T) {
	td := &testDatabase{
		readErrs: map[string]error{"contacts": fmt.Errorf("unable to read stream contacts: 500 Server Error: Internal Server Error")},
	}
	readCommand := ReadCommand(&Helper{
		Database:   td,
		FileReader: testFileReader{"source.json": validConfig, "catalog.json": configuredCatalog},
	})
	b := bytes.NewBufferString("")
	readCommand.SetOut(b)
	readCommand.SetErr(bytes.NewBufferString(""))
	readCommand.SetArgs([]string{"--config", "source.json", "--catalog", "catalog.json"})
	require.Error(t, readCommand.Execute())

	require.Len(t, td.reads, 1, "later streams are not read after a failure")
	msgs := readAirbyteMessages(t, b)
	last := msgs[len(msgs)-1]
	assert.Equal(t, internal.LOG, last.Type)
	assert.Equal(t, internal.LOGLEVEL_ERROR, last.Log.Level)
	assert.Contains(t, last.Log.Message, "500 Server Error")
}

func TestReadStateDefaultsMissingStreams(t *testing.T) {
	streams := []internal.ConfiguredStream{
		{Stream: internal.Stream{Name: "contacts"}, SyncMode: internal.SYNC_MODE_INCREMENTAL},
		{Stream: internal.Stream{Name: "contacts_history"}, SyncMode: internal.SYNC_MODE_INCREMENTAL},
	}
	ss, err := readState(`{"streams": {"contacts": {"cursor": "2023-07-01T00:00:00Z"}}}`, streams)
	require.NoError(t, err)
	assert.Equal(t, "2023-07-01T00:00:00Z", ss.Streams["contacts"].Cursor)
	require.NotNil(t, ss.Streams["contacts_history"])
	assert.Equal(t, "", ss.Streams["contacts_history"].Cursor)

	_, err = readState("not json", streams)
	assert.Error(t, err)
}
