package lib

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

type OnRecord func(NormalizedRecord) error

// Stream is one stream instance for a single run: its definition, the mode it
// runs in and where its property names come from.
type Stream struct {
	Definition        StreamDefinition
	Mode              StreamMode
	Properties        PropertySource
	HistoryProperties PropertySource
}

// ConnectClient is a general purpose interface
// that defines all the data access methods needed for the HubSpot Airbyte source to function.
type ConnectClient interface {
	CanConnect(ctx context.Context) error
	NewStream(def StreamDefinition, hs HubSpotSource) Stream
	Read(ctx context.Context, logger Logger, hs HubSpotSource, s Stream, state StreamState, onRecord OnRecord) (*StreamState, error)
}

func NewConnectClient(client *Client) ConnectClient {
	return &connectClient{
		client: client,
	}
}

type connectClient struct {
	client *Client
}

// CanConnect resolves the contact properties, which needs both a reachable API and a valid token.
func (c connectClient) CanConnect(ctx context.Context) error {
	if _, err := NewDynamicResolver(c.client).Resolve(ctx, ContactsStream.PropertiesObjectType); err != nil {
		return errors.Wrap(err, "unable to list contact properties")
	}
	return nil
}

// NewStream builds a stream instance with its own property cache.
func (c connectClient) NewStream(def StreamDefinition, hs HubSpotSource) Stream {
	resolver := NewDynamicResolver(c.client)
	s := Stream{
		Definition: def,
		Mode:       NewStreamMode(def, hs.NoSearch),
		Properties: NewPropertySource(def.Properties, resolver),
	}
	if def.WithHistory {
		if hs.DynamicHistoryProperties {
			s.HistoryProperties = resolver
		} else {
			s.HistoryProperties = StaticList(def.HistoryProperties)
		}
	}
	return s
}

// Read pages through a stream until the API stops returning a next page token,
// handing every normalized record to onRecord in the order received.
// The returned state is only meaningful when err is nil.
func (c connectClient) Read(ctx context.Context, logger Logger, hs HubSpotSource, s Stream, state StreamState, onRecord OnRecord) (*StreamState, error) {
	def := s.Definition
	preamble := fmt.Sprintf("[%v] ", def.Name)

	properties, err := s.Properties.Resolve(ctx, def.PropertiesObjectType)
	if err != nil {
		return nil, err
	}

	var historyProperties []string
	if s.HistoryProperties != nil {
		if historyProperties, err = s.HistoryProperties.Resolve(ctx, def.PropertiesObjectType); err != nil {
			return nil, err
		}
	}

	pr := PageRequest{
		Method:            s.Mode.Method(),
		Path:              s.Mode.Path(),
		Params:            def.Params,
		Properties:        properties,
		HistoryProperties: historyProperties,
	}

	replicationKey := s.Mode.ReplicationKey()
	if s.Mode.Search() && replicationKey != "" {
		pr.Sorts = []Sort{{PropertyName: replicationKey, Direction: "ASCENDING"}}
		lowerBound := state.Cursor
		if lowerBound == "" {
			lowerBound = hs.StartDate
		}
		if lowerBound != "" {
			pr.Filters = []Filter{{PropertyName: replicationKey, Operator: "GTE", Value: filterValue(lowerBound)}}
			logger.Info(preamble + fmt.Sprintf("syncing records with %v >= %v", replicationKey, lowerBound))
		}
	}

	fetcher := PageFetcher{
		Client: c.client,
		Logger: logger,
		Limit:  hs.Limit,
	}

	cursor := state.Cursor
	pages, records := 0, 0
	for {
		page, err := fetcher.FetchPage(ctx, pr)
		if err != nil {
			return nil, err
		}
		pages++

		for _, raw := range page.Records {
			record := Normalize(raw, replicationKey)
			if replicationKey != "" {
				if v, ok := record[replicationKey].(string); ok {
					cursor = laterCursor(cursor, v)
				}
			}
			if err := onRecord(record); err != nil {
				return nil, err
			}
			records++
		}

		if page.NextPageToken == "" {
			break
		}
		pr.After = page.NextPageToken
	}

	logger.Info(preamble + fmt.Sprintf("finished reading %v records in %v pages", records, pages))
	return &StreamState{Cursor: cursor}, nil
}

// filterValue converts an RFC3339 timestamp to the epoch milliseconds the search API expects.
func filterValue(v string) string {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return v
	}
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func laterCursor(current, candidate string) string {
	if current == "" {
		return candidate
	}
	ct, cErr := time.Parse(time.RFC3339Nano, current)
	nt, nErr := time.Parse(time.RFC3339Nano, candidate)
	if cErr == nil && nErr == nil {
		if nt.After(ct) {
			return candidate
		}
		return current
	}
	if candidate > current {
		return candidate
	}
	return current
}
