package lib

import (
	"net/http"
)

// StreamMode is the addressing decision for one stream, made once at construction
// from the no_search flag. Search mode lets the server filter and sort by the
// replication key; full mode pages through the plain list endpoint with no cursor.
type StreamMode struct {
	search         bool
	path           string
	method         string
	replicationKey string
}

func NewStreamMode(def StreamDefinition, noSearch bool) StreamMode {
	if noSearch {
		return StreamMode{
			path:   def.FullPath,
			method: http.MethodGet,
		}
	}

	mode := StreamMode{
		search:         !def.ForceGet,
		path:           def.SearchPath,
		method:         http.MethodPost,
		replicationKey: def.ReplicationKey,
	}
	if def.ForceGet {
		mode.method = http.MethodGet
	}
	return mode
}

// Search reports whether requests go to the search endpoint with a JSON body.
func (m StreamMode) Search() bool { return m.search }

func (m StreamMode) Path() string { return m.path }

func (m StreamMode) Method() string { return m.method }

// ReplicationKey is empty when the stream has no incremental cursor.
func (m StreamMode) ReplicationKey() string { return m.replicationKey }

func (m StreamMode) Incremental() bool { return m.replicationKey != "" }

// Sorted is always false: records are not guaranteed to arrive in replication key order,
// so an interrupted sync cannot resume from the last record seen.
func (m StreamMode) Sorted() bool { return false }

// Schema returns the declared fields plus the replication key when the mode has one.
func (m StreamMode) Schema(def StreamDefinition) []Field {
	fields := make([]Field, 0, len(def.Schema)+1)
	fields = append(fields, def.Schema...)
	if m.replicationKey != "" {
		fields = append(fields, Field{Name: m.replicationKey, Type: FieldTypeTimestamp})
	}
	return fields
}
