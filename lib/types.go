package lib

import (
	"time"
)

const (
	DefaultBaseURL           = "https://api.hubapi.com"
	DefaultPageLimit         = 50
	MaxPageLimit             = 100
	DefaultRequestsPerSecond = 10
	DefaultTimeout           = 30 * time.Second
)

// HubSpotSource is the source configuration handed to every command via --config.
type HubSpotSource struct {
	AccessToken              string  `json:"access_token" validate:"required"`
	BaseURL                  string  `json:"base_url" validate:"omitempty,url"`
	StartDate                string  `json:"start_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	NoSearch                 bool    `json:"no_search"`
	Limit                    int     `json:"limit" validate:"omitempty,min=1,max=100"`
	DynamicHistoryProperties bool    `json:"dynamic_history_properties"`
	RequestsPerSecond        float64 `json:"requests_per_second" validate:"omitempty,gt=0"`
	TimeoutSeconds           int     `json:"timeout_seconds" validate:"omitempty,min=1"`
}

// Validate checks the configuration and fills in defaults for anything left unset.
func (hs *HubSpotSource) Validate() error {
	if err := Validate(hs); err != nil {
		return err
	}

	if hs.BaseURL == "" {
		hs.BaseURL = DefaultBaseURL
	}
	if hs.Limit == 0 {
		hs.Limit = DefaultPageLimit
	}
	if hs.RequestsPerSecond == 0 {
		hs.RequestsPerSecond = DefaultRequestsPerSecond
	}
	return nil
}

func (hs HubSpotSource) Timeout() time.Duration {
	if hs.TimeoutSeconds == 0 {
		return DefaultTimeout
	}
	return time.Duration(hs.TimeoutSeconds) * time.Second
}

// StreamState is the checkpoint kept per stream between syncs.
type StreamState struct {
	Cursor string `json:"cursor,omitempty"`
}

type SyncState struct {
	Streams map[string]*StreamState `json:"streams"`
}
