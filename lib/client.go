package lib

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const userAgent = "planetscale-hubspot-airbyte-source/1.0"

// ClientConfig configures the HubSpot HTTP client.
type ClientConfig struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration

	// RateLimit is the number of requests per second, RateBurst the bucket size.
	RateLimit float64
	RateBurst int

	// Transport allows injecting a custom round tripper in tests.
	Transport http.RoundTripper
}

func NewClientConfig(hs HubSpotSource) ClientConfig {
	return ClientConfig{
		BaseURL:     hs.BaseURL,
		AccessToken: hs.AccessToken,
		Timeout:     hs.Timeout(),
		RateLimit:   hs.RequestsPerSecond,
		RateBurst:   1,
	}
}

// Client issues rate limited requests against the HubSpot API.
// It never retries: a failed request is reported to the caller as is.
type Client struct {
	config      ClientConfig
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.RateLimit == 0 {
		config.RateLimit = DefaultRequestsPerSecond
	}
	if config.RateBurst == 0 {
		config.RateBurst = 1
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: config.Transport,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
	}
}

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	URL        string
	Body       []byte
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// URL builds the absolute URL for path and query, keeping any query string
// already present on path.
func (c *Client) URL(path string, query url.Values) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(c.config.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", errors.Wrapf(err, "invalid request path %q", path)
	}

	if len(query) > 0 {
		merged := u.Query()
		for key, values := range query {
			for _, v := range values {
				merged.Add(key, v)
			}
		}
		u.RawQuery = merged.Encode()
	}
	return u.String(), nil
}

// Do waits for the rate limiter and executes req once.
// Non-2xx responses are returned without an error; callers decide what they mean.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter")
	}

	fullURL, err := c.URL(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "unable to marshal request body")
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create request")
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.config.AccessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(err, "%v %v failed", req.Method, fullURL)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read response body from %v", fullURL)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		URL:        fullURL,
		Body:       b,
	}, nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}
