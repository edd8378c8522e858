package lib

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	// RecordsPath locates the records of a page, $.results[*].
	RecordsPath = "results"
	// NextPageTokenPath locates the continuation token, $.paging.next.after.
	NextPageTokenPath = "paging.next.after"
)

// Logger is the subset of the Airbyte serializer the library logs through.
type Logger interface {
	Info(message string)
	Error(message string)
}

// RawRecord is a single record object exactly as it came back from the API.
type RawRecord []byte

type Filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type Sort struct {
	PropertyName string `json:"propertyName"`
	Direction    string `json:"direction"`
}

type filterGroup struct {
	Filters []Filter `json:"filters"`
}

type searchRequest struct {
	FilterGroups []filterGroup `json:"filterGroups,omitempty"`
	Sorts        []Sort        `json:"sorts,omitempty"`
	Properties   []string      `json:"properties,omitempty"`
	Limit        int           `json:"limit"`
	After        string        `json:"after,omitempty"`
}

// PageRequest describes one page to fetch. Filters and Sorts only apply to POST searches.
type PageRequest struct {
	Method            string
	Path              string
	Params            url.Values
	Properties        []string
	HistoryProperties []string
	After             string
	Filters           []Filter
	Sorts             []Sort
}

type Page struct {
	Records       []RawRecord
	NextPageToken string
}

// PageFetcher issues one request per page and extracts its records and next page token.
type PageFetcher struct {
	Client *Client
	Logger Logger
	Limit  int
}

func (f PageFetcher) limit() int {
	if f.Limit <= 0 {
		return DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		return MaxPageLimit
	}
	return f.Limit
}

func (f PageFetcher) FetchPage(ctx context.Context, pr PageRequest) (*Page, error) {
	req, params, err := f.buildRequest(pr)
	if err != nil {
		return nil, err
	}

	resp, err := f.Client.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		f.Logger.Error(fmt.Sprintf("Error response: %s", resp.Body))
		return nil, &PageFetchError{
			StatusCode: resp.StatusCode,
			Method:     req.Method,
			URL:        resp.URL,
			Params:     params,
			Body:       string(resp.Body),
		}
	}

	page, err := parsePage(resp.Body)
	if err != nil {
		f.Logger.Error(fmt.Sprintf("Error parsing response: %v", err))
		return nil, &ResponseParseError{URL: resp.URL, Err: err}
	}
	return page, nil
}

// buildRequest returns the request plus a printable form of its parameters.
func (f PageFetcher) buildRequest(pr PageRequest) (Request, string, error) {
	if pr.Method == http.MethodPost {
		body := searchRequest{
			Sorts:      pr.Sorts,
			Properties: pr.Properties,
			Limit:      f.limit(),
			After:      pr.After,
		}
		if len(pr.Filters) > 0 {
			body.FilterGroups = []filterGroup{{Filters: pr.Filters}}
		}
		b, err := json.Marshal(body)
		if err != nil {
			return Request{}, "", errors.Wrap(err, "unable to marshal search request")
		}
		return Request{
			Method: http.MethodPost,
			Path:   pr.Path,
			Query:  pr.Params,
			Body:   json.RawMessage(b),
		}, string(b), nil
	}

	query := url.Values{}
	for key, values := range pr.Params {
		query[key] = append([]string(nil), values...)
	}
	query.Set("limit", strconv.Itoa(f.limit()))
	if len(pr.Properties) > 0 {
		query.Set("properties", strings.Join(pr.Properties, ","))
	}
	if len(pr.HistoryProperties) > 0 {
		query.Set("propertiesWithHistory", strings.Join(pr.HistoryProperties, ","))
	}
	if pr.After != "" {
		query.Set("after", pr.After)
	}
	return Request{
		Method: http.MethodGet,
		Path:   pr.Path,
		Query:  query,
	}, query.Encode(), nil
}

func parsePage(body []byte) (*Page, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("response is not valid JSON")
	}

	results := gjson.GetBytes(body, RecordsPath)
	if !results.IsArray() {
		return nil, errors.Errorf("no records found at %q", RecordsPath)
	}

	page := &Page{
		Records: make([]RawRecord, 0, len(results.Array())),
	}
	results.ForEach(func(_, value gjson.Result) bool {
		page.Records = append(page.Records, RawRecord(value.Raw))
		return true
	})

	if token := gjson.GetBytes(body, NextPageTokenPath); token.Exists() && token.Type != gjson.Null {
		page.NextPageToken = token.String()
	}
	return page, nil
}
