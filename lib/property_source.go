package lib

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const propertiesPathFormat = "/crm/v3/properties/%v"

// PropertySource yields the ordered property names to request for an object type.
type PropertySource interface {
	Resolve(ctx context.Context, objectType string) ([]string, error)
}

// StaticList is a fixed allow-list used instead of the properties endpoint.
type StaticList []string

func (s StaticList) Resolve(context.Context, string) ([]string, error) {
	return s, nil
}

// DynamicResolver fetches property names from the properties endpoint once per
// object type and serves every later call from its cache.
type DynamicResolver struct {
	client *Client
	cache  *cache.Cache
}

func NewDynamicResolver(client *Client) *DynamicResolver {
	return &DynamicResolver{
		client: client,
		cache:  cache.New(cache.NoExpiration, 0),
	}
}

func (d *DynamicResolver) Resolve(ctx context.Context, objectType string) ([]string, error) {
	if names, found := d.cache.Get(objectType); found {
		return names.([]string), nil
	}

	resp, err := d.client.Get(ctx, fmt.Sprintf(propertiesPathFormat, objectType), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to fetch properties for %v", objectType)
	}

	if !resp.IsSuccess() {
		return nil, &MetadataFetchError{
			ObjectType: objectType,
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
		}
	}

	if !gjson.ValidBytes(resp.Body) {
		return nil, &ResponseParseError{URL: resp.URL, Err: errors.New("invalid JSON")}
	}

	results := gjson.GetBytes(resp.Body, "results")
	if !results.IsArray() {
		return nil, &ResponseParseError{URL: resp.URL, Err: errors.New("no results in response")}
	}

	names := []string{}
	for _, p := range results.Array() {
		names = append(names, p.Get("name").String())
	}

	d.cache.Set(objectType, names, cache.NoExpiration)
	return names, nil
}

// NewPropertySource picks a StaticList when names is non-nil, otherwise resolver.
func NewPropertySource(names []string, resolver PropertySource) PropertySource {
	if names != nil {
		return StaticList(names)
	}
	return resolver
}
