// Package openfarm looks up crops missing from the local catalog in the
// OpenFarm API and keeps every hit in a durable cache.
//
// Lookups never fail loudly: network, decoding and filesystem problems are
// logged and reported to the caller as "not found".
package openfarm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fundestpuente/agromind-mcp/internal/cache"
	"github.com/fundestpuente/agromind-mcp/internal/catalog"
	"github.com/fundestpuente/agromind-mcp/internal/fetch"
	"github.com/fundestpuente/agromind-mcp/internal/filter"
)

// Source is the provenance tag stored on profiles built from OpenFarm data.
const Source = "openfarm"

// cropsPath is the crop search endpoint, relative to the API root.
const cropsPath = "crops/"

// Client resolves crop names through the cache and the OpenFarm API.
type Client struct {
	fetcher *fetch.Client
	cache   *cache.Store
	logger  *slog.Logger
}

// New creates a lookup client. A nil logger discards log output.
func New(fetcher *fetch.Client, store *cache.Store, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		fetcher: fetcher,
		cache:   store,
		logger:  logger.With("component", "openfarm"),
	}
}

// cropsResponse is the subset of the OpenFarm crops payload we read.
type cropsResponse struct {
	Data []struct {
		Attributes map[string]any `json:"attributes"`
	} `json:"data"`
}

// Lookup returns a partial profile for name, or false when no data is available.
func (c *Client) Lookup(ctx context.Context, name string) (*catalog.PartialCropProfile, bool) {
	key := catalog.NormalizeName(name)
	if key == "" {
		return nil, false
	}

	raw, found, err := c.cache.Get(key)
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if found {
		var profile catalog.PartialCropProfile
		if err := json.Unmarshal(raw, &profile); err == nil {
			c.logger.Debug("cache hit", "key", key)
			return &profile, true
		}
		c.logger.Warn("ignoring undecodable cache entry", "key", key)
	}

	attrs, err := c.search(ctx, name)
	if err != nil {
		c.logger.Debug("external lookup missed", "name", name, "error", err)
		return nil, false
	}

	profile, err := mapAttributes(attrs)
	if err != nil {
		c.logger.Warn("mapping external crop failed", "name", name, "error", err)
		return nil, false
	}
	c.logger.Debug("mapped external crop", "name", name,
		"filtered_attributes", filter.CountFilteredAttributes(attrs))

	if err := c.cache.Put(key, profile); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
		return nil, false
	}

	return profile, true
}

// search queries OpenFarm with the raw crop name and returns the attributes
// of the first result.
func (c *Client) search(ctx context.Context, name string) (map[string]any, error) {
	body, err := c.fetcher.Get(ctx, cropsPath, url.Values{"filter": {name}})
	if err != nil {
		return nil, err
	}

	var resp cropsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding crops response: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no crops match %q", name)
	}
	if resp.Data[0].Attributes == nil {
		return nil, fmt.Errorf("first match for %q has no attributes", name)
	}

	return resp.Data[0].Attributes, nil
}

// mapAttributes converts OpenFarm attributes into a partial crop profile.
// Hydroponic ranges are never available from OpenFarm and stay absent.
func mapAttributes(attrs map[string]any) (*catalog.PartialCropProfile, error) {
	name := stringAttr(attrs, "name")
	if name == "" {
		name = stringAttr(attrs, "common_name")
	}

	profile := &catalog.PartialCropProfile{
		Name:           name,
		ScientificName: stringAttr(attrs, "binomial_name"),
		GrowthStages:   []string{},
		CommonIssues:   []string{},
		Tips:           []string{},
		Source:         Source,
	}

	if desc := filter.CleanText(stringAttr(attrs, "description")); desc != "" {
		profile.Tips = append(profile.Tips, desc)
	}

	raw, err := json.Marshal(filter.FilterAttributes(attrs))
	if err != nil {
		return nil, fmt.Errorf("encoding raw attributes: %w", err)
	}
	profile.Raw = raw

	return profile, nil
}

func stringAttr(attrs map[string]any, key string) string {
	s, _ := attrs[key].(string)
	return strings.TrimSpace(s)
}
