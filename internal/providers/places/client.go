// internal/providers/places/client.go
package places

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"business-lookup/internal/common/config"
	httpclient "business-lookup/internal/common/http"
	"business-lookup/internal/models"
	"business-lookup/internal/providers"
)

const (
	Name           = "google"
	textSearchPath = "/maps/api/place/textsearch/json"
)

// Client is the Google Places text search adapter.
type Client struct {
	apiKey  string
	baseURL string
	http    *httpclient.Client
}

func NewClient(cfg config.ProviderConfig, timeout time.Duration) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultGooglePlacesURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		http:    httpclient.NewClient(Name, timeout),
	}
}

func (c *Client) Name() string  { return Name }
func (c *Client) Enabled() bool { return c.apiKey != "" }

// Search sends "name location" as one free-text query and keeps candidates
// whose returned name contains the queried name.
func (c *Client) Search(ctx context.Context, q models.Query) ([]models.BusinessRecord, error) {
	params := url.Values{}
	params.Set("query", q.Name+" "+q.Location)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+textSearchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build places request: %w", err)
	}

	var resp textSearchResponse
	if err := c.http.DoJSON(req, &resp); err != nil {
		return nil, err
	}

	records := make([]models.BusinessRecord, 0, len(resp.Results))
	for _, p := range resp.Results {
		if !providers.Matches(q.Name, p.Name) {
			continue
		}
		records = append(records, toRecord(p))
	}
	return records, nil
}

func toRecord(p placeResult) models.BusinessRecord {
	rating := p.Rating
	if rating != nil && *rating == 0 {
		rating = nil
	}
	return models.BusinessRecord{
		Name:    p.Name,
		Address: p.FormattedAddress,
		Rating:  rating,
		PlaceID: p.PlaceID,
	}
}
