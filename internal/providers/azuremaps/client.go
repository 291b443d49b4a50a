// internal/providers/azuremaps/client.go
package azuremaps

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"business-lookup/internal/common/config"
	httpclient "business-lookup/internal/common/http"
	"business-lookup/internal/models"
	"business-lookup/internal/providers"
)

const (
	Name        = "azure-maps"
	poiPath     = "/search/poi/json"
	apiVersion  = "1.0"
	resultLimit = 10
)

// Client is the Azure Maps point-of-interest search adapter.
type Client struct {
	apiKey  string
	baseURL string
	http    *httpclient.Client
}

func NewClient(cfg config.ProviderConfig, timeout time.Duration) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultAzureMapsURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		http:    httpclient.NewClient(Name, timeout),
	}
}

func (c *Client) Name() string  { return Name }
func (c *Client) Enabled() bool { return c.apiKey != "" }

// Search drops candidates without a POI name, then filters by name.
func (c *Client) Search(ctx context.Context, q models.Query) ([]models.BusinessRecord, error) {
	params := url.Values{}
	params.Set("api-version", apiVersion)
	params.Set("query", q.Name+" "+q.Location)
	params.Set("limit", strconv.Itoa(resultLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+poiPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build azure maps request: %w", err)
	}
	req.Header.Set("subscription-key", c.apiKey)

	var resp poiSearchResponse
	if err := c.http.DoJSON(req, &resp); err != nil {
		return nil, err
	}

	records := make([]models.BusinessRecord, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.POI == nil || r.POI.Name == "" {
			continue
		}
		if !providers.Matches(q.Name, r.POI.Name) {
			continue
		}
		records = append(records, toRecord(r))
	}
	return records, nil
}

func toRecord(r poiResult) models.BusinessRecord {
	categories := r.POI.Categories
	if categories == nil {
		categories = []string{}
	}
	return models.BusinessRecord{
		Name:       r.POI.Name,
		Address:    models.StringPtr(r.Address.FreeformAddress),
		Phone:      models.StringPtr(r.POI.Phone),
		Categories: categories,
		Position:   r.Position,
	}
}
