// internal/providers/yelp/client.go
package yelp

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
)

const (
	Name        = "yelp"
	searchPath  = "/v3/businesses/search"
	resultLimit = 10
)

// Client is the Yelp Fusion business search adapter. It trusts Yelp's own
// ranking and does not filter by name.
type Client struct {
	apiKey  string
	baseURL string
	http    *httpclient.Client
}

func NewClient(cfg config.ProviderConfig, timeout time.Duration) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultYelpURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		http:    httpclient.NewClient(Name, timeout),
	}
}

func (c *Client) Name() string  { return Name }
func (c *Client) Enabled() bool { return c.apiKey != "" }

func (c *Client) Search(ctx context.Context, q models.Query) ([]models.BusinessRecord, error) {
	params := url.Values{}
	params.Set("term", q.Name)
	params.Set("location", q.Location)
	params.Set("limit", strconv.Itoa(resultLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build yelp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var resp searchResponse
	if err := c.http.DoJSON(req, &resp); err != nil {
		return nil, err
	}

	records := make([]models.BusinessRecord, 0, len(resp.Businesses))
	for _, b := range resp.Businesses {
		address := b.Location.Address1 + ", " + b.Location.City
		rating := b.Rating
		phone := b.DisplayPhone
		records = append(records, models.BusinessRecord{
			Name:    b.Name,
			Address: &address,
			Rating:  &rating,
			Phone:   &phone,
		})
	}
	return records, nil
}
