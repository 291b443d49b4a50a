// internal/models/business.go
package models

import (
	"encoding/json"
	"time"
)

// Query is a caller-supplied lookup. Location may be empty.
type Query struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BusinessRecord carries whichever fields the originating provider returned.
type BusinessRecord struct {
	Name       string    `json:"name"`
	Address    *string   `json:"address,omitempty"`
	Rating     *float64  `json:"rating,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	PlaceID    string    `json:"place_id,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	Position   *Position `json:"position,omitempty"`
}

// MarshalJSON keeps a non-nil empty Categories as [] instead of dropping it.
func (b BusinessRecord) MarshalJSON() ([]byte, error) {
	type plain BusinessRecord
	if b.Categories == nil {
		return json.Marshal(plain(b))
	}
	return json.Marshal(struct {
		plain
		Categories []string `json:"categories"`
	}{plain(b), b.Categories})
}

// ProviderResult is one provider's outcome. Found is true iff Businesses is
// non-empty; Businesses is never nil so it always encodes as an array.
type ProviderResult struct {
	Found      bool             `json:"found"`
	Businesses []BusinessRecord `json:"businesses"`
	Error      interface{}      `json:"error,omitempty"`
}

// NotFound is the result of a skipped provider or an empty match set.
func NotFound() ProviderResult {
	return ProviderResult{Businesses: []BusinessRecord{}}
}

func Found(records []BusinessRecord) ProviderResult {
	if records == nil {
		records = []BusinessRecord{}
	}
	return ProviderResult{
		Found:      len(records) > 0,
		Businesses: records,
	}
}

// Failed records a provider failure. payload is the upstream error body or a message.
func Failed(payload interface{}) ProviderResult {
	return ProviderResult{
		Businesses: []BusinessRecord{},
		Error:      payload,
	}
}

// AggregateResponse is the merged result of one lookup. The "bing" key is
// the point-of-interest provider's slot.
type AggregateResponse struct {
	CheckedAt time.Time      `json:"checkedAt"`
	Query     Query          `json:"query"`
	Google    ProviderResult `json:"google"`
	Yelp      ProviderResult `json:"yelp"`
	Bing      ProviderResult `json:"bing"`
}

// NewAggregateResponse returns a response with every provider not found.
func NewAggregateResponse(q Query, checkedAt time.Time) *AggregateResponse {
	return &AggregateResponse{
		CheckedAt: checkedAt.UTC(),
		Query:     q,
		Google:    NotFound(),
		Yelp:      NotFound(),
		Bing:      NotFound(),
	}
}

// StringPtr returns nil for an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
