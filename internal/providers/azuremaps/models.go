// internal/providers/azuremaps/models.go
package azuremaps

import "business-lookup/internal/models"

type poiSearchResponse struct {
	Summary struct {
		NumResults int `json:"numResults"`
	} `json:"summary"`
	Results []poiResult `json:"results"`
}

type poiResult struct {
	POI      *poi             `json:"poi"`
	Address  address          `json:"address"`
	Position *models.Position `json:"position"`
}

type poi struct {
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Categories []string `json:"categories"`
}

type address struct {
	FreeformAddress string `json:"freeformAddress"`
}
