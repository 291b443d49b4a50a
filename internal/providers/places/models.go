// internal/providers/places/models.go
package places

// textSearchResponse is the subset of the Places text search payload we read.
type textSearchResponse struct {
	Results      []placeResult `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type placeResult struct {
	Name             string   `json:"name"`
	FormattedAddress *string  `json:"formatted_address"`
	Rating           *float64 `json:"rating"`
	PlaceID          string   `json:"place_id"`
}
