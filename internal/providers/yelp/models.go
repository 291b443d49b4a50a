// internal/providers/yelp/models.go
package yelp

type searchResponse struct {
	Businesses []business `json:"businesses"`
	Total      int        `json:"total"`
}

type business struct {
	Name         string   `json:"name"`
	Rating       float64  `json:"rating"`
	DisplayPhone string   `json:"display_phone"`
	Location     location `json:"location"`
}

type location struct {
	Address1 string `json:"address1"`
	City     string `json:"city"`
}
