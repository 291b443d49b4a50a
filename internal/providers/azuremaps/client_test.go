package azuremaps

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"business-lookup/internal/common/config"
	apperrors "business-lookup/internal/common/errors"
	"business-lookup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestClient(baseURL string) *Client {
	return NewClient(config.ProviderConfig{APIKey: "maps-key", BaseURL: baseURL}, 2*time.Second)
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, poiPath, r.URL.Path)
		assert.Equal(t, "maps-key", r.Header.Get("subscription-key"))
		assert.Equal(t, "1.0", r.URL.Query().Get("api-version"))
		assert.Equal(t, "Starbucks Connaught Place", r.URL.Query().Get("query"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		w.Write([]byte(`{
			"summary": {"numResults": 4},
			"results": [
				{"poi": {"name": "Starbucks Coffee", "phone": "+91 11 5555", "categories": ["cafe pub"]},
				 "address": {"freeformAddress": "Connaught Place, New Delhi"},
				 "position": {"lat": 28.63, "lon": 77.21}},
				{"poi": {"name": "Starbucks Reserve"}, "address": {}},
				{"poi": {"phone": "+91 00"}, "address": {"freeformAddress": "nameless"}},
				{"address": {"freeformAddress": "no poi at all"}},
				{"poi": {"name": "Cafe Coffee Day"}, "address": {}}
			]
		}`))
	}))
	defer server.Close()

	records, err := createTestClient(server.URL).Search(context.Background(), models.Query{Name: "starbucks", Location: "Connaught Place"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	full, err := json.Marshal(records[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "Starbucks Coffee",
		"address": "Connaught Place, New Delhi",
		"phone": "+91 11 5555",
		"categories": ["cafe pub"],
		"position": {"lat": 28.63, "lon": 77.21}
	}`, string(full))

	sparse, err := json.Marshal(records[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Starbucks Reserve", "categories": []}`, string(sparse))
}

func TestClient_Search_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"401","message":"Auth failed"}}`))
	}))
	defer server.Close()

	_, err := createTestClient(server.URL).Search(context.Background(), models.Query{Name: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrProviderStatus))
}

func TestClient_Search_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := createTestClient(url).Search(context.Background(), models.Query{Name: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrProviderRequest))
}
