package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFound_EncodesEmptyArray(t *testing.T) {
	data, err := json.Marshal(NotFound())
	require.NoError(t, err)
	assert.JSONEq(t, `{"found":false,"businesses":[]}`, string(data))
}

func TestFound_FlagFollowsBusinesses(t *testing.T) {
	assert.False(t, Found(nil).Found)
	assert.NotNil(t, Found(nil).Businesses)
	assert.True(t, Found([]BusinessRecord{{Name: "Starbucks CP"}}).Found)
}

func TestFailed_KeepsPayload(t *testing.T) {
	result := Failed(json.RawMessage(`{"error":"denied"}`))
	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"found":false,"businesses":[],"error":{"error":"denied"}}`, string(data))
}

func TestBusinessRecord_Categories(t *testing.T) {
	tests := []struct {
		name   string
		record BusinessRecord
		want   string
	}{
		{
			name:   "nil categories omitted",
			record: BusinessRecord{Name: "A"},
			want:   `{"name":"A"}`,
		},
		{
			name:   "empty categories kept",
			record: BusinessRecord{Name: "A", Categories: []string{}},
			want:   `{"name":"A","categories":[]}`,
		},
		{
			name: "full record",
			record: BusinessRecord{
				Name:       "Cafe",
				Address:    StringPtr("1 Main St"),
				Phone:      StringPtr("+1 555"),
				Categories: []string{"cafe"},
				Position:   &Position{Lat: 1.5, Lon: 2.5},
			},
			want: `{"name":"Cafe","address":"1 Main St","phone":"+1 555","categories":["cafe"],"position":{"lat":1.5,"lon":2.5}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.record)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestNewAggregateResponse(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	resp := NewAggregateResponse(Query{Name: "Starbucks", Location: "Connaught Place"}, at)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"checkedAt": "2024-05-01T10:00:00Z",
		"query": {"name": "Starbucks", "location": "Connaught Place"},
		"google": {"found": false, "businesses": []},
		"yelp": {"found": false, "businesses": []},
		"bing": {"found": false, "businesses": []}
	}`, string(data))
}
