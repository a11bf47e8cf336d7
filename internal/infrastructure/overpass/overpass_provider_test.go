package overpass

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ServiceFinder-App/internal/domain/model"
)

func TestOverpassProvider_QueryAround(t *testing.T) {
	t.Run("クエリの形式と地物のデコード", func(t *testing.T) {
		var capturedQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/api/interpreter", r.URL.Path)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

			require.NoError(t, r.ParseForm())
			capturedQuery = r.PostFormValue("data")

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"elements": [
					{"type": "node", "id": 101, "lat": 26.913, "lon": 75.788,
					 "tags": {"name": "Spice Court", "amenity": "restaurant"}},
					{"type": "way", "id": 202, "center": {"lat": 26.914, "lon": 75.789},
					 "tags": {"name": "Niros"}},
					{"type": "node", "id": 303, "lat": 26.915, "lon": 75.790}
				]
			}`))
		}))
		defer server.Close()

		provider := NewOverpassProvider(server.URL)
		location := model.Location{Latitude: 26.9124, Longitude: 75.7873}

		features, err := provider.QueryAround(context.Background(), location, "restaurant", 3000)
		require.NoError(t, err)

		// node/way/relationの3種すべてを対象にした半径検索クエリになっている
		assert.Contains(t, capturedQuery, "[out:json][timeout:25]")
		assert.Contains(t, capturedQuery, `node["amenity"="restaurant"](around:3000,26.912400,75.787300)`)
		assert.Contains(t, capturedQuery, `way["amenity"="restaurant"]`)
		assert.Contains(t, capturedQuery, `relation["amenity"="restaurant"]`)
		assert.True(t, strings.HasSuffix(strings.TrimSpace(capturedQuery), "out center;"))

		require.Len(t, features, 3)

		node := features[0]
		assert.Equal(t, "node", node.Type)
		assert.Equal(t, int64(101), node.ID)
		require.NotNil(t, node.Lat)
		assert.InDelta(t, 26.913, *node.Lat, 0.0001)
		assert.Equal(t, "Spice Court", node.Name())

		way := features[1]
		require.NotNil(t, way.Center)
		resolved, ok := way.ResolveLocation()
		require.True(t, ok)
		assert.InDelta(t, 26.914, resolved.Latitude, 0.0001)

		// タグなしのnodeもデコード自体はされる（破棄は正規化側の責務）
		unnamed := features[2]
		assert.Equal(t, "", unnamed.Name())
	})

	t.Run("エラーステータスはエラーになる", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		provider := NewOverpassProvider(server.URL)
		_, err := provider.QueryAround(context.Background(), model.Location{}, "restaurant", 3000)
		require.Error(t, err)
	})
}
