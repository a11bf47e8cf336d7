package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ServiceFinder-App/internal/domain/model"
)

func ratingOf(v float64) *float64 { return &v }
func openOf(v bool) *bool         { return &v }

func testPlaces() []model.Place {
	return []model.Place{
		{ID: "node/1", Name: "高評価・営業中", Rating: ratingOf(4.5), OpenNow: openOf(true)},
		{ID: "node/2", Name: "低評価・営業中", Rating: ratingOf(3.2), OpenNow: openOf(true)},
		{ID: "node/3", Name: "評価なし・営業中", Rating: nil, OpenNow: openOf(true)},
		{ID: "node/4", Name: "高評価・閉店中", Rating: ratingOf(4.8), OpenNow: openOf(false)},
		{ID: "node/5", Name: "高評価・営業状況不明", Rating: ratingOf(4.1), OpenNow: nil},
	}
}

func TestApplyFilters(t *testing.T) {
	t.Run("両方無効なら入力をそのまま返す", func(t *testing.T) {
		places := testPlaces()
		result := ApplyFilters(places, model.FilterState{})

		require.Len(t, result, len(places))
		for i := range places {
			assert.Equal(t, places[i].ID, result[i].ID)
		}
	})

	t.Run("評価フィルタは評価なし・4.0未満を除外する", func(t *testing.T) {
		result := ApplyFilters(testPlaces(), model.FilterState{RatingThresholdEnabled: true})

		require.Len(t, result, 3)
		for _, place := range result {
			require.NotNil(t, place.Rating)
			assert.GreaterOrEqual(t, *place.Rating, MinRatingThreshold)
		}
	})

	t.Run("営業中フィルタは閉店中・不明を除外する", func(t *testing.T) {
		result := ApplyFilters(testPlaces(), model.FilterState{OpenOnlyEnabled: true})

		require.Len(t, result, 3)
		for _, place := range result {
			require.NotNil(t, place.OpenNow)
			assert.True(t, *place.OpenNow)
		}
	})

	t.Run("両方有効ならANDで合成される", func(t *testing.T) {
		result := ApplyFilters(testPlaces(), model.FilterState{
			RatingThresholdEnabled: true,
			OpenOnlyEnabled:        true,
		})

		require.Len(t, result, 1)
		assert.Equal(t, "node/1", result[0].ID)
	})

	t.Run("入力の順序を保持する", func(t *testing.T) {
		result := ApplyFilters(testPlaces(), model.FilterState{OpenOnlyEnabled: true})

		require.Len(t, result, 3)
		assert.Equal(t, "node/1", result[0].ID)
		assert.Equal(t, "node/2", result[1].ID)
		assert.Equal(t, "node/3", result[2].ID)
	})

	t.Run("空入力でも壊れない", func(t *testing.T) {
		result := ApplyFilters(nil, model.FilterState{RatingThresholdEnabled: true})
		assert.Empty(t, result)
	})
}
