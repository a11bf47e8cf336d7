package service

import "ServiceFinder-App/internal/domain/model"

// MinRatingThreshold は評価フィルタ有効時に表示する最低評価値
const MinRatingThreshold = 4.0

// ApplyFilters はフィルタ状態に応じてスポット一覧を絞り込む純粋関数
// 入力の順序を保持し、フィルタはANDで合成される
// 無効なフィルタは素通しなので、両方無効なら入力をそのまま返す
func ApplyFilters(places []model.Place, state model.FilterState) []model.Place {
	if !state.RatingThresholdEnabled && !state.OpenOnlyEnabled {
		return places
	}

	filtered := make([]model.Place, 0, len(places))
	for _, place := range places {
		if state.RatingThresholdEnabled && (!place.HasRating() || place.GetRating() < MinRatingThreshold) {
			continue
		}
		if state.OpenOnlyEnabled && !place.IsOpenNow() {
			continue
		}
		filtered = append(filtered, place)
	}
	return filtered
}
