package repository

import (
	"context"

	"ServiceFinder-App/internal/domain/model"
)

// GeocodingProvider は外部ジオコーディングサービスへのアクセスを抽象化する
type GeocodingProvider interface {
	// Search はテキストから位置候補を検索する（前方ジオコーディング）
	Search(ctx context.Context, query string, limit int) ([]model.LocationCandidate, error)

	// Reverse は座標から人間が読める地名を取得する（逆ジオコーディング）
	Reverse(ctx context.Context, location model.Location) (string, error)
}
