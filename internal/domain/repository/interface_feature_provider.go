package repository

import (
	"context"

	"ServiceFinder-App/internal/domain/model"
)

// FeatureProvider は外部地理データベースへのアクセスを抽象化する
type FeatureProvider interface {
	// QueryAround は指定座標の半径radiusMeters以内にある、
	// amenityタグがtagの地物（node/way/relation）を取得する
	QueryAround(ctx context.Context, location model.Location, tag string, radiusMeters int) ([]model.Feature, error)
}
