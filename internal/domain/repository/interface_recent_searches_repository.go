package repository

import (
	"context"

	"ServiceFinder-App/internal/domain/model"
)

// RecentSearchesRepository は最近の検索リストの永続化を抽象化する
// 保存内容はプロセス再起動をまたいで保持される
type RecentSearchesRepository interface {
	// Load は保存済みリストを読み込む（保存内容がない・壊れている場合は空を返す）
	Load(ctx context.Context) ([]model.LocationCandidate, error)

	// Store はリスト全体を上書き保存する
	Store(ctx context.Context, candidates []model.LocationCandidate) error

	// Clear は保存済みリストを削除する
	Clear(ctx context.Context) error
}
