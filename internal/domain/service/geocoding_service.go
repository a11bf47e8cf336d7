package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"ServiceFinder-App/internal/domain/model"
	"ServiceFinder-App/internal/domain/repository"
)

const (
	// MinQueryLength は検索クエリの最小文字数（トリム後）
	MinQueryLength = 3
	// MaxSearchResults は一度に要求する位置候補の最大件数
	MaxSearchResults = 5
	// MaxRecentSearches は最近の検索リストの最大保持件数
	MaxRecentSearches = 5
)

// GeocodingService は位置検索と最近の検索リストの管理を提供するサービス
type GeocodingService interface {
	// SearchByText はテキストから位置候補を検索する
	SearchByText(ctx context.Context, query string) ([]model.LocationCandidate, error)

	// ReverseLookup は座標から地名を取得する（失敗時はフォールバック値を返す）
	ReverseLookup(ctx context.Context, location model.Location) string

	// RecordSelection は選択された候補を最近の検索リストの先頭に記録する
	RecordSelection(ctx context.Context, candidate model.LocationCandidate) error

	// ListRecent は最近の検索リストを取得する（失敗時は空を返す）
	ListRecent(ctx context.Context) []model.LocationCandidate

	// ClearRecent は最近の検索リストを削除する
	ClearRecent(ctx context.Context) error
}

// geocodingServiceImpl はGeocodingServiceの実装
type geocodingServiceImpl struct {
	provider   repository.GeocodingProvider
	recentRepo repository.RecentSearchesRepository
	logger     *zap.SugaredLogger
}

// NewGeocodingService はGeocodingServiceの新しいインスタンスを作成
func NewGeocodingService(provider repository.GeocodingProvider, recentRepo repository.RecentSearchesRepository, logger *zap.SugaredLogger) GeocodingService {
	return &geocodingServiceImpl{
		provider:   provider,
		recentRepo: recentRepo,
		logger:     logger,
	}
}

// SearchByText はテキストから位置候補を検索する
// トリム後3文字未満はValidationErrorで即座に失敗し、外部呼び出しは行わない
func (s *geocodingServiceImpl) SearchByText(ctx context.Context, query string) ([]model.LocationCandidate, error) {
	trimmed := strings.TrimSpace(query)
	// マルチバイト入力があるため文字数はルーン単位で数える
	if utf8.RuneCountInString(trimmed) < MinQueryLength {
		return nil, &model.ValidationError{
			Field:   "query",
			Message: "Please enter at least 3 characters",
		}
	}

	candidates, err := s.provider.Search(ctx, trimmed, MaxSearchResults)
	if err != nil {
		s.logger.Warnw("位置検索に失敗", "query", trimmed, "error", err)
		return nil, &model.UpstreamError{
			Service: "geocoding",
			Message: "Failed to search location. Please try again.",
			Err:     err,
		}
	}

	return candidates, nil
}

// ReverseLookup は座標から地名を取得する
// 表示名の補完は重要度が低いため、失敗してもエラーは伝播させず
// フォールバック値を返す
func (s *geocodingServiceImpl) ReverseLookup(ctx context.Context, location model.Location) string {
	name, err := s.provider.Reverse(ctx, location)
	if err != nil {
		s.logger.Warnw("逆ジオコーディングに失敗、フォールバック値を使用", "error", err)
		return model.UnknownLocationName
	}
	return name
}

// RecordSelection は選択された候補を最近の検索リストの先頭に記録する
// 表示名で重複を除去し、最大件数を超えた分は末尾から切り捨てる
func (s *geocodingServiceImpl) RecordSelection(ctx context.Context, candidate model.LocationCandidate) error {
	recent := s.ListRecent(ctx)

	updated := make([]model.LocationCandidate, 0, len(recent)+1)
	updated = append(updated, candidate)
	for _, existing := range recent {
		if existing.DisplayName == candidate.DisplayName {
			continue
		}
		updated = append(updated, existing)
	}
	if len(updated) > MaxRecentSearches {
		updated = updated[:MaxRecentSearches]
	}

	if err := s.recentRepo.Store(ctx, updated); err != nil {
		s.logger.Warnw("最近の検索リストの保存に失敗", "error", err)
		return err
	}
	return nil
}

// ListRecent は最近の検索リストを取得する
// ストレージの欠損・破損はエラーにせず空リストとして扱う
func (s *geocodingServiceImpl) ListRecent(ctx context.Context) []model.LocationCandidate {
	recent, err := s.recentRepo.Load(ctx)
	if err != nil {
		s.logger.Warnw("最近の検索リストの読み込みに失敗、空として扱う", "error", err)
		return []model.LocationCandidate{}
	}
	if recent == nil {
		return []model.LocationCandidate{}
	}
	return recent
}

// ClearRecent は最近の検索リストを削除する
func (s *geocodingServiceImpl) ClearRecent(ctx context.Context) error {
	return s.recentRepo.Clear(ctx)
}
