package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geo"
	"go.uber.org/zap"

	"ServiceFinder-App/internal/domain/model"
	"ServiceFinder-App/internal/domain/repository"
)

const (
	// DefaultRadiusMeters は周辺検索の既定半径
	DefaultRadiusMeters = 3000
	// cacheTTL はキャッシュエントリの有効期間
	cacheTTL = time.Hour
)

// PlaceDiscoveryService は指定座標の周辺スポットを検索・正規化・キャッシュするサービス
type PlaceDiscoveryService interface {
	// FetchNearby は座標とカテゴリから周辺スポットを取得する
	// 有効なキャッシュがあれば外部呼び出しなしでそれを返す
	FetchNearby(ctx context.Context, location model.Location, category model.ServiceCategory, radiusMeters int) ([]model.Place, error)

	// InvalidateAll は全キャッシュエントリを無条件に削除する
	InvalidateAll()
}

// cacheEntry は(位置バケット, カテゴリ)単位のキャッシュエントリ
type cacheEntry struct {
	results   []model.Place
	fetchedAt time.Time
}

// placeDiscoveryServiceImpl はPlaceDiscoveryServiceの実装
type placeDiscoveryServiceImpl struct {
	provider repository.FeatureProvider
	logger   *zap.SugaredLogger

	mu    sync.RWMutex
	cache map[string]*cacheEntry

	// テスト用に差し替え可能な時計と補完戦略
	now   func() time.Time
	synth SynthesisStrategy
}

// NewPlaceDiscoveryService はPlaceDiscoveryServiceの新しいインスタンスを作成
func NewPlaceDiscoveryService(provider repository.FeatureProvider, logger *zap.SugaredLogger) PlaceDiscoveryService {
	return &placeDiscoveryServiceImpl{
		provider: provider,
		logger:   logger,
		cache:    make(map[string]*cacheEntry),
		now:      time.Now,
		synth:    DefaultSynthesisStrategy(rand.New(rand.NewSource(time.Now().UnixNano()))),
	}
}

// NewPlaceDiscoveryServiceWithOptions は時計と補完戦略を注入してインスタンスを作成
// テストから決定的な補完・模擬時計を渡すために使う
func NewPlaceDiscoveryServiceWithOptions(provider repository.FeatureProvider, logger *zap.SugaredLogger, now func() time.Time, synth SynthesisStrategy) PlaceDiscoveryService {
	return &placeDiscoveryServiceImpl{
		provider: provider,
		logger:   logger,
		cache:    make(map[string]*cacheEntry),
		now:      now,
		synth:    synth,
	}
}

// cacheKey は座標を小数第3位に丸めたバケットとカテゴリからキーを作る
// 約100m以内の繰り返し検索が同じバケットに当たる
func cacheKey(location model.Location, category model.ServiceCategory) string {
	return fmt.Sprintf("%s-%s", location.BucketKey(), category.ID)
}

// FetchNearby は座標とカテゴリから周辺スポットを取得する
func (s *placeDiscoveryServiceImpl) FetchNearby(ctx context.Context, location model.Location, category model.ServiceCategory, radiusMeters int) ([]model.Place, error) {
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}

	key := cacheKey(location, category)

	if cached, ok := s.lookupCache(key); ok {
		s.logger.Infow("✅ キャッシュヒット、外部呼び出しなし", "key", key, "count", len(cached))
		return cached, nil
	}

	s.logger.Infow("🌐 地理データベースへ問い合わせ", "key", key, "radius", radiusMeters)
	features, err := s.provider.QueryAround(ctx, location, category.OSMTag, radiusMeters)
	if err != nil {
		// 失敗時は部分結果も含めて一切キャッシュしない
		return nil, &model.UpstreamError{
			Service: "places",
			Message: "Failed to fetch places. Please try again.",
			Err:     err,
		}
	}

	places := s.normalizeFeatures(features, location)

	s.mu.Lock()
	s.cache[key] = &cacheEntry{results: places, fetchedAt: s.now()}
	s.mu.Unlock()

	s.logger.Infow("💾 正規化結果をキャッシュに保存", "key", key, "features", len(features), "places", len(places))
	return places, nil
}

// lookupCache は有効期限内のキャッシュエントリを探す
// 期限切れエントリは削除せず、存在しないものとして扱う
// （次回の取得成功時に上書きされる）
func (s *placeDiscoveryServiceImpl) lookupCache(key string) ([]model.Place, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(entry.fetchedAt) >= cacheTTL {
		return nil, false
	}
	return entry.results, true
}

// normalizeFeatures は生の地物群を統一フォーマットのスポットに変換する
// 名前タグがない、または座標を解決できない地物は破棄する
func (s *placeDiscoveryServiceImpl) normalizeFeatures(features []model.Feature, origin model.Location) []model.Place {
	places := make([]model.Place, 0, len(features))
	for _, feature := range features {
		place, ok := s.normalizeFeature(&feature, origin)
		if !ok {
			continue
		}
		places = append(places, place)
	}

	// 検索地点から近い順に並べる
	sort.SliceStable(places, func(i, j int) bool {
		return places[i].DistanceMeters < places[j].DistanceMeters
	})

	return places
}

// normalizeFeature は地物1件をスポットに変換する
func (s *placeDiscoveryServiceImpl) normalizeFeature(feature *model.Feature, origin model.Location) (model.Place, bool) {
	name := feature.Name()
	if name == "" {
		return model.Place{}, false
	}

	location, ok := feature.ResolveLocation()
	if !ok {
		return model.Place{}, false
	}

	place := model.Place{
		ID:             featureID(feature),
		Name:           name,
		Address:        composeAddress(feature),
		Location:       location,
		DistanceMeters: int(geo.DistanceHaversine(origin.ToPoint(), location.ToPoint())),
	}

	if rating, present := s.synth.Rating(); present {
		place.Rating = &rating
	}
	place.RatingCount = s.synth.RatingCount()

	openNow := s.resolveOpenNow(feature)
	place.OpenNow = &openNow

	place.SetPhone(feature.Tag("phone", "contact:phone"))
	place.SetWebsite(feature.Tag("website", "contact:website"))

	return place, true
}

// resolveOpenNow はopening_hoursタグがあれば解釈し、なければ補完戦略で生成する
func (s *placeDiscoveryServiceImpl) resolveOpenNow(feature *model.Feature) bool {
	if hours := feature.Tag("opening_hours"); hours != "" {
		return InterpretOpeningHours(hours)
	}
	return s.synth.OpenNow()
}

// featureID はソースレコードごとに安定なIDを生成する
// 生のOSM IDは種別をまたいで衝突するため種別を前置する
func featureID(feature *model.Feature) string {
	if feature.ID == 0 {
		return fmt.Sprintf("osm-%s", uuid.New().String())
	}
	return fmt.Sprintf("%s/%d", feature.Type, feature.ID)
}

// composeAddress は構造化された住所タグから表示用住所を組み立てる
// 構成要素が一つもなければフォールバック値を返す
func composeAddress(feature *model.Feature) string {
	parts := make([]string, 0, 3)
	if street := feature.Tag("addr:street"); street != "" {
		parts = append(parts, street)
	}
	if houseNumber := feature.Tag("addr:housenumber"); houseNumber != "" {
		parts = append(parts, houseNumber)
	}
	if city := feature.Tag("addr:city", "addr:suburb"); city != "" {
		parts = append(parts, city)
	}
	if len(parts) == 0 {
		return model.AddressNotAvailable
	}

	address := parts[0]
	for _, part := range parts[1:] {
		address += ", " + part
	}
	return address
}

// InvalidateAll は全キャッシュエントリを無条件に削除する（手動リフレッシュ用）
func (s *placeDiscoveryServiceImpl) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string]*cacheEntry)
	s.mu.Unlock()
	s.logger.Infow("🗑️ キャッシュを全削除")
}
