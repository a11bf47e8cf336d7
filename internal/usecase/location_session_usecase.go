package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ServiceFinder-App/internal/domain/model"
	"ServiceFinder-App/internal/domain/service"
)

// fetchTimeout は周辺検索1回あたりの上限時間
const fetchTimeout = 30 * time.Second

// LocationSessionUseCase は位置セッションのオーケストレーションを行うユースケース
// 現在地・選択カテゴリ・フィルタ状態を保持し、
// 位置かカテゴリが変わるたびに周辺検索を発行する
type LocationSessionUseCase interface {
	// CreateSession は新しいセッションを作成する
	CreateSession() *model.SessionSnapshot

	// GetSnapshot はセッションの現在の状態を取得する
	GetSnapshot(sessionID string) (*model.SessionSnapshot, error)

	// StartDetection はデバイス位置情報の取得開始をセッションに反映する
	StartDetection(sessionID string) (*model.SessionSnapshot, error)

	// CompleteDetection は位置情報取得の結果（成功または失敗）を反映する
	CompleteDetection(ctx context.Context, sessionID string, result model.GeolocationResult) (*model.SessionSnapshot, error)

	// SelectLocation は検索候補の手動選択を反映する
	SelectLocation(ctx context.Context, sessionID string, candidate model.LocationCandidate) (*model.SessionSnapshot, error)

	// SetCategory はサービスカテゴリを変更する
	SetCategory(sessionID string, categoryID string) (*model.SessionSnapshot, error)

	// SetFilters はフィルタ状態を変更する
	SetFilters(sessionID string, filters model.FilterState) (*model.SessionSnapshot, error)

	// SubmitSearch は検索ボックスへの入力をデバウンス付きで処理する
	SubmitSearch(sessionID string, query string) (*model.SessionSnapshot, error)

	// Refresh はキャッシュを無効化して再検索する
	Refresh(sessionID string) (*model.SessionSnapshot, error)
}

// session はセッション1件の内部状態
type session struct {
	mu sync.Mutex

	id           string
	state        model.SessionState
	location     *model.Location
	locationName string
	category     model.ServiceCategory
	filters      model.FilterState
	notice       string
	places       []model.Place
	search       model.SearchState
	searchStream *SearchStream

	// 周辺検索の鮮度管理
	// 最後に発行したリクエストのシーケンス番号とキーを持ち、
	// 解決時に一致しない応答は破棄する
	fetchSeq uint64
	fetchKey string
}

// locationSessionUseCaseImpl はLocationSessionUseCaseの実装
type locationSessionUseCaseImpl struct {
	geocoding      service.GeocodingService
	discovery      service.PlaceDiscoveryService
	logger         *zap.SugaredLogger
	searchDebounce time.Duration

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewLocationSessionUseCase は新しいLocationSessionUseCaseインスタンスを作成
func NewLocationSessionUseCase(geocoding service.GeocodingService, discovery service.PlaceDiscoveryService, logger *zap.SugaredLogger) LocationSessionUseCase {
	return NewLocationSessionUseCaseWithDebounce(geocoding, discovery, logger, DefaultSearchDebounce)
}

// NewLocationSessionUseCaseWithDebounce はデバウンス時間を指定してインスタンスを作成（テスト用）
func NewLocationSessionUseCaseWithDebounce(geocoding service.GeocodingService, discovery service.PlaceDiscoveryService, logger *zap.SugaredLogger, searchDebounce time.Duration) LocationSessionUseCase {
	return &locationSessionUseCaseImpl{
		geocoding:      geocoding,
		discovery:      discovery,
		logger:         logger,
		searchDebounce: searchDebounce,
		sessions:       make(map[string]*session),
	}
}

// CreateSession は新しいセッションを作成する
func (u *locationSessionUseCaseImpl) CreateSession() *model.SessionSnapshot {
	restaurant, _ := model.GetServiceCategory(model.CategoryRestaurant)

	s := &session{
		id:       uuid.New().String(),
		state:    model.StateUninitialized,
		category: restaurant,
		places:   []model.Place{},
	}
	s.searchStream = NewSearchStream(u.geocoding, u.searchDebounce, func(result SearchResult) {
		u.applySearchResult(s, result)
	})

	u.mu.Lock()
	u.sessions[s.id] = s
	u.mu.Unlock()

	u.logger.Infow("🆕 セッション作成", "session_id", s.id)
	return u.snapshot(s)
}

// GetSnapshot はセッションの現在の状態を取得する
func (u *locationSessionUseCaseImpl) GetSnapshot(sessionID string) (*model.SessionSnapshot, error) {
	s, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return u.snapshot(s), nil
}

// StartDetection はデバイス位置情報の取得開始をセッションに反映する
func (u *locationSessionUseCaseImpl) StartDetection(sessionID string) (*model.SessionSnapshot, error) {
	s, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.state = model.StateDetecting
	s.locationName = "Detecting..."
	s.mu.Unlock()

	return u.snapshot(s), nil
}

// CompleteDetection は位置情報取得の結果を反映する
// 成功時はその座標でLocatedに遷移し、表示名は非同期の逆ジオコーディングで補完する
// 失敗時はフォールバック地点でLocatedに遷移し、復旧可能な通知を記録する
func (u *locationSessionUseCaseImpl) CompleteDetection(ctx context.Context, sessionID string, result model.GeolocationResult) (*model.SessionSnapshot, error) {
	s, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	if result.Succeeded() {
		if !result.Location.IsValid() {
			return nil, &model.ValidationError{Field: "location", Message: "緯度経度が有効な範囲外です"}
		}

		location := *result.Location
		s.mu.Lock()
		s.state = model.StateLocated
		s.location = &location
		s.locationName = model.CurrentLocationName
		s.notice = ""
		s.mu.Unlock()

		// 表示名の補完はベストエフォート。失敗しても状態は変えない
		go u.resolveLocationName(s, location)

		u.triggerFetch(s)
		return u.snapshot(s), nil
	}

	// 拒否・非対応・タイムアウトはフォールバック地点で復旧する
	geoErr := model.NewGeolocationError(result.ErrorCode)
	u.logger.Infow("⚠️ 位置情報の取得に失敗、フォールバック地点を使用", "session_id", sessionID, "code", result.ErrorCode)

	fallback := model.DefaultLocation
	s.mu.Lock()
	s.state = model.StateLocated
	s.location = &fallback
	s.locationName = model.DefaultLocationName
	s.notice = geoErr.Message
	s.mu.Unlock()

	u.triggerFetch(s)
	return u.snapshot(s), nil
}

// resolveLocationName は逆ジオコーディングで表示名を補完する
// 結果が返るまでに位置が変わっていたら破棄する
func (u *locationSessionUseCaseImpl) resolveLocationName(s *session, location model.Location) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	name := u.geocoding.ReverseLookup(ctx, location)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.location == nil || *s.location != location {
		return
	}
	s.locationName = name
}

// SelectLocation は検索候補の手動選択を反映する
func (u *locationSessionUseCaseImpl) SelectLocation(ctx context.Context, sessionID string, candidate model.LocationCandidate) (*model.SessionSnapshot, error) {
	s, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	location := candidate.ToLocation()
	if !location.IsValid() {
		return nil, &model.ValidationError{Field: "candidate", Message: "緯度経度が有効な範囲外です"}
	}

	// 最近の検索リストへの記録は失敗してもセッション遷移を妨げない
	if err := u.geocoding.RecordSelection(ctx, candidate); err != nil {
		u.logger.Warnw("選択候補の記録に失敗", "error", err)
	}

	s.mu.Lock()
	s.state = model.StateLocated
	s.location = &location
	s.locationName = candidate.DisplayName
	s.notice = ""
	s.search = model.SearchState{}
	s.mu.Unlock()

	u.triggerFetch(s)
	return u.snapshot(s), nil
}

// SetCategory はサービスカテゴリを変更する
// Locatedであれば新しいカテゴリで再検索する
func (u *locationSessionUseCaseImpl) SetCategory(sessionID string, categoryID string) (*model.SessionSnapshot, error) {
	s, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	category, ok := model.GetServiceCategory(categoryID)
	if !ok {
		return nil, &model.ValidationError{Field: "category", Message: fmt.Sprintf("対応していないカテゴリです: %s", categoryID)}
	}

	s.mu.Lock()
	s.category = category
	located := s.state == model.StateLocated
	s.mu.Unlock()

	if located {
		u.triggerFetch(s)
	}
	return u.snapshot(s), nil
}

// SetFilters はフィルタ状態を変更する
// フィルタは派生ビューのみに影響し、再検索は行わない
func (u *locationSessionUseCaseImpl) SetFilters(sessionID string, filters model.FilterState) (*model.SessionSnapshot, error) {
	s, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.filters = filters
	s.mu.Unlock()

	return u.snapshot(s), nil
}

// SubmitSearch は検索ボックスへの入力をデバウンス付きで処理する
func (u *locationSessionUseCaseImpl) SubmitSearch(sessionID string, query string) (*model.SessionSnapshot, error) {
	s, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.search.Query = query
	if s.state == model.StateLocated && strings.TrimSpace(query) != "" {
		s.state = model.StateSearchSelecting
	}
	if strings.TrimSpace(query) == "" && s.state == model.StateSearchSelecting {
		// 入力が消えたら選択中状態を解除する
		s.state = model.StateLocated
	}
	s.mu.Unlock()

	s.searchStream.Submit(query)
	return u.snapshot(s), nil
}

// applySearchResult は検索ストリームの結果をセッションに反映する
// 古い結果の破棄はストリーム側のシーケンス番号で保証済み
func (u *locationSessionUseCaseImpl) applySearchResult(s *session, result SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.search.Candidates = result.Candidates
	s.search.Error = ""
	if result.Err != nil {
		s.search.Candidates = nil
		s.search.Error = result.Err.Error()
	}
}

// Refresh はキャッシュを無効化して再検索する
func (u *locationSessionUseCaseImpl) Refresh(sessionID string) (*model.SessionSnapshot, error) {
	s, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	u.discovery.InvalidateAll()

	s.mu.Lock()
	located := s.state == model.StateLocated
	s.mu.Unlock()
	if located {
		u.triggerFetch(s)
	}
	return u.snapshot(s), nil
}

// triggerFetch は現在の位置とカテゴリで周辺検索を非同期に発行する
// シーケンス番号とキーを進めてから起動し、応答の適用時に
// どちらかが変わっていたらその応答は古いとみなして捨てる
func (u *locationSessionUseCaseImpl) triggerFetch(s *session) {
	s.mu.Lock()
	if s.location == nil {
		s.mu.Unlock()
		return
	}
	location := *s.location
	category := s.category
	s.fetchSeq++
	seq := s.fetchSeq
	key := fmt.Sprintf("%s-%s", location.BucketKey(), category.ID)
	s.fetchKey = key
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		places, err := u.discovery.FetchNearby(ctx, location, category, service.DefaultRadiusMeters)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.fetchSeq != seq || s.fetchKey != key {
			u.logger.Infow("⏭️ 古い周辺検索の応答を破棄", "session_id", s.id, "key", key)
			return
		}

		if err != nil {
			s.places = []model.Place{}
			var upstream *model.UpstreamError
			if errors.As(err, &upstream) {
				s.notice = upstream.Message
			} else {
				s.notice = "Failed to fetch places. Please try again."
			}
			u.logger.Warnw("周辺検索に失敗", "session_id", s.id, "key", key, "error", err)
			return
		}

		s.places = places
		u.logger.Infow("📍 周辺検索結果を反映", "session_id", s.id, "key", key, "count", len(places))
	}()
}

// lookup はセッションIDから内部状態を取得する
func (u *locationSessionUseCaseImpl) lookup(sessionID string) (*session, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	s, ok := u.sessions[sessionID]
	if !ok {
		return nil, &model.ValidationError{Field: "session_id", Message: fmt.Sprintf("セッションが見つかりません: %s", sessionID)}
	}
	return s, nil
}

// snapshot は現在の内部状態からレスポンスDTOを組み立てる
// フィルタ済みビューはここで毎回導出する
func (u *locationSessionUseCaseImpl) snapshot(s *session) *model.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	places := make([]model.Place, len(s.places))
	copy(places, s.places)

	var location *model.Location
	if s.location != nil {
		l := *s.location
		location = &l
	}

	return &model.SessionSnapshot{
		SessionID:      s.id,
		State:          s.state,
		Location:       location,
		LocationName:   s.locationName,
		Category:       s.category.ID,
		Filters:        s.filters,
		Notice:         s.notice,
		Places:         places,
		FilteredPlaces: service.ApplyFilters(places, s.filters),
		Search:         s.search,
	}
}
