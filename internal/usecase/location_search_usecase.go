package usecase

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"ServiceFinder-App/internal/domain/model"
	"ServiceFinder-App/internal/domain/service"
)

// DefaultSearchDebounce は連続入力をまとめる待ち時間
const DefaultSearchDebounce = 500 * time.Millisecond

// SearchResult は検索ストリームが発行する結果1件
type SearchResult struct {
	Query      string
	Candidates []model.LocationCandidate
	Err        error
}

// SearchStream は検索ボックス入力のデバウンスと「最後のリクエスト勝ち」を担う
// 入力ごとに単調増加するシーケンス番号を割り当て、
// 解決時点で最新でなくなった検索の結果は破棄する
type SearchStream struct {
	geocoding service.GeocodingService
	debounce  time.Duration
	publish   func(SearchResult)

	mu    sync.Mutex
	seq   uint64
	timer *time.Timer
}

// NewSearchStream は新しい検索ストリームを生成する
// debounceが0以下の場合は既定値を使用する
func NewSearchStream(geocoding service.GeocodingService, debounce time.Duration, publish func(SearchResult)) *SearchStream {
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}
	return &SearchStream{
		geocoding: geocoding,
		debounce:  debounce,
		publish:   publish,
	}
}

// Submit は検索ボックスへの入力1回分を受け付ける
// トリム後3文字未満は即座に空結果を発行し、外部呼び出しは行わない
// それ以外はデバウンス時間経過後に検索を実行する
func (s *SearchStream) Submit(query string) {
	s.mu.Lock()
	s.seq++
	current := s.seq
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < service.MinQueryLength {
		s.mu.Unlock()
		s.publish(SearchResult{Query: query})
		return
	}

	s.timer = time.AfterFunc(s.debounce, func() {
		s.run(current, query)
	})
	s.mu.Unlock()
}

// run はデバウンス後の検索本体
func (s *SearchStream) run(seq uint64, query string) {
	s.mu.Lock()
	if s.seq != seq {
		// タイマー発火と新しい入力が競合した場合
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	candidates, err := s.geocoding.SearchByText(ctx, query)

	s.mu.Lock()
	stale := s.seq != seq
	s.mu.Unlock()
	if stale {
		// 検索中に新しい入力が来ていたら結果は捨てる
		return
	}

	s.publish(SearchResult{Query: query, Candidates: candidates, Err: err})
}

// Close は保留中の検索をキャンセルする
func (s *SearchStream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
