package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ServiceFinder-App/internal/domain/model"
)

// fakeGeocodingService は検索呼び出しを数えるGeocodingServiceの偽物
type fakeGeocodingService struct {
	mu          sync.Mutex
	searchCalls int
	lastQuery   string
	candidates  []model.LocationCandidate
	reverseName string
	recorded    []model.LocationCandidate
}

func (f *fakeGeocodingService) SearchByText(ctx context.Context, query string) ([]model.LocationCandidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	f.lastQuery = query
	return f.candidates, nil
}

func (f *fakeGeocodingService) ReverseLookup(ctx context.Context, location model.Location) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reverseName == "" {
		return model.UnknownLocationName
	}
	return f.reverseName
}

func (f *fakeGeocodingService) RecordSelection(ctx context.Context, candidate model.LocationCandidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, candidate)
	return nil
}

func (f *fakeGeocodingService) ListRecent(ctx context.Context) []model.LocationCandidate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recorded
}

func (f *fakeGeocodingService) ClearRecent(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = nil
	return nil
}

func (f *fakeGeocodingService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls
}

func collectResults() (func(SearchResult), chan SearchResult) {
	ch := make(chan SearchResult, 16)
	return func(result SearchResult) { ch <- result }, ch
}

func TestSearchStream(t *testing.T) {
	t.Run("2文字の入力は即座に空結果、外部呼び出しなし", func(t *testing.T) {
		svc := &fakeGeocodingService{}
		publish, results := collectResults()
		stream := NewSearchStream(svc, 20*time.Millisecond, publish)
		defer stream.Close()

		stream.Submit("De")

		select {
		case result := <-results:
			assert.Empty(t, result.Candidates)
			assert.NoError(t, result.Err)
		case <-time.After(time.Second):
			t.Fatal("空結果が発行されませんでした")
		}
		assert.Equal(t, 0, svc.callCount())
	})

	t.Run("2文字のマルチバイト入力も即座に空結果、外部呼び出しなし", func(t *testing.T) {
		svc := &fakeGeocodingService{}
		publish, results := collectResults()
		stream := NewSearchStream(svc, 20*time.Millisecond, publish)
		defer stream.Close()

		// バイト数では3を超えるが文字数では2
		stream.Submit("दि")

		select {
		case result := <-results:
			assert.Empty(t, result.Candidates)
			assert.NoError(t, result.Err)
		case <-time.After(time.Second):
			t.Fatal("空結果が発行されませんでした")
		}
		assert.Equal(t, 0, svc.callCount())
	})

	t.Run("デバウンス経過後にちょうど1回検索される", func(t *testing.T) {
		svc := &fakeGeocodingService{
			candidates: []model.LocationCandidate{{DisplayName: "Delhi, India"}},
		}
		publish, results := collectResults()
		stream := NewSearchStream(svc, 20*time.Millisecond, publish)
		defer stream.Close()

		stream.Submit("Delhi")

		select {
		case result := <-results:
			require.NoError(t, result.Err)
			require.Len(t, result.Candidates, 1)
			assert.Equal(t, "Delhi, India", result.Candidates[0].DisplayName)
		case <-time.After(time.Second):
			t.Fatal("検索結果が発行されませんでした")
		}
		assert.Equal(t, 1, svc.callCount())
	})

	t.Run("デバウンス内の連続入力は最後の1回だけが実行される", func(t *testing.T) {
		svc := &fakeGeocodingService{
			candidates: []model.LocationCandidate{{DisplayName: "Delhi, India"}},
		}
		publish, results := collectResults()
		stream := NewSearchStream(svc, 30*time.Millisecond, publish)
		defer stream.Close()

		stream.Submit("Del")
		time.Sleep(5 * time.Millisecond)
		stream.Submit("Delh")
		time.Sleep(5 * time.Millisecond)
		stream.Submit("Delhi")

		select {
		case result := <-results:
			assert.Equal(t, "Delhi", result.Query)
		case <-time.After(time.Second):
			t.Fatal("検索結果が発行されませんでした")
		}

		// 追加の発行がないことを確認
		select {
		case extra := <-results:
			t.Fatalf("余分な結果が発行されました: %+v", extra)
		case <-time.After(100 * time.Millisecond):
		}
		assert.Equal(t, 1, svc.callCount())
	})

	t.Run("Close後は保留中の検索が実行されない", func(t *testing.T) {
		svc := &fakeGeocodingService{}
		publish, results := collectResults()
		stream := NewSearchStream(svc, 20*time.Millisecond, publish)

		stream.Submit("Delhi")
		stream.Close()

		select {
		case result := <-results:
			t.Fatalf("Close後に結果が発行されました: %+v", result)
		case <-time.After(100 * time.Millisecond):
		}
		assert.Equal(t, 0, svc.callCount())
	})
}
