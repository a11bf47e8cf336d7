package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ServiceFinder-App/internal/domain/model"
	"ServiceFinder-App/internal/usecase"
)

// stubGeocodingService はハンドラーテスト用の固定応答ジオコーディングサービス
type stubGeocodingService struct {
	candidates []model.LocationCandidate
	recent     []model.LocationCandidate
}

func (s *stubGeocodingService) SearchByText(ctx context.Context, query string) ([]model.LocationCandidate, error) {
	return s.candidates, nil
}

func (s *stubGeocodingService) ReverseLookup(ctx context.Context, location model.Location) string {
	return model.UnknownLocationName
}

func (s *stubGeocodingService) RecordSelection(ctx context.Context, candidate model.LocationCandidate) error {
	s.recent = append(s.recent, candidate)
	return nil
}

func (s *stubGeocodingService) ListRecent(ctx context.Context) []model.LocationCandidate {
	return s.recent
}

func (s *stubGeocodingService) ClearRecent(ctx context.Context) error {
	s.recent = nil
	return nil
}

// stubDiscoveryService はハンドラーテスト用の固定応答周辺検索サービス
type stubDiscoveryService struct {
	places []model.Place
}

func (s *stubDiscoveryService) FetchNearby(ctx context.Context, location model.Location, category model.ServiceCategory, radiusMeters int) ([]model.Place, error) {
	return s.places, nil
}

func (s *stubDiscoveryService) InvalidateAll() {}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	geocoding := &stubGeocodingService{}
	discovery := &stubDiscoveryService{
		places: []model.Place{{ID: "node/1", Name: "Spice Court", Location: model.DefaultLocation}},
	}
	sessionUseCase := usecase.NewLocationSessionUseCaseWithDebounce(geocoding, discovery, zap.NewNop().Sugar(), 10*time.Millisecond)
	sessionHandler := NewSessionHandler(sessionUseCase)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/sessions", sessionHandler.PostSession)
	api.GET("/sessions/:id", sessionHandler.GetSession)
	api.POST("/sessions/:id/detect", sessionHandler.PostDetect)
	api.POST("/sessions/:id/detect/result", sessionHandler.PostDetectResult)
	api.PUT("/sessions/:id/category", sessionHandler.PutCategory)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, model.SessionSnapshot) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var snapshot model.SessionSnapshot
	if recorder.Code < 300 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &snapshot))
	}
	return recorder, snapshot
}

func TestSessionHandler_DeniedDetectionFlow(t *testing.T) {
	router := newTestRouter(t)

	// セッション作成
	recorder, created := doJSON(t, router, "POST", "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, recorder.Code)
	require.NotEmpty(t, created.SessionID)
	assert.Equal(t, model.StateUninitialized, created.State)

	// 位置情報取得の開始
	recorder, detecting := doJSON(t, router, "POST", "/api/sessions/"+created.SessionID+"/detect", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, model.StateDetecting, detecting.State)

	// ブラウザが「拒否」を報告 → フォールバック地点でLocated
	recorder, located := doJSON(t, router, "POST", "/api/sessions/"+created.SessionID+"/detect/result",
		model.GeolocationResult{ErrorCode: model.GeolocationErrorPermissionDenied})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, model.StateLocated, located.State)
	require.NotNil(t, located.Location)
	assert.InDelta(t, 26.9124, located.Location.Latitude, 0.00001)
	assert.Equal(t, model.DefaultLocationName, located.LocationName)
	assert.NotEmpty(t, located.Notice)

	// 周辺検索は非同期に反映される
	require.Eventually(t, func() bool {
		recorder, snapshot := doJSON(t, router, "GET", "/api/sessions/"+created.SessionID, nil)
		return recorder.Code == http.StatusOK && len(snapshot.Places) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSessionHandler_Validation(t *testing.T) {
	router := newTestRouter(t)

	t.Run("存在しないセッションは400", func(t *testing.T) {
		recorder, _ := doJSON(t, router, "GET", "/api/sessions/no-such-session", nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("未対応カテゴリは400", func(t *testing.T) {
		_, created := doJSON(t, router, "POST", "/api/sessions", nil)

		recorder, _ := doJSON(t, router, "PUT", "/api/sessions/"+created.SessionID+"/category",
			model.SetCategoryRequest{Category: "karaoke"})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
