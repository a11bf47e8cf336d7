package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ServiceFinder-App/internal/domain/model"
	"ServiceFinder-App/internal/domain/service"
	"ServiceFinder-App/internal/usecase"
)

// ConfigHandler はフロントエンドに渡す静的設定のハンドラー
type ConfigHandler struct{}

// NewConfigHandler は新しいConfigHandlerインスタンスを作成
func NewConfigHandler() *ConfigHandler {
	return &ConfigHandler{}
}

// GetHealth はヘルスチェックエンドポイント
// GET /api/health
func (h *ConfigHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "ServiceFinder-App",
	})
}

// GetConfig はサービスカテゴリ一覧とクライアント側の各種既定値を返すエンドポイント
// ブラウザの位置情報取得オプションもここで配り、クライアントとサーバーの前提を揃える
// GET /api/config
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service_categories": model.GetAllServiceCategories(),
		"geolocation_options": gin.H{
			"enable_high_accuracy": true,
			"timeout_ms":           10000,
			"maximum_age_ms":       0,
		},
		"search_debounce_ms":   usecase.DefaultSearchDebounce.Milliseconds(),
		"min_query_length":     service.MinQueryLength,
		"default_radius_m":     service.DefaultRadiusMeters,
		"min_rating_threshold": service.MinRatingThreshold,
	})
}
