package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ServiceFinder-App/internal/domain/service"
)

// LocationHandler は位置検索・最近の検索リストAPIのハンドラー
type LocationHandler struct {
	geocodingService service.GeocodingService
}

// NewLocationHandler は新しいLocationHandlerインスタンスを作成
func NewLocationHandler(geocodingService service.GeocodingService) *LocationHandler {
	return &LocationHandler{
		geocodingService: geocodingService,
	}
}

// GetSearch はテキストから位置候補を検索するエンドポイント
// GET /api/locations/search?q=Delhi
func (h *LocationHandler) GetSearch(c *gin.Context) {
	query := c.Query("q")

	candidates, err := h.geocodingService.SearchByText(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":      query,
		"candidates": candidates,
	})
}

// GetRecent は最近の検索リストを取得するエンドポイント
// GET /api/locations/recent
func (h *LocationHandler) GetRecent(c *gin.Context) {
	recent := h.geocodingService.ListRecent(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"recent": recent,
	})
}

// DeleteRecent は最近の検索リストを削除するエンドポイント
// DELETE /api/locations/recent
func (h *LocationHandler) DeleteRecent(c *gin.Context) {
	if err := h.geocodingService.ClearRecent(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "cleared",
	})
}
