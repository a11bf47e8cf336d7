package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ServiceFinder-App/internal/domain/model"
)

// respondError はエラーの分類に応じたHTTPステータスで応答する
//   - ValidationError → 400（入力不備、リトライ不要）
//   - UpstreamError   → 502（外部サービス起因、リトライを促す）
//   - それ以外        → 500
func respondError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": validationErr.Error(),
		})
		return
	}

	var upstreamErr *model.UpstreamError
	if errors.As(err, &upstreamErr) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   upstreamErr.Message,
			"details": upstreamErr.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "内部エラーが発生しました",
		"details": err.Error(),
	})
}
