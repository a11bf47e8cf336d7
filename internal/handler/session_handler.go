package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ServiceFinder-App/internal/domain/model"
	"ServiceFinder-App/internal/usecase"
)

// SessionHandler は位置セッションAPIのハンドラー
type SessionHandler struct {
	sessionUseCase usecase.LocationSessionUseCase
}

// NewSessionHandler は新しいSessionHandlerインスタンスを作成
func NewSessionHandler(sessionUseCase usecase.LocationSessionUseCase) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
	}
}

// PostSession は新しいセッションを作成するエンドポイント
// POST /api/sessions
func (h *SessionHandler) PostSession(c *gin.Context) {
	snapshot := h.sessionUseCase.CreateSession()
	c.JSON(http.StatusCreated, snapshot)
}

// GetSession はセッションの現在の状態を取得するエンドポイント
// GET /api/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	snapshot, err := h.sessionUseCase.GetSnapshot(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// PostDetect はデバイス位置情報の取得開始を通知するエンドポイント
// POST /api/sessions/:id/detect
func (h *SessionHandler) PostDetect(c *gin.Context) {
	snapshot, err := h.sessionUseCase.StartDetection(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// PostDetectResult はブラウザ側の位置情報取得結果を反映するエンドポイント
// POST /api/sessions/:id/detect/result
func (h *SessionHandler) PostDetectResult(c *gin.Context) {
	var req model.GeolocationResult
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	snapshot, err := h.sessionUseCase.CompleteDetection(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// PostLocation は検索候補の手動選択を反映するエンドポイント
// POST /api/sessions/:id/location
func (h *SessionHandler) PostLocation(c *gin.Context) {
	var req model.SelectLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}
	if req.Candidate.DisplayName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "candidate.display_nameは必須です",
		})
		return
	}

	snapshot, err := h.sessionUseCase.SelectLocation(c.Request.Context(), c.Param("id"), req.Candidate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// PutCategory はサービスカテゴリを変更するエンドポイント
// PUT /api/sessions/:id/category
func (h *SessionHandler) PutCategory(c *gin.Context) {
	var req model.SetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	snapshot, err := h.sessionUseCase.SetCategory(c.Param("id"), req.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// PutFilters はフィルタ状態を変更するエンドポイント
// PUT /api/sessions/:id/filters
func (h *SessionHandler) PutFilters(c *gin.Context) {
	var req model.FilterState
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	snapshot, err := h.sessionUseCase.SetFilters(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// PostSearch は検索ボックスへの入力を受け付けるエンドポイント
// POST /api/sessions/:id/search
func (h *SessionHandler) PostSearch(c *gin.Context) {
	var req model.SubmitSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	snapshot, err := h.sessionUseCase.SubmitSearch(c.Param("id"), req.Query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// PostRefresh はキャッシュを無効化して再検索するエンドポイント
// POST /api/sessions/:id/refresh
func (h *SessionHandler) PostRefresh(c *gin.Context) {
	snapshot, err := h.sessionUseCase.Refresh(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
