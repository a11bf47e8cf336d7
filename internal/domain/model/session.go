package model

// SessionState はセッションの状態
type SessionState string

const (
	StateUninitialized   SessionState = "uninitialized"
	StateDetecting       SessionState = "detecting"
	StateSearchSelecting SessionState = "search_selecting"
	StateLocated         SessionState = "located"
)

// FilterState は表示フィルタのON/OFF状態（永続化しない）
type FilterState struct {
	RatingThresholdEnabled bool `json:"rating_threshold_enabled"`
	OpenOnlyEnabled        bool `json:"open_only_enabled"`
}

// SearchState はセッション内の検索ボックスの状態
type SearchState struct {
	Query      string              `json:"query"`
	Candidates []LocationCandidate `json:"candidates"`
	Error      string              `json:"error,omitempty"`
}

// SessionSnapshot はセッションの現在の状態を表すレスポンスDTO
type SessionSnapshot struct {
	SessionID      string       `json:"session_id"`
	State          SessionState `json:"state"`
	Location       *Location    `json:"location,omitempty"`
	LocationName   string       `json:"location_name,omitempty"`
	Category       string       `json:"category"`
	Filters        FilterState  `json:"filters"`
	Notice         string       `json:"notice,omitempty"` // 復旧済みエラーの通知（非致命的）
	Places         []Place      `json:"places"`
	FilteredPlaces []Place      `json:"filtered_places"`
	Search         SearchState  `json:"search"`
}

// SelectLocationRequest は手動で選択した位置をセッションに反映するリクエスト
type SelectLocationRequest struct {
	Candidate LocationCandidate `json:"candidate" validate:"required"`
}

// SetCategoryRequest はサービスカテゴリ変更のリクエスト
type SetCategoryRequest struct {
	Category string `json:"category" validate:"required"`
}

// SubmitSearchRequest は検索ボックスへの入力1回分
type SubmitSearchRequest struct {
	Query string `json:"query"`
}
