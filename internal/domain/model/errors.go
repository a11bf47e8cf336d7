package model

// ValidationError は呼び出し側の入力が事前条件を満たさない場合のエラー
// 即座に呼び出し側へ返し、リトライは促さない
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// UpstreamError は外部サービス（ジオコーディング・地理データベース）の呼び出し失敗
// ユーザーにはリトライを促す汎用メッセージとして表示する
type UpstreamError struct {
	Service string // "nominatim", "overpass" など
	Message string // ユーザー向けメッセージ
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return e.Service + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Service + ": " + e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PermissionError は位置情報の取得が拒否・不能・タイムアウトした場合のエラー
// フォールバック地点で復旧するため、致命的エラーではなく通知として扱う
type PermissionError struct {
	Code    string // GeolocationError* 定数のいずれか
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

// NewGeolocationError は失敗分類コードからPermissionErrorを組み立てる
func NewGeolocationError(code string) *PermissionError {
	message := "Location access denied. Using default location."
	switch code {
	case GeolocationErrorUnavailable:
		message = "Geolocation not supported. Using default location."
	case GeolocationErrorTimeout:
		message = "Location detection timed out. Using default location."
	}
	return &PermissionError{Code: code, Message: message}
}
