package model

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Location は緯度経度を表す基本的な型
type Location struct {
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// IsValid は緯度経度が有効な範囲内かチェック
func (l Location) IsValid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

// ToPoint はorb.Point（[lng, lat]順）に変換
func (l Location) ToPoint() orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}

// BucketKey は小数第3位（約100m粒度）に丸めたキャッシュ用バケットキーを返す
func (l Location) BucketKey() string {
	return fmt.Sprintf("%.3f,%.3f", l.Latitude, l.Longitude)
}

// LocationCandidate はジオコーディング検索・逆ジオコーディングの結果1件
type LocationCandidate struct {
	DisplayName string            `json:"display_name" validate:"required"`
	Latitude    float64           `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude   float64           `json:"longitude" validate:"required,min=-180,max=180"`
	Kind        string            `json:"kind,omitempty"` // city, suburb, aerodrome など
	Address     map[string]string `json:"address,omitempty"`
}

// ToLocation は候補の座標をLocation型に変換
func (c LocationCandidate) ToLocation() Location {
	return Location{Latitude: c.Latitude, Longitude: c.Longitude}
}

// デバイス位置情報取得の失敗分類
const (
	GeolocationErrorPermissionDenied = "permission-denied"
	GeolocationErrorUnavailable      = "unavailable"
	GeolocationErrorTimeout          = "timeout"
)

// GeolocationResult はブラウザが報告してくる位置情報取得の結果
// 成功時はLocationが、失敗時はErrorCodeが設定される
type GeolocationResult struct {
	Location  *Location `json:"location,omitempty"`
	ErrorCode string    `json:"error_code,omitempty"`
}

// Succeeded は位置情報の取得に成功したかどうか
func (r GeolocationResult) Succeeded() bool {
	return r.Location != nil && r.ErrorCode == ""
}

// 位置情報が取得できなかった場合のフォールバック地点
var DefaultLocation = Location{Latitude: 26.9124, Longitude: 75.7873}

const (
	// DefaultLocationName はフォールバック地点の表示名
	DefaultLocationName = "Jaipur, Rajasthan, India (Default)"
	// CurrentLocationName は逆ジオコーディング完了前・失敗時の汎用表示名
	CurrentLocationName = "Current Location"
	// UnknownLocationName は逆ジオコーディング失敗時のフォールバック値
	UnknownLocationName = "Unknown location"
)
