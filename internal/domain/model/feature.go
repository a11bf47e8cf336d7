package model

// FeatureCenter はway/relationの重心座標（Overpassが事前計算して返す）
type FeatureCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Feature は地理データベースから返される生の地物1件
// node/way/relationのいずれかで、nodeは直接座標を、
// way/relationはCenterを持つ
type Feature struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *FeatureCenter    `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// Name はnameタグの値を返す（なければ空文字列）
func (f *Feature) Name() string {
	return f.Tags["name"]
}

// ResolveLocation は地物の座標を解決する
// 自身の座標 → 重心 の順で探し、どちらもなければfalseを返す
func (f *Feature) ResolveLocation() (Location, bool) {
	if f.Lat != nil && f.Lon != nil {
		return Location{Latitude: *f.Lat, Longitude: *f.Lon}, true
	}
	if f.Center != nil {
		return Location{Latitude: f.Center.Lat, Longitude: f.Center.Lon}, true
	}
	return Location{}, false
}

// Tag はタグの値を取得する（最初に見つかったキーの値を返す）
func (f *Feature) Tag(keys ...string) string {
	for _, key := range keys {
		if v, ok := f.Tags[key]; ok && v != "" {
			return v
		}
	}
	return ""
}
