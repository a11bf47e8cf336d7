package model

// Place は正規化済みのスポット情報
// カテゴリに依存しない統一フォーマットで、地図・カード表示の両方で使う
type Place struct {
	ID             string   `json:"id"`                // ソースレコードごとに安定なID（"node/123"形式）
	Name           string   `json:"name"`              // スポット名
	Address        string   `json:"address"`           // 構成要素から組み立てた住所（ベストエフォート）
	Location       Location `json:"location"`          // 位置情報
	Rating         *float64 `json:"rating"`            // 評価値（NULLABLE、存在時は[1,5]）
	RatingCount    int      `json:"rating_count"`      // 評価件数
	OpenNow        *bool    `json:"open_now"`          // 現在営業中か（NULLABLE）
	Phone          *string  `json:"phone,omitempty"`   // 電話番号（NULLABLE）
	Website        *string  `json:"website,omitempty"` // ウェブサイト（NULLABLE）
	DistanceMeters int      `json:"distance_meters"`   // 検索地点からの距離
}

// HasRating は評価値が設定されているかチェック
func (p *Place) HasRating() bool {
	return p.Rating != nil
}

// GetRating は評価値が存在する場合は値を、存在しない場合は0を返す
func (p *Place) GetRating() float64 {
	if p.Rating != nil {
		return *p.Rating
	}
	return 0
}

// IsOpenNow は営業状況が判明していて、かつ営業中の場合のみtrue
func (p *Place) IsOpenNow() bool {
	return p.OpenNow != nil && *p.OpenNow
}

// SetPhone は電話番号を設定する（空文字列の場合はnilのまま保持）
func (p *Place) SetPhone(phone string) {
	if phone != "" {
		p.Phone = &phone
	}
}

// SetWebsite はウェブサイトを設定する（空文字列の場合はnilのまま保持）
func (p *Place) SetWebsite(website string) {
	if website != "" {
		p.Website = &website
	}
}

// AddressNotAvailable は住所の構成要素が一つもない場合のフォールバック値
const AddressNotAvailable = "Address not available"
