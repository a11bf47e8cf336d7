package model

// CategoryConstants はアプリケーションで使用するサービスカテゴリの定数
const (
	CategoryRestaurant = "restaurant"
	CategoryMedical    = "medical"
	CategoryCharging   = "charging"
)

// ServiceCategory は検索対象のサービス種別
// OSMTagは地理データベースへの問い合わせに使う正規タグ
type ServiceCategory struct {
	ID     string `json:"id"`
	OSMTag string `json:"osm_tag"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
}

// serviceCategoryMap はカテゴリIDから定義へのマッピング
var serviceCategoryMap = map[string]ServiceCategory{
	CategoryRestaurant: {
		ID:     CategoryRestaurant,
		OSMTag: "restaurant",
		Label:  "Restaurants",
		Icon:   "🍽️",
	},
	CategoryMedical: {
		ID:     CategoryMedical,
		OSMTag: "pharmacy",
		Label:  "Medical Stores",
		Icon:   "⚕️",
	},
	CategoryCharging: {
		ID:     CategoryCharging,
		OSMTag: "charging_station",
		Label:  "EV Charging",
		Icon:   "⚡",
	},
}

// GetServiceCategory はカテゴリIDから定義を取得する
func GetServiceCategory(id string) (ServiceCategory, bool) {
	category, ok := serviceCategoryMap[id]
	return category, ok
}

// GetAllServiceCategories は全サービスカテゴリの一覧を表示順で取得する
func GetAllServiceCategories() []ServiceCategory {
	return []ServiceCategory{
		serviceCategoryMap[CategoryRestaurant],
		serviceCategoryMap[CategoryMedical],
		serviceCategoryMap[CategoryCharging],
	}
}

// IsValidCategory はカテゴリIDが定義済みかチェック
func IsValidCategory(id string) bool {
	_, ok := serviceCategoryMap[id]
	return ok
}
