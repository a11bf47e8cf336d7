package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ServiceFinder-App/internal/domain/model"
)

// DefaultBaseURL はOverpass APIの公開インスタンス
const DefaultBaseURL = "https://overpass-api.de"

// OverpassProvider はOverpass APIを使用した地物検索の実装
type OverpassProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewOverpassProvider は新しいプロバイダを生成する
// baseURLが空の場合は公開インスタンスを使用する
func NewOverpassProvider(baseURL string) *OverpassProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OverpassProvider{
		baseURL: baseURL,
		// クエリ自体のタイムアウト25秒より少し長めに待つ
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// QueryAround は指定座標の半径内にあるamenityタグ付き地物を取得する
// node/way/relationすべてを対象にし、way/relationには重心を付けて返させる
func (p *OverpassProvider) QueryAround(ctx context.Context, location model.Location, tag string, radiusMeters int) ([]model.Feature, error) {
	query := buildAroundQuery(location, tag, radiusMeters)

	body := "data=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/api/interpreter", strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	var apiResp overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	return apiResp.Elements, nil
}

// buildAroundQuery はOverpass QLの半径検索クエリを組み立てる
func buildAroundQuery(location model.Location, tag string, radiusMeters int) string {
	around := fmt.Sprintf("(around:%d,%f,%f)", radiusMeters, location.Latitude, location.Longitude)
	return fmt.Sprintf(`[out:json][timeout:25];
(
  node["amenity"=%q]%s;
  way["amenity"=%q]%s;
  relation["amenity"=%q]%s;
);
out center;`, tag, around, tag, around, tag, around)
}

// overpassResponse はOverpass APIのレスポンスをパースするための構造体
type overpassResponse struct {
	Elements []model.Feature `json:"elements"`
}
