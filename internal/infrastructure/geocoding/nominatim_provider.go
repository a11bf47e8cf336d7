package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ServiceFinder-App/internal/domain/model"
)

const (
	// DefaultBaseURL はOpenStreetMapのNominatimジオコーディングサービス
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	// DefaultUserAgent はNominatimが要求する識別用のUser-Agent
	DefaultUserAgent = "ServiceFinderApp/1.0"
)

// NominatimProvider はNominatim APIを使用したジオコーディングの実装
type NominatimProvider struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatimProvider は新しいプロバイダを生成する
// baseURLが空の場合は公開インスタンスを使用する
func NewNominatimProvider(baseURL string) *NominatimProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &NominatimProvider{
		baseURL:    baseURL,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Search はテキストから位置候補を検索する
func (p *NominatimProvider) Search(ctx context.Context, query string, limit int) ([]model.LocationCandidate, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("addressdetails", "1")

	var results []nominatimResult
	if err := p.get(ctx, "/search", params, &results); err != nil {
		return nil, err
	}

	candidates := make([]model.LocationCandidate, 0, len(results))
	for _, result := range results {
		candidate, err := result.toCandidate()
		if err != nil {
			// 座標が数値として読めないレコードは飛ばす
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// Reverse は座標から表示名を取得する
func (p *NominatimProvider) Reverse(ctx context.Context, location model.Location) (string, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(location.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(location.Longitude, 'f', -1, 64))
	params.Set("format", "json")

	var result nominatimResult
	if err := p.get(ctx, "/reverse", params, &result); err != nil {
		return "", err
	}
	if result.DisplayName == "" {
		return "", fmt.Errorf("レスポンスにdisplay_nameが含まれていません")
	}
	return result.DisplayName, nil
}

func (p *NominatimProvider) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s%s?%s", p.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("JSONのパースに失敗: %w", err)
	}
	return nil
}

// --- Nominatim APIのレスポンスをパースするための構造体 ---

type nominatimResult struct {
	DisplayName string            `json:"display_name"`
	Lat         string            `json:"lat"` // 数値文字列で返ってくる
	Lon         string            `json:"lon"`
	Type        string            `json:"type"`
	Address     map[string]string `json:"address,omitempty"`
}

func (r nominatimResult) toCandidate() (model.LocationCandidate, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return model.LocationCandidate{}, fmt.Errorf("緯度のパースに失敗: %w", err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return model.LocationCandidate{}, fmt.Errorf("経度のパースに失敗: %w", err)
	}

	return model.LocationCandidate{
		DisplayName: r.DisplayName,
		Latitude:    lat,
		Longitude:   lon,
		Kind:        r.Type,
		Address:     r.Address,
	}, nil
}
