package service

import (
	"math/rand"
	"sync"
)

// SynthesisStrategy は上流に存在しないデータ（評価値・営業状況）を補完する戦略
// OSMには評価データがないため既定ではランダム生成するが、
// テストでは決定的な実装を注入できる
type SynthesisStrategy struct {
	// Rating は評価値を生成する。第2戻り値がfalseなら評価なし
	Rating func() (float64, bool)
	// RatingCount は評価件数を生成する
	RatingCount func() int
	// OpenNow はopening_hoursタグがない地物の営業状況を生成する
	OpenNow func() bool
}

// DefaultSynthesisStrategy は既定のランダム補完戦略を返す
//   - 評価値: 確率0.7で存在し、[3.5, 5.0)の一様分布
//   - 評価件数: [10, 509]の一様分布
//   - 営業状況: 確率0.7で営業中
//
// 周辺検索はセッションごとのゴルーチンから並行に走るため、
// rand.Randは並行安全でない前提でミューテックスで保護する
func DefaultSynthesisStrategy(rng *rand.Rand) SynthesisStrategy {
	var mu sync.Mutex
	return SynthesisStrategy{
		Rating: func() (float64, bool) {
			mu.Lock()
			defer mu.Unlock()
			if rng.Float64() > 0.3 {
				return 3.5 + rng.Float64()*1.5, true
			}
			return 0, false
		},
		RatingCount: func() int {
			mu.Lock()
			defer mu.Unlock()
			return rng.Intn(500) + 10
		},
		OpenNow: func() bool {
			mu.Lock()
			defer mu.Unlock()
			return rng.Float64() > 0.3
		},
	}
}
