package service

import "strings"

// InterpretOpeningHours はopening_hours文字列の最小限の解釈を行う
// 実際のOSMのopening_hoursは非常に複雑だが、ここでは簡略化している:
//   - "24/7" を含む → 営業中
//   - "closed" を含む（大文字小文字無視）→ 閉店中
//   - 解釈できない場合は営業中とみなす
func InterpretOpeningHours(openingHours string) bool {
	if strings.Contains(openingHours, "24/7") {
		return true
	}
	if strings.Contains(strings.ToLower(openingHours), "closed") {
		return false
	}
	return true
}
