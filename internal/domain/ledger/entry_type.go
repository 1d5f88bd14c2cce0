package ledger

import (
	"fmt"
)

// EntryType コイン履歴のタイプを表す値オブジェクト
type EntryType string

const (
	EntryTypeRedemption EntryType = "reward_redemption" // 景品交換（減算）
	EntryTypeRefund     EntryType = "reward_refund"     // 交換返金（加算）
	EntryTypeAdjustment EntryType = "admin_adjustment"  // 管理者による手動調整
)

// NewEntryType 新しいEntryTypeを作成
func NewEntryType(s string) (EntryType, error) {
	et := EntryType(s)
	if !et.Valid() {
		return "", fmt.Errorf("invalid ledger entry type: %s", s)
	}
	return et, nil
}

// String 文字列表現を返す
func (et EntryType) String() string {
	return string(et)
}

// Valid 有効な履歴タイプかどうかを返す
func (et EntryType) Valid() bool {
	switch et {
	case EntryTypeRedemption, EntryTypeRefund, EntryTypeAdjustment:
		return true
	default:
		return false
	}
}
