package redemption

import (
	"fmt"
)

// Status 交換レコードのステータスを表す値オブジェクト
//
// 遷移: awaiting_verification → shipped → delivered(最終)
// 非最終の任意のステータス → rejected / cancelled(最終、返金あり)
type Status string

const (
	StatusAwaitingVerification Status = "awaiting_verification" // 検証待ち（初期状態）
	StatusShipped              Status = "shipped"               // 発送済み
	StatusDelivered            Status = "delivered"             // 受領済み（最終）
	StatusRejected             Status = "rejected"              // 却下（最終、返金）
	StatusCancelled            Status = "cancelled"             // キャンセル（最終、返金）
)

// NewStatus 新しいStatusを作成
func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid redemption status: %s", s)
	}
	return st, nil
}

// String 文字列表現を返す
func (s Status) String() string {
	return string(s)
}

// Valid 有効なステータスかどうかを返す
func (s Status) Valid() bool {
	switch s {
	case StatusAwaitingVerification, StatusShipped, StatusDelivered, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsFinal 最終ステータスかどうかを返す
// 最終ステータスに達した交換レコードは以後一切変更できない
func (s Status) IsFinal() bool {
	switch s {
	case StatusDelivered, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// RefundsOnEntry このステータスへの遷移が返金を伴うかどうかを返す
func (s Status) RefundsOnEntry() bool {
	return s == StatusRejected || s == StatusCancelled
}
