package redemption

import (
	"errors"
	"fmt"
)

var (
	// ErrRedemptionNotFound 交換レコードが見つからないエラー
	ErrRedemptionNotFound = errors.New("redemption not found")
	// ErrInvalidReference 会員・景品参照が無効
	ErrInvalidReference = errors.New("invalid member or reward reference")
	// ErrInvalidQuantity 数量が範囲外（1〜10）
	ErrInvalidQuantity = errors.New("invalid quantity: must be between 1 and 10")
	// ErrInvalidPointsSpent 消費コイン数が無効
	ErrInvalidPointsSpent = errors.New("invalid points spent")
	// ErrInvalidStatus ステータスが無効
	ErrInvalidStatus = errors.New("invalid status")
	// ErrNotesRequired 管理者メモが未入力
	ErrNotesRequired = errors.New("admin notes are required")
	// ErrConfirmationRequired 最終ステータスへの遷移には明示的な確認が必要
	ErrConfirmationRequired = errors.New("confirmation required for final status")
	// ErrStatusFinal 最終ステータスからの変更は不可（errors.Is用の番兵値）
	ErrStatusFinal = errors.New("status is final and cannot be changed")
)

// FinalStatusError 最終ステータスに固定された交換レコードへの変更エラー
type FinalStatusError struct {
	Status Status
}

// Error エラーメッセージを返す
func (e *FinalStatusError) Error() string {
	return fmt.Sprintf("status cannot be changed from %q: it is final", e.Status)
}

// Is ErrStatusFinalとの同一性判定
func (e *FinalStatusError) Is(target error) bool {
	return target == ErrStatusFinal
}
