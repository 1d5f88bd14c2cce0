package reward

import (
	"errors"
	"fmt"
)

var (
	// ErrRewardNotFound 景品が見つからないエラー
	ErrRewardNotFound = errors.New("reward not found")
	// ErrRewardUnavailable 景品が交換停止中エラー
	ErrRewardUnavailable = errors.New("reward is no longer available")
	// ErrInvalidRewardName 景品名が無効
	ErrInvalidRewardName = errors.New("invalid reward name")
	// ErrInvalidCost コストが無効
	ErrInvalidCost = errors.New("invalid cost")
	// ErrInvalidStock 在庫数が無効
	ErrInvalidStock = errors.New("invalid stock")
	// ErrInvalidQuantity 数量が無効
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInvalidPrivilege 特権ティアが無効
	ErrInvalidPrivilege = errors.New("invalid privilege")
	// ErrInsufficientStock 在庫不足エラー（errors.Is用の番兵値）
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError 在庫不足の詳細を持つエラー
type InsufficientStockError struct {
	Available int
	Requested int
}

// Error エラーメッセージを返す
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available %d, requested %d", e.Available, e.Requested)
}

// Is ErrInsufficientStockとの同一性判定
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
