package member

import (
	"errors"
	"fmt"
)

var (
	// ErrMemberNotFound 会員が見つからないエラー
	ErrMemberNotFound = errors.New("member not found")
	// ErrInvalidMemberID 会員IDが無効
	ErrInvalidMemberID = errors.New("invalid member id")
	// ErrInvalidAmount 金額が無効
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrBalanceOutOfRange 残高が範囲外
	ErrBalanceOutOfRange = errors.New("balance out of range")
	// ErrInsufficientBalance 残高不足エラー（errors.Is用の番兵値）
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInsufficientPrivilege 特権不足エラー（errors.Is用の番兵値）
	ErrInsufficientPrivilege = errors.New("insufficient privilege")
	// ErrPrivilegeNotFound 有効な特権レコードが存在しない
	ErrPrivilegeNotFound = errors.New("privilege not found")
)

// InsufficientBalanceError 残高不足の詳細を持つエラー
type InsufficientBalanceError struct {
	Required  int64
	Available int64
}

// Error エラーメッセージを返す
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %d, available %d", e.Required, e.Available)
}

// Is ErrInsufficientBalanceとの同一性判定
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// InsufficientPrivilegeError 特権不足の詳細を持つエラー
type InsufficientPrivilegeError struct {
	Required Privilege
}

// Error エラーメッセージを返す
func (e *InsufficientPrivilegeError) Error() string {
	return fmt.Sprintf("this reward requires %s membership or higher", e.Required.DisplayName())
}

// Is ErrInsufficientPrivilegeとの同一性判定
func (e *InsufficientPrivilegeError) Is(target error) bool {
	return target == ErrInsufficientPrivilege
}
