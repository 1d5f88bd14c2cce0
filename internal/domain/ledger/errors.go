package ledger

import "errors"

var (
	// ErrInvalidMemberID 会員IDが無効
	ErrInvalidMemberID = errors.New("invalid member id")
	// ErrInvalidEvent 事象の説明が無効
	ErrInvalidEvent = errors.New("invalid event")
	// ErrInvalidAmount 金額が無効
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidEntryType 履歴タイプが無効
	ErrInvalidEntryType = errors.New("invalid entry type")
)
