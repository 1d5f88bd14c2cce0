package history

import (
	"time"
)

// ListLedgerRequest コイン履歴取得リクエスト
type ListLedgerRequest struct {
	MemberID int64
	Limit    int
	Offset   int
}

// LedgerEntryResponse コイン履歴の1件
type LedgerEntryResponse struct {
	EntryID   int64
	Event     string
	Amount    int64
	EntryType string
	CreatedAt time.Time
}

// ListLedgerResponse コイン履歴レスポンス
type ListLedgerResponse struct {
	Entries []*LedgerEntryResponse
	Total   int
}
