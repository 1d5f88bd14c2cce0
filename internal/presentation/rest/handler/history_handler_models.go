package handler

// LedgerEntryItem コイン履歴アイテム
// @Description コイン履歴アイテム
type LedgerEntryItem struct {
	EntryID   int64  `json:"entry_id" example:"1001"`
	Event     string `json:"event" example:"Reward redemption: Community T-Shirt (1x)"`
	Amount    string `json:"amount" example:"-500"`
	EntryType string `json:"entry_type" example:"reward_redemption" enums:"reward_redemption,reward_refund,admin_adjustment"`
	CreatedAt string `json:"created_at" example:"2024-01-01T00:00:00Z"`
}

// LedgerResponse コイン履歴レスポンス
// @Description コイン履歴レスポンス
type LedgerResponse struct {
	Entries []LedgerEntryItem `json:"entries"`
	Total   int               `json:"total" example:"12"`
	Limit   int               `json:"limit" example:"20"`
	Offset  int               `json:"offset" example:"0"`
}
