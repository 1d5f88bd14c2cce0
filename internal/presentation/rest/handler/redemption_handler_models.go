package handler

// ErrorResponse エラーレスポンス
// @Description エラーレスポンス
type ErrorResponse struct {
	Error   string `json:"error" example:"not_found"`
	Message string `json:"message" example:"reward not found"`
}

// RedeemRequest 景品交換リクエスト
// @Description 景品交換リクエスト
type RedeemRequest struct {
	RewardID      int64  `json:"reward_id" example:"7"`
	Quantity      int    `json:"quantity" example:"1"`
	ShippingNotes string `json:"shipping_notes" example:"Leave at the front desk"`
}

// RedeemResponse 景品交換レスポンス
// @Description 景品交換レスポンス
type RedeemResponse struct {
	RedemptionID     int64  `json:"redemption_id" example:"100"`
	RewardName       string `json:"reward_name" example:"Community T-Shirt"`
	Quantity         int    `json:"quantity" example:"1"`
	PointsSpent      string `json:"points_spent" example:"500"`
	SpendableBalance string `json:"spendable_balance" example:"4500"`
	PermanentBalance string `json:"permanent_balance" example:"1200"`
	Status           string `json:"status" example:"awaiting_verification"`
	RedeemedAt       string `json:"redeemed_at" example:"2024-01-01T00:00:00Z"`
}

// UpdateStatusRequest 交換ステータス更新リクエスト
// @Description 交換ステータス更新リクエスト
type UpdateStatusRequest struct {
	Status         string `json:"status" example:"shipped" enums:"awaiting_verification,shipped,delivered,rejected,cancelled"`
	AdminNotes     string `json:"admin_notes" example:"Verified and dispatched"`
	ShippingNotes  string `json:"shipping_notes" example:"Updated address"`
	TrackingNumber string `json:"tracking_number" example:"TRK-20240101"`
	ConfirmFinal   bool   `json:"confirm_final" example:"false"`
}

// UpdateStatusResponse 交換ステータス更新レスポンス
// @Description 交換ステータス更新レスポンス
type UpdateStatusResponse struct {
	RedemptionID   int64  `json:"redemption_id" example:"100"`
	Status         string `json:"status" example:"shipped"`
	RefundedAmount string `json:"refunded_amount" example:"0"`
	ShippedAt      string `json:"shipped_at,omitempty" example:"2024-01-02T00:00:00Z"`
	DeliveredAt    string `json:"delivered_at,omitempty" example:"2024-01-05T00:00:00Z"`
}

// RedemptionItem 交換レコードアイテム
// @Description 交換レコードアイテム
type RedemptionItem struct {
	RedemptionID   int64  `json:"redemption_id" example:"100"`
	MemberID       int64  `json:"member_id" example:"42"`
	RewardID       int64  `json:"reward_id" example:"7"`
	Quantity       int    `json:"quantity" example:"1"`
	PointsSpent    string `json:"points_spent" example:"500"`
	Status         string `json:"status" example:"shipped"`
	ShippingNotes  string `json:"shipping_notes,omitempty" example:"Leave at the front desk"`
	AdminNotes     string `json:"admin_notes,omitempty" example:"Verified and dispatched"`
	TrackingNumber string `json:"tracking_number,omitempty" example:"TRK-20240101"`
	RedeemedAt     string `json:"redeemed_at" example:"2024-01-01T00:00:00Z"`
	ShippedAt      string `json:"shipped_at,omitempty" example:"2024-01-02T00:00:00Z"`
	DeliveredAt    string `json:"delivered_at,omitempty" example:"2024-01-05T00:00:00Z"`
}

// RedemptionListResponse 交換履歴レスポンス
// @Description 交換履歴レスポンス
type RedemptionListResponse struct {
	Redemptions []RedemptionItem `json:"redemptions"`
	Total       int              `json:"total" example:"3"`
	Limit       int              `json:"limit" example:"20"`
	Offset      int              `json:"offset" example:"0"`
}
