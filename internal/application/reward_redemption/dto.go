package reward_redemption

import (
	"time"
)

// RedeemRequest 景品交換リクエスト
type RedeemRequest struct {
	MemberID      int64
	RewardID      int64
	Quantity      int
	ShippingNotes string
}

// RedeemResponse 景品交換レスポンス
type RedeemResponse struct {
	RedemptionID     int64
	RewardName       string
	Quantity         int
	PointsSpent      int64
	SpendableBalance int64
	PermanentBalance int64
	Status           string
	RedeemedAt       time.Time
}

// UpdateStatusRequest 交換ステータス更新リクエスト
type UpdateStatusRequest struct {
	RedemptionID   int64
	NewStatus      string
	AdminNotes     string
	ShippingNotes  string
	TrackingNumber string
	ConfirmFinal   bool
}

// UpdateStatusResponse 交換ステータス更新レスポンス
type UpdateStatusResponse struct {
	RedemptionID   int64
	Status         string
	RefundedAmount int64
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
}

// GetRedemptionRequest 交換レコード取得リクエスト
type GetRedemptionRequest struct {
	RedemptionID int64
}

// RedemptionResponse 交換レコードレスポンス
type RedemptionResponse struct {
	RedemptionID   int64
	MemberID       int64
	RewardID       int64
	Quantity       int
	PointsSpent    int64
	Status         string
	ShippingNotes  string
	AdminNotes     string
	TrackingNumber string
	RedeemedAt     time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
}

// ListRedemptionsRequest 交換履歴取得リクエスト
type ListRedemptionsRequest struct {
	MemberID int64
	Limit    int
	Offset   int
}

// ListRedemptionsResponse 交換履歴レスポンス
type ListRedemptionsResponse struct {
	Redemptions []*RedemptionResponse
	Total       int
}
