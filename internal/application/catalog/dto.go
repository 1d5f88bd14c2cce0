package catalog

import (
	"time"
)

// ListRewardsRequest 景品一覧取得リクエスト
// MemberIDが指定された場合は交換可否の判定を含める
type ListRewardsRequest struct {
	MemberID int64
}

// RewardItem 景品一覧の1件
type RewardItem struct {
	RewardID          int64
	Name              string
	Description       string
	Cost              int64
	Stock             int
	RequiredPrivilege string
	Affordable        bool
	Redeemable        bool
}

// ListRewardsResponse 景品一覧レスポンス
type ListRewardsResponse struct {
	Rewards []*RewardItem
}

// CreateRewardRequest 景品作成リクエスト
type CreateRewardRequest struct {
	Name              string
	Description       string
	Cost              int64
	Stock             int
	IsActive          bool
	RequiredPrivilege string
}

// UpdateRewardRequest 景品更新リクエスト
type UpdateRewardRequest struct {
	RewardID          int64
	Name              string
	Description       string
	Cost              int64
	Stock             int
	IsActive          bool
	RequiredPrivilege string
}

// DeactivateRewardRequest 景品交換停止リクエスト
type DeactivateRewardRequest struct {
	RewardID int64
}

// RewardResponse 景品レスポンス
type RewardResponse struct {
	RewardID          int64
	Name              string
	Description       string
	Cost              int64
	Stock             int
	IsActive          bool
	RequiredPrivilege string
	CreatedAt         time.Time
}
