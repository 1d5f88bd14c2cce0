package handler

// RewardListItem 景品一覧アイテム
// @Description 景品一覧アイテム
type RewardListItem struct {
	RewardID          int64  `json:"reward_id" example:"7"`
	Name              string `json:"name" example:"Community T-Shirt"`
	Description       string `json:"description,omitempty" example:"Limited edition shirt"`
	Cost              string `json:"cost" example:"500"`
	Stock             int    `json:"stock" example:"20"`
	RequiredPrivilege string `json:"required_privilege,omitempty" example:"berkomunitasplus" enums:"user,berkomunitasplus,partner,admin"`
	Affordable        bool   `json:"affordable" example:"true"`
	Redeemable        bool   `json:"redeemable" example:"true"`
}

// RewardListResponse 景品一覧レスポンス
// @Description 景品一覧レスポンス
type RewardListResponse struct {
	Rewards []RewardListItem `json:"rewards"`
}

// RewardRequest 景品作成・更新リクエスト
// @Description 景品作成・更新リクエスト
type RewardRequest struct {
	Name              string `json:"name" example:"Community T-Shirt"`
	Description       string `json:"description" example:"Limited edition shirt"`
	Cost              string `json:"cost" example:"500"`
	Stock             int    `json:"stock" example:"20"`
	IsActive          bool   `json:"is_active" example:"true"`
	RequiredPrivilege string `json:"required_privilege" example:"berkomunitasplus" enums:"user,berkomunitasplus,partner,admin"`
}

// RewardAdminResponse 景品レスポンス（管理API用）
// @Description 景品レスポンス（管理API用）
type RewardAdminResponse struct {
	RewardID          int64  `json:"reward_id" example:"7"`
	Name              string `json:"name" example:"Community T-Shirt"`
	Description       string `json:"description,omitempty" example:"Limited edition shirt"`
	Cost              string `json:"cost" example:"500"`
	Stock             int    `json:"stock" example:"20"`
	IsActive          bool   `json:"is_active" example:"true"`
	RequiredPrivilege string `json:"required_privilege,omitempty" example:"berkomunitasplus"`
	CreatedAt         string `json:"created_at" example:"2024-01-01T00:00:00Z"`
}
