package handler

// AdjustBalanceRequest 残高調整リクエスト
// @Description 残高調整リクエスト
type AdjustBalanceRequest struct {
	Amount          string `json:"amount" example:"500"`
	PermanentAmount string `json:"permanent_amount" example:"0"`
	Reason          string `json:"reason" example:"Event prize compensation"`
}

// AdjustBalanceResponse 残高調整レスポンス
// @Description 残高調整レスポンス
type AdjustBalanceResponse struct {
	MemberID         int64  `json:"member_id" example:"42"`
	SpendableBalance string `json:"spendable_balance" example:"5500"`
	PermanentBalance string `json:"permanent_balance" example:"1200"`
}
