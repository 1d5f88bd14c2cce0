package adjustment

// AdjustBalanceRequest 残高調整リクエスト
// Amountは消費可能残高への増減（正なら付与、負なら減算）、
// PermanentAmountは永続残高への追加付与（0なら変更なし）
type AdjustBalanceRequest struct {
	MemberID        int64
	Amount          int64
	PermanentAmount int64
	Reason          string
}

// AdjustBalanceResponse 残高調整レスポンス
type AdjustBalanceResponse struct {
	MemberID         int64
	SpendableBalance int64
	PermanentBalance int64
}
