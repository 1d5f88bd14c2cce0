package redemption

import (
	"time"
)

const (
	// MinQuantity 1回の交換数量の下限
	MinQuantity = 1
	// MaxQuantity 1回の交換数量の上限（不正対策）
	MaxQuantity = 10
	// MaxShippingNotesLength 配送メモの最大文字数
	// 超過分は拒否せず黙って切り詰める（現行仕様として維持）
	MaxShippingNotesLength = 500
)

// Redemption 景品交換エンティティ
// pointsSpentは交換時点のコストのスナップショットであり、作成後は不変
type Redemption struct {
	id             int64
	memberID       int64
	rewardID       int64
	quantity       int
	pointsSpent    int64
	status         Status
	shippingNotes  string
	adminNotes     string
	trackingNumber string
	redeemedAt     time.Time
	shippedAt      *time.Time
	deliveredAt    *time.Time
}

// NewRedemption 新しいRedemptionエンティティを作成（初期ステータスは検証待ち）
func NewRedemption(memberID, rewardID int64, quantity int, pointsSpent int64, shippingNotes string, now time.Time) (*Redemption, error) {
	if memberID <= 0 || rewardID <= 0 {
		return nil, ErrInvalidReference
	}
	if quantity < MinQuantity || quantity > MaxQuantity {
		return nil, ErrInvalidQuantity
	}
	if pointsSpent < 0 {
		return nil, ErrInvalidPointsSpent
	}
	return &Redemption{
		memberID:      memberID,
		rewardID:      rewardID,
		quantity:      quantity,
		pointsSpent:   pointsSpent,
		status:        StatusAwaitingVerification,
		shippingNotes: truncateNotes(shippingNotes),
		redeemedAt:    now,
	}, nil
}

// Restore 永続化済みのRedemptionエンティティを再構築する（リポジトリ用）
func Restore(
	id int64,
	memberID int64,
	rewardID int64,
	quantity int,
	pointsSpent int64,
	status Status,
	shippingNotes string,
	adminNotes string,
	trackingNumber string,
	redeemedAt time.Time,
	shippedAt *time.Time,
	deliveredAt *time.Time,
) *Redemption {
	return &Redemption{
		id:             id,
		memberID:       memberID,
		rewardID:       rewardID,
		quantity:       quantity,
		pointsSpent:    pointsSpent,
		status:         status,
		shippingNotes:  shippingNotes,
		adminNotes:     adminNotes,
		trackingNumber: trackingNumber,
		redeemedAt:     redeemedAt,
		shippedAt:      shippedAt,
		deliveredAt:    deliveredAt,
	}
}

// ID 交換IDを返す
func (r *Redemption) ID() int64 {
	return r.id
}

// SetID 採番されたIDを設定する（リポジトリのCreate時のみ使用）
func (r *Redemption) SetID(id int64) {
	r.id = id
}

// MemberID 会員IDを返す
func (r *Redemption) MemberID() int64 {
	return r.memberID
}

// RewardID 景品IDを返す
func (r *Redemption) RewardID() int64 {
	return r.rewardID
}

// Quantity 交換数量を返す
func (r *Redemption) Quantity() int {
	return r.quantity
}

// PointsSpent 消費コイン数（スナップショット、不変）を返す
func (r *Redemption) PointsSpent() int64 {
	return r.pointsSpent
}

// Status 現在のステータスを返す
func (r *Redemption) Status() Status {
	return r.status
}

// ShippingNotes 配送メモを返す
func (r *Redemption) ShippingNotes() string {
	return r.shippingNotes
}

// AdminNotes 管理者メモを返す
func (r *Redemption) AdminNotes() string {
	return r.adminNotes
}

// TrackingNumber 追跡番号を返す
func (r *Redemption) TrackingNumber() string {
	return r.trackingNumber
}

// RedeemedAt 交換日時を返す
func (r *Redemption) RedeemedAt() time.Time {
	return r.redeemedAt
}

// ShippedAt 発送日時を返す
func (r *Redemption) ShippedAt() *time.Time {
	return r.shippedAt
}

// DeliveredAt 受領日時を返す
func (r *Redemption) DeliveredAt() *time.Time {
	return r.deliveredAt
}

// Transition ステータスを遷移させる
// 戻り値は返金が必要かどうか（rejected/cancelledへの初回遷移時のみtrue）
//
// 不変条件:
//   - 管理者メモは全ての遷移で必須
//   - 最終ステータスからの遷移は不可
//   - 最終ステータスへの遷移はconfirmFinalによる明示的な確認が必須
func (r *Redemption) Transition(newStatus Status, adminNotes, shippingNotes, trackingNumber string, confirmFinal bool, now time.Time) (bool, error) {
	if !newStatus.Valid() {
		return false, ErrInvalidStatus
	}
	if adminNotes == "" {
		return false, ErrNotesRequired
	}
	if r.status.IsFinal() {
		return false, &FinalStatusError{Status: r.status}
	}
	if newStatus.IsFinal() && !confirmFinal {
		return false, ErrConfirmationRequired
	}

	// 返金は未返金状態からrejected/cancelledに入る初回のみ
	refund := newStatus.RefundsOnEntry() && !r.status.RefundsOnEntry()

	if newStatus == StatusShipped && r.shippedAt == nil {
		t := now
		r.shippedAt = &t
	}
	if newStatus == StatusDelivered {
		t := now
		r.deliveredAt = &t
		if r.shippedAt == nil {
			r.shippedAt = &t
		}
	}

	r.status = newStatus
	r.adminNotes = adminNotes
	if shippingNotes != "" {
		r.shippingNotes = truncateNotes(shippingNotes)
	}
	if trackingNumber != "" {
		r.trackingNumber = trackingNumber
	}

	return refund, nil
}

// truncateNotes 配送メモを上限文字数で切り詰める
func truncateNotes(notes string) string {
	runes := []rune(notes)
	if len(runes) <= MaxShippingNotesLength {
		return notes
	}
	return string(runes[:MaxShippingNotesLength])
}
