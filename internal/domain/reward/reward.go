package reward

import (
	"time"

	"rewards-server/internal/domain/member"
)

const (
	// MaxCost 1件あたりの最大コスト
	MaxCost = 10_000_000
	// MaxStock 最大在庫数
	MaxStock = 1_000_000
)

// Reward 景品カタログエンティティ
// 在庫は交換作成（減算）と返金（加算）によってのみ変化し、負になることはない
type Reward struct {
	id                int64
	name              string
	description       string
	cost              int64
	stock             int
	isActive          bool
	requiredPrivilege *member.Privilege
	createdAt         time.Time
}

// NewReward 新しいRewardエンティティを作成
func NewReward(
	id int64,
	name string,
	description string,
	cost int64,
	stock int,
	isActive bool,
	requiredPrivilege *member.Privilege,
	createdAt time.Time,
) (*Reward, error) {
	if name == "" {
		return nil, ErrInvalidRewardName
	}
	if cost < 0 || cost > MaxCost {
		return nil, ErrInvalidCost
	}
	if stock < 0 || stock > MaxStock {
		return nil, ErrInvalidStock
	}
	if requiredPrivilege != nil && !requiredPrivilege.Valid() {
		return nil, ErrInvalidPrivilege
	}
	return &Reward{
		id:                id,
		name:              name,
		description:       description,
		cost:              cost,
		stock:             stock,
		isActive:          isActive,
		requiredPrivilege: requiredPrivilege,
		createdAt:         createdAt,
	}, nil
}

// ID 景品IDを返す
func (r *Reward) ID() int64 {
	return r.id
}

// Name 景品名を返す
func (r *Reward) Name() string {
	return r.name
}

// Description 説明を返す
func (r *Reward) Description() string {
	return r.description
}

// Cost 1個あたりのコスト（コイン）を返す
func (r *Reward) Cost() int64 {
	return r.cost
}

// Stock 在庫数を返す
func (r *Reward) Stock() int {
	return r.stock
}

// IsActive 交換可能かどうかを返す
func (r *Reward) IsActive() bool {
	return r.isActive
}

// RequiredPrivilege 必要な特権ティアを返す（nilは制限なし）
func (r *Reward) RequiredPrivilege() *member.Privilege {
	return r.requiredPrivilege
}

// CreatedAt 作成日時を返す
func (r *Reward) CreatedAt() time.Time {
	return r.createdAt
}

// TotalCost 指定数量の合計コストを返す
func (r *Reward) TotalCost(quantity int) int64 {
	return r.cost * int64(quantity)
}

// RedeemableBy 指定ティアの会員が交換できるかどうかを返す
func (r *Reward) RedeemableBy(p member.Privilege) bool {
	if r.requiredPrivilege == nil {
		return true
	}
	return p.AtLeast(*r.requiredPrivilege)
}

// Reserve 在庫を数量分確保する（減算）
func (r *Reward) Reserve(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if r.stock < quantity {
		return &InsufficientStockError{
			Available: r.stock,
			Requested: quantity,
		}
	}
	r.stock -= quantity
	return nil
}

// Restock 在庫を数量分戻す（返金時の加算）
func (r *Reward) Restock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if r.stock > MaxStock-quantity {
		return ErrInvalidStock
	}
	r.stock += quantity
	return nil
}

// Deactivate 景品を交換停止にする
func (r *Reward) Deactivate() {
	r.isActive = false
}

// Activate 景品を交換可能にする
func (r *Reward) Activate() {
	r.isActive = true
}

// MustNewReward テスト用ヘルパー: NewRewardを呼び出し、エラーが発生した場合はpanicする
func MustNewReward(
	id int64,
	name string,
	description string,
	cost int64,
	stock int,
	isActive bool,
	requiredPrivilege *member.Privilege,
	createdAt time.Time,
) *Reward {
	r, err := NewReward(id, name, description, cost, stock, isActive, requiredPrivilege, createdAt)
	if err != nil {
		panic(err)
	}
	return r
}
