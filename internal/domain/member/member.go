package member

const (
	// MaxBalance 最大残高
	MaxBalance = 10_000_000_000
)

// Member 会員エンティティ
// spendableBalance（コイン）は交換で消費できる残高、
// permanentBalance（ロイヤリティポイント）は減少しない実績スコア
type Member struct {
	id               int64
	displayName      string
	spendableBalance int64
	permanentBalance int64
}

// NewMember 新しいMemberエンティティを作成
func NewMember(id int64, displayName string, spendableBalance, permanentBalance int64) (*Member, error) {
	if id <= 0 {
		return nil, ErrInvalidMemberID
	}
	if spendableBalance < 0 || spendableBalance > MaxBalance {
		return nil, ErrBalanceOutOfRange
	}
	if permanentBalance < 0 || permanentBalance > MaxBalance {
		return nil, ErrBalanceOutOfRange
	}
	return &Member{
		id:               id,
		displayName:      displayName,
		spendableBalance: spendableBalance,
		permanentBalance: permanentBalance,
	}, nil
}

// ID 会員IDを返す
func (m *Member) ID() int64 {
	return m.id
}

// DisplayName 表示名を返す
func (m *Member) DisplayName() string {
	return m.displayName
}

// SpendableBalance 消費可能残高（コイン）を返す
func (m *Member) SpendableBalance() int64 {
	return m.spendableBalance
}

// PermanentBalance 永続残高（ロイヤリティポイント）を返す
func (m *Member) PermanentBalance() int64 {
	return m.permanentBalance
}

// Debit 消費可能残高から引き落とす（マイナス残高は許可しない）
func (m *Member) Debit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if m.spendableBalance < amount {
		return &InsufficientBalanceError{
			Required:  amount,
			Available: m.spendableBalance,
		}
	}
	m.spendableBalance -= amount
	return nil
}

// Credit 消費可能残高に加算する（返金・付与用）
func (m *Member) Credit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if m.spendableBalance > MaxBalance-amount {
		return ErrBalanceOutOfRange
	}
	m.spendableBalance += amount
	return nil
}

// GrantPermanent 永続残高に加算する
// 永続残高は実績スコアのため減少させる操作は存在しない
func (m *Member) GrantPermanent(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if m.permanentBalance > MaxBalance-amount {
		return ErrBalanceOutOfRange
	}
	m.permanentBalance += amount
	return nil
}

// MustNewMember テスト用ヘルパー: NewMemberを呼び出し、エラーが発生した場合はpanicする
func MustNewMember(id int64, displayName string, spendableBalance, permanentBalance int64) *Member {
	m, err := NewMember(id, displayName, spendableBalance, permanentBalance)
	if err != nil {
		panic(err)
	}
	return m
}
