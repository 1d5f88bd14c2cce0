package ledger

import (
	"time"
)

// Entry コイン履歴の追記専用レコード
// 残高に影響する全ての事象で1行作成され、以後変更も削除もされない
// 突合（リコンシリエーション）の一次情報源となる
type Entry struct {
	id        int64
	memberID  int64
	event     string
	amount    int64 // 減算はマイナス、加算はプラス
	entryType EntryType
	createdAt time.Time
}

// NewEntry 新しいEntryエンティティを作成
func NewEntry(memberID int64, event string, amount int64, entryType EntryType, now time.Time) (*Entry, error) {
	if memberID <= 0 {
		return nil, ErrInvalidMemberID
	}
	if event == "" {
		return nil, ErrInvalidEvent
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	if !entryType.Valid() {
		return nil, ErrInvalidEntryType
	}
	return &Entry{
		memberID:  memberID,
		event:     event,
		amount:    amount,
		entryType: entryType,
		createdAt: now,
	}, nil
}

// Restore 永続化済みのEntryエンティティを再構築する（リポジトリ用）
func Restore(id, memberID int64, event string, amount int64, entryType EntryType, createdAt time.Time) *Entry {
	return &Entry{
		id:        id,
		memberID:  memberID,
		event:     event,
		amount:    amount,
		entryType: entryType,
		createdAt: createdAt,
	}
}

// ID 履歴IDを返す
func (e *Entry) ID() int64 {
	return e.id
}

// SetID 採番されたIDを設定する（リポジトリのAppend時のみ使用）
func (e *Entry) SetID(id int64) {
	e.id = id
}

// MemberID 会員IDを返す
func (e *Entry) MemberID() int64 {
	return e.memberID
}

// Event 事象の説明を返す
func (e *Entry) Event() string {
	return e.event
}

// Amount 金額を返す（減算はマイナス）
func (e *Entry) Amount() int64 {
	return e.amount
}

// EntryType 履歴タイプを返す
func (e *Entry) EntryType() EntryType {
	return e.entryType
}

// CreatedAt 作成日時を返す
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}
