package notification

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidMemberID 会員IDが無効
	ErrInvalidMemberID = errors.New("invalid member id")
	// ErrInvalidMessage メッセージが無効
	ErrInvalidMessage = errors.New("invalid message")
)

// Notification 会員向け通知エンティティ
type Notification struct {
	id        int64
	memberID  int64
	message   string
	linkURL   string
	isRead    bool
	createdAt time.Time
}

// NewNotification 新しいNotificationエンティティを作成
func NewNotification(memberID int64, message, linkURL string, now time.Time) (*Notification, error) {
	if memberID <= 0 {
		return nil, ErrInvalidMemberID
	}
	if message == "" {
		return nil, ErrInvalidMessage
	}
	return &Notification{
		memberID:  memberID,
		message:   message,
		linkURL:   linkURL,
		createdAt: now,
	}, nil
}

// ID 通知IDを返す
func (n *Notification) ID() int64 {
	return n.id
}

// SetID 採番されたIDを設定する（リポジトリのCreate時のみ使用）
func (n *Notification) SetID(id int64) {
	n.id = id
}

// MemberID 会員IDを返す
func (n *Notification) MemberID() int64 {
	return n.memberID
}

// Message メッセージを返す
func (n *Notification) Message() string {
	return n.message
}

// LinkURL リンク先URLを返す
func (n *Notification) LinkURL() string {
	return n.linkURL
}

// IsRead 既読かどうかを返す
func (n *Notification) IsRead() bool {
	return n.isRead
}

// CreatedAt 作成日時を返す
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// Notifier 通知送信インターフェース
// ベストエフォート契約: 呼び出し側は失敗をログに残すだけで、
// 親操作のエラーとして伝播させてはならない
type Notifier interface {
	// Notify 会員に通知を送信
	Notify(ctx context.Context, memberID int64, message, linkURL string) error
}
