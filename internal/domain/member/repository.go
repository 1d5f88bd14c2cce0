package member

import (
	"context"
	"database/sql"
)

// MemberRepository 会員リポジトリインターフェース
type MemberRepository interface {
	// FindByID 会員IDで会員を取得
	FindByID(ctx context.Context, id int64) (*Member, error)

	// LockByID 会員行を行ロック付きで取得（トランザクション内でのみ使用可能）
	LockByID(ctx context.Context, tx *sql.Tx, id int64) (*Member, error)

	// UpdateBalances 残高を保存（トランザクション内でのみ使用可能）
	UpdateBalances(ctx context.Context, tx *sql.Tx, m *Member) error
}

// PrivilegeRepository 会員特権リポジトリインターフェース
type PrivilegeRepository interface {
	// FindActiveByMemberID 会員の有効な特権を取得
	// レコードが存在しない場合はErrPrivilegeNotFoundを返す
	FindActiveByMemberID(ctx context.Context, memberID int64) (Privilege, error)
}
