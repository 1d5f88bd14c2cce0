package ledger

import (
	"context"
	"database/sql"
)

// LedgerRepository コイン履歴リポジトリインターフェース
type LedgerRepository interface {
	// Append 履歴を追記し、採番されたIDをエンティティに設定する
	// （トランザクション内でのみ使用可能）
	Append(ctx context.Context, tx *sql.Tx, e *Entry) error

	// FindByMemberID 会員の履歴を取得（作成日時の降順）
	FindByMemberID(ctx context.Context, memberID int64, limit, offset int) ([]*Entry, int, error)
}
