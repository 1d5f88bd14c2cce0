package redemption

import (
	"context"
	"database/sql"
)

// RedemptionRepository 交換レコードリポジトリインターフェース
// 交換レコードはCreateとUpdateStatusでのみ変化し、削除されることはない
type RedemptionRepository interface {
	// Create 新しい交換レコードを作成し、採番されたIDをエンティティに設定する
	// （トランザクション内でのみ使用可能）
	Create(ctx context.Context, tx *sql.Tx, r *Redemption) error

	// FindByID 交換IDで交換レコードを取得
	FindByID(ctx context.Context, id int64) (*Redemption, error)

	// LockByID 交換レコード行を行ロック付きで取得（トランザクション内でのみ使用可能）
	LockByID(ctx context.Context, tx *sql.Tx, id int64) (*Redemption, error)

	// UpdateStatus ステータス・メモ・タイムスタンプを保存（トランザクション内でのみ使用可能）
	UpdateStatus(ctx context.Context, tx *sql.Tx, r *Redemption) error

	// FindByMemberID 会員の交換履歴を取得（交換日時の降順）
	FindByMemberID(ctx context.Context, memberID int64, limit, offset int) ([]*Redemption, int, error)
}
