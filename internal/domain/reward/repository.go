package reward

import (
	"context"
	"database/sql"
)

// RewardRepository 景品リポジトリインターフェース
type RewardRepository interface {
	// FindByID 景品IDで景品を取得
	FindByID(ctx context.Context, id int64) (*Reward, error)

	// LockByID 景品行を行ロック付きで取得（トランザクション内でのみ使用可能）
	LockByID(ctx context.Context, tx *sql.Tx, id int64) (*Reward, error)

	// UpdateStock 在庫数を保存（トランザクション内でのみ使用可能）
	UpdateStock(ctx context.Context, tx *sql.Tx, r *Reward) error

	// Create 新しい景品を作成（採番されたIDを持つエンティティを返す）
	Create(ctx context.Context, r *Reward) (*Reward, error)

	// Save 景品のカタログ情報を保存
	Save(ctx context.Context, r *Reward) error

	// FindActive 交換可能な景品の一覧を取得（コスト昇順）
	FindActive(ctx context.Context) ([]*Reward, error)

	// FindAll 全景品の一覧を取得
	FindAll(ctx context.Context, limit, offset int) ([]*Reward, int, error)
}
