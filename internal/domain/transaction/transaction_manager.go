package transaction

import (
	"context"
	"database/sql"
)

// TransactionManager トランザクション管理インターフェース
// redeem/updateStatusの各呼び出しは1つのトランザクション内で完結し、
// 部分的なコミットが外部から観測されることはない
type TransactionManager interface {
	// WithTransaction トランザクション内で関数を実行
	WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}
