package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"rewards-server/internal/domain/transaction"
)

// TransactionManager トランザクション管理の実装
type TransactionManager struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewTransactionManager TransactionManagerを生成する
func NewTransactionManager(db *sql.DB) transaction.TransactionManager {
	return &TransactionManager{
		db:     db,
		tracer: otel.Tracer("infrastructure.persistence.mysql.transaction"),
	}
}

// WithTransaction トランザクション内で処理を実行する
// fnがエラーを返した場合、またはパニックした場合はロールバックする
func (m *TransactionManager) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	ctx, span := m.tracer.Start(ctx, "TransactionManager.WithTransaction")
	defer span.End()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", translateError(err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", translateError(err))
	}

	return nil
}
