package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"rewards-server/internal/domain/ledger"
)

// LedgerRepository コイン履歴リポジトリのMySQL実装
// 履歴は追記専用のためINSERTとSELECTのみを提供する
type LedgerRepository struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewLedgerRepository LedgerRepositoryを生成する
func NewLedgerRepository(db *sql.DB) ledger.LedgerRepository {
	return &LedgerRepository{
		db:     db,
		tracer: otel.Tracer("infrastructure.persistence.mysql.ledger"),
	}
}

// Append 履歴を追記し、採番されたIDをエンティティに設定する
func (r *LedgerRepository) Append(ctx context.Context, tx *sql.Tx, e *ledger.Entry) error {
	ctx, span := r.tracer.Start(ctx, "LedgerRepository.Append")
	defer span.End()

	query := `INSERT INTO coin_ledger (member_id, event, amount, entry_type, created_at) VALUES (?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, query,
		e.MemberID(),
		e.Event(),
		e.Amount(),
		e.EntryType().String(),
		e.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", translateError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	e.SetID(id)
	return nil
}

// FindByMemberID 会員の履歴を取得（作成日時の降順）
func (r *LedgerRepository) FindByMemberID(ctx context.Context, memberID int64, limit, offset int) ([]*ledger.Entry, int, error) {
	ctx, span := r.tracer.Start(ctx, "LedgerRepository.FindByMemberID")
	defer span.End()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM coin_ledger WHERE member_id = ?`, memberID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", translateError(err))
	}

	query := `SELECT id, member_id, event, amount, entry_type, created_at FROM coin_ledger WHERE member_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query ledger entries: %w", translateError(err))
	}
	defer rows.Close()

	entries := make([]*ledger.Entry, 0)
	for rows.Next() {
		var (
			id        int64
			mid       int64
			event     string
			amount    int64
			entryType string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &mid, &event, &amount, &entryType, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		et, err := ledger.NewEntryType(entryType)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid entry_type for ledger entry %d: %w", id, err)
		}
		entries = append(entries, ledger.Restore(id, mid, event, amount, et, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate ledger entries: %w", translateError(err))
	}
	return entries, total, nil
}
