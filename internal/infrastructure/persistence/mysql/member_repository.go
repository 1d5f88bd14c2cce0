package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"rewards-server/internal/domain/member"
)

// MemberRepository 会員リポジトリのMySQL実装
type MemberRepository struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewMemberRepository MemberRepositoryを生成する
func NewMemberRepository(db *sql.DB) member.MemberRepository {
	return &MemberRepository{
		db:     db,
		tracer: otel.Tracer("infrastructure.persistence.mysql.member"),
	}
}

// FindByID 会員IDで会員を取得
func (r *MemberRepository) FindByID(ctx context.Context, id int64) (*member.Member, error) {
	ctx, span := r.tracer.Start(ctx, "MemberRepository.FindByID")
	defer span.End()

	query := `SELECT id, display_name, spendable_balance, permanent_balance FROM members WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanMember(row)
}

// LockByID 会員行を行ロック付きで取得（トランザクション内でのみ使用可能）
func (r *MemberRepository) LockByID(ctx context.Context, tx *sql.Tx, id int64) (*member.Member, error) {
	ctx, span := r.tracer.Start(ctx, "MemberRepository.LockByID")
	defer span.End()

	query := `SELECT id, display_name, spendable_balance, permanent_balance FROM members WHERE id = ? FOR UPDATE`
	row := tx.QueryRowContext(ctx, query, id)
	return scanMember(row)
}

// UpdateBalances 残高を保存（トランザクション内でのみ使用可能）
func (r *MemberRepository) UpdateBalances(ctx context.Context, tx *sql.Tx, m *member.Member) error {
	ctx, span := r.tracer.Start(ctx, "MemberRepository.UpdateBalances")
	defer span.End()

	query := `UPDATE members SET spendable_balance = ?, permanent_balance = ? WHERE id = ?`
	result, err := tx.ExecContext(ctx, query, m.SpendableBalance(), m.PermanentBalance(), m.ID())
	if err != nil {
		return fmt.Errorf("failed to update member balances: %w", translateError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return member.ErrMemberNotFound
	}
	return nil
}

func scanMember(row *sql.Row) (*member.Member, error) {
	var (
		id               int64
		displayName      string
		spendableBalance int64
		permanentBalance int64
	)
	if err := row.Scan(&id, &displayName, &spendableBalance, &permanentBalance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, member.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to scan member: %w", translateError(err))
	}
	return member.NewMember(id, displayName, spendableBalance, permanentBalance)
}
