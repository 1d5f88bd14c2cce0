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

// PrivilegeRepository 会員特権リポジトリのMySQL実装
type PrivilegeRepository struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPrivilegeRepository PrivilegeRepositoryを生成する
func NewPrivilegeRepository(db *sql.DB) member.PrivilegeRepository {
	return &PrivilegeRepository{
		db:     db,
		tracer: otel.Tracer("infrastructure.persistence.mysql.privilege"),
	}
}

// FindActiveByMemberID 会員の有効な特権を取得
// 複数保持している場合は最上位のティアを返す
func (r *PrivilegeRepository) FindActiveByMemberID(ctx context.Context, memberID int64) (member.Privilege, error) {
	ctx, span := r.tracer.Start(ctx, "PrivilegeRepository.FindActiveByMemberID")
	defer span.End()

	query := `SELECT privilege FROM member_privileges WHERE member_id = ? AND is_active = true`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", member.ErrPrivilegeNotFound
		}
		return "", fmt.Errorf("failed to query member privileges: %w", translateError(err))
	}
	defer rows.Close()

	highest := member.Privilege("")
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return "", fmt.Errorf("failed to scan privilege: %w", err)
		}
		p, err := member.NewPrivilege(raw)
		if err != nil {
			// 未知のティアは無視する（スキーマ拡張への耐性）
			continue
		}
		if highest == "" || p.Rank() > highest.Rank() {
			highest = p
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to iterate privileges: %w", translateError(err))
	}
	if highest == "" {
		return "", member.ErrPrivilegeNotFound
	}
	return highest, nil
}
