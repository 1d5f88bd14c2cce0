package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"rewards-server/internal/domain/redemption"
)

// RedemptionRepository 交換レコードリポジトリのMySQL実装
type RedemptionRepository struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewRedemptionRepository RedemptionRepositoryを生成する
func NewRedemptionRepository(db *sql.DB) redemption.RedemptionRepository {
	return &RedemptionRepository{
		db:     db,
		tracer: otel.Tracer("infrastructure.persistence.mysql.redemption"),
	}
}

const redemptionColumns = `id, member_id, reward_id, quantity, points_spent, status, shipping_notes, admin_notes, tracking_number, redeemed_at, shipped_at, delivered_at`

// Create 新しい交換レコードを作成し、採番されたIDをエンティティに設定する
func (r *RedemptionRepository) Create(ctx context.Context, tx *sql.Tx, rd *redemption.Redemption) error {
	ctx, span := r.tracer.Start(ctx, "RedemptionRepository.Create")
	defer span.End()

	query := `INSERT INTO redemptions (member_id, reward_id, quantity, points_spent, status, shipping_notes, redeemed_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, query,
		rd.MemberID(),
		rd.RewardID(),
		rd.Quantity(),
		rd.PointsSpent(),
		rd.Status().String(),
		rd.ShippingNotes(),
		rd.RedeemedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to create redemption: %w", translateError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	rd.SetID(id)
	return nil
}

// FindByID 交換IDで交換レコードを取得
func (r *RedemptionRepository) FindByID(ctx context.Context, id int64) (*redemption.Redemption, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionRepository.FindByID")
	defer span.End()

	query := `SELECT ` + redemptionColumns + ` FROM redemptions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanRedemption(row)
}

// LockByID 交換レコード行を行ロック付きで取得（トランザクション内でのみ使用可能）
func (r *RedemptionRepository) LockByID(ctx context.Context, tx *sql.Tx, id int64) (*redemption.Redemption, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionRepository.LockByID")
	defer span.End()

	query := `SELECT ` + redemptionColumns + ` FROM redemptions WHERE id = ? FOR UPDATE`
	row := tx.QueryRowContext(ctx, query, id)
	return scanRedemption(row)
}

// UpdateStatus ステータス・メモ・タイムスタンプを保存（トランザクション内でのみ使用可能）
// points_spentはスナップショットのため更新対象に含めない
func (r *RedemptionRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, rd *redemption.Redemption) error {
	ctx, span := r.tracer.Start(ctx, "RedemptionRepository.UpdateStatus")
	defer span.End()

	query := `UPDATE redemptions SET status = ?, shipping_notes = ?, admin_notes = ?, tracking_number = ?, shipped_at = ?, delivered_at = ? WHERE id = ?`
	result, err := tx.ExecContext(ctx, query,
		rd.Status().String(),
		rd.ShippingNotes(),
		rd.AdminNotes(),
		rd.TrackingNumber(),
		rd.ShippedAt(),
		rd.DeliveredAt(),
		rd.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update redemption status: %w", translateError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return redemption.ErrRedemptionNotFound
	}
	return nil
}

// FindByMemberID 会員の交換履歴を取得（交換日時の降順）
func (r *RedemptionRepository) FindByMemberID(ctx context.Context, memberID int64, limit, offset int) ([]*redemption.Redemption, int, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionRepository.FindByMemberID")
	defer span.End()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM redemptions WHERE member_id = ?`, memberID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count redemptions: %w", translateError(err))
	}

	query := `SELECT ` + redemptionColumns + ` FROM redemptions WHERE member_id = ? ORDER BY redeemed_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query redemptions: %w", translateError(err))
	}
	defer rows.Close()

	redemptions := make([]*redemption.Redemption, 0)
	for rows.Next() {
		rd, err := scanRedemptionRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan redemption: %w", err)
		}
		redemptions = append(redemptions, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate redemptions: %w", translateError(err))
	}
	return redemptions, total, nil
}

type redemptionScanner interface {
	Scan(dest ...any) error
}

func scanRedemptionRow(s redemptionScanner) (*redemption.Redemption, error) {
	var (
		id             int64
		memberID       int64
		rewardID       int64
		quantity       int
		pointsSpent    int64
		status         string
		shippingNotes  sql.NullString
		adminNotes     sql.NullString
		trackingNumber sql.NullString
		redeemedAt     time.Time
		shippedAt      sql.NullTime
		deliveredAt    sql.NullTime
	)
	if err := s.Scan(&id, &memberID, &rewardID, &quantity, &pointsSpent, &status, &shippingNotes, &adminNotes, &trackingNumber, &redeemedAt, &shippedAt, &deliveredAt); err != nil {
		return nil, err
	}
	st, err := redemption.NewStatus(status)
	if err != nil {
		return nil, fmt.Errorf("invalid status for redemption %d: %w", id, err)
	}
	return redemption.Restore(
		id,
		memberID,
		rewardID,
		quantity,
		pointsSpent,
		st,
		shippingNotes.String,
		adminNotes.String,
		trackingNumber.String,
		redeemedAt,
		nullTimeToPtr(shippedAt),
		nullTimeToPtr(deliveredAt),
	), nil
}

func scanRedemption(row *sql.Row) (*redemption.Redemption, error) {
	rd, err := scanRedemptionRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, redemption.ErrRedemptionNotFound
		}
		return nil, fmt.Errorf("failed to scan redemption: %w", translateError(err))
	}
	return rd, nil
}

func nullTimeToPtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
