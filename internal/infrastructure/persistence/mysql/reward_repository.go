package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"rewards-server/internal/domain/member"
	"rewards-server/internal/domain/reward"
)

// RewardRepository 景品リポジトリのMySQL実装
type RewardRepository struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewRewardRepository RewardRepositoryを生成する
func NewRewardRepository(db *sql.DB) reward.RewardRepository {
	return &RewardRepository{
		db:     db,
		tracer: otel.Tracer("infrastructure.persistence.mysql.reward"),
	}
}

const rewardColumns = `id, name, description, cost, stock, is_active, required_privilege, created_at`

// FindByID 景品IDで景品を取得
func (r *RewardRepository) FindByID(ctx context.Context, id int64) (*reward.Reward, error) {
	ctx, span := r.tracer.Start(ctx, "RewardRepository.FindByID")
	defer span.End()

	query := `SELECT ` + rewardColumns + ` FROM rewards WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanReward(row)
}

// LockByID 景品行を行ロック付きで取得（トランザクション内でのみ使用可能）
func (r *RewardRepository) LockByID(ctx context.Context, tx *sql.Tx, id int64) (*reward.Reward, error) {
	ctx, span := r.tracer.Start(ctx, "RewardRepository.LockByID")
	defer span.End()

	query := `SELECT ` + rewardColumns + ` FROM rewards WHERE id = ? FOR UPDATE`
	row := tx.QueryRowContext(ctx, query, id)
	return scanReward(row)
}

// UpdateStock 在庫数を保存（トランザクション内でのみ使用可能）
func (r *RewardRepository) UpdateStock(ctx context.Context, tx *sql.Tx, rw *reward.Reward) error {
	ctx, span := r.tracer.Start(ctx, "RewardRepository.UpdateStock")
	defer span.End()

	query := `UPDATE rewards SET stock = ? WHERE id = ?`
	result, err := tx.ExecContext(ctx, query, rw.Stock(), rw.ID())
	if err != nil {
		return fmt.Errorf("failed to update reward stock: %w", translateError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return reward.ErrRewardNotFound
	}
	return nil
}

// Create 新しい景品を作成（採番されたIDを持つエンティティを返す）
func (r *RewardRepository) Create(ctx context.Context, rw *reward.Reward) (*reward.Reward, error) {
	ctx, span := r.tracer.Start(ctx, "RewardRepository.Create")
	defer span.End()

	query := `INSERT INTO rewards (name, description, cost, stock, is_active, required_privilege, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		rw.Name(),
		rw.Description(),
		rw.Cost(),
		rw.Stock(),
		rw.IsActive(),
		privilegeToNullString(rw.RequiredPrivilege()),
		rw.CreatedAt(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reward: %w", translateError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return reward.NewReward(id, rw.Name(), rw.Description(), rw.Cost(), rw.Stock(), rw.IsActive(), rw.RequiredPrivilege(), rw.CreatedAt())
}

// Save 景品のカタログ情報を保存
func (r *RewardRepository) Save(ctx context.Context, rw *reward.Reward) error {
	ctx, span := r.tracer.Start(ctx, "RewardRepository.Save")
	defer span.End()

	query := `UPDATE rewards SET name = ?, description = ?, cost = ?, stock = ?, is_active = ?, required_privilege = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		rw.Name(),
		rw.Description(),
		rw.Cost(),
		rw.Stock(),
		rw.IsActive(),
		privilegeToNullString(rw.RequiredPrivilege()),
		rw.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to save reward: %w", translateError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return reward.ErrRewardNotFound
	}
	return nil
}

// FindActive 交換可能な景品の一覧を取得（コスト昇順）
func (r *RewardRepository) FindActive(ctx context.Context) ([]*reward.Reward, error) {
	ctx, span := r.tracer.Start(ctx, "RewardRepository.FindActive")
	defer span.End()

	query := `SELECT ` + rewardColumns + ` FROM rewards WHERE is_active = true ORDER BY cost ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active rewards: %w", translateError(err))
	}
	defer rows.Close()
	return scanRewards(rows)
}

// FindAll 全景品の一覧を取得
func (r *RewardRepository) FindAll(ctx context.Context, limit, offset int) ([]*reward.Reward, int, error) {
	ctx, span := r.tracer.Start(ctx, "RewardRepository.FindAll")
	defer span.End()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rewards`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count rewards: %w", translateError(err))
	}

	query := `SELECT ` + rewardColumns + ` FROM rewards ORDER BY id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query rewards: %w", translateError(err))
	}
	defer rows.Close()

	rewards, err := scanRewards(rows)
	if err != nil {
		return nil, 0, err
	}
	return rewards, total, nil
}

type rewardScanner interface {
	Scan(dest ...any) error
}

func scanRewardRow(s rewardScanner) (*reward.Reward, error) {
	var (
		id                int64
		name              string
		description       sql.NullString
		cost              int64
		stock             int
		isActive          bool
		requiredPrivilege sql.NullString
		createdAt         time.Time
	)
	if err := s.Scan(&id, &name, &description, &cost, &stock, &isActive, &requiredPrivilege, &createdAt); err != nil {
		return nil, err
	}
	var privilege *member.Privilege
	if requiredPrivilege.Valid && requiredPrivilege.String != "" {
		p, err := member.NewPrivilege(requiredPrivilege.String)
		if err != nil {
			return nil, fmt.Errorf("invalid required_privilege for reward %d: %w", id, err)
		}
		privilege = &p
	}
	return reward.NewReward(id, name, description.String, cost, stock, isActive, privilege, createdAt)
}

func scanReward(row *sql.Row) (*reward.Reward, error) {
	rw, err := scanRewardRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reward.ErrRewardNotFound
		}
		return nil, fmt.Errorf("failed to scan reward: %w", translateError(err))
	}
	return rw, nil
}

func scanRewards(rows *sql.Rows) ([]*reward.Reward, error) {
	rewards := make([]*reward.Reward, 0)
	for rows.Next() {
		rw, err := scanRewardRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reward: %w", err)
		}
		rewards = append(rewards, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rewards: %w", translateError(err))
	}
	return rewards, nil
}

func privilegeToNullString(p *member.Privilege) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: p.String(), Valid: true}
}
