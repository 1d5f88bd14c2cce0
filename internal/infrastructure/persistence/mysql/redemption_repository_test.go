package mysql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewards-server/internal/domain/redemption"
)

var redemptionTestColumns = []string{
	"id", "member_id", "reward_id", "quantity", "points_spent", "status",
	"shipping_notes", "admin_notes", "tracking_number", "redeemed_at", "shipped_at", "delivered_at",
}

func TestRedemptionRepository_Create(t *testing.T) {
	query := regexp.QuoteMeta(`INSERT INTO redemptions (member_id, reward_id, quantity, points_spent, status, shipping_notes, redeemed_at) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	now := time.Now()

	t.Run("正常系: 交換レコードを作成しIDが採番される", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(query).
			WithArgs(int64(1), int64(10), 2, int64(1000), "awaiting_verification", "leave at door", now).
			WillReturnResult(sqlmock.NewResult(100, 1))

		tx, err := db.Begin()
		require.NoError(t, err)

		rd, err := redemption.NewRedemption(1, 10, 2, 1000, "leave at door", now)
		require.NoError(t, err)

		repo := NewRedemptionRepository(db)
		err = repo.Create(context.Background(), tx, rd)

		require.NoError(t, err)
		assert.Equal(t, int64(100), rd.ID())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedemptionRepository_FindByID(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, member_id, reward_id, quantity, points_spent, status, shipping_notes, admin_notes, tracking_number, redeemed_at, shipped_at, delivered_at FROM redemptions WHERE id = ?`)
	now := time.Now()

	t.Run("正常系: 交換レコードを取得できる", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(redemptionTestColumns).
			AddRow(100, 1, 10, 2, 1000, "shipped", "leave at door", "verified", "TRK-1", now, now, nil)
		mock.ExpectQuery(query).WithArgs(int64(100)).WillReturnRows(rows)

		repo := NewRedemptionRepository(db)
		rd, err := repo.FindByID(context.Background(), 100)

		require.NoError(t, err)
		assert.Equal(t, int64(100), rd.ID())
		assert.Equal(t, redemption.StatusShipped, rd.Status())
		assert.Equal(t, "TRK-1", rd.TrackingNumber())
		require.NotNil(t, rd.ShippedAt())
		assert.Nil(t, rd.DeliveredAt())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("異常系: 存在しない交換はErrRedemptionNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(query).WithArgs(int64(999)).WillReturnRows(sqlmock.NewRows(redemptionTestColumns))

		repo := NewRedemptionRepository(db)
		_, err = repo.FindByID(context.Background(), 999)

		assert.ErrorIs(t, err, redemption.ErrRedemptionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedemptionRepository_LockByID(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, member_id, reward_id, quantity, points_spent, status, shipping_notes, admin_notes, tracking_number, redeemed_at, shipped_at, delivered_at FROM redemptions WHERE id = ? FOR UPDATE`)
	now := time.Now()

	t.Run("正常系: 行ロック付きで交換レコードを取得できる", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		rows := sqlmock.NewRows(redemptionTestColumns).
			AddRow(100, 1, 10, 2, 1000, "awaiting_verification", "", "", "", now, nil, nil)
		mock.ExpectQuery(query).WithArgs(int64(100)).WillReturnRows(rows)

		tx, err := db.Begin()
		require.NoError(t, err)

		repo := NewRedemptionRepository(db)
		rd, err := repo.LockByID(context.Background(), tx, 100)

		require.NoError(t, err)
		assert.Equal(t, int64(100), rd.ID())
		assert.Equal(t, redemption.StatusAwaitingVerification, rd.Status())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedemptionRepository_UpdateStatus(t *testing.T) {
	query := regexp.QuoteMeta(`UPDATE redemptions SET status = ?, shipping_notes = ?, admin_notes = ?, tracking_number = ?, shipped_at = ?, delivered_at = ? WHERE id = ?`)
	now := time.Now()

	t.Run("正常系: ステータスを更新できる", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(query).
			WithArgs("shipped", "leave at door", "verified and shipped", "TRK-1", sqlmock.AnyArg(), nil, int64(100)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		tx, err := db.Begin()
		require.NoError(t, err)

		rd := redemption.Restore(100, 1, 10, 2, 1000, redemption.StatusAwaitingVerification, "leave at door", "", "", now, nil, nil)
		_, err = rd.Transition(redemption.StatusShipped, "verified and shipped", "", "TRK-1", false, now)
		require.NoError(t, err)

		repo := NewRedemptionRepository(db)
		err = repo.UpdateStatus(context.Background(), tx, rd)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("異常系: 対象行が存在しない場合はErrRedemptionNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(query).
			WithArgs("shipped", "", "notes", "", sqlmock.AnyArg(), nil, int64(100)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		tx, err := db.Begin()
		require.NoError(t, err)

		rd := redemption.Restore(100, 1, 10, 2, 1000, redemption.StatusAwaitingVerification, "", "", "", now, nil, nil)
		_, err = rd.Transition(redemption.StatusShipped, "notes", "", "", false, now)
		require.NoError(t, err)

		repo := NewRedemptionRepository(db)
		err = repo.UpdateStatus(context.Background(), tx, rd)

		assert.ErrorIs(t, err, redemption.ErrRedemptionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedemptionRepository_FindByMemberID(t *testing.T) {
	countQuery := regexp.QuoteMeta(`SELECT COUNT(*) FROM redemptions WHERE member_id = ?`)
	listQuery := regexp.QuoteMeta(`SELECT id, member_id, reward_id, quantity, points_spent, status, shipping_notes, admin_notes, tracking_number, redeemed_at, shipped_at, delivered_at FROM redemptions WHERE member_id = ? ORDER BY redeemed_at DESC LIMIT ? OFFSET ?`)
	now := time.Now()

	t.Run("正常系: 会員の交換履歴を総件数付きで取得できる", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(countQuery).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
		rows := sqlmock.NewRows(redemptionTestColumns).
			AddRow(101, 1, 10, 1, 500, "delivered", "", "done", "", now, now, now).
			AddRow(100, 1, 11, 2, 1000, "awaiting_verification", "", "", "", now, nil, nil)
		mock.ExpectQuery(listQuery).WithArgs(int64(1), 2, 0).WillReturnRows(rows)

		repo := NewRedemptionRepository(db)
		redemptions, total, err := repo.FindByMemberID(context.Background(), 1, 2, 0)

		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, redemptions, 2)
		assert.Equal(t, redemption.StatusDelivered, redemptions[0].Status())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
