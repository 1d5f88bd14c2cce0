package mysql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewards-server/internal/domain/reward"
)

var rewardTestColumns = []string{"id", "name", "description", "cost", "stock", "is_active", "required_privilege", "created_at"}

func TestRewardRepository_FindByID(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, name, description, cost, stock, is_active, required_privilege, created_at FROM rewards WHERE id = ?`)
	now := time.Now()

	t.Run("正常系: 景品を取得できる", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(rewardTestColumns).
			AddRow(10, "Tumbler", "Stainless tumbler", 500, 20, true, nil, now)
		mock.ExpectQuery(query).WithArgs(int64(10)).WillReturnRows(rows)

		repo := NewRewardRepository(db)
		rw, err := repo.FindByID(context.Background(), 10)

		require.NoError(t, err)
		assert.Equal(t, int64(10), rw.ID())
		assert.Equal(t, "Tumbler", rw.Name())
		assert.Equal(t, int64(500), rw.Cost())
		assert.Equal(t, 20, rw.Stock())
		assert.True(t, rw.IsActive())
		assert.Nil(t, rw.RequiredPrivilege())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("正常系: 必要ティア付きの景品を取得できる", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(rewardTestColumns).
			AddRow(11, "Premium Box", "", 2000, 5, true, "berkomunitasplus", now)
		mock.ExpectQuery(query).WithArgs(int64(11)).WillReturnRows(rows)

		repo := NewRewardRepository(db)
		rw, err := repo.FindByID(context.Background(), 11)

		require.NoError(t, err)
		require.NotNil(t, rw.RequiredPrivilege())
		assert.Equal(t, "berkomunitasplus", rw.RequiredPrivilege().String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("異常系: 存在しない景品はErrRewardNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(query).WithArgs(int64(999)).WillReturnRows(sqlmock.NewRows(rewardTestColumns))

		repo := NewRewardRepository(db)
		_, err = repo.FindByID(context.Background(), 999)

		assert.ErrorIs(t, err, reward.ErrRewardNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRewardRepository_LockByID(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, name, description, cost, stock, is_active, required_privilege, created_at FROM rewards WHERE id = ? FOR UPDATE`)
	now := time.Now()

	t.Run("正常系: 行ロック付きで景品を取得できる", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		rows := sqlmock.NewRows(rewardTestColumns).
			AddRow(10, "Tumbler", "Stainless tumbler", 500, 20, true, nil, now)
		mock.ExpectQuery(query).WithArgs(int64(10)).WillReturnRows(rows)

		tx, err := db.Begin()
		require.NoError(t, err)

		repo := NewRewardRepository(db)
		rw, err := repo.LockByID(context.Background(), tx, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(10), rw.ID())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("異常系: 存在しない景品はErrRewardNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(query).WithArgs(int64(999)).WillReturnRows(sqlmock.NewRows(rewardTestColumns))

		tx, err := db.Begin()
		require.NoError(t, err)

		repo := NewRewardRepository(db)
		_, err = repo.LockByID(context.Background(), tx, 999)

		assert.ErrorIs(t, err, reward.ErrRewardNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRewardRepository_UpdateStock(t *testing.T) {
	query := regexp.QuoteMeta(`UPDATE rewards SET stock = ? WHERE id = ?`)
	now := time.Now()

	t.Run("正常系: 在庫を更新できる", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(query).WithArgs(18, int64(10)).WillReturnResult(sqlmock.NewResult(0, 1))

		tx, err := db.Begin()
		require.NoError(t, err)

		rw := reward.MustNewReward(10, "Tumbler", "", 500, 18, true, nil, now)
		repo := NewRewardRepository(db)
		err = repo.UpdateStock(context.Background(), tx, rw)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("異常系: 対象行が存在しない場合はErrRewardNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(query).WithArgs(18, int64(10)).WillReturnResult(sqlmock.NewResult(0, 0))

		tx, err := db.Begin()
		require.NoError(t, err)

		rw := reward.MustNewReward(10, "Tumbler", "", 500, 18, true, nil, now)
		repo := NewRewardRepository(db)
		err = repo.UpdateStock(context.Background(), tx, rw)

		assert.ErrorIs(t, err, reward.ErrRewardNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRewardRepository_Create(t *testing.T) {
	query := regexp.QuoteMeta(`INSERT INTO rewards (name, description, cost, stock, is_active, required_privilege, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	now := time.Now()

	t.Run("正常系: 景品を作成しIDが採番される", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(query).
			WithArgs("Tumbler", "Stainless tumbler", int64(500), 20, true, sqlmock.AnyArg(), now).
			WillReturnResult(sqlmock.NewResult(42, 1))

		rw := reward.MustNewReward(0, "Tumbler", "Stainless tumbler", 500, 20, true, nil, now)
		repo := NewRewardRepository(db)
		created, err := repo.Create(context.Background(), rw)

		require.NoError(t, err)
		assert.Equal(t, int64(42), created.ID())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRewardRepository_FindActive(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, name, description, cost, stock, is_active, required_privilege, created_at FROM rewards WHERE is_active = true ORDER BY cost ASC`)
	now := time.Now()

	t.Run("正常系: 交換可能な景品をコスト昇順で取得できる", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(rewardTestColumns).
			AddRow(1, "Sticker", "", 100, 50, true, nil, now).
			AddRow(2, "Tumbler", "", 500, 20, true, nil, now)
		mock.ExpectQuery(query).WillReturnRows(rows)

		repo := NewRewardRepository(db)
		rewards, err := repo.FindActive(context.Background())

		require.NoError(t, err)
		require.Len(t, rewards, 2)
		assert.Equal(t, "Sticker", rewards[0].Name())
		assert.Equal(t, "Tumbler", rewards[1].Name())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("正常系: 景品がない場合は空スライスを返す", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(rewardTestColumns))

		repo := NewRewardRepository(db)
		rewards, err := repo.FindActive(context.Background())

		require.NoError(t, err)
		assert.Empty(t, rewards)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRewardRepository_FindAll(t *testing.T) {
	countQuery := regexp.QuoteMeta(`SELECT COUNT(*) FROM rewards`)
	listQuery := regexp.QuoteMeta(`SELECT id, name, description, cost, stock, is_active, required_privilege, created_at FROM rewards ORDER BY id DESC LIMIT ? OFFSET ?`)
	now := time.Now()

	t.Run("正常系: 総件数付きで一覧を取得できる", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(countQuery).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		rows := sqlmock.NewRows(rewardTestColumns).
			AddRow(3, "Mug", "", 300, 10, false, nil, now).
			AddRow(2, "Tumbler", "", 500, 20, true, nil, now)
		mock.ExpectQuery(listQuery).WithArgs(2, 0).WillReturnRows(rows)

		repo := NewRewardRepository(db)
		rewards, total, err := repo.FindAll(context.Background(), 2, 0)

		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, rewards, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
