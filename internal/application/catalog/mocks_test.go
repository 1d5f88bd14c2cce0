package catalog

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

	"rewards-server/internal/domain/member"
	"rewards-server/internal/domain/reward"
)

// MockRewardRepository モック景品リポジトリ
type MockRewardRepository struct {
	mock.Mock
}

func (m *MockRewardRepository) FindByID(ctx context.Context, id int64) (*reward.Reward, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reward.Reward), args.Error(1)
}

func (m *MockRewardRepository) LockByID(ctx context.Context, tx *sql.Tx, id int64) (*reward.Reward, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reward.Reward), args.Error(1)
}

func (m *MockRewardRepository) UpdateStock(ctx context.Context, tx *sql.Tx, rw *reward.Reward) error {
	args := m.Called(ctx, tx, rw)
	return args.Error(0)
}

func (m *MockRewardRepository) Create(ctx context.Context, rw *reward.Reward) (*reward.Reward, error) {
	args := m.Called(ctx, rw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reward.Reward), args.Error(1)
}

func (m *MockRewardRepository) Save(ctx context.Context, rw *reward.Reward) error {
	args := m.Called(ctx, rw)
	return args.Error(0)
}

func (m *MockRewardRepository) FindActive(ctx context.Context) ([]*reward.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reward.Reward), args.Error(1)
}

func (m *MockRewardRepository) FindAll(ctx context.Context, limit, offset int) ([]*reward.Reward, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*reward.Reward), args.Int(1), args.Error(2)
}

// MockMemberRepository モック会員リポジトリ
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindByID(ctx context.Context, id int64) (*member.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) LockByID(ctx context.Context, tx *sql.Tx, id int64) (*member.Member, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) UpdateBalances(ctx context.Context, tx *sql.Tx, mm *member.Member) error {
	args := m.Called(ctx, tx, mm)
	return args.Error(0)
}

// MockPrivilegeRepository モック会員特権リポジトリ
type MockPrivilegeRepository struct {
	mock.Mock
}

func (m *MockPrivilegeRepository) FindActiveByMemberID(ctx context.Context, memberID int64) (member.Privilege, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(member.Privilege), args.Error(1)
}
