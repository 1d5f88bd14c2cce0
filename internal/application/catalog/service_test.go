package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"rewards-server/internal/domain/member"
	"rewards-server/internal/domain/reward"
	otelinfra "rewards-server/internal/infrastructure/observability/otel"
)

func newCatalogService(t *testing.T) (*CatalogApplicationService, *MockRewardRepository, *MockMemberRepository, *MockPrivilegeRepository) {
	t.Helper()

	rewardRepo := new(MockRewardRepository)
	memberRepo := new(MockMemberRepository)
	privilegeRepo := new(MockPrivilegeRepository)
	logger := otelinfra.NewLogger(otel.Tracer("test"))

	svc := NewCatalogApplicationService(rewardRepo, memberRepo, privilegeRepo, logger)
	return svc, rewardRepo, memberRepo, privilegeRepo
}

func TestCatalogApplicationService_ListRewards(t *testing.T) {
	now := time.Now()
	plus := member.PrivilegeBerkomunitasPlus

	activeRewards := []*reward.Reward{
		reward.MustNewReward(1, "Sticker", "", 100, 50, true, nil, now),
		reward.MustNewReward(2, "Tumbler", "", 500, 0, true, nil, now),
		reward.MustNewReward(3, "Premium Box", "", 2000, 5, true, &plus, now),
	}

	t.Run("正常系: 匿名では交換可否を判定しない", func(t *testing.T) {
		svc, rewardRepo, _, _ := newCatalogService(t)
		rewardRepo.On("FindActive", mock.Anything).Return(activeRewards, nil)

		resp, err := svc.ListRewards(context.Background(), &ListRewardsRequest{})

		require.NoError(t, err)
		require.Len(t, resp.Rewards, 3)
		assert.False(t, resp.Rewards[0].Affordable)
		assert.False(t, resp.Rewards[0].Redeemable)
		assert.Equal(t, "berkomunitasplus", resp.Rewards[2].RequiredPrivilege)
	})

	t.Run("正常系: 会員指定時は残高・在庫・ティアで交換可否を判定する", func(t *testing.T) {
		svc, rewardRepo, memberRepo, privilegeRepo := newCatalogService(t)
		rewardRepo.On("FindActive", mock.Anything).Return(activeRewards, nil)
		memberRepo.On("FindByID", mock.Anything, int64(1)).
			Return(member.MustNewMember(1, "alice", 600, 0), nil)
		privilegeRepo.On("FindActiveByMemberID", mock.Anything, int64(1)).
			Return(member.Privilege(""), member.ErrPrivilegeNotFound)

		resp, err := svc.ListRewards(context.Background(), &ListRewardsRequest{MemberID: 1})

		require.NoError(t, err)
		require.Len(t, resp.Rewards, 3)

		// Sticker: 残高・在庫とも足りる
		assert.True(t, resp.Rewards[0].Affordable)
		assert.True(t, resp.Rewards[0].Redeemable)
		// Tumbler: 残高は足りるが在庫切れ
		assert.True(t, resp.Rewards[1].Affordable)
		assert.False(t, resp.Rewards[1].Redeemable)
		// Premium Box: 残高もティアも足りない
		assert.False(t, resp.Rewards[2].Affordable)
		assert.False(t, resp.Rewards[2].Redeemable)
	})

	t.Run("正常系: ティアを満たす会員にはティア制限景品も交換可能", func(t *testing.T) {
		svc, rewardRepo, memberRepo, privilegeRepo := newCatalogService(t)
		rewardRepo.On("FindActive", mock.Anything).Return(activeRewards, nil)
		memberRepo.On("FindByID", mock.Anything, int64(2)).
			Return(member.MustNewMember(2, "bob", 10000, 0), nil)
		privilegeRepo.On("FindActiveByMemberID", mock.Anything, int64(2)).
			Return(member.PrivilegePartner, nil)

		resp, err := svc.ListRewards(context.Background(), &ListRewardsRequest{MemberID: 2})

		require.NoError(t, err)
		assert.True(t, resp.Rewards[2].Redeemable)
	})

	t.Run("異常系: 会員が存在しない", func(t *testing.T) {
		svc, rewardRepo, memberRepo, _ := newCatalogService(t)
		rewardRepo.On("FindActive", mock.Anything).Return(activeRewards, nil)
		memberRepo.On("FindByID", mock.Anything, int64(999)).Return(nil, member.ErrMemberNotFound)

		_, err := svc.ListRewards(context.Background(), &ListRewardsRequest{MemberID: 999})

		assert.ErrorIs(t, err, member.ErrMemberNotFound)
	})
}

func TestCatalogApplicationService_CreateReward(t *testing.T) {
	t.Run("正常系: 景品を作成できる", func(t *testing.T) {
		svc, rewardRepo, _, _ := newCatalogService(t)

		created := reward.MustNewReward(42, "Tumbler", "Stainless tumbler", 500, 20, true, nil, time.Now())
		rewardRepo.On("Create", mock.Anything, mock.MatchedBy(func(rw *reward.Reward) bool {
			return rw.Name() == "Tumbler" && rw.Cost() == 500
		})).Return(created, nil)

		resp, err := svc.CreateReward(context.Background(), &CreateRewardRequest{
			Name:        "Tumbler",
			Description: "Stainless tumbler",
			Cost:        500,
			Stock:       20,
			IsActive:    true,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.RewardID)
		assert.True(t, resp.IsActive)
	})

	t.Run("異常系: 不正なティア指定", func(t *testing.T) {
		svc, rewardRepo, _, _ := newCatalogService(t)

		_, err := svc.CreateReward(context.Background(), &CreateRewardRequest{
			Name:              "Tumbler",
			Cost:              500,
			Stock:             20,
			RequiredPrivilege: "vip",
		})

		assert.ErrorIs(t, err, reward.ErrInvalidPrivilege)
		rewardRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("異常系: 名前が空", func(t *testing.T) {
		svc, _, _, _ := newCatalogService(t)

		_, err := svc.CreateReward(context.Background(), &CreateRewardRequest{
			Cost:  500,
			Stock: 20,
		})

		assert.ErrorIs(t, err, reward.ErrInvalidRewardName)
	})
}

func TestCatalogApplicationService_UpdateReward(t *testing.T) {
	now := time.Now()

	t.Run("正常系: 景品を更新できる", func(t *testing.T) {
		svc, rewardRepo, _, _ := newCatalogService(t)

		existing := reward.MustNewReward(10, "Tumbler", "", 500, 20, true, nil, now)
		rewardRepo.On("FindByID", mock.Anything, int64(10)).Return(existing, nil)
		rewardRepo.On("Save", mock.Anything, mock.MatchedBy(func(rw *reward.Reward) bool {
			return rw.ID() == 10 && rw.Cost() == 600 && rw.CreatedAt().Equal(now)
		})).Return(nil)

		resp, err := svc.UpdateReward(context.Background(), &UpdateRewardRequest{
			RewardID: 10,
			Name:     "Tumbler",
			Cost:     600,
			Stock:    25,
			IsActive: true,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(600), resp.Cost)
		rewardRepo.AssertExpectations(t)
	})

	t.Run("異常系: 景品が存在しない", func(t *testing.T) {
		svc, rewardRepo, _, _ := newCatalogService(t)
		rewardRepo.On("FindByID", mock.Anything, int64(999)).Return(nil, reward.ErrRewardNotFound)

		_, err := svc.UpdateReward(context.Background(), &UpdateRewardRequest{
			RewardID: 999,
			Name:     "Tumbler",
		})

		assert.ErrorIs(t, err, reward.ErrRewardNotFound)
	})
}

func TestCatalogApplicationService_DeactivateReward(t *testing.T) {
	t.Run("正常系: 景品を交換停止にできる", func(t *testing.T) {
		svc, rewardRepo, _, _ := newCatalogService(t)

		rw := reward.MustNewReward(10, "Tumbler", "", 500, 20, true, nil, time.Now())
		rewardRepo.On("FindByID", mock.Anything, int64(10)).Return(rw, nil)
		rewardRepo.On("Save", mock.Anything, mock.MatchedBy(func(saved *reward.Reward) bool {
			return !saved.IsActive()
		})).Return(nil)

		resp, err := svc.DeactivateReward(context.Background(), &DeactivateRewardRequest{RewardID: 10})

		require.NoError(t, err)
		assert.False(t, resp.IsActive)
	})
}
