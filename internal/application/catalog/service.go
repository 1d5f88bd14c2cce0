package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rewards-server/internal/domain/member"
	"rewards-server/internal/domain/reward"
	otelinfra "rewards-server/internal/infrastructure/observability/otel"
)

// CatalogApplicationService 景品カタログアプリケーションサービス
type CatalogApplicationService struct {
	rewardRepo    reward.RewardRepository
	memberRepo    member.MemberRepository
	privilegeRepo member.PrivilegeRepository
	logger        *otelinfra.Logger
	tracer        trace.Tracer
}

// NewCatalogApplicationService 新しいCatalogApplicationServiceを作成
func NewCatalogApplicationService(
	rewardRepo reward.RewardRepository,
	memberRepo member.MemberRepository,
	privilegeRepo member.PrivilegeRepository,
	logger *otelinfra.Logger,
) *CatalogApplicationService {
	return &CatalogApplicationService{
		rewardRepo:    rewardRepo,
		memberRepo:    memberRepo,
		privilegeRepo: privilegeRepo,
		logger:        logger,
		tracer:        otel.Tracer("catalog-service"),
	}
}

// ListRewards 交換可能な景品の一覧を取得する
// 会員が指定された場合は残高とティアに基づく交換可否を付与する
func (s *CatalogApplicationService) ListRewards(ctx context.Context, req *ListRewardsRequest) (*ListRewardsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogApplicationService.ListRewards")
	defer span.End()

	rewards, err := s.rewardRepo.FindActive(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	var (
		balance   int64 = -1
		privilege       = member.PrivilegeUser
	)
	if req.MemberID > 0 {
		m, err := s.memberRepo.FindByID(ctx, req.MemberID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
		balance = m.SpendableBalance()

		p, err := s.privilegeRepo.FindActiveByMemberID(ctx, req.MemberID)
		if err != nil {
			if !errors.Is(err, member.ErrPrivilegeNotFound) {
				span.RecordError(err)
				span.SetStatus(otelcodes.Error, err.Error())
				return nil, fmt.Errorf("failed to resolve privilege: %w", err)
			}
		} else {
			privilege = p
		}
	}

	items := make([]*RewardItem, 0, len(rewards))
	for _, rw := range rewards {
		item := &RewardItem{
			RewardID:    rw.ID(),
			Name:        rw.Name(),
			Description: rw.Description(),
			Cost:        rw.Cost(),
			Stock:       rw.Stock(),
		}
		if rp := rw.RequiredPrivilege(); rp != nil {
			item.RequiredPrivilege = rp.String()
		}
		if balance >= 0 {
			item.Affordable = balance >= rw.Cost()
			item.Redeemable = item.Affordable && rw.Stock() > 0 && rw.RedeemableBy(privilege)
		}
		items = append(items, item)
	}

	return &ListRewardsResponse{Rewards: items}, nil
}

// CreateReward 新しい景品を作成する
func (s *CatalogApplicationService) CreateReward(ctx context.Context, req *CreateRewardRequest) (*RewardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogApplicationService.CreateReward")
	defer span.End()

	span.SetAttributes(attribute.String("reward_name", req.Name))

	privilege, err := parsePrivilege(req.RequiredPrivilege)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	rw, err := reward.NewReward(0, req.Name, req.Description, req.Cost, req.Stock, req.IsActive, privilege, time.Now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	created, err := s.rewardRepo.Create(ctx, rw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Reward created", map[string]interface{}{
		"reward_id": created.ID(),
		"name":      created.Name(),
		"cost":      created.Cost(),
	})

	return toRewardResponse(created), nil
}

// UpdateReward 景品のカタログ情報を更新する
func (s *CatalogApplicationService) UpdateReward(ctx context.Context, req *UpdateRewardRequest) (*RewardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogApplicationService.UpdateReward")
	defer span.End()

	span.SetAttributes(attribute.Int64("reward_id", req.RewardID))

	existing, err := s.rewardRepo.FindByID(ctx, req.RewardID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	privilege, err := parsePrivilege(req.RequiredPrivilege)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	updated, err := reward.NewReward(existing.ID(), req.Name, req.Description, req.Cost, req.Stock, req.IsActive, privilege, existing.CreatedAt())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	if err := s.rewardRepo.Save(ctx, updated); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Reward updated", map[string]interface{}{
		"reward_id": updated.ID(),
	})

	return toRewardResponse(updated), nil
}

// DeactivateReward 景品を交換停止にする
// 既存の交換レコードには影響しない
func (s *CatalogApplicationService) DeactivateReward(ctx context.Context, req *DeactivateRewardRequest) (*RewardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogApplicationService.DeactivateReward")
	defer span.End()

	span.SetAttributes(attribute.Int64("reward_id", req.RewardID))

	rw, err := s.rewardRepo.FindByID(ctx, req.RewardID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	rw.Deactivate()
	if err := s.rewardRepo.Save(ctx, rw); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Reward deactivated", map[string]interface{}{
		"reward_id": rw.ID(),
	})

	return toRewardResponse(rw), nil
}

func parsePrivilege(s string) (*member.Privilege, error) {
	if s == "" {
		return nil, nil
	}
	p, err := member.NewPrivilege(s)
	if err != nil {
		return nil, reward.ErrInvalidPrivilege
	}
	return &p, nil
}

func toRewardResponse(rw *reward.Reward) *RewardResponse {
	resp := &RewardResponse{
		RewardID:    rw.ID(),
		Name:        rw.Name(),
		Description: rw.Description(),
		Cost:        rw.Cost(),
		Stock:       rw.Stock(),
		IsActive:    rw.IsActive(),
		CreatedAt:   rw.CreatedAt(),
	}
	if rp := rw.RequiredPrivilege(); rp != nil {
		resp.RequiredPrivilege = rp.String()
	}
	return resp
}
