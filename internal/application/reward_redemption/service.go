package reward_redemption

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rewards-server/internal/domain/ledger"
	"rewards-server/internal/domain/member"
	"rewards-server/internal/domain/notification"
	"rewards-server/internal/domain/redemption"
	"rewards-server/internal/domain/reward"
	"rewards-server/internal/domain/transaction"
	otelinfra "rewards-server/internal/infrastructure/observability/otel"
)

// RewardRedemptionApplicationService 景品交換アプリケーションサービス
//
// Redeem/UpdateStatusは残高・在庫・交換レコード・履歴を
// 1つのトランザクションで原子的に更新する
type RewardRedemptionApplicationService struct {
	memberRepo     member.MemberRepository
	privilegeRepo  member.PrivilegeRepository
	rewardRepo     reward.RewardRepository
	redemptionRepo redemption.RedemptionRepository
	ledgerRepo     ledger.LedgerRepository
	notifier       notification.Notifier
	txManager      transaction.TransactionManager
	logger         *otelinfra.Logger
	metrics        *otelinfra.Metrics
	tracer         trace.Tracer
}

// NewRewardRedemptionApplicationService 新しいRewardRedemptionApplicationServiceを作成
func NewRewardRedemptionApplicationService(
	memberRepo member.MemberRepository,
	privilegeRepo member.PrivilegeRepository,
	rewardRepo reward.RewardRepository,
	redemptionRepo redemption.RedemptionRepository,
	ledgerRepo ledger.LedgerRepository,
	notifier notification.Notifier,
	txManager transaction.TransactionManager,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *RewardRedemptionApplicationService {
	return &RewardRedemptionApplicationService{
		memberRepo:     memberRepo,
		privilegeRepo:  privilegeRepo,
		rewardRepo:     rewardRepo,
		redemptionRepo: redemptionRepo,
		ledgerRepo:     ledgerRepo,
		notifier:       notifier,
		txManager:      txManager,
		logger:         logger,
		metrics:        metrics,
		tracer:         otel.Tracer("reward-redemption-service"),
	}
}

// Redeem 景品を交換する
//
// 交換は全て成功するか全て失敗するかのいずれかで、部分的な状態は残らない:
// 残高減算・在庫減算・交換レコード作成・履歴追記が1コミットで確定する
func (s *RewardRedemptionApplicationService) Redeem(ctx context.Context, req *RedeemRequest) (*RedeemResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RewardRedemptionApplicationService.Redeem")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("member_id", req.MemberID),
		attribute.Int64("reward_id", req.RewardID),
		attribute.Int("quantity", req.Quantity),
	)

	s.logger.Info(ctx, "Redeeming reward", map[string]interface{}{
		"member_id": req.MemberID,
		"reward_id": req.RewardID,
		"quantity":  req.Quantity,
	})

	// 数量はトランザクション開始前に検証する
	if req.Quantity < redemption.MinQuantity || req.Quantity > redemption.MaxQuantity {
		err := redemption.ErrInvalidQuantity
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	var result *RedeemResponse

	err := s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		now := time.Now()

		// 会員行をロック（同一会員の並行交換を直列化する）
		m, err := s.memberRepo.LockByID(ctx, tx, req.MemberID)
		if err != nil {
			return err
		}

		// 特権ティアを解決（レコードがなければ一般会員）
		privilege, err := s.privilegeRepo.FindActiveByMemberID(ctx, req.MemberID)
		if err != nil {
			if !errors.Is(err, member.ErrPrivilegeNotFound) {
				return fmt.Errorf("failed to resolve privilege: %w", err)
			}
			privilege = member.PrivilegeUser
		}

		// 景品行をロック（在庫の二重消費を防ぐ）
		rw, err := s.rewardRepo.LockByID(ctx, tx, req.RewardID)
		if err != nil {
			return err
		}

		if !rw.IsActive() {
			return reward.ErrRewardUnavailable
		}
		if !rw.RedeemableBy(privilege) {
			return &member.InsufficientPrivilegeError{Required: *rw.RequiredPrivilege()}
		}

		totalCost := rw.TotalCost(req.Quantity)

		if err := rw.Reserve(req.Quantity); err != nil {
			return err
		}
		if err := m.Debit(totalCost); err != nil {
			return err
		}

		if err := s.rewardRepo.UpdateStock(ctx, tx, rw); err != nil {
			return err
		}

		rd, err := redemption.NewRedemption(req.MemberID, req.RewardID, req.Quantity, totalCost, req.ShippingNotes, now)
		if err != nil {
			return err
		}
		if err := s.redemptionRepo.Create(ctx, tx, rd); err != nil {
			return err
		}

		event := fmt.Sprintf("Reward redemption: %s (%dx)", rw.Name(), req.Quantity)
		entry, err := ledger.NewEntry(req.MemberID, event, -totalCost, ledger.EntryTypeRedemption, now)
		if err != nil {
			return err
		}
		if err := s.ledgerRepo.Append(ctx, tx, entry); err != nil {
			return err
		}

		if err := s.memberRepo.UpdateBalances(ctx, tx, m); err != nil {
			return err
		}

		result = &RedeemResponse{
			RedemptionID:     rd.ID(),
			RewardName:       rw.Name(),
			Quantity:         req.Quantity,
			PointsSpent:      totalCost,
			SpendableBalance: m.SpendableBalance(),
			PermanentBalance: m.PermanentBalance(),
			Status:           rd.Status().String(),
			RedeemedAt:       rd.RedeemedAt(),
		}

		s.metrics.RecordMemberBalance(ctx, m.ID(), m.SpendableBalance())
		s.metrics.RecordRewardStock(ctx, rw.ID(), rw.Stock())
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.metrics.RecordRedemption(ctx, req.RewardID, req.Quantity)

	s.logger.Info(ctx, "Reward redeemed", map[string]interface{}{
		"redemption_id": result.RedemptionID,
		"member_id":     req.MemberID,
		"points_spent":  result.PointsSpent,
	})

	// 通知はベストエフォート: 失敗しても交換は成立している
	s.notifyRedeemed(ctx, req.MemberID, result)

	return result, nil
}

// UpdateStatus 交換レコードのステータスを更新する
//
// rejected/cancelledへの初回遷移ではコインと在庫を同一トランザクションで
// 返金する。既に返金済みの状態からの遷移は最終ステータスロックにより発生しない
func (s *RewardRedemptionApplicationService) UpdateStatus(ctx context.Context, req *UpdateStatusRequest) (*UpdateStatusResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RewardRedemptionApplicationService.UpdateStatus")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("redemption_id", req.RedemptionID),
		attribute.String("new_status", req.NewStatus),
	)

	s.logger.Info(ctx, "Updating redemption status", map[string]interface{}{
		"redemption_id": req.RedemptionID,
		"new_status":    req.NewStatus,
	})

	// ステータスとメモはトランザクション開始前に検証する
	newStatus, err := redemption.NewStatus(req.NewStatus)
	if err != nil {
		span.RecordError(redemption.ErrInvalidStatus)
		span.SetStatus(otelcodes.Error, redemption.ErrInvalidStatus.Error())
		return nil, redemption.ErrInvalidStatus
	}
	if req.AdminNotes == "" {
		span.RecordError(redemption.ErrNotesRequired)
		span.SetStatus(otelcodes.Error, redemption.ErrNotesRequired.Error())
		return nil, redemption.ErrNotesRequired
	}

	var (
		result         *UpdateStatusResponse
		refunded       bool
		refundedAmount int64
		memberID       int64
		rewardName     string
	)

	err = s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		now := time.Now()

		rd, err := s.redemptionRepo.LockByID(ctx, tx, req.RedemptionID)
		if err != nil {
			return err
		}
		memberID = rd.MemberID()

		refund, err := rd.Transition(newStatus, req.AdminNotes, req.ShippingNotes, req.TrackingNumber, req.ConfirmFinal, now)
		if err != nil {
			return err
		}

		if refund {
			// 返金: 残高と在庫を交換時のスナップショットで復元する
			m, err := s.memberRepo.LockByID(ctx, tx, rd.MemberID())
			if err != nil {
				return err
			}
			rw, err := s.rewardRepo.LockByID(ctx, tx, rd.RewardID())
			if err != nil {
				return err
			}
			rewardName = rw.Name()

			if err := m.Credit(rd.PointsSpent()); err != nil {
				return err
			}
			if err := rw.Restock(rd.Quantity()); err != nil {
				return err
			}

			if err := s.rewardRepo.UpdateStock(ctx, tx, rw); err != nil {
				return err
			}
			if err := s.memberRepo.UpdateBalances(ctx, tx, m); err != nil {
				return err
			}

			event := fmt.Sprintf("Refund for %s redemption: %s (%dx)", newStatus.String(), rw.Name(), rd.Quantity())
			entry, err := ledger.NewEntry(rd.MemberID(), event, rd.PointsSpent(), ledger.EntryTypeRefund, now)
			if err != nil {
				return err
			}
			if err := s.ledgerRepo.Append(ctx, tx, entry); err != nil {
				return err
			}

			refunded = true
			refundedAmount = rd.PointsSpent()
			s.metrics.RecordMemberBalance(ctx, m.ID(), m.SpendableBalance())
			s.metrics.RecordRewardStock(ctx, rw.ID(), rw.Stock())
		}

		if err := s.redemptionRepo.UpdateStatus(ctx, tx, rd); err != nil {
			return err
		}

		result = &UpdateStatusResponse{
			RedemptionID:   rd.ID(),
			Status:         rd.Status().String(),
			RefundedAmount: refundedAmount,
			ShippedAt:      rd.ShippedAt(),
			DeliveredAt:    rd.DeliveredAt(),
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	if refunded {
		s.metrics.RecordRefund(ctx, req.RedemptionID, result.Status)
	}

	s.logger.Info(ctx, "Redemption status updated", map[string]interface{}{
		"redemption_id":   req.RedemptionID,
		"status":          result.Status,
		"refunded_amount": refundedAmount,
	})

	// 通知はベストエフォート: 失敗しても遷移は成立している
	s.notifyStatusUpdated(ctx, memberID, req.RedemptionID, result.Status, rewardName, refundedAmount)

	return result, nil
}

// GetRedemption 交換レコードを取得する
func (s *RewardRedemptionApplicationService) GetRedemption(ctx context.Context, req *GetRedemptionRequest) (*RedemptionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RewardRedemptionApplicationService.GetRedemption")
	defer span.End()

	rd, err := s.redemptionRepo.FindByID(ctx, req.RedemptionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}
	return toRedemptionResponse(rd), nil
}

// ListRedemptions 会員の交換履歴を取得する
func (s *RewardRedemptionApplicationService) ListRedemptions(ctx context.Context, req *ListRedemptionsRequest) (*ListRedemptionsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RewardRedemptionApplicationService.ListRedemptions")
	defer span.End()

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	redemptions, total, err := s.redemptionRepo.FindByMemberID(ctx, req.MemberID, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	responses := make([]*RedemptionResponse, 0, len(redemptions))
	for _, rd := range redemptions {
		responses = append(responses, toRedemptionResponse(rd))
	}
	return &ListRedemptionsResponse{
		Redemptions: responses,
		Total:       total,
	}, nil
}

func (s *RewardRedemptionApplicationService) notifyRedeemed(ctx context.Context, memberID int64, result *RedeemResponse) {
	message := fmt.Sprintf("Your redemption of %s (%dx) has been received and is awaiting verification.", result.RewardName, result.Quantity)
	if err := s.notifier.Notify(ctx, memberID, message, "/rewards/redemptions"); err != nil {
		s.logger.Warn(ctx, "Failed to send redemption notification", map[string]interface{}{
			"member_id":     memberID,
			"redemption_id": result.RedemptionID,
			"error":         err.Error(),
		})
	}
}

func (s *RewardRedemptionApplicationService) notifyStatusUpdated(ctx context.Context, memberID, redemptionID int64, status, rewardName string, refundedAmount int64) {
	if memberID <= 0 {
		return
	}
	message := fmt.Sprintf("Your redemption status has been updated to %s.", status)
	if refundedAmount > 0 {
		message = fmt.Sprintf("Your redemption of %s was %s and %d coins have been refunded.", rewardName, status, refundedAmount)
	}
	if err := s.notifier.Notify(ctx, memberID, message, "/rewards/redemptions"); err != nil {
		s.logger.Warn(ctx, "Failed to send status notification", map[string]interface{}{
			"member_id":     memberID,
			"redemption_id": redemptionID,
			"error":         err.Error(),
		})
	}
}

func toRedemptionResponse(rd *redemption.Redemption) *RedemptionResponse {
	return &RedemptionResponse{
		RedemptionID:   rd.ID(),
		MemberID:       rd.MemberID(),
		RewardID:       rd.RewardID(),
		Quantity:       rd.Quantity(),
		PointsSpent:    rd.PointsSpent(),
		Status:         rd.Status().String(),
		ShippingNotes:  rd.ShippingNotes(),
		AdminNotes:     rd.AdminNotes(),
		TrackingNumber: rd.TrackingNumber(),
		RedeemedAt:     rd.RedeemedAt(),
		ShippedAt:      rd.ShippedAt(),
		DeliveredAt:    rd.DeliveredAt(),
	}
}
