package adjustment

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
	"rewards-server/internal/domain/transaction"
	otelinfra "rewards-server/internal/infrastructure/observability/otel"
)

var (
	// ErrNoAdjustment 調整量が指定されていない
	ErrNoAdjustment = errors.New("adjustment amount is required")
	// ErrReasonRequired 調整理由が指定されていない
	ErrReasonRequired = errors.New("adjustment reason is required")
)

// AdjustmentApplicationService 管理者による残高調整アプリケーションサービス
// 調整も交換と同じく履歴の追記を伴い、残高だけが単独で変化することはない
type AdjustmentApplicationService struct {
	memberRepo member.MemberRepository
	ledgerRepo ledger.LedgerRepository
	txManager  transaction.TransactionManager
	logger     *otelinfra.Logger
	metrics    *otelinfra.Metrics
	tracer     trace.Tracer
}

// NewAdjustmentApplicationService 新しいAdjustmentApplicationServiceを作成
func NewAdjustmentApplicationService(
	memberRepo member.MemberRepository,
	ledgerRepo ledger.LedgerRepository,
	txManager transaction.TransactionManager,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *AdjustmentApplicationService {
	return &AdjustmentApplicationService{
		memberRepo: memberRepo,
		ledgerRepo: ledgerRepo,
		txManager:  txManager,
		logger:     logger,
		metrics:    metrics,
		tracer:     otel.Tracer("adjustment-service"),
	}
}

// AdjustBalance 会員の残高を調整する
func (s *AdjustmentApplicationService) AdjustBalance(ctx context.Context, req *AdjustBalanceRequest) (*AdjustBalanceResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AdjustmentApplicationService.AdjustBalance")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("member_id", req.MemberID),
		attribute.Int64("amount", req.Amount),
	)

	if req.Amount == 0 && req.PermanentAmount == 0 {
		span.RecordError(ErrNoAdjustment)
		span.SetStatus(otelcodes.Error, ErrNoAdjustment.Error())
		return nil, ErrNoAdjustment
	}
	if req.Reason == "" {
		span.RecordError(ErrReasonRequired)
		span.SetStatus(otelcodes.Error, ErrReasonRequired.Error())
		return nil, ErrReasonRequired
	}

	s.logger.Info(ctx, "Adjusting member balance", map[string]interface{}{
		"member_id":        req.MemberID,
		"amount":           req.Amount,
		"permanent_amount": req.PermanentAmount,
		"reason":           req.Reason,
	})

	var result *AdjustBalanceResponse

	err := s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		now := time.Now()

		m, err := s.memberRepo.LockByID(ctx, tx, req.MemberID)
		if err != nil {
			return err
		}

		switch {
		case req.Amount > 0:
			if err := m.Credit(req.Amount); err != nil {
				return err
			}
		case req.Amount < 0:
			if err := m.Debit(-req.Amount); err != nil {
				return err
			}
		}
		if req.PermanentAmount > 0 {
			if err := m.GrantPermanent(req.PermanentAmount); err != nil {
				return err
			}
		}

		if err := s.memberRepo.UpdateBalances(ctx, tx, m); err != nil {
			return err
		}

		// 消費可能残高の変化のみ履歴に残す（永続残高は実績スコアで履歴対象外）
		if req.Amount != 0 {
			event := fmt.Sprintf("Admin adjustment: %s", req.Reason)
			entry, err := ledger.NewEntry(req.MemberID, event, req.Amount, ledger.EntryTypeAdjustment, now)
			if err != nil {
				return err
			}
			if err := s.ledgerRepo.Append(ctx, tx, entry); err != nil {
				return err
			}
		}

		result = &AdjustBalanceResponse{
			MemberID:         m.ID(),
			SpendableBalance: m.SpendableBalance(),
			PermanentBalance: m.PermanentBalance(),
		}

		s.metrics.RecordMemberBalance(ctx, m.ID(), m.SpendableBalance())
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Member balance adjusted", map[string]interface{}{
		"member_id":         req.MemberID,
		"spendable_balance": result.SpendableBalance,
		"permanent_balance": result.PermanentBalance,
	})

	return result, nil
}
