package history

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rewards-server/internal/domain/ledger"
)

// HistoryApplicationService コイン履歴アプリケーションサービス
type HistoryApplicationService struct {
	ledgerRepo ledger.LedgerRepository
	tracer     trace.Tracer
}

// NewHistoryApplicationService 新しいHistoryApplicationServiceを作成
func NewHistoryApplicationService(ledgerRepo ledger.LedgerRepository) *HistoryApplicationService {
	return &HistoryApplicationService{
		ledgerRepo: ledgerRepo,
		tracer:     otel.Tracer("history-service"),
	}
}

// ListLedger 会員のコイン履歴を取得する
func (s *HistoryApplicationService) ListLedger(ctx context.Context, req *ListLedgerRequest) (*ListLedgerResponse, error) {
	ctx, span := s.tracer.Start(ctx, "HistoryApplicationService.ListLedger")
	defer span.End()

	span.SetAttributes(attribute.Int64("member_id", req.MemberID))

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	entries, total, err := s.ledgerRepo.FindByMemberID(ctx, req.MemberID, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	responses := make([]*LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, &LedgerEntryResponse{
			EntryID:   e.ID(),
			Event:     e.Event(),
			Amount:    e.Amount(),
			EntryType: e.EntryType().String(),
			CreatedAt: e.CreatedAt(),
		})
	}

	return &ListLedgerResponse{
		Entries: responses,
		Total:   total,
	}, nil
}
