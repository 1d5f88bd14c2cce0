package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// 交換数
	RedemptionCount metric.Int64Counter

	// 返金数
	RefundCount metric.Int64Counter

	// 会員残高の分布
	MemberBalance metric.Int64Gauge

	// 景品在庫の分布
	RewardStock metric.Int64Gauge

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	redemptionCount, err := meter.Int64Counter(
		"redemptions_total",
		metric.WithDescription("Total number of reward redemptions"),
	)
	if err != nil {
		return nil, err
	}

	refundCount, err := meter.Int64Counter(
		"refunds_total",
		metric.WithDescription("Total number of redemption refunds"),
	)
	if err != nil {
		return nil, err
	}

	memberBalance, err := meter.Int64Gauge(
		"member_balance",
		metric.WithDescription("Member spendable coin balance"),
	)
	if err != nil {
		return nil, err
	}

	rewardStock, err := meter.Int64Gauge(
		"reward_stock",
		metric.WithDescription("Reward stock level"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RedemptionCount: redemptionCount,
		RefundCount:     refundCount,
		MemberBalance:   memberBalance,
		RewardStock:     rewardStock,
		RequestCount:    requestCount,
		ResponseTime:    responseTime,
		ErrorCount:      errorCount,
	}, nil
}

// RecordRedemption 交換を記録
func (m *Metrics) RecordRedemption(ctx context.Context, rewardID int64, quantity int) {
	m.RedemptionCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.Int64("reward_id", rewardID),
			attribute.Int("quantity", quantity),
		),
	)
}

// RecordRefund 返金を記録
func (m *Metrics) RecordRefund(ctx context.Context, rewardID int64, status string) {
	m.RefundCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.Int64("reward_id", rewardID),
			attribute.String("status", status),
		),
	)
}

// RecordMemberBalance 会員残高を記録
func (m *Metrics) RecordMemberBalance(ctx context.Context, memberID int64, balance int64) {
	m.MemberBalance.Record(ctx, balance,
		metric.WithAttributes(
			attribute.Int64("member_id", memberID),
		),
	)
}

// RecordRewardStock 景品在庫を記録
func (m *Metrics) RecordRewardStock(ctx context.Context, rewardID int64, stock int) {
	m.RewardStock.Record(ctx, int64(stock),
		metric.WithAttributes(
			attribute.Int64("reward_id", rewardID),
		),
	)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}
