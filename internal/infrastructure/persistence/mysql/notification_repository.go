package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"rewards-server/internal/domain/notification"
)

// NotificationRepository 通知リポジトリのMySQL実装
// Notifierインターフェースを満たし、通知レコードの作成を通知送信として扱う
type NotificationRepository struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewNotificationRepository NotificationRepositoryを生成する
func NewNotificationRepository(db *sql.DB) notification.Notifier {
	return &NotificationRepository{
		db:     db,
		tracer: otel.Tracer("infrastructure.persistence.mysql.notification"),
	}
}

// Notify 会員に通知を送信する（通知レコードを作成する）
func (r *NotificationRepository) Notify(ctx context.Context, memberID int64, message, linkURL string) error {
	ctx, span := r.tracer.Start(ctx, "NotificationRepository.Notify")
	defer span.End()

	n, err := notification.NewNotification(memberID, message, linkURL, time.Now())
	if err != nil {
		return fmt.Errorf("failed to build notification: %w", err)
	}

	query := `INSERT INTO notifications (member_id, message, link_url, is_read, created_at) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		n.MemberID(),
		n.Message(),
		n.LinkURL(),
		n.IsRead(),
		n.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", translateError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	n.SetID(id)
	return nil
}
