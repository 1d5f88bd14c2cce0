package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"rewards-server/internal/application/adjustment"
	"rewards-server/internal/domain/member"
	"rewards-server/internal/domain/redemption"
	"rewards-server/internal/domain/reward"
	"rewards-server/internal/domain/transaction"
	otelinfra "rewards-server/internal/infrastructure/observability/otel"
)

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// errorMapping ドメインエラーとHTTPレスポンスの対応
type errorMapping struct {
	target  error
	status  int
	errCode string
}

// 判定順に並べる: 具体的なエラーを先に、検証系を後に
var errorMappings = []errorMapping{
	{member.ErrMemberNotFound, http.StatusNotFound, "member_not_found"},
	{reward.ErrRewardNotFound, http.StatusNotFound, "reward_not_found"},
	{redemption.ErrRedemptionNotFound, http.StatusNotFound, "redemption_not_found"},
	{member.ErrInsufficientPrivilege, http.StatusForbidden, "insufficient_privilege"},
	{member.ErrInsufficientBalance, http.StatusConflict, "insufficient_balance"},
	{reward.ErrInsufficientStock, http.StatusConflict, "insufficient_stock"},
	{redemption.ErrStatusFinal, http.StatusConflict, "status_final"},
	{reward.ErrRewardUnavailable, http.StatusBadRequest, "reward_unavailable"},
	{redemption.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
	{redemption.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
	{redemption.ErrNotesRequired, http.StatusBadRequest, "notes_required"},
	{redemption.ErrConfirmationRequired, http.StatusBadRequest, "confirmation_required"},
	{reward.ErrInvalidRewardName, http.StatusBadRequest, "invalid_reward_name"},
	{reward.ErrInvalidCost, http.StatusBadRequest, "invalid_cost"},
	{reward.ErrInvalidStock, http.StatusBadRequest, "invalid_stock"},
	{reward.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
	{reward.ErrInvalidPrivilege, http.StatusBadRequest, "invalid_privilege"},
	{member.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{member.ErrBalanceOutOfRange, http.StatusBadRequest, "balance_out_of_range"},
	{adjustment.ErrNoAdjustment, http.StatusBadRequest, "no_adjustment"},
	{adjustment.ErrReasonRequired, http.StatusBadRequest, "reason_required"},
	{transaction.ErrStoreTimeout, http.StatusServiceUnavailable, "store_timeout"},
	{transaction.ErrStoreConflict, http.StatusServiceUnavailable, "store_conflict"},
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}
			return handleError(c, err, logger)
		}
	}
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			logger.Warn(ctx, "Request failed with domain error", map[string]interface{}{
				"error": err.Error(),
				"code":  m.errCode,
				"path":  c.Request().URL.Path,
			})
			return c.JSON(m.status, ErrorResponse{
				Error:   m.errCode,
				Message: err.Error(),
				Code:    m.errCode,
			})
		}
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		message := ""
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})
	}

	// 予期しないエラー
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_server_error",
		Message: "An unexpected error occurred",
	})
}
