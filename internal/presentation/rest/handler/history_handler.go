package handler

import (
	"net/http"
	"strconv"
	"time"

	historyapp "rewards-server/internal/application/history"
	restmiddleware "rewards-server/internal/presentation/rest/middleware"

	"github.com/labstack/echo/v4"
)

// HistoryHandler コイン履歴関連ハンドラー
type HistoryHandler struct {
	historyService *historyapp.HistoryApplicationService
}

// NewHistoryHandler 新しいHistoryHandlerを作成
func NewHistoryHandler(historyService *historyapp.HistoryApplicationService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// GetLedger コイン履歴取得ハンドラー（ユーザーAPI用）
// @Summary コイン履歴を取得
// @Description 自分のコイン増減履歴を取得します
// @Tags history
// @Accept json
// @Produce json
// @Security Bearer
// @Param limit query int false "取得件数（デフォルト: 20, 最大: 100)" default(20) example(20)
// @Param offset query int false "オフセット（デフォルト: 0)" default(0) example(0)
// @Success 200 {object} LedgerResponse "履歴取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /me/ledger [get]
func (h *HistoryHandler) GetLedger(c echo.Context) error {
	memberID, ok := restmiddleware.MemberIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "member_id not found in token")
	}

	return h.getLedgerInternal(c, memberID)
}

// GetLedgerAdmin コイン履歴取得ハンドラー（管理API用）
// @Summary コイン履歴を取得（管理API）
// @Description 指定された会員のコイン増減履歴を取得します
// @Tags admin
// @Accept json
// @Produce json
// @Param member_id path int true "会員ID" example(42)
// @Param X-API-Key header string true "APIキー"
// @Param limit query int false "取得件数（デフォルト: 20, 最大: 100)" default(20) example(20)
// @Param offset query int false "オフセット（デフォルト: 0)" default(0) example(0)
// @Success 200 {object} LedgerResponse "履歴取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/members/{member_id}/ledger [get]
func (h *HistoryHandler) GetLedgerAdmin(c echo.Context) error {
	memberID, err := strconv.ParseInt(c.Param("member_id"), 10, 64)
	if err != nil || memberID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid member_id")
	}

	return h.getLedgerInternal(c, memberID)
}

// getLedgerInternal コイン履歴取得の内部実装
func (h *HistoryHandler) getLedgerInternal(c echo.Context, memberID int64) error {
	limit := 20
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit parameter")
		}
	}

	offset := 0
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid offset parameter")
		}
	}

	resp, err := h.historyService.ListLedger(c.Request().Context(), &historyapp.ListLedgerRequest{
		MemberID: memberID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return err
	}

	entries := make([]LedgerEntryItem, len(resp.Entries))
	for i, entry := range resp.Entries {
		entries[i] = LedgerEntryItem{
			EntryID:   entry.EntryID,
			Event:     entry.Event,
			Amount:    strconv.FormatInt(entry.Amount, 10),
			EntryType: entry.EntryType,
			CreatedAt: entry.CreatedAt.Format(time.RFC3339),
		}
	}

	return c.JSON(http.StatusOK, LedgerResponse{
		Entries: entries,
		Total:   resp.Total,
		Limit:   limit,
		Offset:  offset,
	})
}
