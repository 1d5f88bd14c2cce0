package handler

import (
	"net/http"
	"strconv"

	adjustmentapp "rewards-server/internal/application/adjustment"

	"github.com/labstack/echo/v4"
)

// AdjustmentHandler 残高調整関連ハンドラー
type AdjustmentHandler struct {
	adjustmentService *adjustmentapp.AdjustmentApplicationService
}

// NewAdjustmentHandler 新しいAdjustmentHandlerを作成
func NewAdjustmentHandler(adjustmentService *adjustmentapp.AdjustmentApplicationService) *AdjustmentHandler {
	return &AdjustmentHandler{
		adjustmentService: adjustmentService,
	}
}

// AdjustBalanceAdmin 残高調整ハンドラー（管理API用）
// @Summary 残高を調整（管理API）
// @Description 指定された会員の残高を調整します。理由の記載が必須です
// @Tags admin
// @Accept json
// @Produce json
// @Param member_id path int true "会員ID" example(42)
// @Param X-API-Key header string true "APIキー"
// @Param request body AdjustBalanceRequest true "残高調整リクエスト"
// @Success 200 {object} AdjustBalanceResponse "調整成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 404 {object} ErrorResponse "会員が存在しない"
// @Failure 409 {object} ErrorResponse "残高不足"
// @Router /admin/members/{member_id}/adjust [post]
func (h *AdjustmentHandler) AdjustBalanceAdmin(c echo.Context) error {
	memberID, err := strconv.ParseInt(c.Param("member_id"), 10, 64)
	if err != nil || memberID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid member_id")
	}

	var reqBody AdjustBalanceRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var amount int64
	if reqBody.Amount != "" {
		amount, err = strconv.ParseInt(reqBody.Amount, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid amount format")
		}
	}

	var permanentAmount int64
	if reqBody.PermanentAmount != "" {
		permanentAmount, err = strconv.ParseInt(reqBody.PermanentAmount, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid permanent_amount format")
		}
	}

	resp, err := h.adjustmentService.AdjustBalance(c.Request().Context(), &adjustmentapp.AdjustBalanceRequest{
		MemberID:        memberID,
		Amount:          amount,
		PermanentAmount: permanentAmount,
		Reason:          reqBody.Reason,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AdjustBalanceResponse{
		MemberID:         resp.MemberID,
		SpendableBalance: strconv.FormatInt(resp.SpendableBalance, 10),
		PermanentBalance: strconv.FormatInt(resp.PermanentBalance, 10),
	})
}
