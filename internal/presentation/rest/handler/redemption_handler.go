package handler

import (
	"net/http"
	"strconv"
	"time"

	redemptionapp "rewards-server/internal/application/reward_redemption"
	restmiddleware "rewards-server/internal/presentation/rest/middleware"

	"github.com/labstack/echo/v4"
)

// RedemptionHandler 景品交換関連ハンドラー
type RedemptionHandler struct {
	redemptionService *redemptionapp.RewardRedemptionApplicationService
}

// NewRedemptionHandler 新しいRedemptionHandlerを作成
func NewRedemptionHandler(redemptionService *redemptionapp.RewardRedemptionApplicationService) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionService: redemptionService,
	}
}

// Redeem 景品交換ハンドラー（ユーザーAPI用）
// @Summary 景品を交換
// @Description 保有コインで景品を交換します。残高減算・在庫減算・履歴追記は原子的に行われます
// @Tags rewards
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body RedeemRequest true "景品交換リクエスト"
// @Success 200 {object} RedeemResponse "交換成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 403 {object} ErrorResponse "ティア不足"
// @Failure 409 {object} ErrorResponse "残高不足または在庫不足"
// @Router /rewards/redeem [post]
func (h *RedemptionHandler) Redeem(c echo.Context) error {
	memberID, ok := restmiddleware.MemberIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "member_id not found in token")
	}

	var reqBody RedeemRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req := &redemptionapp.RedeemRequest{
		MemberID:      memberID,
		RewardID:      reqBody.RewardID,
		Quantity:      reqBody.Quantity,
		ShippingNotes: reqBody.ShippingNotes,
	}

	resp, err := h.redemptionService.Redeem(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, RedeemResponse{
		RedemptionID:     resp.RedemptionID,
		RewardName:       resp.RewardName,
		Quantity:         resp.Quantity,
		PointsSpent:      strconv.FormatInt(resp.PointsSpent, 10),
		SpendableBalance: strconv.FormatInt(resp.SpendableBalance, 10),
		PermanentBalance: strconv.FormatInt(resp.PermanentBalance, 10),
		Status:           resp.Status,
		RedeemedAt:       resp.RedeemedAt.Format(time.RFC3339),
	})
}

// GetMyRedemptions 自分の交換履歴取得ハンドラー（ユーザーAPI用）
// @Summary 交換履歴を取得
// @Description 自分の景品交換履歴を取得します
// @Tags rewards
// @Accept json
// @Produce json
// @Security Bearer
// @Param limit query int false "取得件数（デフォルト: 20, 最大: 100)" default(20) example(20)
// @Param offset query int false "オフセット（デフォルト: 0)" default(0) example(0)
// @Success 200 {object} RedemptionListResponse "履歴取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /me/redemptions [get]
func (h *RedemptionHandler) GetMyRedemptions(c echo.Context) error {
	memberID, ok := restmiddleware.MemberIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "member_id not found in token")
	}

	return h.listRedemptionsInternal(c, memberID)
}

// GetMemberRedemptionsAdmin 会員の交換履歴取得ハンドラー（管理API用）
// @Summary 交換履歴を取得（管理API）
// @Description 指定された会員の景品交換履歴を取得します
// @Tags admin
// @Accept json
// @Produce json
// @Param member_id path int true "会員ID" example(42)
// @Param X-API-Key header string true "APIキー"
// @Param limit query int false "取得件数（デフォルト: 20, 最大: 100)" default(20) example(20)
// @Param offset query int false "オフセット（デフォルト: 0)" default(0) example(0)
// @Success 200 {object} RedemptionListResponse "履歴取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/members/{member_id}/redemptions [get]
func (h *RedemptionHandler) GetMemberRedemptionsAdmin(c echo.Context) error {
	memberID, err := strconv.ParseInt(c.Param("member_id"), 10, 64)
	if err != nil || memberID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid member_id")
	}

	return h.listRedemptionsInternal(c, memberID)
}

// GetRedemptionAdmin 交換レコード取得ハンドラー（管理API用）
// @Summary 交換レコードを取得（管理API）
// @Description 指定された交換レコードを取得します
// @Tags admin
// @Accept json
// @Produce json
// @Param redemption_id path int true "交換ID" example(100)
// @Param X-API-Key header string true "APIキー"
// @Success 200 {object} RedemptionItem "取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 404 {object} ErrorResponse "レコードが存在しない"
// @Router /admin/redemptions/{redemption_id} [get]
func (h *RedemptionHandler) GetRedemptionAdmin(c echo.Context) error {
	redemptionID, err := strconv.ParseInt(c.Param("redemption_id"), 10, 64)
	if err != nil || redemptionID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid redemption_id")
	}

	resp, err := h.redemptionService.GetRedemption(c.Request().Context(), &redemptionapp.GetRedemptionRequest{
		RedemptionID: redemptionID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRedemptionItem(resp))
}

// UpdateStatusAdmin 交換ステータス更新ハンドラー（管理API用）
// @Summary 交換ステータスを更新（管理API）
// @Description 交換レコードのステータスを更新します。rejected/cancelledへの遷移では返金が行われます
// @Tags admin
// @Accept json
// @Produce json
// @Param redemption_id path int true "交換ID" example(100)
// @Param X-API-Key header string true "APIキー"
// @Param request body UpdateStatusRequest true "ステータス更新リクエスト"
// @Success 200 {object} UpdateStatusResponse "更新成功"
// @Failure 400 {object} ErrorResponse "不正なリクエストまたは確認不足"
// @Failure 404 {object} ErrorResponse "レコードが存在しない"
// @Failure 409 {object} ErrorResponse "最終ステータスからの遷移"
// @Router /admin/redemptions/{redemption_id}/status [put]
func (h *RedemptionHandler) UpdateStatusAdmin(c echo.Context) error {
	redemptionID, err := strconv.ParseInt(c.Param("redemption_id"), 10, 64)
	if err != nil || redemptionID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid redemption_id")
	}

	var reqBody UpdateStatusRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req := &redemptionapp.UpdateStatusRequest{
		RedemptionID:   redemptionID,
		NewStatus:      reqBody.Status,
		AdminNotes:     reqBody.AdminNotes,
		ShippingNotes:  reqBody.ShippingNotes,
		TrackingNumber: reqBody.TrackingNumber,
		ConfirmFinal:   reqBody.ConfirmFinal,
	}

	resp, err := h.redemptionService.UpdateStatus(c.Request().Context(), req)
	if err != nil {
		return err
	}

	statusResp := UpdateStatusResponse{
		RedemptionID:   resp.RedemptionID,
		Status:         resp.Status,
		RefundedAmount: strconv.FormatInt(resp.RefundedAmount, 10),
	}
	if resp.ShippedAt != nil {
		statusResp.ShippedAt = resp.ShippedAt.Format(time.RFC3339)
	}
	if resp.DeliveredAt != nil {
		statusResp.DeliveredAt = resp.DeliveredAt.Format(time.RFC3339)
	}

	return c.JSON(http.StatusOK, statusResp)
}

// listRedemptionsInternal 交換履歴取得の内部実装
func (h *RedemptionHandler) listRedemptionsInternal(c echo.Context, memberID int64) error {
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

	resp, err := h.redemptionService.ListRedemptions(c.Request().Context(), &redemptionapp.ListRedemptionsRequest{
		MemberID: memberID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return err
	}

	items := make([]RedemptionItem, len(resp.Redemptions))
	for i, rd := range resp.Redemptions {
		items[i] = toRedemptionItem(rd)
	}

	return c.JSON(http.StatusOK, RedemptionListResponse{
		Redemptions: items,
		Total:       resp.Total,
		Limit:       limit,
		Offset:      offset,
	})
}

// toRedemptionItem 交換レコードをレスポンス形式に変換
func toRedemptionItem(rd *redemptionapp.RedemptionResponse) RedemptionItem {
	item := RedemptionItem{
		RedemptionID:   rd.RedemptionID,
		MemberID:       rd.MemberID,
		RewardID:       rd.RewardID,
		Quantity:       rd.Quantity,
		PointsSpent:    strconv.FormatInt(rd.PointsSpent, 10),
		Status:         rd.Status,
		ShippingNotes:  rd.ShippingNotes,
		AdminNotes:     rd.AdminNotes,
		TrackingNumber: rd.TrackingNumber,
		RedeemedAt:     rd.RedeemedAt.Format(time.RFC3339),
	}
	if rd.ShippedAt != nil {
		item.ShippedAt = rd.ShippedAt.Format(time.RFC3339)
	}
	if rd.DeliveredAt != nil {
		item.DeliveredAt = rd.DeliveredAt.Format(time.RFC3339)
	}
	return item
}
