package handler

import (
	"net/http"
	"strconv"
	"time"

	catalogapp "rewards-server/internal/application/catalog"
	restmiddleware "rewards-server/internal/presentation/rest/middleware"

	"github.com/labstack/echo/v4"
)

// CatalogHandler 景品カタログ関連ハンドラー
type CatalogHandler struct {
	catalogService *catalogapp.CatalogApplicationService
}

// NewCatalogHandler 新しいCatalogHandlerを作成
func NewCatalogHandler(catalogService *catalogapp.CatalogApplicationService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListRewards 景品一覧取得ハンドラー
// @Summary 景品一覧を取得
// @Description 交換可能な景品の一覧を取得します。認証済みの場合は交換可否の判定を含みます
// @Tags rewards
// @Accept json
// @Produce json
// @Success 200 {object} RewardListResponse "一覧取得成功"
// @Router /rewards [get]
func (h *CatalogHandler) ListRewards(c echo.Context) error {
	// 未認証でも閲覧可能。会員IDが取れた場合だけ交換可否を付与する
	memberID, _ := restmiddleware.MemberIDFromContext(c)

	resp, err := h.catalogService.ListRewards(c.Request().Context(), &catalogapp.ListRewardsRequest{
		MemberID: memberID,
	})
	if err != nil {
		return err
	}

	rewards := make([]RewardListItem, len(resp.Rewards))
	for i, rw := range resp.Rewards {
		rewards[i] = RewardListItem{
			RewardID:          rw.RewardID,
			Name:              rw.Name,
			Description:       rw.Description,
			Cost:              strconv.FormatInt(rw.Cost, 10),
			Stock:             rw.Stock,
			RequiredPrivilege: rw.RequiredPrivilege,
			Affordable:        rw.Affordable,
			Redeemable:        rw.Redeemable,
		}
	}

	return c.JSON(http.StatusOK, RewardListResponse{
		Rewards: rewards,
	})
}

// CreateRewardAdmin 景品作成ハンドラー（管理API用）
// @Summary 景品を作成（管理API）
// @Description 新しい景品を作成します
// @Tags admin
// @Accept json
// @Produce json
// @Param X-API-Key header string true "APIキー"
// @Param request body RewardRequest true "景品作成リクエスト"
// @Success 201 {object} RewardAdminResponse "作成成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/rewards [post]
func (h *CatalogHandler) CreateRewardAdmin(c echo.Context) error {
	var reqBody RewardRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cost, err := strconv.ParseInt(reqBody.Cost, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid cost format")
	}

	resp, err := h.catalogService.CreateReward(c.Request().Context(), &catalogapp.CreateRewardRequest{
		Name:              reqBody.Name,
		Description:       reqBody.Description,
		Cost:              cost,
		Stock:             reqBody.Stock,
		IsActive:          reqBody.IsActive,
		RequiredPrivilege: reqBody.RequiredPrivilege,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toRewardAdminResponse(resp))
}

// UpdateRewardAdmin 景品更新ハンドラー（管理API用）
// @Summary 景品を更新（管理API）
// @Description 既存の景品を更新します
// @Tags admin
// @Accept json
// @Produce json
// @Param reward_id path int true "景品ID" example(7)
// @Param X-API-Key header string true "APIキー"
// @Param request body RewardRequest true "景品更新リクエスト"
// @Success 200 {object} RewardAdminResponse "更新成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 404 {object} ErrorResponse "景品が存在しない"
// @Router /admin/rewards/{reward_id} [put]
func (h *CatalogHandler) UpdateRewardAdmin(c echo.Context) error {
	rewardID, err := strconv.ParseInt(c.Param("reward_id"), 10, 64)
	if err != nil || rewardID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reward_id")
	}

	var reqBody RewardRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cost, err := strconv.ParseInt(reqBody.Cost, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid cost format")
	}

	resp, err := h.catalogService.UpdateReward(c.Request().Context(), &catalogapp.UpdateRewardRequest{
		RewardID:          rewardID,
		Name:              reqBody.Name,
		Description:       reqBody.Description,
		Cost:              cost,
		Stock:             reqBody.Stock,
		IsActive:          reqBody.IsActive,
		RequiredPrivilege: reqBody.RequiredPrivilege,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRewardAdminResponse(resp))
}

// DeactivateRewardAdmin 景品交換停止ハンドラー（管理API用）
// @Summary 景品の交換を停止（管理API）
// @Description 景品を交換停止にします。既存の交換レコードには影響しません
// @Tags admin
// @Accept json
// @Produce json
// @Param reward_id path int true "景品ID" example(7)
// @Param X-API-Key header string true "APIキー"
// @Success 200 {object} RewardAdminResponse "停止成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 404 {object} ErrorResponse "景品が存在しない"
// @Router /admin/rewards/{reward_id} [delete]
func (h *CatalogHandler) DeactivateRewardAdmin(c echo.Context) error {
	rewardID, err := strconv.ParseInt(c.Param("reward_id"), 10, 64)
	if err != nil || rewardID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reward_id")
	}

	resp, err := h.catalogService.DeactivateReward(c.Request().Context(), &catalogapp.DeactivateRewardRequest{
		RewardID: rewardID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRewardAdminResponse(resp))
}

// toRewardAdminResponse 景品をレスポンス形式に変換
func toRewardAdminResponse(rw *catalogapp.RewardResponse) RewardAdminResponse {
	return RewardAdminResponse{
		RewardID:          rw.RewardID,
		Name:              rw.Name,
		Description:       rw.Description,
		Cost:              strconv.FormatInt(rw.Cost, 10),
		Stock:             rw.Stock,
		IsActive:          rw.IsActive,
		RequiredPrivilege: rw.RequiredPrivilege,
		CreatedAt:         rw.CreatedAt.Format(time.RFC3339),
	}
}
