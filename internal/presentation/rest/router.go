package rest

import (
	"database/sql"

	adjustmentapp "rewards-server/internal/application/adjustment"
	catalogapp "rewards-server/internal/application/catalog"
	historyapp "rewards-server/internal/application/history"
	redemptionapp "rewards-server/internal/application/reward_redemption"
	"rewards-server/internal/infrastructure/config"
	otelinfra "rewards-server/internal/infrastructure/observability/otel"
	"rewards-server/internal/infrastructure/persistence/mysql"
	"rewards-server/internal/presentation/rest/handler"
	restmiddleware "rewards-server/internal/presentation/rest/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Router REST APIルーター
type Router struct {
	echo              *echo.Echo
	redemptionHandler *handler.RedemptionHandler
	catalogHandler    *handler.CatalogHandler
	historyHandler    *handler.HistoryHandler
	adjustmentHandler *handler.AdjustmentHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	db *sql.DB,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	redemptionService *redemptionapp.RewardRedemptionApplicationService,
	catalogService *catalogapp.CatalogApplicationService,
	historyService *historyapp.HistoryApplicationService,
	adjustmentService *adjustmentapp.AdjustmentApplicationService,
) (*Router, error) {
	e := echo.New()

	// Echoのデフォルトエラーハンドラーを無効化（カスタムエラーハンドラーを使用）
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// エラーハンドリングミドルウェアで処理される
	}

	// ミドルウェアの設定
	setupMiddleware(e, logger, metrics)

	// ハンドラーの作成
	redemptionHandler := handler.NewRedemptionHandler(redemptionService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	historyHandler := handler.NewHistoryHandler(historyService)
	adjustmentHandler := handler.NewAdjustmentHandler(adjustmentService)

	// ルーティングの設定
	setupRoutes(e, cfg, db, logger, redemptionHandler, catalogHandler, historyHandler, adjustmentHandler)

	// Swagger UI / ReDoc統合
	SetupSwagger(e)

	return &Router{
		echo:              e,
		redemptionHandler: redemptionHandler,
		catalogHandler:    catalogHandler,
		historyHandler:    historyHandler,
		adjustmentHandler: adjustmentHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	// リカバリーミドルウェア
	e.Use(middleware.Recover())

	// CORS設定
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // 本番環境では適切に設定
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// リクエストIDの設定
	e.Use(middleware.RequestID())

	// セキュリティヘッダー
	e.Use(restmiddleware.SecurityHeadersMiddleware())

	// トレーシングミドルウェア
	e.Use(restmiddleware.TracingMiddleware())

	// ログミドルウェア
	e.Use(restmiddleware.LoggingMiddleware(logger))

	// メトリクスミドルウェア
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// エラーハンドリングミドルウェア
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	db *sql.DB,
	logger *otelinfra.Logger,
	redemptionHandler *handler.RedemptionHandler,
	catalogHandler *handler.CatalogHandler,
	historyHandler *handler.HistoryHandler,
	adjustmentHandler *handler.AdjustmentHandler,
) {
	// API v1グループ
	api := e.Group("/api/v1")

	// 景品カタログ（未認証でも閲覧可能、トークンがあれば交換可否付き）
	api.GET("/rewards", catalogHandler.ListRewards, restmiddleware.OptionalAuthMiddleware(&cfg.JWT, logger))

	// 認証が必要なエンドポイント
	authGroup := api.Group("", restmiddleware.AuthMiddleware(&cfg.JWT, logger))

	// 景品交換エンドポイント
	authGroup.POST("/rewards/redeem", redemptionHandler.Redeem)
	authGroup.GET("/me/redemptions", redemptionHandler.GetMyRedemptions)

	// コイン履歴エンドポイント
	authGroup.GET("/me/ledger", historyHandler.GetLedger)

	// 管理APIエンドポイント
	adminGroup := api.Group("/admin", restmiddleware.APIKeyMiddleware(&cfg.AdminAPI, logger))
	adminGroup.GET("/redemptions/:redemption_id", redemptionHandler.GetRedemptionAdmin)
	adminGroup.PUT("/redemptions/:redemption_id/status", redemptionHandler.UpdateStatusAdmin)
	adminGroup.GET("/members/:member_id/redemptions", redemptionHandler.GetMemberRedemptionsAdmin)
	adminGroup.GET("/members/:member_id/ledger", historyHandler.GetLedgerAdmin)
	adminGroup.POST("/members/:member_id/adjust", adjustmentHandler.AdjustBalanceAdmin)
	adminGroup.POST("/rewards", catalogHandler.CreateRewardAdmin)
	adminGroup.PUT("/rewards/:reward_id", catalogHandler.UpdateRewardAdmin)
	adminGroup.DELETE("/rewards/:reward_id", catalogHandler.DeactivateRewardAdmin)

	// ヘルスチェックエンドポイント（認証不要）
	e.GET("/health", func(c echo.Context) error {
		if err := mysql.HealthCheck(c.Request().Context(), db); err != nil {
			return c.JSON(503, map[string]string{"status": "unhealthy"})
		}
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown サーバーをシャットダウン
func (r *Router) Shutdown() error {
	return r.echo.Close()
}
