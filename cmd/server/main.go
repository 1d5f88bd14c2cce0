package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	adjustmentapp "rewards-server/internal/application/adjustment"
	catalogapp "rewards-server/internal/application/catalog"
	historyapp "rewards-server/internal/application/history"
	redemptionapp "rewards-server/internal/application/reward_redemption"
	"rewards-server/internal/infrastructure/config"
	otelinfra "rewards-server/internal/infrastructure/observability/otel"
	"rewards-server/internal/infrastructure/persistence/mysql"
	"rewards-server/internal/presentation/rest"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OpenTelemetryの初期化
	tracerShutdown, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	meterShutdown, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize meter: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown meter: %v", err)
		}
	}()

	// ロガーとメトリクスの初期化
	tracer := otelinfra.Tracer("rewards-server")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("rewards-server")
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	// データベース接続の初期化
	db, err := mysql.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// リポジトリの初期化
	memberRepo := mysql.NewMemberRepository(db)
	privilegeRepo := mysql.NewPrivilegeRepository(db)
	rewardRepo := mysql.NewRewardRepository(db)
	redemptionRepo := mysql.NewRedemptionRepository(db)
	ledgerRepo := mysql.NewLedgerRepository(db)
	notifier := mysql.NewNotificationRepository(db)

	// トランザクションマネージャーの初期化
	txManager := mysql.NewTransactionManager(db)

	// アプリケーションサービスの初期化
	redemptionAppService := redemptionapp.NewRewardRedemptionApplicationService(
		memberRepo,
		privilegeRepo,
		rewardRepo,
		redemptionRepo,
		ledgerRepo,
		notifier,
		txManager,
		logger,
		metrics,
	)

	catalogAppService := catalogapp.NewCatalogApplicationService(
		rewardRepo,
		memberRepo,
		privilegeRepo,
		logger,
	)

	historyAppService := historyapp.NewHistoryApplicationService(ledgerRepo)

	adjustmentAppService := adjustmentapp.NewAdjustmentApplicationService(
		memberRepo,
		ledgerRepo,
		txManager,
		logger,
		metrics,
	)

	// REST APIルーターの初期化
	router, err := rest.NewRouter(
		cfg,
		db,
		logger,
		metrics,
		redemptionAppService,
		catalogAppService,
		historyAppService,
		adjustmentAppService,
	)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// サーバーアドレスの設定
	address := fmt.Sprintf(":%d", cfg.Server.Port)

	// グレースフルシャットダウンの設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// REST APIサーバーを別ゴルーチンで起動
	go func() {
		log.Printf("REST API server starting on %s", address)
		if err := router.Start(address); err != nil {
			log.Printf("REST API server error: %v", err)
		}
	}()

	// シグナルを待機
	<-quit
	log.Println("Shutting down server...")

	if err := router.Shutdown(); err != nil {
		log.Printf("Error shutting down REST API server: %v", err)
	}

	log.Println("Server stopped")
}
