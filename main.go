// File: receivault/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"receivault/config"
	"receivault/cron"
	"receivault/database"
	activityRepoPkg "receivault/database/repository/activity"
	collateralRepoPkg "receivault/database/repository/collateral"
	positionRepoPkg "receivault/database/repository/position"
	vaultRepoPkg "receivault/database/repository/vault"
	"receivault/handlers"
	"receivault/routes"
	activitySvc "receivault/services/activity"
	"receivault/services/chain"
	"receivault/services/datasource"
	exportSvc "receivault/services/export"
	"receivault/services/flags"
	"receivault/services/portfolio"
	syncsvc "receivault/services/sync"
	"receivault/services/transparency"
	vaultSvc "receivault/services/vault"
	"receivault/utils"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()
	cacheClient := utils.GetCacheClient()

	// Repositories: Mongo against reconciled chain state, or the
	// deterministic fixture set for demos. Never mixed in one process.
	var (
		vRepo vaultRepoPkg.VaultRepository
		pRepo positionRepoPkg.PositionRepository
		aRepo activityRepoPkg.ActivityRepository
		cRepo collateralRepoPkg.CollateralRepository
	)
	if datasource.UseFixtures() {
		logger.Sugar().Info("main: serving fixture data")
		vRepo = datasource.NewFixtureVaultRepo()
		pRepo = datasource.NewFixturePositionRepo()
		aRepo = datasource.NewFixtureActivityRepo()
		cRepo = datasource.NewFixtureCollateralRepo()
	} else {
		database.InitDB()
		vRepo = vaultRepoPkg.NewMongoVaultRepo()
		pRepo = positionRepoPkg.NewMongoPositionRepo()
		aRepo = activityRepoPkg.NewMongoActivityRepo()
		cRepo = collateralRepoPkg.NewMongoCollateralRepo()
	}

	// Chain client and reconciler.
	programID, err := solana.PublicKeyFromBase58(config.AppConfig.VaultProgramID)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid VAULT_PROGRAM_ID: %v", err)
	}
	chainClient := chain.NewClient(config.AppConfig.SolanaRPCURL, programID, logger)
	reconciler := chain.NewReconciler(chainClient)

	// Invalidation ladder scheduler over the asynq queue.
	queueOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	scheduler := syncsvc.NewScheduler(queueOpts)
	defer scheduler.Close()

	// Services.
	vaultService := &vaultSvc.DefaultVaultService{
		Repo:          vRepo,
		ActivityRepo:  aRepo,
		Chain:         chainClient,
		Cache:         cacheClient,
		Invalidator:   scheduler,
		TokenMint:     config.AppConfig.USDCMint,
		TokenDecimals: 6,
	}
	portfolioService := &portfolio.DefaultPortfolioService{
		Repo:         pRepo,
		VaultRepo:    vRepo,
		ActivityRepo: aRepo,
		Chain:        chainClient,
		Cache:        cacheClient,
		Invalidator:  scheduler,
	}
	activityService := &activitySvc.DefaultActivityService{
		Repo:  aRepo,
		Cache: cacheClient,
	}
	transparencyService := &transparency.DefaultTransparencyService{
		Repo:  cRepo,
		Cache: cacheClient,
	}
	exportService := &exportSvc.DefaultExportService{
		VaultRepo:      vRepo,
		PositionRepo:   pRepo,
		CollateralRepo: cRepo,
	}
	flagService := flags.NewFlagService()

	// Background workers: the cache-invalidation consumer always runs;
	// the chain indexer only makes sense against live data.
	cron.InitInvalidationWorker(cacheClient)

	syncCtx, stopSync := context.WithCancel(context.Background())
	defer stopSync()
	if !datasource.UseFixtures() {
		indexer := &syncsvc.Indexer{
			Chain:         chainClient,
			Reconciler:    reconciler,
			VaultRepo:     vRepo,
			PositionRepo:  pRepo,
			Cache:         cacheClient,
			TokenDecimals: 6,
			Logger:        logger,
		}
		interval := time.Duration(config.AppConfig.SyncIntervalSec) * time.Second
		if interval <= 0 {
			interval = 30 * time.Second
		}
		go indexer.Run(syncCtx, interval)

		utils.StartHealthMonitor(
			[]*redis.Client{cacheClient, utils.GetAuthCacheClient()},
			database.MongoClient,
			chainClient,
		)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Vault endpoints.
		ListVaultsHandler: handlers.ListVaultsHandler(vaultService),
		GetVaultHandler:   handlers.GetVaultHandler(vaultService),

		// Portfolio endpoints.
		ListPositionsHandler:    handlers.ListPositionsHandler(portfolioService),
		PortfolioSummaryHandler: handlers.PortfolioSummaryHandler(portfolioService),
		BuildDepositHandler:     handlers.BuildDepositHandler(portfolioService),
		BuildClaimHandler:       handlers.BuildClaimHandler(portfolioService),
		SubmitDepositHandler:    handlers.SubmitDepositHandler(portfolioService),
		SubmitClaimHandler:      handlers.SubmitClaimHandler(portfolioService),

		// Activity endpoints.
		ListActivityHandler: handlers.ListActivityHandler(activityService),

		// Transparency endpoints.
		TransparencyReportHandler: handlers.TransparencyReportHandler(transparencyService),

		// Export endpoints.
		ExportVaultsHandler:     handlers.ExportVaultsHandler(exportService),
		ExportPositionsHandler:  handlers.ExportPositionsHandler(exportService),
		ExportCollateralHandler: handlers.ExportCollateralHandler(exportService),

		// Feature flags.
		EvaluateFlagsHandler: handlers.EvaluateFlagsHandler(flagService),

		// Admin endpoints.
		AdminLoginHandler:       handlers.AdminLoginHandler(),
		AdminLogoutHandler:      handlers.AdminLogoutHandler(),
		InitializeVaultHandler:  handlers.InitializeVaultHandler(vaultService),
		FinalizeFundingHandler:  handlers.FinalizeFundingHandler(vaultService),
		MatureVaultHandler:      handlers.MatureVaultHandler(vaultService),
		CloseVaultHandler:       handlers.CloseVaultHandler(vaultService),
		SubmitLifecycleHandler:  handlers.SubmitLifecycleHandler(vaultService),
		UpsertCollateralHandler: handlers.UpsertCollateralHandler(transparencyService),
		DeleteCollateralHandler: handlers.DeleteCollateralHandler(transparencyService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	stopSync()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
