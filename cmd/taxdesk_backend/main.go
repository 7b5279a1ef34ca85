package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/taxdesk/taxdesk_app/internal/core/ports/services"
	"github.com/taxdesk/taxdesk_app/internal/core/services"
	"github.com/taxdesk/taxdesk_app/internal/dto"
	"github.com/taxdesk/taxdesk_app/internal/handlers"
	"github.com/taxdesk/taxdesk_app/internal/middleware"
	"github.com/taxdesk/taxdesk_app/internal/platform/config"
	"github.com/taxdesk/taxdesk_app/internal/quickbooks"
	"github.com/taxdesk/taxdesk_app/internal/repositories/database/pgsql"
	"github.com/taxdesk/taxdesk_app/internal/utils/analytics"
	"github.com/taxdesk/taxdesk_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	analyticsClient := analytics.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer analyticsClient.Close()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("decimalgtzero", dto.DecimalGTZero); err != nil {
			logger.Error("Failed to register custom validator", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", handlers.GetHome)

	setupAPIV1Routes(r, cfg, dbPool, logger, analyticsClient)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies pending schema migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, dbPool *pgxpool.Pool, logger *slog.Logger, analyticsClient *analytics.PosthogClient) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), middleware.PosthogMiddleware(analyticsClient))

	// The category service keeps a per-client name cache, so every route
	// group that resolves or mutates categories must share one instance.
	categoryService := services.NewTaxCategoryService(pgsql.NewTaxCategoryRepository(dbPool))

	addStatusAPI(v1, dbPool)
	addClientAPI(v1, dbPool)
	addTrialBalanceAPI(v1, dbPool, categoryService)
	addAccountAPI(v1, dbPool, categoryService)
	addTaxCategoryAPI(v1, categoryService)
	addJournalAPI(v1, dbPool)
	addNoteAPI(v1, dbPool)
	addCommentAPI(v1, dbPool)
	addSyncAPI(v1, cfg, dbPool, logger, categoryService)
}

func addStatusAPI(v1 *gin.RouterGroup, dbPool *pgxpool.Pool) {
	statusService := services.NewStatusService(pgsql.NewStatusRepository(dbPool), pgsql.NewClientRepository(dbPool))
	statusHandler := handlers.NewStatusHandler(statusService)

	statuses := v1.Group("/statuses")
	{
		statuses.POST("", statusHandler.CreateStatus)
		statuses.GET("", statusHandler.ListStatuses)
		statuses.PUT("/:statusID", statusHandler.UpdateStatus)
		statuses.DELETE("/:statusID", statusHandler.DeleteStatus)
	}
}

func addClientAPI(v1 *gin.RouterGroup, dbPool *pgxpool.Pool) {
	clientService := services.NewClientService(pgsql.NewClientRepository(dbPool), pgsql.NewStatusRepository(dbPool))
	clientHandler := handlers.NewClientHandler(clientService)

	clients := v1.Group("/clients")
	{
		clients.POST("", clientHandler.CreateClient)
		clients.GET("", clientHandler.ListClients)
		clients.GET("/:clientID", clientHandler.GetClient)
		clients.PUT("/:clientID", clientHandler.UpdateClient)
		clients.DELETE("/:clientID", clientHandler.DeleteClient)
	}
}

func addTrialBalanceAPI(v1 *gin.RouterGroup, dbPool *pgxpool.Pool, categoryService portssvc.TaxCategorySvcFacade) {
	trialBalanceService := services.NewTrialBalanceService(
		pgsql.NewTrialBalanceRepository(dbPool),
		pgsql.NewAccountRepository(dbPool),
		pgsql.NewTransactionRepository(dbPool),
		categoryService,
	)
	trialBalanceHandler := handlers.NewTrialBalanceHandler(trialBalanceService)

	tb := v1.Group("/clients/:clientID/trial-balance")
	{
		tb.GET("", trialBalanceHandler.GetTrialBalance)
		tb.POST("/import", trialBalanceHandler.ImportTrialBalance)
	}
}

func addAccountAPI(v1 *gin.RouterGroup, dbPool *pgxpool.Pool, categoryService portssvc.TaxCategorySvcFacade) {
	accountService := services.NewAccountService(
		pgsql.NewAccountRepository(dbPool),
		pgsql.NewTransactionRepository(dbPool),
		pgsql.NewAttachmentRepository(dbPool),
		pgsql.NewNoteRepository(dbPool),
		pgsql.NewTrialBalanceRepository(dbPool),
		categoryService,
	)
	accountHandler := handlers.NewAccountHandler(accountService)

	v1.POST("/clients/:clientID/accounts", accountHandler.CreateAccount)

	accounts := v1.Group("/accounts")
	{
		accounts.GET("/:accountID", accountHandler.GetAccount)
		accounts.PUT("/:accountID", accountHandler.UpdateAccount)
		accounts.DELETE("/:accountID", accountHandler.DeleteAccount)
	}
}

func addTaxCategoryAPI(v1 *gin.RouterGroup, categoryService portssvc.TaxCategorySvcFacade) {
	categoryHandler := handlers.NewTaxCategoryHandler(categoryService)

	categories := v1.Group("/clients/:clientID/tax-categories")
	{
		categories.GET("", categoryHandler.ListCategories)
		categories.POST("", categoryHandler.CreateCategory)
		categories.DELETE("/:categoryID", categoryHandler.DeleteCategory)
	}
}

func addJournalAPI(v1 *gin.RouterGroup, dbPool *pgxpool.Pool) {
	journalService := services.NewJournalService(pgsql.NewAccountRepository(dbPool), pgsql.NewTransactionRepository(dbPool))
	journalHandler := handlers.NewJournalHandler(journalService)

	v1.POST("/clients/:clientID/trial-balance/journal-entries", journalHandler.CreateJournalEntry)
}

func addNoteAPI(v1 *gin.RouterGroup, dbPool *pgxpool.Pool) {
	noteService := services.NewNoteService(pgsql.NewNoteRepository(dbPool), pgsql.NewAccountRepository(dbPool))
	noteHandler := handlers.NewNoteHandler(noteService)

	notes := v1.Group("/clients/:clientID/trial-balance/accounts/:accountID/notes")
	{
		notes.GET("", noteHandler.ListNotes)
		notes.POST("", noteHandler.CreateNote)
		notes.DELETE("/:noteID", noteHandler.DeleteNote)
	}
}

func addCommentAPI(v1 *gin.RouterGroup, dbPool *pgxpool.Pool) {
	commentService := services.NewCommentService(pgsql.NewCommentRepository(dbPool), pgsql.NewClientRepository(dbPool))
	commentHandler := handlers.NewCommentHandler(commentService)

	comments := v1.Group("/clients/:clientID/comments")
	{
		comments.GET("", commentHandler.ListComments)
		comments.POST("", commentHandler.CreateComment)
		comments.DELETE("/:commentID", commentHandler.DeleteComment)
	}
}

func addSyncAPI(v1 *gin.RouterGroup, cfg *config.Config, dbPool *pgxpool.Pool, logger *slog.Logger, categoryService portssvc.TaxCategorySvcFacade) {
	qbClient := quickbooks.NewClient(quickbooks.Config{
		ClientID:     cfg.QuickBooksClientID,
		ClientSecret: cfg.QuickBooksClientSecret,
		Environment:  cfg.QuickBooksEnvironment,
	})

	trialBalanceService := services.NewTrialBalanceService(
		pgsql.NewTrialBalanceRepository(dbPool),
		pgsql.NewAccountRepository(dbPool),
		pgsql.NewTransactionRepository(dbPool),
		categoryService,
	)
	syncService := services.NewSyncService(
		pgsql.NewIntegrationRepository(dbPool),
		pgsql.NewTrialBalanceRepository(dbPool),
		pgsql.NewAccountRepository(dbPool),
		pgsql.NewTransactionRepository(dbPool),
		categoryService,
		qbClient,
	)
	integrationService := services.NewIntegrationService(
		pgsql.NewIntegrationRepository(dbPool),
		pgsql.NewClientRepository(dbPool),
	)
	syncHandler := handlers.NewSyncHandler(syncService, integrationService, trialBalanceService)

	rate, err := limiter.NewRateFromFormatted(cfg.SyncRateLimit)
	if err != nil {
		logger.Warn("Invalid SYNC_RATE_LIMIT, defaulting to 5-M", slog.String("error", err.Error()))
		rate = limiter.Rate{Period: time.Minute, Limit: 5}
	}
	syncLimiter := limiter.New(memory.NewStore(), rate)

	v1.POST("/quickbooks/sync/:clientID", middleware.RateLimit(syncLimiter), syncHandler.SyncClient)

	integration := v1.Group("/clients/:clientID/integration")
	{
		integration.GET("", syncHandler.GetIntegrationStatus)
		integration.POST("", syncHandler.ConnectIntegration)
		integration.DELETE("", syncHandler.DisconnectIntegration)
	}
}
