package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/api"
	agentapi "github.com/NinhThienLuan/404-Brain-Not-Found/internal/api/agent"
	codegenapi "github.com/NinhThienLuan/404-Brain-Not-Found/internal/api/codegen"
	conversationapi "github.com/NinhThienLuan/404-Brain-Not-Found/internal/api/conversation"
	userapi "github.com/NinhThienLuan/404-Brain-Not-Found/internal/api/user"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/config"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/integration/oracle"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/pkg/formatter"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/pkg/validator"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/repository"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/telegram"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/usecase/agent"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/usecase/codegen"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/usecase/conversation"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/usecase/user"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	client, db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Initialize repositories
	sessionRepo := repository.NewSessionMongo(db)
	generationRepo := repository.NewGenerationMongo(db)
	reviewRepo := repository.NewReviewMongo(db)
	executionRepo := repository.NewExecutionLogMongo(db)
	requestRepo := repository.NewRequestMongo(db)
	conversationRepo := repository.NewConversationMongo(db)
	messageRepo := repository.NewMessageMongo(db)
	userRepo := repository.NewUserMongo(db)
	logger.Info("Repositories initialized")

	// Initialize external service connectors (with mock support)
	var agentOracle agent.Oracle
	var codegenOracle codegen.Oracle

	if cfg.EnableMocks {
		logger.Info("Using mock connector for the completion provider")
		mock := oracle.NewMockConnector(logger)
		agentOracle, codegenOracle = mock, mock
	} else {
		logger.Info("Using real connector for the completion provider")
		conn := oracle.NewConnector(cfg.OracleCfg, logger)
		agentOracle, codegenOracle = conn, conn
	}

	// Initialize validators
	requestValidator := validator.NewValidator()
	logger.Info("Validators initialized")

	// Initialize use cases
	generator := codegen.NewGenerator(codegenOracle)
	reviewer := codegen.NewReviewer(codegenOracle)

	agentUC := agent.NewUsecase(
		sessionRepo,
		agent.NewExtractor(agentOracle),
		agent.NewClassifier(agentOracle),
		generator,
		agentOracle,
		formatter.NewFactory(),
		requestValidator,
		cfg.AgentCfg,
		logger,
	)

	codegenUC := codegen.NewUsecase(
		generationRepo,
		reviewRepo,
		executionRepo,
		requestRepo,
		generator,
		reviewer,
		requestValidator,
		logger,
	)

	conversationUC := conversation.NewUsecase(
		conversationRepo,
		messageRepo,
		requestValidator,
		logger,
	)

	userUC := user.NewUsecase(
		userRepo,
		requestValidator,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	agentHandler := agentapi.NewHandler(agentUC)
	codegenHandler := codegenapi.NewHandler(codegenUC)
	conversationHandler := conversationapi.NewHandler(conversationUC)
	userHandler := userapi.NewHandler(userUC)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(agentHandler, codegenHandler, conversationHandler, userHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		client: client,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	// Setup database connection
	client, db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	// Initialize repositories
	sessionRepo := repository.NewSessionMongo(db)
	logger.Info("Repositories initialized")

	// Initialize external service connectors (with mock support)
	var agentOracle agent.Oracle
	var codegenOracle codegen.Oracle

	if cfg.EnableMocks {
		logger.Info("Using mock connector for the completion provider")
		mock := oracle.NewMockConnector(logger)
		agentOracle, codegenOracle = mock, mock
	} else {
		logger.Info("Using real connector for the completion provider")
		conn := oracle.NewConnector(cfg.OracleCfg, logger)
		agentOracle, codegenOracle = conn, conn
	}

	// Initialize use cases
	agentUC := agent.NewUsecase(
		sessionRepo,
		agent.NewExtractor(agentOracle),
		agent.NewClassifier(agentOracle),
		codegen.NewGenerator(codegenOracle),
		agentOracle,
		formatter.NewFactory(),
		validator.NewValidator(),
		cfg.AgentCfg,
		logger,
	)
	logger.Info("Use cases initialized")

	// Initialize Telegram bot
	bot, err := telegram.NewBot(&cfg.TelegramCfg, agentUC, logger)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}
