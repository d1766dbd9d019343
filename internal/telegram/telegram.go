package telegram

import (
	"context"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/config"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// AgentUsecase is the slice of the agent workflow the bot drives
type AgentUsecase interface {
	CreateSession(ctx context.Context, req *entity.CreateSessionRequest) (*entity.Session, error)
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)
	HandleMessage(ctx context.Context, sessionID string, req *entity.SessionMessageRequest) (*entity.AgentResponse, error)
	AnalyzeCode(ctx context.Context, sessionID, model string) (*entity.AgentResponse, error)
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	agentUC AgentUsecase,
	logger *zap.Logger,
) (Bot, error) {
	stateManager := NewStateManager(cfg.SessionTTL)

	b, err := newBot(cfg, stateManager, agentUC, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("telegram bot initialized successfully")

	return b, nil
}
