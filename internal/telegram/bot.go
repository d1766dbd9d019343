package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/config"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// botImpl represents the Telegram bot
type botImpl struct {
	api          *tgbotapi.BotAPI
	cfg          *config.TelegramConfig
	stateManager *StateManager
	agentUC      AgentUsecase
	logger       *zap.Logger
	updatesChan  tgbotapi.UpdatesChannel
	stopChan     chan struct{}
	wg           sync.WaitGroup
}

func newBot(
	cfg *config.TelegramConfig,
	stateManager *StateManager,
	agentUC AgentUsecase,
	logger *zap.Logger,
) (*botImpl, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return &botImpl{
		api:          api,
		cfg:          cfg,
		stateManager: stateManager,
		agentUC:      agentUC,
		logger:       logger,
		stopChan:     make(chan struct{}),
	}, nil
}

// Start starts the bot
func (b *botImpl) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *botImpl) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(b.cfg.ShutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", b.cfg.ShutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *botImpl) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdate(u)
			}(update)
		}
	}
}

// handleUpdate routes an update to the command or message handler
func (b *botImpl) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic in update handler", zap.Any("panic", r))
		}
	}()

	if update.Message == nil {
		return
	}

	ctx := ctxzap.ToContext(context.Background(), b.logger)

	if update.Message.IsCommand() {
		b.handleCommand(ctx, update.Message)
		return
	}

	b.handleText(ctx, update.Message)
}

func (b *botImpl) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

func (b *botImpl) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		// Markdown can fail on unbalanced markers inside generated code,
		// fall back to plain text.
		b.send(chatID, text)
	}
}
