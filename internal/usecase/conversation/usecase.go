package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/pkg/validator"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ConversationUsecase implements conversation and message business logic.
// Message counts are maintained by increments next to message writes, not by
// query-time counting, so a partial failure can leave the count off by one.
type ConversationUsecase struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	validator        *validator.Validator
	logger           *zap.Logger
}

// NewUsecase creates a new conversation use case
func NewUsecase(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	validator *validator.Validator,
	logger *zap.Logger,
) *ConversationUsecase {
	return &ConversationUsecase{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		validator:        validator,
		logger:           logger,
	}
}

// CreateConversation creates an empty conversation
func (uc *ConversationUsecase) CreateConversation(ctx context.Context, req *entity.CreateConversationRequest) (*entity.Conversation, error) {
	if err := uc.validator.ValidateCreateConversation(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	conv := entity.Conversation{
		Title:     req.Title,
		Goal:      req.Goal,
		Facts:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := uc.conversationRepo.CreateConversation(ctx, conv)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	return created, nil
}

// GetConversation returns a conversation by id
func (uc *ConversationUsecase) GetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	return uc.conversationRepo.GetConversationByID(ctx, id)
}

// ListConversations returns a page of conversations
func (uc *ConversationUsecase) ListConversations(ctx context.Context, page, pageSize int) (*entity.Page[entity.Conversation], error) {
	return uc.conversationRepo.ListConversations(ctx, page, pageSize)
}

// UpdateConversation patches the mutable conversation fields
func (uc *ConversationUsecase) UpdateConversation(ctx context.Context, id string, req *entity.UpdateConversationRequest) (*entity.Conversation, error) {
	if err := uc.validator.ValidateUpdateConversation(req); err != nil {
		return nil, err
	}

	conv, err := uc.conversationRepo.GetConversationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		conv.Title = req.Title
	}
	if req.Goal != "" {
		conv.Goal = req.Goal
	}
	if len(req.Facts) > 0 {
		conv.Facts = req.Facts
	}
	conv.UpdatedAt = time.Now().UTC()

	return uc.conversationRepo.UpdateConversation(ctx, conv)
}

// AppendFact appends one accumulated fact to the conversation
func (uc *ConversationUsecase) AppendFact(ctx context.Context, id, fact string) error {
	if fact == "" {
		return fmt.Errorf("%w: fact", entity.ErrMissingField)
	}
	return uc.conversationRepo.AppendFact(ctx, id, fact)
}

// DeleteConversation removes a conversation. With deleteMessages set, the
// conversation's messages are removed first in a separate bulk delete; there
// is no cross-document transaction tying the two together.
func (uc *ConversationUsecase) DeleteConversation(ctx context.Context, id string, deleteMessages bool) error {
	if _, err := uc.conversationRepo.GetConversationByID(ctx, id); err != nil {
		return err
	}

	if deleteMessages {
		deleted, err := uc.messageRepo.DeleteByConversation(ctx, id)
		if err != nil {
			return fmt.Errorf("delete conversation messages: %w", err)
		}
		ctxzap.Info(ctx, "conversation messages deleted",
			zap.String("conversation_id", id),
			zap.Int64("deleted_count", deleted),
		)
	}

	return uc.conversationRepo.DeleteConversation(ctx, id)
}

// SendMessage creates a message and increments the conversation's count.
func (uc *ConversationUsecase) SendMessage(ctx context.Context, conversationID string, req *entity.SendMessageRequest) (*entity.Message, error) {
	if err := uc.validator.ValidateSendMessage(req); err != nil {
		return nil, err
	}

	if _, err := uc.conversationRepo.GetConversationByID(ctx, conversationID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	msg := entity.Message{
		ConversationID: conversationID,
		Sender:         req.Sender,
		Text:           req.Text,
		Type:           req.Type,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := uc.messageRepo.CreateMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if err := uc.conversationRepo.IncrementMessageCount(ctx, conversationID, 1); err != nil {
		// The message exists but the counter was not bumped. Known drift,
		// surfaced in the log instead of failing the send.
		ctxzap.Warn(ctx, "message count increment failed",
			zap.String("conversation_id", conversationID),
			zap.Error(err),
		)
	}

	return created, nil
}

// GetMessage returns a message by id
func (uc *ConversationUsecase) GetMessage(ctx context.Context, id string) (*entity.Message, error) {
	return uc.messageRepo.GetMessageByID(ctx, id)
}

// ListMessages returns a page of a conversation's messages in send order
func (uc *ConversationUsecase) ListMessages(ctx context.Context, conversationID string, page, pageSize int) (*entity.Page[entity.Message], error) {
	return uc.messageRepo.ListMessagesByConversation(ctx, conversationID, page, pageSize)
}

// DeleteMessage removes a message and decrements the conversation's count.
func (uc *ConversationUsecase) DeleteMessage(ctx context.Context, id string) error {
	msg, err := uc.messageRepo.GetMessageByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.messageRepo.DeleteMessage(ctx, id); err != nil {
		return err
	}

	if err := uc.conversationRepo.IncrementMessageCount(ctx, msg.ConversationID, -1); err != nil {
		ctxzap.Warn(ctx, "message count decrement failed",
			zap.String("conversation_id", msg.ConversationID),
			zap.Error(err),
		)
	}

	return nil
}
