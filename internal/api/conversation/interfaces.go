package conversation

import (
	"context"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
)

type ConversationUsecase interface {
	CreateConversation(ctx context.Context, req *entity.CreateConversationRequest) (*entity.Conversation, error)
	GetConversation(ctx context.Context, id string) (*entity.Conversation, error)
	ListConversations(ctx context.Context, page, pageSize int) (*entity.Page[entity.Conversation], error)
	UpdateConversation(ctx context.Context, id string, req *entity.UpdateConversationRequest) (*entity.Conversation, error)
	AppendFact(ctx context.Context, id, fact string) error
	DeleteConversation(ctx context.Context, id string, deleteMessages bool) error

	SendMessage(ctx context.Context, conversationID string, req *entity.SendMessageRequest) (*entity.Message, error)
	GetMessage(ctx context.Context, id string) (*entity.Message, error)
	ListMessages(ctx context.Context, conversationID string, page, pageSize int) (*entity.Page[entity.Message], error)
	DeleteMessage(ctx context.Context, id string) error
}
