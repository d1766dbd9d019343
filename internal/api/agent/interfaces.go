package agent

import (
	"context"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
)

type AgentUsecase interface {
	CreateSession(ctx context.Context, req *entity.CreateSessionRequest) (*entity.Session, error)
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)
	ListSessions(ctx context.Context, userID string, page, pageSize int) (*entity.Page[entity.Session], error)
	DeleteSession(ctx context.Context, sessionID string) error
	ProcessContext(ctx context.Context, sessionID string, req *entity.ProcessContextRequest) (*entity.AgentResponse, error)
	ProcessPrompt(ctx context.Context, sessionID string, req *entity.ProcessPromptRequest) (*entity.AgentResponse, error)
	HandleMessage(ctx context.Context, sessionID string, req *entity.SessionMessageRequest) (*entity.AgentResponse, error)
	AnalyzeCode(ctx context.Context, sessionID, model string) (*entity.AgentResponse, error)
	ClassifyIntent(ctx context.Context, req *entity.ClassifyIntentRequest) (*entity.Classification, error)
	ExportResult(ctx context.Context, sessionID string, format entity.ResultFormat) ([]byte, string, string, error)
}
