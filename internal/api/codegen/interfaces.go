package codegen

import (
	"context"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
)

type CodegenUsecase interface {
	GenerateCode(ctx context.Context, req *entity.GenerateCodeRequest) (*entity.GenerateCodeResponse, error)
	GetGeneration(ctx context.Context, id string) (*entity.CodeGeneration, error)
	ListGenerations(ctx context.Context, userID, language string, page, pageSize int) (*entity.Page[entity.CodeGeneration], error)
	DeleteGeneration(ctx context.Context, id string) error

	ReviewCode(ctx context.Context, req *entity.ReviewCodeRequest) (*entity.ReviewCodeResponse, error)
	GetReview(ctx context.Context, id string) (*entity.CodeReview, error)
	ListReviews(ctx context.Context, userID string, page, pageSize int) (*entity.Page[entity.CodeReview], error)
	ListReviewsByScore(ctx context.Context, minScore, maxScore float64, page, pageSize int) (*entity.Page[entity.CodeReview], error)
	DeleteReview(ctx context.Context, id string) error

	CreateExecutionLog(ctx context.Context, req *entity.CreateExecutionLogRequest) (*entity.ExecutionLog, error)
	GetExecutionLog(ctx context.Context, id string) (*entity.ExecutionLog, error)
	ListExecutionLogs(ctx context.Context, userID string, status entity.ExecutionStatus, page, pageSize int) (*entity.Page[entity.ExecutionLog], error)
	UpdateExecutionStatus(ctx context.Context, id string, status entity.ExecutionStatus, output, execError string) error
	DeleteExecutionLog(ctx context.Context, id string) error

	CreateRequest(ctx context.Context, req *entity.CreateRequestRecord) (*entity.Request, error)
	GetRequest(ctx context.Context, id string) (*entity.Request, error)
	ListRequests(ctx context.Context, userID string, status entity.RequestStatus, page, pageSize int) (*entity.Page[entity.Request], error)
	UpdateRequestStatus(ctx context.Context, id string, req *entity.UpdateRequestStatus) (*entity.Request, error)
	DeleteRequest(ctx context.Context, id string) error
}
