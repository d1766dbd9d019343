package codegen

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

// CodegenUsecase implements standalone generation, review, execution log and
// request record flows. Failed provider calls are persisted as failed
// artifacts, never dropped.
type CodegenUsecase struct {
	generationRepo repository.GenerationRepository
	reviewRepo     repository.ReviewRepository
	executionRepo  repository.ExecutionLogRepository
	requestRepo    repository.RequestRepository
	generator      *Generator
	reviewer       *Reviewer
	validator      *validator.Validator
	logger         *zap.Logger
}

// NewUsecase creates a new codegen use case
func NewUsecase(
	generationRepo repository.GenerationRepository,
	reviewRepo repository.ReviewRepository,
	executionRepo repository.ExecutionLogRepository,
	requestRepo repository.RequestRepository,
	generator *Generator,
	reviewer *Reviewer,
	validator *validator.Validator,
	logger *zap.Logger,
) *CodegenUsecase {
	return &CodegenUsecase{
		generationRepo: generationRepo,
		reviewRepo:     reviewRepo,
		executionRepo:  executionRepo,
		requestRepo:    requestRepo,
		generator:      generator,
		reviewer:       reviewer,
		validator:      validator,
		logger:         logger,
	}
}

// GenerateCode runs one generation call and persists the artifact.
func (uc *CodegenUsecase) GenerateCode(ctx context.Context, req *entity.GenerateCodeRequest) (*entity.GenerateCodeResponse, error) {
	if err := uc.validator.ValidateGenerateCode(req); err != nil {
		return nil, err
	}

	artifact := entity.CodeGeneration{
		UserID:            req.UserID,
		Prompt:            req.Prompt,
		Language:          req.Language,
		Framework:         req.Framework,
		AdditionalContext: req.AdditionalContext,
		Model:             req.Model,
		CreatedAt:         time.Now().UTC(),
	}

	code, explanation, genErr := uc.generator.Generate(ctx, req)
	if genErr != nil {
		artifact.Success = false
		artifact.ErrorMessage = genErr.Error()
	} else {
		artifact.Success = true
		artifact.GeneratedCode = code
		artifact.Explanation = explanation
	}

	saved, err := uc.generationRepo.CreateGeneration(ctx, artifact)
	if err != nil {
		return nil, fmt.Errorf("persist generation: %w", err)
	}

	ctxzap.Info(ctx, "generation persisted",
		zap.String("generation_id", saved.ID),
		zap.Bool("success", saved.Success),
	)

	return &entity.GenerateCodeResponse{
		ID:            saved.ID,
		GeneratedCode: saved.GeneratedCode,
		Explanation:   saved.Explanation,
		Language:      saved.Language,
		Model:         saved.Model,
		Success:       saved.Success,
		ErrorMessage:  saved.ErrorMessage,
		Timestamp:     saved.CreatedAt,
	}, nil
}

// GetGeneration returns a generation artifact by id
func (uc *CodegenUsecase) GetGeneration(ctx context.Context, id string) (*entity.CodeGeneration, error) {
	return uc.generationRepo.GetGenerationByID(ctx, id)
}

// ListGenerations returns a page of generation artifacts
func (uc *CodegenUsecase) ListGenerations(ctx context.Context, userID, language string, page, pageSize int) (*entity.Page[entity.CodeGeneration], error) {
	return uc.generationRepo.ListGenerations(ctx, userID, language, page, pageSize)
}

// DeleteGeneration removes a generation artifact
func (uc *CodegenUsecase) DeleteGeneration(ctx context.Context, id string) error {
	return uc.generationRepo.DeleteGeneration(ctx, id)
}

// ReviewCode runs one review call and persists the artifact.
func (uc *CodegenUsecase) ReviewCode(ctx context.Context, req *entity.ReviewCodeRequest) (*entity.ReviewCodeResponse, error) {
	if err := uc.validator.ValidateReviewCode(req); err != nil {
		return nil, err
	}

	reviewType := req.ReviewType
	if reviewType == "" {
		reviewType = "general"
	}

	artifact := entity.CodeReview{
		UserID:       req.UserID,
		GenerationID: req.GenerationID,
		Code:         req.Code,
		Language:     req.Language,
		ReviewType:   reviewType,
		Model:        req.Model,
		Issues:       []entity.ReviewIssue{},
		Improvements: []string{},
		CreatedAt:    time.Now().UTC(),
	}

	result, revErr := uc.reviewer.Review(ctx, req.Code, req.Language, reviewType, req.Model)
	if revErr != nil {
		artifact.Success = false
		artifact.ErrorMessage = revErr.Error()
	} else {
		artifact.Success = true
		artifact.OverallScore = result.Score
		artifact.Issues = result.Issues
		artifact.Summary = result.Summary
		artifact.Improvements = result.Improvements
	}

	saved, err := uc.reviewRepo.CreateReview(ctx, artifact)
	if err != nil {
		return nil, fmt.Errorf("persist review: %w", err)
	}

	ctxzap.Info(ctx, "review persisted",
		zap.String("review_id", saved.ID),
		zap.Bool("success", saved.Success),
		zap.Float64("score", saved.OverallScore),
	)

	return &entity.ReviewCodeResponse{
		ID:           saved.ID,
		OverallScore: saved.OverallScore,
		Issues:       saved.Issues,
		Summary:      saved.Summary,
		Improvements: saved.Improvements,
		Success:      saved.Success,
		ErrorMessage: saved.ErrorMessage,
		Timestamp:    saved.CreatedAt,
	}, nil
}

// GetReview returns a review artifact by id
func (uc *CodegenUsecase) GetReview(ctx context.Context, id string) (*entity.CodeReview, error) {
	return uc.reviewRepo.GetReviewByID(ctx, id)
}

// ListReviews returns a page of review artifacts
func (uc *CodegenUsecase) ListReviews(ctx context.Context, userID string, page, pageSize int) (*entity.Page[entity.CodeReview], error) {
	return uc.reviewRepo.ListReviews(ctx, userID, page, pageSize)
}

// ListReviewsByScore returns reviews whose overall score falls in [min, max]
func (uc *CodegenUsecase) ListReviewsByScore(ctx context.Context, minScore, maxScore float64, page, pageSize int) (*entity.Page[entity.CodeReview], error) {
	if minScore > maxScore {
		return nil, fmt.Errorf("%w: min_score greater than max_score", entity.ErrInvalidParameter)
	}
	return uc.reviewRepo.ListReviewsByScoreRange(ctx, minScore, maxScore, page, pageSize)
}

// DeleteReview removes a review artifact
func (uc *CodegenUsecase) DeleteReview(ctx context.Context, id string) error {
	return uc.reviewRepo.DeleteReview(ctx, id)
}

// CreateExecutionLog records one execution of generated code.
func (uc *CodegenUsecase) CreateExecutionLog(ctx context.Context, req *entity.CreateExecutionLogRequest) (*entity.ExecutionLog, error) {
	if err := uc.validator.ValidateCreateExecutionLog(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = entity.ExecutionStatusPending
	}

	log := entity.ExecutionLog{
		UserID:        req.UserID,
		GenerationID:  req.GenerationID,
		Code:          req.Code,
		Language:      req.Language,
		Output:        req.Output,
		Error:         req.Error,
		ExecutionTime: req.ExecutionTime,
		Status:        status,
		CreatedAt:     time.Now().UTC(),
	}

	return uc.executionRepo.CreateExecutionLog(ctx, log)
}

// GetExecutionLog returns an execution log by id
func (uc *CodegenUsecase) GetExecutionLog(ctx context.Context, id string) (*entity.ExecutionLog, error) {
	return uc.executionRepo.GetExecutionLogByID(ctx, id)
}

// ListExecutionLogs returns a page of execution logs
func (uc *CodegenUsecase) ListExecutionLogs(ctx context.Context, userID string, status entity.ExecutionStatus, page, pageSize int) (*entity.Page[entity.ExecutionLog], error) {
	return uc.executionRepo.ListExecutionLogs(ctx, userID, status, page, pageSize)
}

// UpdateExecutionStatus transitions an execution log to its final status.
func (uc *CodegenUsecase) UpdateExecutionStatus(ctx context.Context, id string, status entity.ExecutionStatus, output, execError string) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: status %q", entity.ErrInvalidParameter, status)
	}
	return uc.executionRepo.UpdateExecutionStatus(ctx, id, status, output, execError)
}

// DeleteExecutionLog removes an execution log
func (uc *CodegenUsecase) DeleteExecutionLog(ctx context.Context, id string) error {
	return uc.executionRepo.DeleteExecutionLog(ctx, id)
}

// CreateRequest records an inbound request for auditing.
func (uc *CodegenUsecase) CreateRequest(ctx context.Context, req *entity.CreateRequestRecord) (*entity.Request, error) {
	if err := uc.validator.ValidateCreateRequest(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := entity.Request{
		UserID:      req.UserID,
		RequestType: req.RequestType,
		Status:      entity.RequestStatusPending,
		Data:        req.Data,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return uc.requestRepo.CreateRequest(ctx, record)
}

// GetRequest returns a request record by id
func (uc *CodegenUsecase) GetRequest(ctx context.Context, id string) (*entity.Request, error) {
	return uc.requestRepo.GetRequestByID(ctx, id)
}

// ListRequests returns a page of request records
func (uc *CodegenUsecase) ListRequests(ctx context.Context, userID string, status entity.RequestStatus, page, pageSize int) (*entity.Page[entity.Request], error) {
	return uc.requestRepo.ListRequests(ctx, userID, status, page, pageSize)
}

// UpdateRequestStatus transitions a request record and links its result.
func (uc *CodegenUsecase) UpdateRequestStatus(ctx context.Context, id string, req *entity.UpdateRequestStatus) (*entity.Request, error) {
	if err := uc.validator.ValidateUpdateRequestStatus(req); err != nil {
		return nil, err
	}
	return uc.requestRepo.UpdateRequestStatus(ctx, id, req.Status, req.ResultID, req.ErrorMessage)
}

// DeleteRequest removes a request record
func (uc *CodegenUsecase) DeleteRequest(ctx context.Context, id string) error {
	return uc.requestRepo.DeleteRequest(ctx, id)
}
