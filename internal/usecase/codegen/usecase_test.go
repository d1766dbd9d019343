package codegen

import (
	"context"
	"fmt"
	"testing"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/pkg/validator"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerationRepo struct {
	generations map[string]*entity.CodeGeneration
	nextID      int
}

var _ repository.GenerationRepository = &fakeGenerationRepo{}

func (r *fakeGenerationRepo) CreateGeneration(ctx context.Context, gen entity.CodeGeneration) (*entity.CodeGeneration, error) {
	r.nextID++
	gen.ID = fmt.Sprintf("gen-%d", r.nextID)
	stored := gen
	r.generations[gen.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeGenerationRepo) GetGenerationByID(ctx context.Context, id string) (*entity.CodeGeneration, error) {
	gen, ok := r.generations[id]
	if !ok {
		return nil, entity.ErrGenerationNotFound
	}
	copied := *gen
	return &copied, nil
}

func (r *fakeGenerationRepo) ListGenerations(ctx context.Context, userID, language string, page, pageSize int) (*entity.Page[entity.CodeGeneration], error) {
	var items []entity.CodeGeneration
	for _, g := range r.generations {
		if g.UserID == userID && (language == "" || g.Language == language) {
			items = append(items, *g)
		}
	}
	return &entity.Page[entity.CodeGeneration]{Items: items, Total: int64(len(items)), Page: 1, PageSize: pageSize}, nil
}

func (r *fakeGenerationRepo) DeleteGeneration(ctx context.Context, id string) error {
	if _, ok := r.generations[id]; !ok {
		return entity.ErrGenerationNotFound
	}
	delete(r.generations, id)
	return nil
}

type fakeReviewRepo struct {
	reviews map[string]*entity.CodeReview
	nextID  int
}

var _ repository.ReviewRepository = &fakeReviewRepo{}

func (r *fakeReviewRepo) CreateReview(ctx context.Context, review entity.CodeReview) (*entity.CodeReview, error) {
	r.nextID++
	review.ID = fmt.Sprintf("rev-%d", r.nextID)
	stored := review
	r.reviews[review.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeReviewRepo) GetReviewByID(ctx context.Context, id string) (*entity.CodeReview, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, entity.ErrReviewNotFound
	}
	copied := *review
	return &copied, nil
}

func (r *fakeReviewRepo) ListReviews(ctx context.Context, userID string, page, pageSize int) (*entity.Page[entity.CodeReview], error) {
	var items []entity.CodeReview
	for _, rv := range r.reviews {
		if rv.UserID == userID {
			items = append(items, *rv)
		}
	}
	return &entity.Page[entity.CodeReview]{Items: items, Total: int64(len(items)), Page: 1, PageSize: pageSize}, nil
}

func (r *fakeReviewRepo) ListReviewsByScoreRange(ctx context.Context, minScore, maxScore float64, page, pageSize int) (*entity.Page[entity.CodeReview], error) {
	var items []entity.CodeReview
	for _, rv := range r.reviews {
		if rv.OverallScore >= minScore && rv.OverallScore <= maxScore {
			items = append(items, *rv)
		}
	}
	return &entity.Page[entity.CodeReview]{Items: items, Total: int64(len(items)), Page: 1, PageSize: pageSize}, nil
}

func (r *fakeReviewRepo) DeleteReview(ctx context.Context, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return entity.ErrReviewNotFound
	}
	delete(r.reviews, id)
	return nil
}

type fakeExecutionRepo struct {
	logs   map[string]*entity.ExecutionLog
	nextID int
}

var _ repository.ExecutionLogRepository = &fakeExecutionRepo{}

func (r *fakeExecutionRepo) CreateExecutionLog(ctx context.Context, log entity.ExecutionLog) (*entity.ExecutionLog, error) {
	r.nextID++
	log.ID = fmt.Sprintf("exec-%d", r.nextID)
	stored := log
	r.logs[log.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeExecutionRepo) GetExecutionLogByID(ctx context.Context, id string) (*entity.ExecutionLog, error) {
	log, ok := r.logs[id]
	if !ok {
		return nil, entity.ErrExecutionLogNotFound
	}
	copied := *log
	return &copied, nil
}

func (r *fakeExecutionRepo) ListExecutionLogs(ctx context.Context, userID string, status entity.ExecutionStatus, page, pageSize int) (*entity.Page[entity.ExecutionLog], error) {
	var items []entity.ExecutionLog
	for _, l := range r.logs {
		if l.UserID == userID && (status == "" || l.Status == status) {
			items = append(items, *l)
		}
	}
	return &entity.Page[entity.ExecutionLog]{Items: items, Total: int64(len(items)), Page: 1, PageSize: pageSize}, nil
}

func (r *fakeExecutionRepo) UpdateExecutionStatus(ctx context.Context, id string, status entity.ExecutionStatus, output, execError string) error {
	log, ok := r.logs[id]
	if !ok {
		return entity.ErrExecutionLogNotFound
	}
	log.Status = status
	log.Output = output
	log.Error = execError
	return nil
}

func (r *fakeExecutionRepo) DeleteExecutionLog(ctx context.Context, id string) error {
	if _, ok := r.logs[id]; !ok {
		return entity.ErrExecutionLogNotFound
	}
	delete(r.logs, id)
	return nil
}

type fakeRequestRepo struct {
	requests map[string]*entity.Request
	nextID   int
}

var _ repository.RequestRepository = &fakeRequestRepo{}

func (r *fakeRequestRepo) CreateRequest(ctx context.Context, req entity.Request) (*entity.Request, error) {
	r.nextID++
	req.ID = fmt.Sprintf("req-%d", r.nextID)
	stored := req
	r.requests[req.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeRequestRepo) GetRequestByID(ctx context.Context, id string) (*entity.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, entity.ErrRequestNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *fakeRequestRepo) ListRequests(ctx context.Context, userID string, status entity.RequestStatus, page, pageSize int) (*entity.Page[entity.Request], error) {
	var items []entity.Request
	for _, rq := range r.requests {
		if rq.UserID == userID && (status == "" || rq.Status == status) {
			items = append(items, *rq)
		}
	}
	return &entity.Page[entity.Request]{Items: items, Total: int64(len(items)), Page: 1, PageSize: pageSize}, nil
}

func (r *fakeRequestRepo) UpdateRequestStatus(ctx context.Context, id string, status entity.RequestStatus, resultID, errorMessage string) (*entity.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, entity.ErrRequestNotFound
	}
	req.Status = status
	req.ResultID = resultID
	req.ErrorMessage = errorMessage
	copied := *req
	return &copied, nil
}

func (r *fakeRequestRepo) DeleteRequest(ctx context.Context, id string) error {
	if _, ok := r.requests[id]; !ok {
		return entity.ErrRequestNotFound
	}
	delete(r.requests, id)
	return nil
}

func newTestUsecase(oracle Oracle) (*CodegenUsecase, *fakeGenerationRepo, *fakeReviewRepo, *fakeExecutionRepo, *fakeRequestRepo) {
	genRepo := &fakeGenerationRepo{generations: map[string]*entity.CodeGeneration{}}
	revRepo := &fakeReviewRepo{reviews: map[string]*entity.CodeReview{}}
	execRepo := &fakeExecutionRepo{logs: map[string]*entity.ExecutionLog{}}
	reqRepo := &fakeRequestRepo{requests: map[string]*entity.Request{}}

	uc := NewUsecase(
		genRepo,
		revRepo,
		execRepo,
		reqRepo,
		NewGenerator(oracle),
		NewReviewer(oracle),
		validator.NewValidator(),
		zap.NewNop(),
	)
	return uc, genRepo, revRepo, execRepo, reqRepo
}

func TestGenerateCode_PersistsArtifact(t *testing.T) {
	oracle := &stubOracle{reply: "```python\nx = 1\n```\nAssigns one."}
	uc, genRepo, _, _, _ := newTestUsecase(oracle)

	resp, err := uc.GenerateCode(context.Background(), &entity.GenerateCodeRequest{
		UserID:   "u1",
		Prompt:   "assign x",
		Language: "python",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "x = 1", resp.GeneratedCode)
	assert.Equal(t, "Assigns one.", resp.Explanation)

	stored, ok := genRepo.generations[resp.ID]
	require.True(t, ok)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, "assign x", stored.Prompt)
}

func TestGenerateCode_FailedCallIsStillPersisted(t *testing.T) {
	oracle := &stubOracle{err: fmt.Errorf("provider down")}
	uc, genRepo, _, _, _ := newTestUsecase(oracle)

	resp, err := uc.GenerateCode(context.Background(), &entity.GenerateCodeRequest{
		UserID:   "u1",
		Prompt:   "assign x",
		Language: "python",
	})
	require.NoError(t, err, "a failed provider call is an artifact, not an error")

	assert.False(t, resp.Success)
	assert.Contains(t, resp.ErrorMessage, "provider down")
	assert.Empty(t, resp.GeneratedCode)

	stored := genRepo.generations[resp.ID]
	assert.False(t, stored.Success)
	assert.NotEmpty(t, stored.ErrorMessage)
}

func TestGenerateCode_ValidationRejectsEmptyPrompt(t *testing.T) {
	uc, genRepo, _, _, _ := newTestUsecase(&stubOracle{})

	_, err := uc.GenerateCode(context.Background(), &entity.GenerateCodeRequest{
		UserID:   "u1",
		Language: "python",
	})
	assert.Error(t, err)
	assert.True(t, entity.IsValidation(err))
	assert.Empty(t, genRepo.generations, "nothing is persisted on validation failure")
}

func TestReviewCode_PersistsParsedVerdict(t *testing.T) {
	oracle := &stubOracle{reply: "Score: 8.5\nThere is a bug on line 3.\nI suggest a guard clause."}
	uc, _, revRepo, _, _ := newTestUsecase(oracle)

	resp, err := uc.ReviewCode(context.Background(), &entity.ReviewCodeRequest{
		UserID:   "u1",
		Code:     "x = 1",
		Language: "python",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 8.5, resp.OverallScore)
	require.Len(t, resp.Issues, 1)
	require.Len(t, resp.Improvements, 1)

	stored := revRepo.reviews[resp.ID]
	assert.Equal(t, "general", stored.ReviewType, "empty review type defaults to general")
	assert.Equal(t, 8.5, stored.OverallScore)
}

func TestListReviewsByScore_RejectsInvertedRange(t *testing.T) {
	uc, _, _, _, _ := newTestUsecase(&stubOracle{})

	_, err := uc.ListReviewsByScore(context.Background(), 9, 2, 1, 20)
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestExecutionLogLifecycle(t *testing.T) {
	uc, _, _, execRepo, _ := newTestUsecase(&stubOracle{})

	log, err := uc.CreateExecutionLog(context.Background(), &entity.CreateExecutionLogRequest{
		UserID:   "u1",
		Code:     "x = 1",
		Language: "python",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ExecutionStatusPending, log.Status, "status defaults to pending")

	require.NoError(t, uc.UpdateExecutionStatus(context.Background(), log.ID, entity.ExecutionStatusSuccess, "ok", ""))
	assert.Equal(t, entity.ExecutionStatusSuccess, execRepo.logs[log.ID].Status)

	err = uc.UpdateExecutionStatus(context.Background(), log.ID, entity.ExecutionStatus("bogus"), "", "")
	assert.Error(t, err)
	assert.True(t, entity.IsValidation(err))
}

func TestRequestLifecycle(t *testing.T) {
	uc, _, _, _, reqRepo := newTestUsecase(&stubOracle{})

	record, err := uc.CreateRequest(context.Background(), &entity.CreateRequestRecord{
		UserID:      "u1",
		RequestType: "generate",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusPending, record.Status)

	updated, err := uc.UpdateRequestStatus(context.Background(), record.ID, &entity.UpdateRequestStatus{
		Status:   entity.RequestStatusCompleted,
		ResultID: "gen-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusCompleted, updated.Status)
	assert.Equal(t, "gen-1", reqRepo.requests[record.ID].ResultID)
}
