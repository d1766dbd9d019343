package agent

import (
	"context"
	"fmt"
	"testing"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/config"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/pkg/formatter"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/pkg/validator"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSessionRepo keeps sessions in a map, enough for workflow tests.
type fakeSessionRepo struct {
	sessions map[string]*entity.Session
	nextID   int
}

var _ repository.SessionRepository = &fakeSessionRepo{}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*entity.Session{}}
}

func (r *fakeSessionRepo) CreateSession(ctx context.Context, session entity.Session) (*entity.Session, error) {
	r.nextID++
	session.ID = fmt.Sprintf("session-%d", r.nextID)
	stored := session
	r.sessions[session.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeSessionRepo) GetSessionByID(ctx context.Context, id string) (*entity.Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) UpdateSession(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	if _, ok := r.sessions[session.ID]; !ok {
		return nil, entity.ErrSessionNotFound
	}
	stored := *session
	r.sessions[session.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeSessionRepo) UpdateSessionStep(ctx context.Context, id string, step entity.WorkflowStep) error {
	session, ok := r.sessions[id]
	if !ok {
		return entity.ErrSessionNotFound
	}
	session.CurrentStep = step
	return nil
}

func (r *fakeSessionRepo) ListSessionsByUser(ctx context.Context, userID string, page, pageSize int) (*entity.Page[entity.Session], error) {
	var items []entity.Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			items = append(items, *s)
		}
	}
	return &entity.Page[entity.Session]{Items: items, Total: int64(len(items)), Page: 1, PageSize: pageSize}, nil
}

func (r *fakeSessionRepo) DeleteSession(ctx context.Context, id string) error {
	if _, ok := r.sessions[id]; !ok {
		return entity.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// scriptedGenerator returns a fixed code artifact.
type scriptedGenerator struct {
	code        string
	explanation string
	err         error
	calls       int
	lastReq     *entity.GenerateCodeRequest
}

func (g *scriptedGenerator) Generate(ctx context.Context, req *entity.GenerateCodeRequest) (string, string, error) {
	g.calls++
	g.lastReq = req
	return g.code, g.explanation, g.err
}

func newTestUsecase(repo *fakeSessionRepo, oracle Oracle, gen CodeGenerator) *AgentUsecase {
	return NewUsecase(
		repo,
		NewExtractor(oracle),
		NewClassifier(oracle),
		gen,
		oracle,
		formatter.NewFactory(),
		validator.NewValidator(),
		config.AgentConfig{MaxRefineTurns: 5, DefaultLanguage: "python"},
		zap.NewNop(),
	)
}

func createTestSession(t *testing.T, uc *AgentUsecase) *entity.Session {
	t.Helper()
	session, err := uc.CreateSession(context.Background(), &entity.CreateSessionRequest{UserID: "u1"})
	require.NoError(t, err)
	require.Equal(t, entity.StepIdle, session.CurrentStep)
	return session
}

func TestProcessContext_CompleteRequirementGeneratesImmediately(t *testing.T) {
	repo := newFakeSessionRepo()
	oracle := &stubOracle{replies: []string{
		`{"function_name": "add", "purpose": "adds two numbers", "inputs": [{"name": "a", "type": "int"}, {"name": "b", "type": "int"}], "core_logic": ["return a + b"], "outputs": {"type": "int", "description": "sum"}}`,
	}}
	gen := &scriptedGenerator{code: "def add(a, b):\n    return a + b", explanation: "Adds the arguments."}
	uc := newTestUsecase(repo, oracle, gen)

	session := createTestSession(t, uc)

	resp, err := uc.ProcessContext(context.Background(), session.ID, &entity.ProcessContextRequest{
		ContextText: "I need a function that adds two numbers a and b",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, entity.StepCompleted, resp.CurrentStep)
	assert.Equal(t, gen.code, resp.GeneratedCode)
	assert.Empty(t, resp.NextQuestion)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "python", gen.lastReq.Language, "language falls back to the configured default")

	stored, err := uc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepCompleted, stored.CurrentStep)
	require.Len(t, stored.CodeHistory, 1)
	assert.Equal(t, gen.code, stored.CodeHistory[0].Code)
}

func TestProcessContext_IncompleteRequirementAsksQuestion(t *testing.T) {
	repo := newFakeSessionRepo()
	oracle := &stubOracle{replies: []string{
		`{"function_name": null, "purpose": null, "inputs": [], "core_logic": [], "outputs": null}`,
	}}
	gen := &scriptedGenerator{}
	uc := newTestUsecase(repo, oracle, gen)

	session := createTestSession(t, uc)

	resp, err := uc.ProcessContext(context.Background(), session.ID, &entity.ProcessContextRequest{
		ContextText: "I need some code",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, entity.StepParsingContext, resp.CurrentStep)
	assert.NotEmpty(t, resp.NextQuestion)
	assert.Zero(t, gen.calls, "generation must wait for a complete requirement")

	stored, err := uc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.FieldFunctionName, stored.PendingField)
}

func TestProcessContext_ExtractionFailureFailsSession(t *testing.T) {
	repo := newFakeSessionRepo()
	oracle := &stubOracle{replies: []string{`{"function_name": "add", }`}}
	uc := newTestUsecase(repo, oracle, &scriptedGenerator{})

	session := createTestSession(t, uc)

	resp, err := uc.ProcessContext(context.Background(), session.ID, &entity.ProcessContextRequest{
		ContextText: "do something",
	})
	require.NoError(t, err, "a step failure is reported in the body, not as an error")

	assert.False(t, resp.Success)
	assert.Equal(t, entity.StepError, resp.CurrentStep)
	assert.NotEmpty(t, resp.ErrorMessage)

	stored, err := uc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepError, stored.CurrentStep)
}

func TestProcessContext_ConversationalInputIsChitchat(t *testing.T) {
	repo := newFakeSessionRepo()
	oracle := &stubOracle{replies: []string{"I cannot find a requirement in that."}}
	gen := &scriptedGenerator{}
	uc := newTestUsecase(repo, oracle, gen)

	session := createTestSession(t, uc)

	resp, err := uc.ProcessContext(context.Background(), session.ID, &entity.ProcessContextRequest{
		ContextText: "hello there",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, entity.IntentChitchat, resp.Intent)
	assert.Equal(t, entity.StepIdle, resp.CurrentStep)
	assert.NotEmpty(t, resp.Message)
	assert.Zero(t, gen.calls, "chitchat never reaches generation")

	stored, err := uc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepIdle, stored.CurrentStep, "the session is ready for a fresh attempt")
}

func TestHandleMessage_SlotFillingRoundTrip(t *testing.T) {
	repo := newFakeSessionRepo()
	oracle := &stubOracle{replies: []string{
		`{"function_name": "greet", "purpose": null, "inputs": [], "core_logic": [], "outputs": null}`,
	}}
	gen := &scriptedGenerator{code: "def greet(name):\n    print(name)"}
	uc := newTestUsecase(repo, oracle, gen)

	session := createTestSession(t, uc)

	resp, err := uc.ProcessContext(context.Background(), session.ID, &entity.ProcessContextRequest{
		ContextText: "a greeting function called greet",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.NextQuestion)

	// Answer the purpose question.
	resp, err = uc.HandleMessage(context.Background(), session.ID, &entity.SessionMessageRequest{
		Text: "it should print a friendly greeting",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.NextQuestion, "still missing inputs and core logic")

	// Answer the inputs question; purpose plus inputs completes the requirement.
	resp, err = uc.HandleMessage(context.Background(), session.ID, &entity.SessionMessageRequest{
		Text: "name, salutation",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, entity.StepCompleted, resp.CurrentStep)
	assert.Equal(t, gen.code, resp.GeneratedCode)

	stored, err := uc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Requirement.Function)
	assert.Len(t, stored.Requirement.Function.Inputs, 2, "comma answer splits into two params")
	assert.Empty(t, stored.PendingField)
}

func TestHandleMessage_RefinementLimit(t *testing.T) {
	repo := newFakeSessionRepo()
	oracle := &stubOracle{}
	uc := newTestUsecase(repo, oracle, &scriptedGenerator{})

	session := createTestSession(t, uc)
	stored := repo.sessions[session.ID]
	stored.Requirement = &entity.Requirement{GoalKind: entity.GoalFunction, Function: &entity.FunctionSpec{}}
	stored.PendingField = entity.FieldPurpose
	stored.RefineTurns = 5

	resp, err := uc.HandleMessage(context.Background(), session.ID, &entity.SessionMessageRequest{Text: "more detail"})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, entity.StepError, resp.CurrentStep)
	assert.Contains(t, resp.ErrorMessage, "limit")
}

func TestProcessPrompt_ClassificationFailureIsAdvisory(t *testing.T) {
	repo := newFakeSessionRepo()
	oracle := &stubOracle{err: fmt.Errorf("provider down")}
	gen := &scriptedGenerator{code: "print('hi')"}
	uc := newTestUsecase(repo, oracle, gen)

	session := createTestSession(t, uc)

	resp, err := uc.ProcessPrompt(context.Background(), session.ID, &entity.ProcessPromptRequest{
		Prompt: "print hi",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success, "generation proceeds despite classification failure")
	assert.Equal(t, entity.IntentUnknown, resp.Intent)
	assert.Equal(t, gen.code, resp.GeneratedCode)
}

func TestProcessPrompt_RecordsIntentAndHistory(t *testing.T) {
	repo := newFakeSessionRepo()
	oracle := &stubOracle{replies: []string{"INTENT: CREATE_NEW\nCONFIDENCE: 0.9\nREASONING: new code"}}
	gen := &scriptedGenerator{code: "x = 1"}
	uc := newTestUsecase(repo, oracle, gen)

	session := createTestSession(t, uc)

	resp, err := uc.ProcessPrompt(context.Background(), session.ID, &entity.ProcessPromptRequest{
		Prompt: "write x = 1", Language: "python",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.IntentCreateNew, resp.Intent)

	stored, err := uc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.IntentCreateNew, stored.LastIntent)
	assert.Equal(t, "write x = 1", stored.LastPrompt)
	require.Len(t, stored.CodeHistory, 1)
}

func TestAnalyzeCode_RequiresHistory(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := newTestUsecase(repo, &stubOracle{}, &scriptedGenerator{})

	session := createTestSession(t, uc)

	_, err := uc.AnalyzeCode(context.Background(), session.ID, "")
	assert.ErrorIs(t, err, entity.ErrNoCodeToAnalyze)
}

func TestAnalyzeCode_UsesLatestEntry(t *testing.T) {
	repo := newFakeSessionRepo()
	oracle := &stubOracle{replies: []string{"The code prints a value. Strengths: simple."}}
	uc := newTestUsecase(repo, oracle, &scriptedGenerator{})

	session := createTestSession(t, uc)
	stored := repo.sessions[session.ID]
	stored.AddCodeToHistory("x = 1", "python", "first")
	stored.AddCodeToHistory("y = 2", "python", "second")

	resp, err := uc.AnalyzeCode(context.Background(), session.ID, "")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.CodeAnalysis)
	require.Len(t, oracle.prompts, 1)
	assert.Contains(t, oracle.prompts[0], "y = 2", "analysis targets the latest history entry")
}

func TestExportResult_Markdown(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := newTestUsecase(repo, &stubOracle{}, &scriptedGenerator{})

	session := createTestSession(t, uc)
	stored := repo.sessions[session.ID]
	stored.AddCodeToHistory("x = 1", "python", "assignment")

	data, contentType, filename, err := uc.ExportResult(context.Background(), session.ID, entity.FormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, string(data), "x = 1")
	assert.Equal(t, "text/markdown; charset=utf-8", contentType)
	assert.Equal(t, "session-"+session.ID+".md", filename)
}

func TestExportResult_InvalidFormat(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := newTestUsecase(repo, &stubOracle{}, &scriptedGenerator{})

	session := createTestSession(t, uc)

	_, _, _, err := uc.ExportResult(context.Background(), session.ID, entity.ResultFormat("xml"))
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}
