package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/config"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/pkg/formatter"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/pkg/logger"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/pkg/validator"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const analysisPromptTemplate = "Analyze the following code and produce a short summary:\n\n```%s\n%s\n```\n\nPlease provide:\n1. Main functionality description\n2. Strengths\n3. Areas for improvement (if any)\n4. Complexity estimate\n"

// AgentUsecase owns per-session workflow state and sequences extraction,
// slot-filling, classification and generation. A failed step moves the
// session to the error state; writes made by earlier steps are kept.
type AgentUsecase struct {
	sessionRepo      repository.SessionRepository
	extractor        *Extractor
	classifier       *Classifier
	generator        CodeGenerator
	oracle           Oracle
	formatterFactory *formatter.Factory
	validator        *validator.Validator
	cfg              config.AgentConfig
	logger           *zap.Logger
}

// NewUsecase creates a new agent use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	extractor *Extractor,
	classifier *Classifier,
	generator CodeGenerator,
	oracle Oracle,
	formatterFactory *formatter.Factory,
	validator *validator.Validator,
	cfg config.AgentConfig,
	logger *zap.Logger,
) *AgentUsecase {
	return &AgentUsecase{
		sessionRepo:      sessionRepo,
		extractor:        extractor,
		classifier:       classifier,
		generator:        generator,
		oracle:           oracle,
		formatterFactory: formatterFactory,
		validator:        validator,
		cfg:              cfg,
		logger:           logger,
	}
}

// CreateSession creates an idle session for the user
func (uc *AgentUsecase) CreateSession(ctx context.Context, req *entity.CreateSessionRequest) (*entity.Session, error) {
	if err := uc.validator.ValidateCreateSession(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := entity.Session{
		UserID:      req.UserID,
		CurrentStep: entity.StepIdle,
		Metadata:    req.Metadata,
		CodeHistory: []entity.CodeEntry{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := uc.sessionRepo.CreateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return created, nil
}

// GetSession returns a session by id
func (uc *AgentUsecase) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	return uc.sessionRepo.GetSessionByID(ctx, sessionID)
}

// ListSessions returns a page of the user's sessions
func (uc *AgentUsecase) ListSessions(ctx context.Context, userID string, page, pageSize int) (*entity.Page[entity.Session], error) {
	return uc.sessionRepo.ListSessionsByUser(ctx, userID, page, pageSize)
}

// DeleteSession removes a session
func (uc *AgentUsecase) DeleteSession(ctx context.Context, sessionID string) error {
	return uc.sessionRepo.DeleteSession(ctx, sessionID)
}

// ProcessContext runs the extraction flow: parse the raw context into a
// structured requirement, then either generate code right away or start
// slot-filling with the first follow-up question.
func (uc *AgentUsecase) ProcessContext(ctx context.Context, sessionID string, req *entity.ProcessContextRequest) (*entity.AgentResponse, error) {
	if err := uc.validator.ValidateProcessContext(req); err != nil {
		return nil, err
	}

	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithSessionID(ctx, sessionID)
	uc.updateStep(ctx, session, entity.StepParsingContext)

	requirement, err := uc.extractor.Extract(ctx, req.ContextText, req.Model)
	if err != nil {
		if errors.Is(err, entity.ErrNoJSONLocated) {
			return uc.chitchatReply(ctx, session)
		}
		uc.failSession(ctx, session)
		return uc.failure(session, "Failed to parse context", err), nil
	}

	session.Requirement = requirement
	session.RefineTurns = 0

	if !requirement.IsComplete() {
		return uc.askNextQuestion(ctx, session)
	}

	return uc.generateFromRequirement(ctx, session, req.Model, req.Language)
}

// HandleMessage continues slot-filling when a question is pending, otherwise
// treats the message as fresh context.
func (uc *AgentUsecase) HandleMessage(ctx context.Context, sessionID string, req *entity.SessionMessageRequest) (*entity.AgentResponse, error) {
	if err := uc.validator.ValidateSessionMessage(req); err != nil {
		return nil, err
	}

	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithSessionID(ctx, sessionID)

	if session.PendingField == "" || session.Requirement == nil {
		return uc.ProcessContext(ctx, sessionID, &entity.ProcessContextRequest{
			ContextText: req.Text,
			Model:       req.Model,
		})
	}

	if session.RefineTurns >= uc.cfg.MaxRefineTurns {
		uc.failSession(ctx, session)
		return uc.failure(session, "Refinement turn limit reached", entity.ErrRefinementLimit), nil
	}

	ApplyAnswer(session.Requirement, session.PendingField, req.Text)
	session.RefineTurns++
	session.PendingField = ""

	if !session.Requirement.IsComplete() {
		return uc.askNextQuestion(ctx, session)
	}

	return uc.generateFromRequirement(ctx, session, req.Model, "")
}

// ProcessPrompt runs the classify-then-generate flow for a follow-up prompt.
func (uc *AgentUsecase) ProcessPrompt(ctx context.Context, sessionID string, req *entity.ProcessPromptRequest) (*entity.AgentResponse, error) {
	if err := uc.validator.ValidateProcessPrompt(req); err != nil {
		return nil, err
	}

	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithSessionID(ctx, sessionID)
	uc.updateStep(ctx, session, entity.StepClassifyingIntent)

	classification, err := uc.classifier.Classify(ctx, req.Prompt, uc.requirementJSON(session), req.Model)
	if err != nil {
		// Classification is advisory for this flow; generation proceeds with
		// an unknown intent.
		ctxzap.Warn(ctx, "intent classification failed", zap.Error(err))
		classification = &entity.Classification{Intent: entity.IntentUnknown, Confidence: 0}
	}

	uc.updateStep(ctx, session, entity.StepGeneratingCode)

	language := req.Language
	if language == "" {
		language = uc.cfg.DefaultLanguage
	}

	code, explanation, err := uc.generator.Generate(ctx, &entity.GenerateCodeRequest{
		UserID:            session.UserID,
		Prompt:            req.Prompt,
		Language:          language,
		AdditionalContext: uc.requirementJSON(session),
		Model:             req.Model,
	})
	if err != nil {
		uc.failSession(ctx, session)
		return uc.failure(session, "Code generation failed", err), nil
	}

	session.AddCodeToHistory(code, language, req.Prompt)
	session.LastIntent = classification.Intent
	session.LastPrompt = req.Prompt
	session.CurrentStep = entity.StepCompleted
	if _, err := uc.sessionRepo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	return &entity.AgentResponse{
		SessionID:     session.ID,
		CurrentStep:   entity.StepCompleted,
		Intent:        classification.Intent,
		GeneratedCode: code,
		Explanation:   explanation,
		Requirement:   session.Requirement,
		Success:       true,
		Message:       "Code generated successfully",
		Timestamp:     time.Now().UTC(),
	}, nil
}

// ClassifyIntent exposes the classifier as a standalone operation. When a
// session id is supplied its requirement is passed as classification context.
func (uc *AgentUsecase) ClassifyIntent(ctx context.Context, req *entity.ClassifyIntentRequest) (*entity.Classification, error) {
	if err := uc.validator.ValidateClassifyIntent(req); err != nil {
		return nil, err
	}

	contextJSON := ""
	if req.SessionID != "" {
		session, err := uc.sessionRepo.GetSessionByID(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
		contextJSON = uc.requirementJSON(session)
	}

	return uc.classifier.Classify(ctx, req.Prompt, contextJSON, req.Model)
}

// AnalyzeCode asks the provider to summarize the latest generated code.
func (uc *AgentUsecase) AnalyzeCode(ctx context.Context, sessionID, model string) (*entity.AgentResponse, error) {
	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	latest := session.LatestCode()
	if latest == nil {
		return nil, entity.ErrNoCodeToAnalyze
	}

	ctx = logger.WithSessionID(ctx, sessionID)
	uc.updateStep(ctx, session, entity.StepAnalyzingCode)

	prompt := fmt.Sprintf(analysisPromptTemplate, latest.Language, latest.Code)
	analysis, err := uc.oracle.Complete(ctx, prompt, model)
	if err != nil {
		uc.failSession(ctx, session)
		return uc.failure(session, "Error analyzing code", err), nil
	}

	session.CurrentStep = entity.StepCompleted
	if _, err := uc.sessionRepo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	return &entity.AgentResponse{
		SessionID:    session.ID,
		CurrentStep:  entity.StepCompleted,
		CodeAnalysis: analysis,
		Success:      true,
		Message:      "Code analysis completed",
		Timestamp:    time.Now().UTC(),
	}, nil
}

// ExportResult renders the latest generated code of a session in the
// requested document format.
func (uc *AgentUsecase) ExportResult(ctx context.Context, sessionID string, format entity.ResultFormat) ([]byte, string, string, error) {
	if !format.IsValid() {
		return nil, "", "", fmt.Errorf("%w: format %q", entity.ErrInvalidParameter, format)
	}

	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, "", "", err
	}

	latest := session.LatestCode()
	if latest == nil {
		return nil, "", "", entity.ErrNoCodeToAnalyze
	}

	f, err := uc.formatterFactory.Create(format)
	if err != nil {
		return nil, "", "", err
	}

	report := &formatter.Report{
		SessionID:   session.ID,
		Language:    latest.Language,
		Code:        latest.Code,
		Explanation: latest.Description,
	}

	data, err := f.Format(report)
	if err != nil {
		return nil, "", "", fmt.Errorf("format result: %w", err)
	}

	filename := "session-" + session.ID + f.FileExtension()
	return data, f.ContentType(), filename, nil
}

// generateFromRequirement builds a generation prompt from the completed
// requirement, runs generation and completes the session.
func (uc *AgentUsecase) generateFromRequirement(ctx context.Context, session *entity.Session, model, language string) (*entity.AgentResponse, error) {
	uc.updateStep(ctx, session, entity.StepGeneratingCode)

	if language == "" {
		language = uc.cfg.DefaultLanguage
	}

	prompt := BuildRequirementPrompt(session.Requirement)
	code, explanation, err := uc.generator.Generate(ctx, &entity.GenerateCodeRequest{
		UserID:            session.UserID,
		Prompt:            prompt,
		Language:          language,
		AdditionalContext: uc.requirementJSON(session),
		Model:             model,
	})
	if err != nil {
		uc.failSession(ctx, session)
		return uc.failure(session, "Code generation failed", err), nil
	}

	description := prompt
	if session.Requirement.Function != nil && session.Requirement.Function.Purpose != "" {
		description = session.Requirement.Function.Purpose
	}

	session.AddCodeToHistory(code, language, description)
	session.PendingField = ""
	session.CurrentStep = entity.StepCompleted
	if _, err := uc.sessionRepo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	return &entity.AgentResponse{
		SessionID:     session.ID,
		CurrentStep:   entity.StepCompleted,
		Requirement:   session.Requirement,
		GeneratedCode: code,
		Explanation:   explanation,
		Success:       true,
		Message:       "Context parsed and code generated successfully",
		Timestamp:     time.Now().UTC(),
	}, nil
}

// chitchatReply answers conversational input that carries no requirement.
// The session goes back to idle so the next message starts a fresh extraction.
func (uc *AgentUsecase) chitchatReply(ctx context.Context, session *entity.Session) (*entity.AgentResponse, error) {
	uc.updateStep(ctx, session, entity.StepIdle)

	return &entity.AgentResponse{
		SessionID:   session.ID,
		CurrentStep: entity.StepIdle,
		Intent:      entity.IntentChitchat,
		Success:     true,
		Message:     "Hi! What code would you like me to build?",
		Timestamp:   time.Now().UTC(),
	}, nil
}

// askNextQuestion persists the pending slot and returns the follow-up
// question for it.
func (uc *AgentUsecase) askNextQuestion(ctx context.Context, session *entity.Session) (*entity.AgentResponse, error) {
	field, question := NextQuestion(session.Requirement)

	session.PendingField = field
	session.CurrentStep = entity.StepParsingContext
	if _, err := uc.sessionRepo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	ctxzap.Info(ctx, "asking follow-up question",
		zap.String("field", string(field)),
		zap.Int("refine_turns", session.RefineTurns),
	)

	return &entity.AgentResponse{
		SessionID:    session.ID,
		CurrentStep:  entity.StepParsingContext,
		NextQuestion: question,
		Requirement:  session.Requirement,
		Success:      true,
		Message:      "More information needed",
		Timestamp:    time.Now().UTC(),
	}, nil
}

// BuildRequirementPrompt flattens a requirement into the generation prompt.
func BuildRequirementPrompt(req *entity.Requirement) string {
	var parts []string
	parts = append(parts, "Goal: "+string(req.GoalKind))

	switch req.GoalKind {
	case entity.GoalFunction:
		fn := req.Function
		if fn == nil {
			break
		}
		purpose := fn.Purpose
		if purpose == "" {
			purpose = "Please implement the requested functionality."
		}
		parts = append(parts, "Purpose: "+purpose)
		if fn.Name != "" {
			parts = append(parts, "Function name: "+fn.Name)
		}
		if len(fn.Inputs) > 0 {
			parts = append(parts, "Inputs:")
			for _, in := range fn.Inputs {
				parts = append(parts, fmt.Sprintf("- %s (%s): %s", in.Name, in.Type, in.Description))
			}
		}
		if len(fn.CoreLogic) > 0 {
			parts = append(parts, "Core logic steps:")
			for _, step := range fn.CoreLogic {
				parts = append(parts, "- "+step)
			}
		}
		if fn.Output != nil {
			parts = append(parts, fmt.Sprintf("Outputs: %s: %s", fn.Output.Type, fn.Output.Description))
		}
	case entity.GoalFunctionGroup:
		group := req.Group
		if group == nil {
			break
		}
		parts = append(parts, "Group name: "+group.Name)
		if group.SharedContext != "" {
			parts = append(parts, "Shared context: "+group.SharedContext)
		}
		for _, fn := range group.Functions {
			parts = append(parts, fmt.Sprintf("- %s: %s", fn.Name, fn.Purpose))
		}
	case entity.GoalLayout:
		layout := req.Layout
		if layout == nil {
			break
		}
		parts = append(parts, "Page name: "+layout.PageName)
		if len(layout.Components) > 0 {
			parts = append(parts, "Components:")
			for _, comp := range layout.Components {
				parts = append(parts, "- "+comp.Type)
			}
		}
	}

	return strings.Join(parts, "\n")
}

func (uc *AgentUsecase) requirementJSON(session *entity.Session) string {
	if session.Requirement == nil {
		return ""
	}
	data, err := json.Marshal(session.Requirement)
	if err != nil {
		return ""
	}
	return string(data)
}

// updateStep persists a step transition before running the step, so a crash
// mid-step leaves the session showing where it stopped.
func (uc *AgentUsecase) updateStep(ctx context.Context, session *entity.Session, step entity.WorkflowStep) {
	session.CurrentStep = step
	if err := uc.sessionRepo.UpdateSessionStep(ctx, session.ID, step); err != nil {
		ctxzap.Warn(ctx, "failed to persist step transition",
			zap.String("step", string(step)),
			zap.Error(err),
		)
	}
}

func (uc *AgentUsecase) failSession(ctx context.Context, session *entity.Session) {
	uc.updateStep(ctx, session, entity.StepError)
}

func (uc *AgentUsecase) failure(session *entity.Session, message string, err error) *entity.AgentResponse {
	return &entity.AgentResponse{
		SessionID:    session.ID,
		CurrentStep:  entity.StepError,
		Success:      false,
		Message:      message,
		ErrorMessage: err.Error(),
		Timestamp:    time.Now().UTC(),
	}
}
