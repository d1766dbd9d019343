package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/pkg/logger"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase AgentUsecase
}

func NewHandler(usecase AgentUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// CreateSession handles POST /agent/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateSession")

	var req entity.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.usecase.CreateSession(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session created", zap.String("session_id", session.ID))
	response.Created(w, toSessionDTO(session))
}

// GetSession handles GET /agent/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GetSession"),
	)

	session, err := h.usecase.GetSession(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// ListSessions handles GET /agent/sessions?user_id=
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListSessions")

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		response.Error(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}

	page, pageSize := pageParams(r)
	sessions, err := h.usecase.ListSessions(ctx, userID, page, pageSize)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.Page[*entity.SessionDTO]{
		Items:      toSessionDTOs(sessions.Items),
		Total:      sessions.Total,
		Page:       sessions.Page,
		PageSize:   sessions.PageSize,
		TotalPages: sessions.TotalPages,
	})
}

// DeleteSession handles DELETE /agent/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "DeleteSession"),
	)

	if err := h.usecase.DeleteSession(ctx, sessionID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// ProcessContext handles POST /agent/sessions/{id}/context
func (h *Handler) ProcessContext(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "ProcessContext"),
	)

	var req entity.ProcessContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.usecase.ProcessContext(ctx, sessionID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// ProcessPrompt handles POST /agent/sessions/{id}/prompt
func (h *Handler) ProcessPrompt(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "ProcessPrompt"),
	)

	var req entity.ProcessPromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.usecase.ProcessPrompt(ctx, sessionID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// SendMessage handles POST /agent/sessions/{id}/messages
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "SendMessage"),
	)

	var req entity.SessionMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.usecase.HandleMessage(ctx, sessionID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// AnalyzeCode handles POST /agent/sessions/{id}/analyze
func (h *Handler) AnalyzeCode(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "AnalyzeCode"),
	)

	model := r.URL.Query().Get("model")

	resp, err := h.usecase.AnalyzeCode(ctx, sessionID, model)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// ClassifyIntent handles POST /agent/intent
func (h *Handler) ClassifyIntent(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ClassifyIntent")

	var req entity.ClassifyIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	classification, err := h.usecase.ClassifyIntent(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, classification)
}

// GetSessionResult handles GET /agent/sessions/{id}/result?format=
func (h *Handler) GetSessionResult(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GetSessionResult"),
	)

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}

	data, contentType, filename, err := h.usecase.ExportResult(ctx, sessionID, entity.ResultFormat(formatParam))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session result exported", zap.String("format", formatParam))
	response.File(w, contentType, filename, data)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))

	switch {
	case entity.IsNotFound(err):
		response.Error(w, http.StatusNotFound, err.Error())
	case entity.IsValidation(err), errors.Is(err, entity.ErrNoCodeToAnalyze):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, err.Error())
	}
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	return page, pageSize
}
