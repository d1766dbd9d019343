package conversation

import (
	"context"
	"encoding/json"
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
	usecase ConversationUsecase
}

func NewHandler(usecase ConversationUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// CreateConversation handles POST /conversations
func (h *Handler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateConversation")

	var req entity.CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := h.usecase.CreateConversation(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, conv)
}

// GetConversation handles GET /conversations/{id}
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetConversation")

	conv, err := h.usecase.GetConversation(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, conv)
}

// ListConversations handles GET /conversations
func (h *Handler) ListConversations(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListConversations")

	page, pageSize := pageParams(r)
	convs, err := h.usecase.ListConversations(ctx, page, pageSize)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, convs)
}

// UpdateConversation handles PUT /conversations/{id}
func (h *Handler) UpdateConversation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateConversation")

	var req entity.UpdateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := h.usecase.UpdateConversation(ctx, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, conv)
}

type appendFactRequest struct {
	Fact string `json:"fact"`
}

// AppendFact handles POST /conversations/{id}/facts
func (h *Handler) AppendFact(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AppendFact")

	var req appendFactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.usecase.AppendFact(ctx, chi.URLParam(r, "id"), req.Fact); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, map[string]string{"fact": req.Fact})
}

// DeleteConversation handles DELETE /conversations/{id}?delete_messages=
func (h *Handler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("conversation_id", conversationID),
		zap.String("action", "DeleteConversation"),
	)

	deleteMessages, _ := strconv.ParseBool(r.URL.Query().Get("delete_messages"))

	if err := h.usecase.DeleteConversation(ctx, conversationID, deleteMessages); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// SendMessage handles POST /conversations/{id}/messages
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("conversation_id", conversationID),
		zap.String("action", "SendMessage"),
	)

	var req entity.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.usecase.SendMessage(ctx, conversationID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, msg)
}

// ListMessages handles GET /conversations/{id}/messages
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("conversation_id", conversationID),
		zap.String("action", "ListMessages"),
	)

	page, pageSize := pageParams(r)
	msgs, err := h.usecase.ListMessages(ctx, conversationID, page, pageSize)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, msgs)
}

// GetMessage handles GET /messages/{id}
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetMessage")

	msg, err := h.usecase.GetMessage(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, msg)
}

// DeleteMessage handles DELETE /messages/{id}
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteMessage")

	if err := h.usecase.DeleteMessage(ctx, chi.URLParam(r, "id")); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))

	switch {
	case entity.IsNotFound(err):
		response.Error(w, http.StatusNotFound, err.Error())
	case entity.IsValidation(err):
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
