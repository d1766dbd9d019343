package user

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
	usecase UserUsecase
}

func NewHandler(usecase UserUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// CreateUser handles POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateUser")

	var req entity.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.usecase.CreateUser(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, user)
}

// GetUser handles GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetUser")

	user, err := h.usecase.GetUser(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, user)
}

// ListUsers handles GET /users. With email set the listing becomes a single
// user lookup.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListUsers")

	if email := r.URL.Query().Get("email"); email != "" {
		user, err := h.usecase.GetUserByEmail(ctx, email)
		if err != nil {
			h.handleUsecaseError(ctx, w, err)
			return
		}
		response.Success(w, user)
		return
	}

	page, pageSize := pageParams(r)
	users, err := h.usecase.ListUsers(ctx, page, pageSize)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, users)
}

// UpdateUser handles PUT /users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateUser")

	var req entity.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.usecase.UpdateUser(ctx, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, user)
}

// DeleteUser handles DELETE /users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteUser")

	if err := h.usecase.DeleteUser(ctx, chi.URLParam(r, "id")); err != nil {
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
