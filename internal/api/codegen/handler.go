package codegen

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
	usecase CodegenUsecase
}

func NewHandler(usecase CodegenUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// GenerateCode handles POST /codegen/generate
func (h *Handler) GenerateCode(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateCode")

	var req entity.GenerateCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.usecase.GenerateCode(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, resp)
}

// GetGeneration handles GET /codegen/generations/{id}
func (h *Handler) GetGeneration(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetGeneration")

	gen, err := h.usecase.GetGeneration(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, gen)
}

// ListGenerations handles GET /codegen/generations
func (h *Handler) ListGenerations(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListGenerations")

	page, pageSize := pageParams(r)
	gens, err := h.usecase.ListGenerations(ctx,
		r.URL.Query().Get("user_id"),
		r.URL.Query().Get("language"),
		page, pageSize,
	)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, gens)
}

// DeleteGeneration handles DELETE /codegen/generations/{id}
func (h *Handler) DeleteGeneration(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteGeneration")

	if err := h.usecase.DeleteGeneration(ctx, chi.URLParam(r, "id")); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// ReviewCode handles POST /codegen/review
func (h *Handler) ReviewCode(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ReviewCode")

	var req entity.ReviewCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.usecase.ReviewCode(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, resp)
}

// GetReview handles GET /codegen/reviews/{id}
func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetReview")

	review, err := h.usecase.GetReview(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, review)
}

// ListReviews handles GET /codegen/reviews. With min_score or max_score set
// the listing switches to the score-range query.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListReviews")

	page, pageSize := pageParams(r)
	query := r.URL.Query()

	if query.Get("min_score") != "" || query.Get("max_score") != "" {
		minScore, err := parseScore(query.Get("min_score"), 0)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "invalid min_score")
			return
		}
		maxScore, err := parseScore(query.Get("max_score"), 10)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "invalid max_score")
			return
		}

		reviews, err := h.usecase.ListReviewsByScore(ctx, minScore, maxScore, page, pageSize)
		if err != nil {
			h.handleUsecaseError(ctx, w, err)
			return
		}
		response.Success(w, reviews)
		return
	}

	reviews, err := h.usecase.ListReviews(ctx, query.Get("user_id"), page, pageSize)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, reviews)
}

// DeleteReview handles DELETE /codegen/reviews/{id}
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteReview")

	if err := h.usecase.DeleteReview(ctx, chi.URLParam(r, "id")); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// CreateExecutionLog handles POST /codegen/executions
func (h *Handler) CreateExecutionLog(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateExecutionLog")

	var req entity.CreateExecutionLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	log, err := h.usecase.CreateExecutionLog(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, log)
}

// GetExecutionLog handles GET /codegen/executions/{id}
func (h *Handler) GetExecutionLog(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetExecutionLog")

	log, err := h.usecase.GetExecutionLog(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, log)
}

// ListExecutionLogs handles GET /codegen/executions
func (h *Handler) ListExecutionLogs(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListExecutionLogs")

	page, pageSize := pageParams(r)
	logs, err := h.usecase.ListExecutionLogs(ctx,
		r.URL.Query().Get("user_id"),
		entity.ExecutionStatus(r.URL.Query().Get("status")),
		page, pageSize,
	)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, logs)
}

type updateExecutionStatusRequest struct {
	Status entity.ExecutionStatus `json:"status"`
	Output string                 `json:"output,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// UpdateExecutionStatus handles PATCH /codegen/executions/{id}/status
func (h *Handler) UpdateExecutionStatus(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateExecutionStatus")

	var req updateExecutionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.usecase.UpdateExecutionStatus(ctx, chi.URLParam(r, "id"), req.Status, req.Output, req.Error); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, map[string]string{"status": string(req.Status)})
}

// DeleteExecutionLog handles DELETE /codegen/executions/{id}
func (h *Handler) DeleteExecutionLog(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteExecutionLog")

	if err := h.usecase.DeleteExecutionLog(ctx, chi.URLParam(r, "id")); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// CreateRequest handles POST /codegen/requests
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateRequest")

	var req entity.CreateRequestRecord
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.usecase.CreateRequest(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, record)
}

// GetRequest handles GET /codegen/requests/{id}
func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetRequest")

	record, err := h.usecase.GetRequest(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, record)
}

// ListRequests handles GET /codegen/requests
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListRequests")

	page, pageSize := pageParams(r)
	records, err := h.usecase.ListRequests(ctx,
		r.URL.Query().Get("user_id"),
		entity.RequestStatus(r.URL.Query().Get("status")),
		page, pageSize,
	)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, records)
}

// UpdateRequestStatus handles PATCH /codegen/requests/{id}/status
func (h *Handler) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateRequestStatus")

	var req entity.UpdateRequestStatus
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.usecase.UpdateRequestStatus(ctx, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, record)
}

// DeleteRequest handles DELETE /codegen/requests/{id}
func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteRequest")

	if err := h.usecase.DeleteRequest(ctx, chi.URLParam(r, "id")); err != nil {
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

func parseScore(value string, fallback float64) (float64, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(value, 64)
}
