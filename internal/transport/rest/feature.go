package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
	"github.com/heartmarshall/featureboard-backend/internal/service/feature"
)

// featureService defines the feature operations needed by FeatureHandler.
type featureService interface {
	Submit(ctx context.Context, input feature.SubmitInput) (*domain.FeatureRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.FeatureRequest, error)
	List(ctx context.Context, input feature.ListInput) ([]domain.FeatureRequest, error)
	ToggleVote(ctx context.Context, id uuid.UUID) (*domain.FeatureRequest, error)
	Decide(ctx context.Context, id uuid.UUID, input feature.DecideInput) (*domain.FeatureRequest, error)
}

// FeatureHandler serves feature request REST endpoints.
type FeatureHandler struct {
	svc featureService
	log *slog.Logger
}

// NewFeatureHandler creates a FeatureHandler.
func NewFeatureHandler(svc featureService, logger *slog.Logger) *FeatureHandler {
	return &FeatureHandler{svc: svc, log: logger.With("handler", "feature")}
}

// Submit handles POST /features.
func (h *FeatureHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fr, err := h.svc.Submit(r.Context(), feature.SubmitInput{
		Title:       req.Title,
		Description: req.Description,
		Categories:  req.Categories,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFeatureResponse(fr))
}

// List handles GET /features?tab=&sort=&q=&category=.
func (h *FeatureHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context(), listInputFromQuery(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toFeatureList(records))
}

// Get handles GET /features/{id}.
func (h *FeatureHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	fr, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toFeatureResponse(fr))
}

// Vote handles POST /features/{id}/vote.
func (h *FeatureHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	fr, err := h.svc.ToggleVote(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toFeatureResponse(fr))
}

// Decide handles POST /admin/features/{id}/status.
func (h *FeatureHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req decideRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fr, err := h.svc.Decide(r.Context(), id, feature.DecideInput{Status: req.Status})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toFeatureResponse(fr))
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "validation failed",
			Fields: []domain.FieldError{{Field: "id", Message: "must be a UUID"}},
		})
		return uuid.Nil, false
	}
	return id, true
}
