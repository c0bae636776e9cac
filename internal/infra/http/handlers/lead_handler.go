package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rcardozo/lead-manager/internal/entity"
	"github.com/rcardozo/lead-manager/internal/infra/http/middleware"
	"github.com/rcardozo/lead-manager/internal/usecase"
)

type LeadHandler struct {
	UseCase *usecase.LeadUseCase
	Log     *zap.SugaredLogger
}

func NewLeadHandler(uc *usecase.LeadUseCase, log *zap.SugaredLogger) *LeadHandler {
	return &LeadHandler{UseCase: uc, Log: log}
}

// Routes mounts the lead resource on the given router.
func (h *LeadHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.UseCase.List(r.Context())
	if err != nil {
		h.Log.Errorw("list leads", "err", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}

	lead, err := h.UseCase.Get(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, "get lead", err)
		return
	}

	respondJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lead, err := h.UseCase.Create(r.Context(), input)
	if err != nil {
		if usecase.IsValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Log.Errorw("create lead", "err", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	middleware.RecordLeadMutation("create")
	respondJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}

	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lead, err := h.UseCase.Update(r.Context(), id, input)
	if err != nil {
		if usecase.IsValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondStoreError(w, "update lead", err)
		return
	}

	middleware.RecordLeadMutation("update")
	respondJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}

	if err := h.UseCase.Delete(r.Context(), id); err != nil {
		h.respondStoreError(w, "delete lead", err)
		return
	}

	middleware.RecordLeadMutation("delete")
	respondJSON(w, http.StatusOK, map[string]string{"message": "Lead deleted successfully"})
}

// leadID validates the identifier shape. A malformed id can never reference
// a stored lead, so it reports not found rather than a store error.
func leadID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusNotFound, entity.ErrLeadNotFound.Error())
		return "", false
	}
	return id, true
}

func (h *LeadHandler) respondStoreError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, entity.ErrLeadNotFound) {
		respondError(w, http.StatusNotFound, entity.ErrLeadNotFound.Error())
		return
	}
	h.Log.Errorw(op, "err", err)
	respondError(w, http.StatusInternalServerError, err.Error())
}
