package decisions

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

// Handler wires HTTP endpoints for decisions.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers decision routes behind the principal middleware.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

func (h *Handler) respondErr(w http.ResponseWriter, op string, err error) {
	if httpx.StatusFor(err) == http.StatusInternalServerError {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	skip, limit := shared.ParsePagination(r)
	decisions, err := h.service.List(r.Context(), *principal, skip, limit)
	if err != nil {
		h.respondErr(w, "list decisions", err)
		return
	}
	if decisions == nil {
		decisions = []Decision{}
	}
	httpx.JSON(w, http.StatusOK, decisions)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	decision, err := h.service.Get(r.Context(), *principal, id)
	if err != nil {
		h.respondErr(w, "get decision", err)
		return
	}
	httpx.JSON(w, http.StatusOK, decision)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	var req CreateDecisionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	decision, err := h.service.Create(r.Context(), *principal, req)
	if err != nil {
		h.respondErr(w, "create decision", err)
		return
	}
	httpx.JSON(w, http.StatusOK, decision)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	var req UpdateDecisionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	decision, err := h.service.Update(r.Context(), *principal, id, req)
	if err != nil {
		h.respondErr(w, "update decision", err)
		return
	}
	httpx.JSON(w, http.StatusOK, decision)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.service.Delete(r.Context(), *principal, id); err != nil {
		h.respondErr(w, "delete decision", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "success", "detail": "Decision deleted"})
}
