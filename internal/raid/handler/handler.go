// Package handler is the thin HTTP layer over the RAiD services. It
// delegates to domain services without embedding business logic so transport
// concerns remain isolated.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"conflux/internal/language"
	projectModels "conflux/internal/project/models"
	platformMetrics "conflux/internal/platform/metrics"
	"conflux/internal/platform/middleware"
	"conflux/internal/raid/compatibility"
	"conflux/internal/raid/service"
	id "conflux/pkg/domain"
)

// Service defines the RAiD operations the handler exposes.
type Service interface {
	Check(ctx context.Context, projectID id.ProjectID) ([]compatibility.Incompatibility, error)
	Mint(ctx context.Context, projectID id.ProjectID) (*projectModels.RAiDInfo, error)
	Sync(ctx context.Context, projectID id.ProjectID) (*projectModels.RAiDInfo, error)
	SyncAll(ctx context.Context) (service.SyncReport, error)
}

// Handler handles RAiD-related endpoints.
type Handler struct {
	logger    *slog.Logger
	raid      Service
	languages *language.Validator
	metrics   *platformMetrics.Metrics
}

// New creates a new RAiD Handler.
func New(raid Service, languages *language.Validator, logger *slog.Logger, metrics *platformMetrics.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		raid:      raid,
		languages: languages,
		metrics:   metrics,
	}
}

// Register registers the RAiD routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	raidRouter := chi.NewRouter()
	raidRouter.Use(middleware.Recovery(h.logger))
	raidRouter.Use(middleware.RequestID)
	raidRouter.Use(middleware.Logger(h.logger))
	raidRouter.Use(middleware.Timeout(30 * time.Second))
	raidRouter.Use(middleware.Latency(h.metrics))

	raidRouter.Get("/projects/{projectID}/raid/incompatibilities", h.handleCheck)
	raidRouter.Post("/projects/{projectID}/raid/mint", h.handleMint)
	raidRouter.Post("/projects/{projectID}/raid/sync", h.handleSync)
	raidRouter.Post("/raid/sync", h.handleSyncAll)
	raidRouter.Get("/languages", h.handleLanguages)

	r.Mount("/", raidRouter)
}

func (h *Handler) projectID(w http.ResponseWriter, r *http.Request) (id.ProjectID, bool) {
	projectID, err := id.ParseProjectID(chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, err)
		return projectID, false
	}
	return projectID, true
}

// handleCheck returns the ordered incompatibility list for a project. An
// empty list means the project can be minted or synced.
func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.projectID(w, r)
	if !ok {
		return
	}

	incompatibilities, err := h.raid.Check(r.Context(), projectID)
	if err != nil {
		h.logError(r, "compatibility check failed", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, incompatibilityResponse{Incompatibilities: incompatibilities})
}

func (h *Handler) handleMint(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.projectID(w, r)
	if !ok {
		return
	}

	info, err := h.raid.Mint(r.Context(), projectID)
	if err != nil {
		h.respondRaidError(w, r, "mint failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, raidInfoResponse(info))
}

func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.projectID(w, r)
	if !ok {
		return
	}

	info, err := h.raid.Sync(r.Context(), projectID)
	if err != nil {
		h.respondRaidError(w, r, "sync failed", err)
		return
	}
	writeJSON(w, http.StatusOK, raidInfoResponse(info))
}

func (h *Handler) handleSyncAll(w http.ResponseWriter, r *http.Request) {
	report, err := h.raid.SyncAll(r.Context())
	if err != nil {
		h.logError(r, "sync batch failed", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, languagesResponse{Languages: h.languages.All()})
}

// respondRaidError maps a blocked mint/sync to 422 with the incompatibility
// list; everything else goes through the shared error writer.
func (h *Handler) respondRaidError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	var compatErr *service.CompatibilityError
	if errors.As(err, &compatErr) {
		writeJSON(w, http.StatusUnprocessableEntity, incompatibilityResponse{
			Incompatibilities: compatErr.Incompatibilities,
		})
		return
	}
	h.logError(r, msg, err)
	writeError(w, err)
}

func (h *Handler) logError(r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err.Error(),
	)
}
