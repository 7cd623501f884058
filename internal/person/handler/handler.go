// Package handler exposes the person directory over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"persondir/internal/person/models"
	"persondir/internal/platform/middleware"
	"persondir/internal/transport/http/shared"
	"persondir/pkg/domain"
	dErrors "persondir/pkg/domain-errors"
)

// Service is the directory contract the handler depends on.
type Service interface {
	Register(ctx context.Context, rawName, rawSurname string) (*models.Person, error)
	Get(ctx context.Context, id domain.ID) (*models.Person, error)
	List(ctx context.Context) ([]*models.Person, error)
	Rename(ctx context.Context, id domain.ID, rawName, rawSurname string) (*models.Person, error)
	Delete(ctx context.Context, id domain.ID) error
}

// Handler wires directory routes onto a chi router.
type Handler struct {
	logger       *slog.Logger
	service      Service
	jwtValidator middleware.JWTValidator
}

// NewHandler creates the HTTP handler for the directory.
func NewHandler(logger *slog.Logger, service Service, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the directory routes. Reads are open; mutations require a
// valid bearer token.
func (h *Handler) Register(r chi.Router) {
	r.Route("/persons", func(r chi.Router) {
		r.Get("/", h.listPersons)
		r.Get("/{id}", h.getPerson)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
			r.Post("/", h.registerPerson)
			r.Put("/{id}", h.updatePerson)
			r.Delete("/{id}", h.deletePerson)
		})
	})
}

func (h *Handler) registerPerson(w http.ResponseWriter, r *http.Request) {
	var req RegisterPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	p, err := h.service.Register(r.Context(), req.Name, req.Surname)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, toPersonResponse(p))
}

func (h *Handler) getPerson(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, toPersonResponse(p))
}

func (h *Handler) listPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.service.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, toPersonResponses(persons))
}

func (h *Handler) updatePerson(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req UpdatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	p, err := h.service.Rename(r.Context(), id, req.Name, req.Surname)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, toPersonResponse(p))
}

func (h *Handler) deletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
