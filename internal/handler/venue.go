package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/fyyur/internal/model"
	"github.com/sakif/fyyur/internal/service"
)

// searchRequest is the body of both search endpoints.
type searchRequest struct {
	SearchTerm string `json:"search_term" form:"search_term"`
}

// VenueHandler serves /api/venues.
type VenueHandler struct {
	venues *service.VenueService
	logger *slog.Logger
}

func NewVenueHandler(venues *service.VenueService, logger *slog.Logger) *VenueHandler {
	return &VenueHandler{venues: venues, logger: logger}
}

// HandleList returns the venues index grouped by city.
//
// HTTP: GET /api/venues
//
//	[{"city":"San Francisco","state":"CA","venues":[{"id":"...","name":"The Musical Hop","num_upcoming_shows":0}]}]
func (h *VenueHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	groups, err := h.venues.ListByCity(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// HandleSearch finds venues by name.
//
// HTTP: POST /api/venues/search
// BODY: {"search_term": "hop"} or search_term=hop
func (h *VenueHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.venues.Search(r.Context(), req.SearchTerm)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleGet returns one venue with past and upcoming shows.
//
// HTTP: GET /api/venues/{id}
func (h *VenueHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	detail, err := h.venues.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// HandleCreate lists a new venue.
//
// HTTP: POST /api/venues
// BODY: model.VenueFields as JSON or form fields (genres repeated)
func (h *VenueHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var fields model.VenueFields
	if err := decodeRequest(w, r, &fields); err != nil {
		writeError(w, err)
		return
	}

	venue, err := h.venues.Create(r.Context(), fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, venue)
}

// HandleUpdate replaces the editable fields of a venue.
//
// HTTP: PUT /api/venues/{id}
func (h *VenueHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var fields model.VenueFields
	if err := decodeRequest(w, r, &fields); err != nil {
		writeError(w, err)
		return
	}

	venue, err := h.venues.Update(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, venue)
}

// HandleDelete is a deliberate non-feature: venues are never removed, and
// the store's foreign keys would refuse a venue that still has shows.
//
// HTTP: DELETE /api/venues/{id} → 501
func (h *VenueHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("venue delete requested", slog.String("id", chi.URLParam(r, "id")))
	writeJSON(w, http.StatusNotImplemented, ErrorResponse{
		Error:   "not_implemented",
		Message: "deleting venues is not supported",
	})
}
