package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/fyyur/internal/model"
	"github.com/sakif/fyyur/internal/service"
)

// ArtistHandler serves /api/artists.
type ArtistHandler struct {
	artists *service.ArtistService
	logger  *slog.Logger
}

func NewArtistHandler(artists *service.ArtistService, logger *slog.Logger) *ArtistHandler {
	return &ArtistHandler{artists: artists, logger: logger}
}

// HTTP: GET /api/artists
func (h *ArtistHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	artists, err := h.artists.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artists)
}

// HandleSearch finds artists by name. Results always report
// num_upcoming_shows = 0.
//
// HTTP: POST /api/artists/search
func (h *ArtistHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.artists.Search(r.Context(), req.SearchTerm)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HTTP: GET /api/artists/{id}
func (h *ArtistHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	detail, err := h.artists.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// HTTP: POST /api/artists
func (h *ArtistHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var fields model.ArtistFields
	if err := decodeRequest(w, r, &fields); err != nil {
		writeError(w, err)
		return
	}

	artist, err := h.artists.Create(r.Context(), fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, artist)
}

// HTTP: PUT /api/artists/{id}
func (h *ArtistHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var fields model.ArtistFields
	if err := decodeRequest(w, r, &fields); err != nil {
		writeError(w, err)
		return
	}

	artist, err := h.artists.Update(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}
