package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/fyyur/internal/model"
	"github.com/sakif/fyyur/internal/service"
)

// ShowHandler serves /api/shows.
type ShowHandler struct {
	shows  *service.ShowService
	logger *slog.Logger
}

func NewShowHandler(shows *service.ShowService, logger *slog.Logger) *ShowHandler {
	return &ShowHandler{shows: shows, logger: logger}
}

// HandleList returns every show joined with its venue and artist.
//
// HTTP: GET /api/shows
func (h *ShowHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	shows, err := h.shows.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shows)
}

// showResponse renders start_time in the same layout the listings use.
type showResponse struct {
	ID        string `json:"id"`
	VenueID   string `json:"venue_id"`
	ArtistID  string `json:"artist_id"`
	StartTime string `json:"start_time"`
}

// HandleCreate books a show.
//
// HTTP: POST /api/shows
// BODY: {"venue_id": "...", "artist_id": "...", "start_time": "2035-04-01 20:00:00"}
//
// An unknown venue_id or artist_id is a 400 naming the field.
func (h *ShowHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var fields model.ShowFields
	if err := decodeRequest(w, r, &fields); err != nil {
		writeError(w, err)
		return
	}

	show, err := h.shows.Create(r.Context(), fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, showResponse{
		ID:        show.ID,
		VenueID:   show.VenueID,
		ArtistID:  show.ArtistID,
		StartTime: model.FormatTime(show.StartTime),
	})
}
