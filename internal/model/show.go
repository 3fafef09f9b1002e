package model

import "time"

// TimeLayout is how show start times are stored and rendered.
// It is fixed width, so comparing two formatted values as strings gives the
// same answer as comparing the times.
const TimeLayout = "2006-01-02 15:04:05"

// FormatTime renders t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Show is a booking of one artist at one venue. Shows are never edited.
type Show struct {
	ID        string    `json:"id"`
	VenueID   string    `json:"venue_id"`
	ArtistID  string    `json:"artist_id"`
	StartTime time.Time `json:"start_time"`
	CreatedAt time.Time `json:"created_at"`
}

// ShowFields is the raw booking form. StartTime is free text; an empty value
// means the show starts now.
type ShowFields struct {
	VenueID   string `json:"venue_id" form:"venue_id" validate:"required"`
	ArtistID  string `json:"artist_id" form:"artist_id" validate:"required"`
	StartTime string `json:"start_time" form:"start_time"`
}

// ShowWindow selects shows on one side of a reference time.
type ShowWindow int

const (
	// Past shows started strictly before the reference time.
	Past ShowWindow = iota
	// Upcoming shows start at or after the reference time.
	Upcoming
)

func (w ShowWindow) String() string {
	if w == Past {
		return "past"
	}
	return "upcoming"
}

// EntitySummary is the id/name/upcoming-count triple used by index and
// search pages for both venues and artists.
type EntitySummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// SearchResult wraps search matches with their count.
type SearchResult struct {
	Count int             `json:"count"`
	Data  []EntitySummary `json:"data"`
}

// ShowListing is one row of the shows page, joined with the current venue
// and artist rows.
type ShowListing struct {
	ID              string `json:"id"`
	VenueID         string `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        string `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// ArtistShow is a show seen from a venue page.
type ArtistShow struct {
	ArtistID        string `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// VenueShow is a show seen from an artist page.
type VenueShow struct {
	VenueID        string `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}
