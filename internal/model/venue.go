// Package model holds the venue, artist and show types shared by every
// layer, plus the submitted field sets and the read models built for pages.
package model

import "time"

// Venue is a location that can host shows.
//
// Genres is an ordered list. The SQLite store keeps it in venue_genres keyed
// by position, so the order a user submitted is the order they read back.
type Venue struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Address            string    `json:"address"`
	Phone              string    `json:"phone"`
	Genres             []string  `json:"genres"`
	ImageLink          string    `json:"image_link"`
	Website            string    `json:"website"`
	FacebookLink       string    `json:"facebook_link"`
	SeekingTalent      bool      `json:"seeking_talent"`
	SeekingDescription string    `json:"seeking_description"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// VenueFields is the raw field set submitted when creating or editing a venue.
//
// The `validate:"..."` tags are read by go-playground/validator in the service
// layer. The `form:"..."` tags name the keys used by HTML form posts.
type VenueFields struct {
	Name               string   `json:"name" form:"name" validate:"required,max=120"`
	City               string   `json:"city" form:"city" validate:"required,max=120"`
	State              string   `json:"state" form:"state" validate:"required,max=120"`
	Address            string   `json:"address" form:"address" validate:"required,max=120"`
	Phone              string   `json:"phone" form:"phone" validate:"max=120"`
	Genres             []string `json:"genres" form:"genres" validate:"dive,required,max=120"`
	ImageLink          string   `json:"image_link" form:"image_link" validate:"omitempty,url,max=500"`
	Website            string   `json:"website" form:"website" validate:"omitempty,url,max=120"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link" validate:"omitempty,url,max=120"`
	SeekingTalent      bool     `json:"seeking_talent" form:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description" validate:"max=500"`
}

// Apply copies every editable field onto v. ID and timestamps are left alone.
func (f VenueFields) Apply(v *Venue) {
	v.Name = f.Name
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.Genres = append([]string(nil), f.Genres...)
	v.ImageLink = f.ImageLink
	v.Website = f.Website
	v.FacebookLink = f.FacebookLink
	v.SeekingTalent = f.SeekingTalent
	v.SeekingDescription = f.SeekingDescription
}

// LocatedVenue is one row of the venues index: a venue summary plus the
// location columns the index is grouped on.
type LocatedVenue struct {
	City  string
	State string
	EntitySummary
}

// CityGroup is one block of the venues index page.
type CityGroup struct {
	City   string          `json:"city"`
	State  string          `json:"state"`
	Venues []EntitySummary `json:"venues"`
}

// VenueDetail is everything the venue page shows: the venue itself plus
// its shows split around the current time.
type VenueDetail struct {
	Venue
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}
