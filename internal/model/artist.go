package model

import "time"

// Artist is a performer that can play shows.
type Artist struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Phone              string    `json:"phone"`
	Genres             []string  `json:"genres"`
	ImageLink          string    `json:"image_link"`
	Website            string    `json:"website"`
	FacebookLink       string    `json:"facebook_link"`
	SeekingVenue       bool      `json:"seeking_venue"`
	SeekingDescription string    `json:"seeking_description"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ArtistFields is the raw field set submitted when creating or editing an artist.
type ArtistFields struct {
	Name               string   `json:"name" form:"name" validate:"required,max=120"`
	City               string   `json:"city" form:"city" validate:"required,max=120"`
	State              string   `json:"state" form:"state" validate:"required,max=120"`
	Phone              string   `json:"phone" form:"phone" validate:"max=120"`
	Genres             []string `json:"genres" form:"genres" validate:"dive,required,max=120"`
	ImageLink          string   `json:"image_link" form:"image_link" validate:"omitempty,url,max=500"`
	Website            string   `json:"website" form:"website" validate:"omitempty,url,max=120"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link" validate:"omitempty,url,max=120"`
	SeekingVenue       bool     `json:"seeking_venue" form:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description" validate:"max=500"`
}

// Apply copies every editable field onto a.
func (f ArtistFields) Apply(a *Artist) {
	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Phone = f.Phone
	a.Genres = append([]string(nil), f.Genres...)
	a.ImageLink = f.ImageLink
	a.Website = f.Website
	a.FacebookLink = f.FacebookLink
	a.SeekingVenue = f.SeekingVenue
	a.SeekingDescription = f.SeekingDescription
}

// ArtistDetail mirrors VenueDetail from the artist's side.
type ArtistDetail struct {
	Artist
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}
