// Package repository declares the storage contracts the service layer depends on.
//
// Implementations live in sub-packages (see repository/sqlite). Every method
// reports failures as *apperror.AppError: NotFound when an id does not
// resolve, ValidationFailed when a write references rows that do not exist,
// and Storage for anything the database itself rejected. Writes are atomic;
// a failed write leaves no partial state behind.
package repository

import (
	"context"
	"time"

	"github.com/sakif/fyyur/internal/model"
)

type VenueRepository interface {
	CreateVenue(ctx context.Context, venue *model.Venue) error
	GetVenue(ctx context.Context, id string) (*model.Venue, error)
	UpdateVenue(ctx context.Context, venue *model.Venue) error

	// ListVenuesByLocation returns every venue ordered by city then state,
	// each carrying its count of shows starting at or after `at`.
	ListVenuesByLocation(ctx context.Context, at time.Time) ([]model.LocatedVenue, error)

	// SearchVenues matches name case-insensitively on a substring.
	SearchVenues(ctx context.Context, term string, at time.Time) ([]model.EntitySummary, error)
}

type ArtistRepository interface {
	CreateArtist(ctx context.Context, artist *model.Artist) error
	GetArtist(ctx context.Context, id string) (*model.Artist, error)
	UpdateArtist(ctx context.Context, artist *model.Artist) error
	ListArtists(ctx context.Context) ([]model.EntitySummary, error)

	// SearchArtists matches name like SearchVenues but leaves
	// NumUpcomingShows at zero.
	SearchArtists(ctx context.Context, term string) ([]model.EntitySummary, error)
}

type ShowRepository interface {
	// CreateShow fails with a validation error when venue or artist is missing.
	CreateShow(ctx context.Context, show *model.Show) error
	ListShows(ctx context.Context) ([]model.ShowListing, error)

	ListVenueShows(ctx context.Context, venueID string, at time.Time, w model.ShowWindow) ([]model.ArtistShow, error)
	CountVenueShows(ctx context.Context, venueID string, at time.Time, w model.ShowWindow) (int, error)
	ListArtistShows(ctx context.Context, artistID string, at time.Time, w model.ShowWindow) ([]model.VenueShow, error)
	CountArtistShows(ctx context.Context, artistID string, at time.Time, w model.ShowWindow) (int, error)
}
