package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/fyyur/internal/apperror"
	"github.com/sakif/fyyur/internal/model"
)

func TestArtistCreate(t *testing.T) {
	svc := newTestServices(t)

	fields := validArtistFields("Guns N Petals")
	fields.SeekingVenue = true
	fields.SeekingDescription = "Looking for shows in the Bay Area"
	artist, err := svc.artists.Create(context.Background(), fields)
	require.NoError(t, err)

	assert.NotEmpty(t, artist.ID)
	assert.True(t, artist.SeekingVenue)
	assert.Equal(t, []string{"Rock n Roll"}, artist.Genres)
}

func TestArtistCreate_Validation(t *testing.T) {
	svc := newTestServices(t)

	fields := validArtistFields("")
	_, err := svc.artists.Create(context.Background(), fields)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, "name", appErr.Field)
	assert.Equal(t, "name is required", appErr.Message)
}

func TestArtistUpdate(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	created, err := svc.artists.Create(ctx, validArtistFields("Matt Quevedo"))
	require.NoError(t, err)

	fields := validArtistFields("The Wild Sax Band")
	fields.ImageLink = "https://images.example.com/sax.jpg"
	updated, err := svc.artists.Update(ctx, created.ID, fields)
	require.NoError(t, err)

	assert.Equal(t, "The Wild Sax Band", updated.Name)
	assert.Equal(t, "https://images.example.com/sax.jpg", updated.ImageLink)
	assert.Equal(t, "The Wild Sax Band", svc.store.artists[created.ID].Name)
}

func TestArtistUpdate_NotFound(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.artists.Update(context.Background(), "missing", validArtistFields("x"))
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestArtistGet_SplitsShowsAroundNow(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	venue, err := svc.venues.Create(ctx, validVenueFields("Musical Hop", "San Francisco", "CA"))
	require.NoError(t, err)
	artist, err := svc.artists.Create(ctx, validArtistFields("Guns N Petals"))
	require.NoError(t, err)

	for _, start := range []time.Time{
		fixedNow.Add(-time.Hour),
		fixedNow.Add(-2 * time.Hour),
		fixedNow.Add(24 * time.Hour),
	} {
		_, err := svc.shows.Create(ctx, model.ShowFields{
			VenueID:   venue.ID,
			ArtistID:  artist.ID,
			StartTime: start.Format(time.RFC3339),
		})
		require.NoError(t, err)
	}

	detail, err := svc.artists.Get(ctx, artist.ID)
	require.NoError(t, err)

	assert.Len(t, detail.PastShows, 2)
	assert.Len(t, detail.UpcomingShows, 1)
	assert.Equal(t, 2, detail.PastShowsCount)
	assert.Equal(t, 1, detail.UpcomingShowsCount)
	assert.Equal(t, "Musical Hop", detail.UpcomingShows[0].VenueName)
}

func TestArtistGet_NotFound(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.artists.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestArtistList(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	_, err := svc.artists.Create(ctx, validArtistFields("Guns N Petals"))
	require.NoError(t, err)
	_, err = svc.artists.Create(ctx, validArtistFields("Matt Quevedo"))
	require.NoError(t, err)

	artists, err := svc.artists.List(ctx)
	require.NoError(t, err)
	assert.Len(t, artists, 2)
}

// Artist search results never carry an upcoming show count.
func TestArtistSearch_ZeroUpcoming(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	venue, err := svc.venues.Create(ctx, validVenueFields("Musical Hop", "San Francisco", "CA"))
	require.NoError(t, err)
	artist, err := svc.artists.Create(ctx, validArtistFields("Guns N Petals"))
	require.NoError(t, err)
	_, err = svc.shows.Create(ctx, model.ShowFields{
		VenueID:   venue.ID,
		ArtistID:  artist.ID,
		StartTime: model.FormatTime(fixedNow.Add(time.Hour)),
	})
	require.NoError(t, err)

	result, err := svc.artists.Search(ctx, "GUNS")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Data, 1)
	assert.Equal(t, 0, result.Data[0].NumUpcomingShows)
}
