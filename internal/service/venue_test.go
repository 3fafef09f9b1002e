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

func TestVenueCreate(t *testing.T) {
	svc := newTestServices(t)

	fields := validVenueFields("  The Musical Hop  ", "San Francisco", "CA")
	fields.Genres = []string{" Jazz ", "Swing"}
	venue, err := svc.venues.Create(context.Background(), fields)
	require.NoError(t, err)

	assert.NotEmpty(t, venue.ID)
	assert.Equal(t, "The Musical Hop", venue.Name, "name should be trimmed")
	assert.Equal(t, []string{"Jazz", "Swing"}, venue.Genres)
	assert.Contains(t, svc.store.venues, venue.ID)
}

func TestVenueCreate_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *model.VenueFields)
		wantField string
	}{
		{name: "missing name", mutate: func(f *model.VenueFields) { f.Name = "   " }, wantField: "name"},
		{name: "missing city", mutate: func(f *model.VenueFields) { f.City = "" }, wantField: "city"},
		{name: "missing state", mutate: func(f *model.VenueFields) { f.State = "" }, wantField: "state"},
		{name: "missing address", mutate: func(f *model.VenueFields) { f.Address = "" }, wantField: "address"},
		{name: "blank genre", mutate: func(f *model.VenueFields) { f.Genres = []string{"Jazz", " "} }, wantField: "genres[1]"},
		{name: "bad website", mutate: func(f *model.VenueFields) { f.Website = "not a url" }, wantField: "website"},
		{name: "long phone", mutate: func(f *model.VenueFields) { f.Phone = string(make([]byte, 121)) }, wantField: "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestServices(t)
			fields := validVenueFields("Venue", "Austin", "TX")
			tt.mutate(&fields)

			_, err := svc.venues.Create(context.Background(), fields)

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr), "want *AppError, got %v", err)
			assert.ErrorIs(t, err, apperror.ErrValidation)
			assert.Equal(t, tt.wantField, appErr.Field)
			assert.Empty(t, svc.store.venues, "nothing should be stored")
		})
	}
}

func TestVenueCreate_StorageError(t *testing.T) {
	svc := newTestServices(t)
	svc.store.failWith = apperror.Storage("creating venue", errors.New("disk full"))

	_, err := svc.venues.Create(context.Background(), validVenueFields("Venue", "Austin", "TX"))
	assert.ErrorIs(t, err, apperror.ErrStorage)
}

func TestVenueUpdate_ReplacesFields(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	created, err := svc.venues.Create(ctx, validVenueFields("Old", "Austin", "TX"))
	require.NoError(t, err)

	fields := validVenueFields("New", "Dallas", "TX")
	fields.Genres = nil
	updated, err := svc.venues.Update(ctx, created.ID, fields)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "Dallas", updated.City)
	assert.Empty(t, updated.Genres)

	detail, err := svc.venues.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", detail.Name)
}

func TestVenueUpdate_NotFound(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.venues.Update(context.Background(), "missing", validVenueFields("x", "y", "z"))
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestVenueUpdate_InvalidLeavesRecordUntouched(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	created, err := svc.venues.Create(ctx, validVenueFields("Keep Me", "Austin", "TX"))
	require.NoError(t, err)

	_, err = svc.venues.Update(ctx, created.ID, validVenueFields("", "Austin", "TX"))
	require.ErrorIs(t, err, apperror.ErrValidation)

	assert.Equal(t, "Keep Me", svc.store.venues[created.ID].Name)
}

func TestVenueGet_SplitsShowsAroundNow(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	venue, err := svc.venues.Create(ctx, validVenueFields("Musical Hop", "San Francisco", "CA"))
	require.NoError(t, err)
	artist, err := svc.artists.Create(ctx, validArtistFields("Guns N Petals"))
	require.NoError(t, err)

	for _, start := range []time.Time{
		fixedNow.Add(-48 * time.Hour),
		fixedNow,
		fixedNow.Add(time.Hour),
	} {
		_, err := svc.shows.Create(ctx, model.ShowFields{
			VenueID:   venue.ID,
			ArtistID:  artist.ID,
			StartTime: model.FormatTime(start),
		})
		require.NoError(t, err)
	}

	detail, err := svc.venues.Get(ctx, venue.ID)
	require.NoError(t, err)

	assert.Len(t, detail.PastShows, 1)
	assert.Len(t, detail.UpcomingShows, 2)
	assert.Equal(t, 1, detail.PastShowsCount)
	assert.Equal(t, 2, detail.UpcomingShowsCount)
	assert.Equal(t, 2, svc.store.countCalls, "counts come from their own queries")
	assert.Equal(t, "Guns N Petals", detail.PastShows[0].ArtistName)
	assert.Equal(t, model.FormatTime(fixedNow), detail.UpcomingShows[0].StartTime)
}

func TestVenueGet_NotFound(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.venues.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestVenueGet_EmptyID(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.venues.Get(context.Background(), "  ")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestVenueListByCity(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	for _, f := range []model.VenueFields{
		validVenueFields("Musical Hop", "San Francisco", "CA"),
		validVenueFields("Dueling Pianos", "New York", "NY"),
		validVenueFields("Park Square", "San Francisco", "CA"),
	} {
		_, err := svc.venues.Create(ctx, f)
		require.NoError(t, err)
	}

	groups, err := svc.venues.ListByCity(ctx)
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, "New York", groups[0].City)
	assert.Len(t, groups[0].Venues, 1)
	assert.Equal(t, "San Francisco", groups[1].City)
	assert.Len(t, groups[1].Venues, 2)
}

func TestVenueSearch(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	artHouse, err := svc.venues.Create(ctx, validVenueFields("The Musical Art House", "San Francisco", "CA"))
	require.NoError(t, err)
	_, err = svc.venues.Create(ctx, validVenueFields("Cafe Noir", "Austin", "TX"))
	require.NoError(t, err)
	artist, err := svc.artists.Create(ctx, validArtistFields("Guns N Petals"))
	require.NoError(t, err)
	_, err = svc.shows.Create(ctx, model.ShowFields{
		VenueID:   artHouse.ID,
		ArtistID:  artist.ID,
		StartTime: model.FormatTime(fixedNow.Add(time.Hour)),
	})
	require.NoError(t, err)

	result, err := svc.venues.Search(ctx, "art")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Data, 1)
	assert.Equal(t, artHouse.ID, result.Data[0].ID)
	assert.Equal(t, 1, result.Data[0].NumUpcomingShows)
}

func TestVenueSearch_StorageError(t *testing.T) {
	svc := newTestServices(t)
	svc.store.failWith = apperror.Storage("searching venues", errors.New("boom"))

	_, err := svc.venues.Search(context.Background(), "x")
	assert.ErrorIs(t, err, apperror.ErrStorage)
}
