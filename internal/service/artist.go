package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/fyyur/internal/apperror"
	"github.com/sakif/fyyur/internal/model"
	"github.com/sakif/fyyur/internal/repository"
)

// ArtistService handles business logic for artists.
type ArtistService struct {
	artists repository.ArtistRepository
	shows   repository.ShowRepository
	logger  *slog.Logger
	opts    options
}

func NewArtistService(artists repository.ArtistRepository, shows repository.ShowRepository, logger *slog.Logger, opts ...Option) *ArtistService {
	return &ArtistService{
		artists: artists,
		shows:   shows,
		logger:  logger,
		opts:    buildOptions(opts),
	}
}

func (s *ArtistService) Create(ctx context.Context, fields model.ArtistFields) (*model.Artist, error) {
	normalizeArtist(&fields)
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	artist := &model.Artist{}
	fields.Apply(artist)

	if err := s.artists.CreateArtist(ctx, artist); err != nil {
		logFailure(s.logger, "failed to create artist", err, slog.String("name", fields.Name))
		return nil, fmt.Errorf("creating artist: %w", err)
	}

	s.logger.Info("artist created",
		slog.String("id", artist.ID),
		slog.String("name", artist.Name),
	)
	return artist, nil
}

// Update replaces every editable field of an existing artist.
func (s *ArtistService) Update(ctx context.Context, id string, fields model.ArtistFields) (*model.Artist, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "artist ID is required")
	}

	normalizeArtist(&fields)
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	artist, err := s.artists.GetArtist(ctx, id)
	if err != nil {
		logFailure(s.logger, "failed to load artist for update", err, slog.String("id", id))
		return nil, err
	}

	fields.Apply(artist)
	if err := s.artists.UpdateArtist(ctx, artist); err != nil {
		logFailure(s.logger, "failed to update artist", err, slog.String("id", id))
		return nil, fmt.Errorf("updating artist: %w", err)
	}

	s.logger.Info("artist updated", slog.String("id", artist.ID))
	return artist, nil
}

// Get returns the artist with its shows split into past and upcoming.
func (s *ArtistService) Get(ctx context.Context, id string) (*model.ArtistDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "artist ID is required")
	}

	artist, err := s.artists.GetArtist(ctx, id)
	if err != nil {
		logFailure(s.logger, "failed to load artist", err, slog.String("id", id))
		return nil, err
	}

	now := s.opts.now()
	detail := &model.ArtistDetail{Artist: *artist}

	if detail.PastShows, err = s.shows.ListArtistShows(ctx, id, now, model.Past); err != nil {
		return nil, s.showsErr(id, err)
	}
	if detail.UpcomingShows, err = s.shows.ListArtistShows(ctx, id, now, model.Upcoming); err != nil {
		return nil, s.showsErr(id, err)
	}
	if detail.PastShowsCount, err = s.shows.CountArtistShows(ctx, id, now, model.Past); err != nil {
		return nil, s.showsErr(id, err)
	}
	if detail.UpcomingShowsCount, err = s.shows.CountArtistShows(ctx, id, now, model.Upcoming); err != nil {
		return nil, s.showsErr(id, err)
	}

	return detail, nil
}

func (s *ArtistService) showsErr(id string, err error) error {
	logFailure(s.logger, "failed to load artist shows", err, slog.String("id", id))
	return fmt.Errorf("loading shows for artist %s: %w", id, err)
}

// List returns every artist as an id/name pair.
func (s *ArtistService) List(ctx context.Context) ([]model.EntitySummary, error) {
	artists, err := s.artists.ListArtists(ctx)
	if err != nil {
		logFailure(s.logger, "failed to list artists", err)
		return nil, fmt.Errorf("listing artists: %w", err)
	}
	return artists, nil
}

// Search finds artists whose name contains term, ignoring case.
// Matches always report zero upcoming shows.
func (s *ArtistService) Search(ctx context.Context, term string) (*model.SearchResult, error) {
	matches, err := s.artists.SearchArtists(ctx, strings.TrimSpace(term))
	if err != nil {
		logFailure(s.logger, "failed to search artists", err, slog.String("term", term))
		return nil, fmt.Errorf("searching artists: %w", err)
	}
	return &model.SearchResult{Count: len(matches), Data: matches}, nil
}
