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

// VenueService handles business logic for venues.
type VenueService struct {
	venues repository.VenueRepository
	shows  repository.ShowRepository
	logger *slog.Logger
	opts   options
}

func NewVenueService(venues repository.VenueRepository, shows repository.ShowRepository, logger *slog.Logger, opts ...Option) *VenueService {
	return &VenueService{
		venues: venues,
		shows:  shows,
		logger: logger,
		opts:   buildOptions(opts),
	}
}

// Create validates the field set and stores a new venue.
func (s *VenueService) Create(ctx context.Context, fields model.VenueFields) (*model.Venue, error) {
	normalizeVenue(&fields)
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	venue := &model.Venue{}
	fields.Apply(venue)

	if err := s.venues.CreateVenue(ctx, venue); err != nil {
		logFailure(s.logger, "failed to create venue", err, slog.String("name", fields.Name))
		return nil, fmt.Errorf("creating venue: %w", err)
	}

	s.logger.Info("venue created",
		slog.String("id", venue.ID),
		slog.String("name", venue.Name),
	)
	return venue, nil
}

// Update replaces every editable field of an existing venue.
func (s *VenueService) Update(ctx context.Context, id string, fields model.VenueFields) (*model.Venue, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "venue ID is required")
	}

	normalizeVenue(&fields)
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	venue, err := s.venues.GetVenue(ctx, id)
	if err != nil {
		logFailure(s.logger, "failed to load venue for update", err, slog.String("id", id))
		return nil, err
	}

	fields.Apply(venue)
	if err := s.venues.UpdateVenue(ctx, venue); err != nil {
		logFailure(s.logger, "failed to update venue", err, slog.String("id", id))
		return nil, fmt.Errorf("updating venue: %w", err)
	}

	s.logger.Info("venue updated", slog.String("id", venue.ID))
	return venue, nil
}

// Get returns the venue with its shows split into past and upcoming.
//
// The four show queries all measure against the same "now". The counts come
// from their own COUNT statements rather than from len() of the lists.
func (s *VenueService) Get(ctx context.Context, id string) (*model.VenueDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "venue ID is required")
	}

	venue, err := s.venues.GetVenue(ctx, id)
	if err != nil {
		logFailure(s.logger, "failed to load venue", err, slog.String("id", id))
		return nil, err
	}

	now := s.opts.now()
	detail := &model.VenueDetail{Venue: *venue}

	if detail.PastShows, err = s.shows.ListVenueShows(ctx, id, now, model.Past); err != nil {
		return nil, s.showsErr(id, err)
	}
	if detail.UpcomingShows, err = s.shows.ListVenueShows(ctx, id, now, model.Upcoming); err != nil {
		return nil, s.showsErr(id, err)
	}
	if detail.PastShowsCount, err = s.shows.CountVenueShows(ctx, id, now, model.Past); err != nil {
		return nil, s.showsErr(id, err)
	}
	if detail.UpcomingShowsCount, err = s.shows.CountVenueShows(ctx, id, now, model.Upcoming); err != nil {
		return nil, s.showsErr(id, err)
	}

	return detail, nil
}

func (s *VenueService) showsErr(id string, err error) error {
	logFailure(s.logger, "failed to load venue shows", err, slog.String("id", id))
	return fmt.Errorf("loading shows for venue %s: %w", id, err)
}

// ListByCity returns the venues index: blocks of venues per city, each
// venue carrying its number of upcoming shows.
func (s *VenueService) ListByCity(ctx context.Context) ([]model.CityGroup, error) {
	rows, err := s.venues.ListVenuesByLocation(ctx, s.opts.now())
	if err != nil {
		logFailure(s.logger, "failed to list venues", err)
		return nil, fmt.Errorf("listing venues: %w", err)
	}
	return GroupByCity(rows), nil
}

// Search finds venues whose name contains term, ignoring case.
func (s *VenueService) Search(ctx context.Context, term string) (*model.SearchResult, error) {
	matches, err := s.venues.SearchVenues(ctx, strings.TrimSpace(term), s.opts.now())
	if err != nil {
		logFailure(s.logger, "failed to search venues", err, slog.String("term", term))
		return nil, fmt.Errorf("searching venues: %w", err)
	}
	return &model.SearchResult{Count: len(matches), Data: matches}, nil
}
