package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/fyyur/internal/model"
	"github.com/sakif/fyyur/internal/repository"
)

// ShowService books shows and lists them.
type ShowService struct {
	shows  repository.ShowRepository
	logger *slog.Logger
	opts   options
}

func NewShowService(shows repository.ShowRepository, logger *slog.Logger, opts ...Option) *ShowService {
	return &ShowService{
		shows:  shows,
		logger: logger,
		opts:   buildOptions(opts),
	}
}

// Create books an artist at a venue. An empty start time books the show
// for now. A venue or artist that does not exist is a validation error.
func (s *ShowService) Create(ctx context.Context, fields model.ShowFields) (*model.Show, error) {
	trimSpace(&fields.VenueID, &fields.ArtistID)
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	start, err := parseStartTime(fields.StartTime, s.opts.now())
	if err != nil {
		return nil, err
	}

	show := &model.Show{
		VenueID:   fields.VenueID,
		ArtistID:  fields.ArtistID,
		StartTime: start,
	}
	if err := s.shows.CreateShow(ctx, show); err != nil {
		logFailure(s.logger, "failed to create show", err,
			slog.String("venue_id", fields.VenueID),
			slog.String("artist_id", fields.ArtistID),
		)
		return nil, fmt.Errorf("creating show: %w", err)
	}

	s.logger.Info("show created",
		slog.String("id", show.ID),
		slog.String("venue_id", show.VenueID),
		slog.String("artist_id", show.ArtistID),
		slog.String("start_time", model.FormatTime(show.StartTime)),
	)
	return show, nil
}

// List returns every show with its venue and artist names.
func (s *ShowService) List(ctx context.Context) ([]model.ShowListing, error) {
	shows, err := s.shows.ListShows(ctx)
	if err != nil {
		logFailure(s.logger, "failed to list shows", err)
		return nil, fmt.Errorf("listing shows: %w", err)
	}
	return shows, nil
}
