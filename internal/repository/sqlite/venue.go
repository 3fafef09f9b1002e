package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/fyyur/internal/apperror"
	"github.com/sakif/fyyur/internal/model"
	"github.com/sakif/fyyur/internal/repository"
)

// Compile-time check that *DB satisfies the venue contract.
var _ repository.VenueRepository = (*DB)(nil)

// upcomingForVenue counts a venue's shows at or after the bound reference time.
const upcomingForVenue = `(SELECT COUNT(*) FROM shows s WHERE s.venue_id = v.id AND s.start_time >= ?)`

// CreateVenue inserts the venue row and its genres in one transaction.
// On success the caller's venue carries the generated ID and timestamps.
func (db *DB) CreateVenue(ctx context.Context, venue *model.Venue) error {
	id := xid.New().String()
	now := time.Now().UTC()

	err := db.withTx(ctx, "creating venue", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO venues (id, name, city, state, address, phone, image_link, website,
			                     facebook_link, seeking_talent, seeking_description, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id,
			venue.Name,
			venue.City,
			venue.State,
			venue.Address,
			venue.Phone,
			venue.ImageLink,
			venue.Website,
			venue.FacebookLink,
			venue.SeekingTalent,
			venue.SeekingDescription,
			now,
			now,
		)
		if err != nil {
			return fmt.Errorf("inserting venue: %w", err)
		}
		return venueGenres.replace(ctx, tx, id, venue.Genres)
	})
	if err != nil {
		return err
	}

	venue.ID = id
	venue.CreatedAt = now
	venue.UpdatedAt = now
	if venue.Genres == nil {
		venue.Genres = []string{}
	}
	return nil
}

// GetVenue loads one venue with its genres.
func (db *DB) GetVenue(ctx context.Context, id string) (*model.Venue, error) {
	var v model.Venue
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, city, state, address, phone, image_link, website,
		        facebook_link, seeking_talent, seeking_description, created_at, updated_at
		 FROM venues
		 WHERE id = ?`,
		id,
	).Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone,
		&v.ImageLink, &v.Website, &v.FacebookLink,
		&v.SeekingTalent, &v.SeekingDescription,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("venue", id)
		}
		return nil, apperror.Storage("loading venue", fmt.Errorf("sqlite: getting venue %s: %w", id, err))
	}

	genres, err := venueGenres.load(ctx, db.conn, id)
	if err != nil {
		return nil, apperror.Storage("loading venue", err)
	}
	v.Genres = genres

	return &v, nil
}

// UpdateVenue overwrites every editable column and replaces the genre list.
// Either all of it lands or none of it does.
func (db *DB) UpdateVenue(ctx context.Context, venue *model.Venue) error {
	now := time.Now().UTC()

	err := db.withTx(ctx, "updating venue", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE venues
			 SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?,
			     website = ?, facebook_link = ?, seeking_talent = ?, seeking_description = ?,
			     updated_at = ?
			 WHERE id = ?`,
			venue.Name,
			venue.City,
			venue.State,
			venue.Address,
			venue.Phone,
			venue.ImageLink,
			venue.Website,
			venue.FacebookLink,
			venue.SeekingTalent,
			venue.SeekingDescription,
			now,
			venue.ID,
		)
		if err != nil {
			return fmt.Errorf("updating venue %s: %w", venue.ID, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return apperror.NotFound("venue", venue.ID)
		}

		return venueGenres.replace(ctx, tx, venue.ID, venue.Genres)
	})
	if err != nil {
		return err
	}

	venue.UpdatedAt = now
	return nil
}

// ListVenuesByLocation returns every venue ordered by city, then state.
// Ties fall back to id, which xid makes creation order.
func (db *DB) ListVenuesByLocation(ctx context.Context, at time.Time) ([]model.LocatedVenue, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT v.id, v.name, v.city, v.state, `+upcomingForVenue+`
		 FROM venues v
		 ORDER BY v.city, v.state, v.id`,
		model.FormatTime(at),
	)
	if err != nil {
		return nil, apperror.Storage("listing venues", err)
	}
	defer rows.Close()

	venues := []model.LocatedVenue{}
	for rows.Next() {
		var lv model.LocatedVenue
		if err := rows.Scan(&lv.ID, &lv.Name, &lv.City, &lv.State, &lv.NumUpcomingShows); err != nil {
			return nil, apperror.Storage("listing venues", err)
		}
		venues = append(venues, lv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("listing venues", err)
	}
	return venues, nil
}

// SearchVenues returns venues whose name contains term, ignoring case.
// An empty term matches every venue.
func (db *DB) SearchVenues(ctx context.Context, term string, at time.Time) ([]model.EntitySummary, error) {
	// instr() instead of LIKE: the term is matched literally, so a user
	// typing "%" or "_" gets exactly those characters.
	rows, err := db.conn.QueryContext(ctx,
		`SELECT v.id, v.name, `+upcomingForVenue+`
		 FROM venues v
		 WHERE instr(fold(v.name), fold(?)) > 0
		 ORDER BY v.name, v.id`,
		model.FormatTime(at),
		term,
	)
	if err != nil {
		return nil, apperror.Storage("searching venues", err)
	}
	defer rows.Close()

	matches := []model.EntitySummary{}
	for rows.Next() {
		var s model.EntitySummary
		if err := rows.Scan(&s.ID, &s.Name, &s.NumUpcomingShows); err != nil {
			return nil, apperror.Storage("searching venues", err)
		}
		matches = append(matches, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("searching venues", err)
	}
	return matches, nil
}
