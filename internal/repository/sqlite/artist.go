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

var _ repository.ArtistRepository = (*DB)(nil)

// CreateArtist inserts the artist row and its genres in one transaction.
func (db *DB) CreateArtist(ctx context.Context, artist *model.Artist) error {
	id := xid.New().String()
	now := time.Now().UTC()

	err := db.withTx(ctx, "creating artist", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO artists (id, name, city, state, phone, image_link, website,
			                      facebook_link, seeking_venue, seeking_description, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id,
			artist.Name,
			artist.City,
			artist.State,
			artist.Phone,
			artist.ImageLink,
			artist.Website,
			artist.FacebookLink,
			artist.SeekingVenue,
			artist.SeekingDescription,
			now,
			now,
		)
		if err != nil {
			return fmt.Errorf("inserting artist: %w", err)
		}
		return artistGenres.replace(ctx, tx, id, artist.Genres)
	})
	if err != nil {
		return err
	}

	artist.ID = id
	artist.CreatedAt = now
	artist.UpdatedAt = now
	if artist.Genres == nil {
		artist.Genres = []string{}
	}
	return nil
}

// GetArtist loads one artist with its genres.
func (db *DB) GetArtist(ctx context.Context, id string) (*model.Artist, error) {
	var a model.Artist
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, city, state, phone, image_link, website,
		        facebook_link, seeking_venue, seeking_description, created_at, updated_at
		 FROM artists
		 WHERE id = ?`,
		id,
	).Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone,
		&a.ImageLink, &a.Website, &a.FacebookLink,
		&a.SeekingVenue, &a.SeekingDescription,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("artist", id)
		}
		return nil, apperror.Storage("loading artist", fmt.Errorf("sqlite: getting artist %s: %w", id, err))
	}

	genres, err := artistGenres.load(ctx, db.conn, id)
	if err != nil {
		return nil, apperror.Storage("loading artist", err)
	}
	a.Genres = genres

	return &a, nil
}

// UpdateArtist overwrites every editable column and replaces the genre list.
func (db *DB) UpdateArtist(ctx context.Context, artist *model.Artist) error {
	now := time.Now().UTC()

	err := db.withTx(ctx, "updating artist", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE artists
			 SET name = ?, city = ?, state = ?, phone = ?, image_link = ?, website = ?,
			     facebook_link = ?, seeking_venue = ?, seeking_description = ?, updated_at = ?
			 WHERE id = ?`,
			artist.Name,
			artist.City,
			artist.State,
			artist.Phone,
			artist.ImageLink,
			artist.Website,
			artist.FacebookLink,
			artist.SeekingVenue,
			artist.SeekingDescription,
			now,
			artist.ID,
		)
		if err != nil {
			return fmt.Errorf("updating artist %s: %w", artist.ID, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return apperror.NotFound("artist", artist.ID)
		}

		return artistGenres.replace(ctx, tx, artist.ID, artist.Genres)
	})
	if err != nil {
		return err
	}

	artist.UpdatedAt = now
	return nil
}

// ListArtists returns every artist as an id/name summary in creation order.
func (db *DB) ListArtists(ctx context.Context) ([]model.EntitySummary, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, name FROM artists ORDER BY id`)
	if err != nil {
		return nil, apperror.Storage("listing artists", err)
	}
	defer rows.Close()

	return scanArtistSummaries(rows, "listing artists")
}

// SearchArtists returns artists whose name contains term, ignoring case.
// Unlike SearchVenues it does not count upcoming shows; every match
// reports NumUpcomingShows = 0.
func (db *DB) SearchArtists(ctx context.Context, term string) ([]model.EntitySummary, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name
		 FROM artists
		 WHERE instr(fold(name), fold(?)) > 0
		 ORDER BY name, id`,
		term,
	)
	if err != nil {
		return nil, apperror.Storage("searching artists", err)
	}
	defer rows.Close()

	return scanArtistSummaries(rows, "searching artists")
}

func scanArtistSummaries(rows *sql.Rows, op string) ([]model.EntitySummary, error) {
	artists := []model.EntitySummary{}
	for rows.Next() {
		var s model.EntitySummary
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, apperror.Storage(op, err)
		}
		artists = append(artists, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage(op, err)
	}
	return artists, nil
}
