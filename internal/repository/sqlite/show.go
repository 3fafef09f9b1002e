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

var _ repository.ShowRepository = (*DB)(nil)

// windowClause returns the start_time predicate for w. Both sides compare
// TEXT in model.TimeLayout, which sorts chronologically.
func windowClause(w model.ShowWindow) string {
	if w == model.Past {
		return "s.start_time < ?"
	}
	return "s.start_time >= ?"
}

// CreateShow books an artist at a venue.
//
// The venue and artist are looked up inside the same transaction as the
// insert, so a missing reference is reported as a validation error on the
// offending field and nothing is written.
func (db *DB) CreateShow(ctx context.Context, show *model.Show) error {
	id := xid.New().String()
	now := time.Now().UTC()
	start := show.StartTime.UTC().Truncate(time.Second)

	err := db.withTx(ctx, "creating show", func(tx *sql.Tx) error {
		if err := requireRow(ctx, tx, "venues", show.VenueID); err != nil {
			if errors.Is(err, errNoRow) {
				return apperror.ValidationFailed("venue_id", fmt.Sprintf("venue %s does not exist", show.VenueID))
			}
			return err
		}
		if err := requireRow(ctx, tx, "artists", show.ArtistID); err != nil {
			if errors.Is(err, errNoRow) {
				return apperror.ValidationFailed("artist_id", fmt.Sprintf("artist %s does not exist", show.ArtistID))
			}
			return err
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO shows (id, venue_id, artist_id, start_time, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			id,
			show.VenueID,
			show.ArtistID,
			model.FormatTime(start),
			now,
		)
		if err != nil {
			return fmt.Errorf("inserting show: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	show.ID = id
	show.StartTime = start
	show.CreatedAt = now
	return nil
}

var errNoRow = errors.New("no such row")

// requireRow returns errNoRow when table has no row with the given id.
// table is always a package constant.
func requireRow(ctx context.Context, tx *sql.Tx, table, id string) error {
	var exists bool
	if err := tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = ?)`, table),
		id,
	).Scan(&exists); err != nil {
		return fmt.Errorf("looking up %s %s: %w", table, id, err)
	}
	if !exists {
		return errNoRow
	}
	return nil
}

// ListShows returns every show joined with the current venue and artist
// rows, earliest first.
func (db *DB) ListShows(ctx context.Context) ([]model.ShowListing, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT s.id, v.id, v.name, a.id, a.name, a.image_link, s.start_time
		 FROM shows s
		 JOIN venues v ON v.id = s.venue_id
		 JOIN artists a ON a.id = s.artist_id
		 ORDER BY s.start_time, s.id`,
	)
	if err != nil {
		return nil, apperror.Storage("listing shows", err)
	}
	defer rows.Close()

	shows := []model.ShowListing{}
	for rows.Next() {
		var l model.ShowListing
		if err := rows.Scan(
			&l.ID, &l.VenueID, &l.VenueName,
			&l.ArtistID, &l.ArtistName, &l.ArtistImageLink,
			&l.StartTime,
		); err != nil {
			return nil, apperror.Storage("listing shows", err)
		}
		shows = append(shows, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("listing shows", err)
	}
	return shows, nil
}

// ListVenueShows returns the venue's shows in window w relative to at,
// each joined with its artist.
func (db *DB) ListVenueShows(ctx context.Context, venueID string, at time.Time, w model.ShowWindow) ([]model.ArtistShow, error) {
	op := fmt.Sprintf("listing %s venue shows", w)
	rows, err := db.conn.QueryContext(ctx,
		`SELECT a.id, a.name, a.image_link, s.start_time
		 FROM shows s
		 JOIN artists a ON a.id = s.artist_id
		 WHERE s.venue_id = ? AND `+windowClause(w)+`
		 ORDER BY s.start_time, s.id`,
		venueID,
		model.FormatTime(at),
	)
	if err != nil {
		return nil, apperror.Storage(op, err)
	}
	defer rows.Close()

	shows := []model.ArtistShow{}
	for rows.Next() {
		var s model.ArtistShow
		if err := rows.Scan(&s.ArtistID, &s.ArtistName, &s.ArtistImageLink, &s.StartTime); err != nil {
			return nil, apperror.Storage(op, err)
		}
		shows = append(shows, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage(op, err)
	}
	return shows, nil
}

// CountVenueShows counts the venue's shows in window w with its own
// statement, independent of ListVenueShows.
func (db *DB) CountVenueShows(ctx context.Context, venueID string, at time.Time, w model.ShowWindow) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shows s WHERE s.venue_id = ? AND `+windowClause(w),
		venueID,
		model.FormatTime(at),
	).Scan(&n)
	if err != nil {
		return 0, apperror.Storage(fmt.Sprintf("counting %s venue shows", w), err)
	}
	return n, nil
}

// ListArtistShows returns the artist's shows in window w relative to at,
// each joined with its venue.
func (db *DB) ListArtistShows(ctx context.Context, artistID string, at time.Time, w model.ShowWindow) ([]model.VenueShow, error) {
	op := fmt.Sprintf("listing %s artist shows", w)
	rows, err := db.conn.QueryContext(ctx,
		`SELECT v.id, v.name, v.image_link, s.start_time
		 FROM shows s
		 JOIN venues v ON v.id = s.venue_id
		 WHERE s.artist_id = ? AND `+windowClause(w)+`
		 ORDER BY s.start_time, s.id`,
		artistID,
		model.FormatTime(at),
	)
	if err != nil {
		return nil, apperror.Storage(op, err)
	}
	defer rows.Close()

	shows := []model.VenueShow{}
	for rows.Next() {
		var s model.VenueShow
		if err := rows.Scan(&s.VenueID, &s.VenueName, &s.VenueImageLink, &s.StartTime); err != nil {
			return nil, apperror.Storage(op, err)
		}
		shows = append(shows, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage(op, err)
	}
	return shows, nil
}

// CountArtistShows counts the artist's shows in window w.
func (db *DB) CountArtistShows(ctx context.Context, artistID string, at time.Time, w model.ShowWindow) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shows s WHERE s.artist_id = ? AND `+windowClause(w),
		artistID,
		model.FormatTime(at),
	).Scan(&n)
	if err != nil {
		return 0, apperror.Storage(fmt.Sprintf("counting %s artist shows", w), err)
	}
	return n, nil
}
