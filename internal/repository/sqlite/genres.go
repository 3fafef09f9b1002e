package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// genreTable names a child table holding an ordered genre list.
// Both fields are package constants, never user input, so building SQL
// from them with Sprintf is safe.
type genreTable struct {
	name     string
	ownerCol string
}

var (
	venueGenres  = genreTable{name: "venue_genres", ownerCol: "venue_id"}
	artistGenres = genreTable{name: "artist_genres", ownerCol: "artist_id"}
)

// replace deletes the owner's genres and inserts the new list in order.
func (g genreTable) replace(ctx context.Context, tx *sql.Tx, ownerID string, genres []string) error {
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, g.name, g.ownerCol),
		ownerID,
	); err != nil {
		return fmt.Errorf("clearing %s for %s: %w", g.name, ownerID, err)
	}

	insert := fmt.Sprintf(`INSERT INTO %s (%s, position, genre) VALUES (?, ?, ?)`, g.name, g.ownerCol)
	for i, genre := range genres {
		if _, err := tx.ExecContext(ctx, insert, ownerID, i, genre); err != nil {
			return fmt.Errorf("inserting %s[%d] for %s: %w", g.name, i, ownerID, err)
		}
	}
	return nil
}

// load returns the owner's genres in submitted order. The result is never
// nil so it encodes as [] rather than null.
func (g genreTable) load(ctx context.Context, q querier, ownerID string) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		fmt.Sprintf(`SELECT genre FROM %s WHERE %s = ? ORDER BY position`, g.name, g.ownerCol),
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("loading %s for %s: %w", g.name, ownerID, err)
	}
	defer rows.Close()

	genres := []string{}
	for rows.Next() {
		var genre string
		if err := rows.Scan(&genre); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", g.name, err)
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", g.name, err)
	}
	return genres, nil
}
