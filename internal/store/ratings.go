package store

import (
	"context"
	"database/sql"
	"time"
)

// Migrate brings the snapshot schema up to date. Versioned through
// PRAGMA user_version so re-running is a no-op.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS ratings (
  username TEXT NOT NULL,
  movie_id INTEGER NOT NULL,
  rating   INTEGER NOT NULL,
  rated_at TEXT NOT NULL,
  PRIMARY KEY (username, movie_id)
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_ratings_username
ON ratings(username);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

// SaveRatings replaces username's snapshot with the given ratings map, in
// one transaction so a crash never leaves a half-written snapshot.
func SaveRatings(ctx context.Context, db *sql.DB, username string, ratings map[int]int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ratings WHERE username = ?;`, username); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for id, r := range ratings {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO ratings(username, movie_id, rating, rated_at)
VALUES(?,?,?,?);`, username, id, r, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadRatings returns username's stored snapshot, empty map if none.
func LoadRatings(ctx context.Context, db *sql.DB, username string) (map[int]int, error) {
	rows, err := db.QueryContext(ctx, `
SELECT movie_id, rating FROM ratings WHERE username = ?;`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int]int{}
	for rows.Next() {
		var id, r int
		if err := rows.Scan(&id, &r); err != nil {
			return nil, err
		}
		out[id] = r
	}
	return out, rows.Err()
}

// DeleteRatings drops username's snapshot.
func DeleteRatings(ctx context.Context, db *sql.DB, username string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM ratings WHERE username = ?;`, username)
	return err
}
