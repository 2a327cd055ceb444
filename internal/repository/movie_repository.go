package repository // repository for movie persistence

import (
    "context"      // context for managing deadlines
    "database/sql" // sql provides DB interfaces
    "errors"       // errors.Is for sentinel mapping

    "github.com/cinebook/cinema-booking/internal/model"
)

// MovieRepo encapsulates read access to the movies table.  Only the
// columns needed by the browse and booking pages are selected.
type MovieRepo struct {
    db *sql.DB
}

// NewMovieRepo constructs a MovieRepo given a DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
    return &MovieRepo{db: db}
}

// List returns all movies ordered by title for the browse page.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
    const q = `SELECT id, title, image, duration FROM movies ORDER BY title`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.Movie, 0, 16)
    for rows.Next() {
        var m model.Movie
        if err := rows.Scan(&m.ID, &m.Title, &m.Image, &m.Duration); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    return out, rows.Err()
}

// GetByID loads one movie.  Returns ErrMovieNotFound when the row is
// missing.
func (r *MovieRepo) GetByID(ctx context.Context, movieID uint64) (model.Movie, error) {
    const q = `SELECT id, title, image, duration FROM movies WHERE id = ? LIMIT 1`
    var m model.Movie
    err := r.db.QueryRowContext(ctx, q, movieID).Scan(&m.ID, &m.Title, &m.Image, &m.Duration)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return model.Movie{}, ErrMovieNotFound
        }
        return model.Movie{}, err
    }
    return m, nil
}
