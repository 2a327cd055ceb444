package repository // repository for showtime persistence

import (
    "context"      // context for managing deadlines
    "database/sql" // sql provides DB interfaces
    "errors"       // errors.Is for sentinel mapping

    "github.com/cinebook/cinema-booking/internal/model"
)

// ShowtimeRepo encapsulates database operations for showtimes and the
// per-showtime seat map.  Seat availability is derived from sold
// tickets: a seat with a ticket row for the showtime is Booked,
// everything else is Available.
type ShowtimeRepo struct {
    db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo given a DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo {
    return &ShowtimeRepo{db: db}
}

// GetInfo loads the showtime header joined with its movie, branch and
// hall.  The dd/mm/yyyy date format matches what clients render and
// what receipts store.  Returns ErrShowtimeNotFound when the showtime
// does not exist or belongs to a different movie.
func (r *ShowtimeRepo) GetInfo(ctx context.Context, movieID, showtimeID uint64) (model.Showtime, error) {
    const q = `
        SELECT st.id, st.movie_id, m.title,
               DATE_FORMAT(st.show_date, '%d/%m/%Y'),
               TIME_FORMAT(st.start_time, '%H:%i'),
               st.format, st.subtitle,
               b.id, b.name, b.address,
               st.hall_number, h.hall_type
        FROM showtimes st
        JOIN movies m   ON m.id = st.movie_id
        JOIN branches b ON b.id = st.branch_id
        JOIN halls h    ON h.branch_id = st.branch_id AND h.hall_number = st.hall_number
        WHERE st.id = ? AND st.movie_id = ?
        LIMIT 1`
    var s model.Showtime
    err := r.db.QueryRowContext(ctx, q, showtimeID, movieID).Scan(
        &s.ID, &s.MovieID, &s.MovieTitle,
        &s.Date, &s.StartTime,
        &s.Format, &s.Subtitle,
        &s.BranchID, &s.BranchName, &s.BranchAddress,
        &s.HallNumber, &s.HallType,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return model.Showtime{}, ErrShowtimeNotFound
        }
        return model.Showtime{}, err
    }
    return s, nil
}

// ListSeats returns the full seat map of a showtime's hall with
// derived availability.  Seats are ordered by seat number so the map
// renders and slices deterministically.
func (r *ShowtimeRepo) ListSeats(ctx context.Context, showtimeID uint64) ([]model.ShowtimeSeat, error) {
    const q = `
        SELECT s.seat_number, s.seat_type,
               CASE WHEN t.id IS NULL THEN 'Available' ELSE 'Booked' END
        FROM showtimes st
        JOIN seats s
          ON s.branch_id = st.branch_id AND s.hall_number = st.hall_number
        LEFT JOIN tickets t
          ON t.showtime_id = st.id AND t.seat_number = s.seat_number
        WHERE st.id = ?
        ORDER BY s.seat_number`
    rows, err := r.db.QueryContext(ctx, q, showtimeID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.ShowtimeSeat, 0, 64)
    for rows.Next() {
        var s model.ShowtimeSeat
        if err := rows.Scan(&s.SeatNumber, &s.SeatType, &s.Status); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}
