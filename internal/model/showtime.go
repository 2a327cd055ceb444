package model

// Showtime describes one scheduled screening of a movie in a specific
// hall at a specific branch.  Seats are sold against a showtime, so the
// branch and hall identifiers here end up on every cart ticket.
type Showtime struct {
    ID            uint64 `json:"showtime_id"`    // showtimes.id
    MovieID       uint64 `json:"movie_id"`       // showtimes.movie_id
    MovieTitle    string `json:"movie_title"`    // joined from movies.title
    Date          string `json:"date"`           // screening date, dd/mm/yyyy
    StartTime     string `json:"start_time"`     // HH:MM
    Format        string `json:"format"`         // 2D, 3D, IMAX
    Subtitle      string `json:"subtitle"`       // subtitle language
    BranchID      uint64 `json:"branch_id"`      // showtimes.branch_id
    BranchName    string `json:"branch_name"`    // joined from branches.name
    BranchAddress string `json:"branch_address"` // joined from branches.address
    HallNumber    uint32 `json:"hall_number"`    // showtimes.hall_number
    HallType      string `json:"hall_type"`      // joined from halls.hall_type
}

// ShowtimeSeat is one seat of a showtime's seat map together with its
// availability.  Status is "Available" when no ticket has been sold
// for the seat and "Booked" otherwise; only available seats may be
// toggled into a selection.
type ShowtimeSeat struct {
    SeatNumber string `json:"seat_number"` // seats.seat_number
    SeatType   string `json:"seat_type"`   // seats.seat_type
    Status     string `json:"status"`      // Available | Booked
}
