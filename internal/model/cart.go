package model

// CartTicket is one priced seat for one showtime held in a customer's
// cart.  Seat numbers are unique within a cart: a seat cannot be added
// twice for the same showtime.  MovieName and SeatType are display
// helpers and are not part of the checkout payload.
type CartTicket struct {
    MovieID    uint64  `json:"movie_id"`             // tickets.movie_id
    ShowtimeID uint64  `json:"showtime_id"`          // tickets.showtime_id
    BranchID   uint64  `json:"branch_id"`            // tickets.branch_id
    HallNumber uint32  `json:"hall_number"`          // tickets.hall_number
    SeatNumber string  `json:"seat_number"`          // tickets.seat_number (e.g. "A1")
    Price      float64 `json:"price"`                // per-ticket price
    MovieName  string  `json:"movie_name,omitempty"` // display only
    SeatType   string  `json:"seat_type,omitempty"`  // display only
}

// CartProduct is a concession line in a customer's cart.  Lines are
// unique by ProductID; adding an already-present product increments
// the existing quantity instead of appending a duplicate.  A line
// with quantity zero or below is never persisted.
type CartProduct struct {
    ProductID uint64  `json:"product_id"`      // products.id
    Quantity  int     `json:"quantity"`        // always >= 1 once stored
    Name      string  `json:"name,omitempty"`  // display only
    Price     float64 `json:"price,omitempty"` // unit price used for totals
}

// VoucherSelection is the single applied voucher slot of a cart.  At
// most one voucher is active at a time; applying a new voucher
// replaces the previous one.  Discount is a whole-cart percentage in
// the range 0..100.
type VoucherSelection struct {
    CVID     uint64  `json:"cv_id"`          // customer_vouchers.cv_id
    Code     string  `json:"code,omitempty"` // display code, e.g. "V12"
    Discount float64 `json:"discount"`       // percentage 0..100
}
