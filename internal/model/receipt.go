package model

// ReceiptProduct is one concession line of a checkout payload.  Only
// the product identifier and quantity are submitted; the database
// resolves the unit price.
type ReceiptProduct struct {
    ProductID uint64 `json:"product_id"` // receipt_products.product_id
    Quantity  int    `json:"quantity"`   // receipt_products.quantity
}

// ReceiptTicket is one ticket line of a checkout payload.  The price
// is the value the customer saw at selection time and is stored
// verbatim on the ticket row.
type ReceiptTicket struct {
    MovieID    uint64  `json:"movie_id"`    // tickets.movie_id
    ShowtimeID uint64  `json:"showtime_id"` // tickets.showtime_id
    BranchID   uint64  `json:"branch_id"`   // tickets.branch_id
    HallNumber uint32  `json:"hall_number"` // tickets.hall_number
    SeatNumber string  `json:"seat_number"` // tickets.seat_number
    Price      float64 `json:"price"`       // tickets.price
}

// ReceiptRequest is the full checkout submission assembled from a
// customer's cart.  ReceiptDate uses dd/mm/yyyy, Method is one of
// CARD, UPI or BANK, and CVID is nil when no voucher is applied.
// A request must carry at least one ticket or product.
type ReceiptRequest struct {
    ReceiptDate string           `json:"receipt_date"` // dd/mm/yyyy
    Method      string           `json:"method"`       // CARD | UPI | BANK
    CustomerID  uint64           `json:"customer_id"`  // receipts.customer_id
    CVID        *uint64          `json:"cv_id"`        // applied voucher, nullable
    Products    []ReceiptProduct `json:"products"`
    Tickets     []ReceiptTicket  `json:"tickets"`
}
