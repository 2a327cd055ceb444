package repository // repository for receipt persistence

import (
    "context"      // context for managing deadlines
    "database/sql" // sql provides DB interfaces
    "strings"      // duplicate-key detection on ticket inserts

    "github.com/cinebook/cinema-booking/internal/model"
)

// ReceiptRepo encapsulates the transactional creation of a receipt
// with its ticket and product lines.  Everything for one checkout
// happens in a single transaction so a failed seat insert leaves no
// partial receipt behind.
type ReceiptRepo struct {
    db       *sql.DB
    vouchers *VoucherRepo
}

// NewReceiptRepo constructs a ReceiptRepo given a DB handle and the
// voucher repository used to flip applied vouchers inside the
// checkout transaction.
func NewReceiptRepo(db *sql.DB, vouchers *VoucherRepo) *ReceiptRepo {
    return &ReceiptRepo{db: db, vouchers: vouchers}
}

// Create validates and persists one checkout payload: the receipt
// header (receipt_date is parsed from dd/mm/yyyy in SQL), all ticket
// rows, all product rows, and the Used flip of the applied voucher
// when cv_id is present.  It returns the new receipt id.
//
// Payloads with neither tickets nor products are rejected with
// ErrEmptyReceipt before the transaction starts.
func (r *ReceiptRepo) Create(ctx context.Context, req model.ReceiptRequest) (uint64, error) {
    if len(req.Tickets) == 0 && len(req.Products) == 0 {
        return 0, ErrEmptyReceipt
    }

    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const insReceipt = `
        INSERT INTO receipts (receipt_date, method, customer_id, cv_id)
        VALUES (STR_TO_DATE(?, '%d/%m/%Y'), ?, ?, ?)`
    res, err := tx.ExecContext(ctx, insReceipt, req.ReceiptDate, req.Method, req.CustomerID, req.CVID)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    receiptID := uint64(id)

    if len(req.Tickets) > 0 {
        // Build a multi-row INSERT with placeholders for each ticket.
        query := `INSERT INTO tickets (receipt_id, movie_id, showtime_id, branch_id, hall_number, seat_number, price) VALUES `
        args := make([]interface{}, 0, len(req.Tickets)*7)
        for i, t := range req.Tickets {
            if i > 0 {
                query += ","
            }
            query += "(?, ?, ?, ?, ?, ?, ?)"
            args = append(args, receiptID, t.MovieID, t.ShowtimeID, t.BranchID, t.HallNumber, t.SeatNumber, t.Price)
        }
        if _, err := tx.ExecContext(ctx, query, args...); err != nil {
            // The unique (showtime_id, seat_number) index rejects seats
            // sold between selection and checkout.
            if strings.Contains(strings.ToLower(err.Error()), "1062") {
                return 0, ErrSeatTaken
            }
            return 0, err
        }
    }

    if len(req.Products) > 0 {
        query := `INSERT INTO receipt_products (receipt_id, product_id, quantity) VALUES `
        args := make([]interface{}, 0, len(req.Products)*3)
        for i, p := range req.Products {
            if i > 0 {
                query += ","
            }
            query += "(?, ?, ?)"
            args = append(args, receiptID, p.ProductID, p.Quantity)
        }
        if _, err := tx.ExecContext(ctx, query, args...); err != nil {
            return 0, err
        }
    }

    if req.CVID != nil {
        if err := r.vouchers.MarkUsedTx(ctx, tx, req.CustomerID, *req.CVID); err != nil {
            return 0, err
        }
    }

    if err := tx.Commit(); err != nil {
        return 0, err
    }
    committed = true
    return receiptID, nil
}

// GetDate returns the stored date of a receipt formatted dd/mm/yyyy.
// The confirmation page uses it to render the booking summary.
func (r *ReceiptRepo) GetDate(ctx context.Context, receiptID uint64) (string, error) {
    const q = `SELECT DATE_FORMAT(receipt_date, '%d/%m/%Y') FROM receipts WHERE id = ? LIMIT 1`
    var date string
    err := r.db.QueryRowContext(ctx, q, receiptID).Scan(&date)
    return date, err
}
