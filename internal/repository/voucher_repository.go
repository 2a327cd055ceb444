package repository // repository for customer voucher persistence

import (
    "context"      // context for managing deadlines
    "database/sql" // sql provides DB interfaces
    "errors"       // errors.Is for sentinel mapping

    "github.com/cinebook/cinema-booking/internal/model"
)

// VoucherRepo encapsulates database operations for customer vouchers.
// Vouchers are granted per customer (customer_vouchers) and reference
// a shared voucher definition (vouchers) carrying the discount and
// free-text condition.
type VoucherRepo struct {
    db *sql.DB
}

// NewVoucherRepo constructs a VoucherRepo given a DB handle.
func NewVoucherRepo(db *sql.DB) *VoucherRepo {
    return &VoucherRepo{db: db}
}

// ListByCustomer returns all vouchers granted to one customer, joined
// with their definitions, ordered by grant id.  Expiration is
// formatted dd/mm/yyyy to match the client contract.  An empty slice
// is returned when the customer has none.
func (r *VoucherRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]model.CustomerVoucher, error) {
    const q = `
        SELECT cv.cv_id, cv.voucher_id, cv.status,
               v.discount,
               DATE_FORMAT(v.expiration, '%d/%m/%Y'),
               v.` + "`condition`" + `, v.description
        FROM customer_vouchers cv
        JOIN vouchers v ON v.id = cv.voucher_id
        WHERE cv.customer_id = ?
        ORDER BY cv.cv_id`
    rows, err := r.db.QueryContext(ctx, q, customerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.CustomerVoucher, 0, 8)
    for rows.Next() {
        var v model.CustomerVoucher
        if err := rows.Scan(&v.CVID, &v.VoucherID, &v.Status, &v.Discount, &v.Expiration, &v.Condition, &v.Description); err != nil {
            return nil, err
        }
        out = append(out, v)
    }
    return out, rows.Err()
}

// GetForCustomer loads one granted voucher, enforcing ownership in the
// query.  Returns ErrVoucherNotFound when the grant does not exist or
// belongs to another customer.
func (r *VoucherRepo) GetForCustomer(ctx context.Context, customerID, cvID uint64) (model.CustomerVoucher, error) {
    const q = `
        SELECT cv.cv_id, cv.voucher_id, cv.status,
               v.discount,
               DATE_FORMAT(v.expiration, '%d/%m/%Y'),
               v.` + "`condition`" + `, v.description
        FROM customer_vouchers cv
        JOIN vouchers v ON v.id = cv.voucher_id
        WHERE cv.customer_id = ? AND cv.cv_id = ?
        LIMIT 1`
    var v model.CustomerVoucher
    err := r.db.QueryRowContext(ctx, q, customerID, cvID).Scan(
        &v.CVID, &v.VoucherID, &v.Status, &v.Discount, &v.Expiration, &v.Condition, &v.Description)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return model.CustomerVoucher{}, ErrVoucherNotFound
        }
        return model.CustomerVoucher{}, err
    }
    return v, nil
}

// MarkUsedTx flips one granted voucher to Used inside an existing
// transaction.  Called by the receipt repository when a checkout that
// applied the voucher commits.  The status guard in the WHERE clause
// makes the flip the single-use enforcement point: a voucher that is
// no longer Unused at commit time matches zero rows and the whole
// checkout aborts with ErrVoucherUsed.
func (r *VoucherRepo) MarkUsedTx(ctx context.Context, tx *sql.Tx, customerID, cvID uint64) error {
    const q = `UPDATE customer_vouchers SET status = 'Used' WHERE customer_id = ? AND cv_id = ? AND status = 'Unused'`
    res, err := tx.ExecContext(ctx, q, customerID, cvID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrVoucherUsed
    }
    return nil
}
