package repository // repository for concession product persistence

import (
    "context"      // context for managing deadlines
    "database/sql" // sql provides DB interfaces
    "errors"       // errors.Is for sentinel mapping

    "github.com/cinebook/cinema-booking/internal/model"
)

// ProductRepo encapsulates read access to the products table.  The
// full product list is offered on every booking page; there is no
// per-branch filtering in this schema.
type ProductRepo struct {
    db *sql.DB
}

// NewProductRepo constructs a ProductRepo given a DB handle.
func NewProductRepo(db *sql.DB) *ProductRepo {
    return &ProductRepo{db: db}
}

// List returns every concession product.
func (r *ProductRepo) List(ctx context.Context) ([]model.Product, error) {
    const q = `SELECT id, name, price, COALESCE(description, '') FROM products ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.Product, 0, 16)
    for rows.Next() {
        var p model.Product
        if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description); err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// GetByID loads one product so cart lines can carry its name and unit
// price.  Returns ErrProductNotFound when the row is missing.
func (r *ProductRepo) GetByID(ctx context.Context, productID uint64) (model.Product, error) {
    const q = `SELECT id, name, price, COALESCE(description, '') FROM products WHERE id = ? LIMIT 1`
    var p model.Product
    err := r.db.QueryRowContext(ctx, q, productID).Scan(&p.ID, &p.Name, &p.Price, &p.Description)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return model.Product{}, ErrProductNotFound
        }
        return model.Product{}, err
    }
    return p, nil
}
