package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/cinebook/cinema-booking/internal/model"
	"github.com/cinebook/cinema-booking/internal/utils"
)

// CustomerRepo persists accounts in the 'customers' table.
type CustomerRepo struct{ DB *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts a customer and returns its ID. Self-registered
// accounts always get the CUSTOMER role.
func (r *CustomerRepo) Create(ctx context.Context, fullName, email, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO customers (full_name, email, password_hash, role) VALUES (?,?,?,'CUSTOMER')",
		strings.TrimSpace(fullName), email, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a customer by normalized email.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (model.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var cu model.Customer
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,full_name,email,password_hash,role,is_active,created_at,updated_at FROM customers WHERE email=? LIMIT 1",
		email).Scan(&cu.ID, &cu.FullName, &cu.Email, &cu.PasswordHash, &cu.Role, &cu.IsActive, &cu.CreatedAt, &cu.UpdatedAt)
	return cu, err
}

// GetByID fetches a customer by id.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (model.Customer, error) {
	var cu model.Customer
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,full_name,email,password_hash,role,is_active,created_at,updated_at FROM customers WHERE id=? LIMIT 1",
		id).Scan(&cu.ID, &cu.FullName, &cu.Email, &cu.PasswordHash, &cu.Role, &cu.IsActive, &cu.CreatedAt, &cu.UpdatedAt)
	return cu, err
}
