package model

import "time"

// Customer represents an account in the `customers` table.  All cart,
// voucher and receipt data is keyed by the customer's ID.  Handlers
// define their own response types; json tags are therefore omitted.
//
// Fields:
//  ID           - primary key identifier.
//  FullName     - display name shown on receipts.
//  Email        - unique login email.
//  PasswordHash - bcrypt hashed password.
//  Role         - always CUSTOMER for self-registered accounts.
//  IsActive     - whether the account may log in.
//  CreatedAt    - timestamp of creation.
//  UpdatedAt    - timestamp of last update.
type Customer struct {
    ID           uint64    // customers.id
    FullName     string    // customers.full_name
    Email        string    // customers.email
    PasswordHash string    // customers.password_hash
    Role         string    // customers.role
    IsActive     bool      // customers.is_active
    CreatedAt    time.Time // customers.created_at
    UpdatedAt    time.Time // customers.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  The
// plain token never touches the database; only its SHA-256 hash is
// stored, with expiry and revocation metadata alongside.
type RefreshToken struct {
    ID         uint64     // refresh_tokens.id
    CustomerID uint64     // refresh_tokens.customer_id
    TokenHash  string     // refresh_tokens.token_hash
    ExpiresAt  time.Time  // refresh_tokens.expires_at
    RevokedAt  *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt  time.Time  // refresh_tokens.created_at
}
