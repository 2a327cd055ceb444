// Package checkout validates payment input, assembles the receipt
// payload from a customer's cart and drives the submission flow:
// Idle -> Validating -> Submitting -> Success or Failed.  On success
// the cart is cleared and a receipt event is published; on failure the
// cart is preserved so the customer can retry without re-selecting
// seats or products.
package checkout

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strings"
    "sync"
    "time"

    "github.com/cinebook/cinema-booking/internal/cart"
    "github.com/cinebook/cinema-booking/internal/model"
    "github.com/cinebook/cinema-booking/internal/queue"
)

// State is the position of one submission in the checkout flow.
type State int

const (
    StateIdle State = iota
    StateValidating
    StateSubmitting
    StateSuccess
    StateFailed
)

// String names the state for logs.
func (s State) String() string {
    switch s {
    case StateIdle:
        return "IDLE"
    case StateValidating:
        return "VALIDATING"
    case StateSubmitting:
        return "SUBMITTING"
    case StateSuccess:
        return "SUCCESS"
    case StateFailed:
        return "FAILED"
    }
    return "UNKNOWN"
}

// Validation failures carry the exact user-facing message; handlers
// surface them verbatim and never forward the request to the backend.
var (
    ErrInvalidCard   = errors.New("Please enter valid card details")
    ErrInvalidUPI    = errors.New("Please enter a valid UPI ID")
    ErrInvalidBank   = errors.New("Please enter bank details")
    ErrUnknownMethod = errors.New("unsupported payment method")
)

// ErrEmptyCart means the cart holds no tickets at submission time, for
// example after ephemeral state was wiped.  The flow must redirect the
// customer away instead of submitting.
var ErrEmptyCart = errors.New("cart has no tickets")

// ErrSubmitInFlight rejects a second submit while one is already in
// the Submitting state for the same customer.
var ErrSubmitInFlight = errors.New("a payment is already being processed")

// PaymentDetails is the method-specific payment input.  Only the
// fields of the chosen method are validated.
type PaymentDetails struct {
    Method        string `json:"method"` // card | upi | bank
    CardNumber    string `json:"card_number"`
    CVV           string `json:"cvv"`
    UPIID         string `json:"upi_id"`
    AccountNumber string `json:"account_number"`
    IFSC          string `json:"ifsc"`
}

func digitCount(s string) int {
    n := 0
    for _, r := range s {
        if r >= '0' && r <= '9' {
            n++
        }
    }
    return n
}

// Validate checks the payment input for the selected method:
// card needs a 16-digit number and a 3-digit CVV, upi needs an id
// containing "@", bank needs both account number and IFSC.
func (p PaymentDetails) Validate() error {
    switch strings.ToLower(strings.TrimSpace(p.Method)) {
    case "card":
        if digitCount(p.CardNumber) < 16 || digitCount(p.CVV) < 3 {
            return ErrInvalidCard
        }
    case "upi":
        if !strings.Contains(p.UPIID, "@") {
            return ErrInvalidUPI
        }
    case "bank":
        if strings.TrimSpace(p.AccountNumber) == "" || strings.TrimSpace(p.IFSC) == "" {
            return ErrInvalidBank
        }
    default:
        return ErrUnknownMethod
    }
    return nil
}

// MethodEnum maps the input method to the value stored on the receipt
// row: CARD, UPI or BANK.
func (p PaymentDetails) MethodEnum() string {
    switch strings.ToLower(strings.TrimSpace(p.Method)) {
    case "upi":
        return "UPI"
    case "bank":
        return "BANK"
    default:
        return "CARD"
    }
}

// FormatReceiptDate renders a receipt date as dd/mm/yyyy.
func FormatReceiptDate(t time.Time) string {
    return t.Format("02/01/2006")
}

// BuildReceipt assembles the submission payload from the cart: receipt
// date, payment method enum, customer id, the applied voucher (nil
// when none) and the product and ticket lines.  It reads the cart
// synchronously, so the payload always reflects the latest state.
func BuildReceipt(customerID uint64, c *cart.Cart, method string, now time.Time) model.ReceiptRequest {
    req := model.ReceiptRequest{
        ReceiptDate: FormatReceiptDate(now),
        Method:      method,
        CustomerID:  customerID,
        Products:    make([]model.ReceiptProduct, 0, len(c.Products)),
        Tickets:     make([]model.ReceiptTicket, 0, len(c.Tickets)),
    }
    if c.Voucher != nil {
        cvID := c.Voucher.CVID
        req.CVID = &cvID
    }
    for _, p := range c.Products {
        req.Products = append(req.Products, model.ReceiptProduct{
            ProductID: p.ProductID,
            Quantity:  p.Quantity,
        })
    }
    for _, t := range c.Tickets {
        req.Tickets = append(req.Tickets, model.ReceiptTicket{
            MovieID:    t.MovieID,
            ShowtimeID: t.ShowtimeID,
            BranchID:   t.BranchID,
            HallNumber: t.HallNumber,
            SeatNumber: t.SeatNumber,
            Price:      t.Price,
        })
    }
    return req
}

// ReceiptCreator persists a receipt and returns its identifier.  The
// repository layer implements it; tests substitute fakes.
type ReceiptCreator interface {
    Create(ctx context.Context, req model.ReceiptRequest) (uint64, error)
}

// PublishFunc sends a receipt event to the message broker.  Publishing
// is best effort; a failure never fails the checkout.
type PublishFunc func(ctx context.Context, event queue.ReceiptCreatedEvent) error

// Flow coordinates checkout submissions.  A per-customer in-flight set
// acts as the re-entrancy guard the UI expresses by disabling the
// submit control while a payment is processing.
type Flow struct {
    carts    cart.Store
    receipts ReceiptCreator
    publish  PublishFunc

    mu       sync.Mutex
    inflight map[uint64]struct{}
}

// NewFlow wires the checkout flow.  carts and receipts must be
// non-nil; publish may be nil to disable events.
func NewFlow(carts cart.Store, receipts ReceiptCreator, publish PublishFunc) *Flow {
    if carts == nil || receipts == nil {
        panic("nil dependency passed to NewFlow")
    }
    return &Flow{
        carts:    carts,
        receipts: receipts,
        publish:  publish,
        inflight: make(map[uint64]struct{}),
    }
}

// Result is the outcome of a successful submission.
type Result struct {
    ReceiptID    uint64  `json:"receipt_id"`
    Total        float64 `json:"total"`
    Confirmation string  `json:"confirmation"`
}

func (f *Flow) begin(customerID uint64) bool {
    f.mu.Lock()
    defer f.mu.Unlock()
    if _, busy := f.inflight[customerID]; busy {
        return false
    }
    f.inflight[customerID] = struct{}{}
    return true
}

func (f *Flow) end(customerID uint64) {
    f.mu.Lock()
    defer f.mu.Unlock()
    delete(f.inflight, customerID)
}

// Submit runs one checkout: it guards re-entry, loads the latest cart,
// enforces the non-empty-tickets precondition, validates the payment
// input, persists the receipt and on success clears the cart and
// publishes a receipt.created event.  Any error before or during
// persistence leaves the cart untouched.
func (f *Flow) Submit(ctx context.Context, customerID uint64, pay PaymentDetails) (Result, error) {
    if !f.begin(customerID) {
        return Result{}, ErrSubmitInFlight
    }
    defer f.end(customerID)

    state := StateIdle

    c, err := f.carts.Load(ctx, customerID)
    if err != nil {
        return Result{}, err
    }
    if len(c.Tickets) == 0 {
        return Result{}, ErrEmptyCart
    }

    state = StateValidating
    if err := pay.Validate(); err != nil {
        return Result{}, err
    }

    state = StateSubmitting
    total := c.TotalPrice()
    req := BuildReceipt(customerID, c, pay.MethodEnum(), time.Now())
    receiptID, err := f.receipts.Create(ctx, req)
    if err != nil {
        log.Printf("checkout: submit failed for customer %d in state %s: %v", customerID, state, err)
        return Result{}, err
    }

    state = StateSuccess
    log.Printf("checkout: customer %d reached %s with receipt %d", customerID, state, receiptID)
    if err := f.carts.Clear(ctx, customerID); err != nil {
        // The receipt exists; a stale cart is recoverable, so log only.
        log.Printf("checkout: clear cart failed for customer %d: %v", customerID, err)
    }

    if f.publish != nil {
        seats := make([]string, 0, len(c.Tickets))
        for _, t := range c.Tickets {
            seats = append(seats, t.SeatNumber)
        }
        event := queue.ReceiptCreatedEvent{
            ReceiptID:  receiptID,
            CustomerID: customerID,
            MovieTitle: c.Tickets[0].MovieName,
            Seats:      seats,
            Method:     req.Method,
            Total:      total,
            CreatedAt:  time.Now().UTC().Format(time.RFC3339),
        }
        if err := f.publish(ctx, event); err != nil {
            log.Printf("checkout: publish receipt.created failed: %v", err)
        }
    }

    return Result{
        ReceiptID:    receiptID,
        Total:        total,
        Confirmation: fmt.Sprintf("/bookings/confirmation?bookingId=%d", receiptID),
    }, nil
}
