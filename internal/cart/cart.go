// Package cart holds the in-memory cart state for a customer and the
// derived pricing over it.  The cart itself never performs network or
// database calls; persistence happens through the Store interface as
// an explicit serialize/deserialize boundary.
package cart

import (
    "github.com/cinebook/cinema-booking/internal/model"
)

// Cart is the mutable per-customer cart: selected tickets, concession
// lines and at most one applied voucher.  All mutations are plain
// synchronous method calls; callers that share a Cart across requests
// must serialize access (the stores in this package do).
type Cart struct {
    Tickets  []model.CartTicket      `json:"tickets"`
    Products []model.CartProduct     `json:"products"`
    Voucher  *model.VoucherSelection `json:"voucher"`
}

// New returns an empty cart with non-nil slices so JSON encoding
// yields [] rather than null.
func New() *Cart {
    return &Cart{
        Tickets:  []model.CartTicket{},
        Products: []model.CartProduct{},
    }
}

// SetTickets replaces the full ticket set.  Seat selection submits the
// whole selection for one showtime at once, so this is a replace, not
// a merge.  Duplicate seat numbers in the input are dropped; a seat
// can only appear once in a cart.
func (c *Cart) SetTickets(tickets []model.CartTicket) {
    out := make([]model.CartTicket, 0, len(tickets))
    seen := make(map[string]struct{}, len(tickets))
    for _, t := range tickets {
        if _, ok := seen[t.SeatNumber]; ok {
            continue
        }
        seen[t.SeatNumber] = struct{}{}
        out = append(out, t)
    }
    c.Tickets = out
}

// AddProduct merges a product line into the cart.  When the product is
// already present its quantity is incremented by the incoming quantity;
// otherwise a new line is appended.  Lines whose resulting quantity is
// zero or below are removed entirely.
func (c *Cart) AddProduct(p model.CartProduct) {
    for i, existing := range c.Products {
        if existing.ProductID == p.ProductID {
            c.Products[i].Quantity += p.Quantity
            if c.Products[i].Quantity <= 0 {
                c.removeProductAt(i)
            }
            return
        }
    }
    if p.Quantity <= 0 {
        return
    }
    c.Products = append(c.Products, p)
}

// UpdateProductQuantity sets the quantity of an existing line.  A
// quantity of zero or below deletes the line; no zero-quantity lines
// persist.  Unknown product IDs are ignored.
func (c *Cart) UpdateProductQuantity(productID uint64, quantity int) {
    for i := range c.Products {
        if c.Products[i].ProductID != productID {
            continue
        }
        if quantity <= 0 {
            c.removeProductAt(i)
        } else {
            c.Products[i].Quantity = quantity
        }
        return
    }
}

// RemoveProduct drops a line unconditionally.
func (c *Cart) RemoveProduct(productID uint64) {
    for i := range c.Products {
        if c.Products[i].ProductID == productID {
            c.removeProductAt(i)
            return
        }
    }
}

func (c *Cart) removeProductAt(i int) {
    c.Products = append(c.Products[:i], c.Products[i+1:]...)
}

// ApplyVoucher fills the single voucher slot, replacing any previously
// applied voucher.  Tickets and products are untouched.
func (c *Cart) ApplyVoucher(v model.VoucherSelection) {
    c.Voucher = &v
}

// RemoveVoucher clears the voucher slot.
func (c *Cart) RemoveVoucher() {
    c.Voucher = nil
}

// GrossSubtotal is the pre-discount subtotal: the sum of ticket prices
// plus product unit price times quantity.  Voucher eligibility is
// gated on this value, never on the discounted total.
func (c *Cart) GrossSubtotal() float64 {
    var sum float64
    for _, t := range c.Tickets {
        sum += t.Price
    }
    for _, p := range c.Products {
        sum += p.Price * float64(p.Quantity)
    }
    return sum
}

// TotalPrice is the final payable amount: the gross subtotal reduced
// by the applied voucher's whole-cart percentage discount, floored at
// zero.  It is a pure function of the current state and may be called
// repeatedly without side effects.
func (c *Cart) TotalPrice() float64 {
    total := c.GrossSubtotal()
    if c.Voucher != nil {
        total -= total * c.Voucher.Discount / 100
    }
    if total < 0 {
        return 0
    }
    return total
}

// Clear resets tickets, products and voucher in one step.  Called only
// after a successful checkout; navigation never clears a cart.
func (c *Cart) Clear() {
    c.Tickets = []model.CartTicket{}
    c.Products = []model.CartProduct{}
    c.Voucher = nil
}

// clone returns a deep copy so stores can hand out carts without
// sharing backing arrays with their internal state.
func (c *Cart) clone() *Cart {
    out := &Cart{
        Tickets:  make([]model.CartTicket, len(c.Tickets)),
        Products: make([]model.CartProduct, len(c.Products)),
    }
    copy(out.Tickets, c.Tickets)
    copy(out.Products, c.Products)
    if c.Voucher != nil {
        v := *c.Voucher
        out.Voucher = &v
    }
    return out
}
