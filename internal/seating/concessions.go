package seating

import "github.com/cinebook/cinema-booking/internal/model"

// ConcessionLine pairs a product with the quantity chosen on the
// booking page, before the selection is merged into the cart store.
type ConcessionLine struct {
    Product  model.Product
    Quantity int
}

// ConcessionSelection is the page-local concession list.  It mirrors
// cart semantics (delta updates, no zero or negative quantities) but
// lives outside the store until the customer proceeds to payment.
type ConcessionSelection struct {
    lines []ConcessionLine
}

// NewConcessionSelection returns an empty selection.
func NewConcessionSelection() *ConcessionSelection {
    return &ConcessionSelection{}
}

// Quantity returns the current quantity for a product, zero when the
// product has no line.
func (s *ConcessionSelection) Quantity(productID uint64) int {
    for _, l := range s.lines {
        if l.Product.ID == productID {
            return l.Quantity
        }
    }
    return 0
}

// UpdateQuantity applies a quantity delta for a product.  The new
// quantity is current+delta; zero or below removes the line, anything
// else upserts it.  Negative quantities never persist.
func (s *ConcessionSelection) UpdateQuantity(p model.Product, delta int) {
    newQty := s.Quantity(p.ID) + delta
    for i, l := range s.lines {
        if l.Product.ID != p.ID {
            continue
        }
        if newQty <= 0 {
            s.lines = append(s.lines[:i], s.lines[i+1:]...)
        } else {
            s.lines[i].Quantity = newQty
        }
        return
    }
    if newQty > 0 {
        s.lines = append(s.lines, ConcessionLine{Product: p, Quantity: newQty})
    }
}

// Lines returns the selection in insertion order.
func (s *ConcessionSelection) Lines() []ConcessionLine {
    out := make([]ConcessionLine, len(s.lines))
    copy(out, s.lines)
    return out
}

// Subtotal is the concession cost of the selection.
func (s *ConcessionSelection) Subtotal() float64 {
    var sum float64
    for _, l := range s.lines {
        sum += l.Product.Price * float64(l.Quantity)
    }
    return sum
}

// CartProducts converts the selection into cart product lines for
// merging into the cart store on submission.
func (s *ConcessionSelection) CartProducts() []model.CartProduct {
    out := make([]model.CartProduct, 0, len(s.lines))
    for _, l := range s.lines {
        out = append(out, model.CartProduct{
            ProductID: l.Product.ID,
            Quantity:  l.Quantity,
            Name:      l.Product.Name,
            Price:     l.Product.Price,
        })
    }
    return out
}
