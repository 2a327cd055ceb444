package model

// Product is a concession item (snacks, drinks, combos) sold alongside
// tickets.  The full product list is offered on every booking page.
type Product struct {
    ID          uint64  `json:"product_id"`  // products.id
    Name        string  `json:"name"`        // products.name
    Price       float64 `json:"price"`       // products.price
    Description string  `json:"description"` // products.description (may be empty)
}
