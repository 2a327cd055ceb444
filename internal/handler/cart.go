package handler

import (
    "errors"   // for errors.Is comparisons against repository sentinels
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/cinebook/cinema-booking/internal/cart"       // cart state container and stores
    "github.com/cinebook/cinema-booking/internal/model"      // shared domain types
    "github.com/cinebook/cinema-booking/internal/repository" // repository layer
    "github.com/cinebook/cinema-booking/internal/seating"    // seat map and pricing
    "github.com/cinebook/cinema-booking/internal/voucher"    // voucher eligibility
)

// CartHandler exposes the per-customer cart: ticket replacement from a
// seat selection, concession lines, the single voucher slot and the
// derived totals.  All methods assume JWT authentication and role
// validation have already been performed by middleware.  Every
// mutation loads the latest persisted cart, applies the change and
// saves it back, so the reported totals always reflect current state.
type CartHandler struct {
    Carts        cart.Store               // cart persistence
    ShowtimeRepo *repository.ShowtimeRepo // seat maps for pricing selections
    ProductRepo  *repository.ProductRepo  // product lookups for cart lines
    VoucherRepo  *repository.VoucherRepo  // voucher lookups for the voucher slot
}

// NewCartHandler constructs a CartHandler with the provided
// dependencies.  All of them must be non-nil.
func NewCartHandler(carts cart.Store, showtimeRepo *repository.ShowtimeRepo, productRepo *repository.ProductRepo, voucherRepo *repository.VoucherRepo) *CartHandler {
    if carts == nil || showtimeRepo == nil || productRepo == nil || voucherRepo == nil {
        panic("nil dependency passed to NewCartHandler")
    }
    return &CartHandler{
        Carts:        carts,
        ShowtimeRepo: showtimeRepo,
        ProductRepo:  productRepo,
        VoucherRepo:  voucherRepo,
    }
}

// cartResponse renders a cart with its derived totals.  Displayed and
// submitted totals must come from the same computation, so handlers
// never calculate prices themselves.
func cartResponse(c *cart.Cart) echo.Map {
    return echo.Map{
        "tickets":        c.Tickets,
        "products":       c.Products,
        "voucher":        c.Voucher,
        "gross_subtotal": c.GrossSubtotal(),
        "total":          c.TotalPrice(),
    }
}

// GetCart handles GET /v1/cart.  It returns the customer's persisted
// cart, or an empty one when nothing has been selected yet.
func (h *CartHandler) GetCart(c echo.Context) error {
    customerID, err := getCustomerID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ct, err := h.Carts.Load(c.Request().Context(), customerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
    }
    return c.JSON(http.StatusOK, cartResponse(ct))
}

// SetTickets handles PUT /v1/cart/tickets.  The body carries the
// showtime and the chosen seat numbers; the handler verifies every
// seat against the showtime's current availability, prices the
// selection with the seat-type table and replaces the cart's ticket
// set.  Seats that are booked or unknown reject the whole request
// with the offending seat numbers, matching the rule that unavailable
// seats can never be selected.
func (h *CartHandler) SetTickets(c echo.Context) error {
    customerID, err := getCustomerID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        MovieID     uint64   `json:"movie_id"`
        ShowtimeID  uint64   `json:"showtime_id"`
        SeatNumbers []string `json:"seat_numbers"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.MovieID == 0 || body.ShowtimeID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id and showtime_id are required"})
    }

    // Deduplicate seat numbers; a seat can only appear once in a cart.
    unique := make([]string, 0, len(body.SeatNumbers))
    seen := make(map[string]struct{})
    for _, n := range body.SeatNumbers {
        if n == "" {
            continue
        }
        if _, ok := seen[n]; !ok {
            seen[n] = struct{}{}
            unique = append(unique, n)
        }
    }

    ctx := c.Request().Context()
    show, err := h.ShowtimeRepo.GetInfo(ctx, body.MovieID, body.ShowtimeID)
    if err != nil {
        if errors.Is(err, repository.ErrShowtimeNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    seats, err := h.ShowtimeRepo.ListSeats(ctx, body.ShowtimeID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
    }

    seatMap := seating.NewSeatMap(seats)
    unavailable := make([]string, 0)
    for _, n := range unique {
        if !seatMap.Available(n) {
            unavailable = append(unavailable, n)
        }
    }
    if len(unavailable) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{
            "error":       "some seats are unavailable",
            "unavailable": unavailable,
        })
    }
    for _, n := range unique {
        seatMap.Toggle(n)
    }

    ct, err := h.Carts.Load(ctx, customerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
    }
    ct.SetTickets(seatMap.Tickets(show))
    if err := h.Carts.Save(ctx, customerID, ct); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save cart"})
    }
    return c.JSON(http.StatusOK, cartResponse(ct))
}

// AddProduct handles POST /v1/cart/products.  The body carries a
// product id and an optional quantity (default 1).  An existing line
// for the product has its quantity incremented; otherwise a new line
// is appended carrying the product's name and unit price.
func (h *CartHandler) AddProduct(c echo.Context) error {
    customerID, err := getCustomerID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        ProductID uint64 `json:"product_id"`
        Quantity  int    `json:"quantity"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.ProductID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id is required"})
    }
    if body.Quantity == 0 {
        body.Quantity = 1
    }

    ctx := c.Request().Context()
    p, err := h.ProductRepo.GetByID(ctx, body.ProductID)
    if err != nil {
        if errors.Is(err, repository.ErrProductNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    ct, err := h.Carts.Load(ctx, customerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
    }
    ct.AddProduct(model.CartProduct{
        ProductID: p.ID,
        Quantity:  body.Quantity,
        Name:      p.Name,
        Price:     p.Price,
    })
    if err := h.Carts.Save(ctx, customerID, ct); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save cart"})
    }
    return c.JSON(http.StatusOK, cartResponse(ct))
}

// SubmitConcessions handles PUT /v1/cart/concessions.  The booking
// page accumulates concession quantities locally and submits them all
// at once on proceed; each line is resolved against the product table
// and the resulting selection is merged into the cart's product lines.
// Lines whose quantity ends at zero or below never reach the cart.
func (h *CartHandler) SubmitConcessions(c echo.Context) error {
    customerID, err := getCustomerID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        Lines []struct {
            ProductID uint64 `json:"product_id"`
            Quantity  int    `json:"quantity"`
        } `json:"lines"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    ctx := c.Request().Context()
    sel := seating.NewConcessionSelection()
    for _, line := range body.Lines {
        if line.ProductID == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id is required"})
        }
        p, err := h.ProductRepo.GetByID(ctx, line.ProductID)
        if err != nil {
            if errors.Is(err, repository.ErrProductNotFound) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        sel.UpdateQuantity(p, line.Quantity)
    }

    ct, err := h.Carts.Load(ctx, customerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
    }
    for _, p := range sel.CartProducts() {
        ct.AddProduct(p)
    }
    if err := h.Carts.Save(ctx, customerID, ct); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save cart"})
    }
    return c.JSON(http.StatusOK, cartResponse(ct))
}

// UpdateProductQuantity handles PATCH /v1/cart/products/:id.  It sets
// the line's quantity outright; zero or below removes the line so no
// zero-quantity lines ever persist.
func (h *CartHandler) UpdateProductQuantity(c echo.Context) error {
    customerID, err := getCustomerID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || productID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
    }
    var body struct {
        Quantity int `json:"quantity"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    ctx := c.Request().Context()
    ct, err := h.Carts.Load(ctx, customerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
    }
    ct.UpdateProductQuantity(productID, body.Quantity)
    if err := h.Carts.Save(ctx, customerID, ct); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save cart"})
    }
    return c.JSON(http.StatusOK, cartResponse(ct))
}

// RemoveProduct handles DELETE /v1/cart/products/:id, dropping the
// line unconditionally.
func (h *CartHandler) RemoveProduct(c echo.Context) error {
    customerID, err := getCustomerID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || productID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
    }
    ctx := c.Request().Context()
    ct, err := h.Carts.Load(ctx, customerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
    }
    ct.RemoveProduct(productID)
    if err := h.Carts.Save(ctx, customerID, ct); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save cart"})
    }
    return c.JSON(http.StatusOK, cartResponse(ct))
}

// ApplyVoucher handles POST /v1/cart/voucher with toggle semantics:
// applying the voucher already in the slot removes it, applying a
// different eligible voucher replaces the slot, and an ineligible
// voucher (used, or minimum spend above the gross subtotal) is
// rejected with 422 so it can never become active.
func (h *CartHandler) ApplyVoucher(c echo.Context) error {
    customerID, err := getCustomerID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        CVID uint64 `json:"cv_id"`
    }
    if err := c.Bind(&body); err != nil || body.CVID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "cv_id is required"})
    }

    ctx := c.Request().Context()
    ct, err := h.Carts.Load(ctx, customerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
    }

    // Toggle off: the applied voucher was clicked again.
    if ct.Voucher != nil && ct.Voucher.CVID == body.CVID {
        ct.RemoveVoucher()
        if err := h.Carts.Save(ctx, customerID, ct); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save cart"})
        }
        return c.JSON(http.StatusOK, cartResponse(ct))
    }

    v, err := h.VoucherRepo.GetForCustomer(ctx, customerID, body.CVID)
    if err != nil {
        if errors.Is(err, repository.ErrVoucherNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "voucher not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !voucher.Eligible(v, ct.GrossSubtotal()) {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "voucher not applicable"})
    }

    ct.ApplyVoucher(model.VoucherSelection{
        CVID:     v.CVID,
        Code:     "V" + strconv.FormatUint(v.VoucherID, 10),
        Discount: v.Discount,
    })
    if err := h.Carts.Save(ctx, customerID, ct); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save cart"})
    }
    return c.JSON(http.StatusOK, cartResponse(ct))
}

// RemoveVoucher handles DELETE /v1/cart/voucher, clearing the slot.
func (h *CartHandler) RemoveVoucher(c echo.Context) error {
    customerID, err := getCustomerID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx := c.Request().Context()
    ct, err := h.Carts.Load(ctx, customerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
    }
    ct.RemoveVoucher()
    if err := h.Carts.Save(ctx, customerID, ct); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save cart"})
    }
    return c.JSON(http.StatusOK, cartResponse(ct))
}

// ClearCart handles DELETE /v1/cart, dropping the persisted state
// entirely.  Checkout clears automatically on success; this endpoint
// lets a customer start over explicitly.
func (h *CartHandler) ClearCart(c echo.Context) error {
    customerID, err := getCustomerID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    if err := h.Carts.Clear(c.Request().Context(), customerID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to clear cart"})
    }
    return c.NoContent(http.StatusNoContent)
}
