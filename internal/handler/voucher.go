package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/cinebook/cinema-booking/internal/cart"
    "github.com/cinebook/cinema-booking/internal/repository"
    "github.com/cinebook/cinema-booking/internal/voucher"
)

// VoucherHandler serves the customer's voucher picker.  The list is
// filterable by condition text and paginated with a fixed page size;
// each voucher is annotated with its parsed minimum spend and whether
// it is applicable to the customer's current cart.
type VoucherHandler struct {
    Vouchers *repository.VoucherRepo // voucher lookups
    Carts    cart.Store              // to compute applicability against the cart
}

// NewVoucherHandler constructs a VoucherHandler.  Both dependencies
// must be non-nil.
func NewVoucherHandler(vouchers *repository.VoucherRepo, carts cart.Store) *VoucherHandler {
    if vouchers == nil || carts == nil {
        panic("nil dependency passed to NewVoucherHandler")
    }
    return &VoucherHandler{Vouchers: vouchers, Carts: carts}
}

// List handles GET /v1/vouchers?q=&page=.  The optional q filters on
// condition text; page is 1-based and clamps to the first page.  The
// response carries the page, the page count for the filtered list and
// per-voucher applicability so the picker can grey out vouchers the
// cart does not yet qualify for.
func (h *VoucherHandler) List(c echo.Context) error {
    customerID, err := getCustomerID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    page := 1
    if raw := c.QueryParam("page"); raw != "" {
        n, err := strconv.Atoi(raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid page"})
        }
        page = n
    }

    ctx := c.Request().Context()
    all, err := h.Vouchers.ListByCustomer(ctx, customerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    ct, err := h.Carts.Load(ctx, customerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
    }
    gross := ct.GrossSubtotal()

    filtered := voucher.Filter(all, c.QueryParam("q"))
    paged := voucher.Page(filtered, page)

    items := make([]echo.Map, 0, len(paged))
    for _, v := range paged {
        items = append(items, echo.Map{
            "voucher":    v,
            "min_spend":  voucher.MinSpend(v.Condition),
            "applicable": voucher.Eligible(v, gross),
        })
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items":       items,
        "page":        page,
        "page_size":   voucher.PageSize,
        "total_pages": voucher.TotalPages(len(filtered)),
    })
}
